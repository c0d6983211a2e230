// Package ui is the interactive browser for record collections: a Bubble Tea
// program that owns one screen (the caller-state side of the grid contract)
// and renders the controller's derived view as a terminal table with
// pagination, filtering, selection, and CSV export.
package ui

import (
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/gridctl/pkg/grid"
	"github.com/oakwood-commons/gridctl/internal/screen"
	"github.com/oakwood-commons/gridctl/internal/ui/table"
)

// pageSizes are the page-size presets the -/+ keys cycle through.
var pageSizes = []int{5, 10, 20, 50, 100}

const checkColumnTitle = " "

// Browser is the top-level Bubble Tea model.
type Browser struct {
	screen *screen.Screen
	table  *table.Model[grid.RowView[screen.Record]]
	search textinput.Model
	footer FooterModel

	view      grid.View[screen.Record]
	searching bool
	status    string
	err       error

	width    int
	height   int
	noColor  bool
	quitting bool
}

// NewBrowser builds the browser around an already-constructed screen.
func NewBrowser(s *screen.Screen, noColor bool) *Browser {
	ti := textinput.New()
	ti.Placeholder = "type to search, enter to apply, esc to cancel"
	ti.CharLimit = 120

	b := &Browser{
		screen:  s,
		search:  ti,
		footer:  NewFooterModel(),
		noColor: noColor,
		width:   92,
		height:  24,
	}
	b.footer.NoColor = noColor

	// Activating a row is a browser concern, not a screen concern.
	s.Controller().Callbacks.OnRowClick = func(rec screen.Record) {
		b.status = "opened " + rowSummary(s, rec)
	}

	b.table = table.NewModel(nil, b.toRow)
	b.table.SetNoColor(noColor)
	b.refresh()
	return b
}

// Init implements tea.Model.
func (b *Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.table.SetSize(msg.Width, tableHeight(msg.Height))
		return b, nil

	case tea.KeyMsg:
		if b.searching {
			return b.updateSearch(msg)
		}
		return b.updateNormal(msg)
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

func tableHeight(total int) int {
	// Leave room for the title, search line, and footer.
	h := total - 7
	if h < 3 {
		h = 3
	}
	return h
}

func (b *Browser) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		b.searching = false
		b.search.Blur()
		b.applySearch(b.search.Value())
		return b, nil
	case "esc":
		b.searching = false
		b.search.Blur()
		return b, nil
	}
	var cmd tea.Cmd
	b.search, cmd = b.search.Update(msg)
	return b, cmd
}

func (b *Browser) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b.status = ""
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		b.quitting = true
		return b, tea.Quit

	case "left", "h":
		if b.view.Pagination.HasPrev() {
			b.screen.PrevPage()
			b.refresh()
		}
		return b, nil

	case "right", "l":
		if b.view.Pagination.HasNext() {
			b.screen.NextPage()
			b.refresh()
		}
		return b, nil

	case "+", "=":
		b.stepPageSize(1)
		return b, nil

	case "-", "_":
		b.stepPageSize(-1)
		return b, nil

	case "/":
		b.searching = true
		b.search.SetValue(b.screen.Values()[b.searchKey()])
		b.search.Focus()
		return b, nil

	case "c":
		b.screen.ClearFilters()
		b.refresh()
		return b, nil

	case " ", "space":
		// Selection toggle is exclusive with row activation.
		if row := b.table.SelectedRow(); row != nil {
			b.screen.ToggleRow(row.ID)
			b.refresh()
		}
		return b, nil

	case "a":
		b.screen.SelectAllVisible(b.view.SelectAll != grid.Checked)
		b.refresh()
		return b, nil

	case "e":
		b.exportCSV()
		return b, nil

	case "enter":
		if row := b.table.SelectedRow(); row != nil {
			b.screen.Controller().RequestRowClick(row.Row)
		}
		return b, nil
	}

	// Digits sort by column position (1-based).
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(b.view.Headers) {
			b.screen.RequestSort(b.view.Headers[idx].Key)
			b.refresh()
		}
		return b, nil
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

func (b *Browser) stepPageSize(dir int) {
	current := b.view.Pagination.PageSize
	idx := 0
	for i, s := range pageSizes {
		if s <= current {
			idx = i
		}
	}
	idx += dir
	if idx < 0 || idx >= len(pageSizes) {
		return
	}
	b.screen.SetPageSize(pageSizes[idx])
	b.refresh()
}

func (b *Browser) searchKey() string {
	for _, def := range b.screen.Controller().Filters {
		if def.Kind == grid.KindText {
			return def.Key
		}
	}
	return "search"
}

func (b *Browser) applySearch(value string) {
	if err := b.screen.SetFilter(b.searchKey(), value); err != nil {
		b.status = "search: " + err.Error()
		return
	}
	b.refresh()
}

func (b *Browser) exportCSV() {
	out, err := b.screen.ExportCSV()
	if err != nil {
		b.status = "export failed: " + err.Error()
		return
	}
	path := b.screen.ExportFilename()
	if err := os.WriteFile(path, []byte(out+"\n"), 0o644); err != nil {
		b.status = "export failed: " + err.Error()
		return
	}
	b.status = fmt.Sprintf("exported %d row(s) to %s", strings.Count(out, "\n"), path)
}

// refresh re-derives the view and pushes it into the table component.
func (b *Browser) refresh() {
	view, err := b.screen.Derive()
	if err != nil {
		b.err = err
		return
	}
	b.err = nil
	b.view = view

	b.table.SetColumns(b.columns(view))
	b.table.SetRows(view.Rows)
}

// columns builds bubbles columns from the derived headers: a selection
// marker column first, then the data columns with sort indicators.
func (b *Browser) columns(view grid.View[screen.Record]) []table.Column {
	cols := make([]table.Column, 0, len(view.Headers)+1)
	cols = append(cols, table.Column{Title: checkColumnTitle, Width: 3})
	for i, h := range view.Headers {
		title := h.Title
		switch h.SortDir {
		case grid.Ascending:
			title += " ↑"
		case grid.Descending:
			title += " ↓"
		}
		cols = append(cols, table.Column{Title: title, Width: b.columnWidth(i, title)})
	}
	return cols
}

func (b *Browser) columnWidth(idx int, title string) int {
	ctrlCols := b.screen.Controller().Columns
	if idx < len(ctrlCols) && ctrlCols[idx].Width > 0 {
		return ctrlCols[idx].Width
	}
	w := len(title) + 2
	if w < 12 {
		w = 12
	}
	return w
}

func (b *Browser) toRow(row grid.RowView[screen.Record]) table.Row {
	marker := "[ ]"
	if row.Selected {
		marker = "[x]"
	}
	return append(table.Row{marker}, row.Cells...)
}

// View implements tea.Model.
func (b *Browser) View() tea.View {
	if b.quitting {
		return tea.NewView("")
	}

	var sb strings.Builder
	sb.WriteString(b.titleLine())
	sb.WriteString("\n")

	if b.searching {
		sb.WriteString("Search: " + b.search.View() + "\n")
	}

	switch {
	case b.err != nil:
		sb.WriteString("Error: " + b.err.Error() + "\n")
	case b.view.Loading:
		sb.WriteString("Loading…\n")
	case b.view.Empty != grid.EmptyNone:
		sb.WriteString(b.view.EmptyText + "\n")
	default:
		sb.WriteString(b.table.View())
		sb.WriteString("\n")
	}

	sb.WriteString(b.footer.View(b.view, b.screen.Selected().Count(), b.status))

	v := tea.NewView(sb.String())
	v.AltScreen = true
	return v
}

func (b *Browser) titleLine() string {
	style := lipgloss.NewStyle().Bold(true)
	if !b.noColor {
		style = style.Foreground(lipgloss.Color("12"))
	}
	title := b.screen.Title()
	if n := b.view.ActiveFilters; n > 0 {
		title += fmt.Sprintf(" (%d filter(s) active)", n)
	}
	return style.Render(title)
}

func rowSummary(s *screen.Screen, rec screen.Record) string {
	if id := s.Controller().GetRowID(rec); id != "" {
		return id
	}
	return "record"
}

// Run starts the interactive browser and blocks until the user quits.
func Run(s *screen.Screen, noColor bool, opts ...tea.ProgramOption) error {
	b := NewBrowser(s, noColor)
	prog := tea.NewProgram(b, opts...)
	_, err := prog.Run()
	return err
}
