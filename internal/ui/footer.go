package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/gridctl/pkg/grid"
	"github.com/oakwood-commons/gridctl/internal/screen"
)

// FooterModel renders the status area under the table: pagination window,
// active-filter chips, selection summary, and key hints.
type FooterModel struct {
	NoColor bool
	Width   int
}

// NewFooterModel creates a footer with defaults.
func NewFooterModel() FooterModel {
	return FooterModel{Width: 92}
}

// View renders the footer for one derived view.
func (f FooterModel) View(view grid.View[screen.Record], selectedCount int, status string) string {
	var lines []string

	if line := f.statusLine(view, selectedCount); line != "" {
		lines = append(lines, line)
	}
	if status != "" {
		lines = append(lines, status)
	}
	lines = append(lines, f.hints(view))
	return strings.Join(lines, "\n")
}

// statusLine combines the pagination window, chips, and selection summary.
// Single-page collections get no pagination chrome at all.
func (f FooterModel) statusLine(view grid.View[screen.Record], selectedCount int) string {
	var parts []string

	if view.ShowPagination {
		parts = append(parts, fmt.Sprintf("Showing %d to %d of %d (page %d/%d)",
			view.WindowFrom, view.WindowTo, view.Pagination.Total,
			view.Pagination.Page, view.Pagination.TotalPages))
	}
	if chips := f.chipLine(view.Chips); chips != "" {
		parts = append(parts, chips)
	}
	if selectedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", selectedCount))
	}
	return strings.Join(parts, "  |  ")
}

func (f FooterModel) chipLine(chips []grid.Chip) string {
	if len(chips) == 0 {
		return ""
	}
	chipStyle := lipgloss.NewStyle()
	if !f.NoColor {
		chipStyle = chipStyle.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("240"))
	}
	parts := make([]string, len(chips))
	for i, c := range chips {
		parts[i] = chipStyle.Render(fmt.Sprintf("[%s: %s ×]", c.Label, c.Display))
	}
	return strings.Join(parts, " ")
}

func (f FooterModel) hints(view grid.View[screen.Record]) string {
	keyStyle := lipgloss.NewStyle().Bold(true)
	if !f.NoColor {
		keyStyle = keyStyle.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("240"))
	}

	pairs := []struct{ key, label string }{
		{"/", "search"},
		{"1-9", "sort"},
		{"space", "select"},
		{"a", "select all"},
		{"c", "clear filters"},
		{"e", "export"},
		{"q", "quit"},
	}
	if view.ShowPagination {
		pairs = append([]struct{ key, label string }{
			{"←/→", "page"},
			{"-/+", "page size"},
		}, pairs...)
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, keyStyle.Render(p.key)+" "+p.label)
	}
	return strings.Join(parts, "  ")
}
