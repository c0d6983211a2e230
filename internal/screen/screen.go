// Package screen is the stateful side of the list-screen contract. A Screen
// owns everything the grid controller refuses to own: current filter values,
// sort state, page position, and the selection set. It is also the data
// source: filtering and ordering of the record collection happen here, and
// the controller only derives presentation from the result.
package screen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/oakwood-commons/gridctl/internal/celfilter"
	"github.com/oakwood-commons/gridctl/internal/config"
	"github.com/oakwood-commons/gridctl/pkg/grid"
	"github.com/oakwood-commons/gridctl/pkg/loader"
)

// Record is one displayed row. Screens work on the loader's normalized map
// form; typed callers can use grid.Controller directly.
type Record = map[string]any

// Screen binds one screen definition to a loaded record collection.
type Screen struct {
	def     config.Screen
	records loader.Records

	ctrl       *grid.Controller[Record]
	values     grid.Values
	sortState  grid.SortState
	page       int
	pageSize   int
	selected   grid.Selection
	predicates map[string]*celfilter.Predicate
}

// New builds a screen from its definition and records, wiring the controller
// callbacks back into the screen's own state transitions.
func New(def config.Screen, records loader.Records) *Screen {
	s := &Screen{
		def:        def,
		records:    records,
		values:     grid.Values{},
		page:       1,
		pageSize:   def.PageSize,
		selected:   grid.Selection{},
		predicates: map[string]*celfilter.Predicate{},
	}
	if s.pageSize <= 0 {
		s.pageSize = config.DefaultPageSize
	}
	if def.DefaultSort.Field != "" {
		dir := grid.Ascending
		if def.DefaultSort.Direction == "desc" {
			dir = grid.Descending
		}
		s.sortState = grid.SortState{Field: def.DefaultSort.Field, Direction: dir}
	}

	s.ctrl = &grid.Controller[Record]{
		Columns:     buildColumns(def.Columns),
		GetRowID:    s.rowID,
		Filters:     buildFilters(def.Filters),
		SelectScope: grid.ScopePage,
		Export: grid.ExportSpec[Record]{
			Enabled:    def.Export.Enabled,
			Filename:   def.Export.Filename,
			Headers:    columnTitles(def.Columns),
			GetRowData: s.exportRow,
		},
	}
	s.ctrl.Callbacks = grid.Callbacks[Record]{
		OnFilterChange:   func(key, value string) { _ = s.SetFilter(key, value) },
		OnClearFilters:   func() { s.ClearFilters() },
		OnSort:           func(field string) { s.sortState = s.sortState.RequestSort(field) },
		OnPageChange:     func(page int) { s.SetPage(page) },
		OnPageSizeChange: func(size int) { s.SetPageSize(size) },
		OnSelectAll:      func(on bool) { s.SelectAllVisible(on) },
		OnSelectRow:      func(id string, on bool) { s.selected = grid.Toggle(s.selected, id, on) },
	}
	return s
}

// Controller exposes the underlying controller for renderers.
func (s *Screen) Controller() *grid.Controller[Record] {
	return s.ctrl
}

// Title returns the screen title.
func (s *Screen) Title() string {
	return s.def.Title
}

// Values returns the live filter value map.
func (s *Screen) Values() grid.Values {
	return s.values
}

// Sort returns the active sort state.
func (s *Screen) Sort() grid.SortState {
	return s.sortState
}

// Selected returns the live selection set.
func (s *Screen) Selected() grid.Selection {
	return s.selected
}

// SetFilter updates one filter value and resets to page 1. Expression
// filters are compiled eagerly so a bad expression fails at entry, not on
// every row.
func (s *Screen) SetFilter(key, value string) error {
	if value == "" {
		delete(s.values, key)
		delete(s.predicates, key)
		s.page = 1
		return nil
	}
	if def, ok := s.filterDef(key); ok && def.Kind == grid.KindExpr {
		p, err := celfilter.Compile(value)
		if err != nil {
			return err
		}
		s.predicates[key] = p
	}
	s.values[key] = value
	s.page = 1
	return nil
}

// SetWhere applies an ad-hoc expression filter. When the screen declares an
// expression filter slot that slot is reused; otherwise one is registered
// under the key "where".
func (s *Screen) SetWhere(expr string) error {
	key := ""
	for _, spec := range s.def.Filters {
		if grid.FilterKind(spec.Kind) == grid.KindExpr {
			key = spec.Key
			break
		}
	}
	if key == "" {
		key = "where"
		s.def.Filters = append(s.def.Filters, config.FilterSpec{Key: key, Kind: "expr", Label: "Where"})
		s.ctrl.Filters = append(s.ctrl.Filters, grid.FilterDef{Key: key, Kind: grid.KindExpr, Label: "Where"})
	}
	return s.SetFilter(key, expr)
}

// ClearFilters removes every active filter and resets to page 1.
func (s *Screen) ClearFilters() {
	s.values = grid.Values{}
	s.predicates = map[string]*celfilter.Predicate{}
	s.page = 1
}

// RequestSort applies the standard toggle transition for the given column.
func (s *Screen) RequestSort(field string) {
	s.ctrl.RequestSort(field)
}

// SetSort assigns the sort state absolutely, replacing any configured
// default. Declarative callers (flags, saved views) use this instead of
// RequestSort so the result does not depend on the prior state.
func (s *Screen) SetSort(field string, dir grid.Direction) {
	s.sortState = grid.SortState{Field: field, Direction: dir}
}

// SetPage moves to the given page. Out-of-range values are kept as-is and
// clamped at derivation, preserving the explicit page the user asked for.
func (s *Screen) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.page = page
}

// NextPage and PrevPage move one page within bounds.
func (s *Screen) NextPage() { s.page++ }
func (s *Screen) PrevPage() {
	if s.page > 1 {
		s.page--
	}
}

// SetPageSize changes the page size and resets to page 1, per the page-size
// contract.
func (s *Screen) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	s.pageSize = size
	s.page = 1
}

// SelectAllVisible applies select-all to the currently visible page.
func (s *Screen) SelectAllVisible(on bool) {
	view, err := s.Derive()
	if err != nil {
		return
	}
	ids := make([]string, len(view.Rows))
	for i, r := range view.Rows {
		ids[i] = r.ID
	}
	s.selected = grid.ApplyAll(s.selected, ids, on)
}

// ToggleRow flips one row's selection.
func (s *Screen) ToggleRow(id string) {
	s.selected = grid.Toggle(s.selected, id, !s.selected.Has(id))
}

// Filtered applies the active filters to the collection, then the active
// sort, and returns the result. Order of the source collection is preserved
// for equal sort keys (stable sort).
func (s *Screen) Filtered() ([]Record, error) {
	out := make([]Record, 0, len(s.records))
	for i, rec := range s.records {
		ok, err := s.matches(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if ok {
			out = append(out, rec)
		}
	}
	s.applySort(out)
	return out, nil
}

// Derive runs one full derivation pass: filter, sort, clamp the page, and
// hand the result to the controller.
func (s *Screen) Derive() (grid.View[Record], error) {
	rows, err := s.Filtered()
	if err != nil {
		return grid.View[Record]{}, err
	}
	pag := grid.Pagination{
		Mode:     grid.ModeClient,
		Page:     s.page,
		PageSize: s.pageSize,
	}.Resolve(len(rows)).Clamped()
	s.page = pag.Page

	return s.ctrl.Derive(grid.Props[Record]{
		Rows:       rows,
		Values:     s.values,
		Sort:       s.sortState,
		Pagination: pag,
		Selected:   s.selected,
	}), nil
}

// ExportCSV serializes the entire filtered collection, not just the visible
// page.
func (s *Screen) ExportCSV() (string, error) {
	rows, err := s.Filtered()
	if err != nil {
		return "", err
	}
	return s.ctrl.Export.Export(rows)
}

// ExportFilename returns the configured export target.
func (s *Screen) ExportFilename() string {
	if s.ctrl.Export.Filename != "" {
		return s.ctrl.Export.Filename
	}
	return "export.csv"
}

func (s *Screen) rowID(rec Record) string {
	if s.def.IDColumn == "" {
		return ""
	}
	v, ok := rec[s.def.IDColumn]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func (s *Screen) exportRow(rec Record) ([]grid.CellValue, error) {
	cells := make([]grid.CellValue, len(s.def.Columns))
	for i, col := range s.def.Columns {
		cells[i] = rec[col.Key]
	}
	return cells, nil
}

func (s *Screen) filterDef(key string) (grid.FilterDef, bool) {
	for _, def := range s.ctrl.Filters {
		if def.Key == key {
			return def, true
		}
	}
	return grid.FilterDef{}, false
}

func (s *Screen) filterSpec(key string) (config.FilterSpec, bool) {
	for _, spec := range s.def.Filters {
		if spec.Key == key {
			return spec, true
		}
	}
	return config.FilterSpec{}, false
}

// matches evaluates every active filter against one record; all must pass.
func (s *Screen) matches(rec Record) (bool, error) {
	for key, value := range s.values {
		if value == "" {
			continue
		}
		spec, ok := s.filterSpec(key)
		if !ok {
			continue
		}
		ok, err := s.matchesOne(spec, value, rec)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (s *Screen) matchesOne(spec config.FilterSpec, value string, rec Record) (bool, error) {
	switch grid.FilterKind(spec.Kind) {
	case grid.KindText:
		return s.textMatch(rec, value), nil
	case grid.KindSelect:
		return fmt.Sprint(rec[specColumn(spec)]) == value, nil
	case grid.KindBool:
		want, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("bool filter %q: %w", spec.Key, err)
		}
		got, _ := rec[specColumn(spec)].(bool)
		return got == want, nil
	case grid.KindExpr:
		p, ok := s.predicates[spec.Key]
		if !ok {
			compiled, err := celfilter.Compile(value)
			if err != nil {
				return false, err
			}
			s.predicates[spec.Key] = compiled
			p = compiled
		}
		return p.Matches(rec)
	default:
		return true, nil
	}
}

// textMatch is a case-insensitive substring search across the screen's
// declared columns.
func (s *Screen) textMatch(rec Record, query string) bool {
	q := strings.ToLower(query)
	for _, col := range s.def.Columns {
		v, ok := rec[col.Key]
		if !ok || v == nil {
			continue
		}
		if strings.Contains(strings.ToLower(fmt.Sprint(v)), q) {
			return true
		}
	}
	return false
}

func specColumn(spec config.FilterSpec) string {
	if spec.Column != "" {
		return spec.Column
	}
	return spec.Key
}

// applySort orders records by the active sort column. Cells that both parse
// as numbers compare numerically; everything else compares as
// case-insensitive strings, with missing values first in ascending order.
func (s *Screen) applySort(rows []Record) {
	field := s.sortState.Field
	if field == "" {
		return
	}
	desc := s.sortState.Direction == grid.Descending
	sort.SliceStable(rows, func(i, j int) bool {
		cmp := compareCells(rows[i][field], rows[j][field])
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareCells(a, b any) int {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	as := strings.ToLower(cellString(a))
	bs := strings.ToLower(cellString(b))
	return strings.Compare(as, bs)
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func buildColumns(defs []config.ColumnDef) []grid.Column[Record] {
	cols := make([]grid.Column[Record], len(defs))
	for i, def := range defs {
		align := grid.AlignLeft
		if def.Align == "right" {
			align = grid.AlignRight
		}
		title := def.Title
		if title == "" {
			title = def.Key
		}
		cols[i] = grid.Column[Record]{
			Key:        def.Key,
			Title:      title,
			Unsortable: def.Unsortable,
			Width:      def.Width,
			Align:      align,
		}
	}
	return cols
}

func buildFilters(specs []config.FilterSpec) []grid.FilterDef {
	defs := make([]grid.FilterDef, len(specs))
	for i, spec := range specs {
		opts := make([]grid.Option, len(spec.Options))
		for j, o := range spec.Options {
			label := o.Label
			if label == "" {
				label = o.Value
			}
			opts[j] = grid.Option{Value: o.Value, Label: label}
		}
		defs[i] = grid.FilterDef{
			Key:     spec.Key,
			Kind:    grid.FilterKind(spec.Kind),
			Label:   spec.Label,
			Options: opts,
		}
	}
	return defs
}

func columnTitles(defs []config.ColumnDef) []string {
	titles := make([]string, len(defs))
	for i, def := range defs {
		if def.Title != "" {
			titles[i] = def.Title
		} else {
			titles[i] = def.Key
		}
	}
	return titles
}
