// Package grid implements a generic tabular data presentation controller:
// filter, sort, pagination, and selection state derivation plus CSV export
// for record collections of any row type. The controller owns no state and
// performs no I/O; each screen passes its current state in and receives a
// fully derived view snapshot back, with user interactions forwarded through
// callbacks.
package grid

// Callbacks are the outbound edge of the controller. They are invoked only in
// response to a forwarded user interaction, never spontaneously.
type Callbacks[T any] struct {
	OnFilterChange   func(key, value string)
	OnClearFilters   func()
	OnSort           func(field string)
	OnPageChange     func(page int)
	OnPageSizeChange func(size int)
	OnSelectAll      func(on bool)
	OnSelectRow      func(id string, on bool)
	OnRowClick       func(row T)
}

// Controller is the per-screen wiring: columns, filters, actions, identity,
// and callbacks. It is configured once per screen and holds no mutable state;
// all state arrives through Props on each Derive call.
type Controller[T any] struct {
	Columns  []Column[T]
	GetRowID func(row T) string
	Filters  []FilterDef
	Actions  []Action[T]
	Export   ExportSpec[T]
	// SelectScope says which rows select-all applies to. Zero value is
	// ScopePage, matching how list screens are observed to behave.
	SelectScope Scope
	Callbacks   Callbacks[T]
	// EmptyRender, when set, replaces both built-in empty-state messages.
	EmptyRender func() string
}

// Props is the caller-owned state for one derivation pass. Rows is the full
// filtered collection in client mode, or exactly the current page in server
// mode.
type Props[T any] struct {
	Rows       []T
	Values     Values
	Sort       SortState
	Pagination Pagination
	Selected   Selection
	Loading    bool
}

// EmptyVariant identifies which empty-state message applies.
type EmptyVariant int

const (
	// EmptyNone: the view has rows (or is loading).
	EmptyNone EmptyVariant = iota
	// EmptyCustom: the screen supplied its own empty-state render.
	EmptyCustom
	// EmptyFiltered: no records match the active filters.
	EmptyFiltered
	// EmptyNoData: the collection itself is empty.
	EmptyNoData
)

// HeaderView is one derived column header.
type HeaderView struct {
	Key      string
	Title    string
	Sortable bool
	// SortDir is the active direction when this column is the sort field,
	// empty otherwise.
	SortDir Direction
}

// ActionView is one action resolved against a concrete row. Hidden actions
// are omitted from the row entirely.
type ActionView struct {
	Label     string
	Key       string
	ColorHint string
	Disabled  bool
}

// RowView is one derived visible row.
type RowView[T any] struct {
	ID       string
	Row      T
	Cells    []string
	Selected bool
	Actions  []ActionView
}

// View is the full derived snapshot for one render pass.
type View[T any] struct {
	Loading bool

	Headers   []HeaderView
	Rows      []RowView[T]
	SelectAll TriValue

	Pagination     Pagination
	ShowPagination bool
	WindowFrom     int
	WindowTo       int

	ActiveFilters int
	Chips         []Chip

	Empty     EmptyVariant
	EmptyText string
}

// Derive recomputes the view from the current props. It is a pure function
// of its inputs: there is no cached derived state to invalidate, and a
// superseded state simply never gets rendered.
func (c *Controller[T]) Derive(props Props[T]) View[T] {
	if props.Loading {
		// Loading short-circuits the whole body: no rows, no empty state.
		return View[T]{Loading: true, Headers: c.headers(props.Sort)}
	}

	pag := props.Pagination.Resolve(len(props.Rows))
	visible := PageSlice(pag, props.Rows)

	rows := make([]RowView[T], 0, len(visible))
	visibleIDs := make([]string, 0, len(visible))
	for _, row := range visible {
		id := c.rowID(row)
		visibleIDs = append(visibleIDs, id)
		rows = append(rows, RowView[T]{
			ID:       id,
			Row:      row,
			Cells:    c.cells(row),
			Selected: props.Selected.Has(id),
			Actions:  c.rowActions(row),
		})
	}

	from, to := pag.Window()
	view := View[T]{
		Headers:        c.headers(props.Sort),
		Rows:           rows,
		SelectAll:      TriState(visibleIDs, props.Selected),
		Pagination:     pag,
		ShowPagination: pag.ShowControls(),
		WindowFrom:     from,
		WindowTo:       to,
		ActiveFilters:  ActiveCount(c.Filters, props.Values),
		Chips:          Chips(c.Filters, props.Values),
	}

	if len(rows) == 0 && pag.Total == 0 {
		view.Empty, view.EmptyText = c.emptyState(view.ActiveFilters)
	}
	return view
}

func (c *Controller[T]) emptyState(activeFilters int) (EmptyVariant, string) {
	if c.EmptyRender != nil {
		return EmptyCustom, c.EmptyRender()
	}
	if activeFilters > 0 {
		return EmptyFiltered, "No results match the active filters."
	}
	return EmptyNoData, "No data to display."
}

func (c *Controller[T]) headers(sort SortState) []HeaderView {
	headers := make([]HeaderView, len(c.Columns))
	for i, col := range c.Columns {
		h := HeaderView{Key: col.Key, Title: col.Title, Sortable: col.Sortable()}
		if sort.Field == col.Key {
			h.SortDir = sort.Direction
		}
		headers[i] = h
	}
	return headers
}

func (c *Controller[T]) cells(row T) []string {
	cells := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		cells[i] = col.CellText(row)
	}
	return cells
}

func (c *Controller[T]) rowActions(row T) []ActionView {
	var out []ActionView
	for _, a := range c.Actions {
		if !a.VisibleFor(row) {
			continue
		}
		out = append(out, ActionView{
			Label:     a.Label,
			Key:       a.Key,
			ColorHint: a.ColorHint,
			Disabled:  a.DisabledFor(row),
		})
	}
	return out
}

func (c *Controller[T]) rowID(row T) string {
	if c.GetRowID == nil {
		return ""
	}
	return c.GetRowID(row)
}

// RequestSort forwards a sort request for the given column, ignoring columns
// that are unknown or not sortable. The new state is the caller's to compute
// (see SortState.RequestSort) and pass back in on the next derivation.
func (c *Controller[T]) RequestSort(field string) {
	for _, col := range c.Columns {
		if col.Key == field {
			if col.Sortable() && c.Callbacks.OnSort != nil {
				c.Callbacks.OnSort(field)
			}
			return
		}
	}
}

// RequestFilterChange forwards a filter value change.
func (c *Controller[T]) RequestFilterChange(key, value string) {
	if c.Callbacks.OnFilterChange != nil {
		c.Callbacks.OnFilterChange(key, value)
	}
}

// RemoveChip clears the filter behind a chip. It emits exactly the change
// request clearing the underlying control would emit.
func (c *Controller[T]) RemoveChip(key string) {
	c.RequestFilterChange(key, "")
}

// RequestClearFilters forwards a clear-all request.
func (c *Controller[T]) RequestClearFilters() {
	if c.Callbacks.OnClearFilters != nil {
		c.Callbacks.OnClearFilters()
	}
}

// RequestPage forwards a page change.
func (c *Controller[T]) RequestPage(page int) {
	if c.Callbacks.OnPageChange != nil {
		c.Callbacks.OnPageChange(page)
	}
}

// RequestPageSize forwards a page-size change. Callers are expected to reset
// to page 1 when handling it.
func (c *Controller[T]) RequestPageSize(size int) {
	if c.Callbacks.OnPageSizeChange != nil {
		c.Callbacks.OnPageSizeChange(size)
	}
}

// RequestSelectAll forwards the select-all toggle. Which rows it covers is
// the screen's policy, declared via SelectScope.
func (c *Controller[T]) RequestSelectAll(on bool) {
	if c.Callbacks.OnSelectAll != nil {
		c.Callbacks.OnSelectAll(on)
	}
}

// RequestSelectRow forwards a per-row selection toggle. A selection toggle
// never also fires the row click.
func (c *Controller[T]) RequestSelectRow(id string, on bool) {
	if c.Callbacks.OnSelectRow != nil {
		c.Callbacks.OnSelectRow(id, on)
	}
}

// RequestRowClick forwards a row activation.
func (c *Controller[T]) RequestRowClick(row T) {
	if c.Callbacks.OnRowClick != nil {
		c.Callbacks.OnRowClick(row)
	}
}
