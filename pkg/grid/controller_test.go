package grid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type member struct {
	ID   string
	Name string
	Role string
}

func memberController() *Controller[member] {
	return &Controller[member]{
		Columns: []Column[member]{
			{Key: "ID", Title: "ID"},
			{Key: "name", Title: "Name", Accessor: func(m member) CellValue { return m.Name }},
			{Key: "role", Title: "Role", Render: func(m member) string { return "[" + m.Role + "]" }, Unsortable: true},
		},
		GetRowID: func(m member) string { return m.ID },
		Filters: []FilterDef{
			{Key: "search", Kind: KindText, Label: "Search"},
		},
	}
}

func members(n int) []member {
	rows := make([]member, n)
	for i := range rows {
		rows[i] = member{ID: fmt.Sprintf("m%d", i), Name: fmt.Sprintf("Member %d", i), Role: "USER"}
	}
	return rows
}

func TestDeriveResolvesCellsByPrecedence(t *testing.T) {
	c := memberController()
	view := c.Derive(Props[member]{
		Rows:       []member{{ID: "m1", Name: "Ada", Role: "ADMIN"}},
		Pagination: Pagination{Page: 1, PageSize: 10},
	})

	require.Len(t, view.Rows, 1)
	// Key fallback reads the exported struct field, accessor wins over
	// fallback, render wins over everything.
	assert.Equal(t, []string{"m1", "Ada", "[ADMIN]"}, view.Rows[0].Cells)
}

func TestDeriveEmptyValuesRenderPlaceholder(t *testing.T) {
	c := memberController()
	view := c.Derive(Props[member]{
		Rows:       []member{{ID: "m1", Name: "", Role: ""}},
		Pagination: Pagination{Page: 1, PageSize: 10},
	})

	require.Len(t, view.Rows, 1)
	assert.Equal(t, Placeholder, view.Rows[0].Cells[1])
}

func TestDeriveLoadingShortCircuits(t *testing.T) {
	c := memberController()
	view := c.Derive(Props[member]{Loading: true, Rows: members(5)})

	assert.True(t, view.Loading)
	assert.Empty(t, view.Rows)
	assert.Equal(t, EmptyNone, view.Empty)
	// Headers stay available so the frame can keep its shape.
	assert.Len(t, view.Headers, 3)
}

func TestDeriveEmptyStateVariants(t *testing.T) {
	t.Run("generic no data", func(t *testing.T) {
		view := memberController().Derive(Props[member]{Pagination: Pagination{Page: 1, PageSize: 10}})
		assert.Equal(t, EmptyNoData, view.Empty)
		assert.Equal(t, "No data to display.", view.EmptyText)
	})

	t.Run("filtered variant with active search", func(t *testing.T) {
		view := memberController().Derive(Props[member]{
			Values:     Values{"search": "zzz"},
			Pagination: Pagination{Page: 1, PageSize: 10},
		})
		assert.Equal(t, EmptyFiltered, view.Empty)
		assert.Equal(t, "No results match the active filters.", view.EmptyText)
	})

	t.Run("custom render wins", func(t *testing.T) {
		c := memberController()
		c.EmptyRender = func() string { return "Add your first member to get started." }
		view := c.Derive(Props[member]{
			Values:     Values{"search": "zzz"},
			Pagination: Pagination{Page: 1, PageSize: 10},
		})
		assert.Equal(t, EmptyCustom, view.Empty)
		assert.Equal(t, "Add your first member to get started.", view.EmptyText)
	})

	t.Run("no empty state when rows exist", func(t *testing.T) {
		view := memberController().Derive(Props[member]{
			Rows:       members(2),
			Pagination: Pagination{Page: 1, PageSize: 10},
		})
		assert.Equal(t, EmptyNone, view.Empty)
	})
}

func TestDerivePaginationScenario(t *testing.T) {
	// 50 rows, page size 10, page 1: showing 1 to 10 of 50, prev disabled,
	// next enabled.
	c := memberController()
	view := c.Derive(Props[member]{
		Rows:       members(50),
		Pagination: Pagination{Page: 1, PageSize: 10},
	})

	assert.Len(t, view.Rows, 10)
	assert.True(t, view.ShowPagination)
	assert.Equal(t, 1, view.WindowFrom)
	assert.Equal(t, 10, view.WindowTo)
	assert.False(t, view.Pagination.HasPrev())
	assert.True(t, view.Pagination.HasNext())
}

func TestDeriveNoPaginationChromeOnSinglePage(t *testing.T) {
	view := memberController().Derive(Props[member]{
		Rows:       members(3),
		Pagination: Pagination{Page: 1, PageSize: 10},
	})

	assert.False(t, view.ShowPagination)
	assert.Equal(t, 1, view.Pagination.TotalPages)
	assert.Len(t, view.Rows, 3)
}

func TestDeriveSelectionTriState(t *testing.T) {
	c := memberController()
	rows := members(3)

	view := c.Derive(Props[member]{
		Rows:       rows,
		Selected:   Selection{"m0": true},
		Pagination: Pagination{Page: 1, PageSize: 10},
	})
	assert.Equal(t, Indeterminate, view.SelectAll)
	assert.True(t, view.Rows[0].Selected)
	assert.False(t, view.Rows[1].Selected)

	view = c.Derive(Props[member]{
		Rows:       rows,
		Selected:   Selection{"m0": true, "m1": true, "m2": true},
		Pagination: Pagination{Page: 1, PageSize: 10},
	})
	assert.Equal(t, Checked, view.SelectAll)
}

func TestDeriveSelectionCountsVisiblePageOnly(t *testing.T) {
	c := memberController()
	sel := Selection{}
	for i := 0; i < 10; i++ {
		sel[fmt.Sprintf("m%d", i)] = true
	}

	// Page 1 is fully selected, page 2 not at all.
	view := c.Derive(Props[member]{
		Rows:       members(20),
		Selected:   sel,
		Pagination: Pagination{Page: 1, PageSize: 10},
	})
	assert.Equal(t, Checked, view.SelectAll)

	view = c.Derive(Props[member]{
		Rows:       members(20),
		Selected:   sel,
		Pagination: Pagination{Page: 2, PageSize: 10},
	})
	assert.Equal(t, Unchecked, view.SelectAll)
}

func TestDeriveActionVisibility(t *testing.T) {
	rowClicks := 0
	c := memberController()
	c.Callbacks.OnRowClick = func(member) { rowClicks++ }
	c.Actions = []Action[member]{
		{
			Label:   "Promote",
			Key:     "p",
			Visible: func(m member) bool { return m.Role == "ADMIN" },
		},
		{
			Label:    "Delete",
			Key:      "d",
			Disabled: func(m member) bool { return m.Role == "ADMIN" },
		},
	}

	rows := []member{
		{ID: "m1", Name: "Ada", Role: "ADMIN"},
		{ID: "m2", Name: "Bob", Role: "USER"},
	}
	view := c.Derive(Props[member]{Rows: rows, Pagination: Pagination{Page: 1, PageSize: 10}})

	require.Len(t, view.Rows[0].Actions, 2)
	assert.Equal(t, "Promote", view.Rows[0].Actions[0].Label)
	assert.True(t, view.Rows[0].Actions[1].Disabled)

	// Non-admin row only gets the always-visible action.
	require.Len(t, view.Rows[1].Actions, 1)
	assert.Equal(t, "Delete", view.Rows[1].Actions[0].Label)

	// Invoking an action never also triggers a row click.
	assert.Zero(t, rowClicks)
}

func TestRequestSortForwardsOnlySortableColumns(t *testing.T) {
	var sorted []string
	c := memberController()
	c.Callbacks.OnSort = func(field string) { sorted = append(sorted, field) }

	c.RequestSort("name")
	c.RequestSort("role")    // unsortable
	c.RequestSort("unknown") // not a column
	assert.Equal(t, []string{"name"}, sorted)
}

func TestRemoveChipEmitsClearChange(t *testing.T) {
	type change struct{ key, value string }
	var got []change
	c := memberController()
	c.Callbacks.OnFilterChange = func(key, value string) { got = append(got, change{key, value}) }

	c.RemoveChip("search")
	require.Len(t, got, 1)
	assert.Equal(t, change{"search", ""}, got[0])
}

func TestRequestForwarding(t *testing.T) {
	var pages, sizes []int
	var selectAll, selectRow []bool
	var cleared bool
	var clickedRows []string

	c := memberController()
	c.Callbacks = Callbacks[member]{
		OnClearFilters:   func() { cleared = true },
		OnPageChange:     func(p int) { pages = append(pages, p) },
		OnPageSizeChange: func(s int) { sizes = append(sizes, s) },
		OnSelectAll:      func(on bool) { selectAll = append(selectAll, on) },
		OnSelectRow:      func(id string, on bool) { selectRow = append(selectRow, on) },
		OnRowClick:       func(m member) { clickedRows = append(clickedRows, m.ID) },
	}

	c.RequestPage(2)
	c.RequestPageSize(25)
	c.RequestSelectAll(true)
	c.RequestSelectRow("m1", false)
	c.RequestClearFilters()
	c.RequestRowClick(member{ID: "m9"})

	assert.Equal(t, []int{2}, pages)
	assert.Equal(t, []int{25}, sizes)
	assert.Equal(t, []bool{true}, selectAll)
	assert.Equal(t, []bool{false}, selectRow)
	assert.True(t, cleared)
	assert.Equal(t, []string{"m9"}, clickedRows)
}

func TestNilCallbacksAreSafe(t *testing.T) {
	c := memberController()
	assert.NotPanics(t, func() {
		c.RequestSort("name")
		c.RequestPage(1)
		c.RequestPageSize(10)
		c.RequestSelectAll(true)
		c.RequestSelectRow("m1", true)
		c.RequestClearFilters()
		c.RequestFilterChange("search", "x")
		c.RequestRowClick(member{})
	})
}
