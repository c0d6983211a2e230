package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func TestResolveClientMode(t *testing.T) {
	tests := []struct {
		name          string
		rows          int
		pageSize      int
		wantTotal     int
		wantPages     int
		wantShowCtrls bool
	}{
		{name: "three rows one page", rows: 3, pageSize: 10, wantTotal: 3, wantPages: 1, wantShowCtrls: false},
		{name: "exact multiple", rows: 50, pageSize: 10, wantTotal: 50, wantPages: 5, wantShowCtrls: true},
		{name: "remainder adds a page", rows: 51, pageSize: 10, wantTotal: 51, wantPages: 6, wantShowCtrls: true},
		{name: "empty collection still one page", rows: 0, pageSize: 10, wantTotal: 0, wantPages: 1, wantShowCtrls: false},
		{name: "page size one", rows: 4, pageSize: 1, wantTotal: 4, wantPages: 4, wantShowCtrls: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pagination{Page: 1, PageSize: tt.pageSize}.Resolve(tt.rows)
			assert.Equal(t, ModeClient, p.Mode)
			assert.Equal(t, tt.wantTotal, p.Total)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantShowCtrls, p.ShowControls())
		})
	}
}

func TestResolveServerModeTrustsCallerTotals(t *testing.T) {
	p := Pagination{Mode: ModeServer, Page: 3, PageSize: 10, Total: 95, TotalPages: 10}.Resolve(10)
	assert.Equal(t, 95, p.Total)
	assert.Equal(t, 10, p.TotalPages)

	// TotalPages falls back to a computation from Total when unset.
	p = Pagination{Mode: ModeServer, Page: 1, PageSize: 10, Total: 95}.Resolve(10)
	assert.Equal(t, 10, p.TotalPages)
}

func TestPageSliceClientMode(t *testing.T) {
	rows := makeRows(50)

	tests := []struct {
		name      string
		page      int
		pageSize  int
		wantLen   int
		wantFirst int
	}{
		{name: "first page", page: 1, pageSize: 10, wantLen: 10, wantFirst: 0},
		{name: "middle page", page: 3, pageSize: 10, wantLen: 10, wantFirst: 20},
		{name: "last partial page", page: 6, pageSize: 9, wantLen: 5, wantFirst: 45},
		{name: "page beyond total is empty", page: 7, pageSize: 10, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pagination{Page: tt.page, PageSize: tt.pageSize}.Resolve(len(rows))
			got := PageSlice(p, rows)
			assert.Len(t, got, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, got[0])
			}
		})
	}
}

func TestPageSliceServerModePassesThrough(t *testing.T) {
	page := makeRows(10)
	p := Pagination{Mode: ModeServer, Page: 4, PageSize: 10, Total: 95}.Resolve(len(page))
	assert.Equal(t, page, PageSlice(p, page))
}

func TestNavigationAffordances(t *testing.T) {
	p := Pagination{Page: 1, PageSize: 10}.Resolve(50)
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())

	p.Page = 5
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())
}

func TestWindow(t *testing.T) {
	p := Pagination{Page: 1, PageSize: 10}.Resolve(50)
	from, to := p.Window()
	assert.Equal(t, 1, from)
	assert.Equal(t, 10, to)

	p.Page = 5
	from, to = p.Window()
	assert.Equal(t, 41, from)
	assert.Equal(t, 50, to)

	p = Pagination{Mode: ModeServer, Page: 10, PageSize: 10, Total: 95}.Resolve(5)
	from, to = p.Window()
	assert.Equal(t, 91, from)
	assert.Equal(t, 95, to)

	p = Pagination{Page: 1, PageSize: 10}.Resolve(0)
	from, to = p.Window()
	assert.Zero(t, from)
	assert.Zero(t, to)
}

func TestClamped(t *testing.T) {
	p := Pagination{Page: 9, PageSize: 10}.Resolve(30)
	assert.Equal(t, 3, p.Clamped().Page)

	p = Pagination{Page: 2, PageSize: 10}.Resolve(30)
	assert.Equal(t, 2, p.Clamped().Page)
}
