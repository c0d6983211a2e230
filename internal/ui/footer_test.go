package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakwood-commons/gridctl/pkg/grid"
	"github.com/oakwood-commons/gridctl/internal/screen"
)

func multiPageView() grid.View[screen.Record] {
	return grid.View[screen.Record]{
		ShowPagination: true,
		WindowFrom:     1,
		WindowTo:       10,
		Pagination:     grid.Pagination{Page: 1, PageSize: 10, Total: 50, TotalPages: 5},
	}
}

func TestFooterShowsWindowLabel(t *testing.T) {
	f := FooterModel{NoColor: true, Width: 92}
	out := f.View(multiPageView(), 0, "")
	assert.Contains(t, out, "Showing 1 to 10 of 50")
	assert.Contains(t, out, "page 1/5")
}

func TestFooterOmitsPaginationOnSinglePage(t *testing.T) {
	f := FooterModel{NoColor: true}
	view := grid.View[screen.Record]{
		Pagination: grid.Pagination{Page: 1, PageSize: 10, Total: 3, TotalPages: 1},
	}
	out := f.View(view, 0, "")
	assert.NotContains(t, out, "Showing")
	assert.NotContains(t, out, "page size")
}

func TestFooterChipsAndSelection(t *testing.T) {
	f := FooterModel{NoColor: true}
	view := multiPageView()
	view.Chips = []grid.Chip{{Key: "status", Label: "Status", Display: "Open"}}

	out := f.View(view, 3, "")
	assert.Contains(t, out, "[Status: Open ×]")
	assert.Contains(t, out, "3 selected")
}

func TestFooterStatusMessage(t *testing.T) {
	f := FooterModel{NoColor: true}
	out := f.View(multiPageView(), 0, "exported 10 row(s) to out.csv")
	assert.Contains(t, out, "exported 10 row(s)")
}
