package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/gridctl/pkg/grid"
	"github.com/oakwood-commons/gridctl/internal/screen"
)

const maxPlainColumnWidth = 40

// renderScreen writes one non-interactive rendering of the screen: the
// visible page as a plain table, the full filtered set as CSV, or the full
// filtered set as JSON.
func renderScreen(w io.Writer, s *screen.Screen, format string) error {
	switch format {
	case "table", "":
		return renderTable(w, s)
	case "csv":
		out, err := s.ExportCSV()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	case "json":
		rows, err := s.Filtered()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		return fmt.Errorf("unknown output format %q, want table, csv, or json", format)
	}
}

func renderTable(w io.Writer, s *screen.Screen) error {
	view, err := s.Derive()
	if err != nil {
		return err
	}

	if title := s.Title(); title != "" {
		fmt.Fprintln(w, title)
	}
	if len(view.Chips) > 0 {
		parts := make([]string, len(view.Chips))
		for i, chip := range view.Chips {
			parts[i] = fmt.Sprintf("[%s: %s]", chip.Label, chip.Display)
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
	}

	if view.Empty != grid.EmptyNone {
		fmt.Fprintln(w, view.EmptyText)
		return nil
	}

	widths := columnWidths(view)
	fmt.Fprintln(w, formatRow(headerCells(view), widths))
	fmt.Fprintln(w, separatorRow(widths))
	for _, row := range view.Rows {
		fmt.Fprintln(w, formatRow(row.Cells, widths))
	}

	if view.ShowPagination {
		fmt.Fprintf(w, "Showing %d to %d of %d (page %d/%d)\n",
			view.WindowFrom, view.WindowTo,
			view.Pagination.Total, view.Pagination.Page, view.Pagination.TotalPages)
	}
	return nil
}

func headerCells(view grid.View[screen.Record]) []string {
	cells := make([]string, len(view.Headers))
	for i, h := range view.Headers {
		title := h.Title
		switch h.SortDir {
		case grid.Ascending:
			title += " ↑"
		case grid.Descending:
			title += " ↓"
		}
		cells[i] = title
	}
	return cells
}

// columnWidths sizes each column to its widest cell, capped so one long
// value cannot blow out the layout. Terminal width only matters as an upper
// bound on the cap.
func columnWidths(view grid.View[screen.Record]) []int {
	widths := make([]int, len(view.Headers))
	for i, cell := range headerCells(view) {
		widths[i] = runewidth.StringWidth(cell)
	}
	capWidth := maxPlainColumnWidth
	if len(view.Headers) > 0 {
		if per := detectTerminalWidth() / len(view.Headers); per > 8 && per < capWidth {
			capWidth = per
		}
	}
	for _, row := range view.Rows {
		for i, cell := range row.Cells {
			if i >= len(widths) {
				break
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] > capWidth {
			widths[i] = capWidth
		}
	}
	return widths
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if runewidth.StringWidth(cell) > widths[i] {
			cell = runewidth.Truncate(cell, widths[i], "…")
		}
		parts[i] = runewidth.FillRight(cell, widths[i])
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func separatorRow(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	return strings.Join(parts, "  ")
}
