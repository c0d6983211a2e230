package grid

import (
	"fmt"
	"strings"
)

// CellValue is the value of one table cell. It is an opaque scalar from the
// controller's point of view; Stringify decides its text form.
type CellValue = any

// SerializeCSV renders headers and rows to CSV text. Every cell is wrapped in
// double quotes regardless of content, with embedded quotes doubled. Rows are
// newline-joined with the header row first and no trailing newline. Nil cells
// serialize to the empty string.
//
// Unconditional quoting is deliberate: it sidesteps delimiter/newline edge
// cases that conditional quoting (encoding/csv) leaves to heuristics.
func SerializeCSV(headers []string, rows [][]CellValue) (string, error) {
	var sb strings.Builder

	writeRecord(&sb, headerCells(headers))
	for i, row := range rows {
		if len(row) != len(headers) {
			return "", fmt.Errorf("csv row %d has %d cells, want %d", i, len(row), len(headers))
		}
		sb.WriteByte('\n')
		writeRecord(&sb, row)
	}
	return sb.String(), nil
}

func headerCells(headers []string) []CellValue {
	cells := make([]CellValue, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}

func writeRecord(sb *strings.Builder, cells []CellValue) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(cellText(cell), `"`, `""`))
		sb.WriteByte('"')
	}
}

func cellText(cell CellValue) string {
	if cell == nil {
		return ""
	}
	if s, ok := cell.(string); ok {
		return s
	}
	return fmt.Sprint(cell)
}

// ExportSpec describes CSV export for one screen. GetRowData maps a row to
// one CSV record; it runs over the entire filtered collection, not just the
// visible page, so users get complete filtered results without paging.
type ExportSpec[T any] struct {
	Enabled    bool
	Filename   string
	Headers    []string
	GetRowData func(row T) ([]CellValue, error)
	OnExport   func()
}

// Export serializes every row in the filtered collection. Any GetRowData
// error aborts the export with no partial output.
func (e ExportSpec[T]) Export(rows []T) (string, error) {
	if e.GetRowData == nil {
		return "", fmt.Errorf("csv export: GetRowData is not set")
	}
	records := make([][]CellValue, 0, len(rows))
	for i, row := range rows {
		cells, err := e.GetRowData(row)
		if err != nil {
			return "", fmt.Errorf("csv export: row %d: %w", i, err)
		}
		records = append(records, cells)
	}
	out, err := SerializeCSV(e.Headers, records)
	if err != nil {
		return "", err
	}
	if e.OnExport != nil {
		e.OnExport()
	}
	return out, nil
}
