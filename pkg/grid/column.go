package grid

import (
	"fmt"
	"reflect"
)

// Placeholder is rendered for nil or empty cell values so that "empty" is
// visually distinct from "not yet loaded".
const Placeholder = "-"

// Align controls horizontal cell alignment.
type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// Column describes one column of a screen. Columns are supplied once per
// screen and treated as immutable for the controller's lifetime.
//
// Cell content resolves in precedence order: Render, then Accessor, then a
// fallback lookup of Key on the row itself (map index or exported struct
// field). Normally only one of Render/Accessor is set.
type Column[T any] struct {
	Key      string
	Title    string
	Accessor func(row T) CellValue
	Render   func(row T) string
	// Unsortable opts a column out of sorting; the zero value leaves the
	// column sortable.
	Unsortable bool
	Width      int
	Align      Align
}

// Sortable reports whether sort requests are allowed for this column.
func (c Column[T]) Sortable() bool {
	return !c.Unsortable
}

// CellValue resolves the raw cell value for a row, before placeholder
// substitution. Render wins over Accessor, which wins over the Key fallback.
func (c Column[T]) CellValue(row T) CellValue {
	if c.Render != nil {
		return c.Render(row)
	}
	if c.Accessor != nil {
		return c.Accessor(row)
	}
	return fallbackValue(row, c.Key)
}

// CellText resolves a row's cell to display text, rendering nil and empty
// values as the Placeholder.
func (c Column[T]) CellText(row T) string {
	v := c.CellValue(row)
	if v == nil {
		return Placeholder
	}
	s := fmt.Sprint(v)
	if s == "" {
		return Placeholder
	}
	return s
}

// fallbackValue reads row[key] for map rows, or the exported struct field
// named key (case-sensitive) for struct rows. Anything else yields nil.
func fallbackValue(row any, key string) CellValue {
	if m, ok := row.(map[string]any); ok {
		return m[key]
	}
	rv := reflect.ValueOf(row)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		mv := rv.MapIndex(reflect.ValueOf(key))
		if !mv.IsValid() {
			return nil
		}
		return mv.Interface()
	}
	if rv.Kind() == reflect.Struct {
		fv := rv.FieldByName(key)
		if fv.IsValid() && fv.CanInterface() {
			return fv.Interface()
		}
	}
	return nil
}
