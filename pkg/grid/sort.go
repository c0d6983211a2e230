package grid

// Direction is a binary sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// SortState is the active sort field and direction. The zero value means no
// active sort. The controller only tracks which ordering is active; applying
// it (locale rules, null handling, numeric vs lexical compare) is the data
// source's concern so that comparison logic is not duplicated per column type.
type SortState struct {
	Field     string
	Direction Direction
}

// RequestSort returns the state after the user requests sorting by field:
// re-selecting the active field toggles direction, selecting any other field
// (or sorting for the first time) resets to ascending.
func (s SortState) RequestSort(field string) SortState {
	if s.Field == field && s.Field != "" {
		return SortState{Field: field, Direction: s.Direction.Toggle()}
	}
	return SortState{Field: field, Direction: Ascending}
}
