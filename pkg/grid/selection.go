package grid

// Selection is the set of selected row IDs, owned by the calling screen.
// The controller treats it as read-only on each derivation pass; mutation
// happens only through the screen's select-row/select-all handlers.
type Selection map[string]bool

// Has reports membership for one row ID.
func (s Selection) Has(id string) bool {
	return s[id]
}

// Count returns the number of selected IDs.
func (s Selection) Count() int {
	n := 0
	for _, on := range s {
		if on {
			n++
		}
	}
	return n
}

// TriValue is the header select-all checkbox state.
type TriValue int

const (
	// Unchecked: none of the visible rows are selected (including an empty page).
	Unchecked TriValue = iota
	// Indeterminate: at least one but not all visible rows are selected.
	Indeterminate
	// Checked: every visible row is selected and the page is non-empty.
	Checked
)

// TriState computes the select-all checkbox state from the currently visible
// row IDs intersected with the selection set.
func TriState(visibleIDs []string, selected Selection) TriValue {
	if len(visibleIDs) == 0 {
		return Unchecked
	}
	n := 0
	for _, id := range visibleIDs {
		if selected.Has(id) {
			n++
		}
	}
	switch n {
	case 0:
		return Unchecked
	case len(visibleIDs):
		return Checked
	default:
		return Indeterminate
	}
}

// Scope says which rows a select-all request applies to. Observed screens
// apply it to the visible page; making the scope an explicit parameter keeps
// that a documented decision rather than an implicit convention.
type Scope string

const (
	// ScopePage applies select-all to the currently visible page only.
	ScopePage Scope = "page"
	// ScopeFiltered applies select-all to the entire filtered collection.
	ScopeFiltered Scope = "filtered"
)

// ApplyAll adds (on=true) or removes (on=false) every given row ID from the
// selection, returning the same map for convenience. A nil selection is
// allocated when adding.
func ApplyAll(selected Selection, ids []string, on bool) Selection {
	if selected == nil {
		selected = Selection{}
	}
	for _, id := range ids {
		if on {
			selected[id] = true
		} else {
			delete(selected, id)
		}
	}
	return selected
}

// Toggle flips one row's membership to the given state.
func Toggle(selected Selection, id string, on bool) Selection {
	return ApplyAll(selected, []string{id}, on)
}
