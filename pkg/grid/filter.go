package grid

// FilterKind identifies how a filter's control behaves and how its value is
// interpreted by the data source.
type FilterKind string

const (
	// KindText is a free-text search across the screen's columns.
	KindText FilterKind = "text"
	// KindSelect restricts a single column to one of a fixed option set.
	KindSelect FilterKind = "select"
	// KindBool restricts a boolean column to "true" or "false".
	KindBool FilterKind = "bool"
	// KindExpr is a CEL expression evaluated against each record.
	KindExpr FilterKind = "expr"
)

// Option is one selectable value of a KindSelect filter.
type Option struct {
	Value string
	Label string
}

// FilterDef declares one filter control. Definitions are stateless; current
// values live in a Values map owned by the calling screen.
type FilterDef struct {
	Key     string
	Kind    FilterKind
	Label   string
	Options []Option
}

// Values maps filter key to its current raw value. A filter is active iff its
// value is a non-empty string; absent and empty entries are equivalent.
type Values map[string]string

// Active reports whether the filter with the given key currently holds a
// non-empty value.
func (v Values) Active(key string) bool {
	return v[key] != ""
}

// ActiveCount returns the number of declared filters that are active.
// Values without a matching definition are ignored.
func ActiveCount(defs []FilterDef, values Values) int {
	n := 0
	for _, def := range defs {
		if values.Active(def.Key) {
			n++
		}
	}
	return n
}

// Chip is the removable badge shown for one active filter. Display holds the
// human-readable value: for select filters the matching option label, falling
// back to the raw value when no option matches.
type Chip struct {
	Key     string
	Label   string
	Display string
}

// Chips returns chip descriptors for every active filter, in definition order.
// Removing a chip must emit the same change request as clearing the control
// (OnFilterChange(key, "")), keeping chip UI and control UI symmetric.
func Chips(defs []FilterDef, values Values) []Chip {
	var chips []Chip
	for _, def := range defs {
		raw := values[def.Key]
		if raw == "" {
			continue
		}
		chips = append(chips, Chip{
			Key:     def.Key,
			Label:   chipLabel(def),
			Display: displayValue(def, raw),
		})
	}
	return chips
}

func chipLabel(def FilterDef) string {
	if def.Label != "" {
		return def.Label
	}
	return def.Key
}

func displayValue(def FilterDef, raw string) string {
	if def.Kind == KindSelect {
		for _, opt := range def.Options {
			if opt.Value == raw {
				return opt.Label
			}
		}
	}
	return raw
}
