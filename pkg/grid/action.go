package grid

// Action is a per-row affordance (open, edit, delete, download, ...).
// Stateless: Visible and Disabled are evaluated against each row at
// derivation time. An action click and a row click are mutually exclusive
// per interaction; renderers must not forward both.
type Action[T any] struct {
	Label string
	// Key is the shortcut or identifier a renderer binds the action to.
	Key       string
	OnClick   func(row T)
	ColorHint string
	Disabled  func(row T) bool
	Visible   func(row T) bool
}

// VisibleFor reports whether the action renders for the given row.
func (a Action[T]) VisibleFor(row T) bool {
	return a.Visible == nil || a.Visible(row)
}

// DisabledFor reports whether the action renders disabled for the given row.
func (a Action[T]) DisabledFor(row T) bool {
	return a.Disabled != nil && a.Disabled(row)
}
