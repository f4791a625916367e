package store

// Action is a state transition request. The set is closed: only the
// types in this package implement it.
type Action interface {
	// Kind is the stable name used in logs and metrics.
	Kind() string
	// Layer is the layer name the action targets.
	Layer() string
	isAction()
}

// SwitchToLayer makes Name the only visible layer and the active one.
type SwitchToLayer struct {
	Name string
}

func (SwitchToLayer) Kind() string    { return "switch" }
func (a SwitchToLayer) Layer() string { return a.Name }
func (SwitchToLayer) isAction()       {}

// ToggleLayer flips the visibility of the layer called Name and
// clears the active layer.
type ToggleLayer struct {
	Name string
}

func (ToggleLayer) Kind() string    { return "toggle" }
func (a ToggleLayer) Layer() string { return a.Name }
func (ToggleLayer) isAction()       {}

// PickLayer is the select-or-deselect request for Name. The store
// resolves it against the state it is applied to, under the same lock,
// so concurrent picks behave as if applied one after another.
type PickLayer struct {
	Name string
}

func (PickLayer) Kind() string    { return "pick" }
func (a PickLayer) Layer() string { return a.Name }
func (PickLayer) isAction()       {}

// Resolve returns the action a stands for in state s. A PickLayer
// becomes the SwitchToLayer or ToggleLayer that SelectLayer picks;
// every other action is returned unchanged.
func Resolve(s AppState, a Action) Action {
	if p, ok := a.(PickLayer); ok {
		return SelectLayer(s, p.Name)
	}
	return a
}

// SelectLayer returns the select-or-deselect action for name given the
// current state: selecting the active layer deselects it, anything
// else switches to it.
func SelectLayer(s AppState, name string) Action {
	if name == s.ActiveLayer {
		return ToggleLayer{Name: name}
	}
	return SwitchToLayer{Name: name}
}
