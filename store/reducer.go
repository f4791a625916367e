package store

import "github.com/elizafairlady/layers/layer"

// AppState is the whole application state.
type AppState struct {
	ActiveLayer string
	Layers      []layer.Record
}

// Initial returns the startup state: layer A is active while every
// record is still hidden. The mismatch is inherited from the seed data
// and is left for the first transition to resolve.
func Initial() AppState {
	return AppState{
		ActiveLayer: "A",
		Layers:      layer.Seed(),
	}
}

// Reduce handles all state transitions.
// This is a pure function: s is never modified and the result never
// shares a layers slice with s.
func Reduce(s AppState, a Action) AppState {
	a = Resolve(s, a)
	return AppState{
		ActiveLayer: reduceActive(s.ActiveLayer, a),
		Layers:      reduceLayers(s.Layers, s.ActiveLayer, a),
	}
}

func reduceActive(active string, a Action) string {
	switch a := a.(type) {
	case SwitchToLayer:
		return a.Name
	case ToggleLayer:
		return ""
	}
	return active
}

func reduceLayers(layers []layer.Record, active string, a Action) []layer.Record {
	out := make([]layer.Record, len(layers))
	copy(out, layers)

	switch a := a.(type) {
	case SwitchToLayer:
		for i := range out {
			out[i].Visible = out[i].Name == a.Name
		}
	case ToggleLayer:
		for i := range out {
			if out[i].Name != a.Name {
				continue
			}
			// Deselecting the active layer always hides it, even when
			// the seed left it hidden.
			out[i].Visible = !out[i].Visible && a.Name != active
		}
	}
	return out
}
