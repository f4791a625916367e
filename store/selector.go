package store

import "github.com/elizafairlady/layers/layer"

// Props is the view-ready projection of AppState.
type Props struct {
	Layers []layer.Record
	// Active is the record named by AppState.ActiveLayer, or nil.
	Active *layer.Record
}

// Select derives Props from s. It copies the layers so views can keep
// the result after the store moves on.
func Select(s AppState) Props {
	p := Props{Layers: make([]layer.Record, len(s.Layers))}
	copy(p.Layers, s.Layers)
	if s.ActiveLayer == "" {
		return p
	}
	if i := layer.Index(p.Layers, s.ActiveLayer); i >= 0 {
		p.Active = &p.Layers[i]
	}
	return p
}
