// Package layerview holds the two presentational views of the layer
// switcher, a clickable list and a colored label, plus the page that
// hosts them. Views are pure functions of store.Props.
package layerview

import (
	"strings"

	"github.com/elizafairlady/layers/store"
	"github.com/elizafairlady/layers/ui/view"
)

// Node IDs.
const (
	RootID  = "root"
	TitleID = "title"
	ListID  = "layers"
	LabelID = "map"

	entryPrefix = "layer/"
)

// DefaultTitle is the page heading.
const DefaultTitle = "Hello Host"

// EntryID returns the list entry id for the named layer.
func EntryID(name string) string {
	return entryPrefix + name
}

// LayerFromID returns the layer name behind a list entry id.
func LayerFromID(id string) (string, bool) {
	name, ok := strings.CutPrefix(id, entryPrefix)
	return name, ok && name != ""
}

// maxKey is the highest single-digit shortcut an entry can carry.
const maxKey = 9

// List renders one link per layer, keyed by name, colored by the
// layer's color and pointing at its url. The first nine entries carry
// their 1-based position as the key prop.
func List(p store.Props) *view.Node {
	list := view.List(ListID)
	for i, l := range p.Layers {
		entry := view.Link(EntryID(l.Name), l.Name, l.URL).
			Prop("fg", l.Color).
			Prop("on", "select").
			Prop("layer", l.Name).
			PropBool("active", p.Active != nil && p.Active.Name == l.Name).
			PropBool("visible", l.Visible)
		if i < maxKey {
			entry.PropInt("key", i+1)
		}
		list.Child(entry)
	}
	return list
}

// Label renders the active layer's name on its color, or an empty box
// when no layer is active.
func Label(p store.Props) *view.Node {
	if p.Active == nil {
		return view.Box(LabelID)
	}
	return view.Label(LabelID, p.Active.Name, p.Active.Color)
}

// Page returns a view function that puts a heading above the list and
// the label.
func Page(title string) func(p store.Props) *view.Node {
	if title == "" {
		title = DefaultTitle
	}
	return func(p store.Props) *view.Node {
		return view.VBox(RootID,
			view.Heading(TitleID, title),
			List(p),
			Label(p),
		)
	}
}
