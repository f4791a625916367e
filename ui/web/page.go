// Package web renders view tree snapshots as HTML and serves them,
// turning form posts back into host actions.
package web

//go:generate templ generate

import (
	"github.com/a-h/templ"

	"github.com/elizafairlady/layers/ui/proto"
	"github.com/elizafairlady/layers/ui/theme"
)

const actionPath = "/actions"

// children returns the child nodes of n in order, skipping ids the tree
// does not hold.
func children(t *proto.Tree, n *proto.Node) []*proto.Node {
	out := make([]*proto.Node, 0, len(n.Children))
	for _, id := range n.Children {
		if c := t.Nodes[id]; c != nil {
			out = append(out, c)
		}
	}
	return out
}

func root(t *proto.Tree) *proto.Node {
	if t == nil {
		return nil
	}
	return t.Nodes[t.Root]
}

func isHeading(n *proto.Node) bool {
	return n.Props["heading"] == "1"
}

// Colors go through theme.Resolve so only parsed colors reach CSS.

// entryAttrs styles a list entry. Entries post a click for their id;
// navigation to href is suppressed and the url is kept as data-href.
func entryAttrs(n *proto.Node, th *theme.Theme) templ.Attributes {
	class := "layer"
	if n.Props["active"] == "1" {
		class += " active"
	}
	return templ.Attributes{
		"class": class,
		"style": "color:" + theme.Hex(theme.Resolve(n.Props["fg"], th.Foreground)),
	}
}

func labelStyle(n *proto.Node, th *theme.Theme) templ.Attributes {
	bg := theme.Resolve(n.Props["bg"], th.Background)
	return templ.Attributes{
		"style": "background-color:" + theme.Hex(bg) + ";color:" + theme.Hex(theme.Contrast(bg)),
	}
}
