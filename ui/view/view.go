// Package view provides the Go API for building declarative view
// trees. Views are plain functions from props to a *Node; the binding
// host serializes the result into a proto.Tree for the rendering
// targets.
package view

import (
	"strconv"

	"github.com/elizafairlady/layers/ui/proto"
)

// Node is a view tree node with an ID, type, props, and children.
type Node struct {
	ID       string
	Type     string
	Props    map[string]string
	Children []*Node
}

// Node types understood by the renderers.
const (
	TypeVBox  = "vbox"
	TypeBox   = "box"
	TypeText  = "text"
	TypeList  = "list"
	TypeLink  = "link"
	TypeLabel = "label"
)

// --- Node builder helpers ---

// N creates a new node with the given id and type.
func N(id, typ string) *Node {
	return &Node{
		ID:    id,
		Type:  typ,
		Props: make(map[string]string),
	}
}

// Prop sets a property on the node and returns it for chaining.
func (n *Node) Prop(k, v string) *Node {
	n.Props[k] = v
	return n
}

// PropInt sets an integer property.
func (n *Node) PropInt(k string, v int) *Node {
	n.Props[k] = strconv.Itoa(v)
	return n
}

// PropBool sets k to "1" when v is true and leaves it unset otherwise.
func (n *Node) PropBool(k string, v bool) *Node {
	if v {
		n.Props[k] = "1"
	}
	return n
}

// Text sets the "text" property.
func (n *Node) Text(s string) *Node {
	return n.Prop("text", s)
}

// Child appends child nodes and returns the parent for chaining.
// Nil children are skipped.
func (n *Node) Child(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// --- Node types (convenience constructors) ---

// VBox creates a vertical container.
func VBox(id string, children ...*Node) *Node {
	return N(id, TypeVBox).Child(children...)
}

// Box creates a plain container. An empty box renders as nothing.
func Box(id string, children ...*Node) *Node {
	return N(id, TypeBox).Child(children...)
}

// TextNode creates a text display node.
func TextNode(id, text string) *Node {
	return N(id, TypeText).Text(text)
}

// Heading creates a title text node.
func Heading(id, text string) *Node {
	return TextNode(id, text).Prop("heading", "1")
}

// List creates an ordered list of entries.
func List(id string, children ...*Node) *Node {
	return N(id, TypeList).Child(children...)
}

// Link creates a focusable entry pointing at href. Activating it sends
// a click action for id; navigation to href is left to the target.
func Link(id, text, href string) *Node {
	return N(id, TypeLink).Text(text).Prop("href", href).Prop("focusable", "1")
}

// Label creates a text block drawn on a solid background.
func Label(id, text, bg string) *Node {
	return N(id, TypeLabel).Text(text).Prop("bg", bg)
}

// --- Serialization ---

// Serialize converts the node tree to a proto.Tree.
func Serialize(root *Node, rev uint64) *proto.Tree {
	t := &proto.Tree{
		Rev:   rev,
		Root:  root.ID,
		Nodes: make(map[string]*proto.Node),
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		pn := &proto.Node{
			ID:    n.ID,
			Type:  n.Type,
			Props: make(map[string]string, len(n.Props)),
		}
		for k, v := range n.Props {
			pn.Props[k] = v
		}
		for _, child := range n.Children {
			pn.Children = append(pn.Children, child.ID)
		}
		t.Nodes[n.ID] = pn
		t.Order = append(t.Order, n.ID)
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(root)
	return t
}
