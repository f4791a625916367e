// Package term renders view tree snapshots to a terminal and turns
// terminal input back into actions.
//
// Rendering is line-based: every focusable node occupies exactly one
// line, so hit-testing a click is a lookup by row.
package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/elizafairlady/layers/ui/proto"
	"github.com/elizafairlady/layers/ui/theme"
	"github.com/elizafairlady/layers/ui/view"
)

// Frame is one rendered tree.
type Frame struct {
	Lines []string
	// Hits maps each line to the focusable node drawn on it, or "".
	Hits []string
	// Focusable lists focusable node IDs in display order.
	Focusable []string
}

// View joins the lines for display.
func (f Frame) View() string {
	return strings.Join(f.Lines, "\n")
}

// HitAt returns the focusable node on row y.
func (f Frame) HitAt(y int) (string, bool) {
	if y < 0 || y >= len(f.Hits) || f.Hits[y] == "" {
		return "", false
	}
	return f.Hits[y], true
}

// Next returns the focusable node delta steps away from id, wrapping
// around. An unknown id starts from the first node.
func (f Frame) Next(id string, delta int) string {
	n := len(f.Focusable)
	if n == 0 {
		return ""
	}
	i := f.index(id)
	if i < 0 {
		return f.Focusable[0]
	}
	return f.Focusable[((i+delta)%n+n)%n]
}

func (f Frame) index(id string) int {
	for i, fid := range f.Focusable {
		if fid == id {
			return i
		}
	}
	return -1
}

// Renderer draws trees with a theme.
type Renderer struct {
	Theme *theme.Theme
	Width int
}

// NewRenderer returns a renderer for th.
func NewRenderer(th *theme.Theme) *Renderer {
	return &Renderer{Theme: th}
}

// Render draws t. focus is the focused node id, or "".
func (r *Renderer) Render(t *proto.Tree, focus string) Frame {
	var f Frame
	t.Walk(func(n *proto.Node, _ int) bool {
		switch n.Type {
		case view.TypeText:
			r.text(&f, n)
		case view.TypeLink:
			r.link(&f, n, focus)
		case view.TypeLabel:
			r.label(&f, n)
		default:
			// vbox, box, list and unknown containers stack their children.
			return true
		}
		return false
	})
	return f
}

func (f *Frame) add(line, hit string) {
	f.Lines = append(f.Lines, line)
	f.Hits = append(f.Hits, hit)
	if hit != "" {
		f.Focusable = append(f.Focusable, hit)
	}
}

func (r *Renderer) color(s string, def uint32) lipgloss.Color {
	return lipgloss.Color(theme.Hex(theme.Resolve(s, def)))
}

func (r *Renderer) text(f *Frame, n *proto.Node) {
	style := lipgloss.NewStyle().Foreground(r.color(n.Props["fg"], r.Theme.Foreground))
	if n.Props["heading"] == "1" {
		style = style.Bold(true).MarginBottom(1)
	}
	for _, line := range strings.Split(style.Render(n.Props["text"]), "\n") {
		f.add(line, "")
	}
}

func (r *Renderer) link(f *Frame, n *proto.Node, focus string) {
	cursor := "  "
	if n.ID == focus {
		cursor = lipgloss.NewStyle().Foreground(r.color("", r.Theme.FocusRing)).Render("> ")
	}
	name := lipgloss.NewStyle().
		Foreground(r.color(n.Props["fg"], r.Theme.Foreground)).
		Underline(true).
		Render(n.Props["text"])
	line := cursor
	if key := n.Props["key"]; key != "" {
		line += lipgloss.NewStyle().Foreground(r.color("", r.Theme.Dim)).Render(key) + " "
	}
	line += name
	if href := n.Props["href"]; href != "" {
		line += " " + lipgloss.NewStyle().Foreground(r.color("", r.Theme.Dim)).Render(href)
	}
	f.add(line, n.ID)
}

func (r *Renderer) label(f *Frame, n *proto.Node) {
	bg := theme.Resolve(n.Props["bg"], r.Theme.Background)
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(theme.Hex(bg))).
		Foreground(lipgloss.Color(theme.Hex(theme.Contrast(bg)))).
		Padding(0, r.Theme.Pad)
	if r.Width > 0 {
		style = style.Width(r.Width)
	}
	f.add("", "")
	for _, line := range strings.Split(style.Render(n.Props["text"]), "\n") {
		f.add(line, "")
	}
}
