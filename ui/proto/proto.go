// Package proto implements the text serialization formats for view
// tree snapshots and the actions sent back by the rendering targets.
//
// Tree format (line-oriented, deterministic, diff-friendly):
//
//	rev <uint64>
//	root <nodeid>
//	node <id> <type>
//	prop <id> <k>=<v> <k>=<v> ...
//	child <parent> <child>
//
// Action format (one per line):
//
//	<kind> <k>=<v> <k>=<v> ...
//
// Values containing spaces, tabs, newlines, quotes, '=' or backslashes
// are double-quoted. Inside quotes \n, \t, \\ and \" are escapes.
package proto

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Action kinds understood by the layer host.
const (
	KindClick  = "click"
	KindSelect = "select"
	KindQuit   = "quit"
)

// ErrEmptyAction is returned by ParseAction for a blank line.
var ErrEmptyAction = errors.New("proto: empty action")

// Node is a node in a tree snapshot.
type Node struct {
	ID       string
	Type     string
	Props    map[string]string
	Children []string // child IDs in order
}

// Tree is a complete view tree snapshot.
type Tree struct {
	Rev   uint64
	Root  string
	Nodes map[string]*Node // keyed by ID
	Order []string         // node IDs in declaration order
}

// Walk visits the nodes reachable from the root depth-first, passing
// each node's depth. Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	if t == nil {
		return
	}
	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		n := t.Nodes[id]
		if n == nil || !fn(n, depth) {
			return
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(t.Root, 0)
}

// Action is a semantic UI action.
type Action struct {
	Kind string
	KVs  map[string]string
}

// NewAction returns an action with the given kind and key/value pairs.
// kv must hold an even number of strings.
func NewAction(kind string, kv ...string) *Action {
	a := &Action{Kind: kind, KVs: make(map[string]string, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		a.KVs[kv[i]] = kv[i+1]
	}
	return a
}

// Click is the action a target emits when node id is activated.
func Click(id string) *Action {
	return NewAction(KindClick, "id", id, "button", "1")
}

// Get returns the value for k, or "".
func (a *Action) Get(k string) string {
	if a == nil {
		return ""
	}
	return a.KVs[k]
}

// --- Escaping ---

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	return strings.ContainsAny(s, " \t\n\\\"=")
}

// EscapeValue encodes a string for the protocol, quoting if necessary.
func EscapeValue(s string) string {
	if !needsQuote(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// UnescapeValue decodes a possibly-quoted protocol string.
func UnescapeValue(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	s = s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '\\', '"':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// FormatKV formats a key=value pair with proper escaping.
func FormatKV(k, v string) string {
	return k + "=" + EscapeValue(v)
}

// ParseKV parses a key=value token.
func ParseKV(token string) (k, v string, ok bool) {
	k, v, ok = strings.Cut(token, "=")
	if !ok {
		return "", "", false
	}
	return k, UnescapeValue(v), true
}

// --- Tokenization ---

// Tokenize splits a line on spaces and tabs, keeping quoted runs
// (including k="v w" forms) inside a single token.
func Tokenize(line string) []string {
	var tokens []string
	i := 0
	for i < len(line) {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i == len(line) {
			break
		}
		j := i
		for j < len(line) && line[j] != ' ' && line[j] != '\t' {
			if line[j] == '"' {
				j = skipQuoted(line, j)
				continue
			}
			j++
		}
		tokens = append(tokens, line[i:j])
		i = j
	}
	return tokens
}

// skipQuoted returns the index just past the quoted run opening at i.
func skipQuoted(line string, i int) int {
	for j := i + 1; j < len(line); j++ {
		switch line[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(line)
}

// --- Tree serialization ---

// SerializeTree encodes a tree to the text protocol format.
func SerializeTree(t *Tree) string {
	var b strings.Builder
	fmt.Fprintf(&b, "rev %d\n", t.Rev)
	fmt.Fprintf(&b, "root %s\n", t.Root)
	for _, id := range t.Order {
		n := t.Nodes[id]
		if n == nil {
			continue
		}
		fmt.Fprintf(&b, "node %s %s\n", n.ID, n.Type)
		if len(n.Props) > 0 {
			b.WriteString("prop ")
			b.WriteString(n.ID)
			for _, k := range sortedKeys(n.Props) {
				b.WriteByte(' ')
				b.WriteString(FormatKV(k, n.Props[k]))
			}
			b.WriteByte('\n')
		}
		for _, child := range n.Children {
			fmt.Fprintf(&b, "child %s %s\n", n.ID, child)
		}
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseTree decodes a tree from the text protocol format. Unknown
// directives are skipped.
func ParseTree(text string) (*Tree, error) {
	t := &Tree{Nodes: make(map[string]*Node)}
	node := func(id string) *Node {
		n := t.Nodes[id]
		if n == nil {
			n = &Node{ID: id, Props: make(map[string]string)}
			t.Nodes[id] = n
			t.Order = append(t.Order, id)
		}
		return n
	}
	for lineno, line := range strings.Split(text, "\n") {
		tokens := Tokenize(strings.TrimSpace(line))
		if len(tokens) == 0 {
			continue
		}
		switch tokens[0] {
		case "rev":
			if len(tokens) < 2 {
				return nil, fmt.Errorf("proto: line %d: rev missing value", lineno+1)
			}
			v, err := strconv.ParseUint(tokens[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("proto: line %d: bad rev: %w", lineno+1, err)
			}
			t.Rev = v
		case "root":
			if len(tokens) < 2 {
				return nil, fmt.Errorf("proto: line %d: root missing value", lineno+1)
			}
			t.Root = tokens[1]
		case "node":
			if len(tokens) < 3 {
				return nil, fmt.Errorf("proto: line %d: node missing id or type", lineno+1)
			}
			node(tokens[1]).Type = tokens[2]
		case "prop":
			if len(tokens) < 2 {
				return nil, fmt.Errorf("proto: line %d: prop missing id", lineno+1)
			}
			n := node(tokens[1])
			for _, kv := range tokens[2:] {
				if k, v, ok := ParseKV(kv); ok {
					n.Props[k] = v
				}
			}
		case "child":
			if len(tokens) < 3 {
				return nil, fmt.Errorf("proto: line %d: child missing parent or child", lineno+1)
			}
			n := node(tokens[1])
			n.Children = append(n.Children, tokens[2])
		}
	}
	return t, nil
}

// --- Action serialization ---

// SerializeAction encodes an action to the text protocol format.
func SerializeAction(a *Action) string {
	var b strings.Builder
	b.WriteString(a.Kind)
	for _, k := range sortedKeys(a.KVs) {
		b.WriteByte(' ')
		b.WriteString(FormatKV(k, a.KVs[k]))
	}
	return b.String()
}

// ParseAction decodes an action from the text protocol format.
// Tokens without '=' after the kind are ignored.
func ParseAction(line string) (*Action, error) {
	tokens := Tokenize(strings.TrimSpace(line))
	if len(tokens) == 0 {
		return nil, ErrEmptyAction
	}
	a := NewAction(tokens[0])
	for _, kv := range tokens[1:] {
		if k, v, ok := ParseKV(kv); ok {
			a.KVs[k] = v
		}
	}
	return a, nil
}
