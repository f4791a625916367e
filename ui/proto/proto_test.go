package proto

import (
	"errors"
	"strings"
	"testing"
)

func TestEscapeValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"steelblue", "steelblue"},
		{"layer/A", "layer/A"},
		{"", `""`},
		{"Hello Host", `"Hello Host"`},
		{"line\none", `"line\none"`},
		{"tab\there", `"tab\there"`},
		{`back\slash`, `"back\\slash"`},
		{`say "hi"`, `"say \"hi\""`},
		{"has=eq", `"has=eq"`},
	}
	for _, tt := range tests {
		if got := EscapeValue(tt.in); got != tt.want {
			t.Errorf("EscapeValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnescapeValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"orange", "orange"},
		{`"Hello Host"`, "Hello Host"},
		{`"line\none"`, "line\none"},
		{`"back\\slash"`, `back\slash`},
		{`"say \"hi\""`, `say "hi"`},
		{`"odd\q"`, `odd\q`},
		{`""`, ""},
		{`"`, `"`},
	}
	for _, tt := range tests {
		if got := UnescapeValue(tt.in); got != tt.want {
			t.Errorf("UnescapeValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeRoundtrip(t *testing.T) {
	for _, v := range []string{"", "A", "gmail.com", "a b", "x=y", "日本 語", "q\"\\\n\t"} {
		if got := UnescapeValue(EscapeValue(v)); got != v {
			t.Errorf("roundtrip(%q) = %q", v, got)
		}
	}
}

func TestParseKV(t *testing.T) {
	tests := []struct {
		in           string
		wantK, wantV string
		wantOK       bool
	}{
		{"layer=B", "layer", "B", true},
		{`text="Hello Host"`, "text", "Hello Host", true},
		{"href=a=b", "href", "a=b", true},
		{"noequal", "", "", false},
	}
	for _, tt := range tests {
		k, v, ok := ParseKV(tt.in)
		if k != tt.wantK || v != tt.wantV || ok != tt.wantOK {
			t.Errorf("ParseKV(%q) = (%q, %q, %v)", tt.in, k, v, ok)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"click id=layer/A", []string{"click", "id=layer/A"}},
		{`prop title text="Hello Host" heading=1`, []string{"prop", "title", `text="Hello Host"`, "heading=1"}},
		{`"quoted word" x`, []string{`"quoted word"`, "x"}},
		{"  spaced\tout  ", []string{"spaced", "out"}},
		{`k="unterminated value`, []string{`k="unterminated value`}},
		{"", nil},
	}
	for _, tt := range tests {
		got := Tokenize(tt.in)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func layerTree() *Tree {
	return &Tree{
		Rev:  3,
		Root: "root",
		Nodes: map[string]*Node{
			"root":    {ID: "root", Type: "vbox", Props: map[string]string{}, Children: []string{"title", "layers"}},
			"title":   {ID: "title", Type: "text", Props: map[string]string{"text": "Hello Host", "heading": "1"}},
			"layers":  {ID: "layers", Type: "list", Props: map[string]string{}, Children: []string{"layer/A"}},
			"layer/A": {ID: "layer/A", Type: "link", Props: map[string]string{"text": "A", "fg": "red", "href": "google.com"}},
		},
		Order: []string{"root", "title", "layers", "layer/A"},
	}
}

func TestSerializeParseTree(t *testing.T) {
	text := SerializeTree(layerTree())
	for _, want := range []string{
		"rev 3\n",
		"root root\n",
		"node layer/A link\n",
		`prop title heading=1 text="Hello Host"` + "\n",
		"prop layer/A fg=red href=google.com text=A\n",
		"child layers layer/A\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("serialized tree missing %q:\n%s", want, text)
		}
	}

	parsed, err := ParseTree(text)
	if err != nil {
		t.Fatalf("ParseTree: %v", err)
	}
	if parsed.Rev != 3 || parsed.Root != "root" {
		t.Errorf("rev=%d root=%q", parsed.Rev, parsed.Root)
	}
	if len(parsed.Nodes) != 4 || len(parsed.Order) != 4 {
		t.Fatalf("nodes=%d order=%d", len(parsed.Nodes), len(parsed.Order))
	}
	if got := parsed.Nodes["title"].Props["text"]; got != "Hello Host" {
		t.Errorf("title text = %q", got)
	}
	if got := parsed.Nodes["layers"].Children; len(got) != 1 || got[0] != "layer/A" {
		t.Errorf("layers children = %v", got)
	}
	if SerializeTree(parsed) != text {
		t.Error("serialization is not stable across a parse")
	}
}

func TestParseTreeErrors(t *testing.T) {
	for _, in := range []string{"rev", "rev x", "root", "node a", "prop", "child a"} {
		if _, err := ParseTree(in); err == nil {
			t.Errorf("ParseTree(%q) succeeded", in)
		}
	}
	if _, err := ParseTree("future directive\nrev 1"); err != nil {
		t.Errorf("unknown directive: %v", err)
	}
}

func TestWalk(t *testing.T) {
	var ids []string
	var depths []int
	layerTree().Walk(func(n *Node, depth int) bool {
		ids = append(ids, n.ID)
		depths = append(depths, depth)
		return n.Type != "list"
	})
	if strings.Join(ids, ",") != "root,title,layers" {
		t.Errorf("walk order = %v", ids)
	}
	if depths[0] != 0 || depths[2] != 1 {
		t.Errorf("depths = %v", depths)
	}

	var nilTree *Tree
	nilTree.Walk(func(*Node, int) bool {
		t.Error("visited a node of a nil tree")
		return true
	})
}

func TestSerializeParseAction(t *testing.T) {
	a := Click("layer/B")
	text := SerializeAction(a)
	if text != "click button=1 id=layer/B" {
		t.Errorf("SerializeAction = %q", text)
	}
	parsed, err := ParseAction(text)
	if err != nil {
		t.Fatalf("ParseAction: %v", err)
	}
	if parsed.Kind != KindClick || parsed.Get("id") != "layer/B" {
		t.Errorf("parsed = %+v", parsed)
	}
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction(`  select layer="A" stray  `)
	if err != nil {
		t.Fatal(err)
	}
	if a.Kind != KindSelect || a.Get("layer") != "A" || len(a.KVs) != 1 {
		t.Errorf("action = %+v", a)
	}
	if _, err := ParseAction("   "); !errors.Is(err, ErrEmptyAction) {
		t.Errorf("empty line err = %v", err)
	}
	var none *Action
	if none.Get("id") != "" {
		t.Error("Get on nil action")
	}
}

func TestNewActionOddPairs(t *testing.T) {
	a := NewAction(KindQuit, "k", "v", "dangling")
	if len(a.KVs) != 1 || a.Get("k") != "v" {
		t.Errorf("KVs = %v", a.KVs)
	}
}
