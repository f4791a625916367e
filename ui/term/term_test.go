package term

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/elizafairlady/layers/layerview"
	"github.com/elizafairlady/layers/store"
	"github.com/elizafairlady/layers/ui/connect"
	"github.com/elizafairlady/layers/ui/theme"
)

func newModel(t *testing.T) (Model, *connect.Host, *test.Hook) {
	t.Helper()
	h := connect.New(store.New(store.Initial()), layerview.Page(""))
	t.Cleanup(h.Close)
	log, hook := test.NewNullLogger()
	return NewModel(h, NewRenderer(theme.Default()), log), h, hook
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func rowOf(f Frame, id string) int {
	for y, hit := range f.Hits {
		if hit == id {
			return y
		}
	}
	return -1
}

func TestRenderFrame(t *testing.T) {
	h := connect.New(store.New(store.Initial()), layerview.Page(""))
	defer h.Close()

	f := NewRenderer(theme.Default()).Render(h.Tree(), "layer/B")
	if len(f.Lines) != len(f.Hits) {
		t.Fatalf("lines=%d hits=%d", len(f.Lines), len(f.Hits))
	}
	want := []string{"layer/A", "layer/B", "layer/C"}
	if strings.Join(f.Focusable, ",") != strings.Join(want, ",") {
		t.Errorf("focusable = %v", f.Focusable)
	}
	view := f.View()
	for _, s := range []string{"Hello Host", "google.com", "gmail.com", "ona.io"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q:\n%s", s, view)
		}
	}
	if y := rowOf(f, "layer/B"); y < 0 || !strings.Contains(f.Lines[y], ">") {
		t.Errorf("focused row %d not marked: %q", y, f.Lines)
	}
	if y := rowOf(f, "layer/A"); strings.Contains(f.Lines[y], ">") {
		t.Errorf("unfocused row marked: %q", f.Lines[y])
	}
	if y := rowOf(f, "layer/C"); !strings.Contains(f.Lines[y], "3 C") {
		t.Errorf("row for C lacks its key: %q", f.Lines[y])
	}
	// Label for the active layer is the last line.
	if last := strings.TrimSpace(f.Lines[len(f.Lines)-1]); last != "A" {
		t.Errorf("label line = %q, want A", last)
	}
}

func TestRenderNoLabelWhenInactive(t *testing.T) {
	h := connect.New(store.New(store.AppState{}), layerview.Page(""))
	defer h.Close()
	f := NewRenderer(theme.Default()).Render(h.Tree(), "")
	if len(f.Focusable) != 0 {
		t.Errorf("focusable = %v", f.Focusable)
	}
	if last := f.Lines[len(f.Lines)-1]; strings.TrimSpace(last) != "" {
		t.Errorf("unexpected trailing line %q", last)
	}
	if (Frame{}).Next("x", 1) != "" {
		t.Error("Next on empty frame")
	}
	if f := NewRenderer(theme.Default()).Render(nil, ""); len(f.Lines) != 0 {
		t.Error("nil tree rendered lines")
	}
}

func TestFrameNext(t *testing.T) {
	f := Frame{Focusable: []string{"a", "b", "c"}}
	tests := []struct {
		id    string
		delta int
		want  string
	}{
		{"a", 1, "b"},
		{"c", 1, "a"},
		{"a", -1, "c"},
		{"zzz", 1, "a"},
		{"", 0, "a"},
	}
	for _, tt := range tests {
		if got := f.Next(tt.id, tt.delta); got != tt.want {
			t.Errorf("Next(%q, %d) = %q, want %q", tt.id, tt.delta, got, tt.want)
		}
	}
	if _, ok := f.HitAt(5); ok {
		t.Error("HitAt out of range")
	}
}

func TestModelKeys(t *testing.T) {
	m, h, _ := newModel(t)
	if m.Focus() != "layer/A" {
		t.Fatalf("initial focus = %q", m.Focus())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Focus() != "layer/B" {
		t.Errorf("focus after down = %q", m.Focus())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := h.Store().GetState().ActiveLayer; got != "B" {
		t.Errorf("ActiveLayer after enter = %q", got)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Focus() != "layer/C" {
		t.Errorf("focus after wrap = %q", m.Focus())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	if got := h.Store().GetState().ActiveLayer; got != "" {
		t.Errorf("ActiveLayer after deselect = %q", got)
	}
	if m.Focus() != "layer/B" {
		t.Errorf("focus after 2 = %q", m.Focus())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9")})
	if got := h.Store().GetState().ActiveLayer; got != "" {
		t.Errorf("out of range digit dispatched: %q", got)
	}
	if !strings.Contains(m.View(), "q quit") {
		t.Errorf("view missing help:\n%s", m.View())
	}
}

func TestModelMouse(t *testing.T) {
	m, h, _ := newModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})

	y := rowOf(m.Frame(), "layer/C")
	if y < 0 {
		t.Fatal("layer/C not rendered")
	}
	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := h.Store().GetState().ActiveLayer; got != "C" {
		t.Errorf("ActiveLayer after click = %q", got)
	}
	if m.Focus() != "layer/C" {
		t.Errorf("focus after click = %q", m.Focus())
	}

	// Releases, other buttons and rows without a target are ignored.
	update(t, m, tea.MouseMsg{Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	update(t, m, tea.MouseMsg{Y: y, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	update(t, m, tea.MouseMsg{Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := h.Store().GetState().ActiveLayer; got != "C" {
		t.Errorf("ignored mouse events changed state: %q", got)
	}
}

func TestModelQuit(t *testing.T) {
	m, h, _ := newModel(t)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
	if !h.Quit() {
		t.Error("host did not record quit")
	}
}
