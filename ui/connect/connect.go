// Package connect binds a store to a view function.
//
// A Host subscribes to the store and keeps the latest tree snapshot:
//   - Props are derived from state with store.Select on every change
//   - The tree is computed from props via the view function
//   - Actions from rendering targets are translated into dispatches
//
// Targets read Tree() to render and send raw actions back through
// HandleAction or ProcessAction. A Host is safe for concurrent use.
package connect

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/elizafairlady/layers/layer"
	"github.com/elizafairlady/layers/layerview"
	"github.com/elizafairlady/layers/store"
	"github.com/elizafairlady/layers/ui/proto"
	"github.com/elizafairlady/layers/ui/view"
)

var (
	// ErrUnknownAction is returned for action kinds the host does not handle.
	ErrUnknownAction = errors.New("connect: unknown action")
	// ErrUnknownTarget is returned when an action names no known layer.
	ErrUnknownTarget = errors.New("connect: unknown target")
)

// Component renders props into a view tree.
type Component func(p store.Props) *view.Node

// Option configures a Host.
type Option func(*Host)

// WithLogger logs every action the host handles at debug level.
func WithLogger(log logrus.FieldLogger) Option {
	return func(h *Host) {
		h.log = log
	}
}

// Host is the binding between one store and one component.
type Host struct {
	mu     sync.Mutex
	st     *store.Store
	view   Component
	props  store.Props
	rev    uint64
	tree   *proto.Tree
	quit   bool
	notify func(t *proto.Tree)
	log    logrus.FieldLogger

	unsubscribe func()
}

// New creates a host rendering st through c and subscribes to st.
func New(st *store.Store, c Component, opts ...Option) *Host {
	h := &Host{st: st, view: c}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		h.log = l
	}
	h.rebuild(st.GetState())
	h.unsubscribe = st.Subscribe(h.onState)
	return h
}

// SetNotify installs fn to be called with each tree rebuilt for a new
// state, and returns the previous callback. The target should repaint.
// fn runs on the dispatching goroutine, outside the host lock.
func (h *Host) SetNotify(fn func(t *proto.Tree)) (prev func(t *proto.Tree)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev, h.notify = h.notify, fn
	return prev
}

// Close stops listening to the store.
func (h *Host) Close() {
	h.unsubscribe()
}

// Store returns the bound store.
func (h *Host) Store() *store.Store {
	return h.st
}

// Rev returns the revision of the current tree.
func (h *Host) Rev() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rev
}

// Tree returns the current tree snapshot. Callers must not modify it.
func (h *Host) Tree() *proto.Tree {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tree
}

// TreeText returns the serialized current tree.
func (h *Host) TreeText() string {
	return proto.SerializeTree(h.Tree())
}

// Props returns the props the current tree was built from.
func (h *Host) Props() store.Props {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.props
}

// Quit reports whether a quit action has been processed.
func (h *Host) Quit() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.quit
}

func (h *Host) onState(store.AppState) {
	// Concurrent dispatches may deliver states out of order; rebuilding
	// from the store's current state keeps the last tree the newest.
	t, notify := h.rebuild(h.st.GetState())
	if notify != nil {
		notify(t)
	}
}

// rebuild recomputes props and tree from s. It returns the new tree and
// the notify callback current at the time.
func (h *Host) rebuild(s store.AppState) (*proto.Tree, func(*proto.Tree)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := store.Select(s)
	root := h.view(p)
	h.rev++
	h.props = p
	h.tree = view.Serialize(root, h.rev)
	return h.tree, h.notify
}

// ProcessAction parses and processes one action line.
func (h *Host) ProcessAction(line string) error {
	a, err := proto.ParseAction(line)
	if err != nil {
		return err
	}
	return h.HandleAction(a)
}

// HandleAction processes a semantic action. Clicks on list entries and
// select actions dispatch a store.PickLayer, which the store resolves
// into select or deselect against the state it applies to.
func (h *Host) HandleAction(a *proto.Action) error {
	h.log.WithField("action", proto.SerializeAction(a)).Debug("handle action")

	switch a.Kind {
	case proto.KindClick:
		name, ok := h.clickTarget(a.Get("id"))
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTarget, a.Get("id"))
		}
		return h.selectLayer(name)
	case proto.KindSelect:
		return h.selectLayer(a.Get("layer"))
	case proto.KindQuit:
		h.mu.Lock()
		h.quit = true
		h.mu.Unlock()
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
}

// clickTarget resolves a clicked node id to the layer it selects.
func (h *Host) clickTarget(id string) (string, bool) {
	t := h.Tree()
	n := t.Nodes[id]
	if n == nil || n.Props["on"] != "select" {
		return "", false
	}
	if name := n.Props["layer"]; name != "" {
		return name, true
	}
	return layerview.LayerFromID(id)
}

func (h *Host) selectLayer(name string) error {
	if _, ok := layer.Find(h.st.GetState().Layers, name); !ok {
		return fmt.Errorf("%w: layer %q", ErrUnknownTarget, name)
	}
	h.st.Dispatch(store.PickLayer{Name: name})
	return nil
}
