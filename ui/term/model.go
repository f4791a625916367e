package term

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/elizafairlady/layers/ui/connect"
	"github.com/elizafairlady/layers/ui/proto"
)

const helpText = "↑/↓ move • enter select • 1-9 pick • click • q quit"

// Model is the bubbletea model for the terminal target. It owns only
// view-local state (focus, size); everything else comes from the host.
type Model struct {
	host   *connect.Host
	render *Renderer
	log    logrus.FieldLogger

	focus  string
	width  int
	height int
	frame  Frame
	status string
}

// NewModel creates a model rendering h.
func NewModel(h *connect.Host, r *Renderer, log logrus.FieldLogger) Model {
	m := Model{host: h, render: r, log: log}
	m.refresh()
	m.focus = m.frame.Next("", 0)
	m.refresh()
	return m
}

// Focus returns the focused node id.
func (m Model) Focus() string {
	return m.focus
}

// Frame returns the last rendered frame.
func (m Model) Frame() Frame {
	return m.frame
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	m.refresh()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		m.dispatch(proto.NewAction(proto.KindQuit))
		return tea.Quit
	case "up", "k", "shift+tab":
		m.focus = m.frame.Next(m.focus, -1)
	case "down", "j", "tab":
		m.focus = m.frame.Next(m.focus, 1)
	case "enter", " ":
		if m.focus != "" {
			m.dispatch(proto.Click(m.focus))
		}
	default:
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > len(m.frame.Focusable) {
			return nil
		}
		m.focus = m.frame.Focusable[n-1]
		m.dispatch(proto.Click(m.focus))
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return
	}
	id, ok := m.frame.HitAt(msg.Y)
	if !ok {
		return
	}
	m.focus = id
	m.dispatch(proto.Click(id))
}

func (m *Model) dispatch(a *proto.Action) {
	m.status = ""
	if err := m.host.HandleAction(a); err != nil {
		m.status = err.Error()
		m.log.WithError(err).WithField("action", proto.SerializeAction(a)).Warn("action rejected")
	}
}

func (m *Model) refresh() {
	m.render.Width = m.width
	m.frame = m.render.Render(m.host.Tree(), m.focus)
}

// View implements tea.Model.
func (m Model) View() string {
	dim := lipgloss.NewStyle().Foreground(m.render.color("", m.render.Theme.Dim))
	footer := helpText
	if m.status != "" {
		footer = m.status
	}
	return m.frame.View() + "\n\n" + dim.Render(footer) + "\n"
}
