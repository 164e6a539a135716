package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/reflex/internal/core"
)

// Model is the Bubble Tea model of the emulated handheld. The game loop
// runs in its own goroutine; the model forwards keys to the virtual
// device and redraws whatever the device shows.
type Model struct {
	handheld *Handheld
	ctx      context.Context
	cancel   context.CancelFunc
	keys     HandheldKeyMap
	help     help.Model
	frame    core.Frame
	color    core.RGB
	now      time.Time
	width    int
	height   int
	quitting bool
	err      error
}

// NewModel creates a model for h. The game loop stops when parent is
// cancelled or the player quits.
func NewModel(parent context.Context, h *Handheld) Model {
	ctx, cancel := context.WithCancel(parent)
	snap := h.Virtual.Snapshot()
	return Model{
		handheld: h,
		ctx:      ctx,
		cancel:   cancel,
		keys:     DefaultHandheldKeyMap(),
		help:     help.New(),
		frame:    snap.Frame,
		color:    snap.Color,
		now:      time.Now(),
	}
}

// Init starts the game loop, the update listener and the redraw ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		runMachine(m.ctx, m.handheld.Machine),
		waitForUpdate(m.handheld.Virtual.Updates()),
		tickCmd(redrawInterval),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case UpdateMsg:
		m.frame = msg.Frame
		m.color = msg.Color
		return m, waitForUpdate(m.handheld.Virtual.Updates())

	case TickMsg:
		m.now = time.Time(msg)
		return m, tickCmd(redrawInterval)

	case machineDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch c := m.keys.Control(msg, m.handheld.HasAccel()); c {
	case core.ControlQuit:
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	case core.ControlNone:
	default:
		m.handheld.Virtual.Apply(c)
	}
	return m, nil
}

// View renders the handheld.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(renderHandheld(m.frame, m.color, m.now))
	b.WriteString("\n\n")
	keys := m.keys
	if !m.handheld.HasAccel() {
		keys.Shake.SetEnabled(false)
		keys.Tilt.SetEnabled(false)
	}
	b.WriteString(dimStyle.Render(m.help.View(keys)))

	if m.width == 0 || m.height == 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// Err returns the error that stopped the game loop, if any.
func (m Model) Err() error {
	return m.err
}

// Run plays on h in the local terminal until the player quits.
func Run(ctx context.Context, h *Handheld) error {
	model := NewModel(ctx, h)
	defer model.cancel()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	if m, ok := finalModel.(Model); ok {
		return m.Err()
	}
	return nil
}
