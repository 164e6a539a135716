// Package tui provides the Bubble Tea integration for reflex.
// It emulates the handheld in the terminal, locally or over SSH.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/reflex/internal/device"
	"github.com/vovakirdan/reflex/internal/game"
)

// redrawInterval paces redraws of the round countdown.
const redrawInterval = 50 * time.Millisecond

// TickMsg is sent to trigger a redraw.
type TickMsg time.Time

// UpdateMsg carries a display or indicator change from the device.
type UpdateMsg device.Update

// machineDoneMsg reports that the game loop returned.
type machineDoneMsg struct{ err error }

// tickCmd returns a Bubble Tea command that sends tick messages at the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForUpdate blocks until the device publishes a change. It is
// re-issued after every UpdateMsg.
func waitForUpdate(updates <-chan device.Update) tea.Cmd {
	return func() tea.Msg {
		return UpdateMsg(<-updates)
	}
}

// runMachine drives the game loop for the lifetime of ctx.
func runMachine(ctx context.Context, m *game.Machine) tea.Cmd {
	return func() tea.Msg {
		return machineDoneMsg{err: m.Run(ctx)}
	}
}
