package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/reflex/internal/core"
)

// HandheldKeyMap binds keys to physical manipulations of the handheld.
type HandheldKeyMap struct {
	Press   key.Binding
	SpinCW  key.Binding
	SpinCCW key.Binding
	Shake   key.Binding
	Tilt    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HandheldKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Press, k.SpinCW, k.SpinCCW, k.Shake, k.Tilt, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k HandheldKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Press, k.SpinCW, k.SpinCCW},
		{k.Shake, k.Tilt},
		{k.Help, k.Quit},
	}
}

// DefaultHandheldKeyMap returns default key bindings.
func DefaultHandheldKeyMap() HandheldKeyMap {
	return HandheldKeyMap{
		Press: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "press"),
		),
		SpinCW: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "spin cw"),
		),
		SpinCCW: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "spin ccw"),
		),
		Shake: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shake"),
		),
		Tilt: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tilt"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Control translates a key message to a handheld control.
// Motion keys are disabled when the handheld has no accelerometer.
func (k HandheldKeyMap) Control(msg tea.KeyMsg, hasAccel bool) core.Control {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ControlQuit
	case key.Matches(msg, k.Press):
		return core.ControlPress
	case key.Matches(msg, k.SpinCW):
		return core.ControlSpinCW
	case key.Matches(msg, k.SpinCCW):
		return core.ControlSpinCCW
	case hasAccel && key.Matches(msg, k.Shake):
		return core.ControlShake
	case hasAccel && key.Matches(msg, k.Tilt):
		return core.ControlTilt
	}
	return core.ControlNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	}
	return MenuActionNone
}
