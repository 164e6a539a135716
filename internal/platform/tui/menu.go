package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/reflex/internal/highscore"
)

// MenuChoice is an entry of the launcher menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceHistory
	ChoiceQuit
)

// MenuItem represents a selectable launcher entry.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

// MenuModel is the Bubble Tea model for the launcher shown before play.
// It lists the actions and the current high-score board.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	board    highscore.Board
	width    int
	height   int
	quitting bool
	selected *MenuItem
}

// NewMenuModel creates a new menu model.
func NewMenuModel(board highscore.Board, width, height int) MenuModel {
	return MenuModel{
		items: []MenuItem{
			{Choice: ChoicePlay, Title: "Play"},
			{Choice: ChoiceHistory, Title: "History"},
			{Choice: ChoiceQuit, Title: "Quit"},
		},
		board:  board,
		width:  width,
		height: height,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		m.selected = &selected
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("R E F L E X", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Shake, tilt, spin or press in time", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-8s", cursor, item.Title), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("HIGH SCORES", m.width))
	b.WriteString("\n")
	for _, line := range m.board.Lines() {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(dimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Choice returns the selected entry, ChoiceQuit when the user left.
func (m MenuModel) Choice() MenuChoice {
	if m.quitting || m.selected == nil {
		return ChoiceQuit
	}
	return m.selected.Choice
}

// RunMenu shows the launcher and returns the selected entry.
func RunMenu(board highscore.Board, width, height int) (MenuChoice, error) {
	p := tea.NewProgram(
		NewMenuModel(board, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return ChoiceQuit, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return ChoiceQuit, nil
	}
	return m.Choice(), nil
}
