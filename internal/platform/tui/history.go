package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/reflex/internal/storage"
)

// History layout constants
const (
	historyLimit = 100 // Max runs to load per view
	tableMargin  = 4
)

// HistoryView selects which table the history screen shows.
type HistoryView int

const (
	ViewRecent HistoryView = iota
	ViewTop
	ViewGestures
	historyViews
)

// String returns the tab title of the view.
func (v HistoryView) String() string {
	switch v {
	case ViewRecent:
		return "Recent runs"
	case ViewTop:
		return "Best runs"
	case ViewGestures:
		return "Gestures"
	default:
		return "?"
	}
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.PrevView, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the run history screen.
type HistoryModel struct {
	store     *storage.Store
	view      HistoryView
	rows      []table.Row
	stats     *storage.Stats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a new history model.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	return m
}

// columns returns the table columns of the current view.
func (m HistoryModel) columns() []table.Column {
	switch m.view {
	case ViewGestures:
		return []table.Column{
			{Title: "Gesture", Width: 10},
			{Title: "Rounds", Width: 8},
			{Title: "Success", Width: 9},
			{Title: "Avg time", Width: 10},
		}
	default:
		return []table.Column{
			{Title: "#", Width: 4},
			{Title: "Name", Width: 5},
			{Title: "Player", Width: 10},
			{Title: "Level", Width: 8},
			{Title: "Score", Width: 6},
			{Title: "Result", Width: 9},
			{Title: "Date", Width: 13},
		}
	}
}

// createTable creates a new table for the current view.
func (m *HistoryModel) createTable() table.Model {
	height := m.height - 10 // Leave room for header, tabs, stats and help
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the current view from the store and rebuilds the table.
func (m *HistoryModel) load() {
	m.rows, m.loadErr = HistoryRows(m.store, m.view)
	if m.store != nil {
		if stats, err := m.store.GetStats(); err == nil {
			m.stats = stats
		}
	}
	m.table = m.createTable()
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

// HistoryRows returns the table rows of view. A nil store has no rows.
func HistoryRows(store *storage.Store, view HistoryView) ([]table.Row, error) {
	if store == nil {
		return nil, nil
	}

	if view == ViewGestures {
		stats, err := store.GetGestureStats()
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(stats))
		for i, g := range stats {
			rows[i] = table.Row{
				g.Target.String(),
				fmt.Sprintf("%d", g.Rounds),
				fmt.Sprintf("%.0f%%", g.SuccessRate()*100),
				fmt.Sprintf("%.2fs", g.AvgElapsed.Seconds()),
			}
		}
		return rows, nil
	}

	var (
		runs []storage.RunEntry
		err  error
	)
	if view == ViewTop {
		runs, err = store.TopRuns(historyLimit)
	} else {
		runs, err = store.RecentRuns(historyLimit)
	}
	if err != nil {
		return nil, err
	}

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.Name,
			player,
			r.Difficulty,
			fmt.Sprintf("%d", r.Score),
			r.Result(),
			r.Finished.Local().Format("Jan 02 15:04"),
		}
	}
	return rows, nil
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextView):
			m.view = (m.view + 1) % historyViews
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevView):
			m.view = (m.view + historyViews - 1) % historyViews
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(centerText("RUN HISTORY", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.stats != nil && m.stats.Runs > 0 {
		line := fmt.Sprintf("%d runs  %d wins  best %d  avg %.1f",
			m.stats.Runs, m.stats.Wins, m.stats.BestScore, m.stats.AvgScore)
		b.WriteString(dimStyle.Render(line))
		b.WriteString("\n")
	}

	// Help bar
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders the view selector.
func (m HistoryModel) renderTabs() string {
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, historyViews)
	for v := HistoryView(0); v < historyViews; v++ {
		if v == m.view {
			tabs[v] = activeTabStyle.Render(v.String())
		} else {
			tabs[v] = dimStyle.Render(" " + v.String() + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, tableMargin)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read history:\n" + m.loadErr.Error())
	case len(m.rows) == 0:
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to start the history!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewHistoryModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
