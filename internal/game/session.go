// Package game drives a reflex session: the intro, the difficulty menu,
// consecutive rounds, and the end-of-run name entry and high-score board.
package game

// State is the session's position in the finite state machine.
type State int

const (
	StateBoot State = iota
	StateMenu
	StatePlay
	StateGameOver
	StateWin
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateBoot:
		return "BOOT"
	case StateMenu:
		return "MENU"
	case StatePlay:
		return "PLAY"
	case StateGameOver:
		return "GAMEOVER"
	case StateWin:
		return "WIN"
	default:
		return "UNKNOWN"
	}
}

// Session is the mutable state of one player at one handheld.
// It is owned by a single Machine.
type Session struct {
	State State
	Level int

	// Difficulty is the index chosen in the menu. LastDifficulty is the
	// index currently drawn on the menu screen; -1 forces a redraw.
	Difficulty     int
	LastDifficulty int

	// RunID identifies the run in progress; empty outside a run.
	RunID string
	// Rounds counts the rounds played in the current run.
	Rounds int
}

// NewSession returns a session about to boot.
func NewSession() Session {
	return Session{
		State:          StateBoot,
		Level:          1,
		LastDifficulty: -1,
	}
}

// Score is derived from the level: every cleared round is one point.
func (s Session) Score() int {
	return s.Level - 1
}

// returnToMenu resets the run and forces the menu to redraw.
func (s *Session) returnToMenu() {
	s.State = StateMenu
	s.Level = 1
	s.LastDifficulty = -1
	s.RunID = ""
	s.Rounds = 0
}
