package core

import "time"

// Screen identifies which semantic screen a Frame shows.
type Screen int

const (
	ScreenBlank Screen = iota
	ScreenIntro
	ScreenMenu
	ScreenRound
	ScreenResult
	ScreenFinal
	ScreenNamePrompt
	ScreenNameEntry
	ScreenBoard
)

// String returns a short name for the screen.
func (s Screen) String() string {
	switch s {
	case ScreenIntro:
		return "intro"
	case ScreenMenu:
		return "menu"
	case ScreenRound:
		return "round"
	case ScreenResult:
		return "result"
	case ScreenFinal:
		return "final"
	case ScreenNamePrompt:
		return "name-prompt"
	case ScreenNameEntry:
		return "name-entry"
	case ScreenBoard:
		return "board"
	default:
		return "blank"
	}
}

// Block is one text element of a frame.
// Row is a text line on the display (0 = top); Scale is the font
// magnification (1 = normal). Centered blocks ignore any column offset.
type Block struct {
	Text     string
	Row      int
	Scale    int
	Centered bool
}

// Frame is a complete render request. Blocks carry the text to draw; the
// remaining fields describe the same screen semantically so a renderer can
// add decoration (countdown bars, cursors) without parsing text.
type Frame struct {
	Screen Screen
	Blocks []Block

	Level  int
	Score  int
	Target string

	// Menu cursor, or the letter slot being edited on ScreenNameEntry.
	Cursor int
	Name   string

	// Round timing; zero outside ScreenRound.
	Started   time.Time
	TimeLimit time.Duration
}

// Text returns the text of all blocks, one per line, in row order as given.
func (f Frame) Text() []string {
	lines := make([]string, len(f.Blocks))
	for i, b := range f.Blocks {
		lines[i] = b.Text
	}
	return lines
}
