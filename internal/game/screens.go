package game

import (
	"fmt"

	"github.com/vovakirdan/reflex/internal/core"
	"github.com/vovakirdan/reflex/internal/highscore"
	"github.com/vovakirdan/reflex/internal/round"
)

// Title is the logo shown by the intro.
const Title = "REFLEX"

func introFrame(scale int) core.Frame {
	return core.Frame{
		Screen: core.ScreenIntro,
		Blocks: []core.Block{{Text: Title, Row: 3, Scale: scale, Centered: true}},
	}
}

func centered(screen core.Screen, text string, scale int) core.Frame {
	return core.Frame{
		Screen: screen,
		Blocks: []core.Block{{Text: text, Row: 3, Scale: scale, Centered: true}},
	}
}

func menuFrame(diffs []round.Difficulty, selected int) core.Frame {
	blocks := []core.Block{{Text: "SELECT DIFFICULTY", Row: 0, Scale: 1}}
	for i, d := range diffs {
		blocks = append(blocks, core.Block{Text: d.Name, Row: 2 + 2*i, Scale: 1})
	}
	return core.Frame{Screen: core.ScreenMenu, Blocks: blocks, Cursor: selected}
}

func resultFrame(success bool) core.Frame {
	if success {
		return centered(core.ScreenResult, "NICE!", 2)
	}
	return centered(core.ScreenResult, "WRONG!", 2)
}

func finalFrame(won bool, score int) core.Frame {
	title := "GAME OVER"
	if won {
		title = "YOU WIN!"
	}
	return core.Frame{
		Screen: core.ScreenFinal,
		Blocks: []core.Block{
			{Text: title, Row: 1, Scale: 2, Centered: true},
			{Text: fmt.Sprintf("Score: %d", score), Row: 5, Scale: 1, Centered: true},
		},
		Score: score,
	}
}

func namePromptFrame(score int) core.Frame {
	return core.Frame{
		Screen: core.ScreenNamePrompt,
		Blocks: []core.Block{
			{Text: "ENTER NAME", Row: 1, Scale: 1},
			{Text: fmt.Sprintf("Score: %d", score), Row: 3, Scale: 1},
			{Text: "Press button", Row: 6, Scale: 1},
		},
		Score: score,
	}
}

func nameEntryFrame(name []rune, slot int) core.Frame {
	return core.Frame{
		Screen: core.ScreenNameEntry,
		Blocks: []core.Block{
			{Text: "ENTER NAME:", Row: 0, Scale: 1},
			{Text: string(name), Row: 2, Scale: 3},
			{Text: "Spin=ltr Press=nxt", Row: 7, Scale: 1},
		},
		Cursor: slot,
		Name:   string(name),
	}
}

func boardFrame(b highscore.Board) core.Frame {
	blocks := []core.Block{{Text: "HIGH SCORES", Row: 0, Scale: 1}}
	for i, line := range b.Lines() {
		blocks = append(blocks, core.Block{Text: line, Row: 2 + i, Scale: 1})
	}
	blocks = append(blocks, core.Block{Text: "Press button", Row: 7, Scale: 1})
	return core.Frame{Screen: core.ScreenBoard, Blocks: blocks}
}
