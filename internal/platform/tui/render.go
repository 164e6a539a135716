package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/reflex/internal/core"
)

// The emulated OLED is 128x64 pixels: 8 text rows of 21 cells at scale 1.
const (
	oledRows = 8
	oledCols = 21
)

var (
	oledStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("81")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))
)

// scaleText spreads text over scale cells per character.
func scaleText(text string, scale int) string {
	if scale <= 1 {
		return text
	}
	gap := strings.Repeat(" ", scale-1)
	var b strings.Builder
	for i, r := range []rune(text) {
		if i > 0 {
			b.WriteString(gap)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RenderFrame lays a frame out on the OLED text grid. It returns exactly
// oledRows lines of cols cells; text beyond the right edge is clipped.
func RenderFrame(f core.Frame, cols int) []string {
	grid := make([][]rune, oledRows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	put := func(row, col int, text string) {
		if row < 0 || row >= oledRows {
			return
		}
		for i, r := range []rune(text) {
			if c := col + i; c >= 0 && c < cols {
				grid[row][c] = r
			}
		}
	}

	for i, blk := range f.Blocks {
		text := scaleText(blk.Text, blk.Scale)
		col := 0
		if blk.Centered {
			col = (cols - len([]rune(text))) / 2
		}

		switch f.Screen {
		case core.ScreenMenu:
			// Block 0 is the heading, then one block per difficulty.
			if i > 0 {
				prefix := "  "
				if i-1 == f.Cursor {
					prefix = "> "
				}
				text = prefix + text
			}
		case core.ScreenNameEntry:
			if blk.Text == f.Name && blk.Scale > 1 {
				put(blk.Row+1, col+f.Cursor*blk.Scale, "^")
			}
		}
		put(blk.Row, col, text)
	}

	lines := make([]string, oledRows)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}

// countdown returns the share of the round time left, 1 outside rounds.
func countdown(f core.Frame, now time.Time) float64 {
	if f.Screen != core.ScreenRound || f.TimeLimit <= 0 || f.Started.IsZero() {
		return 1
	}
	left := 1 - float64(now.Sub(f.Started))/float64(f.TimeLimit)
	switch {
	case left < 0:
		return 0
	case left > 1:
		return 1
	}
	return left
}

// renderBar draws a horizontal gauge of width cells filled to share.
func renderBar(share float64, width int) string {
	full := int(share*float64(width) + 0.5)
	full = core.Clamp(full, 0, width)
	return strings.Repeat("█", full) + strings.Repeat("░", width-full)
}

// renderLED draws the indicator as a colored dot with its RGB value.
func renderLED(c core.RGB) string {
	if c == core.ColorOff {
		return dimStyle.Render("○ off")
	}
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Boost().Hex())).Render("●")
	return dot + " " + dimStyle.Render(c.Hex())
}

// renderHandheld draws the whole device: OLED, indicator and round gauge.
func renderHandheld(f core.Frame, led core.RGB, now time.Time) string {
	oled := oledStyle.Render(strings.Join(RenderFrame(f, oledCols), "\n"))

	gauge := strings.Repeat(" ", oledCols)
	if f.Screen == core.ScreenRound {
		gauge = barStyle.Render(renderBar(countdown(f, now), oledCols))
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("R E F L E X"),
		"",
		oled,
		renderLED(led)+"   "+gauge,
	)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
