package core

import "fmt"

// RGB is a color for the indicator LED, one byte per channel.
type RGB struct {
	R, G, B uint8
}

// Indicator colors used by the game.
var (
	ColorOff     = RGB{0, 0, 0}
	ColorMenu    = RGB{0, 0, 50}    // dim blue while choosing a difficulty
	ColorRound   = RGB{50, 50, 0}   // dim yellow while a round is running
	ColorSuccess = RGB{0, 255, 0}   // green after a matched gesture
	ColorFailure = RGB{255, 0, 0}   // red after a miss or timeout
)

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Boost scales dim colors up so they stay visible on a terminal,
// preserving hue. Black stays black.
func (c RGB) Boost() RGB {
	peak := c.R
	if c.G > peak {
		peak = c.G
	}
	if c.B > peak {
		peak = c.B
	}
	if peak == 0 || peak == 255 {
		return c
	}
	scale := func(v uint8) uint8 {
		return uint8(int(v) * 255 / int(peak))
	}
	return RGB{scale(c.R), scale(c.G), scale(c.B)}
}
