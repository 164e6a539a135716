// Package encoder turns quadrature pin levels of a rotary encoder into a
// signed detent count.
package encoder

import (
	"github.com/vovakirdan/reflex/internal/core"
	"github.com/vovakirdan/reflex/internal/device"
)

// Tracker counts encoder detents by polling its pins.
//
// On a falling edge of the clock pin the direction pin decides the sign:
// a direction level different from the new clock level is one step
// clockwise (+1), an equal level one step counter-clockwise (-1). Rising
// edges and unchanged levels do nothing.
//
// Tracker is polled from the single control loop and is not safe for
// concurrent use.
type Tracker struct {
	pins     device.EncoderPins
	position int
	lastClk  bool
}

// New creates a tracker at position 0, seeded with the current clock level.
func New(pins device.EncoderPins) *Tracker {
	clk, _ := pins.Levels()
	return &Tracker{pins: pins, lastClk: clk}
}

// Update samples the pins once and applies at most one step.
// It returns the step applied: +1, -1 or 0.
func (t *Tracker) Update() int {
	clk, dt := t.pins.Levels()
	if clk == t.lastClk {
		return 0
	}
	t.lastClk = clk
	if clk {
		return 0
	}

	step := -1
	if dt != clk {
		step = 1
	}
	t.position += step
	return step
}

// Position returns the accumulated detent count. It is unbounded; callers
// reduce it with Index.
func (t *Tracker) Position() int {
	return t.position
}

// SetPosition overwrites the detent count, e.g. to restart a selection.
func (t *Tracker) SetPosition(p int) {
	t.position = p
}

// Index maps the position onto n items, wrapping in both directions.
func (t *Tracker) Index(n int) int {
	return core.Mod(t.position, n)
}
