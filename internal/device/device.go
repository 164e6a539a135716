// Package device defines the hardware capabilities the game consumes and
// produces to: a push button, the two quadrature pins of a rotary encoder,
// an optional 3-axis accelerometer, an RGB indicator and a text display.
//
// The game never reaches hardware directly; it is handed a Device whose
// fields are capability handles.
package device

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/reflex/internal/core"
)

// ErrNoSample reports a transient accelerometer failure.
var ErrNoSample = errors.New("device: no accelerometer sample")

// Sample is one accelerometer reading in m/s².
type Sample struct {
	X, Y, Z float64
}

// String formats the sample for logs.
func (s Sample) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", s.X, s.Y, s.Z)
}

// Button reports whether the button is currently held.
// Hardware buttons are usually active-low; implementations hide that.
type Button interface {
	Pressed() bool
}

// EncoderPins samples the clock and direction pins of a quadrature encoder
// at the same instant.
type EncoderPins interface {
	Levels() (clk, dt bool)
}

// Accelerometer reads one motion sample. Errors are transient: callers treat
// them as "no new information" for the current poll.
type Accelerometer interface {
	Read() (Sample, error)
}

// Indicator is the RGB status LED.
type Indicator interface {
	SetColor(c core.RGB)
}

// Display renders and commits one frame.
type Display interface {
	Render(f core.Frame)
}

// Device bundles the capability handles of one handheld.
// Accel is nil when no accelerometer is fitted.
type Device struct {
	Button    Button
	Encoder   EncoderPins
	Accel     Accelerometer
	Indicator Indicator
	Display   Display
}

// HasAccel reports whether an accelerometer is available.
func (d Device) HasAccel() bool {
	return d.Accel != nil
}

// Validate checks that every mandatory capability is present.
func (d Device) Validate() error {
	switch {
	case d.Button == nil:
		return errors.New("device: button missing")
	case d.Encoder == nil:
		return errors.New("device: encoder missing")
	case d.Indicator == nil:
		return errors.New("device: indicator missing")
	case d.Display == nil:
		return errors.New("device: display missing")
	}
	return nil
}
