// Package gesture recognizes the physical actions a round asks for: pressing
// the button, spinning the encoder, shaking or tilting the device.
package gesture

import "strings"

// Kind is a recognizable gesture. None means nothing was recognized.
type Kind int

const (
	None Kind = iota
	Press
	Spin
	Shake
	Tilt
)

// String returns the on-screen name of the gesture.
func (k Kind) String() string {
	switch k {
	case Press:
		return "PRESS"
	case Spin:
		return "SPIN"
	case Shake:
		return "SHAKE"
	case Tilt:
		return "TILT"
	default:
		return "NONE"
	}
}

// ParseKind converts a gesture name back to a Kind.
// Unknown names map to None.
func ParseKind(s string) Kind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PRESS":
		return Press
	case "SPIN":
		return Spin
	case "SHAKE":
		return Shake
	case "TILT":
		return Tilt
	default:
		return None
	}
}

// ActiveKinds returns the gestures a device can perform. Without an
// accelerometer only PRESS and SPIN are playable.
func ActiveKinds(hasAccel bool) []Kind {
	if hasAccel {
		return []Kind{Press, Spin, Shake, Tilt}
	}
	return []Kind{Press, Spin}
}
