package core

// Control is a physical manipulation of the handheld, abstracted from the
// keys or hardware that produce it.
type Control int

const (
	ControlNone    Control = iota
	ControlPress           // push the encoder button
	ControlSpinCW          // one detent clockwise
	ControlSpinCCW         // one detent counter-clockwise
	ControlShake           // a short burst of strong motion
	ControlTilt            // toggle holding the device tilted
	ControlQuit            // leave the emulator
)

// String returns a human-readable name for the control.
func (c Control) String() string {
	switch c {
	case ControlNone:
		return "None"
	case ControlPress:
		return "Press"
	case ControlSpinCW:
		return "SpinCW"
	case ControlSpinCCW:
		return "SpinCCW"
	case ControlShake:
		return "Shake"
	case ControlTilt:
		return "Tilt"
	case ControlQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
