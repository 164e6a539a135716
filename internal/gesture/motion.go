package gesture

import (
	"math"

	"github.com/vovakirdan/reflex/internal/core"
	"github.com/vovakirdan/reflex/internal/device"
)

// Thresholds are the empirically tuned motion limits.
type Thresholds struct {
	Shake      float64 // max per-axis delta from baseline, exclusive
	ShakeTicks int     // consecutive qualifying samples for SHAKE
	Tilt       float64 // raw |x| or |y|, exclusive
	TiltTicks  int     // consecutive qualifying samples for TILT
}

// DefaultThresholds returns the values tuned on the reference hardware.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Shake:      10,
		ShakeTicks: 2,
		Tilt:       5,
		TiltTicks:  4,
	}
}

// Motion debounces accelerometer samples into SHAKE and TILT.
// ShakeCount and TiltCount are the consecutive-sample counters; they change
// only when a sample is observed, so a failed read leaves them untouched.
type Motion struct {
	th       Thresholds
	baseline device.Sample

	ShakeCount int
	TiltCount  int
}

// NewMotion creates a tracker referenced to baseline with zeroed counters.
func NewMotion(th Thresholds, baseline device.Sample) *Motion {
	return &Motion{th: th, baseline: baseline}
}

// Observe feeds one successful sample and returns Shake, Tilt or None.
//
// A sample whose largest per-axis delta from the baseline exceeds the shake
// threshold counts toward SHAKE and clears tilt progress. Any other sample
// clears shake progress and is then checked for tilt on the raw x/y values.
func (m *Motion) Observe(s device.Sample) Kind {
	delta := math.Max(
		core.AbsF(s.X-m.baseline.X),
		math.Max(core.AbsF(s.Y-m.baseline.Y), core.AbsF(s.Z-m.baseline.Z)),
	)

	if delta > m.th.Shake {
		m.ShakeCount++
		m.TiltCount = 0
		if m.ShakeCount >= m.th.ShakeTicks {
			return Shake
		}
		return None
	}
	m.ShakeCount = 0

	if core.AbsF(s.X) > m.th.Tilt || core.AbsF(s.Y) > m.th.Tilt {
		m.TiltCount++
		if m.TiltCount >= m.th.TiltTicks {
			return Tilt
		}
	} else {
		m.TiltCount = 0
	}
	return None
}
