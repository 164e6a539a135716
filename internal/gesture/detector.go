package gesture

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reflex/internal/core"
	"github.com/vovakirdan/reflex/internal/device"
	"github.com/vovakirdan/reflex/internal/encoder"
)

// DefaultSampleInterval is the pause between detection ticks.
const DefaultSampleInterval = 20 * time.Millisecond

// Outcome is the result of one detection window.
type Outcome struct {
	Target   Kind
	Detected Kind // None when the window expired
	Elapsed  time.Duration
}

// Success reports whether the recognized gesture matches the target.
func (o Outcome) Success() bool {
	return o.Detected != None && o.Detected == o.Target
}

// Inputs are the capability handles the detector polls.
// Accel may be nil.
type Inputs struct {
	Button  device.Button
	Encoder *encoder.Tracker
	Accel   device.Accelerometer
}

// Detector watches the inputs for the first recognizable gesture.
type Detector struct {
	in       Inputs
	th       Thresholds
	interval time.Duration
	clock    core.Clock
	logger   *log.Logger

	faults int
}

// NewDetector creates a detector. A zero interval selects
// DefaultSampleInterval; a nil logger discards output.
func NewDetector(in Inputs, th Thresholds, interval time.Duration, clock core.Clock, logger *log.Logger) *Detector {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Detector{
		in:       in,
		th:       th,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}
}

// HasAccel reports whether motion gestures can be recognized.
func (d *Detector) HasAccel() bool {
	return d.in.Accel != nil
}

// Faults returns the number of failed accelerometer reads seen so far.
func (d *Detector) Faults() int {
	return d.faults
}

// Detect polls the inputs once per tick until a gesture is recognized or
// limit elapses on the clock, whichever comes first.
//
// Within a tick the checks run in priority order PRESS, SPIN, then the
// accelerometer gestures, so a held button always wins over ambiguous
// motion. SPIN is any movement of the encoder away from its position at
// the start of the window.
func (d *Detector) Detect(target Kind, limit time.Duration, baseline device.Sample) Outcome {
	start := d.clock.Now()
	startPos := d.in.Encoder.Position()
	motion := NewMotion(d.th, baseline)

	for {
		elapsed := core.Since(d.clock, start)
		if elapsed >= limit {
			return Outcome{Target: target, Detected: None, Elapsed: elapsed}
		}

		if k := d.tick(motion, startPos); k != None {
			return Outcome{Target: target, Detected: k, Elapsed: core.Since(d.clock, start)}
		}

		d.clock.Sleep(d.interval)
	}
}

// tick performs one poll of every input.
func (d *Detector) tick(motion *Motion, startPos int) Kind {
	d.in.Encoder.Update()

	if d.in.Button.Pressed() {
		return Press
	}

	if core.Abs(d.in.Encoder.Position()-startPos) >= 1 {
		return Spin
	}

	if d.in.Accel == nil {
		return None
	}

	s, err := d.in.Accel.Read()
	if err != nil {
		d.faults++
		d.logger.Debug("accelerometer read failed", "error", err)
		return None
	}
	return motion.Observe(s)
}
