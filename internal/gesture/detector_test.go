package gesture

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/reflex/internal/core"
	"github.com/vovakirdan/reflex/internal/device"
	"github.com/vovakirdan/reflex/internal/encoder"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// timedButton is held during [from, to).
type timedButton struct {
	clock    core.Clock
	from, to time.Time
}

func (b timedButton) Pressed() bool {
	now := b.clock.Now()
	return !now.Before(b.from) && now.Before(b.to)
}

// timedPins performs one clockwise detent at the given time.
type timedPins struct {
	clock core.Clock
	at    time.Time
}

func (p timedPins) Levels() (bool, bool) {
	if p.at.IsZero() || p.clock.Now().Before(p.at) {
		return true, true
	}
	return false, true
}

type reading struct {
	s   device.Sample
	err error
}

// scriptedAccel returns readings in order, then rests.
type scriptedAccel struct {
	readings []reading
	reads    int
}

func (a *scriptedAccel) Read() (device.Sample, error) {
	a.reads++
	if len(a.readings) == 0 {
		return rest, nil
	}
	r := a.readings[0]
	a.readings = a.readings[1:]
	return r.s, r.err
}

var errBus = errors.New("i2c: nack")

type fixture struct {
	clock  *core.ManualClock
	button timedButton
	pins   timedPins
	accel  *scriptedAccel
}

func newFixture() *fixture {
	c := core.NewManualClock(epoch)
	return &fixture{
		clock:  c,
		button: timedButton{clock: c},
		pins:   timedPins{clock: c},
		accel:  &scriptedAccel{},
	}
}

func (f *fixture) detector(withAccel bool) *Detector {
	in := Inputs{
		Button:  f.button,
		Encoder: encoder.New(f.pins),
	}
	if withAccel {
		in.Accel = f.accel
	}
	return NewDetector(in, DefaultThresholds(), DefaultSampleInterval, f.clock, nil)
}

func TestDetectTimeout(t *testing.T) {
	f := newFixture()
	d := f.detector(true)

	out := d.Detect(Press, 1500*time.Millisecond, rest)
	if out.Detected != None {
		t.Errorf("Detected = %v, expected None", out.Detected)
	}
	if out.Elapsed != 1500*time.Millisecond {
		t.Errorf("Elapsed = %v, expected 1.5s", out.Elapsed)
	}
	if out.Success() {
		t.Error("timeout should not be a success")
	}
}

func TestDetectSpinAtTwoSeconds(t *testing.T) {
	f := newFixture()
	f.pins.at = epoch.Add(2 * time.Second)
	d := f.detector(false)

	out := d.Detect(Spin, 5*time.Second, rest)
	if out.Detected != Spin {
		t.Fatalf("Detected = %v, expected Spin", out.Detected)
	}
	if out.Elapsed != 2*time.Second {
		t.Errorf("Elapsed = %v, expected 2s", out.Elapsed)
	}
	if !out.Success() {
		t.Error("matching gesture should be a success")
	}
}

func TestDetectPriority(t *testing.T) {
	f := newFixture()
	// Everything happens at once on the first tick.
	f.button.from, f.button.to = epoch, epoch.Add(time.Second)
	f.pins.at = epoch
	f.accel.readings = []reading{{s: shaken}, {s: shaken}}
	d := f.detector(true)

	out := d.Detect(Shake, 5*time.Second, rest)
	if out.Detected != Press {
		t.Errorf("Detected = %v, expected Press to win", out.Detected)
	}
	if f.accel.reads != 0 {
		t.Errorf("accelerometer read %d times, expected none after a press", f.accel.reads)
	}
}

func TestDetectSpinBeatsMotion(t *testing.T) {
	f := newFixture()
	f.pins.at = epoch.Add(20 * time.Millisecond)
	f.accel.readings = []reading{{s: shaken}, {s: shaken}}
	d := f.detector(true)

	out := d.Detect(Shake, 5*time.Second, rest)
	if out.Detected != Spin {
		t.Errorf("Detected = %v, expected Spin", out.Detected)
	}
}

func TestDetectShake(t *testing.T) {
	f := newFixture()
	f.accel.readings = []reading{{s: rest}, {s: shaken}, {s: shaken}}
	d := f.detector(true)

	out := d.Detect(Shake, 5*time.Second, rest)
	if out.Detected != Shake {
		t.Fatalf("Detected = %v, expected Shake", out.Detected)
	}
	if out.Elapsed != 40*time.Millisecond {
		t.Errorf("Elapsed = %v, expected 40ms (third tick)", out.Elapsed)
	}
}

func TestDetectReadFailureKeepsCounters(t *testing.T) {
	f := newFixture()
	f.accel.readings = []reading{
		{s: shaken},
		{err: errBus},
		{s: shaken},
	}
	d := f.detector(true)

	out := d.Detect(Shake, time.Second, rest)
	if out.Detected != Shake {
		t.Errorf("Detected = %v, expected Shake across a failed read", out.Detected)
	}
	if d.Faults() != 1 {
		t.Errorf("Faults() = %d, expected 1", d.Faults())
	}
}

func TestDetectTiltAfterFourTicks(t *testing.T) {
	f := newFixture()
	f.accel.readings = []reading{{s: tilted}, {s: tilted}, {err: errBus}, {s: tilted}, {s: tilted}}
	d := f.detector(true)

	out := d.Detect(Tilt, time.Second, rest)
	if out.Detected != Tilt {
		t.Fatalf("Detected = %v, expected Tilt", out.Detected)
	}
	if out.Elapsed != 80*time.Millisecond {
		t.Errorf("Elapsed = %v, expected 80ms", out.Elapsed)
	}
}

func TestDetectWithoutAccelIgnoresMotion(t *testing.T) {
	f := newFixture()
	f.accel.readings = []reading{{s: shaken}, {s: shaken}}
	d := f.detector(false)

	if d.HasAccel() {
		t.Fatal("HasAccel() should be false")
	}
	out := d.Detect(Shake, 200*time.Millisecond, rest)
	if out.Detected != None {
		t.Errorf("Detected = %v, expected None", out.Detected)
	}
	if f.accel.reads != 0 {
		t.Errorf("accelerometer read %d times, expected 0", f.accel.reads)
	}
}

func TestDetectWrongGesture(t *testing.T) {
	f := newFixture()
	f.button.from, f.button.to = epoch.Add(100*time.Millisecond), epoch.Add(300*time.Millisecond)
	d := f.detector(false)

	out := d.Detect(Spin, 3*time.Second, rest)
	if out.Detected != Press {
		t.Fatalf("Detected = %v, expected Press", out.Detected)
	}
	if out.Success() {
		t.Error("PRESS for a SPIN target should fail")
	}
	if out.Elapsed != 100*time.Millisecond {
		t.Errorf("Elapsed = %v, expected 100ms", out.Elapsed)
	}
}
