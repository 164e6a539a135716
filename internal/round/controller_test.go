package round

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/reflex/internal/core"
	"github.com/vovakirdan/reflex/internal/device"
	"github.com/vovakirdan/reflex/internal/encoder"
	"github.com/vovakirdan/reflex/internal/gesture"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// handheld is a scripted device that reacts to the round screen by
// performing a gesture after a delay.
type handheld struct {
	clock *core.ManualClock

	react   gesture.Kind
	delay   time.Duration
	pressAt time.Time
	spinAt  time.Time

	samples []device.Sample
	errs    []error

	frames []core.Frame
	colors []core.RGB
}

func (h *handheld) Pressed() bool {
	if h.pressAt.IsZero() {
		return false
	}
	now := h.clock.Now()
	return !now.Before(h.pressAt) && now.Before(h.pressAt.Add(150*time.Millisecond))
}

func (h *handheld) Levels() (bool, bool) {
	if h.spinAt.IsZero() || h.clock.Now().Before(h.spinAt) {
		return true, true
	}
	return false, true
}

func (h *handheld) Read() (device.Sample, error) {
	if len(h.errs) > 0 {
		err := h.errs[0]
		h.errs = h.errs[1:]
		if err != nil {
			return device.Sample{}, err
		}
	}
	if len(h.samples) == 0 {
		return device.Sample{Z: 9.8}, nil
	}
	s := h.samples[0]
	h.samples = h.samples[1:]
	return s, nil
}

func (h *handheld) SetColor(c core.RGB) { h.colors = append(h.colors, c) }

func (h *handheld) Render(f core.Frame) {
	h.frames = append(h.frames, f)
	if f.Screen != core.ScreenRound {
		return
	}
	at := f.Started.Add(h.delay)
	switch h.react {
	case gesture.Press:
		h.pressAt = at
	case gesture.Spin:
		h.spinAt = at
	}
}

func (h *handheld) device(withAccel bool) device.Device {
	d := device.Device{Button: h, Encoder: h, Indicator: h, Display: h}
	if withAccel {
		d.Accel = h
	}
	return d
}

func newController(h *handheld, withAccel bool, kinds ...gesture.Kind) *Controller {
	dev := h.device(withAccel)
	det := gesture.NewDetector(gesture.Inputs{
		Button:  dev.Button,
		Encoder: encoder.New(dev.Encoder),
		Accel:   dev.Accel,
	}, gesture.DefaultThresholds(), gesture.DefaultSampleInterval, h.clock, nil)

	c := New(det, dev, DefaultConfig(), rand.New(rand.NewSource(7)), h.clock, nil)
	if len(kinds) > 0 {
		c.kinds = kinds
	}
	return c
}

func TestTimeLimits(t *testing.T) {
	c := newController(&handheld{clock: core.NewManualClock(epoch)}, false)

	tests := []struct {
		difficulty int
		expected   time.Duration
	}{
		{0, 5 * time.Second},
		{1, 3 * time.Second},
		{2, 1500 * time.Millisecond},
		{7, 1500 * time.Millisecond}, // clamped
		{-1, 5 * time.Second},        // clamped
	}

	for _, tc := range tests {
		if got := c.TimeLimit(tc.difficulty); got != tc.expected {
			t.Errorf("TimeLimit(%d) = %v, expected %v", tc.difficulty, got, tc.expected)
		}
	}
}

func TestPickRespectsActiveKinds(t *testing.T) {
	h := &handheld{clock: core.NewManualClock(epoch)}

	limited := newController(h, false)
	for i := 0; i < 200; i++ {
		if k := limited.Pick(); k != gesture.Press && k != gesture.Spin {
			t.Fatalf("Pick() without accelerometer returned %v", k)
		}
	}

	full := newController(h, true)
	seen := make(map[gesture.Kind]int)
	for i := 0; i < 400; i++ {
		seen[full.Pick()]++
	}
	for _, k := range gesture.ActiveKinds(true) {
		if seen[k] == 0 {
			t.Errorf("Pick() never chose %v in 400 draws", k)
		}
	}
}

func TestPlayEasySpinSucceeds(t *testing.T) {
	h := &handheld{clock: core.NewManualClock(epoch), react: gesture.Spin, delay: 2 * time.Second}
	c := newController(h, false, gesture.Spin)

	res := c.Play(0, 3)
	if !res.Success() {
		t.Fatalf("expected success, got detected=%v", res.Detected)
	}
	if res.Elapsed != 2*time.Second {
		t.Errorf("Elapsed = %v, expected 2s", res.Elapsed)
	}
	if res.Level != 3 || res.Difficulty != 0 {
		t.Errorf("Result level/difficulty = %d/%d, expected 3/0", res.Level, res.Difficulty)
	}

	if len(h.frames) != 1 {
		t.Fatalf("rendered %d frames, expected 1", len(h.frames))
	}
	f := h.frames[0]
	if f.Target != "SPIN" || f.Level != 3 || f.Score != 2 || f.TimeLimit != 5*time.Second {
		t.Errorf("round frame = %+v", f)
	}
	if got := f.Text(); got[0] != "LVL 3" || got[1] != "SPIN!  Sc:2" {
		t.Errorf("round text = %q", got)
	}
	if len(h.colors) != 1 || h.colors[0] != core.ColorRound {
		t.Errorf("colors = %v, expected the round color", h.colors)
	}
}

func TestPlayHardPressTimesOut(t *testing.T) {
	h := &handheld{clock: core.NewManualClock(epoch)}
	c := newController(h, false, gesture.Press)

	res := c.Play(2, 4)
	if res.Success() {
		t.Fatal("expected failure without input")
	}
	if res.Detected != gesture.None {
		t.Errorf("Detected = %v, expected None", res.Detected)
	}
	if res.Elapsed != 1500*time.Millisecond {
		t.Errorf("Elapsed = %v, expected 1.5s", res.Elapsed)
	}
}

func TestPlayWrongGestureFails(t *testing.T) {
	h := &handheld{clock: core.NewManualClock(epoch), react: gesture.Press, delay: 300 * time.Millisecond}
	c := newController(h, false, gesture.Spin)

	res := c.Play(1, 1)
	if res.Success() {
		t.Fatal("PRESS on a SPIN round should fail")
	}
	if res.Detected != gesture.Press {
		t.Errorf("Detected = %v, expected Press", res.Detected)
	}
}

func TestPlayUsesCapturedBaseline(t *testing.T) {
	// The device is already shaking hard along x when the round starts;
	// that reading becomes the baseline so the same reading is no shake,
	// only a (raw) tilt.
	offset := device.Sample{X: 15, Z: 9.8}
	h := &handheld{
		clock:   core.NewManualClock(epoch),
		samples: []device.Sample{offset, offset, offset, offset, offset},
	}
	c := newController(h, true, gesture.Tilt)

	res := c.Play(0, 1)
	if res.Detected != gesture.Tilt {
		t.Errorf("Detected = %v, expected Tilt relative to captured baseline", res.Detected)
	}
}

func TestPlayFallsBackToSyntheticBaseline(t *testing.T) {
	offset := device.Sample{X: 15, Z: 9.8}
	h := &handheld{
		clock:   core.NewManualClock(epoch),
		errs:    []error{errors.New("bus busy")},
		samples: []device.Sample{offset, offset},
	}
	c := newController(h, true, gesture.Shake)

	res := c.Play(0, 1)
	if res.Detected != gesture.Shake {
		t.Errorf("Detected = %v, expected Shake against the synthetic baseline", res.Detected)
	}
}
