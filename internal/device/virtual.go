package device

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/reflex/internal/core"
)

// VirtualConfig tunes the emulated handheld.
type VirtualConfig struct {
	Accelerometer  bool          // fit an accelerometer
	ButtonHold     time.Duration // how long one press keeps the button down
	ShakeDuration  time.Duration // how long one shake keeps the readings moving
	ShakeAmplitude float64       // x offset of a shake sample, m/s²
	Rest           Sample        // reading of a device lying flat
	Tilt           Sample        // reading while tilted
	FaultRate      float64       // probability of a failed read, 0..1
	Seed           int64         // RNG seed for fault injection
}

// DefaultVirtualConfig returns a config matching a desk-held device.
func DefaultVirtualConfig() VirtualConfig {
	return VirtualConfig{
		Accelerometer:  true,
		ButtonHold:     150 * time.Millisecond,
		ShakeDuration:  120 * time.Millisecond,
		ShakeAmplitude: 15,
		Rest:           Sample{0, 0, 9.8},
		Tilt:           Sample{7, 0, 7},
	}
}

// Update is published whenever the game changes the display or indicator.
type Update struct {
	Frame core.Frame
	Color core.RGB
}

type pinLevels struct {
	clk, dt bool
}

// Virtual is a software handheld driven by Controls (keyboard, scripts).
// It is shared between the goroutine feeding controls and the game loop,
// so every method locks.
type Virtual struct {
	mu    sync.Mutex
	cfg   VirtualConfig
	clock core.Clock
	rng   *rand.Rand

	releaseAt time.Time
	pending   []pinLevels
	clk, dt   bool

	shakeUntil time.Time
	shakeSign  float64
	tilted     bool

	frame   core.Frame
	color   core.RGB
	updates chan Update
}

// NewVirtual creates an idle virtual handheld. Encoder pins idle high
// (pulled up) like the real part.
func NewVirtual(cfg VirtualConfig, clock core.Clock) *Virtual {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if cfg.ShakeDuration <= 0 {
		cfg.ShakeDuration = DefaultVirtualConfig().ShakeDuration
	}
	return &Virtual{
		cfg:       cfg,
		clock:     clock,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		clk:       true,
		dt:        true,
		shakeSign: 1,
		updates:   make(chan Update, 16),
	}
}

// Device returns the capability handles of this handheld.
func (v *Virtual) Device() Device {
	d := Device{
		Button:    v,
		Encoder:   v,
		Indicator: v,
		Display:   v,
	}
	if v.cfg.Accelerometer {
		d.Accel = v
	}
	return d
}

// Updates delivers display/indicator changes. When the consumer falls
// behind, the oldest pending update is dropped.
func (v *Virtual) Updates() <-chan Update {
	return v.updates
}

// Apply performs one physical manipulation.
func (v *Virtual) Apply(c core.Control) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch c {
	case core.ControlPress:
		v.releaseAt = v.clock.Now().Add(v.cfg.ButtonHold)
	case core.ControlSpinCW:
		v.pending = append(v.pending, pinLevels{false, true}, pinLevels{true, true})
	case core.ControlSpinCCW:
		v.pending = append(v.pending, pinLevels{false, false}, pinLevels{true, false})
	case core.ControlShake:
		v.shakeUntil = v.clock.Now().Add(v.cfg.ShakeDuration)
	case core.ControlTilt:
		v.tilted = !v.tilted
	}
}

// Tilted reports whether the device is currently held tilted.
func (v *Virtual) Tilted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tilted
}

// Pressed implements Button.
func (v *Virtual) Pressed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.clock.Now().Before(v.releaseAt)
}

// Levels implements EncoderPins. Each poll consumes at most one queued
// level change so the tracker sees every edge.
func (v *Virtual) Levels() (bool, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.pending) > 0 {
		next := v.pending[0]
		v.pending = v.pending[1:]
		v.clk, v.dt = next.clk, next.dt
	}
	return v.clk, v.dt
}

// Read implements Accelerometer.
func (v *Virtual) Read() (Sample, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cfg.FaultRate > 0 && v.rng.Float64() < v.cfg.FaultRate {
		return Sample{}, ErrNoSample
	}

	s := v.cfg.Rest
	if v.tilted {
		s = v.cfg.Tilt
	}
	if v.clock.Now().Before(v.shakeUntil) {
		s.X += v.shakeSign * v.cfg.ShakeAmplitude
		v.shakeSign = -v.shakeSign
	}
	return s, nil
}

// SetColor implements Indicator.
func (v *Virtual) SetColor(c core.RGB) {
	v.mu.Lock()
	if v.color == c {
		v.mu.Unlock()
		return
	}
	v.color = c
	u := Update{Frame: v.frame, Color: c}
	v.mu.Unlock()
	v.publish(u)
}

// Render implements Display.
func (v *Virtual) Render(f core.Frame) {
	v.mu.Lock()
	v.frame = f
	u := Update{Frame: f, Color: v.color}
	v.mu.Unlock()
	v.publish(u)
}

// Snapshot returns the current frame and indicator color.
func (v *Virtual) Snapshot() Update {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Update{Frame: v.frame, Color: v.color}
}

func (v *Virtual) publish(u Update) {
	for {
		select {
		case v.updates <- u:
			return
		default:
		}
		select {
		case <-v.updates:
		default:
		}
	}
}
