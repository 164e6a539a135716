// Package round runs a single reaction round: choose a gesture, announce
// it, and wait for the player to perform it before the time limit.
package round

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reflex/internal/core"
	"github.com/vovakirdan/reflex/internal/device"
	"github.com/vovakirdan/reflex/internal/gesture"
)

// Difficulty is a named time limit.
type Difficulty struct {
	Name      string
	TimeLimit time.Duration
}

// DefaultDifficulties returns EASY, MEDIUM and HARD.
func DefaultDifficulties() []Difficulty {
	return []Difficulty{
		{Name: "EASY", TimeLimit: 5 * time.Second},
		{Name: "MEDIUM", TimeLimit: 3 * time.Second},
		{Name: "HARD", TimeLimit: 1500 * time.Millisecond},
	}
}

// Config holds the round parameters.
type Config struct {
	Difficulties []Difficulty

	// SyntheticBaseline stands in for a baseline sample when there is no
	// accelerometer or the baseline read fails.
	SyntheticBaseline device.Sample

	// BaselineSettle is the pause after a successful baseline read.
	BaselineSettle time.Duration
}

// DefaultConfig returns the reference round parameters.
func DefaultConfig() Config {
	return Config{
		Difficulties:      DefaultDifficulties(),
		SyntheticBaseline: device.Sample{X: 0, Y: 0, Z: 9.8},
		BaselineSettle:    50 * time.Millisecond,
	}
}

// Result is the outcome of one round together with where it was played.
type Result struct {
	gesture.Outcome
	Level      int
	Difficulty int
}

// Controller owns the lifecycle of one round. It never mutates session
// state; the caller decides what a Result means.
type Controller struct {
	det       *gesture.Detector
	accel     device.Accelerometer
	display   device.Display
	indicator device.Indicator
	kinds     []gesture.Kind
	cfg       Config
	rng       *rand.Rand
	clock     core.Clock
	logger    *log.Logger
}

// New creates a controller for dev. The playable gestures follow from
// whether dev has an accelerometer.
func New(det *gesture.Detector, dev device.Device, cfg Config, rng *rand.Rand, clock core.Clock, logger *log.Logger) *Controller {
	if len(cfg.Difficulties) == 0 {
		cfg.Difficulties = DefaultDifficulties()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		det:       det,
		accel:     dev.Accel,
		display:   dev.Display,
		indicator: dev.Indicator,
		kinds:     gesture.ActiveKinds(dev.HasAccel()),
		cfg:       cfg,
		rng:       rng,
		clock:     clock,
		logger:    logger,
	}
}

// Kinds returns the gestures rounds are drawn from.
func (c *Controller) Kinds() []gesture.Kind {
	return c.kinds
}

// Difficulties returns the configured difficulty table.
func (c *Controller) Difficulties() []Difficulty {
	return c.cfg.Difficulties
}

// TimeLimit returns the limit for a difficulty index. Out-of-range indexes
// are clamped to the table.
func (c *Controller) TimeLimit(difficulty int) time.Duration {
	i := core.Clamp(difficulty, 0, len(c.cfg.Difficulties)-1)
	return c.cfg.Difficulties[i].TimeLimit
}

// Pick draws a target gesture uniformly from the playable set.
func (c *Controller) Pick() gesture.Kind {
	return c.kinds[c.rng.Intn(len(c.kinds))]
}

// Play runs one round at the given difficulty and level.
func (c *Controller) Play(difficulty, level int) Result {
	target := c.Pick()
	limit := c.TimeLimit(difficulty)

	c.indicator.SetColor(core.ColorRound)
	c.display.Render(Frame(level, target, c.clock.Now(), limit))

	baseline := c.baseline()
	out := c.det.Detect(target, limit, baseline)

	c.logger.Debug("round finished",
		"level", level,
		"target", out.Target,
		"detected", out.Detected,
		"elapsed", out.Elapsed,
	)

	return Result{Outcome: out, Level: level, Difficulty: difficulty}
}

// baseline captures the reference sample for shake deltas.
func (c *Controller) baseline() device.Sample {
	if c.accel == nil {
		return c.cfg.SyntheticBaseline
	}
	s, err := c.accel.Read()
	if err != nil {
		c.logger.Debug("baseline read failed, using synthetic baseline", "error", err)
		return c.cfg.SyntheticBaseline
	}
	c.clock.Sleep(c.cfg.BaselineSettle)
	return s
}

// Frame builds the round screen: the level in large type and the target
// with the running score below it.
func Frame(level int, target gesture.Kind, started time.Time, limit time.Duration) core.Frame {
	score := level - 1
	return core.Frame{
		Screen: core.ScreenRound,
		Blocks: []core.Block{
			{Text: fmt.Sprintf("LVL %d", level), Row: 2, Scale: 2, Centered: true},
			{Text: fmt.Sprintf("%s!  Sc:%d", target, score), Row: 5, Scale: 1, Centered: true},
		},
		Level:     level,
		Score:     score,
		Target:    target.String(),
		Started:   started,
		TimeLimit: limit,
	}
}
