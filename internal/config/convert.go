package config

import (
	"github.com/vovakirdan/reflex/internal/device"
	"github.com/vovakirdan/reflex/internal/game"
	"github.com/vovakirdan/reflex/internal/gesture"
	"github.com/vovakirdan/reflex/internal/round"
)

// Round returns the round controller parameters.
func (c Config) Round() round.Config {
	diffs := make([]round.Difficulty, len(c.Difficulties))
	for i, d := range c.Difficulties {
		diffs[i] = round.Difficulty{Name: d.Name, TimeLimit: d.TimeLimit}
	}
	b := c.Gestures.SyntheticBaseline
	return round.Config{
		Difficulties:      diffs,
		SyntheticBaseline: device.Sample{X: b[0], Y: b[1], Z: b[2]},
		BaselineSettle:    c.Gestures.BaselineSettle,
	}
}

// Thresholds returns the gesture debounce parameters.
func (c Config) Thresholds() gesture.Thresholds {
	return gesture.Thresholds{
		Shake:      c.Gestures.ShakeThreshold,
		ShakeTicks: c.Gestures.ShakeTicks,
		Tilt:       c.Gestures.TiltThreshold,
		TiltTicks:  c.Gestures.TiltTicks,
	}
}

// Virtual returns the virtual handheld parameters. Rest follows the
// synthetic baseline so an untouched device never reads as moving.
func (c Config) Virtual() device.VirtualConfig {
	v := device.DefaultVirtualConfig()
	b := c.Gestures.SyntheticBaseline
	t := c.Device.Tilt
	v.Accelerometer = c.Device.Accelerometer
	v.FaultRate = c.Device.FaultRate
	v.ButtonHold = c.Device.ButtonHold
	v.ShakeDuration = c.Device.ShakeDuration
	v.Rest = device.Sample{X: b[0], Y: b[1], Z: b[2]}
	v.Tilt = device.Sample{X: t[0], Y: t[1], Z: t[2]}
	return v
}

// Options returns the session pacing.
func (c Config) Options() game.Options {
	g := c.Game
	return game.Options{
		WinLevel:     g.WinLevel,
		Letters:      g.Letters,
		NameLength:   g.NameLength,
		Tick:         g.Tick,
		Intro:        g.Intro,
		ResultPause:  g.ResultPause,
		FinalPause:   g.FinalPause,
		Debounce:     g.Debounce,
		NameDebounce: g.NameDebounce,
	}
}

// Setup returns everything game.Assemble needs except the clock, logger,
// recorder and seed, which depend on how the game is hosted.
func (c Config) Setup() game.Setup {
	return game.Setup{
		Options:        c.Options(),
		Round:          c.Round(),
		Thresholds:     c.Thresholds(),
		SampleInterval: c.Gestures.SampleInterval,
	}
}
