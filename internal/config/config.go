// Package config provides YAML-based configuration for the reflex game:
// difficulty tiers, gesture thresholds, session timing, storage paths and
// the virtual handheld.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the complete configuration of a reflex installation.
type Config struct {
	Difficulties []DifficultyConfig `yaml:"difficulties"`
	Gestures     GestureConfig      `yaml:"gestures"`
	Game         GameConfig         `yaml:"game"`
	Storage      StorageConfig      `yaml:"storage"`
	Device       DeviceConfig       `yaml:"device"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// DifficultyConfig is one entry of the menu. Its position in the list is
// the difficulty index.
type DifficultyConfig struct {
	Name      string        `yaml:"name"`
	TimeLimit time.Duration `yaml:"time_limit"`
}

// GestureConfig holds the tuned constants of gesture detection.
type GestureConfig struct {
	ShakeThreshold    float64       `yaml:"shake_threshold"`    // m/s² from baseline on any axis
	ShakeTicks        int           `yaml:"shake_ticks"`        // consecutive samples
	TiltThreshold     float64       `yaml:"tilt_threshold"`     // raw |x| or |y|
	TiltTicks         int           `yaml:"tilt_ticks"`         // consecutive samples
	SampleInterval    time.Duration `yaml:"sample_interval"`    // sleep between detector ticks
	BaselineSettle    time.Duration `yaml:"baseline_settle"`    // pause after a baseline read
	SyntheticBaseline [3]float64    `yaml:"synthetic_baseline"` // used when no baseline can be read
}

// GameConfig controls the session state machine.
type GameConfig struct {
	WinLevel     int           `yaml:"win_level"` // WIN when the level exceeds it
	Letters      string        `yaml:"letters"`
	NameLength   int           `yaml:"name_length"`
	Tick         time.Duration `yaml:"tick"`
	Intro        bool          `yaml:"intro"`
	ResultPause  time.Duration `yaml:"result_pause"`
	FinalPause   time.Duration `yaml:"final_pause"`
	Debounce     time.Duration `yaml:"debounce"`
	NameDebounce time.Duration `yaml:"name_debounce"`
}

// StorageConfig locates persistent files. A leading "~" is expanded.
type StorageConfig struct {
	ScoreFile string `yaml:"score_file"`
	HistoryDB string `yaml:"history_db"`
}

// DeviceConfig tunes the virtual handheld.
type DeviceConfig struct {
	Accelerometer bool          `yaml:"accelerometer"`
	FaultRate     float64       `yaml:"fault_rate"`
	ButtonHold    time.Duration `yaml:"button_hold"`
	ShakeDuration time.Duration `yaml:"shake_duration"`
	Tilt          [3]float64    `yaml:"tilt"`
}

// LoggingConfig selects the log level and the file used in interactive play.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Validate reports the first setting that would make the game unplayable.
func (c Config) Validate() error {
	if len(c.Difficulties) == 0 {
		return errors.New("config: at least one difficulty is required")
	}
	for i, d := range c.Difficulties {
		if d.Name == "" {
			return fmt.Errorf("config: difficulty %d has no name", i)
		}
		if d.TimeLimit <= 0 {
			return fmt.Errorf("config: difficulty %s: time_limit must be positive", d.Name)
		}
	}

	g := c.Gestures
	if g.ShakeTicks <= 0 || g.TiltTicks <= 0 {
		return errors.New("config: gestures: shake_ticks and tilt_ticks must be positive")
	}
	if g.ShakeThreshold <= 0 || g.TiltThreshold <= 0 {
		return errors.New("config: gestures: thresholds must be positive")
	}
	if g.SampleInterval <= 0 {
		return errors.New("config: gestures: sample_interval must be positive")
	}

	if c.Game.WinLevel <= 0 {
		return errors.New("config: game: win_level must be positive")
	}
	if c.Game.Letters == "" {
		return errors.New("config: game: letters must not be empty")
	}
	if c.Game.NameLength <= 0 {
		return errors.New("config: game: name_length must be positive")
	}
	if c.Game.Tick <= 0 {
		return errors.New("config: game: tick must be positive")
	}

	if c.Device.FaultRate < 0 || c.Device.FaultRate > 1 {
		return errors.New("config: device: fault_rate must be within 0..1")
	}
	return nil
}

// Expand replaces a leading "~" with the user's home directory.
func Expand(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
