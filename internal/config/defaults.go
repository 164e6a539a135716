package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/reflex.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the hardcoded default configuration.
// It matches defaults/reflex.yaml and is used if the embedded file fails to parse.
func Default() Config {
	return Config{
		Difficulties: []DifficultyConfig{
			{Name: "EASY", TimeLimit: 5 * time.Second},
			{Name: "MEDIUM", TimeLimit: 3 * time.Second},
			{Name: "HARD", TimeLimit: 1500 * time.Millisecond},
		},
		Gestures: GestureConfig{
			ShakeThreshold:    10,
			ShakeTicks:        2,
			TiltThreshold:     5,
			TiltTicks:         4,
			SampleInterval:    20 * time.Millisecond,
			BaselineSettle:    50 * time.Millisecond,
			SyntheticBaseline: [3]float64{0, 0, 9.8},
		},
		Game: GameConfig{
			WinLevel:     10,
			Letters:      "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
			NameLength:   3,
			Tick:         10 * time.Millisecond,
			Intro:        true,
			ResultPause:  time.Second,
			FinalPause:   2 * time.Second,
			Debounce:     200 * time.Millisecond,
			NameDebounce: 300 * time.Millisecond,
		},
		Storage: StorageConfig{
			ScoreFile: "~/.reflex/highscore.txt",
			HistoryDB: "~/.reflex/history.db",
		},
		Device: DeviceConfig{
			Accelerometer: true,
			FaultRate:     0,
			ButtonHold:    150 * time.Millisecond,
			ShakeDuration: 120 * time.Millisecond,
			Tilt:          [3]float64{7, 0, 7},
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "~/.reflex/reflex.log",
		},
	}
}
