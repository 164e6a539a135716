package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/reflex/internal/game"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}

	def := Default()
	if len(cfg.Difficulties) != len(def.Difficulties) {
		t.Fatalf("difficulties = %d, expected %d", len(cfg.Difficulties), len(def.Difficulties))
	}
	for i := range def.Difficulties {
		if cfg.Difficulties[i] != def.Difficulties[i] {
			t.Errorf("difficulty %d = %+v, expected %+v", i, cfg.Difficulties[i], def.Difficulties[i])
		}
	}
	if cfg.Gestures != def.Gestures {
		t.Errorf("gestures = %+v, expected %+v", cfg.Gestures, def.Gestures)
	}
	if cfg.Game != def.Game {
		t.Errorf("game = %+v, expected %+v", cfg.Game, def.Game)
	}
	if cfg.Storage != def.Storage || cfg.Device != def.Device || cfg.Logging != def.Logging {
		t.Errorf("embedded config differs from Default(): %+v", cfg)
	}
}

func TestDefaultTimeLimits(t *testing.T) {
	expected := []time.Duration{5 * time.Second, 3 * time.Second, 1500 * time.Millisecond}
	for i, d := range Default().Difficulties {
		if d.TimeLimit != expected[i] {
			t.Errorf("%s time limit = %v, expected %v", d.Name, d.TimeLimit, expected[i])
		}
	}
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
difficulties:
  - name: ZEN
    time_limit: 10s
gestures:
  shake_threshold: 12.5
game:
  win_level: 3
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.Difficulties) != 1 || cfg.Difficulties[0].Name != "ZEN" {
		t.Errorf("difficulties = %+v, expected only ZEN", cfg.Difficulties)
	}
	if cfg.Gestures.ShakeThreshold != 12.5 {
		t.Errorf("shake_threshold = %v, expected 12.5", cfg.Gestures.ShakeThreshold)
	}
	if cfg.Gestures.TiltTicks != 4 {
		t.Errorf("tilt_ticks = %d, expected default 4", cfg.Gestures.TiltTicks)
	}
	if cfg.Game.WinLevel != 3 || cfg.Game.NameLength != 3 {
		t.Errorf("game = %+v", cfg.Game)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) succeeded, expected error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("difficulties: {oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load(bad) succeeded, expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("difficulties: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("Load(invalid) succeeded, expected validation error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"defaults", func(*Config) {}, ""},
		{"no difficulties", func(c *Config) { c.Difficulties = nil }, "difficulty"},
		{"zero time limit", func(c *Config) { c.Difficulties[1].TimeLimit = 0 }, "time_limit"},
		{"unnamed difficulty", func(c *Config) { c.Difficulties[0].Name = "" }, "no name"},
		{"zero shake ticks", func(c *Config) { c.Gestures.ShakeTicks = 0 }, "ticks"},
		{"negative threshold", func(c *Config) { c.Gestures.TiltThreshold = -1 }, "thresholds"},
		{"zero interval", func(c *Config) { c.Gestures.SampleInterval = 0 }, "sample_interval"},
		{"zero win level", func(c *Config) { c.Game.WinLevel = 0 }, "win_level"},
		{"empty alphabet", func(c *Config) { c.Game.Letters = "" }, "letters"},
		{"zero name length", func(c *Config) { c.Game.NameLength = 0 }, "name_length"},
		{"zero tick", func(c *Config) { c.Game.Tick = 0 }, "tick"},
		{"fault rate above one", func(c *Config) { c.Device.FaultRate = 1.5 }, "fault_rate"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errSub == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errSub) {
				t.Errorf("Validate() = %v, expected error containing %q", err, tc.errSub)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := Expand("~/.reflex/highscore.txt")
	if err != nil {
		t.Fatalf("Expand() failed: %v", err)
	}
	if expected := filepath.Join(home, ".reflex", "highscore.txt"); got != expected {
		t.Errorf("Expand() = %q, expected %q", got, expected)
	}

	if got, _ := Expand("/tmp/x"); got != "/tmp/x" {
		t.Errorf("Expand(absolute) = %q", got)
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Device.Accelerometer = false
	cfg.Gestures.SyntheticBaseline = [3]float64{1, 2, 3}

	rc := cfg.Round()
	if len(rc.Difficulties) != 3 || rc.Difficulties[2].TimeLimit != 1500*time.Millisecond {
		t.Errorf("Round().Difficulties = %+v", rc.Difficulties)
	}
	if rc.SyntheticBaseline.X != 1 || rc.SyntheticBaseline.Z != 3 {
		t.Errorf("Round().SyntheticBaseline = %v", rc.SyntheticBaseline)
	}

	th := cfg.Thresholds()
	if th.Shake != 10 || th.ShakeTicks != 2 || th.Tilt != 5 || th.TiltTicks != 4 {
		t.Errorf("Thresholds() = %+v", th)
	}

	v := cfg.Virtual()
	if v.Accelerometer {
		t.Error("Virtual().Accelerometer = true, expected false")
	}
	if v.Rest.Y != 2 || v.Tilt.X != 7 {
		t.Errorf("Virtual() rest=%v tilt=%v", v.Rest, v.Tilt)
	}
}

func TestSetupMatchesGameDefaults(t *testing.T) {
	s := Default().Setup()
	if s.Options != game.DefaultOptions() {
		t.Errorf("Options() = %+v, expected %+v", s.Options, game.DefaultOptions())
	}
	if s.SampleInterval != 20*time.Millisecond {
		t.Errorf("SampleInterval = %v, expected 20ms", s.SampleInterval)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !strings.Contains(string(data), "time_limit: 1.5s") {
		t.Errorf("Marshal() output lacks duration strings:\n%s", data)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Game != Default().Game {
		t.Errorf("round trip game = %+v", cfg.Game)
	}
}
