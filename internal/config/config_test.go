package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-balance/internal/balance"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded config = %+v, expected %+v", cfg, DefaultConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
}

func TestLoadCustomPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  noise_amplitude: 0\nloop:\n  step_mode: scaled\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Physics.NoiseAmplitude != 0 {
		t.Errorf("NoiseAmplitude = %v, expected 0", cfg.Physics.NoiseAmplitude)
	}
	if cfg.Physics.CrashThreshold != balance.DefaultCrashThreshold {
		t.Errorf("CrashThreshold = %v, expected default", cfg.Physics.CrashThreshold)
	}
	mode, err := cfg.StepMode()
	if err != nil || mode != balance.StepScaled {
		t.Errorf("StepMode() = %v, %v, expected scaled", mode, err)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(bad, []byte("physics: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(invalid, []byte("loop:\n  tick_rate: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) expected error")
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load(bad yaml) expected error")
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load(invalid) = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadUserDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".balance", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "balance.yaml"), []byte("speed:\n  initial: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Speed.Initial != 30 {
		t.Errorf("Speed.Initial = %v, expected 30", cfg.Speed.Initial)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero tick rate", func(c *Config) { c.Loop.TickRate = 0 }},
		{"bad step mode", func(c *Config) { c.Loop.StepMode = "warp" }},
		{"negative threshold", func(c *Config) { c.Physics.CrashThreshold = -1 }},
		{"inverted speed", func(c *Config) { c.Speed.Min, c.Speed.Max = 10, 1 }},
		{"initial out of range", func(c *Config) { c.Speed.Initial = 99 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultConfig()

	tests := []struct {
		preset    DifficultyPreset
		noise     float64
		gravity   float64
		initSpeed float64
	}{
		{DifficultyEasy, 0.1, 0.06, 20},
		{DifficultyNormal, 0.2, 0.08, 20},
		{DifficultyHard, 0.4, 0.1, 30},
		{DifficultyFixed, 0.2, 0.08, 20},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := base
			ApplyPreset(&cfg, tt.preset)
			if !closeTo(cfg.Physics.NoiseAmplitude, tt.noise) {
				t.Errorf("NoiseAmplitude = %v, expected %v", cfg.Physics.NoiseAmplitude, tt.noise)
			}
			if !closeTo(cfg.Physics.GravityFactor, tt.gravity) {
				t.Errorf("GravityFactor = %v, expected %v", cfg.Physics.GravityFactor, tt.gravity)
			}
			if cfg.Speed.Initial != tt.initSpeed {
				t.Errorf("Speed.Initial = %v, expected %v", cfg.Speed.Initial, tt.initSpeed)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() after preset = %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyFixed {
		t.Errorf("ParsePreset(\"\") = %v, %v", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(\"hard\") = %v, %v", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset(\"insane\") expected error")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("round trip = %+v", cfg)
	}
}

func closeTo(a, b float64) bool {
	d := a - b
	return d < 1e-12 && d > -1e-12
}
