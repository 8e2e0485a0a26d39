package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const legacyConfig = `predatorNumber=20
preyNumber=60
obstacleNumber=10
cellNumberWidth=30
cellNumberHeight=20
cellWidth=12
cellHeight=8
predatorOffspringTimeLimit=9
predatorHungerLimit=6
preyOffspringTimeLimit=3
iterations=500
`

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Iterations <= 0 {
		t.Error("iterations should be positive")
	}
	if cfg.Lotka.TimeScale <= 0 {
		t.Error("lotka time scale should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("small")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Width != 16 {
		t.Errorf("expected width 16, got %d", cfg.Width)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset invalid: %v", err)
	}

	cfg.Width = 1
	if Presets["small"].Width != 16 {
		t.Error("GetPreset returned a shared pointer")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestParseLegacy(t *testing.T) {
	cfg, err := ParseLegacy([]byte(legacyConfig))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	p := cfg.GridParams()
	if p.Rows != 20 || p.Cols != 30 {
		t.Errorf("expected 20x30 grid, got %dx%d", p.Rows, p.Cols)
	}
	if p.Predators != 20 || p.Prey != 60 || p.Obstacles != 10 {
		t.Errorf("unexpected agent counts %+v", p)
	}
	if p.PredatorHungerLimit != 6 || p.PreyOffspringInterval != 3 || p.IterationLimit != 500 {
		t.Errorf("unexpected limits %+v", p)
	}
	if cfg.CellWidth != 12 || cfg.CellHeight != 8 {
		t.Errorf("unexpected cell size %dx%d", cfg.CellWidth, cfg.CellHeight)
	}
}

func TestParseLegacy_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing key", strings.Replace(legacyConfig, "iterations=500\n", "", 1), "missing iterations"},
		{"not an integer", strings.Replace(legacyConfig, "preyNumber=60", "preyNumber=lots", 1), "preyNumber is not an integer"},
		{"no separator", legacyConfig + "garbage\n", "expected key=value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLegacy([]byte(tt.input))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative prey", func(c *Config) { c.Prey = -1 }},
		{"negative hunger", func(c *Config) { c.PredatorHungerLimit = -3 }},
		{"over capacity", func(c *Config) { c.Width, c.Height, c.Predators, c.Prey, c.Obstacles = 2, 2, 2, 2, 1 }},
		{"negative lotka steps", func(c *Config) { c.Lotka.Steps = -1 }},
		{"zero lotka steps", func(c *Config) { c.Lotka.Steps = 0 }},
		{"zero lotka time scale", func(c *Config) { c.Lotka.TimeScale = 0 }},
		{"negative lotka time scale", func(c *Config) { c.Lotka.TimeScale = -0.5 }},
		{"negative lotka prey", func(c *Config) { c.Lotka.Prey = -10 }},
		{"negative lotka rate", func(c *Config) { c.Lotka.PredatorDeathRate = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "sim.yaml")
	if err := os.WriteFile(yamlPath, []byte("predators: 5\nprey: 7\nobstacles: 2\nwidth: 10\nheight: 4\nseed: 42\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if cfg.Predators != 5 || cfg.Prey != 7 || cfg.Seed != 42 {
		t.Errorf("unexpected values %+v", cfg)
	}
	if cfg.Iterations != DefaultIterations {
		t.Errorf("expected default iterations, got %d", cfg.Iterations)
	}

	legacyPath := filepath.Join(dir, "life_config.txt")
	if err := os.WriteFile(legacyPath, []byte(legacyConfig), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(legacyPath); err != nil {
		t.Errorf("load legacy: %v", err)
	}
}

func TestLoad_Rejects(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"unknown.yaml":  "predators: 5\nwolves: 3\n",
		"capacity.yaml": "width: 2\nheight: 2\npredators: 3\nprey: 3\nobstacles: 0\n",
		"type.yaml":     "prey: many\n",
		"lotka.yaml":    "lotka:\n  steps: -5\n",
	}
	for name, body := range tests {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("fortress")
	cfg.Seed = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}
