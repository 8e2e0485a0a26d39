package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/predprey/internal/ecosys"
	"github.com/san-kum/predprey/internal/lotka"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a configuration that cannot build a simulation.
var ErrInvalid = errors.New("config: invalid configuration")

const (
	DefaultPredators                 = 50
	DefaultPrey                      = 200
	DefaultObstacles                 = 40
	DefaultWidth                     = 40
	DefaultHeight                    = 30
	DefaultCellSize                  = 10
	DefaultPredatorOffspringInterval = 12
	DefaultPredatorHungerLimit       = 8
	DefaultPreyOffspringInterval     = 5
	DefaultIterations                = 1000
)

type Config struct {
	Predators int `yaml:"predators"`
	Prey      int `yaml:"prey"`
	Obstacles int `yaml:"obstacles"`

	// Width and Height count cells.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// CellWidth and CellHeight are pixel sizes, used by renderers only.
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`

	PredatorOffspringInterval int `yaml:"predator_offspring_interval"`
	PredatorHungerLimit       int `yaml:"predator_hunger_limit"`
	PreyOffspringInterval     int `yaml:"prey_offspring_interval"`

	Iterations int   `yaml:"iterations"`
	Seed       int64 `yaml:"seed"`

	Lotka LotkaConfig `yaml:"lotka"`
}

type LotkaConfig struct {
	Prey               float64 `yaml:"prey"`
	Predators          float64 `yaml:"predators"`
	Steps              int     `yaml:"steps"`
	TimeScale          float64 `yaml:"time_scale"`
	PreyBirthRate      float64 `yaml:"prey_birth_rate"`
	PreyEatenRate      float64 `yaml:"prey_eaten_rate"`
	PredatorDeathRate  float64 `yaml:"predator_death_rate"`
	PredatorGrowthRate float64 `yaml:"predator_growth_rate"`
	Alpha              float64 `yaml:"alpha"`
}

func DefaultConfig() *Config {
	lp := lotka.DefaultParams()
	return &Config{
		Predators:                 DefaultPredators,
		Prey:                      DefaultPrey,
		Obstacles:                 DefaultObstacles,
		Width:                     DefaultWidth,
		Height:                    DefaultHeight,
		CellWidth:                 DefaultCellSize,
		CellHeight:                DefaultCellSize,
		PredatorOffspringInterval: DefaultPredatorOffspringInterval,
		PredatorHungerLimit:       DefaultPredatorHungerLimit,
		PreyOffspringInterval:     DefaultPreyOffspringInterval,
		Iterations:                DefaultIterations,
		Lotka: LotkaConfig{
			Prey:               200,
			Predators:          100,
			Steps:              1000,
			TimeScale:          lp.TimeScale,
			PreyBirthRate:      lp.PreyBirthRate,
			PreyEatenRate:      lp.PreyEatenRate,
			PredatorDeathRate:  lp.PredatorDeathRate,
			PredatorGrowthRate: lp.PredatorGrowthRate,
			Alpha:              lp.Alpha,
		},
	}
}

// Load reads a YAML config, or the key=value format for .txt and .cfg files.
// The result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".cfg":
		cfg, err = ParseLegacy(data)
	default:
		cfg, err = parseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func parseYAML(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalid, c.Width, c.Height)
	}
	fields := []struct {
		name string
		v    int
	}{
		{"predators", c.Predators},
		{"prey", c.Prey},
		{"obstacles", c.Obstacles},
		{"cell_width", c.CellWidth},
		{"cell_height", c.CellHeight},
		{"predator_offspring_interval", c.PredatorOffspringInterval},
		{"predator_hunger_limit", c.PredatorHungerLimit},
		{"prey_offspring_interval", c.PreyOffspringInterval},
		{"iterations", c.Iterations},
	}
	for _, f := range fields {
		if f.v < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %d", ErrInvalid, f.name, f.v)
		}
	}
	if total, cells := c.Predators+c.Prey+c.Obstacles, c.Width*c.Height; total > cells {
		return fmt.Errorf("%w: %d agents do not fit in %d cells", ErrInvalid, total, cells)
	}
	return c.Lotka.Validate()
}

// Validate checks the Lotka-Volterra section with the same rules the
// solver applies, so a bad section fails at load time.
func (l LotkaConfig) Validate() error {
	if l.TimeScale <= 0 {
		return fmt.Errorf("%w: lotka.time_scale must be positive, got %g", ErrInvalid, l.TimeScale)
	}
	if l.Steps < 1 {
		return fmt.Errorf("%w: lotka.steps must be at least 1, got %d", ErrInvalid, l.Steps)
	}
	rates := []struct {
		name string
		v    float64
	}{
		{"prey", l.Prey},
		{"predators", l.Predators},
		{"prey_birth_rate", l.PreyBirthRate},
		{"prey_eaten_rate", l.PreyEatenRate},
		{"predator_death_rate", l.PredatorDeathRate},
		{"predator_growth_rate", l.PredatorGrowthRate},
		{"alpha", l.Alpha},
	}
	for _, r := range rates {
		if r.v < 0 {
			return fmt.Errorf("%w: lotka.%s must be non-negative, got %g", ErrInvalid, r.name, r.v)
		}
	}
	return nil
}

// GridParams maps the config onto the engine; rows follow Height.
func (c *Config) GridParams() ecosys.Params {
	return ecosys.Params{
		Predators:                 c.Predators,
		Prey:                      c.Prey,
		Obstacles:                 c.Obstacles,
		Rows:                      c.Height,
		Cols:                      c.Width,
		PredatorOffspringInterval: c.PredatorOffspringInterval,
		PredatorHungerLimit:       c.PredatorHungerLimit,
		PreyOffspringInterval:     c.PreyOffspringInterval,
		IterationLimit:            c.Iterations,
	}
}

func (c *Config) LotkaParams() lotka.Params {
	return lotka.Params{
		TimeScale:          c.Lotka.TimeScale,
		PreyBirthRate:      c.Lotka.PreyBirthRate,
		PreyEatenRate:      c.Lotka.PreyEatenRate,
		PredatorDeathRate:  c.Lotka.PredatorDeathRate,
		PredatorGrowthRate: c.Lotka.PredatorGrowthRate,
		Alpha:              c.Lotka.Alpha,
	}
}
