package config

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// legacyKeys lists every key of the key=value format and the field it sets.
var legacyKeys = []struct {
	key   string
	field func(*Config) *int
}{
	{"predatorNumber", func(c *Config) *int { return &c.Predators }},
	{"preyNumber", func(c *Config) *int { return &c.Prey }},
	{"obstacleNumber", func(c *Config) *int { return &c.Obstacles }},
	{"cellNumberWidth", func(c *Config) *int { return &c.Width }},
	{"cellNumberHeight", func(c *Config) *int { return &c.Height }},
	{"cellWidth", func(c *Config) *int { return &c.CellWidth }},
	{"cellHeight", func(c *Config) *int { return &c.CellHeight }},
	{"predatorOffspringTimeLimit", func(c *Config) *int { return &c.PredatorOffspringInterval }},
	{"predatorHungerLimit", func(c *Config) *int { return &c.PredatorHungerLimit }},
	{"preyOffspringTimeLimit", func(c *Config) *int { return &c.PreyOffspringInterval }},
	{"iterations", func(c *Config) *int { return &c.Iterations }},
}

// ParseLegacy reads the flat key=value format. Every key is required.
func ParseLegacy(data []byte) (*Config, error) {
	values := make(map[string]int)

	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		key, raw, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: expected key=value, got %q", ErrInvalid, line, text)
		}
		key = strings.TrimSpace(key)
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s is not an integer", ErrInvalid, line, key)
		}
		values[key] = v
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	var missing []string
	for _, k := range legacyKeys {
		v, ok := values[k.key]
		if !ok {
			missing = append(missing, k.key)
			continue
		}
		*k.field(cfg) = v
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalid, strings.Join(missing, ", "))
	}
	return cfg, nil
}
