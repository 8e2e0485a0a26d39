package config

import "sort"

var Presets = map[string]*Config{
	"classic": {
		Predators: 50, Prey: 200, Obstacles: 40,
		Width: 40, Height: 30, CellWidth: 10, CellHeight: 10,
		PredatorOffspringInterval: 12, PredatorHungerLimit: 8, PreyOffspringInterval: 5,
		Iterations: 1000,
	},
	"small": {
		Predators: 8, Prey: 30, Obstacles: 6,
		Width: 16, Height: 12, CellWidth: 16, CellHeight: 16,
		PredatorOffspringInterval: 10, PredatorHungerLimit: 7, PreyOffspringInterval: 4,
		Iterations: 300,
	},
	"crowded": {
		Predators: 300, Prey: 1500, Obstacles: 100,
		Width: 80, Height: 40, CellWidth: 6, CellHeight: 6,
		PredatorOffspringInterval: 14, PredatorHungerLimit: 6, PreyOffspringInterval: 6,
		Iterations: 2000,
	},
	"fortress": {
		Predators: 40, Prey: 150, Obstacles: 500,
		Width: 40, Height: 30, CellWidth: 10, CellHeight: 10,
		PredatorOffspringInterval: 12, PredatorHungerLimit: 10, PreyOffspringInterval: 5,
		Iterations: 1500,
	},
}

// GetPreset returns a copy of the named preset with default Lotka-Volterra
// settings, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Lotka = DefaultConfig().Lotka
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
