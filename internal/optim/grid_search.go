// Package optim searches grid parameters for long-lived ecosystems.
package optim

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/san-kum/predprey/internal/ecosys"
	"github.com/san-kum/predprey/internal/experiment"
)

// Axis is one integer parameter and the values to try for it.
type Axis struct {
	Name   string
	Values []int
}

// Setters for the parameters an Axis may name.
var setters = map[string]func(p *ecosys.Params, v int){
	"predators":                   func(p *ecosys.Params, v int) { p.Predators = v },
	"prey":                        func(p *ecosys.Params, v int) { p.Prey = v },
	"obstacles":                   func(p *ecosys.Params, v int) { p.Obstacles = v },
	"predator_offspring_interval": func(p *ecosys.Params, v int) { p.PredatorOffspringInterval = v },
	"predator_hunger_limit":       func(p *ecosys.Params, v int) { p.PredatorHungerLimit = v },
	"prey_offspring_interval":     func(p *ecosys.Params, v int) { p.PreyOffspringInterval = v },
}

// AxisNames lists the parameters a search can vary.
func AxisNames() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Point is one evaluated parameter combination. Score is the mean number of
// steps both populations survived, across the seeds.
type Point struct {
	Values map[string]int
	Score  float64
	Tally  experiment.Tally
}

type GridSearch struct {
	axes      []Axis
	runs      int
	seedStart int64
	logger    *log.Logger
}

func NewGridSearch(axes []Axis, runs int, seedStart int64, logger *log.Logger) (*GridSearch, error) {
	for _, a := range axes {
		if _, ok := setters[a.Name]; !ok {
			return nil, fmt.Errorf("optim: unknown parameter %q (available: %v)", a.Name, AxisNames())
		}
		if len(a.Values) == 0 {
			return nil, fmt.Errorf("optim: parameter %q has no values", a.Name)
		}
	}
	if runs <= 0 {
		return nil, fmt.Errorf("optim: runs must be positive, got %d", runs)
	}
	return &GridSearch{axes: axes, runs: runs, seedStart: seedStart, logger: logger}, nil
}

// Search evaluates every combination on top of base and returns them best
// first. Every combination sees the same seeds. Combinations that do not fit
// the grid are skipped.
func (g *GridSearch) Search(ctx context.Context, base ecosys.Params) ([]Point, error) {
	var points []Point
	err := g.searchRecursive(ctx, 0, base, map[string]int{}, &points)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Score > points[j].Score })
	return points, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, params ecosys.Params, current map[string]int, points *[]Point) error {
	if depth == len(g.axes) {
		if err := params.Validate(); err != nil {
			g.logger.Debug("skipping combination", "values", current, "err", err)
			return nil
		}

		ens, err := experiment.NewEnsemble(params, g.runs, g.seedStart, g.logger)
		if err != nil {
			return err
		}
		runs, err := ens.Run(ctx)
		if err != nil {
			return err
		}
		tally := experiment.Summarize(runs)

		values := make(map[string]int, len(current))
		for k, v := range current {
			values[k] = v
		}
		*points = append(*points, Point{Values: values, Score: tally.MeanSteps, Tally: tally})
		return nil
	}

	axis := g.axes[depth]
	for _, v := range axis.Values {
		next := params
		setters[axis.Name](&next, v)
		current[axis.Name] = v
		if err := g.searchRecursive(ctx, depth+1, next, current, points); err != nil {
			return err
		}
	}
	delete(current, axis.Name)
	return nil
}

// Range returns the integers from lo to hi inclusive, stepping by step.
func Range(lo, hi, step int) []int {
	if step <= 0 {
		step = 1
	}
	var out []int
	for v := lo; v <= hi; v += step {
		out = append(out, v)
	}
	return out
}
