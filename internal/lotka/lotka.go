// Package lotka integrates the continuous Lotka-Volterra populations with an
// explicit Euler loop, clamping both populations at zero.
package lotka

import (
	"context"
	"fmt"

	"github.com/san-kum/predprey/internal/series"
)

// extinction is the population below which a run stops.
const extinction = 1.0

type Params struct {
	TimeScale          float64
	PreyBirthRate      float64
	PreyEatenRate      float64
	PredatorDeathRate  float64
	PredatorGrowthRate float64
	// Alpha is the intra-species competition term shared by both populations.
	Alpha float64
}

func DefaultParams() Params {
	return Params{
		TimeScale:          0.001,
		PreyBirthRate:      50,
		PreyEatenRate:      0.1,
		PredatorDeathRate:  20,
		PredatorGrowthRate: 0.05,
		Alpha:              0.01,
	}
}

// Step advances both populations by one time step. Prey update first; the
// predator update already sees the new prey value.
func (p Params) Step(prey, predators float64) (float64, float64) {
	nextPrey := prey + p.TimeScale*(p.PreyBirthRate-p.PreyEatenRate*predators-p.Alpha*prey)*prey
	if nextPrey <= 0 {
		nextPrey = 0
	}
	nextPredators := predators + p.TimeScale*(p.PredatorGrowthRate*nextPrey-p.PredatorDeathRate-p.Alpha*predators)*predators
	if nextPredators <= 0 {
		nextPredators = 0
	}
	return nextPrey, nextPredators
}

// Solve returns at most steps points starting at t=0. It stops early after
// recording the first point where either population drops below one.
func Solve(ctx context.Context, p Params, prey, predators float64, steps int) ([]series.Point, error) {
	if err := validate(p, prey, predators, steps); err != nil {
		return nil, err
	}

	points := make([]series.Point, 0, steps)
	points = append(points, series.Point{T: 0, Predators: predators, Prey: prey})

	for t := 1; t < steps; t++ {
		select {
		case <-ctx.Done():
			return points, ctx.Err()
		default:
		}

		prey, predators = p.Step(prey, predators)
		points = append(points, series.Point{T: float64(t), Predators: predators, Prey: prey})

		if prey < extinction || predators < extinction {
			break
		}
	}
	return points, nil
}

func validate(p Params, prey, predators float64, steps int) error {
	if p.TimeScale <= 0 {
		return fmt.Errorf("lotka: time scale must be positive, got %f", p.TimeScale)
	}
	if prey < 0 || predators < 0 {
		return fmt.Errorf("lotka: populations must be non-negative, got prey=%f predators=%f", prey, predators)
	}
	if steps < 1 {
		return fmt.Errorf("lotka: steps must be at least 1, got %d", steps)
	}
	return nil
}
