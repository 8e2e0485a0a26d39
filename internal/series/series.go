// Package series records population time series for charting, storage and
// export.
package series

import (
	"math"

	"github.com/san-kum/predprey/internal/ecosys"
)

// Point is one population sample. T is the step index for grid runs and the
// time index for Lotka-Volterra runs.
type Point struct {
	T         float64 `json:"t"`
	Predators float64 `json:"predators"`
	Prey      float64 `json:"prey"`
}

func FromSample(s ecosys.Sample) Point {
	return Point{T: float64(s.Step), Predators: float64(s.Predators), Prey: float64(s.Prey)}
}

// History is an append-only population series.
type History struct {
	points []Point
}

func NewHistory() *History {
	return &History{points: make([]Point, 0, 256)}
}

// OnTick appends a grid sample.
func (h *History) OnTick(s ecosys.Sample) { h.Append(FromSample(s)) }

func (h *History) Append(p Point) { h.points = append(h.points, p) }

func (h *History) Reset() { h.points = h.points[:0] }

func (h *History) Len() int { return len(h.points) }

// Points returns the recorded series. Callers must not modify it.
func (h *History) Points() []Point { return h.points }

func (h *History) Times() []float64     { return column(h.points, func(p Point) float64 { return p.T }) }
func (h *History) Predators() []float64 { return column(h.points, func(p Point) float64 { return p.Predators }) }
func (h *History) Prey() []float64      { return column(h.points, func(p Point) float64 { return p.Prey }) }

func column(points []Point, get func(Point) float64) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = get(p)
	}
	return out
}

// Stats summarizes one population.
type Stats struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Final float64 `json:"final"`
}

type Summary struct {
	Samples   int   `json:"samples"`
	Predators Stats `json:"predators"`
	Prey      Stats `json:"prey"`
}

func Summarize(points []Point) Summary {
	return Summary{
		Samples:   len(points),
		Predators: stats(column(points, func(p Point) float64 { return p.Predators })),
		Prey:      stats(column(points, func(p Point) float64 { return p.Prey })),
	}
}

func stats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	s := Stats{Min: math.Inf(1), Max: math.Inf(-1), Final: values[len(values)-1]}
	sum := 0.0
	for _, v := range values {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		sum += v
	}
	s.Mean = sum / float64(len(values))
	return s
}
