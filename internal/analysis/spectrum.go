package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"github.com/san-kum/predprey/internal/series"
)

// minSamples is the shortest series worth transforming.
const minSamples = 8

// PowerSpectrum returns the magnitudes of the first len(values)/2 frequency
// bins after removing the mean and applying a Hann window.
func PowerSpectrum(values []float64) []float64 {
	n := len(values)
	if n < minSamples {
		return nil
	}

	x := make([]float64, n)
	m := mean(values)
	for i, v := range values {
		x[i] = v - m
	}
	window.Apply(x, window.Hann)

	coeffs := fft.FFTReal(x)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

type Cycle struct {
	Found bool `json:"found"`
	// Period is in samples.
	Period float64 `json:"period"`
	Power  float64 `json:"power"`
}

// DominantCycle picks the strongest bin above zero frequency.
func DominantCycle(values []float64) Cycle {
	ps := PowerSpectrum(values)
	if len(ps) < 2 {
		return Cycle{}
	}

	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	if ps[best] == 0 {
		return Cycle{}
	}
	return Cycle{Found: true, Period: float64(len(values)) / float64(best), Power: ps[best]}
}

// Lag returns the shift l in [0, maxLag] maximizing the correlation of
// prey[i] with predators[i+l], and that correlation.
func Lag(prey, predators []float64, maxLag int) (int, float64) {
	n := min(len(prey), len(predators))
	bestLag, bestCorr := 0, math.Inf(-1)
	for l := 0; l <= maxLag && n-l >= 2; l++ {
		c := correlation(prey[:n-l], predators[l:n])
		if c > bestCorr {
			bestLag, bestCorr = l, c
		}
	}
	if math.IsInf(bestCorr, -1) {
		return 0, 0
	}
	return bestLag, bestCorr
}

type Report struct {
	Samples        int     `json:"samples"`
	PredatorCycle  Cycle   `json:"predator_cycle"`
	PreyCycle      Cycle   `json:"prey_cycle"`
	Lag            int     `json:"lag"`
	LagCorrelation float64 `json:"lag_correlation"`
}

// Analyze reports both cycles and the predator lag, searching lags up to one
// prey period (or a quarter of the series without a prey cycle).
func Analyze(points []series.Point) Report {
	prey := make([]float64, len(points))
	predators := make([]float64, len(points))
	for i, p := range points {
		prey[i] = p.Prey
		predators[i] = p.Predators
	}

	r := Report{
		Samples:       len(points),
		PredatorCycle: DominantCycle(predators),
		PreyCycle:     DominantCycle(prey),
	}

	maxLag := len(points) / 4
	if r.PreyCycle.Found {
		maxLag = min(int(r.PreyCycle.Period), len(points)/2)
	}
	r.Lag, r.LagCorrelation = Lag(prey, predators, maxLag)
	return r
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// correlation is the Pearson coefficient; constant inputs give 0.
func correlation(a, b []float64) float64 {
	ma, mb := mean(a), mean(b)
	var cov, va, vb float64
	for i := range a {
		da, db := a[i]-ma, b[i]-mb
		cov += da * db
		va += da * da
		vb += db * db
	}
	if va == 0 || vb == 0 {
		return 0
	}
	return cov / math.Sqrt(va*vb)
}
