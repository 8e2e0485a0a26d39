// Package analysis characterizes population cycles.
//
// The package includes tools for reading oscillations out of a population
// series:
//
//   - [PowerSpectrum]: Hann-windowed magnitude spectrum of one population
//   - [DominantCycle]: strongest non-constant cycle and its period in samples
//   - [Lag]: shift at which predators best follow prey
//   - [Analyze]: all of the above for a stored run
//
// # Cycles
//
// Predator peaks trail prey peaks in a sustained ecosystem:
//
//	r := analysis.Analyze(points)
//	if r.PreyCycle.Found && r.Lag > 0 {
//	    // predators follow prey by r.Lag samples
//	}
package analysis
