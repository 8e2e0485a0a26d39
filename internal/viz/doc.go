// Package viz provides the terminal views of the ecosystem.
//
// The package implements two Bubble Tea programs:
//
//   - [Model]: the live grid with population counters, sparklines and an
//     optional N(t) or phase-portrait pane
//   - [App]: a preset picker and parameter editor that starts a [Model]
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Restart with a freshly scattered grid
//	+/-   - Double/halve ticks per frame
//	P     - Toggle the population plot
//	F     - Toggle the phase portrait
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
