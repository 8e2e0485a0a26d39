// Package chart renders population series as terminal charts.
package chart

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/predprey/internal/series"
)

// Populations plots predators (red) and prey (green) against time.
func Populations(points []series.Point, width, height int, caption string) string {
	if len(points) == 0 {
		return ""
	}

	predators := make([]float64, len(points))
	prey := make([]float64, len(points))
	for i, p := range points {
		predators[i] = p.Predators
		prey[i] = p.Prey
	}

	return asciigraph.PlotMany([][]float64{predators, prey},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
		asciigraph.Caption(caption),
	)
}

// Phase draws prey (x) against predators (y) as a scatter plot whose glyphs
// age from '.' through 'o' to '●'.
func Phase(points []series.Point, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	xMin, xMax := points[0].Prey, points[0].Prey
	yMin, yMax := points[0].Predators, points[0].Predators
	for _, p := range points {
		xMin = min(xMin, p.Prey)
		xMax = max(xMax, p.Prey)
		yMin = min(yMin, p.Predators)
		yMax = max(yMax, p.Predators)
	}
	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	n := len(points)
	for i, p := range points {
		px := int(float64(width-1) * (p.Prey - xMin) / xRange)
		py := height - 1 - int(float64(height-1)*(p.Predators-yMin)/yRange)
		switch {
		case i < n/3:
			canvas[py][px] = '.'
		case i < 2*n/3:
			canvas[py][px] = 'o'
		default:
			canvas[py][px] = '●'
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%8.1f ┌%s┐\n", yMax, strings.Repeat("─", width)))
	for i, row := range canvas {
		if i == height/2 {
			sb.WriteString(fmt.Sprintf("%8.1f │", (yMax+yMin)/2))
		} else {
			sb.WriteString("         │")
		}
		sb.WriteString(string(row))
		sb.WriteString("│\n")
	}
	sb.WriteString(fmt.Sprintf("%8.1f └%s┘\n", yMin, strings.Repeat("─", width)))

	left := fmt.Sprintf("%.1f", xMin)
	right := fmt.Sprintf("%.1f", xMax)
	gap := max(width-len(left)-len(right), 1)
	sb.WriteString("          " + left + strings.Repeat(" ", gap) + right + "\n")
	sb.WriteString("          x: prey  y: predators  (. early, o middle, ● late)")
	return sb.String()
}

// Spectrum plots a power spectrum, truncated to its lower quarter where
// population cycles live.
func Spectrum(ps []float64, width, height int, caption string) string {
	if len(ps) < 2 {
		return ""
	}
	plot := ps[:max(len(ps)/4, 2)]
	return asciigraph.Plot(plot,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
