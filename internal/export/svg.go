package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/predprey/internal/ecosys"
	"github.com/san-kum/predprey/internal/series"
)

// GridSVG draws the grid as filled rectangles of cellW by cellH pixels in
// the ecosystem palette.
func GridSVG(g *ecosys.Grid, cellW, cellH int) string {
	if g == nil || cellW <= 0 || cellH <= 0 {
		return ""
	}

	width := g.Cols() * cellW
	height := g.Rows() * cellH

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, ecosys.ColorEmpty))

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			c := g.Cell(row, col)
			if c.Kind() == ecosys.Empty {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>
`, col*cellW, row*cellH, cellW, cellH, c.Color()))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// PhaseSVG plots prey against predators as a single polyline.
func PhaseSVG(points []series.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].Prey, points[0].Prey
	minY, maxY := points[0].Predators, points[0].Predators
	for _, p := range points {
		minX = min(minX, p.Prey)
		maxX = max(maxX, p.Prey)
		minY = min(minY, p.Predators)
		maxY = max(maxY, p.Predators)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.Prey - minX) / rangeX * float64(width)
		y := float64(height) - (p.Predators-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
