package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/pattern"
)

const background = "#0a0a0a"

// CellSource is anything with a fixed cell layout, such as a grid or a pattern.
type CellSource interface {
	Width() int
	Height() int
	Get(row, col int) life.Cell
}

// GridSVG draws every live cell of a generation as a cellSize square.
func GridSVG(g *life.Grid, cellSize int, fill string) string {
	if g == nil {
		return ""
	}
	return CellsSVG(g, cellSize, fill)
}

// PatternSVG draws a pattern in its current orientation.
func PatternSVG(p *pattern.Pattern, cellSize int, fill string) string {
	if p == nil {
		return ""
	}
	return CellsSVG(p, cellSize, fill)
}

func CellsSVG(src CellSource, cellSize int, fill string) string {
	if cellSize <= 0 {
		cellSize = 1
	}
	if fill == "" {
		fill = "#00ff00"
	}
	width := src.Width() * cellSize
	height := src.Height() * cellSize

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, background, fill)

	for row := 0; row < src.Height(); row++ {
		for col := 0; col < src.Width(); col++ {
			if !src.Get(row, col).IsAlive() {
				continue
			}
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d"/>
`, col*cellSize, row*cellSize, cellSize, cellSize)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PopulationSVG plots a population series as a polyline.
func PopulationSVG(population []int, width, height int, strokeColor string) string {
	if len(population) < 2 {
		return ""
	}

	maxPop := population[0]
	for _, p := range population {
		maxPop = max(maxPop, p)
	}
	if maxPop == 0 {
		maxPop = 1
	}
	top := float64(maxPop) * 1.1
	span := float64(len(population) - 1)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	for i, p := range population {
		x := float64(i) / span * float64(width)
		y := float64(height) - float64(p)/top*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
