// Package place stamps patterns and pointer edits onto a life grid.
package place

import (
	"math"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/pattern"
)

// Merge writes every cell of p onto g with its top-left corner at
// (originRow, originCol). Coordinates wrap, so any origin is valid. Dead
// pattern cells overwrite live grid cells.
func Merge(g *life.Grid, p *pattern.Pattern, originRow, originCol int) {
	for i := 0; i < p.Height(); i++ {
		for j := 0; j < p.Width(); j++ {
			g.SetWrapped(originRow+i, originCol+j, p.Get(i, j))
		}
	}
}

// Edit sets a single cell without wrapping.
func Edit(g *life.Grid, row, col int, c life.Cell) error {
	return g.Set(row, col, c)
}

// Sketch brings the cell under the pointer to life. It never kills.
func Sketch(g *life.Grid, row, col int) error {
	return g.Set(row, col, life.Alive)
}

// Toggle flips the cell at (row, col).
func Toggle(g *life.Grid, row, col int) error {
	if !g.InBounds(row, col) {
		return g.Set(row, col, life.Dead)
	}
	return g.Set(row, col, 1-g.Get(row, col))
}

// CellAt maps a pixel offset on the drawing surface to the cell beneath it.
// A cellSize below 1 is treated as 1.
func CellAt(x, y float64, cellSize int) (row, col int) {
	s := float64(max(cellSize, 1))
	return int(math.Floor(y / s)), int(math.Floor(x / s))
}

// DropOrigin maps the pixel offset of a dropped pattern's top-left corner to
// a grid origin. Offsets left of or above the surface wrap to the far side.
func DropOrigin(g *life.Grid, dx, dy float64, cellSize int) (row, col int) {
	row, col = CellAt(dx, dy, cellSize)
	return g.Wrap(row, col)
}
