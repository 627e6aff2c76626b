package life

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"strings"
)

// Cell is the binary state of a single grid position.
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

// IsAlive reports whether the cell is alive.
func (c Cell) IsAlive() bool { return c == Alive }

// Point addresses a cell by row and column.
type Point struct {
	Row, Col int
}

// Grid stores a height x width toroidal grid of cells in row-major order.
type Grid struct {
	width, height int
	cells         []Cell
}

// New allocates a grid with every cell dead.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", width, height, ErrInvalidDimension)
	}
	return &Grid{width: width, height: height, cells: make([]Cell, width*height)}, nil
}

// Parse builds a grid from text rows. 'O', 'o', '#', '*' and '1' are alive,
// any other rune is dead. All rows must have the same length.
func Parse(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse: no rows: %w", ErrInvalidDimension)
	}
	w := len([]rune(rows[0]))
	g, err := New(w, len(rows))
	if err != nil {
		return nil, err
	}
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != w {
			return nil, fmt.Errorf("parse: row %d has %d cells, want %d: %w", r, len(runes), w, ErrInvalidDimension)
		}
		for c, ch := range runes {
			g.cells[r*w+c] = ParseCell(ch)
		}
	}
	return g, nil
}

// ParseCell maps a text rune to a cell state.
func ParseCell(ch rune) Cell {
	switch ch {
	case 'O', 'o', '#', '*', '1':
		return Alive
	}
	return Dead
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Wrap maps any integer coordinate onto the torus.
func (g *Grid) Wrap(row, col int) (int, int) {
	return wrap(row, g.height), wrap(col, g.width)
}

func wrap(v, n int) int {
	return (v%n + n) % n
}

// Get returns the state at the wrapped coordinate. It never fails.
func (g *Grid) Get(row, col int) Cell {
	row, col = g.Wrap(row, col)
	return g.cells[row*g.width+col]
}

// InBounds reports whether (row, col) addresses a cell without wrapping.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// Set writes a state at an unwrapped coordinate.
func (g *Grid) Set(row, col int, c Cell) error {
	if !g.InBounds(row, col) {
		return &BoundsError{Row: row, Col: col, Height: g.height, Width: g.width}
	}
	g.cells[row*g.width+col] = c
	return nil
}

// SetWrapped writes a state at the wrapped coordinate.
func (g *Grid) SetWrapped(row, col int, c Cell) {
	row, col = g.Wrap(row, col)
	g.cells[row*g.width+col] = c
}

// Clear kills every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Dead
	}
}

// Randomize sets every cell alive or dead with equal probability. A nil
// source falls back to the process-wide generator.
func (g *Grid) Randomize(r *rand.Rand) {
	for i := range g.cells {
		var n int
		if r == nil {
			n = rand.IntN(2)
		} else {
			n = r.IntN(2)
		}
		g.cells[i] = Cell(n)
	}
}

// NewRand returns a deterministic source for Randomize.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// ForEachCell calls fn for every coordinate in row-major order.
func (g *Grid) ForEachCell(fn func(row, col int)) {
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			fn(row, col)
		}
	}
}

// All yields every coordinate with its current state in row-major order.
// The state is read when the pair is yielded, so writes made by the loop
// body to later cells are observed.
func (g *Grid) All() iter.Seq2[Point, Cell] {
	return func(yield func(Point, Cell) bool) {
		for row := 0; row < g.height; row++ {
			for col := 0; col < g.width; col++ {
				if !yield(Point{Row: row, Col: col}, g.cells[row*g.width+col]) {
					return
				}
			}
		}
	}
}

// Population counts alive cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		n += int(c)
	}
	return n
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both grids have the same dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Cells exposes the backing slice in row-major order. Callers must not
// retain it across a Step.
func (g *Grid) Cells() []Cell { return g.cells }

func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			if g.cells[row*g.width+col].IsAlive() {
				b.WriteByte('O')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
