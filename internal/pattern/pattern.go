package pattern

import (
	"fmt"
	"strings"

	"github.com/san-kum/lifesim/internal/life"
)

// ErrInvalidDimension is returned for empty, non-positive or ragged input.
var ErrInvalidDimension = life.ErrInvalidDimension

// Pattern is an immutable rectangular template of cells. It is never
// stepped; it is rotated and stamped onto grids.
type Pattern struct {
	width, height int
	cells         []life.Cell
}

// New returns an all-dead pattern.
func New(width, height int) (*Pattern, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pattern %dx%d: %w", width, height, ErrInvalidDimension)
	}
	return &Pattern{width: width, height: height, cells: make([]life.Cell, width*height)}, nil
}

// FromRows copies rows into a new pattern.
func FromRows(rows [][]life.Cell) (*Pattern, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("pattern: no rows: %w", ErrInvalidDimension)
	}
	p, err := New(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != p.width {
			return nil, fmt.Errorf("pattern: row %d has %d cells, want %d: %w", r, len(row), p.width, ErrInvalidDimension)
		}
		copy(p.cells[r*p.width:], row)
	}
	return p, nil
}

// Parse builds a pattern from text rows using life.ParseCell.
func Parse(rows ...string) (*Pattern, error) {
	cells := make([][]life.Cell, len(rows))
	for r, line := range rows {
		for _, ch := range line {
			cells[r] = append(cells[r], life.ParseCell(ch))
		}
	}
	return FromRows(cells)
}

func (p *Pattern) Width() int  { return p.width }
func (p *Pattern) Height() int { return p.height }

// Get returns the cell at (row, col), or Dead outside the pattern.
func (p *Pattern) Get(row, col int) life.Cell {
	if row < 0 || row >= p.height || col < 0 || col >= p.width {
		return life.Dead
	}
	return p.cells[row*p.width+col]
}

// Population counts alive cells.
func (p *Pattern) Population() int {
	n := 0
	for _, c := range p.cells {
		n += int(c)
	}
	return n
}

// Rotate returns the pattern turned 90 degrees clockwise. The cell at
// (row, col) moves to (col, height-row-1); width and height swap.
func (p *Pattern) Rotate() *Pattern {
	h, w := p.height, p.width
	out := &Pattern{width: h, height: w, cells: make([]life.Cell, len(p.cells))}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			out.cells[col*out.width+(h-row-1)] = p.cells[row*w+col]
		}
	}
	return out
}

// Square pads the pattern with dead cells until it is square. Padding is
// split between both sides of the short axis with the extra line on the
// far side, so the pattern stays centred under rotation.
func (p *Pattern) Square() *Pattern {
	if p.width == p.height {
		return p
	}
	d := max(p.width, p.height)
	top := (d - p.height) / 2
	left := (d - p.width) / 2

	out := &Pattern{width: d, height: d, cells: make([]life.Cell, d*d)}
	for row := 0; row < p.height; row++ {
		copy(out.cells[(row+top)*d+left:], p.cells[row*p.width:(row+1)*p.width])
	}
	return out
}

// Equal reports whether both patterns have the same size and cells.
func (p *Pattern) Equal(other *Pattern) bool {
	if other == nil || p.width != other.width || p.height != other.height {
		return false
	}
	for i := range p.cells {
		if p.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (p *Pattern) String() string {
	var b strings.Builder
	for row := 0; row < p.height; row++ {
		for col := 0; col < p.width; col++ {
			if p.cells[row*p.width+col].IsAlive() {
				b.WriteByte('O')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
