package viz

import (
	"strings"

	"github.com/san-kum/lifesim/internal/export"
	"github.com/san-kum/lifesim/internal/life"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of braille characters. Each character holds 2x4 dots, so
// one Life cell maps to one dot.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// CanvasFor returns a canvas just large enough to hold cols x rows dots.
func CanvasFor(cols, rows int) *Canvas {
	return NewCanvas((cols+1)/2, (rows+3)/4)
}

// Set turns on the dot at (x, y) in sub-pixel coordinates. The canvas size
// in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if row, col, mask, ok := c.locate(x, y); ok {
		c.Grid[row][col] |= mask
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, mask, ok := c.locate(x, y); ok {
		c.Grid[row][col] &^= mask
	}
}

// Flip inverts a single dot. The cursor blinks through it.
func (c *Canvas) Flip(x, y int) {
	if c.IsSet(x, y) {
		c.Unset(x, y)
	} else {
		c.Set(x, y)
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	row, col, mask, ok := c.locate(x, y)
	return ok && c.Grid[row][col]&mask != 0
}

func (c *Canvas) locate(x, y int) (row, col int, mask rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, rune(pixelMap[y%4][x%2]), true
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawCells clears the canvas and sets one dot per live cell of src.
func (c *Canvas) DrawCells(src export.CellSource) {
	c.Clear()
	for row := 0; row < src.Height(); row++ {
		for col := 0; col < src.Width(); col++ {
			if src.Get(row, col) == life.Alive {
				c.Set(col, row)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}
