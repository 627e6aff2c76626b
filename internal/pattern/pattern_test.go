package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/lifesim/internal/life"
)

func mustParse(t *testing.T, rows ...string) *Pattern {
	t.Helper()
	p, err := Parse(rows...)
	require.NoError(t, err)
	return p
}

func TestNew_InvalidDimension(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-2, 3}} {
		_, err := New(dims[0], dims[1])
		require.ErrorIs(t, err, ErrInvalidDimension)
		require.ErrorIs(t, err, life.ErrInvalidDimension)
	}

	_, err := Parse()
	require.ErrorIs(t, err, ErrInvalidDimension)

	_, err = Parse("OO", "O")
	require.ErrorIs(t, err, ErrInvalidDimension)

	_, err = FromRows([][]life.Cell{{}})
	require.ErrorIs(t, err, ErrInvalidDimension)
}

func TestRotate_Clockwise(t *testing.T) {
	p := mustParse(t,
		"OO.",
		"..O",
	)
	r := p.Rotate()

	require.Equal(t, 2, r.Width())
	require.Equal(t, 3, r.Height())
	// top row becomes the right-hand column, read top to bottom
	assert.Equal(t, ".O\n.O\nO.\n", r.String())

	for row := 0; row < p.Height(); row++ {
		for col := 0; col < p.Width(); col++ {
			assert.Equal(t, p.Get(row, col), r.Get(col, p.Height()-row-1), "cell (%d,%d)", row, col)
		}
	}
}

func TestRotate_DoesNotMutate(t *testing.T) {
	p := mustParse(t, "O..", "OOO")
	before := p.String()
	_ = p.Rotate()
	assert.Equal(t, before, p.String())
}

func TestRotate_FourTimesIsIdentity(t *testing.T) {
	cases := [][]string{
		{"O"},
		{"OOO"},
		{".O.", "..O", "OOO"},
		{"OO..", "O...", "...O", "..OO", "O.O."},
	}
	for _, rows := range cases {
		p := mustParse(t, rows...)
		r := p.Rotate().Rotate().Rotate().Rotate()
		assert.True(t, p.Equal(r), "four rotations of\n%s\ngave\n%s", p, r)
	}
}

func TestSquare(t *testing.T) {
	p := mustParse(t, "OOO")
	sq := p.Square()

	require.Equal(t, 3, sq.Width())
	require.Equal(t, 3, sq.Height())
	assert.Equal(t, "...\nOOO\n...\n", sq.String())
	assert.Equal(t, p.Population(), sq.Population())

	tall := mustParse(t, "O", "O", "O", "O")
	sq = tall.Square()
	require.Equal(t, 4, sq.Width())
	assert.Equal(t, ".O..\n.O..\n.O..\n.O..\n", sq.String())

	same := mustParse(t, "O.", ".O")
	assert.Same(t, same, same.Square())
}

func TestGet_OutsideIsDead(t *testing.T) {
	p := mustParse(t, "OO", "OO")
	assert.Equal(t, life.Dead, p.Get(-1, 0))
	assert.Equal(t, life.Dead, p.Get(0, 2))
	assert.Equal(t, life.Alive, p.Get(1, 1))
}
