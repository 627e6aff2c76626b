package life

import (
	"errors"
	"testing"
)

func TestNew_InvalidDimension(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 5},
		{"zero height", 5, 0},
		{"negative width", -1, 5},
		{"negative height", 5, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.w, tt.h)
			if !errors.Is(err, ErrInvalidDimension) {
				t.Fatalf("expected ErrInvalidDimension, got %v", err)
			}
			if g != nil {
				t.Error("expected nil grid on error")
			}
		})
	}
}

func TestNew_AllDead(t *testing.T) {
	g, err := New(7, 4)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if g.Width() != 7 || g.Height() != 4 {
		t.Errorf("expected 7x4, got %dx%d", g.Width(), g.Height())
	}
	if g.Population() != 0 {
		t.Errorf("expected empty grid, got population %d", g.Population())
	}
}

func TestGet_ToroidalWrap(t *testing.T) {
	g, err := New(5, 3)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	g.Randomize(NewRand(7))

	h, w := g.Height(), g.Width()
	for row := -2 * h; row < 2*h; row++ {
		for col := -2 * w; col < 2*w; col++ {
			v := g.Get(row, col)
			if g.Get(row+h, col) != v {
				t.Fatalf("get(%d,%d) != get(%d,%d)", row, col, row+h, col)
			}
			if g.Get(row, col+w) != v {
				t.Fatalf("get(%d,%d) != get(%d,%d)", row, col, row, col+w)
			}
		}
	}

	if err := g.Set(0, 0, Alive); err != nil {
		t.Fatal(err)
	}
	if g.Get(-3, -5) != Alive || g.Get(3, 5) != Alive {
		t.Error("negative and overflow coordinates should wrap onto (0,0)")
	}
}

func TestSet_OutOfBounds(t *testing.T) {
	g, _ := New(3, 3)

	tests := []struct {
		row, col int
	}{
		{-1, 0},
		{0, -1},
		{3, 0},
		{0, 3},
	}

	for _, tt := range tests {
		err := g.Set(tt.row, tt.col, Alive)
		if !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("set(%d,%d): expected ErrOutOfBounds, got %v", tt.row, tt.col, err)
		}
		var be *BoundsError
		if !errors.As(err, &be) || be.Row != tt.row || be.Col != tt.col {
			t.Errorf("set(%d,%d): expected BoundsError with coordinate, got %v", tt.row, tt.col, err)
		}
	}
	if g.Population() != 0 {
		t.Error("failed set must not write")
	}
}

func TestClear(t *testing.T) {
	g, _ := New(6, 6)
	g.Randomize(NewRand(1))
	g.Clear()

	visited := 0
	g.ForEachCell(func(row, col int) {
		visited++
		if g.Get(row, col) != Dead {
			t.Fatalf("cell (%d,%d) alive after clear", row, col)
		}
	})
	if visited != 36 {
		t.Errorf("expected 36 visits, got %d", visited)
	}
}

func TestRandomize_Seeded(t *testing.T) {
	a, _ := New(20, 20)
	b, _ := New(20, 20)
	a.Randomize(NewRand(42))
	b.Randomize(NewRand(42))

	if !a.Equal(b) {
		t.Error("same seed should produce identical grids")
	}

	pop := a.Population()
	if pop == 0 || pop == 400 {
		t.Errorf("population %d looks degenerate for a 50%% fill", pop)
	}

	c, _ := New(20, 20)
	c.Randomize(NewRand(43))
	if a.Equal(c) {
		t.Error("different seeds should differ")
	}
}

func TestForEachCell_RowMajorRestartable(t *testing.T) {
	g, _ := New(3, 2)

	var order []Point
	g.ForEachCell(func(row, col int) { order = append(order, Point{row, col}) })

	want := []Point{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	if len(order) != len(want) {
		t.Fatalf("expected %d visits, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("visit %d: got %v, want %v", i, order[i], want[i])
		}
	}

	n := 0
	for p, c := range g.All() {
		if p != want[n] || c != Dead {
			t.Errorf("iterator visit %d: got %v/%d", n, p, c)
		}
		n++
	}
	for range g.All() {
		n++
	}
	if n != 12 {
		t.Errorf("iterator should restart, got %d total visits", n)
	}
}

func TestForEachCell_MayWrite(t *testing.T) {
	g, _ := New(4, 4)
	g.ForEachCell(func(row, col int) {
		if row == col {
			_ = g.Set(row, col, Alive)
		}
	})
	if g.Population() != 4 {
		t.Errorf("expected diagonal of 4, got %d", g.Population())
	}
}

func TestParse(t *testing.T) {
	g, err := Parse(
		".O.",
		"..O",
		"OOO",
	)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if g.Population() != 5 {
		t.Errorf("expected glider population 5, got %d", g.Population())
	}
	if got := g.String(); got != ".O.\n..O\nOOO\n" {
		t.Errorf("unexpected render:\n%s", got)
	}

	if _, err := Parse("...", ".."); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("ragged rows: expected ErrInvalidDimension, got %v", err)
	}
	if _, err := Parse(); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("no rows: expected ErrInvalidDimension, got %v", err)
	}
}

func TestClone_Independent(t *testing.T) {
	g, _ := Parse("O.", ".O")
	c := g.Clone()
	_ = c.Set(0, 1, Alive)

	if g.Get(0, 1) != Dead {
		t.Error("clone must not share storage")
	}
	if g.Equal(c) {
		t.Error("grids should differ after clone write")
	}
}
