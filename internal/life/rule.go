package life

// Neighborhood lists the eight Moore offsets as (row, col) deltas.
var Neighborhood = [8]Point{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// LiveNeighbors counts alive cells among the wrapped neighbors of (row, col).
func LiveNeighbors(g *Grid, row, col int) int {
	n := 0
	for _, d := range Neighborhood {
		n += int(g.Get(row+d.Row, col+d.Col))
	}
	return n
}

// NextState applies B3/S23 to the cell at (row, col).
func NextState(g *Grid, row, col int) Cell {
	n := LiveNeighbors(g, row, col)
	if n == 3 || (n == 2 && g.Get(row, col).IsAlive()) {
		return Alive
	}
	return Dead
}
