package life

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Step advances g one generation. The result is written into a new grid so
// that every cell is computed from the same prior generation; g is left
// untouched and the caller decides when to discard it.
func Step(g *Grid) *Grid {
	next := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	stepRows(g, next, 0, g.height)
	return next
}

func stepRows(cur, next *Grid, start, end int) {
	w := cur.width
	for row := start; row < end; row++ {
		for col := 0; col < w; col++ {
			next.cells[row*w+col] = NextState(cur, row, col)
		}
	}
}

// StepParallel computes the same generation as Step with rows partitioned
// across workers. Each worker reads only from g and writes a disjoint row
// range of the result. workers <= 0 uses GOMAXPROCS.
func StepParallel(g *Grid, workers int) *Grid {
	next := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	ParallelRows(g.height, workers, func(start, end int) {
		stepRows(g, next, start, end)
	})
	return next
}

// ParallelRows splits [0, n) into at most workers contiguous chunks and
// runs fn on each chunk concurrently, returning once all chunks are done.
func ParallelRows(n, workers int, fn func(start, end int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var eg errgroup.Group
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		eg.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = eg.Wait()
}
