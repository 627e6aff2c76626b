// Package life provides the simulation core for Conway's Game of Life.
//
// The package defines the toroidal grid and the transition rule:
//
//   - [Grid]: fixed-size dense grid of [Cell] values with wrap-around reads
//   - [NextState]: birth on 3, survival on 2 or 3, death otherwise
//   - [Step]: advances a whole grid one generation into a fresh buffer
//
// # Example
//
//	g, _ := life.Parse(
//		".....",
//		"..O..",
//		"..O..",
//		"..O..",
//		".....",
//	)
//	next := life.Step(g) // horizontal blinker
//
// # Thread Safety
//
// Grid instances are NOT thread-safe. [Step] only reads its input, so a
// grid may be stepped by one goroutine while others read it, but writes
// (Set, Clear, Randomize) need a single owner. The session package wraps a
// grid with the required lock.
package life
