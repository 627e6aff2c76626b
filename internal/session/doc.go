// Package session owns a running Life simulation.
//
// A [Session] holds the grid, the pattern catalog and the play/pause state
// machine that front ends drive:
//
//	Play       Stopped -> Running   (ticks start advancing generations)
//	Pause      Running -> Stopped
//	SingleStep any     -> Stopped   (exactly one generation)
//	Clear      any     -> Stopped   (all cells dead, generation 0)
//	Randomize  any     -> Stopped   (random fill, generation 0)
//
// [Session.Run] drives ticks from a time.Ticker until its context is
// cancelled. Every operation holds the session lock for its full duration,
// so a step is never interleaved with an edit and ticks never overlap.
// Observers are called after the lock is released with a private copy of
// the grid.
package session
