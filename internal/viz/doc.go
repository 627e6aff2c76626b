// Package viz is the terminal front end for a Life session.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Menu]: preset picker that hands over to a [Model]
//   - [Model]: drives a session.Session from tea.Tick and renders it
//   - [Canvas]: braille canvas, one Life cell per dot
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space  - Play/pause
//	N      - Single step
//	C      - Clear
//	R      - Randomize
//	O      - Rotate every pattern clockwise
//	Tab    - Select next pattern
//	Arrows - Move cursor (also hjkl)
//	Enter  - Bring the cell under the cursor to life
//	X      - Toggle the cell under the cursor
//	P      - Place the selected pattern at the cursor
//	T      - Cycle color themes
//	?      - Show help overlay
//
// Left mouse press or drag sketches live cells; right click places the
// selected pattern with its top-left corner under the pointer.
package viz
