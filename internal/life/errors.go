package life

import (
	"errors"
	"fmt"
)

// Domain errors for grid operations.
var (
	// ErrInvalidDimension indicates a grid or pattern with a non-positive size.
	ErrInvalidDimension = errors.New("life: invalid dimension (width and height must be positive)")

	// ErrOutOfBounds indicates a direct coordinate access outside the grid.
	ErrOutOfBounds = errors.New("life: coordinate out of bounds")
)

// BoundsError wraps ErrOutOfBounds with the offending coordinate.
type BoundsError struct {
	Row, Col      int
	Height, Width int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("life: cell (%d,%d) outside %dx%d grid", e.Row, e.Col, e.Height, e.Width)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
