package game

import "errors"

var (
	// ErrInvalidConfiguration rejects board parameters before any
	// mutation takes place (dimensions too small, mine count out of
	// range). A failed attempt never leaves a partially built board.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrOutOfBounds marks a selection outside the board. The input
	// layer filters these; the engine treats one as a no-op.
	ErrOutOfBounds = errors.New("selection out of bounds")
)
