package board

import (
	"errors"
	"fmt"
)

// Errors returned by board construction and move evaluation.
// Every rejection leaves the grid exactly as it was.
var (
	ErrInvalidDimensions = errors.New("board: invalid dimensions")
	ErrInvalidColorCount = errors.New("board: invalid color count")
	ErrInvalidColor      = errors.New("board: invalid color")
	ErrOutOfBounds       = errors.New("board: out of bounds")
	ErrInsufficientMatch = errors.New("board: insufficient match")
	ErrBoardBusy         = errors.New("board: busy")
	ErrBoardCleared      = errors.New("board: cleared")
	ErrNilGenerator      = errors.New("board: nil color generator")

	// ErrInvalidOrigin is reported by the region finder. It matches ErrOutOfBounds.
	ErrInvalidOrigin = fmt.Errorf("%w: invalid origin", ErrOutOfBounds)
)

// ReasonOf maps an error to a stable label suitable for metrics and HUD text.
// A nil error maps to "ok".
func ReasonOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidDimensions):
		return "invalid_dimensions"
	case errors.Is(err, ErrInvalidColorCount):
		return "invalid_color_count"
	case errors.Is(err, ErrInvalidColor):
		return "invalid_color"
	case errors.Is(err, ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, ErrInsufficientMatch):
		return "insufficient_match"
	case errors.Is(err, ErrBoardBusy):
		return "board_busy"
	case errors.Is(err, ErrBoardCleared):
		return "board_cleared"
	case errors.Is(err, ErrNilGenerator):
		return "nil_generator"
	default:
		return "unknown"
	}
}
