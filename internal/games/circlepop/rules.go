package circlepop

import (
	"math"

	"github.com/vovakirdan/circlepop/internal/config"
)

// Rules holds the scoring and move economy of one variant.
type Rules struct {
	MinGroup      int
	StartingMoves int
	ExtraMoveAt   int
	BonusScale    float64
}

// RulesFor combines the board settings with a variant.
func RulesFor(board config.BoardConfig, v config.VariantConfig) Rules {
	return Rules{
		MinGroup:      board.MinGroup,
		StartingMoves: v.StartingMoves,
		ExtraMoveAt:   v.ExtraMoveAt,
		BonusScale:    v.BonusScale,
	}
}

// PopScore returns the points for popping n pieces at once.
// Larger groups earn a bonus that grows with n^1.5; halves round to even.
func (r Rules) PopScore(n int) int {
	if n <= 0 {
		return 0
	}
	bonus := 0.08 * r.BonusScale * math.Pow(float64(n), 1.5)
	return int(math.RoundToEven(bonus)) + n
}

// MoveDelta returns the change in remaining moves after popping n pieces:
// a big enough pop is free and refunds one move, anything else costs one.
func (r Rules) MoveDelta(n int) int {
	if r.ExtraMoveAt > 0 && n >= r.ExtraMoveAt {
		return 1
	}
	return -1
}
