package board

import (
	"fmt"
	"sort"
)

// Fall describes a surviving cell that moved down during a collapse.
type Fall struct {
	X     int
	FromY int
	ToY   int
	Color int
}

// MoveResult reports the outcome of an accepted move.
type MoveResult struct {
	// Popped is the number of cells removed.
	Popped int
	// Color is the color of the removed region.
	Color int
	// Removed holds the removed positions in pre-collapse coordinates,
	// ordered by column then row.
	Removed []Pos
	// Refill maps each affected column to its new colors, bottom-most first.
	Refill map[int][]int
	// Falls lists surviving cells that changed row, ordered by column then row.
	Falls []Fall
}

// Columns returns the affected columns in ascending order.
func (r MoveResult) Columns() []int {
	cols := make([]int, 0, len(r.Refill))
	for x := range r.Refill {
		cols = append(cols, x)
	}
	sort.Ints(cols)
	return cols
}

// IsNew reports whether the final cell at (x, y) was generated by the refill.
func (r MoveResult) IsNew(x, y, height int) bool {
	k := len(r.Refill[x])
	return k > 0 && y >= height-k && y < height
}

// Collapse removes region from g, lets each affected column settle and fills
// the vacated top cells from gen. Columns with no removed cells are untouched.
// A region reaching outside g is rejected with ErrOutOfBounds and g is left as is.
func Collapse(g *Grid, region Region, gen ColorGenerator) (MoveResult, error) {
	switch {
	case g.IsCleared():
		return MoveResult{}, ErrBoardCleared
	case gen == nil:
		return MoveResult{}, ErrNilGenerator
	}
	for p := range region.members {
		if !g.InBounds(p.X, p.Y) {
			return MoveResult{}, fmt.Errorf("%w: region cell %v", ErrOutOfBounds, p)
		}
	}

	removedByCol := make(map[int][]bool)
	for p := range region.members {
		col, ok := removedByCol[p.X]
		if !ok {
			col = make([]bool, g.height)
			removedByCol[p.X] = col
		}
		col[p.Y] = true
	}

	result := MoveResult{
		Popped:  region.Len(),
		Color:   region.color,
		Removed: region.Positions(),
		Refill:  make(map[int][]int, len(removedByCol)),
	}

	cols := make([]int, 0, len(removedByCol))
	for x := range removedByCol {
		cols = append(cols, x)
	}
	sort.Ints(cols)

	for _, x := range cols {
		falls, refill := g.collapseColumn(x, removedByCol[x], gen)
		result.Falls = append(result.Falls, falls...)
		result.Refill[x] = refill
	}

	return result, nil
}

// collapseColumn compacts column x bottom-up, skipping removed rows, then
// writes newly generated colors above the survivors.
func (g *Grid) collapseColumn(x int, removed []bool, gen ColorGenerator) ([]Fall, []int) {
	var falls []Fall
	write := 0
	for read := 0; read < g.height; read++ {
		if removed[read] {
			continue
		}
		if read != write {
			c := g.at(x, read)
			g.cells[CoordToIndex(x, write, g.width)] = c
			falls = append(falls, Fall{X: x, FromY: read, ToY: write, Color: c})
		}
		write++
	}

	refill := make([]int, 0, g.height-write)
	for y := write; y < g.height; y++ {
		c := nextColor(gen, g.numColors)
		g.cells[CoordToIndex(x, y, g.width)] = c
		refill = append(refill, c)
	}
	return falls, refill
}

// AttemptMove evaluates a click at (x, y). If the region there has at least
// minGroupSize cells it is removed and the board collapses; otherwise an error
// is returned and g is not modified.
func AttemptMove(g *Grid, x, y, minGroupSize int, gen ColorGenerator) (MoveResult, error) {
	if g.IsCleared() {
		return MoveResult{}, ErrBoardCleared
	}
	if gen == nil {
		return MoveResult{}, ErrNilGenerator
	}
	region, err := FindRegion(g, x, y)
	if err != nil {
		return MoveResult{}, fmt.Errorf("%w at %v", err, P(x, y))
	}
	if region.Len() < minGroupSize {
		return MoveResult{}, fmt.Errorf("%w: group of %d, need %d", ErrInsufficientMatch, region.Len(), minGroupSize)
	}
	return Collapse(g, region, gen)
}
