package board

import (
	"sort"

	"github.com/gammazero/deque"
)

// Region is a maximal 4-connected set of cells sharing one color.
type Region struct {
	color   int
	members map[Pos]struct{}
}

// Color returns the shared color of the region.
func (r Region) Color() int {
	return r.color
}

// Len returns the number of cells in the region.
func (r Region) Len() int {
	return len(r.members)
}

// Contains reports whether p belongs to the region.
func (r Region) Contains(p Pos) bool {
	_, ok := r.members[p]
	return ok
}

// Positions returns the members ordered by column, then row.
func (r Region) Positions() []Pos {
	out := make([]Pos, 0, len(r.members))
	for p := range r.members {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}

// Origin returns the lowest member in the leftmost column.
// Useful as a stable click target for a region.
func (r Region) Origin() Pos {
	var best Pos
	first := true
	for p := range r.members {
		if first || p.X < best.X || (p.X == best.X && p.Y < best.Y) {
			best = p
			first = false
		}
	}
	return best
}

// FindRegion returns the maximal connected group of cells that share the
// color of (x, y). Each cell is visited at most once.
func FindRegion(g *Grid, x, y int) (Region, error) {
	if !g.InBounds(x, y) {
		return Region{}, ErrInvalidOrigin
	}
	seen := make([]bool, g.Len())
	return g.flood(P(x, y), seen), nil
}

// flood runs the breadth-first search from origin, marking cells in seen.
// Only same-colored cells are admitted to the queue.
func (g *Grid) flood(origin Pos, seen []bool) Region {
	target := g.at(origin.X, origin.Y)
	region := Region{
		color:   target,
		members: map[Pos]struct{}{origin: {}},
	}
	seen[CoordToIndex(origin.X, origin.Y, g.width)] = true

	var open deque.Deque[Pos]
	g.admitNeighbors(&open, seen, origin, target)

	for open.Len() > 0 {
		curr := open.PopFront()
		region.members[curr] = struct{}{}
		g.admitNeighbors(&open, seen, curr, target)
	}

	return region
}

// admitNeighbors queues the unseen in-bounds neighbours of p that match target.
func (g *Grid) admitNeighbors(open *deque.Deque[Pos], seen []bool, p Pos, target int) {
	for _, d := range neighbors {
		nx, ny := p.X+d.X, p.Y+d.Y
		if !g.InBounds(nx, ny) {
			continue
		}
		idx := CoordToIndex(nx, ny, g.width)
		if seen[idx] || g.cells[idx] != target {
			continue
		}
		seen[idx] = true
		open.PushBack(P(nx, ny))
	}
}

// Regions partitions the whole grid into maximal regions, ordered by the
// position of their first cell in row-major order.
func Regions(g *Grid) []Region {
	if g.IsCleared() {
		return nil
	}
	seen := make([]bool, g.Len())
	var out []Region
	for i := range g.cells {
		if seen[i] {
			continue
		}
		x, y := IndexToCoord(i, g.width)
		out = append(out, g.flood(P(x, y), seen))
	}
	return out
}

// HasMove reports whether any region reaches minGroupSize.
func HasMove(g *Grid, minGroupSize int) bool {
	for _, r := range Regions(g) {
		if r.Len() >= minGroupSize {
			return true
		}
	}
	return false
}

// LargestRegion returns the biggest region on the board. Ties go to the
// region found first. ok is false for a cleared grid.
func LargestRegion(g *Grid) (best Region, ok bool) {
	for _, r := range Regions(g) {
		if !ok || r.Len() > best.Len() {
			best = r
			ok = true
		}
	}
	return best, ok
}

func sortPositions(ps []Pos) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].X != ps[j].X {
			return ps[i].X < ps[j].X
		}
		return ps[i].Y < ps[j].Y
	})
}
