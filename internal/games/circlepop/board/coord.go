// Package board implements the CirclePop grid simulation: region detection,
// collapse under gravity and refill. It has no UI dependencies and is fully
// deterministic given its color generators.
//
// Coordinates put row 0 at the bottom of the board. Cells are stored row-major,
// so index = x + y*width.
package board

import "fmt"

// Pos is a cell position on the board.
type Pos struct {
	X int
	Y int
}

// P is a convenience constructor for Pos.
func P(x, y int) Pos {
	return Pos{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// neighbors lists the 4-directional offsets. Diagonals never connect.
var neighbors = [4]Pos{
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// IndexToCoord converts a linear cell index into a column and row.
// No range checking is done.
func IndexToCoord(index, width int) (x, y int) {
	return index % width, index / width
}

// CoordToIndex converts a column and row into a linear cell index.
// No range checking is done.
func CoordToIndex(x, y, width int) int {
	return x + y*width
}
