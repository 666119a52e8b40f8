package board

import (
	"fmt"
	"strings"
)

// MaxColors is the largest palette the letter notation can express.
const MaxColors = 26

// Grid is the board state: a rectangle of color indices.
// Cells are stored row-major with row 0 at the bottom.
type Grid struct {
	width     int
	height    int
	numColors int
	cells     []int
}

// New allocates a width x height grid and fills every cell from gen.
func New(width, height, numColors int, gen ColorGenerator) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if numColors <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColorCount, numColors)
	}
	if gen == nil {
		return nil, ErrNilGenerator
	}

	g := &Grid{
		width:     width,
		height:    height,
		numColors: numColors,
		cells:     make([]int, width*height),
	}
	for i := range g.cells {
		g.cells[i] = nextColor(gen, numColors)
	}
	return g, nil
}

// InitBoard is an alias for New.
func InitBoard(width, height, numColors int, gen ColorGenerator) (*Grid, error) {
	return New(width, height, numColors, gen)
}

// FromColumns builds a grid from column-major data, each column listed
// bottom to top. All columns must have the same non-zero length.
func FromColumns(columns [][]int, numColors int) (*Grid, error) {
	if len(columns) == 0 || len(columns[0]) == 0 {
		return nil, fmt.Errorf("%w: empty columns", ErrInvalidDimensions)
	}
	if numColors <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColorCount, numColors)
	}

	width, height := len(columns), len(columns[0])
	g := &Grid{
		width:     width,
		height:    height,
		numColors: numColors,
		cells:     make([]int, width*height),
	}
	for x, col := range columns {
		if len(col) != height {
			return nil, fmt.Errorf("%w: column %d has %d cells, want %d", ErrInvalidDimensions, x, len(col), height)
		}
		for y, c := range col {
			if c < 0 || c >= numColors {
				return nil, fmt.Errorf("%w: %d at %v", ErrInvalidColor, c, P(x, y))
			}
			g.cells[CoordToIndex(x, y, width)] = c
		}
	}
	return g, nil
}

// ParseRows builds a grid from letter rows ('A' = color 0), top row first,
// the way the board reads on screen.
func ParseRows(numColors int, rows ...string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrInvalidDimensions)
	}
	if numColors <= 0 || numColors > MaxColors {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColorCount, numColors)
	}

	width, height := len(rows[0]), len(rows)
	g := &Grid{
		width:     width,
		height:    height,
		numColors: numColors,
		cells:     make([]int, width*height),
	}
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimensions, i, len(row), width)
		}
		y := height - 1 - i
		for x := 0; x < width; x++ {
			c := int(row[x] - 'A')
			if c < 0 || c >= numColors {
				return nil, fmt.Errorf("%w: %q at %v", ErrInvalidColor, row[x], P(x, y))
			}
			g.cells[CoordToIndex(x, y, width)] = c
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// NumColors returns the size of the palette.
func (g *Grid) NumColors() int {
	return g.numColors
}

// Len returns the number of cells, 0 once cleared.
func (g *Grid) Len() int {
	return len(g.cells)
}

// IsCleared reports whether Clear has been called.
func (g *Grid) IsCleared() bool {
	return g.cells == nil
}

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return !g.IsCleared() && x >= 0 && x < g.width && y >= 0 && y < g.height
}

// ColorAt returns the color at (x, y).
func (g *Grid) ColorAt(x, y int) (int, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("%w: %v", ErrOutOfBounds, P(x, y))
	}
	return g.cells[CoordToIndex(x, y, g.width)], nil
}

// SetColorAt overwrites the color at (x, y).
// Callers sharing a grid must serialize access.
func (g *Grid) SetColorAt(x, y, color int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, P(x, y))
	}
	if color < 0 || color >= g.numColors {
		return fmt.Errorf("%w: %d", ErrInvalidColor, color)
	}
	g.cells[CoordToIndex(x, y, g.width)] = color
	return nil
}

// ColorAtIndex returns the color stored at a linear index.
func (g *Grid) ColorAtIndex(index int) (int, error) {
	if index < 0 || index >= len(g.cells) {
		return 0, fmt.Errorf("%w: index %d", ErrOutOfBounds, index)
	}
	return g.cells[index], nil
}

// SetColorAtIndex overwrites the color stored at a linear index.
func (g *Grid) SetColorAtIndex(index, color int) error {
	if index < 0 || index >= len(g.cells) {
		return fmt.Errorf("%w: index %d", ErrOutOfBounds, index)
	}
	if color < 0 || color >= g.numColors {
		return fmt.Errorf("%w: %d", ErrInvalidColor, color)
	}
	g.cells[index] = color
	return nil
}

// at reads a cell without bounds checks.
func (g *Grid) at(x, y int) int {
	return g.cells[CoordToIndex(x, y, g.width)]
}

// Clear drops all cells. The dimensions are kept so the board can be
// repopulated with Fill.
func (g *Grid) Clear() {
	g.cells = nil
}

// ClearBoard clears g.
func ClearBoard(g *Grid) {
	g.Clear()
}

// Fill repopulates every cell from gen, reallocating after Clear.
func (g *Grid) Fill(gen ColorGenerator) {
	if g.cells == nil {
		g.cells = make([]int, g.width*g.height)
	}
	for i := range g.cells {
		g.cells[i] = nextColor(gen, g.numColors)
	}
}

// Column returns a copy of column x, bottom to top.
func (g *Grid) Column(x int) []int {
	if !g.InBounds(x, 0) {
		return nil
	}
	col := make([]int, g.height)
	for y := range col {
		col[y] = g.at(x, y)
	}
	return col
}

// Cells returns a copy of the row-major cell slice.
func (g *Grid) Cells() []int {
	if g.cells == nil {
		return nil
	}
	out := make([]int, len(g.cells))
	copy(out, g.cells)
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		width:     g.width,
		height:    g.height,
		numColors: g.numColors,
		cells:     g.Cells(),
	}
}

// Equal reports whether two grids have the same dimensions, palette and cells.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil {
		return false
	}
	if g.width != other.width || g.height != other.height || g.numColors != other.numColors {
		return false
	}
	if len(g.cells) != len(other.cells) {
		return false
	}
	for i, c := range g.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns the board in letter notation, top row first.
func (g *Grid) Rows() []string {
	if g.IsCleared() {
		return nil
	}
	rows := make([]string, g.height)
	buf := make([]byte, g.width)
	for i := range rows {
		y := g.height - 1 - i
		for x := 0; x < g.width; x++ {
			buf[x] = colorLetter(g.at(x, y))
		}
		rows[i] = string(buf)
	}
	return rows
}

// String renders the board in letter notation, top row first.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

func colorLetter(c int) byte {
	if c < 0 || c >= MaxColors {
		return '?'
	}
	return byte('A' + c)
}
