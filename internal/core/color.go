package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// piecePalette orders colors so that neighbouring indices stay easy to tell apart.
var piecePalette = []Color{
	ColorBrightRed,
	ColorBrightGreen,
	ColorBrightBlue,
	ColorBrightYellow,
	ColorBrightMagenta,
	ColorBrightCyan,
	ColorOrange,
	ColorWhite,
}

// PaletteSize is the number of distinct piece colors.
func PaletteSize() int {
	return len(piecePalette)
}

// PieceColor maps a board color index to a screen color.
// Indices wrap around the palette.
func PieceColor(index int) Color {
	if index < 0 {
		return ColorGray
	}
	return piecePalette[index%len(piecePalette)]
}
