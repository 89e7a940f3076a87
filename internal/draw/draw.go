// Package draw rasterizes world geometry onto a half-block terminal canvas
// and writes it out as ANSI escape sequences.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a foreground color for canvas pixels. ColorNone is an empty pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorCyan
	ColorMagenta
	ColorOrange
	ColorGray
)

// ANSI escape sequences.
const (
	ColorReset       = "\033[0m"
	ColorBrightCyan  = "\033[96m"
	colorBrightWhite = "\033[97m"
	colorBrightMag   = "\033[95m"
	colorOrange      = "\033[38;5;208m"
	colorDarkGray    = "\033[90m"
)

// Escape returns the ANSI sequence selecting c.
func (c Color) Escape() string {
	switch c {
	case ColorWhite:
		return colorBrightWhite
	case ColorCyan:
		return ColorBrightCyan
	case ColorMagenta:
		return colorBrightMag
	case ColorOrange:
		return colorOrange
	case ColorGray:
		return colorDarkGray
	default:
		return ColorReset
	}
}
