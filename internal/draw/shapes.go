package draw

// ShipOutline returns the arrowhead outline of a ship centred on (x, y)
// inside a size x size box: nose at the top, notch at the bottom centre.
func ShipOutline(x, y, size float64) []Point {
	half := size / 2
	return []Point{
		{X: x, Y: y - half},
		{X: x - half, Y: y + half},
		{X: x, Y: y + half*0.7},
		{X: x + half, Y: y + half},
	}
}

// Rect returns the corners of an axis-aligned rectangle.
func Rect(left, top, width, height float64) []Point {
	return []Point{
		{X: left, Y: top},
		{X: left + width, Y: top},
		{X: left + width, Y: top + height},
		{X: left, Y: top + height},
	}
}
