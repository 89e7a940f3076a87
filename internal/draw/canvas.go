package draw

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Drawing calls take world coordinates, which are scaled to the
// terminal size.
//
// Render only emits cells that changed since the previous frame.
type Canvas struct {
	termWidth      int     // Render area columns
	termHeight     int     // Render area rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	worldWidth  float64
	worldHeight float64
	scaleX      float64 // termWidth / worldWidth
	scaleY      float64 // subPixelHeight / worldHeight

	// 0-based terminal offset of the render area, for centering.
	offsetCol int
	offsetRow int

	prev      []cell // What the terminal currently shows
	prevValid bool

	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
}

type cell struct {
	ch    rune
	color Color
}

// dirty never matches a real cell, so the next Render rewrites it.
var dirty = cell{ch: -1}

// NewCanvas creates a canvas mapping a worldWidth x worldHeight playfield
// onto termWidth x termHeight terminal cells.
func NewCanvas(termWidth, termHeight int, worldWidth, worldHeight float64) *Canvas {
	c := &Canvas{worldWidth: worldWidth, worldHeight: worldHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the
// world size. A size change forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Color, c.subPixelHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
		c.prevValid = false
	}
	c.scaleX = float64(c.termWidth) / c.worldWidth
	c.scaleY = float64(c.subPixelHeight) / c.worldHeight
}

// SetOffset sets the 0-based column and row offset for centering.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.prevValid = false
	}
	c.offsetCol = col
	c.offsetRow = row
}

func (c *Canvas) OffsetCol() int      { return c.offsetCol }
func (c *Canvas) OffsetRow() int      { return c.offsetRow }
func (c *Canvas) TerminalWidth() int  { return c.termWidth }
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// Clear resets all pixels. The terminal is untouched until the next Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render emit every cell.
func (c *Canvas) ForceRedraw() {
	c.prevValid = false
}

// MarkTextDirty records that text was written over n cells starting at the
// 1-based canvas position (col, row), so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	row--
	if row < 0 || row >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.prev[row*c.termWidth+x] = dirty
	}
}

// WorldToTerminal converts world coordinates to a 1-based canvas position.
func (c *Canvas) WorldToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

func (c *Canvas) setPixel(x, y int, color Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = color
	}
}

// Plot sets the pixel under a world position.
func (c *Canvas) Plot(x, y float64, color Color) {
	c.setPixel(int(math.Round(x*c.scaleX)), int(math.Round(y*c.scaleY)), color)
}

// Line draws a line with Bresenham's algorithm in pixel space.
func (c *Canvas) Line(p1, p2 Point, color Color) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1, color)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Polygon draws a closed outline, filling the interior when filled is set.
func (c *Canvas) Polygon(points []Point, color Color, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points, color)
	}
	for i := range points {
		c.Line(points[i], points[(i+1)%len(points)], color)
	}
}

// fillPolygon fills with a scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []Point, color Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		minY = math.Min(minY, scaled[i].Y)
		maxY = math.Max(maxY, scaled[i].Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		for i := range scaled {
			p1, p2 := scaled[i], scaled[(i+1)%len(scaled)]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = xs

		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y, color)
			}
		}
	}
}

// FillCircle fills a world-space circle. The radius is scaled per axis so the
// circle stays round in world units.
func (c *Canvas) FillCircle(cx, cy, r float64, color Color) {
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	if rx < 0.5 && ry < 0.5 {
		c.Plot(cx, cy, color)
		return
	}
	for y := int(math.Floor(pcy - ry)); y <= int(math.Ceil(pcy+ry)); y++ {
		dy := (float64(y) + 0.5 - pcy) / ry
		if dy < -1 || dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		for x := int(math.Round(pcx - half)); x <= int(math.Round(pcx+half)); x++ {
			c.setPixel(x, y, color)
		}
	}
}

// cellAt combines the two sub-pixels of a terminal cell. The top pixel's
// color wins when both are set.
func (c *Canvas) cellAt(col, row int) cell {
	top := c.pixels[(row*2)*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]
	switch {
	case top != ColorNone && bottom != ColorNone:
		return cell{ch: BlockFull, color: top}
	case top != ColorNone:
		return cell{ch: BlockUpperHalf, color: top}
	case bottom != ColorNone:
		return cell{ch: BlockLowerHalf, color: bottom}
	default:
		return cell{ch: BlockEmpty}
	}
}

// EachCell calls fn for every non-empty cell with its 0-based position.
func (c *Canvas) EachCell(fn func(col, row int, ch rune, color Color)) {
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			if cl := c.cellAt(col, row); cl.ch != BlockEmpty {
				fn(col, row, cl.ch, cl.color)
			}
		}
	}
}

// Render writes the changed cells to w.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	current := ColorNone

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			idx := row*c.termWidth + col
			cl := c.cellAt(col, row)
			if c.prevValid && c.prev[idx] == cl {
				continue
			}
			c.prev[idx] = cl

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			if cl.ch != BlockEmpty && cl.color != current {
				c.renderBuf.WriteString(cl.color.Escape())
				current = cl.color
			}
			c.renderBuf.WriteRune(cl.ch)
		}
	}
	if current != ColorNone {
		c.renderBuf.WriteString(ColorReset)
	}
	c.prevValid = true

	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

// RenderBorder frames the render area when the terminal is larger than the
// maximum render resolution.
func (c *Canvas) RenderBorder(w io.Writer) error {
	if c.offsetCol < 1 && c.offsetRow < 1 {
		return nil
	}
	left, right := c.offsetCol, c.offsetCol+c.termWidth+1
	top, bottom := c.offsetRow, c.offsetRow+c.termHeight+1
	bar := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	if c.offsetRow >= 1 {
		if c.offsetCol >= 1 {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐\033[%d;%dH└%s┘", top, left, bar, bottom, left, bar)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s\033[%d;%dH%s", top, 1, bar, bottom, 1, bar)
		}
	}
	if c.offsetCol >= 1 {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
