package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection over a
// bounded rectangle. Items are inserted by position and index; QueryAround
// visits the 3x3 cell neighborhood of a point.
//
// Cell size must be >= the maximum interaction distance so that every
// candidate lies in that neighborhood. Positions outside the rectangle are
// clamped to the border cells, which keeps neighbors adjacent.
type SpatialGrid struct {
	minX, minY  float64
	invCellSize float64
	cols, rows  int
	cells       [][]int // Reused between frames (reset to [:0])
}

// NewSpatialGrid creates a grid covering [minX, maxX] x [minY, maxY].
func NewSpatialGrid(minX, minY, maxX, maxY, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil((maxX - minX) / cellSize))
	rows := int(math.Ceil((maxY - minY) / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &SpatialGrid{
		minX:        minX,
		minY:        minY,
		invCellSize: 1 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
	}
}

// Clear removes all items without releasing cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an item at the given position.
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.posToCell(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], index)
}

// QueryAround calls fn for each item in the 3x3 neighborhood of (x, y).
// Iteration stops early when fn returns true. Visiting order is by cell, not
// by index.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	col, row := g.posToCell(x, y)

	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		rowOffset := r * g.cols
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			for _, item := range g.cells[rowOffset+c] {
				if fn(item) {
					return
				}
			}
		}
	}
}

func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor((x - g.minX) * g.invCellSize))
	row = int(math.Floor((y - g.minY) * g.invCellSize))
	col = min(max(col, 0), g.cols-1)
	row = min(max(row, 0), g.rows-1)
	return col, row
}
