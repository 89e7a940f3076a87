// Package physics provides collision geometry and a broad-phase grid.
package physics

// DistanceSquared calculates the squared distance between two points.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Within reports whether two points are strictly closer than dist.
func Within(x1, y1, x2, y2, dist float64) bool {
	return DistanceSquared(x1, y1, x2, y2) < dist*dist
}
