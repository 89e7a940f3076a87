package object

import "github.com/tomz197/spacedefender/internal/loop/config"

// Asteroid is a rock drifting down the playfield.
type Asteroid struct {
	ID   int
	X, Y float64 // Position (center)
}

// AdvanceAsteroids moves every asteroid down by one tick and drops the ones
// that have fallen past the bottom of the playfield. The input slice is not
// modified.
func AdvanceAsteroids(asteroids []Asteroid, cfg config.Settings) []Asteroid {
	limit := cfg.Height + cfg.AsteroidSize
	kept := make([]Asteroid, 0, len(asteroids)+1) // room for this tick's spawn
	for _, a := range asteroids {
		a.Y += cfg.AsteroidSpeed
		if a.Y < limit {
			kept = append(kept, a)
		}
	}
	return kept
}
