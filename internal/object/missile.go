package object

import "github.com/tomz197/spacedefender/internal/loop/config"

// Missile is a shot fired straight up from the ship.
type Missile struct {
	ID   int
	X, Y float64 // Position (top center)
}

// AdvanceMissiles moves every missile up by one tick and drops the ones that
// have left the top of the playfield. The input slice is not modified.
func AdvanceMissiles(missiles []Missile, cfg config.Settings) []Missile {
	kept := make([]Missile, 0, len(missiles))
	for _, m := range missiles {
		m.Y -= cfg.MissileSpeed
		if m.Y > -cfg.MissileHeight {
			kept = append(kept, m)
		}
	}
	return kept
}
