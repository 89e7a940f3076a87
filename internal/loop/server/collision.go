package server

import (
	"github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/object"
	"github.com/tomz197/spacedefender/internal/physics"
)

// Hit is one missile destroying one asteroid.
type Hit struct {
	AsteroidID int
	MissileID  int
	X, Y       float64 // Former asteroid center
}

// Resolution is the outcome of one collision pass.
type Resolution struct {
	Asteroids []object.Asteroid // Survivors, original order
	Missiles  []object.Missile  // Survivors, original order
	Hits      []Hit             // In asteroid order
}

// Resolver matches missiles against asteroids.
//
// Asteroids are scanned in order and each takes the first unconsumed missile
// (in missile order) within hit distance. An entity takes part in at most one
// hit per pass.
type Resolver struct {
	hitDist float64
	grid    *physics.SpatialGrid // nil: plain pairwise scan
}

// NewResolver creates a resolver. With the grid broad phase the missiles are
// bucketed first; results are identical to the plain scan.
func NewResolver(cfg config.Settings) *Resolver {
	r := &Resolver{hitDist: cfg.HitDistance()}
	if cfg.BroadPhase == config.BroadPhaseGrid {
		// Cover the spawn band above the top edge and the cull band below the bottom.
		margin := cfg.AsteroidSize + cfg.MissileHeight
		r.grid = physics.NewSpatialGrid(-margin, -margin, cfg.Width+margin, cfg.Height+margin, r.hitDist)
	}
	return r
}

// Resolve runs one collision pass. The input slices are not modified.
func (r *Resolver) Resolve(asteroids []object.Asteroid, missiles []object.Missile) Resolution {
	consumed := make([]bool, len(missiles))
	var hits []Hit
	survivors := make([]object.Asteroid, 0, len(asteroids))

	if r.grid != nil {
		r.grid.Clear()
		for j, m := range missiles {
			r.grid.Insert(m.X, m.Y, j)
		}
	}

	for _, a := range asteroids {
		j := r.firstMatch(a, missiles, consumed)
		if j < 0 {
			survivors = append(survivors, a)
			continue
		}
		consumed[j] = true
		hits = append(hits, Hit{
			AsteroidID: a.ID,
			MissileID:  missiles[j].ID,
			X:          a.X,
			Y:          a.Y,
		})
	}

	remaining := make([]object.Missile, 0, len(missiles)-len(hits))
	for j, m := range missiles {
		if !consumed[j] {
			remaining = append(remaining, m)
		}
	}

	return Resolution{Asteroids: survivors, Missiles: remaining, Hits: hits}
}

// firstMatch returns the lowest index of an unconsumed missile hitting a, or -1.
func (r *Resolver) firstMatch(a object.Asteroid, missiles []object.Missile, consumed []bool) int {
	if r.grid == nil {
		for j, m := range missiles {
			if !consumed[j] && physics.Within(a.X, a.Y, m.X, m.Y, r.hitDist) {
				return j
			}
		}
		return -1
	}

	best := -1
	r.grid.QueryAround(a.X, a.Y, func(j int) bool {
		if consumed[j] || (best >= 0 && j > best) {
			return false
		}
		m := missiles[j]
		if physics.Within(a.X, a.Y, m.X, m.Y, r.hitDist) {
			best = j
		}
		return false
	})
	return best
}
