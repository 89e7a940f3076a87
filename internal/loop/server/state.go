package server

import (
	"slices"

	"github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/object"
)

// Phase is the lifecycle state of the simulation.
type Phase int

const (
	PhaseIdle    Phase = iota // Title screen, nothing moves
	PhaseRunning              // Fixed-rate updates in progress
)

func (p Phase) String() string {
	if p == PhaseRunning {
		return "running"
	}
	return "idle"
}

// Registry owns every live entity, the per-kind id counters and the run counters.
// Only the Server goroutine touches it.
type Registry struct {
	Ship      object.Ship
	Missiles  []object.Missile
	Asteroids []object.Asteroid
	Particles []object.Particle
	Score     int
	Destroyed int

	missileIDs  object.IDCounter
	asteroidIDs object.IDCounter
	particleIDs object.IDCounter
}

// NewRegistry creates an empty registry with the ship at its start position.
func NewRegistry(cfg config.Settings) *Registry {
	return &Registry{Ship: object.NewShip(cfg)}
}

// Reset clears entities and counters for a new run. Id counters keep going so
// ids are never reused.
func (r *Registry) Reset(cfg config.Settings) {
	r.Ship = object.NewShip(cfg)
	r.Missiles = nil
	r.Asteroids = nil
	r.Particles = nil
	r.Score = 0
	r.Destroyed = 0
}

// Snapshot is an immutable copy of the world for renderers.
type Snapshot struct {
	Phase     Phase
	RunID     string
	Tick      uint64
	Width     float64
	Height    float64
	Ship      object.Ship
	Missiles  []object.Missile
	Asteroids []object.Asteroid
	Particles []object.Particle
	Score     int
	Destroyed int
}

// Running reports whether the snapshot was taken during a run.
func (s *Snapshot) Running() bool {
	return s.Phase == PhaseRunning
}

// snapshot copies the registry so later ticks cannot affect readers.
func (r *Registry) snapshot() *Snapshot {
	return &Snapshot{
		Ship:      r.Ship,
		Missiles:  slices.Clone(r.Missiles),
		Asteroids: slices.Clone(r.Asteroids),
		Particles: slices.Clone(r.Particles),
		Score:     r.Score,
		Destroyed: r.Destroyed,
	}
}
