// Package config centralizes all tunable game parameters.
package config

import "time"

// Settings holds the gameplay tunables. All distances are world units and all
// speeds are world units per tick.
type Settings struct {
	// Playfield
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`

	// Ship
	ShipSize     float64 `toml:"ship_size" yaml:"ship_size"`
	ShipSpeed    float64 `toml:"ship_speed" yaml:"ship_speed"`
	ShipBaseline float64 `toml:"ship_baseline" yaml:"ship_baseline"` // Distance of the ship centre from the bottom edge

	// Missiles
	MissileWidth  float64 `toml:"missile_width" yaml:"missile_width"`
	MissileHeight float64 `toml:"missile_height" yaml:"missile_height"`
	MissileSpeed  float64 `toml:"missile_speed" yaml:"missile_speed"`
	MissileOffset float64 `toml:"missile_offset" yaml:"missile_offset"` // Spawn distance above the ship centre

	// Asteroids
	AsteroidSize     float64 `toml:"asteroid_size" yaml:"asteroid_size"`
	AsteroidSpeed    float64 `toml:"asteroid_speed" yaml:"asteroid_speed"`
	SpawnProbability float64 `toml:"spawn_probability" yaml:"spawn_probability"`

	// Explosions
	ParticleCount    int     `toml:"particle_count" yaml:"particle_count"`
	ParticleMinSpeed float64 `toml:"particle_min_speed" yaml:"particle_min_speed"`
	ParticleMaxSpeed float64 `toml:"particle_max_speed" yaml:"particle_max_speed"`
	ParticleDecay    float64 `toml:"particle_decay" yaml:"particle_decay"` // Life lost per tick

	// Scoring
	HitReward int `toml:"hit_reward" yaml:"hit_reward"`

	// Timing
	TickRate int `toml:"tick_rate" yaml:"tick_rate"` // Ticks per second

	// Collision broad phase: "scan" or "grid"
	BroadPhase string `toml:"broad_phase" yaml:"broad_phase"`
}

// Broad phase names.
const (
	BroadPhaseScan = "scan"
	BroadPhaseGrid = "grid"
)

// Default returns the reference tuning.
func Default() Settings {
	return Settings{
		Width:  800,
		Height: 600,

		ShipSize:     40,
		ShipSpeed:    8,
		ShipBaseline: 60,

		MissileWidth:  4,
		MissileHeight: 20,
		MissileSpeed:  10,
		MissileOffset: 20,

		AsteroidSize:     30,
		AsteroidSpeed:    3,
		SpawnProbability: 0.02,

		ParticleCount:    15,
		ParticleMinSpeed: 2,
		ParticleMaxSpeed: 5,
		ParticleDecay:    0.02,

		HitReward: 10,

		TickRate: 60,

		BroadPhase: BroadPhaseScan,
	}
}

// TickInterval is the wall-clock duration of one tick.
func (s Settings) TickInterval() time.Duration {
	if s.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.TickRate)
}

// HalfShip is the minimum distance between the ship centre and either side wall.
func (s Settings) HalfShip() float64 {
	return s.ShipSize / 2
}

// ShipStart is the ship position at the start of a run.
func (s Settings) ShipStart() (x, y float64) {
	return s.Width / 2, s.Height - s.ShipBaseline
}

// HitDistance is the centre distance below which a missile hits an asteroid.
func (s Settings) HitDistance() float64 {
	return s.AsteroidSize/2 + s.MissileWidth
}

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Terminal render limits. Larger terminals get a centred, bordered play area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
