package object

import "github.com/tomz197/spacedefender/internal/loop/config"

// Spawner decides when new missiles and asteroids enter the playfield.
// It only builds entities; the caller adds them to the world.
type Spawner struct {
	cfg config.Settings
	rng Rand
}

// NewSpawner creates a spawner drawing its rolls from rng.
func NewSpawner(cfg config.Settings, rng Rand) *Spawner {
	return &Spawner{cfg: cfg, rng: rng}
}

// TrySpawnMissile returns a missile just above the ship when fire is set.
func (s *Spawner) TrySpawnMissile(fire bool, ship Ship, ids *IDCounter) (Missile, bool) {
	if !fire {
		return Missile{}, false
	}
	return Missile{
		ID: ids.Next(),
		X:  ship.X,
		Y:  ship.Y - s.cfg.MissileOffset,
	}, true
}

// TrySpawnAsteroid rolls once against SpawnProbability and, on success,
// returns an asteroid at a random x just above the top edge. There is no
// population cap.
func (s *Spawner) TrySpawnAsteroid(ids *IDCounter) (Asteroid, bool) {
	if s.rng.Float64() >= s.cfg.SpawnProbability {
		return Asteroid{}, false
	}
	size := s.cfg.AsteroidSize
	return Asteroid{
		ID: ids.Next(),
		X:  s.rng.Float64()*(s.cfg.Width-size) + size/2,
		Y:  -size,
	}, true
}
