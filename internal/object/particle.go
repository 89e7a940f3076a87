package object

import (
	"math"

	"github.com/tomz197/spacedefender/internal/loop/config"
)

// Particle is a short-lived explosion fragment.
type Particle struct {
	ID     int
	X, Y   float64 // Position
	VX, VY float64 // Velocity per tick
	Life   float64 // Remaining life fraction, 1.0 at birth
}

// Emitter produces explosion bursts.
type Emitter struct {
	cfg config.Settings
	rng Rand
}

// NewEmitter creates an emitter drawing burst speeds from rng.
func NewEmitter(cfg config.Settings, rng Rand) *Emitter {
	return &Emitter{cfg: cfg, rng: rng}
}

// Emit creates a radial burst centred on (x, y). Particles are spaced at equal
// angles around the full circle, each with a random speed in
// [ParticleMinSpeed, ParticleMaxSpeed). The whole batch takes one block of ids.
func (e *Emitter) Emit(x, y float64, ids *IDCounter) []Particle {
	count := e.cfg.ParticleCount
	if count <= 0 {
		return nil
	}

	first := ids.Reserve(count)
	spread := e.cfg.ParticleMaxSpeed - e.cfg.ParticleMinSpeed

	burst := make([]Particle, count)
	for i := range burst {
		angle := 2 * math.Pi * float64(i) / float64(count)
		speed := e.cfg.ParticleMinSpeed + e.rng.Float64()*spread
		burst[i] = Particle{
			ID:   first + i,
			X:    x,
			Y:    y,
			VX:   math.Cos(angle) * speed,
			VY:   math.Sin(angle) * speed,
			Life: 1,
		}
	}
	return burst
}

// AdvanceParticles moves every particle by its velocity, decays its life and
// drops the expired ones. No drag or gravity is applied. The input slice is
// not modified.
func AdvanceParticles(particles []Particle, cfg config.Settings) []Particle {
	kept := make([]Particle, 0, len(particles))
	for _, p := range particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life -= cfg.ParticleDecay
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	return kept
}
