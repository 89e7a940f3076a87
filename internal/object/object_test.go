package object

import (
	"math"
	"testing"

	"github.com/tomz197/spacedefender/internal/input"
	"github.com/tomz197/spacedefender/internal/loop/config"
)

// fixedRand replays vals in a loop.
type fixedRand struct {
	vals []float64
	i    int
}

func (r *fixedRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func TestIDCounter(t *testing.T) {
	var c IDCounter
	if got := c.Next(); got != 0 {
		t.Fatalf("first id = %d, want 0", got)
	}
	if got := c.Reserve(15); got != 1 {
		t.Fatalf("Reserve(15) first = %d, want 1", got)
	}
	if got := c.next; got != 16 {
		t.Fatalf("next after reserve = %d, want 16", got)
	}
	if got := c.Reserve(0); got != 16 || c.next != 16 {
		t.Fatalf("Reserve(0) moved the counter: first=%d next=%d", got, c.next)
	}
}

func TestMoveShip(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name  string
		start float64
		held  input.Held
		want  float64
	}{
		{"idle", 400, input.Held{}, 400},
		{"left", 400, input.Held{Left: true}, 392},
		{"right", 400, input.Held{Right: true}, 408},
		{"left clamps", 25, input.Held{Left: true}, 20},
		{"right clamps", 775, input.Held{Right: true}, 780},
		{"both held moves right", 400, input.Held{Left: true, Right: true}, 408},
		{"both held at right wall", 780, input.Held{Left: true, Right: true}, 780},
		{"fire only", 400, input.Held{Fire: true}, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveShip(Ship{X: tt.start, Y: 540}, tt.held, cfg)
			if got.X != tt.want {
				t.Errorf("x = %v, want %v", got.X, tt.want)
			}
			if got.Y != 540 {
				t.Errorf("y changed to %v", got.Y)
			}
		})
	}
}

func TestMoveShipStaysInBounds(t *testing.T) {
	cfg := config.Default()
	ship := NewShip(cfg)
	held := []input.Held{{Left: true}, {Right: true}, {Left: true, Right: true}}
	for i := 0; i < 500; i++ {
		ship = MoveShip(ship, held[(i/70)%len(held)], cfg)
		if ship.X < cfg.HalfShip() || ship.X > cfg.Width-cfg.HalfShip() {
			t.Fatalf("tick %d: ship x %v out of bounds", i, ship.X)
		}
	}
}

func TestAdvanceMissilesCulls(t *testing.T) {
	cfg := config.Default()
	in := []Missile{
		{ID: 1, X: 100, Y: 500},
		{ID: 2, X: 100, Y: -9},  // -19 after move, still in
		{ID: 3, X: 100, Y: -10}, // exactly -20, culled
	}

	out := AdvanceMissiles(in, cfg)

	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 2 {
		t.Fatalf("AdvanceMissiles kept %+v", out)
	}
	if out[0].Y != 490 {
		t.Errorf("missile y = %v, want 490", out[0].Y)
	}
	if in[0].Y != 500 {
		t.Error("input slice was modified")
	}
}

func TestAdvanceAsteroidsCulls(t *testing.T) {
	cfg := config.Default()
	in := []Asteroid{
		{ID: 1, X: 100, Y: -15},
		{ID: 2, X: 100, Y: 626}, // 629 after move
		{ID: 3, X: 100, Y: 627}, // 630 after move, culled
	}

	out := AdvanceAsteroids(in, cfg)

	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 2 {
		t.Fatalf("AdvanceAsteroids kept %+v", out)
	}
	if out[0].Y != -12 {
		t.Errorf("asteroid y = %v, want -12", out[0].Y)
	}
}

func TestAsteroidFallsToTopEdge(t *testing.T) {
	cfg := config.Default()
	asteroids := []Asteroid{{ID: 0, X: 100, Y: -15}}
	for i := 0; i < 5; i++ {
		asteroids = AdvanceAsteroids(asteroids, cfg)
	}
	if len(asteroids) != 1 || asteroids[0].Y != 0 {
		t.Fatalf("after 5 ticks: %+v, want y = 0", asteroids)
	}
}

func TestAdvanceParticles(t *testing.T) {
	cfg := config.Default()
	in := []Particle{
		{ID: 1, X: 0, Y: 0, VX: 2, VY: -3, Life: 1},
		{ID: 2, Life: 0.02},
		{ID: 3, Life: 0.01},
	}

	out := AdvanceParticles(in, cfg)

	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("AdvanceParticles kept %+v", out)
	}
	p := out[0]
	if p.X != 2 || p.Y != -3 || p.VX != 2 || p.VY != -3 {
		t.Errorf("particle moved to %+v", p)
	}
	if math.Abs(p.Life-0.98) > 1e-9 {
		t.Errorf("life = %v, want 0.98", p.Life)
	}
}

func TestParticleLifetime(t *testing.T) {
	cfg := config.Default()
	particles := []Particle{{Life: 1}}
	ticks := 0
	for len(particles) > 0 {
		particles = AdvanceParticles(particles, cfg)
		ticks++
		if ticks > 100 {
			t.Fatal("particle never expired")
		}
	}
	if ticks < 49 || ticks > 51 {
		t.Errorf("particle lived %d ticks, want about 50", ticks)
	}
}

func TestEmitBurst(t *testing.T) {
	cfg := config.Default()
	e := NewEmitter(cfg, &fixedRand{vals: []float64{0, 0.5, 0.999}})
	var ids IDCounter
	ids.Next() // earlier particle

	burst := e.Emit(120, 80, &ids)

	if len(burst) != 15 {
		t.Fatalf("burst size = %d, want 15", len(burst))
	}
	seen := make(map[int]bool)
	for i, p := range burst {
		if seen[p.ID] {
			t.Errorf("duplicate id %d", p.ID)
		}
		seen[p.ID] = true
		if p.ID != 1+i {
			t.Errorf("particle %d id = %d, want %d", i, p.ID, 1+i)
		}
		if p.X != 120 || p.Y != 80 {
			t.Errorf("particle %d at (%v, %v), want (120, 80)", i, p.X, p.Y)
		}
		if p.Life != 1 {
			t.Errorf("particle %d life = %v", i, p.Life)
		}
		if s := math.Hypot(p.VX, p.VY); s < 2-1e-9 || s > 5 {
			t.Errorf("particle %d speed %v outside [2, 5]", i, s)
		}
		angle := math.Atan2(p.VY, p.VX)
		want := 2 * math.Pi * float64(i) / 15
		if diff := math.Remainder(angle-want, 2*math.Pi); math.Abs(diff) > 1e-9 {
			t.Errorf("particle %d angle %v, want %v", i, angle, want)
		}
	}
	if ids.next != 16 {
		t.Errorf("counter after burst = %d, want 16", ids.next)
	}
}

func TestTrySpawnMissile(t *testing.T) {
	s := NewSpawner(config.Default(), &fixedRand{vals: []float64{0}})
	var ids IDCounter
	ship := Ship{X: 300, Y: 540}

	if _, ok := s.TrySpawnMissile(false, ship, &ids); ok {
		t.Fatal("spawned a missile without a fire edge")
	}
	if ids.next != 0 {
		t.Fatal("counter advanced without a spawn")
	}

	m, ok := s.TrySpawnMissile(true, ship, &ids)
	if !ok {
		t.Fatal("no missile on fire edge")
	}
	if m.ID != 0 || m.X != 300 || m.Y != 520 {
		t.Errorf("missile = %+v, want id 0 at (300, 520)", m)
	}
}

func TestTrySpawnAsteroid(t *testing.T) {
	cfg := config.Default()

	miss := NewSpawner(cfg, &fixedRand{vals: []float64{0.5}})
	var ids IDCounter
	if _, ok := miss.TrySpawnAsteroid(&ids); ok {
		t.Fatal("spawned above the probability threshold")
	}

	// Roll 0.01 hits, then x = 0.5*(800-30)+15
	hit := NewSpawner(cfg, &fixedRand{vals: []float64{0.01, 0.5}})
	a, ok := hit.TrySpawnAsteroid(&ids)
	if !ok {
		t.Fatal("no asteroid below the probability threshold")
	}
	if a.ID != 0 || a.X != 400 || a.Y != -30 {
		t.Errorf("asteroid = %+v, want id 0 at (400, -30)", a)
	}

	edge := NewSpawner(cfg, &fixedRand{vals: []float64{0, 0}})
	a, _ = edge.TrySpawnAsteroid(&ids)
	if a.X != 15 || a.ID != 1 {
		t.Errorf("leftmost asteroid = %+v, want id 1 at x 15", a)
	}
}
