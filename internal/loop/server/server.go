package server

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tomz197/spacedefender/internal/input"
	"github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/object"
)

// GameServer is the interface hosts use to drive a simulation.
// Decouples the clients from the concrete Server implementation.
type GameServer interface {
	Start()
	Press(k input.Key)
	Release(k input.Key)
	Snapshot() *Snapshot
	Settings() config.Settings
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// Options configures a Server. Zero values pick sensible defaults.
type Options struct {
	Logger    *zap.Logger
	Rand      object.Rand
	QueueSize int // Pending host commands between two ticks
}

type commandKind int

const (
	cmdPress commandKind = iota
	cmdRelease
	cmdStart
)

func (k commandKind) String() string {
	switch k {
	case cmdPress:
		return "press"
	case cmdRelease:
		return "release"
	default:
		return "start"
	}
}

type command struct {
	kind commandKind
	key  input.Key
}

// Server owns the world and advances it at a fixed rate. Hosts talk to it only
// through queued commands and published snapshots, so a tick never observes a
// half-applied input.
type Server struct {
	cfg      config.Settings
	log      *zap.Logger
	registry *Registry
	keys     *input.Tracker
	spawner  *object.Spawner
	emitter  *object.Emitter
	resolver *Resolver

	phase Phase
	runID string
	tick  uint64

	commands chan command
	snapshot atomic.Pointer[Snapshot]
}

// NewServer creates an idle simulation.
func NewServer(cfg config.Settings, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rng := opts.Rand
	if rng == nil {
		rng = object.NewRand(0)
	}
	queue := opts.QueueSize
	if queue <= 0 {
		queue = 256
	}

	s := &Server{
		cfg:      cfg,
		log:      log,
		registry: NewRegistry(cfg),
		keys:     input.NewTracker(),
		spawner:  object.NewSpawner(cfg, rng),
		emitter:  object.NewEmitter(cfg, rng),
		resolver: NewResolver(cfg),
		commands: make(chan command, queue),
	}
	s.publish()
	return s
}

// Start requests a new run. Ignored while a run is in progress.
func (s *Server) Start() {
	s.enqueue(command{kind: cmdStart})
}

// Press reports that a control went down.
func (s *Server) Press(k input.Key) {
	s.enqueue(command{kind: cmdPress, key: k})
}

// Release reports that a control went up.
func (s *Server) Release(k input.Key) {
	s.enqueue(command{kind: cmdRelease, key: k})
}

// Snapshot returns the world as of the last completed tick.
func (s *Server) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Settings returns the tuning the server was built with.
func (s *Server) Settings() config.Settings {
	return s.cfg
}

// Run ticks the simulation at the configured rate until ctx is cancelled.
// The ticker is stopped before Run returns.
func (s *Server) Run(ctx context.Context) {
	interval := s.cfg.TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Debug("tick driver started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.log.Debug("tick driver stopped", zap.Uint64("tick", s.tick))
			return
		case <-ticker.C:
			frameStart := time.Now()
			s.Step()
			if elapsed := time.Since(frameStart); elapsed > interval {
				s.log.Debug("tick overran its interval",
					zap.Uint64("tick", s.tick),
					zap.Duration("elapsed", elapsed))
			}
		}
	}
}

// Step applies pending commands, advances one tick if a run is active and
// publishes a new snapshot. It must not be called concurrently with Run.
func (s *Server) Step() {
	s.applyCommands()
	if s.phase == PhaseRunning {
		s.advance()
		s.tick++
	}
	s.publish()
}

func (s *Server) enqueue(c command) {
	select {
	case s.commands <- c:
	default:
		s.log.Warn("command queue full, dropping command",
			zap.Stringer("command", c.kind),
			zap.Stringer("key", c.key))
	}
}

// applyCommands drains all pending commands in arrival order.
func (s *Server) applyCommands() {
	for {
		select {
		case c := <-s.commands:
			switch c.kind {
			case cmdPress:
				s.keys.Press(c.key)
			case cmdRelease:
				s.keys.Release(c.key)
			case cmdStart:
				s.start()
			}
		default:
			return
		}
	}
}

func (s *Server) start() {
	if s.phase == PhaseRunning {
		return
	}
	s.registry.Reset(s.cfg)
	s.keys.TakeFire() // a shot pressed on the title screen does not carry over
	s.phase = PhaseRunning
	s.runID = uuid.NewString()
	s.tick = 0
	s.log.Info("run started",
		zap.String("run_id", s.runID),
		zap.Float64("ship_x", s.registry.Ship.X),
		zap.Float64("ship_y", s.registry.Ship.Y))
}

// advance runs one tick. Every stage takes the previous stage's collections
// and returns new ones.
func (s *Server) advance() {
	reg := s.registry

	if m, ok := s.spawner.TrySpawnMissile(s.keys.TakeFire(), reg.Ship, &reg.missileIDs); ok {
		reg.Missiles = append(reg.Missiles, m)
	}

	reg.Ship = object.MoveShip(reg.Ship, s.keys.Held(), s.cfg)
	reg.Missiles = object.AdvanceMissiles(reg.Missiles, s.cfg)

	asteroids := object.AdvanceAsteroids(reg.Asteroids, s.cfg)
	if a, ok := s.spawner.TrySpawnAsteroid(&reg.asteroidIDs); ok {
		asteroids = append(asteroids, a)
	}

	res := s.resolver.Resolve(asteroids, reg.Missiles)
	reg.Asteroids = res.Asteroids
	reg.Missiles = res.Missiles

	particles := reg.Particles
	for _, hit := range res.Hits {
		reg.Score += s.cfg.HitReward
		reg.Destroyed++
		particles = append(particles, s.emitter.Emit(hit.X, hit.Y, &reg.particleIDs)...)
	}
	reg.Particles = object.AdvanceParticles(particles, s.cfg)
}

func (s *Server) publish() {
	snap := s.registry.snapshot()
	snap.Phase = s.phase
	snap.RunID = s.runID
	snap.Tick = s.tick
	snap.Width = s.cfg.Width
	snap.Height = s.cfg.Height
	s.snapshot.Store(snap)
}
