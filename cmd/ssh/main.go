package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tomz197/spacedefender/internal/config"
	"github.com/tomz197/spacedefender/internal/draw"
	"github.com/tomz197/spacedefender/internal/loop/client"
	"github.com/tomz197/spacedefender/internal/loop/server"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		log.Warn("failed to get working directory", zap.Error(workErr))
	}
	log.Info("ssh config",
		zap.String("host", cfg.SSH.Host),
		zap.String("port", cfg.SSH.Port),
		zap.String("host_key_path", cfg.SSH.HostKeyPath),
		zap.String("working_dir", workingDir))

	// Sessions end with this context so shutdown stops every game.
	sessionsCtx, stopSessions := context.WithCancel(context.Background())
	defer stopSessions()
	var sessions sync.WaitGroup

	games := &gameHandler{
		cfg:      cfg,
		log:      log,
		ctx:      sessionsCtx,
		sessions: &sessions,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(zap.NewStdLog(log.Named("ssh"))),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("failed to create server", zap.Error(err))
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting ssh server", zap.String("addr", s.Addr))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-done
	log.Info("shutting down server")

	stopSessions()
	waitTimeout(&sessions, 5*time.Second, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", zap.Error(err))
	}
}

// gameHandler gives every SSH session its own simulation.
type gameHandler struct {
	cfg      *config.Config
	log      *zap.Logger
	ctx      context.Context
	sessions *sync.WaitGroup
}

// middleware runs one game per session.
func (g *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		g.sessions.Add(1)
		defer g.sessions.Done()

		log := g.log.With(
			zap.String("session", uuid.NewString()),
			zap.String("user", sess.User()),
			zap.String("remote", sess.RemoteAddr().String()))
		log.Info("new game session",
			zap.String("terminal", pty.Term),
			zap.Int("width", pty.Window.Width),
			zap.Int("height", pty.Window.Height))

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(g.ctx)
		defer cancel()
		go func() {
			select {
			case <-sess.Context().Done():
				cancel()
			case <-ctx.Done():
			}
		}()

		gs := server.NewServer(g.cfg.Game, server.Options{Logger: log})
		serverDone := make(chan struct{})
		go func() {
			defer close(serverDone)
			gs.Run(ctx)
		}()

		c := client.NewClient(gs, bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Logger:       log,
			HoldDuration: g.cfg.Input.HoldDuration,
		})
		if err := c.Run(ctx); err != nil {
			log.Warn("game error", zap.Error(err))
		}
		cancel()
		<-serverDone

		snap := gs.Snapshot()
		log.Info("session ended",
			zap.String("run_id", snap.RunID),
			zap.Int("score", snap.Score),
			zap.Int("destroyed", snap.Destroyed))
		next(sess)
	}
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration, log *zap.Logger) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		log.Warn("sessions still open after shutdown timeout", zap.Duration("timeout", timeout))
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
