// Package loop wires a simulation to a local frontend.
package loop

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/tomz197/spacedefender/internal/draw"
	"github.com/tomz197/spacedefender/internal/loop/client"
	"github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/loop/server"
	"github.com/tomz197/spacedefender/internal/loop/tui"
)

// Options configures a local game.
type Options struct {
	Settings     config.Settings
	Logger       *zap.Logger
	HoldDuration time.Duration
	TermSizeFunc draw.TermSizeFunc // ANSI frontend only; nil reads stdout
}

// Run plays one simulation on an ANSI terminal until the player quits or ctx
// is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	return withServer(ctx, opts, func(ctx context.Context, srv *server.Server) error {
		c := client.NewClient(srv, r, w, client.ClientOptions{
			TermSizeFunc: opts.TermSizeFunc,
			Logger:       opts.Logger,
			HoldDuration: opts.HoldDuration,
		})
		return c.Run(ctx)
	})
}

// RunTCell plays one simulation on an initialized tcell screen.
func RunTCell(ctx context.Context, screen tcell.Screen, opts Options) error {
	return withServer(ctx, opts, func(ctx context.Context, srv *server.Server) error {
		app := tui.New(srv, screen, tui.Options{
			Logger:       opts.Logger,
			HoldDuration: opts.HoldDuration,
		})
		return app.Run(ctx)
	})
}

// withServer runs the tick driver for as long as frontend runs and waits for
// it to stop before returning.
func withServer(ctx context.Context, opts Options, frontend func(context.Context, *server.Server) error) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	srv := server.NewServer(opts.Settings, server.Options{Logger: log})

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		srv.Run(ctx)
	}()

	err := frontend(ctx, srv)
	cancel()
	wg.Wait()

	snap := srv.Snapshot()
	log.Info("game ended",
		zap.String("run_id", snap.RunID),
		zap.Int("score", snap.Score),
		zap.Int("destroyed", snap.Destroyed))
	return err
}
