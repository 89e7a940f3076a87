package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/spacedefender/internal/config"
	"github.com/tomz197/spacedefender/internal/loop"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.Options{
		Settings:     cfg.Game,
		Logger:       log,
		HoldDuration: cfg.Input.HoldDuration,
	}
	if cfg.Input.UI == config.UITCell {
		err = runTCell(ctx, opts)
	} else {
		err = runANSI(ctx, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger only logs to files; the terminal belongs to the game.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	switch cfg.Output {
	case "", "stderr", "stdout":
		return zap.NewNop(), nil
	}
	return config.NewLogger(cfg)
}

func runANSI(ctx context.Context, opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	return loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, opts)
}

func runTCell(ctx context.Context, opts loop.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	return loop.RunTCell(ctx, screen, opts)
}
