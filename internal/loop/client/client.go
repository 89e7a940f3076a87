package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/spacedefender/internal/draw"
	"github.com/tomz197/spacedefender/internal/input"
	"github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/loop/server"
)

// Client handles rendering and input for a single terminal connection.
type Client struct {
	server       server.GameServer
	log          *zap.Logger
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates the frame for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	settings     config.Settings
	stars        []Star
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *zap.Logger
	HoldDuration time.Duration // Synthetic key release delay; 0 uses the input default
}

// NewClient creates a client drawing gs onto w and reading keys from r.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	settings := gs.Settings()
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(
		termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight, settings.Width, settings.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       gs,
		log:          log,
		state:        NewClientState(time.Now()),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r, opts.HoldDuration),
		termSizeFunc: termSizeFunc,
		settings:     settings,
		stars:        NewStarfield(settings.Width, settings.Height, StarCount, time.Now().UnixNano()),
	}
}

// Run starts the client loop. Blocks until the player quits, the input
// closes, the connection goes idle for too long or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	for c.state.Running {
		frameStart := time.Now()

		select {
		case <-ctx.Done():
			c.state.Running = false
			continue
		default:
		}

		if err := c.frame(frameStart); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	for _, ev := range c.inputStream.ReleaseAll() {
		c.server.Release(ev.Key)
	}
	c.inputStream.Close()
	draw.ClearScreen(c.writer)
	return nil
}

// frame runs one Input → Update → Draw pass.
func (c *Client) frame(now time.Time) error {
	c.processInput(now)
	c.updateScreen()
	return c.drawFrame(now)
}

// processInput decodes pending bytes and forwards them to the server.
func (c *Client) processInput(now time.Time) {
	c.state.Input = c.inputStream.Poll(now)
	frame := c.state.Input

	idle := now.Sub(c.state.lastInput).Seconds()
	switch {
	case frame.Active:
		c.state.lastInput = now
		c.state.isInactive = false
	case idle > config.InactivityDisconnectUser:
		c.log.Info("disconnecting idle client", zap.Float64("idle_seconds", idle))
		c.state.Running = false
	case idle > config.InactivityWarnUser:
		c.state.isInactive = true
	}

	if frame.Quit {
		c.state.Running = false
	}

	for _, ev := range frame.Events {
		switch ev.Type {
		case input.Press:
			c.server.Press(ev.Key)
		case input.Release:
			c.server.Release(ev.Key)
		}
	}

	// Queued after the key events so a confirming space is not also a shot.
	if frame.Confirm && !c.server.Snapshot().Running() {
		c.server.Start()
	}
}

// updateScreen handles terminal resize, clamping to the max render
// resolution. An actual size change clears the terminal so nothing from the
// old layout lingers.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(
		termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}
