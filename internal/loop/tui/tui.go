// Package tui is a tcell frontend for the local game. It shares the scene
// rasterizer with the ANSI client and writes the cells through a tcell.Screen.
package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/tomz197/spacedefender/internal/draw"
	"github.com/tomz197/spacedefender/internal/input"
	"github.com/tomz197/spacedefender/internal/loop/client"
	"github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/loop/server"
)

// Options configures an App.
type Options struct {
	Logger       *zap.Logger
	HoldDuration time.Duration // Synthetic key release delay; 0 uses the input default
}

// App drives one game on a tcell screen. The caller owns the screen's
// Init and Fini.
type App struct {
	server   server.GameServer
	screen   tcell.Screen
	log      *zap.Logger
	decoder  *input.Decoder
	canvas   *draw.Canvas
	settings config.Settings
	stars    []client.Star
	running  bool
}

// New creates an App rendering gs onto screen.
func New(gs server.GameServer, screen tcell.Screen, opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	settings := gs.Settings()
	w, h := screen.Size()
	return &App{
		server:   gs,
		screen:   screen,
		log:      log,
		decoder:  input.NewDecoder(opts.HoldDuration),
		canvas:   draw.NewCanvas(w, h, settings.Width, settings.Height),
		settings: settings,
		stars:    client.NewStarfield(settings.Width, settings.Height, client.StarCount, time.Now().UnixNano()),
		running:  true,
	}
}

// Run processes screen events and redraws at the client frame rate until the
// player quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go a.screen.ChannelEvents(events, quit)
	defer close(quit)

	a.screen.HideCursor()
	ticker := time.NewTicker(config.ClientTargetFrameTime)
	defer ticker.Stop()

	for a.running {
		select {
		case <-ctx.Done():
			a.running = false
		case ev, ok := <-events:
			if !ok {
				a.running = false
				break
			}
			a.handleEvent(ev, time.Now())
		case now := <-ticker.C:
			a.frame(now)
		}
	}

	for _, ev := range a.decoder.ReleaseAll() {
		a.server.Release(ev.Key)
	}
	a.log.Debug("tcell frontend stopped")
	return nil
}

// handleEvent maps tcell keys onto game controls.
func (a *App) handleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyLeft:
			a.press(input.IDArrowLeft, now)
		case tcell.KeyRight:
			a.press(input.IDArrowRight, now)
		case tcell.KeyEnter:
			a.confirm()
		case tcell.KeyCtrlC, tcell.KeyEscape:
			a.running = false
		case tcell.KeyRune:
			switch r := ev.Rune(); r {
			case 'q', 'Q':
				a.running = false
			default:
				if k, ok := a.press(string(r), now); ok && k == input.KeyFire {
					a.confirm()
				}
			}
		}
	}
}

// press resolves a key identifier and forwards a fresh press to the server.
func (a *App) press(id string, now time.Time) (input.Key, bool) {
	k, ok := input.ParseKey(id)
	if !ok {
		return 0, false
	}
	if ev, fresh := a.decoder.Seen(k, now); fresh {
		a.server.Press(ev.Key)
	}
	return k, true
}

func (a *App) confirm() {
	if !a.server.Snapshot().Running() {
		a.server.Start()
	}
}

// frame releases expired keys and redraws the screen.
func (a *App) frame(now time.Time) {
	for _, ev := range a.decoder.Expire(now) {
		a.server.Release(ev.Key)
	}

	snap := a.server.Snapshot()
	w, h := a.screen.Size()
	a.canvas.Resize(w, h)
	a.canvas.Clear()
	client.DrawWorld(a.canvas, snap, a.settings, a.stars)

	a.screen.Clear()
	a.canvas.EachCell(func(col, row int, ch rune, color draw.Color) {
		a.screen.SetContent(col, row, ch, nil, styleFor(color))
	})

	if snap.Running() {
		a.drawHUD(snap, w)
	} else {
		a.drawStartScreen(w, h, now)
	}
	a.screen.Show()
}

func (a *App) drawHUD(snap *server.Snapshot, width int) {
	a.puts(1, 0, client.ScoreText(snap), hudStyle)
	destroyed := client.DestroyedText(snap)
	a.puts(width-len(destroyed)-1, 0, destroyed, hudStyle)
}

func (a *App) drawStartScreen(width, height int, now time.Time) {
	centerX, centerY := width/2, height/2
	y := centerY - 9
	left := centerX - client.ArtWidth(client.TitleArt)/2
	for _, line := range client.TitleArt {
		a.puts(left, y, line, titleStyle)
		y++
	}

	y++
	a.putsCentered(centerX, y, client.Subtitle, textStyle)
	y += 2
	a.putsCentered(centerX, y, "Controls", textStyle)
	for _, line := range client.ControlLines {
		y++
		a.putsCentered(centerX, y, line, textStyle)
	}
	if client.PromptVisible(now) {
		a.putsCentered(centerX, y+2, client.StartPrompt, titleStyle)
	}
}

func (a *App) putsCentered(centerX, y int, s string, style tcell.Style) {
	a.puts(centerX-len(s)/2, y, s, style)
}

func (a *App) puts(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

var (
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	hudStyle   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
)

func styleFor(c draw.Color) tcell.Style {
	switch c {
	case draw.ColorCyan:
		return tcell.StyleDefault.Foreground(tcell.ColorAqua)
	case draw.ColorMagenta:
		return tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	case draw.ColorOrange:
		return tcell.StyleDefault.Foreground(tcell.ColorOrange)
	case draw.ColorGray:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
}
