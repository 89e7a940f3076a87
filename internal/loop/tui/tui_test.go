package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap/zaptest"

	"github.com/tomz197/spacedefender/internal/input"
	"github.com/tomz197/spacedefender/internal/loop/client"
	"github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/loop/server"
	"github.com/tomz197/spacedefender/internal/object"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(120, 40)
	t.Cleanup(s.Fini)
	return s
}

func newGame(t *testing.T) *server.Server {
	return server.NewServer(config.Default(), server.Options{
		Logger: zaptest.NewLogger(t),
		Rand:   object.NewRand(1),
	})
}

// row returns the text of one screen row.
func row(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(runes[0])
	}
	return b.String()
}

func screenText(s tcell.SimulationScreen) string {
	_, _, h := s.GetContents()
	var b strings.Builder
	for y := 0; y < h; y++ {
		b.WriteString(row(s, y))
		b.WriteByte('\n')
	}
	return b.String()
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestStartScreen(t *testing.T) {
	screen := newScreen(t)
	app := New(newGame(t), screen, Options{})

	app.frame(time.UnixMilli(0))
	text := screenText(screen)
	for _, want := range []string{"Controls", client.ControlLines[0], client.StartPrompt} {
		if !strings.Contains(text, want) {
			t.Errorf("start screen missing %q", want)
		}
	}
}

func TestSpaceStartsAndFires(t *testing.T) {
	screen := newScreen(t)
	game := newGame(t)
	app := New(game, screen, Options{})

	app.handleEvent(key(tcell.KeyRune, ' '), time.Now())
	game.Step()
	snap := game.Snapshot()
	if !snap.Running() {
		t.Fatal("space did not start the game")
	}
	if len(snap.Missiles) != 0 {
		t.Error("the starting space press must not fire")
	}

	app.frame(time.Now())
	if got := row(screen, 0); !strings.Contains(got, "Score: 0") || !strings.Contains(got, "Destroyed: 0") {
		t.Errorf("HUD row = %q", got)
	}
}

func TestArrowKeysMoveShip(t *testing.T) {
	screen := newScreen(t)
	game := newGame(t)
	app := New(game, screen, Options{HoldDuration: time.Hour})

	app.handleEvent(key(tcell.KeyEnter, 0), time.Now())
	app.handleEvent(key(tcell.KeyRight, 0), time.Now())
	for i := 0; i < 5; i++ {
		game.Step()
	}
	if x := game.Snapshot().Ship.X; x != 440 {
		t.Errorf("ship x = %v, want 440", x)
	}
}

// recorder is a GameServer that logs commands.
type recorder struct {
	calls []string
	snap  server.Snapshot
}

func (r *recorder) Start() { r.calls = append(r.calls, "start") }
func (r *recorder) Press(k input.Key) { r.calls = append(r.calls, "press "+k.String()) }
func (r *recorder) Release(k input.Key) { r.calls = append(r.calls, "release "+k.String()) }
func (r *recorder) Snapshot() *server.Snapshot { return &r.snap }
func (r *recorder) Settings() config.Settings { return config.Default() }

func TestHeldKeyReleasedAfterHoldWindow(t *testing.T) {
	rec := &recorder{snap: server.Snapshot{Phase: server.PhaseRunning}}
	app := New(rec, newScreen(t), Options{HoldDuration: 100 * time.Millisecond})

	t0 := time.Now()
	app.handleEvent(key(tcell.KeyRune, 'a'), t0)
	app.handleEvent(key(tcell.KeyRune, 'a'), t0.Add(50*time.Millisecond)) // auto-repeat
	app.frame(t0.Add(120 * time.Millisecond))
	if len(rec.calls) != 1 {
		t.Fatalf("calls = %v, repeat should keep the key held", rec.calls)
	}

	app.frame(t0.Add(151 * time.Millisecond))
	if len(rec.calls) != 2 || rec.calls[1] != "release left" {
		t.Errorf("calls = %v, want press then release", rec.calls)
	}
}

func TestRunesUseParseKey(t *testing.T) {
	screen := newScreen(t)
	for r := rune(0x20); r < 0x7f; r++ {
		if r == 'q' || r == 'Q' {
			continue
		}
		rec := &recorder{snap: server.Snapshot{Phase: server.PhaseRunning}}
		app := New(rec, screen, Options{})
		app.handleEvent(key(tcell.KeyRune, r), time.Now())

		k, ok := input.ParseKey(string(r))
		switch {
		case ok && (len(rec.calls) != 1 || rec.calls[0] != "press "+k.String()):
			t.Errorf("rune %q: calls = %v, want press %v", r, rec.calls, k)
		case !ok && len(rec.calls) != 0:
			t.Errorf("rune %q: calls = %v, want none", r, rec.calls)
		}
	}
}

func TestArrowKeysUseParseKey(t *testing.T) {
	tests := []struct {
		key tcell.Key
		id  string
	}{
		{tcell.KeyLeft, input.IDArrowLeft},
		{tcell.KeyRight, input.IDArrowRight},
	}
	for _, tt := range tests {
		rec := &recorder{snap: server.Snapshot{Phase: server.PhaseRunning}}
		app := New(rec, newScreen(t), Options{})
		app.handleEvent(key(tt.key, 0), time.Now())

		want, _ := input.ParseKey(tt.id)
		if len(rec.calls) != 1 || rec.calls[0] != "press "+want.String() {
			t.Errorf("%s: calls = %v, want press %v", tt.id, rec.calls, want)
		}
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{"q", key(tcell.KeyRune, 'q')},
		{"escape", key(tcell.KeyEscape, 0)},
		{"ctrl-c", key(tcell.KeyCtrlC, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := New(&recorder{}, newScreen(t), Options{})
			app.handleEvent(tt.ev, time.Now())
			if app.running {
				t.Error("app still running")
			}
		})
	}
}

func TestRunExitsOnInjectedQuit(t *testing.T) {
	screen := newScreen(t)
	rec := &recorder{}
	app := New(rec, screen, Options{HoldDuration: time.Hour})

	screen.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not exit on q")
	}
	if n := len(rec.calls); n < 2 || rec.calls[n-1] != "release left" {
		t.Errorf("calls = %v, want the held key released on exit", rec.calls)
	}
}
