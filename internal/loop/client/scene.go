package client

import (
	"fmt"
	"time"

	"github.com/tomz197/spacedefender/internal/draw"
	"github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/loop/server"
	"github.com/tomz197/spacedefender/internal/object"
)

// StarCount is the size of the default starfield.
const StarCount = 70

// Star is a fixed background point.
type Star struct {
	X, Y   float64
	Bright bool
}

// NewStarfield scatters n stars over the playfield.
func NewStarfield(width, height float64, n int, seed int64) []Star {
	rng := object.NewRand(seed)
	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{
			X:      rng.Float64() * width,
			Y:      rng.Float64() * height,
			Bright: rng.Float64() < 0.3,
		}
	}
	return stars
}

// fadeLife is the particle life at which explosion fragments change color.
const fadeLife = 0.5

// DrawWorld rasterizes a snapshot onto canvas. The ship and projectiles only
// exist during a run; the starfield is always drawn.
func DrawWorld(canvas *draw.Canvas, snap *server.Snapshot, cfg config.Settings, stars []Star) {
	for _, s := range stars {
		color := draw.ColorGray
		if s.Bright {
			color = draw.ColorWhite
		}
		canvas.Plot(s.X, s.Y, color)
	}

	if !snap.Running() {
		return
	}

	for _, a := range snap.Asteroids {
		canvas.FillCircle(a.X, a.Y, cfg.AsteroidSize/2, draw.ColorOrange)
	}
	for _, m := range snap.Missiles {
		// Missiles hang down from their position.
		canvas.Polygon(draw.Rect(m.X-cfg.MissileWidth/2, m.Y, cfg.MissileWidth, cfg.MissileHeight), draw.ColorMagenta, true)
	}
	canvas.Polygon(draw.ShipOutline(snap.Ship.X, snap.Ship.Y, cfg.ShipSize), draw.ColorCyan, true)
	for _, p := range snap.Particles {
		color := draw.ColorCyan
		if p.Life <= fadeLife {
			color = draw.ColorMagenta
		}
		canvas.Plot(p.X, p.Y, color)
	}
}

// TitleArt is the start screen banner (figlet "small" font).
var TitleArt = []string{
	`  ___ ___  _   ___ ___  `,
	` / __| _ \/_\ / __| __| `,
	` \__ \  _/ _ \ (__| _|  `,
	` |___/_|/_/ \_\___|___| `,
	`  ___  ___ ___ ___ _  _ ___  ___ ___  `,
	` |   \| __| __| __| \| |   \| __| _ \ `,
	` | |) | _|| _|| _|| .' | |) | _||   / `,
	` |___/|___|_| |___|_|\_|___/|___|_|_\ `,
}

const Subtitle = "~ Hold the line against the asteroid rain ~"

// ControlLines describe the keys on the start screen.
var ControlLines = []string{
	"A D / < >  . . . .  Move",
	"SPACE  . . . . . .  Fire",
	"Q  . . . . . . . .  Quit",
}

const StartPrompt = ">>  Press SPACE to Start  <<"

// PromptVisible blinks the start prompt.
func PromptVisible(now time.Time) bool {
	return now.UnixMilli()/600%2 == 0
}

// ScoreText and DestroyedText are padded so a shrinking value leaves no
// residue on screen.
func ScoreText(snap *server.Snapshot) string {
	return fmt.Sprintf("Score: %-8d", snap.Score)
}

func DestroyedText(snap *server.Snapshot) string {
	return fmt.Sprintf("Destroyed: %-6d", snap.Destroyed)
}

// InactivityLines is the idle warning with the seconds left before disconnect.
func InactivityLines(remaining int) []string {
	return []string{
		"INACTIVITY WARNING",
		"",
		fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.", remaining),
		"",
		"Press any key to continue",
	}
}

// ArtWidth returns the width of the widest line.
func ArtWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	return w
}
