package object

import (
	"math"

	"github.com/tomz197/spacedefender/internal/input"
	"github.com/tomz197/spacedefender/internal/loop/config"
)

// Ship is the player-controlled ship. Only its x coordinate ever changes.
type Ship struct {
	X, Y float64 // Position (center of ship)
}

// NewShip creates a ship centred at the bottom of the playfield.
func NewShip(cfg config.Settings) Ship {
	x, y := cfg.ShipStart()
	return Ship{X: x, Y: y}
}

// MoveShip applies one tick of horizontal movement for the held keys.
//
// Both adjustments start from the same previous x: left is applied and
// clamped first, then right overwrites it. Holding both keys therefore moves
// the ship right.
func MoveShip(s Ship, held input.Held, cfg config.Settings) Ship {
	half := cfg.HalfShip()
	x := s.X
	if held.Left {
		x = math.Max(half, s.X-cfg.ShipSpeed)
	}
	if held.Right {
		x = math.Min(cfg.Width-half, s.X+cfg.ShipSpeed)
	}
	s.X = x
	return s
}
