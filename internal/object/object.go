// Package object defines the game entities and the per-tick rules that move,
// spawn and cull them.
package object

import (
	"math/rand"
	"time"
)

// Rand is the random source used by spawners and emitters.
// *rand.Rand satisfies it; tests inject fixed sequences.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewRand returns a seeded random source. A zero seed uses the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// IDCounter hands out monotonically increasing ids for one entity kind.
// Freed ids are never handed out again.
type IDCounter struct {
	next int
}

// Next returns a fresh id.
func (c *IDCounter) Next() int {
	id := c.next
	c.next++
	return id
}

// Reserve returns the first id of a block of n consecutive fresh ids.
func (c *IDCounter) Reserve(n int) int {
	first := c.next
	if n > 0 {
		c.next += n
	}
	return first
}
