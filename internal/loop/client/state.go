package client

import (
	"time"

	"github.com/tomz197/spacedefender/internal/input"
)

// ClientState holds per-connection view state. The world itself lives in the
// server snapshots.
type ClientState struct {
	Input      input.Frame // Last decoded input frame
	Running    bool        // Client loop running
	lastInput  time.Time   // Last time any byte arrived
	isInactive bool        // Inactivity warning shown

	// Previous frame's values, for detecting transitions that need a full clear.
	wasRunning  bool
	wasInactive bool
}

// NewClientState creates a new initialized client state.
func NewClientState(now time.Time) *ClientState {
	return &ClientState{
		Running:   true,
		lastInput: now,
	}
}
