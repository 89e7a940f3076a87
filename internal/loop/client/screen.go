package client

import (
	"time"

	"github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/loop/server"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame(now time.Time) error {
	snap := c.server.Snapshot()

	// On run start or inactivity transitions, do a full terminal clear so
	// overlay text from the previous screen doesn't persist.
	if snap.Running() != c.state.wasRunning || c.state.isInactive != c.state.wasInactive {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.wasRunning = snap.Running()
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	DrawWorld(c.canvas, snap, c.settings, c.stars)

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI(snap, now)

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay.
func (c *Client) drawUI(snap *server.Snapshot, now time.Time) {
	centerX := c.canvas.TerminalWidth() / 2
	centerY := c.canvas.TerminalHeight() / 2

	switch {
	case c.state.isInactive:
		remaining := int(config.InactivityDisconnectUser - now.Sub(c.state.lastInput).Seconds())
		c.writeCentered(centerX, centerY-2, InactivityLines(remaining))
	case snap.Running():
		c.drawPlayingHUD(snap)
	default:
		c.drawStartScreen(centerX, centerY, now)
	}
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int, now time.Time) {
	titleStartY := centerY - 9
	c.writeBlock(centerX-ArtWidth(TitleArt)/2, titleStartY, TitleArt)

	subtitleY := titleStartY + len(TitleArt) + 1
	c.writeCentered(centerX, subtitleY, []string{Subtitle})

	controlsY := subtitleY + 2
	c.writeCentered(centerX, controlsY, []string{"Controls"})
	c.writeCentered(centerX, controlsY+1, ControlLines)

	promptY := controlsY + len(ControlLines) + 2
	if PromptVisible(now) {
		c.writeCentered(centerX, promptY, []string{StartPrompt})
	}
}

// drawPlayingHUD draws the score (top left) and the destroyed count (top
// right).
func (c *Client) drawPlayingHUD(snap *server.Snapshot) {
	score := ScoreText(snap)
	c.writeText(2, 1, score)

	destroyed := DestroyedText(snap)
	c.writeText(c.canvas.TerminalWidth()-len(destroyed)-1, 1, destroyed)
}

// writeText writes s at the 1-based canvas position and marks the cells so
// the canvas repaints them once the text is gone.
func (c *Client) writeText(col, row int, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	col = max(col, 1)
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, len([]rune(s)))
}

// writeBlock writes lines left-aligned at col.
func (c *Client) writeBlock(col, row int, lines []string) {
	for i, line := range lines {
		c.writeText(col, row+i, line)
	}
}

// writeCentered writes each line centred on centerX.
func (c *Client) writeCentered(centerX, row int, lines []string) {
	for i, line := range lines {
		c.writeText(centerX-len(line)/2, row+i, line)
	}
}
