// Package input tracks held game controls and turns raw terminal bytes into
// press/release events.
package input

import (
	"bufio"
	"sync"
	"time"
)

// DefaultHoldDuration is how long a key counts as held after its last byte.
// Terminals only report presses (and auto-repeat), never releases.
//
// The window covers the auto-repeat interval but not the initial repeat
// delay (typically 250-500ms). A key held through that delay is released and
// pressed again, so holding space fires a second missile when repeat kicks
// in. Raise input.hold_duration to trade that for slower release of
// movement keys and merged rapid fire taps.
const DefaultHoldDuration = 100 * time.Millisecond

// EventType distinguishes presses from releases.
type EventType int

const (
	Press EventType = iota
	Release
)

// Event is a single press or release of a control.
type Event struct {
	Type EventType
	Key  Key
}

// Frame is everything decoded from one poll.
type Frame struct {
	Events  []Event
	Quit    bool // q, Ctrl-C, or the input stream closed
	Confirm bool // Enter or Space
	Active  bool // At least one byte arrived
}

// trackedKeys fixes the order in which releases are reported.
var trackedKeys = [...]Key{KeyLeft, KeyRight, KeyFire}

// Decoder synthesizes press/release events from a stream of key bytes using
// a hold window.
type Decoder struct {
	hold     time.Duration
	lastSeen map[Key]time.Time
}

// NewDecoder creates a decoder. A non-positive hold uses DefaultHoldDuration.
func NewDecoder(hold time.Duration) *Decoder {
	if hold <= 0 {
		hold = DefaultHoldDuration
	}
	return &Decoder{
		hold:     hold,
		lastSeen: make(map[Key]time.Time, len(trackedKeys)),
	}
}

// Seen records that k was observed at now. It returns a press event when k
// was not already held.
func (d *Decoder) Seen(k Key, now time.Time) (Event, bool) {
	_, held := d.lastSeen[k]
	d.lastSeen[k] = now
	if held {
		return Event{}, false
	}
	return Event{Type: Press, Key: k}, true
}

// Expire releases every key not seen within the hold window.
func (d *Decoder) Expire(now time.Time) []Event {
	var events []Event
	for _, k := range trackedKeys {
		last, held := d.lastSeen[k]
		if held && now.Sub(last) >= d.hold {
			delete(d.lastSeen, k)
			events = append(events, Event{Type: Release, Key: k})
		}
	}
	return events
}

// ReleaseAll releases every held key.
func (d *Decoder) ReleaseAll() []Event {
	var events []Event
	for _, k := range trackedKeys {
		if _, held := d.lastSeen[k]; held {
			delete(d.lastSeen, k)
			events = append(events, Event{Type: Release, Key: k})
		}
	}
	return events
}

// Decode parses buf, which holds every byte received since the previous call.
// Arrow keys arrive as CSI sequences (ESC [ C / ESC [ D).
func (d *Decoder) Decode(buf []byte, now time.Time) Frame {
	frame := Frame{Active: len(buf) > 0}

	press := func(k Key) {
		if ev, ok := d.Seen(k, now); ok {
			frame.Events = append(frame.Events, ev)
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if id, ok := arrowID(buf[i+2]); ok {
				if k, ok := ParseKey(id); ok {
					press(k)
				}
				i += 2
				continue
			}
		}

		if k, ok := ParseKey(string(rune(b))); ok {
			press(k)
			if k == KeyFire {
				frame.Confirm = true
			}
			continue
		}

		switch b {
		case '\r', '\n':
			frame.Confirm = true
		case 'q', 'Q', '\x03':
			frame.Quit = true
		}
	}

	frame.Events = append(frame.Events, d.Expire(now)...)
	return frame
}

// arrowID names the arrow key in a CSI sequence. Up and down are consumed but
// have no identifier.
func arrowID(final byte) (string, bool) {
	switch final {
	case 'C':
		return IDArrowRight, true
	case 'D':
		return IDArrowLeft, true
	case 'A', 'B':
		return "", true
	}
	return "", false
}

// Stream delivers input bytes from a reader through a channel so they can be
// drained without blocking the frame loop.
type Stream struct {
	ch      chan byte
	decoder *Decoder
	closed  bool

	done      chan struct{}
	closeOnce sync.Once
	stopped   chan struct{} // closed when the reader goroutine returns
}

// StartStream spawns a goroutine that reads from r until it fails or the
// stream is closed.
func StartStream(r *bufio.Reader, hold time.Duration) *Stream {
	s := &Stream{
		ch:      make(chan byte, 128),
		decoder: NewDecoder(hold),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go func() {
		defer close(s.stopped)
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Close stops delivering bytes. A reader goroutine blocked in ReadByte exits
// after its next byte or error.
func (s *Stream) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Poll drains all available bytes (non-blocking) and decodes them.
func (s *Stream) Poll(now time.Time) Frame {
	var buf []byte
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	frame := s.decoder.Decode(buf, now)
	if s.closed {
		frame.Quit = true
	}
	return frame
}

// ReleaseAll releases every key the stream considers held.
func (s *Stream) ReleaseAll() []Event {
	return s.decoder.ReleaseAll()
}
