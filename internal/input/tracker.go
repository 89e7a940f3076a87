package input

// Key is a game control.
type Key int

const (
	KeyLeft Key = iota + 1
	KeyRight
	KeyFire
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyFire:
		return "fire"
	default:
		return "unknown"
	}
}

// Arrow key identifiers. Hosts that decode arrows themselves pass these to
// ParseKey; printable keys are passed as their one-character string.
const (
	IDArrowLeft  = "ArrowLeft"
	IDArrowRight = "ArrowRight"
)

// ParseKey maps a host key identifier to a control. It is the only key map:
// every frontend resolves its keys through it.
// Unrecognized identifiers report false and should be ignored.
func ParseKey(id string) (Key, bool) {
	switch id {
	case IDArrowLeft, "a", "A", "h", "H":
		return KeyLeft, true
	case IDArrowRight, "d", "D", "l", "L":
		return KeyRight, true
	case " ", "Space", "space":
		return KeyFire, true
	}
	return 0, false
}

// Held is a read-only view of the held controls.
type Held struct {
	Left  bool
	Right bool
	Fire  bool
}

// Tracker keeps the set of held controls and the pending fire edge.
type Tracker struct {
	held  map[Key]struct{}
	fired bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{held: make(map[Key]struct{}, 3)}
}

// Press marks k as held. Pressing an already held key changes nothing; a
// fresh press of KeyFire latches a fire edge.
func (t *Tracker) Press(k Key) {
	if _, ok := t.held[k]; ok {
		return
	}
	t.held[k] = struct{}{}
	if k == KeyFire {
		t.fired = true
	}
}

// Release removes k from the held set. Releasing a key that is not held is a no-op.
func (t *Tracker) Release(k Key) {
	delete(t.held, k)
}

// TakeFire reports whether a fire edge happened since the last call and clears it.
func (t *Tracker) TakeFire() bool {
	fired := t.fired
	t.fired = false
	return fired
}

// IsHeld reports whether k is currently held.
func (t *Tracker) IsHeld(k Key) bool {
	_, ok := t.held[k]
	return ok
}

// Held returns the current held state.
func (t *Tracker) Held() Held {
	return Held{
		Left:  t.IsHeld(KeyLeft),
		Right: t.IsHeld(KeyRight),
		Fire:  t.IsHeld(KeyFire),
	}
}
