package dom

// Phase is the event dispatch phase.
type Phase uint8

const (
	PhaseNone      Phase = iota // not being dispatched
	PhaseCapturing              // travelling from the root to the target
	PhaseAtTarget               // at the target itself
	PhaseBubbling               // travelling from the target back to the root
)

// String returns the string representation of the Phase.
func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseCapturing:
		return "capturing"
	case PhaseAtTarget:
		return "at-target"
	case PhaseBubbling:
		return "bubbling"
	default:
		return "unknown"
	}
}

// Event is a DOM event travelling through a document.
type Event struct {
	Type       string
	Bubbles    bool
	Cancelable bool

	// Detail carries caller data, like CustomEvent.detail.
	Detail any

	// Target is the node the event was dispatched on.
	Target Node

	// CurrentTarget is the node whose listeners are running.
	CurrentTarget Node

	Phase Phase

	defaultPrevented bool
	stopped          bool
	stoppedImmediate bool
}

// NewEvent creates a bubbling, cancelable event of the given type.
func NewEvent(eventType string) *Event {
	return &Event{Type: eventType, Bubbles: true, Cancelable: true}
}

// StopPropagation prevents the event from reaching further nodes. Listeners
// on the current node still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// StopImmediatePropagation also skips the remaining listeners on the
// current node.
func (e *Event) StopImmediatePropagation() {
	e.stopped = true
	e.stoppedImmediate = true
}

// PreventDefault cancels the event if it is cancelable.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault was called on a
// cancelable event.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Listener is a native event callback. Listeners are compared by pointer,
// so the same function wrapped twice yields two distinct listeners.
type Listener struct {
	fn func(*Event) error
}

// NewListener wraps fn as a Listener.
func NewListener(fn func(*Event) error) *Listener {
	return &Listener{fn: fn}
}

// Handle runs the listener.
func (l *Listener) Handle(ev *Event) error {
	if l == nil || l.fn == nil {
		return nil
	}
	return l.fn(ev)
}

type registration struct {
	listener *Listener
	capture  bool
}
