package delegate

import "time"

// Outcome is the result of one wrapped-handler run.
type Outcome uint8

const (
	// OutcomeInvoked means the user handler ran.
	OutcomeInvoked Outcome = iota
	// OutcomeNoMatch means a delegated listener found no matching node.
	OutcomeNoMatch
	// OutcomeFailed means matching or invocation returned an error.
	OutcomeFailed
)

// String returns the string representation of the Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeInvoked:
		return "invoked"
	case OutcomeNoMatch:
		return "no_match"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Dispatch describes one wrapped-handler run.
type Dispatch struct {
	EventName string
	Selector  string
	Outcome   Outcome
	Start     time.Time
	Duration  time.Duration
	Err       error
}

// Observer receives registry changes and dispatch results. Observers run
// synchronously on the dispatching goroutine.
type Observer interface {
	ListenerAdded(eventName, selector string)
	ListenerRemoved(eventName, selector string)
	Dispatched(d Dispatch)
}
