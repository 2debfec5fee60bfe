package delegate

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/vango-dev/domkit/pkg/dom"
)

// Environment describes the host document's capabilities.
type Environment interface {
	SupportsMatches() bool
}

// Entry is one registration in a node's registry.
type Entry struct {
	EventName string
	Selector  string
	Handler   Handler

	wrapped *dom.Listener
}

// Delegated reports whether the entry was registered with a selector.
func (e Entry) Delegated() bool {
	return e.Selector != ""
}

// Engine owns the listener registries of every node it has bound.
//
// Registration and removal are guarded by a mutex, but dispatch runs on
// whatever goroutine dispatches the event and does not hold it.
//
// The registries hold strong references to their nodes. A bound node that
// is detached and dropped stays reachable until OffAll removes it.
type Engine struct {
	mu         sync.Mutex
	registries map[dom.Node][]Entry

	strategy  Strategy
	match     MatchFunc
	logger    *slog.Logger
	observers []Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrategy forces a matching strategy instead of detecting one.
func WithStrategy(s Strategy) Option {
	return func(e *Engine) {
		e.strategy = s
	}
}

// WithMatcher replaces the matching function entirely.
func WithMatcher(fn MatchFunc) Option {
	return func(e *Engine) {
		e.match = fn
	}
}

// WithLogger sets the logger used for registry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver adds observers for registry changes and dispatches.
func WithObserver(obs ...Observer) Option {
	return func(e *Engine) {
		for _, o := range obs {
			if o != nil {
				e.observers = append(e.observers, o)
			}
		}
	}
}

// New creates an Engine. The matching strategy is resolved here, once:
// StrategyAuto becomes StrategyNative when env supports native matching
// and StrategyFallback otherwise (including a nil env).
func New(env Environment, opts ...Option) *Engine {
	e := &Engine{
		registries: make(map[dom.Node][]Entry),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.strategy == StrategyAuto {
		if env != nil && env.SupportsMatches() {
			e.strategy = StrategyNative
		} else {
			e.strategy = StrategyFallback
		}
	}
	if e.match == nil {
		e.match = e.strategy.matchFunc()
	}
	return e
}

// Strategy returns the resolved matching strategy.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Match runs the engine's matching function.
func (e *Engine) Match(n dom.Node, selector string) (bool, error) {
	return e.match(n, selector)
}

// On registers h for eventName on n and returns n.
//
// With an empty selector the listener is direct and h always sees n as
// "this". Otherwise the listener is delegated: h runs with "this" set to
// the nearest node from the event target up to, but excluding, n that
// matches selector, and does not run when there is none.
func (e *Engine) On(n dom.Node, eventName, selector string, h Handler) dom.Node {
	entry := Entry{EventName: eventName, Selector: selector, Handler: h}
	if selector == "" {
		entry.wrapped = e.direct(n, eventName, h)
	} else {
		entry.wrapped = e.delegated(n, eventName, selector, h)
	}

	e.mu.Lock()
	e.registries[n] = append(e.registries[n], entry)
	size := len(e.registries[n])
	e.mu.Unlock()

	n.AddEventListener(eventName, entry.wrapped, false)

	e.logger.Debug("listener added",
		"event", eventName,
		"selector", selector,
		"registry_size", size,
	)
	for _, o := range e.observers {
		o.ListenerAdded(eventName, selector)
	}
	return n
}

// Off removes the first registration on n whose event name, selector and
// handler all equal the arguments, and returns n. Later duplicates stay
// registered. Nodes without registrations are left alone.
func (e *Engine) Off(n dom.Node, eventName, selector string, h Handler) dom.Node {
	e.mu.Lock()
	entries := e.registries[n]
	idx := slices.IndexFunc(entries, func(en Entry) bool {
		return en.EventName == eventName && en.Selector == selector && en.Handler == h
	})
	if idx < 0 {
		e.mu.Unlock()
		return n
	}
	removed := entries[idx]
	entries = slices.Delete(entries, idx, idx+1)
	if len(entries) == 0 {
		delete(e.registries, n)
	} else {
		e.registries[n] = entries
	}
	e.mu.Unlock()

	n.RemoveEventListener(removed.EventName, removed.wrapped, false)

	e.logger.Debug("listener removed",
		"event", eventName,
		"selector", selector,
		"registry_size", len(entries),
	)
	for _, o := range e.observers {
		o.ListenerRemoved(removed.EventName, removed.Selector)
	}
	return n
}

// OffAll removes every registration on n, in registration order, and
// returns n. It is a no-op for nodes without registrations.
func (e *Engine) OffAll(n dom.Node) dom.Node {
	e.mu.Lock()
	entries := e.registries[n]
	delete(e.registries, n)
	e.mu.Unlock()

	for _, en := range entries {
		n.RemoveEventListener(en.EventName, en.wrapped, false)
		for _, o := range e.observers {
			o.ListenerRemoved(en.EventName, en.Selector)
		}
	}
	if len(entries) > 0 {
		e.logger.Debug("listeners cleared", "count", len(entries))
	}
	return n
}

// Entries returns a copy of n's registry in registration order.
func (e *Engine) Entries(n dom.Node) []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.registries[n])
}

// Len returns the number of registrations on n.
func (e *Engine) Len(n dom.Node) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.registries[n])
}

// Nodes returns the number of nodes with at least one registration.
func (e *Engine) Nodes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.registries)
}

func (e *Engine) direct(scope dom.Node, eventName string, h Handler) *dom.Listener {
	return dom.NewListener(func(ev *dom.Event) error {
		start := time.Now()
		err := invoke(h, scope, ev)
		e.report(eventName, "", start, err, true)
		return err
	})
}

func (e *Engine) delegated(scope dom.Node, eventName, selector string, h Handler) *dom.Listener {
	return dom.NewListener(func(ev *dom.Event) error {
		start := time.Now()
		match, err := e.closest(ev.Target, scope, selector)
		if err != nil || match == nil {
			e.report(eventName, selector, start, err, false)
			return err
		}
		err = invoke(h, match, ev)
		e.report(eventName, selector, start, err, true)
		return err
	})
}

// closest walks from target towards scope and returns the first node that
// matches selector. scope itself is never tested.
func (e *Engine) closest(target, scope dom.Node, selector string) (dom.Node, error) {
	for current := target; current != nil && current != scope; current = current.ParentNode() {
		ok, err := e.match(current, selector)
		if err != nil {
			return nil, err
		}
		if ok {
			return current, nil
		}
	}
	return nil, nil
}

func (e *Engine) report(eventName, selector string, start time.Time, err error, invoked bool) {
	if len(e.observers) == 0 {
		return
	}
	d := Dispatch{
		EventName: eventName,
		Selector:  selector,
		Start:     start,
		Duration:  time.Since(start),
		Err:       err,
	}
	switch {
	case err != nil:
		d.Outcome = OutcomeFailed
	case invoked:
		d.Outcome = OutcomeInvoked
	default:
		d.Outcome = OutcomeNoMatch
	}
	for _, o := range e.observers {
		o.Dispatched(d)
	}
}
