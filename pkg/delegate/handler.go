package delegate

import (
	"fmt"

	"github.com/vango-dev/domkit/internal/errors"
	"github.com/vango-dev/domkit/pkg/dom"
)

// Listener is implemented by objects that handle events themselves.
type Listener interface {
	HandleEvent(this dom.Node, ev *dom.Event)
}

// Handler is an event handler bound with Engine.On. It is either a
// *Callable or a *Dispatchable.
type Handler interface {
	call(this dom.Node, ev *dom.Event) error
}

// Callable is a handler backed by a function.
type Callable struct {
	fn func(this dom.Node, ev *dom.Event)
}

// Func returns a Callable for fn.
func Func(fn func(this dom.Node, ev *dom.Event)) *Callable {
	return &Callable{fn: fn}
}

func (c *Callable) call(this dom.Node, ev *dom.Event) error {
	if c == nil || c.fn == nil {
		return errors.New("E002").WithSubject(ev.Type).Wrap(ErrNotCallable)
	}
	c.fn(this, ev)
	return nil
}

// Dispatchable is a handler backed by an object. The object is resolved at
// dispatch time: a Listener gets HandleEvent, a plain
// func(dom.Node, *dom.Event) is called, anything else fails.
type Dispatchable struct {
	target any
}

// Object returns a Dispatchable for v.
func Object(v any) *Dispatchable {
	return &Dispatchable{target: v}
}

// Target returns the wrapped object.
func (d *Dispatchable) Target() any {
	return d.target
}

func (d *Dispatchable) call(this dom.Node, ev *dom.Event) error {
	if d == nil {
		return errors.New("E002").WithSubject(ev.Type).Wrap(ErrNotCallable)
	}
	switch t := d.target.(type) {
	case Listener:
		t.HandleEvent(this, ev)
	case func(dom.Node, *dom.Event):
		t(this, ev)
	default:
		return errors.New("E002").
			WithSubject(ev.Type).
			WithSuggestion("Implement HandleEvent(this dom.Node, ev *dom.Event) or pass a func").
			Wrap(fmt.Errorf("%w: %T", ErrNotCallable, d.target))
	}
	return nil
}

func invoke(h Handler, this dom.Node, ev *dom.Event) error {
	if h == nil {
		return errors.New("E002").WithSubject(ev.Type).Wrap(ErrNotCallable)
	}
	return h.call(this, ev)
}
