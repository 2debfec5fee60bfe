package domkit

import (
	"fmt"
	"reflect"

	"github.com/vango-dev/domkit/internal/errors"
	"github.com/vango-dev/domkit/pkg/delegate"
	"github.com/vango-dev/domkit/pkg/dom"
)

// On binds a handler to n and returns n. The arguments after eventName are
// either (handler) for a direct listener or (selector, handler) for a
// delegated one. An empty selector also means direct.
//
// A handler that is not a delegate.Handler is wrapped with
// delegate.Object. Its shape is not checked here: values that cannot be
// invoked fail when the event fires.
func (k *Kit) On(n dom.Node, eventName string, args ...any) (dom.Node, error) {
	var (
		selector string
		handler  any
	)
	switch len(args) {
	case 1:
		handler = args[0]
	case 2:
		s, ok := args[0].(string)
		if !ok {
			return n, argError("on", "selector", args[0])
		}
		selector, handler = s, args[1]
	case 0:
		return n, errors.New("E005").
			WithSubject(fmt.Sprintf("on(%q)", eventName)).
			WithDetail("on needs a handler, optionally preceded by a selector.")
	default:
		return n, errors.New("E005").
			WithSubject(fmt.Sprintf("on(%q): %d arguments", eventName, len(args)+1)).
			WithDetail("on takes an event name, an optional selector and a handler.")
	}
	return k.engine.On(n, eventName, selector, toHandler(handler)), nil
}

// Off removes registrations from n and returns n.
//
// With no arguments every registration on n is removed. With exactly
// (eventName, selector, handler) the first registration equal to that
// triple is removed; pass "" as the selector for direct listeners. A
// handler object registered without delegate.Object is matched by
// identity, so the same pointer removes it. Plain funcs cannot be matched
// and must be wrapped with delegate.Func first. Every other shape removes
// nothing and returns an error wrapping delegate.ErrUnsupportedRemoval.
func (k *Kit) Off(n dom.Node, args ...any) (dom.Node, error) {
	switch len(args) {
	case 0:
		return k.engine.OffAll(n), nil
	case 3:
	default:
		return n, errors.New("E001").
			WithSubject(fmt.Sprintf("off with %d arguments", len(args))).
			WithSuggestion(`Call Off(node) or Off(node, "click", "li.item", handler)`).
			Wrap(delegate.ErrUnsupportedRemoval)
	}

	eventName, ok := args[0].(string)
	if !ok {
		return n, argError("off", "event name", args[0])
	}
	selector, ok := args[1].(string)
	if !ok {
		return n, argError("off", "selector", args[1])
	}
	if h, ok := args[2].(delegate.Handler); ok {
		return k.engine.Off(n, eventName, selector, h), nil
	}

	// On wrapped the value in a fresh Dispatchable, so find the entry by
	// what it wraps. Func values cannot be compared.
	t := reflect.TypeOf(args[2])
	if t == nil || t.Kind() == reflect.Func || !t.Comparable() {
		return n, argError("off", "handler", args[2]).
			WithSuggestion("Keep the value returned by delegate.Func and pass it to both On and Off")
	}
	for _, en := range k.engine.Entries(n) {
		if en.EventName != eventName || en.Selector != selector {
			continue
		}
		if d, ok := en.Handler.(*delegate.Dispatchable); ok && sameTarget(d.Target(), args[2]) {
			return k.engine.Off(n, eventName, selector, d), nil
		}
	}
	return n, nil
}

// HasClass reports whether el has every class in className.
func (k *Kit) HasClass(el *dom.Element, className string) bool {
	return el.HasClass(className)
}

// AddClass adds each class in className to el.
func (k *Kit) AddClass(el *dom.Element, className string) *dom.Element {
	return el.AddClass(className)
}

// RemoveClass removes each class in className from el.
func (k *Kit) RemoveClass(el *dom.Element, className string) *dom.Element {
	return el.RemoveClass(className)
}

// ToggleClass flips each class in className on el.
func (k *Kit) ToggleClass(el *dom.Element, className string) *dom.Element {
	return el.ToggleClass(className)
}

// Style returns el's inline value for name.
func (k *Kit) Style(el *dom.Element, name string) string {
	return el.Style(name)
}

// SetStyle sets inline styles on el. It accepts (name, value), a CSS
// declaration string, or a map of properties.
func (k *Kit) SetStyle(el *dom.Element, args ...any) (*dom.Element, error) {
	return el, setStyle(el, args)
}

// Hide hides el.
func (k *Kit) Hide(el *dom.Element) *dom.Element {
	return el.Hide()
}

// Show reverses Hide.
func (k *Kit) Show(el *dom.Element) *dom.Element {
	return el.Show()
}

// FindIn returns the first descendant of el matching selector.
func (k *Kit) FindIn(el *dom.Element, selector string) (*dom.Element, error) {
	return el.Find(selector)
}

// FindAllIn returns every descendant of el matching selector.
func (k *Kit) FindAllIn(el *dom.Element, selector string) ([]*dom.Element, error) {
	return el.FindAll(selector)
}

func setStyle(el *dom.Element, args []any) error {
	switch len(args) {
	case 1:
		switch v := args[0].(type) {
		case string:
			return el.SetStyleText(v)
		case map[string]string:
			el.SetStyles(v)
			return nil
		default:
			return argError("setStyle", "styles", v)
		}
	case 2:
		name, ok := args[0].(string)
		if !ok {
			return argError("setStyle", "property name", args[0])
		}
		value, ok := args[1].(string)
		if !ok {
			return argError("setStyle", "value", args[1])
		}
		el.SetStyle(name, value)
		return nil
	default:
		return errors.New("E005").
			WithSubject(fmt.Sprintf("setStyle: %d arguments", len(args))).
			WithDetail("setStyle takes (name, value), a declaration string or a map.")
	}
}

// sameTarget compares two handler objects. Comparable types can still
// panic when an interface field holds an uncomparable value.
func sameTarget(a, b any) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

func toHandler(v any) delegate.Handler {
	if h, ok := v.(delegate.Handler); ok {
		return h
	}
	return delegate.Object(v)
}

func argError(method, param string, got any) *errors.DomError {
	return errors.New("E005").WithSubject(fmt.Sprintf("%s: %s has type %T", method, param, got))
}
