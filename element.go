package domkit

import (
	"github.com/vango-dev/domkit/pkg/delegate"
	"github.com/vango-dev/domkit/pkg/dom"
)

// Element is the chainable method surface over a *dom.Element.
//
// Methods that can fail record the first error and keep returning the
// receiver, so a chain can be checked once at the end:
//
//	err := kit.MustFind("#menu").
//		AddClass("open").
//		SetStyle("float", "left").
//		On("click", "li.item", open).
//		Err()
type Element struct {
	kit *Kit
	el  *dom.Element
	err error
}

// Node returns the underlying element.
func (e *Element) Node() *dom.Element {
	return e.el
}

// Err returns the first error recorded by a chained call.
func (e *Element) Err() error {
	return e.err
}

func (e *Element) fail(err error) *Element {
	if err != nil && e.err == nil {
		e.err = err
	}
	return e
}

// HasClass reports whether the element has every class in className.
func (e *Element) HasClass(className string) bool {
	return e.el.HasClass(className)
}

// AddClass adds each class in className.
func (e *Element) AddClass(className string) *Element {
	e.el.AddClass(className)
	return e
}

// RemoveClass removes each class in className.
func (e *Element) RemoveClass(className string) *Element {
	e.el.RemoveClass(className)
	return e
}

// ToggleClass flips each class in className.
func (e *Element) ToggleClass(className string) *Element {
	e.el.ToggleClass(className)
	return e
}

// Style returns the inline value of a property.
func (e *Element) Style(name string) string {
	return e.el.Style(name)
}

// Opacity returns the inline opacity, 1 when unset.
func (e *Element) Opacity() float64 {
	return e.el.Opacity()
}

// SetStyle accepts (name, value), a declaration string or a map.
func (e *Element) SetStyle(args ...any) *Element {
	return e.fail(setStyle(e.el, args))
}

// Hide hides the element.
func (e *Element) Hide() *Element {
	e.el.Hide()
	return e
}

// Show reverses Hide.
func (e *Element) Show() *Element {
	e.el.Show()
	return e
}

// Hidden reports whether the element is hidden with Hide.
func (e *Element) Hidden() bool {
	return e.el.Hidden()
}

// Find returns the first descendant matching selector, or nil.
func (e *Element) Find(selector string) *Element {
	found, err := e.el.Find(selector)
	if err != nil {
		e.fail(err)
		return nil
	}
	return e.kit.Element(found)
}

// FindAll returns every descendant matching selector.
func (e *Element) FindAll(selector string) []*Element {
	found, err := e.el.FindAll(selector)
	if err != nil {
		e.fail(err)
		return nil
	}
	out := make([]*Element, len(found))
	for i, el := range found {
		out[i] = e.kit.Element(el)
	}
	return out
}

// Append adds child as the last child.
func (e *Element) Append(child *Element) *Element {
	e.el.AppendChild(child.el)
	return e
}

// On binds a handler. See Kit.On.
func (e *Element) On(eventName string, args ...any) *Element {
	_, err := e.kit.On(e.el, eventName, args...)
	return e.fail(err)
}

// Off removes registrations. See Kit.Off.
func (e *Element) Off(args ...any) *Element {
	_, err := e.kit.Off(e.el, args...)
	return e.fail(err)
}

// Listeners returns the element's registrations in order.
func (e *Element) Listeners() []delegate.Entry {
	return e.kit.engine.Entries(e.el)
}

// Click dispatches a click at the element.
func (e *Element) Click() *Element {
	e.el.Click()
	return e
}
