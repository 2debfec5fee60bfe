// Package domkit adds jQuery-style conveniences to a dom.Document: class
// list helpers, inline styles, show/hide, element creation and event
// binding with optional selector delegation.
//
// Install binds a Kit to a document. The Kit offers two surfaces over the
// same engine. The method surface wraps elements in a chainable Element:
//
//	kit, err := domkit.Install(doc, domkit.WithDebug(true))
//	list := kit.MustFind("#menu")
//	list.AddClass("open").On("click", "li.item", open)
//
// The functional surface takes the node as its first argument:
//
//	kit.On(list.Node(), "click", "li.item", open)
//	kit.Off(list.Node(), "click", "li.item", open)
//	kit.Off(list.Node())
//
// Keep the handler values passed to On (see delegate.Func and
// delegate.Object) to remove single registrations later.
package domkit

import (
	"log/slog"

	"github.com/vango-dev/domkit/internal/errors"
	"github.com/vango-dev/domkit/pkg/delegate"
	"github.com/vango-dev/domkit/pkg/dom"
)

// Version is the domkit release.
const Version = "0.3.0"

// elementMethods are the methods the Element surface provides, in the
// order they are reported at install time.
var elementMethods = []string{
	"HasClass", "AddClass", "RemoveClass", "ToggleClass",
	"Style", "SetStyle",
	"Hide", "Show",
	"Find", "FindAll",
	"On", "Off",
}

// Kit binds the helpers to one document.
type Kit struct {
	doc    *dom.Document
	engine *delegate.Engine
	logger *slog.Logger
}

type options struct {
	debug      bool
	logger     *slog.Logger
	engineOpts []delegate.Option
}

// Option configures Install.
type Option func(*options)

// WithDebug logs each installed method at debug level.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithLogger sets the logger for install diagnostics and the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStrategy forces a selector matching strategy.
func WithStrategy(s delegate.Strategy) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, delegate.WithStrategy(s))
	}
}

// WithObserver attaches observers to the engine.
func WithObserver(obs ...delegate.Observer) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, delegate.WithObserver(obs...))
	}
}

// WithEngineOptions passes options straight to delegate.New.
func WithEngineOptions(opts ...delegate.Option) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}

// Install creates a Kit for doc. It fails only when doc is nil.
func Install(doc *dom.Document, opts ...Option) (*Kit, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	if doc == nil {
		if o.debug {
			o.logger.Debug("domkit could not be installed: no document host")
		}
		return nil, errors.New("E005").
			WithSubject("install").
			WithDetail("Install needs a document to bind to.")
	}

	engineOpts := append([]delegate.Option{delegate.WithLogger(o.logger)}, o.engineOpts...)
	k := &Kit{
		doc:    doc,
		engine: delegate.New(doc, engineOpts...),
		logger: o.logger,
	}

	if o.debug {
		for _, m := range elementMethods {
			o.logger.Debug("installed Element#" + m)
		}
		o.logger.Debug("installed Document#Create")
		o.logger.Debug("domkit installed", "strategy", k.engine.Strategy().String())
	}
	return k, nil
}

// Document returns the bound document.
func (k *Kit) Document() *dom.Document {
	return k.doc
}

// Engine returns the delegation engine.
func (k *Kit) Engine() *delegate.Engine {
	return k.engine
}

// Element wraps el in the chainable surface. It returns nil for nil.
func (k *Kit) Element(el *dom.Element) *Element {
	if el == nil {
		return nil
	}
	return &Element{kit: k, el: el}
}

// Find returns the first element in the document matching selector, or
// nil when there is none.
func (k *Kit) Find(selector string) (*Element, error) {
	el, err := k.doc.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	return k.Element(el), nil
}

// MustFind is like Find but panics when selector is invalid or matches
// nothing.
func (k *Kit) MustFind(selector string) *Element {
	el, err := k.Find(selector)
	if err != nil {
		panic(err)
	}
	if el == nil {
		panic(errors.New("E021").WithSubject(selector))
	}
	return el
}

// FindAll returns every element in the document matching selector.
func (k *Kit) FindAll(selector string) ([]*Element, error) {
	found, err := k.doc.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	out := make([]*Element, len(found))
	for i, el := range found {
		out[i] = k.Element(el)
	}
	return out, nil
}

// Create builds a detached element. See dom.Document.Create for the
// accepted arguments; *Element wrappers are accepted as children too.
func (k *Kit) Create(tag string, args ...any) (*Element, error) {
	unwrapped := make([]any, len(args))
	for i, arg := range args {
		if w, ok := arg.(*Element); ok {
			arg = w.Node()
		}
		unwrapped[i] = arg
	}
	el, err := k.doc.Create(tag, unwrapped...)
	if err != nil {
		return nil, err
	}
	return k.Element(el), nil
}
