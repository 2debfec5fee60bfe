package dom

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/domkit/internal/errors"
)

const emptyDocument = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is a parsed HTML document.
type Document struct {
	root      *html.Node
	nodes     map[*html.Node]*Element
	selectors map[string]cascadia.Selector

	native  bool
	logger  *slog.Logger
	onError func(ev *Event, err error)

	hideOnce  sync.Once
	hideStyle *Element
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for listener failures.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithErrorHandler installs the document-wide handler for listener errors
// and panics. It replaces the default, which logs at error level.
func WithErrorHandler(fn func(ev *Event, err error)) Option {
	return func(d *Document) {
		d.onError = fn
	}
}

// WithoutNativeMatches makes SupportsMatches report false, so engines built
// on this document fall back to parent queries for selector matching.
func WithoutNativeMatches() Option {
	return func(d *Document) {
		d.native = false
	}
}

// Parse reads an HTML document from r.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.New("E020").Wrap(err)
	}
	return newDocument(root, opts...), nil
}

// ParseString parses an HTML document from a string.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// NewDocument returns an empty document with <head> and <body>.
func NewDocument(opts ...Option) *Document {
	doc, err := ParseString(emptyDocument, opts...)
	if err != nil {
		// The input is a constant; html.Parse only fails on reader errors.
		panic(err)
	}
	return doc
}

func newDocument(root *html.Node, opts ...Option) *Document {
	d := &Document{
		root:      root,
		nodes:     make(map[*html.Node]*Element),
		selectors: make(map[string]cascadia.Selector),
		native:    true,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wrap returns the Element for n, creating it on first use. The same node
// always yields the same Element.
func (d *Document) Wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	if el, ok := d.nodes[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.nodes[n] = el
	return el
}

// Root returns the document node.
func (d *Document) Root() *Element {
	return d.Wrap(d.root)
}

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() *Element {
	return d.Wrap(findAtom(d.root, atom.Html))
}

// Head returns the <head> element, or nil if there is none.
func (d *Document) Head() *Element {
	return d.Wrap(findAtom(d.root, atom.Head))
}

// Body returns the <body> element, or nil if there is none.
func (d *Document) Body() *Element {
	return d.Wrap(findAtom(d.root, atom.Body))
}

// QuerySelector returns the first element matching selector, or nil.
func (d *Document) QuerySelector(selector string) (*Element, error) {
	return d.Root().Find(selector)
}

// QuerySelectorAll returns every element matching selector in document
// order.
func (d *Document) QuerySelectorAll(selector string) ([]*Element, error) {
	return d.Root().FindAll(selector)
}

// SupportsMatches reports whether elements of this document should be
// matched with their own Matches method.
func (d *Document) SupportsMatches() bool {
	return d.native
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document to a string.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// Len returns the number of nodes the document has handed out Elements for.
func (d *Document) Len() int {
	return len(d.nodes)
}

// ReportError delivers a listener failure to the document's error handler.
func (d *Document) ReportError(ev *Event, err error) {
	if err == nil {
		return
	}
	if d.onError != nil {
		d.onError(ev, err)
		return
	}
	eventType := ""
	if ev != nil {
		eventType = ev.Type
	}
	d.logger.Error("event listener failed", "event", eventType, "error", err)
}

func (d *Document) compile(selector string) (cascadia.Selector, error) {
	if sel, ok := d.selectors[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, errors.New("E003").WithSubject(selector).Wrap(err)
	}
	d.selectors[selector] = sel
	return sel, nil
}

// invoke runs one listener, turning panics into reported errors.
func (d *Document) invoke(l *Listener, ev *Event) {
	defer func() {
		if r := recover(); r != nil {
			d.ReportError(ev, errors.New("E006").Wrap(fmt.Errorf("%v", r)))
		}
	}()
	if err := l.Handle(ev); err != nil {
		d.ReportError(ev, err)
	}
}

func findAtom(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findAtom(c, a); found != nil {
			return found
		}
	}
	return nil
}
