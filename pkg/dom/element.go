package dom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/domkit/internal/errors"
)

// Element is a node of a Document. Despite the name it wraps every node
// type (document, element, text, comment) so that events can target and
// travel through any of them.
type Element struct {
	doc       *Document
	node      *html.Node
	listeners map[string][]registration
}

var (
	_ Node    = (*Element)(nil)
	_ Matcher = (*Element)(nil)
)

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// HTMLNode returns the underlying parse tree node.
func (e *Element) HTMLNode() *html.Node {
	return e.node
}

// Type returns the node type.
func (e *Element) Type() html.NodeType {
	return e.node.Type
}

// IsElement reports whether the node is an element node.
func (e *Element) IsElement() bool {
	return e.node.Type == html.ElementNode
}

// Tag returns the lowercase tag name, or "" for non-element nodes.
func (e *Element) Tag() string {
	if e.node.Type != html.ElementNode {
		return ""
	}
	return e.node.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := e.Attr("id")
	return v
}

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element {
	if e.node.Parent == nil {
		return nil
	}
	return e.doc.Wrap(e.node.Parent)
}

// ParentNode implements Node.
func (e *Element) ParentNode() Node {
	if e.node.Parent == nil {
		return nil
	}
	return e.doc.Wrap(e.node.Parent)
}

// Children returns the element children.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.Wrap(c))
		}
	}
	return out
}

// AppendChild moves child to the end of e's children.
func (e *Element) AppendChild(child *Element) *Element {
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)
	return e
}

// RemoveChild detaches child from e. It is a no-op if child is not a
// child of e.
func (e *Element) RemoveChild(child *Element) *Element {
	if child.node.Parent == e.node {
		e.node.RemoveChild(child.node)
	}
	return e
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute.
func (e *Element) SetAttr(name, value string) *Element {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return e
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
	return e
}

// RemoveAttr removes the named attribute.
func (e *Element) RemoveAttr(name string) *Element {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
	return e
}

// Text returns the concatenated text of e and its descendants.
func (e *Element) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}

// SetInnerHTML replaces e's children with the parsed fragment.
func (e *Element) SetInnerHTML(fragment string) error {
	context := e.node
	if context.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, Data: "body"}
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return errors.New("E020").WithSubject("innerHTML").Wrap(err)
	}
	for c := e.node.FirstChild; c != nil; c = e.node.FirstChild {
		e.node.RemoveChild(c)
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// OuterHTML renders e and its subtree.
func (e *Element) OuterHTML() string {
	var b strings.Builder
	if err := html.Render(&b, e.node); err != nil {
		return ""
	}
	return b.String()
}

// Matches reports whether e satisfies selector in its current position.
func (e *Element) Matches(selector string) (bool, error) {
	sel, err := e.doc.compile(selector)
	if err != nil {
		return false, err
	}
	return sel.Match(e.node), nil
}

// Find returns the first descendant matching selector, or nil.
func (e *Element) Find(selector string) (*Element, error) {
	sel, err := e.doc.compile(selector)
	if err != nil {
		return nil, err
	}
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if n := sel.MatchFirst(c); n != nil {
			return e.doc.Wrap(n), nil
		}
	}
	return nil, nil
}

// FindAll returns every descendant matching selector in document order.
func (e *Element) FindAll(selector string) ([]*Element, error) {
	sel, err := e.doc.compile(selector)
	if err != nil {
		return nil, err
	}
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		for _, n := range sel.MatchAll(c) {
			out = append(out, e.doc.Wrap(n))
		}
	}
	return out, nil
}

// QuerySelectorAll implements Node.
func (e *Element) QuerySelectorAll(selector string) ([]Node, error) {
	found, err := e.FindAll(selector)
	if err != nil {
		return nil, err
	}
	out := make([]Node, len(found))
	for i, el := range found {
		out[i] = el
	}
	return out, nil
}
