package dom

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/domkit/internal/errors"
)

// Attrs is a set of attributes passed to Create.
type Attrs map[string]string

// Create builds a detached element. Each argument is one of:
//   - Attrs or map[string]string: attributes to set
//   - string: inner HTML
//   - *Element: a child to append
//
// Nil arguments are skipped.
//
//	li, err := doc.Create("li", dom.Attrs{"class": "item"}, "<b>rad</b>")
func (d *Document) Create(tag string, args ...any) (*Element, error) {
	name := strings.ToLower(tag)
	n := &html.Node{Type: html.ElementNode, Data: name, DataAtom: atom.Lookup([]byte(name))}
	el := d.Wrap(n)

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case Attrs:
			el.setAttrs(v)
		case map[string]string:
			el.setAttrs(v)
		case string:
			if err := el.SetInnerHTML(v); err != nil {
				return nil, err
			}
		case *Element:
			if v.doc != d {
				return nil, errors.New("E022").WithSubject(v.Tag())
			}
			el.AppendChild(v)
		default:
			return nil, errors.New("E005").WithSubject(fmt.Sprintf("create(%s): %T", name, arg))
		}
	}
	return el, nil
}

// CreateText builds a detached text node.
func (d *Document) CreateText(text string) *Element {
	return d.Wrap(&html.Node{Type: html.TextNode, Data: text})
}

func (e *Element) setAttrs(attrs map[string]string) {
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		e.SetAttr(k, attrs[k])
	}
}
