package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HiddenAttr marks elements hidden by Hide.
const HiddenAttr = "data-dom-hidden"

const hiddenRule = "[" + HiddenAttr + "] { display:none !important; }"

// Hide marks e as hidden. The first call on a document adds the stylesheet
// rule that makes the mark effective.
func (e *Element) Hide() *Element {
	e.doc.ensureHiddenRule()
	return e.SetAttr(HiddenAttr, "true")
}

// Show removes the mark set by Hide.
func (e *Element) Show() *Element {
	return e.RemoveAttr(HiddenAttr)
}

// Hidden reports whether e is marked hidden.
func (e *Element) Hidden() bool {
	_, ok := e.Attr(HiddenAttr)
	return ok
}

func (d *Document) ensureHiddenRule() {
	d.hideOnce.Do(func() {
		style := &html.Node{
			Type:     html.ElementNode,
			Data:     "style",
			DataAtom: atom.Style,
			Attr:     []html.Attribute{{Key: "type", Val: "text/css"}},
		}
		style.AppendChild(&html.Node{Type: html.TextNode, Data: hiddenRule})

		parent := findAtom(d.root, atom.Head)
		if parent == nil {
			parent = findAtom(d.root, atom.Html)
		}
		if parent == nil {
			parent = d.root
		}
		parent.AppendChild(style)
		d.hideStyle = d.Wrap(style)
	})
}
