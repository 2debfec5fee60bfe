package dom

import (
	"strings"
	"testing"

	"github.com/vango-dev/domkit/internal/errors"
)

const listPage = `<!DOCTYPE html>
<html><head><title>t</title></head>
<body>
  <ul id="list">
    <li class="item"><a id="one" href="#">one</a></li>
    <li class="item active"><a id="two" href="#"><span id="label">two</span></a></li>
    <li id="plain">three</li>
  </ul>
</body></html>`

func mustParse(t *testing.T, src string, opts ...Option) *Document {
	t.Helper()
	doc, err := ParseString(src, opts...)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc
}

func mustFind(t *testing.T, doc *Document, selector string) *Element {
	t.Helper()
	el, err := doc.QuerySelector(selector)
	if err != nil {
		t.Fatalf("QuerySelector(%q): %v", selector, err)
	}
	if el == nil {
		t.Fatalf("QuerySelector(%q) found nothing", selector)
	}
	return el
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc.Head() == nil || doc.Body() == nil {
		t.Fatal("empty document should have head and body")
	}
	if doc.DocumentElement().Tag() != "html" {
		t.Errorf("DocumentElement().Tag() = %q", doc.DocumentElement().Tag())
	}
	if !doc.SupportsMatches() {
		t.Error("documents support native matching by default")
	}
	if NewDocument(WithoutNativeMatches()).SupportsMatches() {
		t.Error("WithoutNativeMatches should disable native matching")
	}
}

func TestWrapIdentity(t *testing.T) {
	doc := mustParse(t, listPage)
	a := mustFind(t, doc, "#one")
	b := mustFind(t, doc, "li.item > a")
	if a != b {
		t.Error("the same node should always wrap to the same *Element")
	}
	if doc.Wrap(nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestParentNode(t *testing.T) {
	doc := mustParse(t, listPage)
	label := mustFind(t, doc, "#label")

	if label.ParentNode() != Node(mustFind(t, doc, "#two")) {
		t.Error("ParentNode of #label should be #two")
	}
	if doc.Root().ParentNode() != nil {
		t.Error("the document node has no parent")
	}

	detached, _ := doc.Create("div")
	if detached.ParentNode() != nil {
		t.Error("ParentNode of a detached node must be an untyped nil")
	}
}

func TestQuerySelectorAll(t *testing.T) {
	doc := mustParse(t, listPage)
	list := mustFind(t, doc, "#list")

	items, err := list.QuerySelectorAll("li")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}

	self, err := list.QuerySelectorAll("ul")
	if err != nil {
		t.Fatal(err)
	}
	if len(self) != 0 {
		t.Error("QuerySelectorAll must not include the node itself")
	}

	got, err := doc.QuerySelectorAll("li.item")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || !got[1].HasClass("active") {
		t.Errorf("unexpected li.item results: %d", len(got))
	}
}

func TestMatches(t *testing.T) {
	doc := mustParse(t, listPage)
	two := mustFind(t, doc, "#two")

	tests := []struct {
		selector string
		want     bool
	}{
		{"a", true},
		{"#two", true},
		{"li.active > a", true},
		{"ul a", true},
		{"li", false},
		{".item", false},
	}
	for _, tt := range tests {
		got, err := two.Matches(tt.selector)
		if err != nil {
			t.Fatalf("Matches(%q): %v", tt.selector, err)
		}
		if got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.selector, got, tt.want)
		}
	}

	if _, err := two.Matches("li:::"); !errors.HasCode(err, "E003") {
		t.Errorf("invalid selector error = %v, want E003", err)
	}
}

func TestTreeEditing(t *testing.T) {
	doc := mustParse(t, listPage)
	list := mustFind(t, doc, "#list")
	plain := mustFind(t, doc, "#plain")

	list.RemoveChild(plain)
	if plain.Parent() != nil {
		t.Error("RemoveChild should detach the node")
	}
	if list.Contains(plain) {
		t.Error("list should no longer contain #plain")
	}

	doc.Body().AppendChild(plain)
	if plain.Parent() != doc.Body() {
		t.Error("AppendChild should move the node under body")
	}

	plain.Remove()
	if plain.Parent() != nil {
		t.Error("Remove should detach the node")
	}
	if len(list.Children()) != 2 {
		t.Errorf("list children = %d, want 2", len(list.Children()))
	}
}

func TestAttributes(t *testing.T) {
	doc := NewDocument()
	body := doc.Body()

	body.SetAttr("data-x", "1").SetAttr("data-x", "2")
	if v, ok := body.Attr("data-x"); !ok || v != "2" {
		t.Errorf("Attr = %q, %v", v, ok)
	}
	body.RemoveAttr("data-x")
	if _, ok := body.Attr("data-x"); ok {
		t.Error("RemoveAttr did not remove the attribute")
	}
}

func TestRenderAndInnerHTML(t *testing.T) {
	doc := NewDocument()
	if err := doc.Body().SetInnerHTML(`<p class="x">hi <b>there</b></p>`); err != nil {
		t.Fatal(err)
	}
	if got := doc.Body().Text(); got != "hi there" {
		t.Errorf("Text() = %q", got)
	}
	if !strings.Contains(doc.String(), `<p class="x">hi <b>there</b></p>`) {
		t.Errorf("rendered document missing fragment: %s", doc.String())
	}
	if got := mustFind(t, doc, "b").OuterHTML(); got != "<b>there</b>" {
		t.Errorf("OuterHTML() = %q", got)
	}
}
