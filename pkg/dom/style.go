package dom

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"github.com/vango-dev/domkit/internal/errors"
)

// propertyName normalizes a style property to its CSS form. Both the CSS
// name ("background-color") and the scripting name ("backgroundColor") are
// accepted, and the float aliases collapse to "float".
func propertyName(name string) string {
	switch name {
	case "float", "cssFloat", "styleFloat":
		return "float"
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (e *Element) declarations() []*css.Declaration {
	text, ok := e.Attr("style")
	if !ok || strings.TrimSpace(text) == "" {
		return nil
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil
	}
	return slices.DeleteFunc(decls, unnamed)
}

// unnamed reports declarations the parser produced from malformed text.
func unnamed(d *css.Declaration) bool {
	return d == nil || strings.TrimSpace(d.Property) == ""
}

func (e *Element) writeDeclarations(decls []*css.Declaration) {
	if len(decls) == 0 {
		e.RemoveAttr("style")
		return
	}
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		part := d.Property + ": " + d.Value
		if d.Important {
			part += " !important"
		}
		parts = append(parts, part+";")
	}
	e.SetAttr("style", strings.Join(parts, " "))
}

// merge applies updates in order; a later declaration of a property
// replaces an earlier one in place.
func merge(decls []*css.Declaration, updates ...*css.Declaration) []*css.Declaration {
	for _, u := range updates {
		if unnamed(u) {
			continue
		}
		u.Property = propertyName(strings.TrimSpace(u.Property))
		replaced := false
		for i, d := range decls {
			if d.Property == u.Property {
				decls[i] = u
				replaced = true
				break
			}
		}
		if !replaced {
			decls = append(decls, u)
		}
	}
	return decls
}

// Style returns the inline value of the named property. It returns ""
// when the property is unset or set to "auto".
func (e *Element) Style(name string) string {
	prop := propertyName(name)
	for _, d := range e.declarations() {
		if d.Property == prop {
			if d.Value == "auto" {
				return ""
			}
			return d.Value
		}
	}
	return ""
}

// Opacity returns the inline opacity, defaulting to 1.
func (e *Element) Opacity() float64 {
	v := e.Style("opacity")
	if v == "" {
		return 1.0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 1.0
	}
	return f
}

// SetStyle sets one inline property.
func (e *Element) SetStyle(name, value string) *Element {
	e.writeDeclarations(merge(e.declarations(), &css.Declaration{Property: name, Value: value}))
	return e
}

// SetStyles sets several inline properties. Map iteration order does not
// matter because each property is set independently.
func (e *Element) SetStyles(styles map[string]string) *Element {
	decls := e.declarations()
	for name, value := range styles {
		decls = merge(decls, &css.Declaration{Property: name, Value: value})
	}
	e.writeDeclarations(decls)
	return e
}

// SetStyleText appends declarations written as CSS text, e.g.
// "float: right; color: red".
func (e *Element) SetStyleText(text string) error {
	updates, err := parser.ParseDeclarations(text)
	if err != nil {
		return errors.New("E020").WithSubject(text).Wrap(err)
	}
	e.writeDeclarations(merge(e.declarations(), updates...))
	return nil
}
