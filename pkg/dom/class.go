package dom

import (
	"slices"
	"strings"
)

// ClassName returns the class attribute.
func (e *Element) ClassName() string {
	v, _ := e.Attr("class")
	return v
}

func (e *Element) classes() []string {
	return strings.Fields(e.ClassName())
}

func (e *Element) setClasses(classes []string) {
	if len(classes) == 0 {
		if _, ok := e.Attr("class"); ok {
			e.SetAttr("class", "")
		}
		return
	}
	e.SetAttr("class", strings.Join(classes, " "))
}

// HasClass reports whether every space-separated name in className is
// present.
func (e *Element) HasClass(className string) bool {
	names := strings.Fields(className)
	if len(names) == 0 {
		return false
	}
	have := e.classes()
	for _, name := range names {
		if !slices.Contains(have, name) {
			return false
		}
	}
	return true
}

// AddClass adds each space-separated name that is not already present.
func (e *Element) AddClass(className string) *Element {
	have := e.classes()
	changed := false
	for _, name := range strings.Fields(className) {
		if !slices.Contains(have, name) {
			have = append(have, name)
			changed = true
		}
	}
	if changed {
		e.setClasses(have)
	}
	return e
}

// RemoveClass removes every occurrence of each space-separated name.
func (e *Element) RemoveClass(className string) *Element {
	drop := strings.Fields(className)
	have := e.classes()
	kept := have[:0]
	for _, name := range have {
		if !slices.Contains(drop, name) {
			kept = append(kept, name)
		}
	}
	e.setClasses(kept)
	return e
}

// ToggleClass flips each space-separated name independently.
func (e *Element) ToggleClass(className string) *Element {
	for _, name := range strings.Fields(className) {
		if e.HasClass(name) {
			e.RemoveClass(name)
		} else {
			e.AddClass(name)
		}
	}
	return e
}
