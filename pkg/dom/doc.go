// Package dom provides the in-memory document tree that domkit works on.
//
// A Document wraps a tree parsed by golang.org/x/net/html and hands out
// Element values with stable identity: wrapping the same *html.Node twice
// yields the same *Element. Elements carry native event listeners and
// dispatch events through the classic three phases (capture, target,
// bubble). The listener lists along the propagation path are captured when
// dispatch starts, so adding or removing listeners from inside a listener
// only affects later events.
//
// # Selectors
//
// Selectors are compiled with github.com/andybalholm/cascadia. Compiled
// selectors are cached per document; match results never are, since the
// tree may change between events.
//
// # Element helpers
//
// Besides tree and event primitives, Element offers the small conveniences
// that domkit exposes to callers:
//
//	el.AddClass("card active").
//	    SetStyle("float", "left").
//	    Hide()
//
// Hide marks the element with a data-dom-hidden attribute. The first Hide
// on a document injects one <style> rule into <head> that hides every
// marked element.
//
// # Concurrency
//
// A Document and its elements are not safe for concurrent use. Like a
// browser's UI thread, all access is expected to happen from one goroutine
// or under one lock held by the caller.
package dom
