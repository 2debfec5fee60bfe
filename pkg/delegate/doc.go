// Package delegate implements selector-based event delegation with a
// per-node listener registry.
//
// An Engine binds handlers to nodes either directly or through a
// delegation selector:
//
//	eng := delegate.New(doc)
//	open := delegate.Func(func(this dom.Node, ev *dom.Event) {
//	    // this is the <li class="item"> the click came from
//	})
//	eng.On(list, "click", "li.item", open)
//
// A delegated handler runs when an event bubbles up to the host node and
// some node between the event target and the host (the host excluded)
// matches the selector. The handler sees the nearest such node as "this".
// A direct handler (empty selector) always sees the host.
//
// # Registry
//
// The engine keeps each node's registrations in a side table keyed by the
// node. Every entry pairs the caller's handler with the wrapper that was
// registered natively; removing the entry always removes the wrapper too.
// Registering the same (event, selector, handler) twice yields two
// independent entries. Off removes the first exact match only; OffAll
// clears a node and drops its slot from the side table. Call OffAll before
// discarding a node, otherwise the engine keeps it reachable.
//
// # Handlers
//
// A Handler is either a *Callable (see Func) or a *Dispatchable (see
// Object). Handlers are compared by pointer, so keep the value returned by
// Func or Object to remove the registration later. Handler shape is never
// checked at registration: a Dispatchable wrapping something that is not
// invocable fails with ErrNotCallable when the event fires, and the error
// goes to the document's error handler.
//
// # Matching
//
// Selector matching uses one of two strategies, fixed when the engine is
// created: the node's own Matches method, or a fallback that queries the
// node's parent and tests membership. Both agree for nodes attached to a
// document. Results are never cached.
package delegate
