package dom

// Node is the view of a tree node that event delegation needs: a parent
// link, native listener registration and descendant queries.
type Node interface {
	// ParentNode returns the parent, or nil for a root or detached node.
	ParentNode() Node

	// AddEventListener registers l for eventType. Registering the same
	// listener twice with the same capture flag has no effect.
	AddEventListener(eventType string, l *Listener, capture bool)

	// RemoveEventListener unregisters l. Unknown listeners are ignored.
	RemoveEventListener(eventType string, l *Listener, capture bool)

	// QuerySelectorAll returns the descendants matching selector in
	// document order.
	QuerySelectorAll(selector string) ([]Node, error)
}

// Matcher is implemented by nodes that can test a selector against
// themselves directly.
type Matcher interface {
	Matches(selector string) (bool, error)
}
