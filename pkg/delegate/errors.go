package delegate

import stderrors "errors"

var (
	// ErrNotCallable is reported when a handler can not be invoked.
	ErrNotCallable = stderrors.New("handler is not callable")

	// ErrUnsupportedRemoval is returned for removal shapes other than
	// "everything" and "exact (event, selector, handler)".
	ErrUnsupportedRemoval = stderrors.New("unsupported removal shape")

	// ErrNativeMatchUnavailable is returned when native matching is
	// selected but a node does not implement dom.Matcher.
	ErrNativeMatchUnavailable = stderrors.New("node does not support native matching")
)
