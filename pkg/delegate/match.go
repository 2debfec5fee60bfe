package delegate

import (
	"github.com/vango-dev/domkit/internal/errors"
	"github.com/vango-dev/domkit/pkg/dom"
)

// Strategy selects how selectors are matched against nodes.
type Strategy uint8

const (
	// StrategyAuto picks StrategyNative when the environment supports it.
	StrategyAuto Strategy = iota
	// StrategyNative asks the node itself (dom.Matcher).
	StrategyNative
	// StrategyFallback queries the node's parent and tests membership.
	StrategyFallback
)

// String returns the string representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyNative:
		return "native"
	case StrategyFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a configuration string into a Strategy.
func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "", "auto":
		return StrategyAuto, true
	case "native":
		return StrategyNative, true
	case "fallback":
		return StrategyFallback, true
	}
	return StrategyAuto, false
}

// MatchFunc reports whether n satisfies selector in its current position.
type MatchFunc func(n dom.Node, selector string) (bool, error)

// MatchNative matches with the node's own Matches method.
func MatchNative(n dom.Node, selector string) (bool, error) {
	m, ok := n.(dom.Matcher)
	if !ok {
		return false, errors.New("E004").WithSubject(selector).Wrap(ErrNativeMatchUnavailable)
	}
	return m.Matches(selector)
}

// MatchFallback reports whether n is among the nodes its parent finds for
// selector. Nodes without a parent never match.
func MatchFallback(n dom.Node, selector string) (bool, error) {
	parent := n.ParentNode()
	if parent == nil {
		return false, nil
	}
	candidates, err := parent.QuerySelectorAll(selector)
	if err != nil {
		return false, err
	}
	for _, c := range candidates {
		if c == n {
			return true, nil
		}
	}
	return false, nil
}

func (s Strategy) matchFunc() MatchFunc {
	if s == StrategyFallback {
		return MatchFallback
	}
	return MatchNative
}
