package delegate

import (
	"testing"

	"github.com/vango-dev/domkit/pkg/dom"
)

type fakeObserver struct {
	added, removed []string
	dispatches     []Dispatch
}

func (f *fakeObserver) ListenerAdded(eventName, selector string) {
	f.added = append(f.added, eventName+"|"+selector)
}

func (f *fakeObserver) ListenerRemoved(eventName, selector string) {
	f.removed = append(f.removed, eventName+"|"+selector)
}

func (f *fakeObserver) Dispatched(d Dispatch) {
	f.dispatches = append(f.dispatches, d)
}

func TestObserver(t *testing.T) {
	doc, _ := dom.ParseString(menuPage, dom.WithErrorHandler(func(*dom.Event, error) {}))
	obs := &fakeObserver{}
	eng := New(doc, WithObserver(obs, nil))
	menu := find(t, doc, "#menu")

	h := Func(func(dom.Node, *dom.Event) {})
	eng.On(menu, "click", "", h)
	eng.On(menu, "click", "li.item", h)
	eng.On(menu, "click", "", Object("nope"))

	find(t, doc, "#inner").Click()

	if len(obs.added) != 3 {
		t.Errorf("added = %v", obs.added)
	}
	if len(obs.dispatches) != 3 {
		t.Fatalf("dispatches = %+v", obs.dispatches)
	}
	want := []Outcome{OutcomeInvoked, OutcomeNoMatch, OutcomeFailed}
	for i, d := range obs.dispatches {
		if d.Outcome != want[i] {
			t.Errorf("dispatch %d outcome = %v, want %v", i, d.Outcome, want[i])
		}
		if d.EventName != "click" || d.Duration < 0 {
			t.Errorf("dispatch %d = %+v", i, d)
		}
	}
	if obs.dispatches[1].Selector != "li.item" {
		t.Errorf("selector = %q", obs.dispatches[1].Selector)
	}

	eng.Off(menu, "click", "li.item", h)
	eng.OffAll(menu)
	if len(obs.removed) != 3 || obs.removed[0] != "click|li.item" {
		t.Errorf("removed = %v", obs.removed)
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeNoMatch.String() != "no_match" || Outcome(9).String() != "unknown" {
		t.Error("unexpected Outcome strings")
	}
}
