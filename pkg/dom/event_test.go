package dom

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/vango-dev/domkit/internal/errors"
)

func record(log *[]string, name string) *Listener {
	return NewListener(func(ev *Event) error {
		*log = append(*log, name+":"+ev.Phase.String())
		return nil
	})
}

func TestDispatchPhases(t *testing.T) {
	doc := mustParse(t, listPage)
	list := mustFind(t, doc, "#list")
	two := mustFind(t, doc, "#two")
	label := mustFind(t, doc, "#label")

	var log []string
	list.AddEventListener("click", record(&log, "list-capture"), true)
	list.AddEventListener("click", record(&log, "list"), false)
	two.AddEventListener("click", record(&log, "two"), false)
	label.AddEventListener("click", record(&log, "label"), false)

	label.Click()

	want := []string{
		"list-capture:capturing",
		"label:at-target",
		"two:bubbling",
		"list:bubbling",
	}
	if strings.Join(log, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", log, want)
	}
}

func TestDispatchTargetAndCurrentTarget(t *testing.T) {
	doc := mustParse(t, listPage)
	list := mustFind(t, doc, "#list")
	label := mustFind(t, doc, "#label")

	var target, current Node
	list.AddEventListener("click", NewListener(func(ev *Event) error {
		target, current = ev.Target, ev.CurrentTarget
		return nil
	}), false)

	ev := NewEvent("click")
	label.DispatchEvent(ev)

	if target != Node(label) || current != Node(list) {
		t.Errorf("target = %v, current = %v", target, current)
	}
	if ev.CurrentTarget != nil || ev.Phase != PhaseNone {
		t.Error("CurrentTarget and Phase should be reset after dispatch")
	}
}

func TestNonBubblingEvent(t *testing.T) {
	doc := mustParse(t, listPage)
	list := mustFind(t, doc, "#list")
	label := mustFind(t, doc, "#label")

	var log []string
	list.AddEventListener("focus", record(&log, "list"), false)
	label.AddEventListener("focus", record(&log, "label"), false)

	ev := NewEvent("focus")
	ev.Bubbles = false
	label.DispatchEvent(ev)

	if len(log) != 1 || log[0] != "label:at-target" {
		t.Errorf("log = %v", log)
	}
}

func TestStopPropagation(t *testing.T) {
	doc := mustParse(t, listPage)
	list := mustFind(t, doc, "#list")
	two := mustFind(t, doc, "#two")
	label := mustFind(t, doc, "#label")

	var log []string
	label.AddEventListener("click", NewListener(func(ev *Event) error {
		ev.StopPropagation()
		return nil
	}), false)
	label.AddEventListener("click", record(&log, "label-second"), false)
	two.AddEventListener("click", record(&log, "two"), false)
	list.AddEventListener("click", record(&log, "list"), false)

	label.Click()
	if len(log) != 1 || log[0] != "label-second:at-target" {
		t.Errorf("StopPropagation log = %v", log)
	}

	log = nil
	label.AddEventListener("click", NewListener(func(ev *Event) error {
		ev.StopImmediatePropagation()
		return nil
	}), false)
	label.AddEventListener("click", record(&log, "after-immediate"), false)
	label.Click()
	if len(log) != 1 || log[0] != "label-second:at-target" {
		t.Errorf("StopImmediatePropagation should skip later listeners, log = %v", log)
	}
}

func TestPreventDefault(t *testing.T) {
	doc := NewDocument()
	body := doc.Body()
	body.AddEventListener("submit", NewListener(func(ev *Event) error {
		ev.PreventDefault()
		return nil
	}), false)

	if body.DispatchEvent(NewEvent("submit")) {
		t.Error("DispatchEvent should return false after PreventDefault")
	}

	ev := NewEvent("submit")
	ev.Cancelable = false
	if !body.DispatchEvent(ev) {
		t.Error("PreventDefault has no effect on non-cancelable events")
	}
}

func TestAddEventListenerDeduplicates(t *testing.T) {
	doc := NewDocument()
	body := doc.Body()

	calls := 0
	l := NewListener(func(*Event) error { calls++; return nil })
	body.AddEventListener("click", l, false)
	body.AddEventListener("click", l, false)
	body.AddEventListener("click", l, true)

	if got := body.ListenerCount("click"); got != 2 {
		t.Errorf("ListenerCount = %d, want 2 (one per capture flag)", got)
	}
	body.Click()
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}

	body.RemoveEventListener("click", l, true)
	body.RemoveEventListener("click", l, false)
	body.RemoveEventListener("click", l, false)
	if body.ListenerCount("") != 0 {
		t.Errorf("ListenerCount after removal = %d", body.ListenerCount(""))
	}
}

func TestRemoveDuringDispatchAffectsOnlyLaterEvents(t *testing.T) {
	doc := NewDocument()
	body := doc.Body()

	calls := 0
	var second *Listener
	first := NewListener(func(*Event) error {
		body.RemoveEventListener("click", second, false)
		return nil
	})
	second = NewListener(func(*Event) error { calls++; return nil })
	body.AddEventListener("click", first, false)
	body.AddEventListener("click", second, false)

	body.Click()
	if calls != 1 {
		t.Fatalf("in-flight dispatch should still reach the removed listener, calls = %d", calls)
	}
	body.Click()
	if calls != 1 {
		t.Errorf("later dispatch should not reach the removed listener, calls = %d", calls)
	}
}

func TestListenerErrorsAreReported(t *testing.T) {
	var reported []error
	doc := NewDocument(WithErrorHandler(func(ev *Event, err error) {
		reported = append(reported, err)
	}))
	body := doc.Body()

	boom := stderrors.New("boom")
	ran := false
	body.AddEventListener("click", NewListener(func(*Event) error { return boom }), false)
	body.AddEventListener("click", NewListener(func(*Event) error { panic("kaboom") }), false)
	body.AddEventListener("click", NewListener(func(*Event) error { ran = true; return nil }), false)

	body.Click()

	if !ran {
		t.Error("dispatch should continue after failing listeners")
	}
	if len(reported) != 2 {
		t.Fatalf("reported = %v", reported)
	}
	if !stderrors.Is(reported[0], boom) {
		t.Errorf("first error = %v", reported[0])
	}
	if !errors.HasCode(reported[1], "E006") {
		t.Errorf("panic should be reported as E006, got %v", reported[1])
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseBubbling.String() != "bubbling" || Phase(99).String() != "unknown" {
		t.Error("unexpected Phase strings")
	}
}
