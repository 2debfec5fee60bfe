package dom

import "slices"

// AddEventListener implements Node.
func (e *Element) AddEventListener(eventType string, l *Listener, capture bool) {
	if l == nil {
		return
	}
	for _, r := range e.listeners[eventType] {
		if r.listener == l && r.capture == capture {
			return
		}
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]registration)
	}
	e.listeners[eventType] = append(e.listeners[eventType], registration{listener: l, capture: capture})
}

// RemoveEventListener implements Node.
func (e *Element) RemoveEventListener(eventType string, l *Listener, capture bool) {
	regs := e.listeners[eventType]
	for i, r := range regs {
		if r.listener == l && r.capture == capture {
			// Copy so that snapshots taken by an in-flight dispatch stay intact.
			regs = slices.Delete(slices.Clone(regs), i, i+1)
			if len(regs) == 0 {
				delete(e.listeners, eventType)
			} else {
				e.listeners[eventType] = regs
			}
			return
		}
	}
}

// ListenerCount returns the number of native listeners for eventType, or
// for all event types when eventType is empty.
func (e *Element) ListenerCount(eventType string) int {
	if eventType != "" {
		return len(e.listeners[eventType])
	}
	n := 0
	for _, regs := range e.listeners {
		n += len(regs)
	}
	return n
}

type pathEntry struct {
	el   *Element
	regs []registration
}

// DispatchEvent sends ev through the tree with e as its target. It returns
// false if a listener called PreventDefault on a cancelable event.
//
// The propagation path and each node's listener list are captured before
// the first listener runs.
func (e *Element) DispatchEvent(ev *Event) bool {
	ev.Target = e
	ev.stopped = false
	ev.stoppedImmediate = false

	var path []pathEntry
	for n := e; n != nil; n = n.Parent() {
		path = append(path, pathEntry{el: n, regs: slices.Clone(n.listeners[ev.Type])})
	}

	for i := len(path) - 1; i > 0 && !ev.stopped; i-- {
		e.doc.fire(path[i], ev, PhaseCapturing)
	}
	if !ev.stopped {
		e.doc.fire(path[0], ev, PhaseAtTarget)
	}
	if ev.Bubbles {
		for i := 1; i < len(path) && !ev.stopped; i++ {
			e.doc.fire(path[i], ev, PhaseBubbling)
		}
	}

	ev.CurrentTarget = nil
	ev.Phase = PhaseNone
	return !ev.defaultPrevented
}

// Click dispatches a bubbling click event at e.
func (e *Element) Click() bool {
	return e.DispatchEvent(NewEvent("click"))
}

func (d *Document) fire(p pathEntry, ev *Event, phase Phase) {
	ev.CurrentTarget = p.el
	ev.Phase = phase
	for _, r := range p.regs {
		switch {
		case phase == PhaseCapturing && !r.capture:
			continue
		case phase == PhaseBubbling && r.capture:
			continue
		}
		d.invoke(r.listener, ev)
		if ev.stoppedImmediate {
			return
		}
	}
}
