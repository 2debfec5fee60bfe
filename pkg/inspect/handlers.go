package inspect

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/html"

	"github.com/vango-dev/domkit/internal/errors"
	"github.com/vango-dev/domkit/pkg/delegate"
	"github.com/vango-dev/domkit/pkg/dom"
)

// ListenerInfo describes one registration.
type ListenerInfo struct {
	ID        int    `json:"id,omitempty"`
	Node      string `json:"node"`
	Event     string `json:"event"`
	Selector  string `json:"selector,omitempty"`
	Delegated bool   `json:"delegated"`
}

// AddListenerRequest is the body of POST /listeners.
type AddListenerRequest struct {
	Node     string `json:"node"`
	Event    string `json:"event"`
	Selector string `json:"selector,omitempty"`
}

// DispatchRequest is the body of POST /dispatch.
type DispatchRequest struct {
	Target     string `json:"target"`
	Event      string `json:"event"`
	Bubbles    *bool  `json:"bubbles,omitempty"`
	Cancelable *bool  `json:"cancelable,omitempty"`
}

// DispatchResponse reports what a dispatch did.
type DispatchResponse struct {
	Event            string       `json:"event"`
	Target           string       `json:"target"`
	DefaultPrevented bool         `json:"defaultPrevented"`
	Invocations      []Invocation `json:"invocations"`
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	s.ui.Lock()
	defer s.ui.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.kit.Document().Render(w); err != nil {
		s.logger.Error("render failed", "error", err)
	}
}

func (s *Server) handleListListeners(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("node")

	s.ui.Lock()
	node, err := s.find(query)
	if err != nil {
		s.ui.Unlock()
		s.writeError(w, err)
		return
	}
	entries := s.kit.Engine().Entries(node)
	out := make([]ListenerInfo, 0, len(entries))
	claimed := make(map[int]bool)
	for _, e := range entries {
		info := ListenerInfo{
			Node:      Describe(node),
			Event:     e.EventName,
			Selector:  e.Selector,
			Delegated: e.Delegated(),
		}
		if b := s.bindingFor(node, e, claimed); b != nil {
			info.ID = b.id
			claimed[b.id] = true
		}
		out = append(out, info)
	}
	s.ui.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddListener(w http.ResponseWriter, r *http.Request) {
	var req AddListenerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.New("E005").WithSubject("request body").Wrap(err))
		return
	}
	if req.Event == "" {
		s.writeError(w, errors.New("E005").WithSubject("event").WithDetail("An event name is required."))
		return
	}

	s.ui.Lock()
	node, err := s.find(req.Node)
	if err != nil {
		s.ui.Unlock()
		s.writeError(w, err)
		return
	}
	s.nextID++
	b := &binding{
		id:       s.nextID,
		node:     node,
		query:    req.Node,
		event:    req.Event,
		selector: req.Selector,
	}
	b.handler = delegate.Func(s.recorder(b))
	s.kit.Engine().On(node, b.event, b.selector, b.handler)
	s.listeners[b.id] = b
	s.ui.Unlock()

	s.logger.Info("listener bound",
		"id", b.id,
		"node", req.Node,
		"event", req.Event,
		"selector", req.Selector,
	)
	writeJSON(w, http.StatusCreated, b.info())
}

func (s *Server) handleRemoveListener(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, errors.New("E005").WithSubject("id").Wrap(err))
		return
	}

	s.ui.Lock()
	b, ok := s.listeners[id]
	if ok {
		s.kit.Engine().Off(b.node, b.event, b.selector, b.handler)
		delete(s.listeners, id)
	}
	s.ui.Unlock()

	if !ok {
		s.writeError(w, errors.New("E007").WithSubject(strconv.Itoa(id)))
		return
	}
	s.logger.Info("listener removed", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearListeners(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("node")

	s.ui.Lock()
	node, err := s.find(query)
	if err != nil {
		s.ui.Unlock()
		s.writeError(w, err)
		return
	}
	removed := s.kit.Engine().Len(node)
	s.kit.Engine().OffAll(node)
	for id, b := range s.listeners {
		if b.node == node {
			delete(s.listeners, id)
		}
	}
	s.ui.Unlock()

	s.logger.Info("listeners cleared", "node", query, "count", removed)
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.New("E005").WithSubject("request body").Wrap(err))
		return
	}
	if req.Event == "" {
		s.writeError(w, errors.New("E005").WithSubject("event").WithDetail("An event name is required."))
		return
	}

	s.ui.Lock()
	target, err := s.find(req.Target)
	if err != nil {
		s.ui.Unlock()
		s.writeError(w, err)
		return
	}
	ev := dom.NewEvent(req.Event)
	if req.Bubbles != nil {
		ev.Bubbles = *req.Bubbles
	}
	if req.Cancelable != nil {
		ev.Cancelable = *req.Cancelable
	}
	s.pending = nil
	target.DispatchEvent(ev)
	resp := DispatchResponse{
		Event:            req.Event,
		Target:           Describe(target),
		DefaultPrevented: ev.DefaultPrevented(),
		Invocations:      append([]Invocation{}, s.pending...),
	}
	s.pending = nil
	s.ui.Unlock()

	s.stream.broadcast(resp.Invocations)
	writeJSON(w, http.StatusOK, resp)
}

// recorder returns the handler bound for b. It runs during dispatch, with
// s.ui held by handleDispatch.
func (s *Server) recorder(b *binding) func(dom.Node, *dom.Event) {
	return func(this dom.Node, ev *dom.Event) {
		s.pending = append(s.pending, Invocation{
			Type:     "invocation",
			Listener: b.id,
			Event:    ev.Type,
			Selector: b.selector,
			This:     Describe(this),
			Target:   Describe(ev.Target),
			Phase:    ev.Phase.String(),
		})
	}
}

// find resolves a selector to one element. Callers hold s.ui.
func (s *Server) find(query string) (*dom.Element, error) {
	if query == "" {
		return nil, errors.New("E005").WithSubject("node").WithDetail("A node selector is required.")
	}
	el, err := s.kit.Document().QuerySelector(query)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, errors.New("E021").WithSubject(query)
	}
	return el, nil
}

// bindingFor returns the binding behind entry e, skipping ids already
// matched to earlier duplicates. Callers hold s.ui.
func (s *Server) bindingFor(node *dom.Element, e delegate.Entry, claimed map[int]bool) *binding {
	var best *binding
	for _, b := range s.listeners {
		if claimed[b.id] || b.node != node || delegate.Handler(b.handler) != e.Handler {
			continue
		}
		if best == nil || b.id < best.id {
			best = b
		}
	}
	return best
}

func (b *binding) info() ListenerInfo {
	return ListenerInfo{
		ID:        b.id,
		Node:      Describe(b.node),
		Event:     b.event,
		Selector:  b.selector,
		Delegated: b.selector != "",
	}
}

// Describe renders a node as tag#id.class, the form used in reports.
func Describe(n dom.Node) string {
	el, ok := n.(*dom.Element)
	if !ok || el == nil {
		return fmt.Sprintf("%T", n)
	}
	switch el.Type() {
	case html.ElementNode:
	case html.DocumentNode:
		return "#document"
	case html.TextNode:
		return "#text"
	default:
		return "#node"
	}
	var b strings.Builder
	b.WriteString(el.Tag())
	if id := el.ID(); id != "" {
		b.WriteString("#" + id)
	}
	for _, c := range strings.Fields(el.ClassName()) {
		b.WriteString("." + c)
	}
	return b.String()
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	de := errors.FromError(err, "E005")
	var status int
	switch de.Code {
	case "E021", "E007":
		status = http.StatusNotFound
	case "E005", "E003":
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	s.logger.Debug("request failed", "code", de.Code, "error", de.Error())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintln(w, de.FormatJSON())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
