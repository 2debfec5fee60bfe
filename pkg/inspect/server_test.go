package inspect

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/domkit"
	"github.com/vango-dev/domkit/pkg/dom"
	"github.com/vango-dev/domkit/pkg/observe"
)

const page = `<!DOCTYPE html>
<html><body>
  <ul id="menu">
    <li class="item" id="one"><b id="bold">one</b></li>
    <li id="two">two</li>
  </ul>
</body></html>`

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	doc, err := dom.ParseString(page, dom.WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	reg := prometheus.NewRegistry()
	kit, err := domkit.Install(doc,
		domkit.WithLogger(logger),
		domkit.WithObserver(observe.NewMetrics(observe.WithRegistry(reg))),
	)
	if err != nil {
		t.Fatal(err)
	}
	s := New(kit, WithLogger(logger), WithGatherer(reg))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func addListener(t *testing.T, base string, req AddListenerRequest) ListenerInfo {
	t.Helper()
	resp := do(t, http.MethodPost, base+"/listeners", req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /listeners status = %d", resp.StatusCode)
	}
	return decode[ListenerInfo](t, resp)
}

func TestDocument(t *testing.T) {
	_, ts := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/document", nil)
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `<ul id="menu">`) {
		t.Errorf("GET /document = %d %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestListenerLifecycle(t *testing.T) {
	_, ts := newTestServer(t)

	first := addListener(t, ts.URL, AddListenerRequest{Node: "#menu", Event: "click", Selector: "li"})
	second := addListener(t, ts.URL, AddListenerRequest{Node: "#menu", Event: "click", Selector: "li"})
	direct := addListener(t, ts.URL, AddListenerRequest{Node: "#menu", Event: "click"})
	if first.ID == second.ID || !first.Delegated || direct.Delegated {
		t.Fatalf("unexpected bindings %+v %+v %+v", first, second, direct)
	}
	if first.Node != "ul#menu" {
		t.Errorf("node = %q, want ul#menu", first.Node)
	}

	listed := decode[[]ListenerInfo](t, do(t, http.MethodGet, ts.URL+"/listeners?node=%23menu", nil))
	if len(listed) != 3 {
		t.Fatalf("listed %d listeners, want 3", len(listed))
	}
	for i, want := range []int{first.ID, second.ID, direct.ID} {
		if listed[i].ID != want {
			t.Errorf("listed[%d].ID = %d, want %d", i, listed[i].ID, want)
		}
	}

	if resp := do(t, http.MethodDelete, ts.URL+"/listeners/"+strconv.Itoa(first.ID), nil); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d", resp.StatusCode)
	}
	if resp := do(t, http.MethodDelete, ts.URL+"/listeners/"+strconv.Itoa(first.ID), nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", resp.StatusCode)
	}

	listed = decode[[]ListenerInfo](t, do(t, http.MethodGet, ts.URL+"/listeners?node=%23menu", nil))
	if len(listed) != 2 || listed[0].ID != second.ID {
		t.Fatalf("after delete: %+v", listed)
	}

	cleared := decode[map[string]int](t, do(t, http.MethodDelete, ts.URL+"/listeners?node=%23menu", nil))
	if cleared["removed"] != 2 {
		t.Errorf("removed = %d, want 2", cleared["removed"])
	}
	listed = decode[[]ListenerInfo](t, do(t, http.MethodGet, ts.URL+"/listeners?node=%23menu", nil))
	if len(listed) != 0 {
		t.Errorf("after clear: %+v", listed)
	}
	if resp := do(t, http.MethodDelete, ts.URL+"/listeners/"+strconv.Itoa(second.ID), nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("DELETE after clear status = %d, want 404", resp.StatusCode)
	}
}

func TestDispatch(t *testing.T) {
	_, ts := newTestServer(t)
	delegated := addListener(t, ts.URL, AddListenerRequest{Node: "#menu", Event: "click", Selector: "li.item"})
	direct := addListener(t, ts.URL, AddListenerRequest{Node: "#menu", Event: "click"})

	resp := decode[DispatchResponse](t, do(t, http.MethodPost, ts.URL+"/dispatch", DispatchRequest{Target: "#bold", Event: "click"}))
	if len(resp.Invocations) != 2 {
		t.Fatalf("invocations = %+v, want 2", resp.Invocations)
	}
	if got := resp.Invocations[0]; got.Listener != delegated.ID || got.This != "li#one.item" || got.Target != "b#bold" || got.Phase != "bubbling" {
		t.Errorf("delegated invocation = %+v", got)
	}
	if got := resp.Invocations[1]; got.Listener != direct.ID || got.This != "ul#menu" {
		t.Errorf("direct invocation = %+v", got)
	}

	resp = decode[DispatchResponse](t, do(t, http.MethodPost, ts.URL+"/dispatch", DispatchRequest{Target: "#two", Event: "click"}))
	if len(resp.Invocations) != 1 || resp.Invocations[0].Listener != direct.ID {
		t.Errorf("unmatched delegation should only run the direct listener: %+v", resp.Invocations)
	}

	noBubble := false
	resp = decode[DispatchResponse](t, do(t, http.MethodPost, ts.URL+"/dispatch", DispatchRequest{Target: "#bold", Event: "click", Bubbles: &noBubble}))
	if len(resp.Invocations) != 0 {
		t.Errorf("non-bubbling event reached the host: %+v", resp.Invocations)
	}
}

func TestErrors(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"missing node", http.MethodGet, "/listeners", nil, http.StatusBadRequest, "E005"},
		{"unknown node", http.MethodGet, "/listeners?node=%23nope", nil, http.StatusNotFound, "E021"},
		{"invalid selector", http.MethodGet, "/listeners?node=%5B", nil, http.StatusBadRequest, "E003"},
		{"missing event", http.MethodPost, "/listeners", AddListenerRequest{Node: "#menu"}, http.StatusBadRequest, "E005"},
		{"bad id", http.MethodDelete, "/listeners/abc", nil, http.StatusBadRequest, "E005"},
		{"dispatch unknown target", http.MethodPost, "/dispatch", DispatchRequest{Target: "#nope", Event: "click"}, http.StatusNotFound, "E021"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, ts.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decode[map[string]any](t, resp)
			if body["code"] != tt.code {
				t.Errorf("code = %v, want %s", body["code"], tt.code)
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	_, ts := newTestServer(t)
	addListener(t, ts.URL, AddListenerRequest{Node: "#menu", Event: "click", Selector: "li.item"})
	do(t, http.MethodPost, ts.URL+"/dispatch", DispatchRequest{Target: "#bold", Event: "click"})

	resp := do(t, http.MethodGet, ts.URL+"/metrics", nil)
	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{
		`domkit_delegate_listeners{event="click",kind="delegated"} 1`,
		`domkit_delegate_dispatches_total{event="click",kind="delegated",outcome="invoked"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestWebSocketStream(t *testing.T) {
	s, ts := newTestServer(t)
	listener := addListener(t, ts.URL, AddListenerRequest{Node: "#menu", Event: "click", Selector: "li"})

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for s.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	do(t, http.MethodPost, ts.URL+"/dispatch", DispatchRequest{Target: "#bold", Event: "click"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var inv Invocation
	if err := conn.ReadJSON(&inv); err != nil {
		t.Fatalf("read: %v", err)
	}
	if inv.Type != "invocation" || inv.Listener != listener.ID || inv.This != "li#one.item" {
		t.Errorf("invocation = %+v", inv)
	}
}

func TestRun(t *testing.T) {
	s, _ := newTestServer(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, addr) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/document")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestDescribe(t *testing.T) {
	doc := dom.NewDocument()
	li, err := doc.Create("li", dom.Attrs{"id": "one", "class": "item  open"})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		node dom.Node
		want string
	}{
		{li, "li#one.item.open"},
		{doc.Root(), "#document"},
		{doc.CreateText("hi"), "#text"},
	}
	for _, tt := range tests {
		if got := Describe(tt.node); got != tt.want {
			t.Errorf("Describe = %q, want %q", got, tt.want)
		}
	}
}
