package inspect

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Invocation is one handler run seen by a recording listener.
type Invocation struct {
	Type     string `json:"type"`
	Listener int    `json:"listener"`
	Event    string `json:"event"`
	Selector string `json:"selector,omitempty"`
	This     string `json:"this"`
	Target   string `json:"target"`
	Phase    string `json:"phase"`
}

// stream fans invocations out to WebSocket clients.
type stream struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader
}

func newStream(checkOrigin func(*http.Request) bool) *stream {
	return &stream{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

func (s *stream) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// Clients only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

func (s *stream) broadcast(inv []Invocation) {
	if len(inv) == 0 {
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	for _, msg := range inv {
		data, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		for _, client := range clients {
			if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
				s.mu.Lock()
				delete(s.clients, client)
				s.mu.Unlock()
				client.Close()
			}
		}
	}
}

func (s *stream) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *stream) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
}
