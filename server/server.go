// Package server streams world snapshots to websocket clients and relays
// their pause/resume commands back to the simulation loop. Clients get a
// read-only view; the only mutation paths are pausing the tick cadence and
// stopping the process.
package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"gridlife/world"
)

// Command is a control message from a client.
type Command string

const (
	CommandPause  Command = "pause"
	CommandResume Command = "resume"
)

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub tracks connected clients and fans snapshots out to them.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}

	onCommand func(Command)
}

// NewHub creates a hub. onCommand is invoked from client read goroutines;
// it must be safe for concurrent use (or nil to ignore commands).
func NewHub(onCommand func(Command)) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:   make(map[*client]struct{}),
		onCommand: onCommand,
	}
}

// HandleWS upgrades an HTTP request to a websocket client connection.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	// Greet with the fixed grid dimensions so clients can size their view.
	_ = c.send(map[string]any{
		"type":   "config",
		"width":  world.Width,
		"height": world.Height,
	})

	for {
		var msg struct {
			Type string `json:"type"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		switch Command(msg.Type) {
		case CommandPause, CommandResume:
			if h.onCommand != nil {
				h.onCommand(Command(msg.Type))
			}
		default:
			// unknown commands are ignored; clients cannot mutate the world
		}
	}

	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast sends a snapshot to every connected client, dropping clients
// whose connection fails.
func (h *Hub) Broadcast(snap *world.Snapshot) {
	h.mu.Lock()
	list := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		list = append(list, c)
	}
	h.mu.Unlock()

	for _, c := range list {
		if err := c.send(snap); err != nil {
			slog.Info("dropping websocket client", "error", err)
			h.mu.Lock()
			delete(h.clients, c)
			h.mu.Unlock()
			c.conn.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ListenAndServe serves the websocket endpoint at /ws on addr. It blocks.
func ListenAndServe(addr string, hub *Hub) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)
	return http.ListenAndServe(addr, mux)
}
