package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"gridlife/world"
)

func wsMux(hub *Hub) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)
	return mux
}

// dialHub starts a test server around the hub and connects one client.
func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(wsMux(hub))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestClientGreetedWithGridConfig(t *testing.T) {
	hub := NewHub(nil)
	conn := dialHub(t, hub)

	var greeting struct {
		Type   string `json:"type"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&greeting); err != nil {
		t.Fatalf("reading greeting: %v", err)
	}

	if greeting.Type != "config" {
		t.Errorf("greeting type = %q, want config", greeting.Type)
	}
	if greeting.Width != world.Width || greeting.Height != world.Height {
		t.Errorf("greeting dims = %dx%d, want %dx%d", greeting.Width, greeting.Height, world.Width, world.Height)
	}
}

func TestCommandsReachCallback(t *testing.T) {
	got := make(chan Command, 1)
	hub := NewHub(func(c Command) { got <- c })
	conn := dialHub(t, hub)

	if err := conn.WriteJSON(map[string]string{"type": "pause"}); err != nil {
		t.Fatalf("sending command: %v", err)
	}

	select {
	case c := <-got:
		if c != CommandPause {
			t.Errorf("command = %q, want %q", c, CommandPause)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pause command never reached the callback")
	}

	// Unknown commands are ignored, not fatal.
	if err := conn.WriteJSON(map[string]string{"type": "set_energy"}); err != nil {
		t.Fatalf("sending unknown command: %v", err)
	}
	select {
	case c := <-got:
		t.Errorf("unknown command forwarded as %q", c)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBroadcastReachesClients(t *testing.T) {
	hub := NewHub(nil)
	conn := dialHub(t, hub)

	// Drain the greeting first.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var greeting map[string]any
	if err := conn.ReadJSON(&greeting); err != nil {
		t.Fatalf("reading greeting: %v", err)
	}

	// Wait for registration before broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	w := world.New(42)
	w.ScatterAgents(3)
	hub.Broadcast(w.Snapshot())

	var snap world.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if len(snap.Agents) != 3 {
		t.Errorf("broadcast snapshot has %d agents, want 3", len(snap.Agents))
	}
	if snap.Width != world.Width {
		t.Errorf("broadcast snapshot width = %d, want %d", snap.Width, world.Width)
	}
}
