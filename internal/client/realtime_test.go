// ABOUTME: Tests for the realtime push channel
// ABOUTME: Uses an httptest websocket server to drive event frames

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// pushServer upgrades one connection and writes the given frames.
func pushServer(t *testing.T, frames []Event, wantToken string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/realtime" {
			t.Errorf("expected path /realtime, got %s", r.URL.Path)
		}
		if wantToken != "" && r.URL.Query().Get("token") != wantToken {
			t.Errorf("expected token %q, got %q", wantToken, r.URL.Query().Get("token"))
		}
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteJSON(f); err != nil {
				return
			}
		}
		// Hold the connection open until the client closes it.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func mustRaw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestDialRealtime_DeliversWorldEvent(t *testing.T) {
	frames := []Event{
		{Name: EventWorld, Data: mustRaw(t, map[string]WorldState{"world": {Heat: 5}})},
	}
	server := pushServer(t, frames, "tok-rt")
	defer server.Close()

	rt, err := DialRealtime(context.Background(), server.URL, "tok-rt")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer rt.Close()

	select {
	case ev := <-rt.Events():
		if ev.Name != EventWorld {
			t.Fatalf("expected world event, got %s", ev.Name)
		}
		world, err := ev.World()
		if err != nil {
			t.Fatalf("decode world: %v", err)
		}
		if world.Heat != 5 {
			t.Errorf("expected heat 5, got %d", world.Heat)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for world event")
	}
}

func TestRealtime_ServerDropEmitsErrorEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		// Drop without a close handshake.
		conn.UnderlyingConn().Close()
	}))
	defer server.Close()

	rt, err := DialRealtime(context.Background(), server.URL, "")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer rt.Close()

	select {
	case ev, ok := <-rt.Events():
		if !ok {
			t.Fatal("expected a final error event before channel close")
		}
		if ev.Name != EventError {
			t.Fatalf("expected error event, got %s", ev.Name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error event")
	}

	// Channel must close after the terminal event.
	select {
	case _, ok := <-rt.Events():
		if ok {
			t.Error("expected channel closed after error event")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestRealtime_CloseSuppressesErrorEvent(t *testing.T) {
	server := pushServer(t, nil, "")
	defer server.Close()

	rt, err := DialRealtime(context.Background(), server.URL, "")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	rt.Close()
	rt.Close() // idempotent

	select {
	case ev, ok := <-rt.Events():
		if ok {
			t.Errorf("expected clean channel close, got event %s", ev.Name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestRealtime_CloseUnblocksUndrainedConnection(t *testing.T) {
	// More frames than the event buffer holds, with nothing draining.
	frames := make([]Event, 12)
	for i := range frames {
		frames[i] = Event{Name: EventXPApplied, Data: mustRaw(t, map[string]int{"seq": i})}
	}
	server := pushServer(t, frames, "")
	defer server.Close()

	rt, err := DialRealtime(context.Background(), server.URL, "")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}

	// Let readLoop fill the buffer and block on the next send.
	time.Sleep(100 * time.Millisecond)
	rt.Close()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-rt.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("events channel never closed after Close")
		}
	}
}

func TestRealtimeURL(t *testing.T) {
	tests := []struct {
		base  string
		token string
		want  string
	}{
		{"http://localhost:3000", "abc", "ws://localhost:3000/realtime?token=abc"},
		{"https://companion.example", "abc", "wss://companion.example/realtime?token=abc"},
		{"http://localhost:3000/", "", "ws://localhost:3000/realtime"},
	}
	for _, tc := range tests {
		got, err := realtimeURL(tc.base, tc.token)
		if err != nil {
			t.Errorf("realtimeURL(%q): %v", tc.base, err)
			continue
		}
		if got != tc.want {
			t.Errorf("realtimeURL(%q) = %q, want %q", tc.base, got, tc.want)
		}
	}

	if _, err := realtimeURL("ftp://nope", ""); err == nil || !strings.Contains(err.Error(), "scheme") {
		t.Errorf("expected scheme error, got %v", err)
	}
}
