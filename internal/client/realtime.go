// ABOUTME: Realtime push channel over a single websocket connection
// ABOUTME: Delivers world snapshots and domain events for one session

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// Push event names carried on the realtime channel.
const (
	EventWorld                  = "world"
	EventError                  = "error"
	EventCharacterUpdated       = "character_updated"
	EventActiveCharacterChanged = "active_character_changed"
	EventXPApplied              = "xp_applied"
)

// Event is one push frame. Data is the raw payload; world events carry a
// full WorldState snapshot, never a partial update.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data,omitempty"`
}

// World decodes the event payload as a world snapshot.
func (e Event) World() (*WorldState, error) {
	if e.Name != EventWorld {
		return nil, fmt.Errorf("not a world event: %s", e.Name)
	}
	return decodeWorld(e.Data)
}

// Realtime is the push channel for one authenticated session. Each
// session opens at most one; the owner closes it on logout or auth
// failure together with the rest of the session state.
type Realtime struct {
	conn   *websocket.Conn
	events chan Event

	done      chan struct{}
	closeOnce sync.Once
}

// DialRealtime opens the push channel against the API base URL,
// authenticating with the session credential.
func DialRealtime(ctx context.Context, baseURL, token string) (*Realtime, error) {
	wsURL, err := realtimeURL(baseURL, token)
	if err != nil {
		return nil, err
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if resp != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("cannot connect to realtime channel: %w", err)
	}

	rt := &Realtime{
		conn:   conn,
		events: make(chan Event, 8),
		done:   make(chan struct{}),
	}
	go rt.readLoop()
	return rt, nil
}

// Events returns the channel of incoming push events. It is closed when
// the connection ends; a read failure delivers a final error event first.
func (rt *Realtime) Events() <-chan Event {
	return rt.events
}

// Close tears down the connection. Safe to call more than once.
func (rt *Realtime) Close() {
	rt.closeOnce.Do(func() {
		close(rt.done)
		rt.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		rt.conn.Close()
	})
}

func (rt *Realtime) readLoop() {
	defer close(rt.events)
	for {
		var ev Event
		if err := rt.conn.ReadJSON(&ev); err != nil {
			select {
			case <-rt.done:
			default:
				data, _ := json.Marshal(map[string]string{"error": err.Error()})
				rt.deliver(Event{Name: EventError, Data: data})
			}
			return
		}
		if ev.Name == "" {
			continue
		}
		if !rt.deliver(ev) {
			return
		}
	}
}

// deliver hands an event to the consumer, giving up once Close has run
// so readLoop never wedges on a full buffer nobody is draining.
func (rt *Realtime) deliver(ev Event) bool {
	select {
	case rt.events <- ev:
		return true
	case <-rt.done:
		return false
	}
}

// realtimeURL derives the websocket endpoint from the HTTP base URL.
func realtimeURL(baseURL, token string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("invalid API URL scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/realtime"
	if token != "" {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
