// ABOUTME: Tests for the companion API client
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMe_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/companion/me" {
			t.Errorf("expected path /companion/me, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected bearer credential, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Session{
			UserID:        "u-1",
			Role:          RolePlayer,
			CSRFToken:     "csrf-abc",
			DiscordUserID: "42",
			EngineID:      "e-1",
		})
	}))
	defer server.Close()

	c := New(server.URL).WithToken("tok-1")
	sess, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.CSRFToken != "csrf-abc" {
		t.Errorf("expected CSRF token seeded from response, got %q", sess.CSRFToken)
	}
	if sess.Token != "tok-1" {
		t.Errorf("expected credential carried on session, got %q", sess.Token)
	}
	if sess.Role != RolePlayer {
		t.Errorf("expected role player, got %s", sess.Role)
	}
}

func TestMe_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Me(context.Background())
	if err == nil {
		t.Fatal("expected error for 401, got nil")
	}
}

func TestWorld_BareShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/companion/world" {
			t.Errorf("expected path /companion/world, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(WorldState{Heat: 3})
	}))
	defer server.Close()

	c := New(server.URL)
	world, err := c.World(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if world.Heat != 3 {
		t.Errorf("expected heat 3, got %d", world.Heat)
	}
}

func TestWorld_WrappedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]WorldState{
			"world": {Heat: 7, Banned: true, BannedReason: "policy"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	world, err := c.World(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if world.Heat != 7 {
		t.Errorf("expected heat 7, got %d", world.Heat)
	}
	if !world.Banned || world.BannedReason != "policy" {
		t.Errorf("expected ban flag carried through, got %+v", world)
	}
}

func TestWorld_ConnectionError(t *testing.T) {
	c := New("http://localhost:1")
	_, err := c.World(context.Background())
	if err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestWorld_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(WorldState{})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := c.World(ctx)
	if err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}

func TestDecodeWorld_NilWrapperFallsBack(t *testing.T) {
	// {"world": null} must not yield a nil snapshot
	w, err := decodeWorld([]byte(`{"world": null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w == nil {
		t.Fatal("expected non-nil world")
	}
}
