// ABOUTME: Tests for storyteller mutation calls
// ABOUTME: Verifies CSRF headers and world-snapshot responses

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func stSession() *Session {
	return &Session{
		UserID:    "u-st",
		Role:      RoleStoryteller,
		CSRFToken: "csrf-st",
		EngineID:  "e-1",
	}
}

func TestTickClock_SendsCSRFAndReturnsWorld(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/companion/st/clocks/tick" {
			t.Errorf("expected tick path, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("x-csrf-token"); got != "csrf-st" {
			t.Errorf("expected csrf header from session, got %q", got)
		}
		var input TickClockInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if input.ClockIDPrefix != "abcd1234" || input.Amount != 2 {
			t.Errorf("unexpected input: %+v", input)
		}
		json.NewEncoder(w).Encode(WorldState{
			Clocks: []Clock{{ClockID: "abcd1234-full", Title: "SI Raid", Progress: 4, Segments: 6}},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	world, err := c.TickClock(context.Background(), stSession(), &TickClockInput{
		ClockIDPrefix: "abcd1234",
		Amount:        2,
		Reason:        "Witness testimony spreads.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(world.Clocks) != 1 || world.Clocks[0].Progress != 4 {
		t.Errorf("expected updated world snapshot, got %+v", world)
	}
}

func TestSetMap_WrappedWorldResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]WorldState{
			"world": {MapURL: "https://maps.example/embed"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	world, err := c.SetMap(context.Background(), stSession(), &SetMapInput{MapURL: "https://maps.example/embed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if world.MapURL != "https://maps.example/embed" {
		t.Errorf("expected map url in snapshot, got %q", world.MapURL)
	}
}

func TestCreateClock_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "segments must be positive"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.CreateClock(context.Background(), stSession(), &CreateClockInput{Title: "Bad", Segments: 0})
	if err == nil {
		t.Fatal("expected error for 400, got nil")
	}
}

func TestApproveIntent_NoCSRFWithoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-csrf-token"); got != "" {
			t.Errorf("expected no csrf header without session, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}))
	defer server.Close()

	c := New(server.URL)
	if err := c.ApproveIntent(context.Background(), nil, "i-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListPendingXP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/companion/st/xp/pending" {
			t.Errorf("expected pending xp path, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]PendingXP{
			{XPID: "xp-1", CharacterID: "c-1", Amount: 5, Reason: "Celerity 2 -> 3"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	pending, err := c.ListPendingXP(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 || pending[0].XPID != "xp-1" || pending[0].Amount != 5 {
		t.Errorf("unexpected pending list: %+v", pending)
	}
}

func TestApproveXP_SendsCSRFAndID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/companion/st/xp/approve" {
			t.Errorf("expected approve path, got %s", r.URL.Path)
		}
		if got := r.Header.Get("x-csrf-token"); got != "csrf-st" {
			t.Errorf("expected csrf header from session, got %q", got)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if body["xpId"] != "xp-1" {
			t.Errorf("expected xpId in body, got %v", body)
		}
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}))
	defer server.Close()

	c := New(server.URL)
	if err := c.ApproveXP(context.Background(), stSession(), "xp-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListEngines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/owner/engines" {
			t.Errorf("expected /owner/engines, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string][]Engine{
			"engines": {{EngineID: "e-1", Name: "Chicago", Banned: true, BannedReason: "spam", RedTotal: 2}},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	engines, err := c.ListEngines(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(engines) != 1 || !engines[0].Banned || engines[0].RedTotal != 2 {
		t.Errorf("unexpected engines: %+v", engines)
	}
}
