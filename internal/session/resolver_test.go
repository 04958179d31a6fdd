// ABOUTME: Tests for session resolution and credential lifecycle
// ABOUTME: Covers override precedence and clearing on auth failure

package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/bloodscript/companion-cli/internal/client"
)

func identityServer(t *testing.T, wantToken string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/companion/me" {
			t.Errorf("expected /companion/me, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer "+wantToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(client.Session{
			UserID:        "u-1",
			Role:          client.RolePlayer,
			CSRFToken:     "csrf-1",
			DiscordUserID: "42",
			EngineID:      "e-1",
		})
	}))
}

func TestResolve_StoredCredential(t *testing.T) {
	var calls atomic.Int32
	server := identityServer(t, "stored-tok", &calls)
	defer server.Close()

	store := NewStore(t.TempDir())
	if err := store.Save("stored-tok"); err != nil {
		t.Fatalf("save: %v", err)
	}

	r := NewResolver(store, client.New(server.URL))
	sess, err := r.Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.UserID != "u-1" || sess.Role != client.RolePlayer || sess.CSRFToken != "csrf-1" {
		t.Errorf("session not fully populated: %+v", sess)
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly one identity check, got %d", calls.Load())
	}
}

func TestResolve_OverrideTakesPrecedenceAndPersists(t *testing.T) {
	var calls atomic.Int32
	server := identityServer(t, "fresh-tok", &calls)
	defer server.Close()

	store := NewStore(t.TempDir())
	if err := store.Save("stale-tok"); err != nil {
		t.Fatalf("save: %v", err)
	}

	r := NewResolver(store, client.New(server.URL))
	sess, err := r.Resolve(context.Background(), "fresh-tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token != "fresh-tok" {
		t.Errorf("expected session to carry the override credential, got %q", sess.Token)
	}
	if got := store.Load(); got != "fresh-tok" {
		t.Errorf("expected override to overwrite stored credential, got %q", got)
	}
}

func TestResolve_FailureClearsCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := NewStore(t.TempDir())
	if err := store.Save("bad-tok"); err != nil {
		t.Fatalf("save: %v", err)
	}

	r := NewResolver(store, client.New(server.URL))
	_, err := r.Resolve(context.Background(), "")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if got := store.Load(); got != "" {
		t.Errorf("expected stored credential cleared after failure, got %q", got)
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())
	if got := store.Load(); got != "" {
		t.Errorf("expected empty token for missing file, got %q", got)
	}
}

func TestStore_ClearMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Clear(); err != nil {
		t.Errorf("expected nil clearing missing file, got %v", err)
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save("tok-123"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := store.Load(); got != "tok-123" {
		t.Errorf("expected tok-123, got %q", got)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := store.Load(); got != "" {
		t.Errorf("expected empty after clear, got %q", got)
	}
}
