// ABOUTME: Tests for app screen routing across session, ban, and push states
// ABOUTME: Drives the model with messages directly against httptest backends

package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/bloodscript/companion-cli/internal/client"
	"github.com/bloodscript/companion-cli/internal/session"
	"github.com/bloodscript/companion-cli/internal/tui/worldpanel"
)

type backend struct {
	me         any
	world      any
	worldCalls atomic.Int32
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/companion/me", func(w http.ResponseWriter, r *http.Request) {
		if b.me == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "no session"})
			return
		}
		json.NewEncoder(w).Encode(b.me)
	})
	mux.HandleFunc("/companion/world", func(w http.ResponseWriter, r *http.Request) {
		b.worldCalls.Add(1)
		json.NewEncoder(w).Encode(b.world)
	})
	mux.HandleFunc("/companion/moderators/me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]bool{"moderator": false})
	})
	return mux
}

func newTestApp(t *testing.T, b *backend, opts Options) (*App, *backend) {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	api := client.New(srv.URL)
	store := session.NewStore(t.TempDir())
	resolver := session.NewResolver(store, api)
	if opts.APIURL == "" {
		opts.APIURL = srv.URL
	}
	return NewApp(context.Background(), api, resolver, opts), b
}

// resolve runs the session resolution step synchronously and feeds the
// result through Update, mirroring what Init's command batch does.
func resolve(t *testing.T, a *App, override string) {
	t.Helper()
	msg := a.resolveSession(override)()
	a.Update(msg)
}

func fetchWorld(t *testing.T, a *App) {
	t.Helper()
	msg := a.fetchWorld()()
	a.Update(msg)
}

func TestNoCredentialLandsOnLoginWithoutWorldFetch(t *testing.T) {
	a, b := newTestApp(t, &backend{}, Options{})

	resolve(t, a, "")

	if a.screen != ScreenLogin {
		t.Errorf("screen = %v, want ScreenLogin", a.screen)
	}
	if got := b.worldCalls.Load(); got != 0 {
		t.Errorf("world fetched %d times before login", got)
	}
	if a.sess != nil {
		t.Error("expected no session")
	}
}

func TestPlayerWithCleanWorldSeesDashboard(t *testing.T) {
	a, _ := newTestApp(t, &backend{
		me:    map[string]any{"user_id": "u1", "role": "player", "csrfToken": "c1"},
		world: map[string]any{"heat": 3},
	}, Options{})

	resolve(t, a, "token-1")
	fetchWorld(t, a)

	if a.screen != ScreenDashboard {
		t.Fatalf("screen = %v, want ScreenDashboard", a.screen)
	}
	snapshot := a.cache.Snapshot()
	if snapshot == nil || snapshot.Heat != 3 {
		t.Fatalf("snapshot = %+v, want heat 3", snapshot)
	}
	if got := worldpanel.HeatLabel(snapshot.Heat); got != "3" {
		t.Errorf("heat label = %q, want %q", got, "3")
	}
}

func TestBannedPlayerSeesAppeal(t *testing.T) {
	a, _ := newTestApp(t, &backend{
		me:    map[string]any{"user_id": "u1", "role": "st", "csrfToken": "c1", "discord_user_id": "42"},
		world: map[string]any{"heat": 0, "banned": true, "banned_reason": "harassment"},
	}, Options{OwnerID: "99"})

	resolve(t, a, "token-1")
	fetchWorld(t, a)

	if a.screen != ScreenAppeal {
		t.Fatalf("screen = %v, want ScreenAppeal", a.screen)
	}
}

func TestBannedOwnerSeesOwnerConsole(t *testing.T) {
	a, _ := newTestApp(t, &backend{
		me:    map[string]any{"user_id": "u1", "role": "player", "csrfToken": "c1", "discord_user_id": "99"},
		world: map[string]any{"heat": 0, "banned": true, "banned_reason": "harassment"},
	}, Options{OwnerID: "99"})

	resolve(t, a, "token-1")
	fetchWorld(t, a)

	if a.screen != ScreenOwner {
		t.Fatalf("screen = %v, want ScreenOwner", a.screen)
	}
}

func TestPushErrorTearsDownSession(t *testing.T) {
	a, _ := newTestApp(t, &backend{
		me:    map[string]any{"user_id": "u1", "role": "player", "csrfToken": "c1"},
		world: map[string]any{"heat": 2},
	}, Options{})

	resolve(t, a, "token-1")
	fetchWorld(t, a)
	if a.screen != ScreenDashboard {
		t.Fatalf("setup: screen = %v, want ScreenDashboard", a.screen)
	}

	a.Update(pushEventMsg{event: client.Event{Name: client.EventError}, ok: true})

	if a.screen != ScreenLogin {
		t.Errorf("screen = %v, want ScreenLogin", a.screen)
	}
	if a.sess != nil {
		t.Error("session survived the pushed error")
	}
	if a.cache.Loaded() {
		t.Error("world cache survived the pushed error")
	}
}

func TestPushWorldReplacesSnapshotWithoutScreenChange(t *testing.T) {
	a, _ := newTestApp(t, &backend{
		me:    map[string]any{"user_id": "u1", "role": "player", "csrfToken": "c1"},
		world: map[string]any{"heat": 2},
	}, Options{})

	resolve(t, a, "token-1")
	fetchWorld(t, a)

	data, _ := json.Marshal(map[string]any{"heat": 7})
	a.Update(pushEventMsg{event: client.Event{Name: client.EventWorld, Data: data}, ok: true})

	if a.screen != ScreenDashboard {
		t.Errorf("screen = %v, want ScreenDashboard", a.screen)
	}
	if got := a.cache.Snapshot().Heat; got != 7 {
		t.Errorf("heat = %d, want 7 after push", got)
	}
}

func TestWorldFetchFailureWithoutCacheShowsError(t *testing.T) {
	a, _ := newTestApp(t, &backend{
		me:    map[string]any{"user_id": "u1", "role": "player", "csrfToken": "c1"},
		world: map[string]any{"heat": 2},
	}, Options{})

	resolve(t, a, "token-1")
	a.Update(worldFetchedMsg{err: context.DeadlineExceeded})

	if a.screen != ScreenError {
		t.Errorf("screen = %v, want ScreenError", a.screen)
	}
}

func TestWorldFetchFailureKeepsStaleSnapshot(t *testing.T) {
	a, _ := newTestApp(t, &backend{
		me:    map[string]any{"user_id": "u1", "role": "player", "csrfToken": "c1"},
		world: map[string]any{"heat": 2},
	}, Options{})

	resolve(t, a, "token-1")
	fetchWorld(t, a)
	a.Update(worldFetchedMsg{err: context.DeadlineExceeded})

	if a.screen != ScreenDashboard {
		t.Errorf("screen = %v, want ScreenDashboard on stale cache", a.screen)
	}
	if got := a.cache.Snapshot().Heat; got != 2 {
		t.Errorf("heat = %d, want stale 2", got)
	}
}
