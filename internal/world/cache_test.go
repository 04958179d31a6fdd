// ABOUTME: Tests for the world snapshot cache
// ABOUTME: Verifies the last-full-snapshot-wins replace law

package world

import (
	"context"
	"errors"
	"testing"

	"github.com/bloodscript/companion-cli/internal/client"
)

func fetchReturning(w *client.WorldState, err error) FetchFunc {
	return func(ctx context.Context) (*client.WorldState, error) {
		return w, err
	}
}

func TestLoad_ReplacesWholesale(t *testing.T) {
	c := New()

	first := &client.WorldState{Heat: 1, Arcs: []client.Arc{{ArcID: "a-1", Title: "Prelude"}}}
	if err := c.Load(context.Background(), fetchReturning(first, nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Snapshot() != first {
		t.Error("expected cache to hold the fetched snapshot")
	}

	// Second fetch has no arcs; the old arcs must not survive a replace.
	second := &client.WorldState{Heat: 2}
	if err := c.Load(context.Background(), fetchReturning(second, nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Snapshot() != second {
		t.Error("expected cache replaced by second fetch")
	}
	if len(c.Snapshot().Arcs) != 0 {
		t.Error("expected no merge: arcs from the first snapshot leaked through")
	}
}

func TestLoad_FailureKeepsPreviousSnapshot(t *testing.T) {
	c := New()
	stale := &client.WorldState{Heat: 3}
	if err := c.Load(context.Background(), fetchReturning(stale, nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fetchErr := errors.New("backend down")
	if err := c.Load(context.Background(), fetchReturning(nil, fetchErr)); !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error surfaced, got %v", err)
	}
	if c.Snapshot() != stale {
		t.Error("expected stale snapshot retained after fetch failure")
	}
}

func TestApplyPush_LastWriteWins(t *testing.T) {
	c := New()

	// Interleave loads and pushes; the observable value must always equal
	// the payload of whichever call completed most recently.
	a := &client.WorldState{Heat: 1}
	b := &client.WorldState{Heat: 2}
	d := &client.WorldState{Heat: 3}

	c.ApplyPush(a)
	if c.Snapshot() != a {
		t.Error("expected push snapshot a")
	}
	if err := c.Load(context.Background(), fetchReturning(b, nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Snapshot() != b {
		t.Error("expected load snapshot b")
	}
	c.ApplyPush(d)
	if c.Snapshot() != d {
		t.Error("expected push snapshot d")
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.ApplyPush(&client.WorldState{Heat: 9})
	if !c.Loaded() {
		t.Fatal("expected loaded cache")
	}
	c.Clear()
	if c.Loaded() || c.Snapshot() != nil {
		t.Error("expected empty cache after clear")
	}
}
