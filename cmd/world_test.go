// ABOUTME: Tests for the world command
// ABOUTME: Verifies snapshot formatting and error exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/bloodscript/companion-cli/internal/client"
)

func TestWorldCommand_Human(t *testing.T) {
	server := newSessionBackend(t, map[string]any{
		"heat": 4,
		"arcs": []map[string]any{
			{"arc_id": "a1", "title": "The Second Inquisition", "status": "active"},
		},
		"clocks": []map[string]any{
			{"clock_id": "c1", "title": "Masquerade Breach", "progress": 2, "segments": 6, "nightly": true},
		},
		"mapUrl": "https://maps.example.com/sf",
	})
	useBackend(t, server)

	var buf bytes.Buffer
	exitCode := runWorld(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	out := buf.String()
	for _, want := range []string{"Heat: 4", "The Second Inquisition", "2/6", "(nightly)", "https://maps.example.com/sf"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWorldCommand_WrappedResponse(t *testing.T) {
	server := newSessionBackend(t, map[string]any{
		"world": map[string]any{"heat": 6},
	})
	useBackend(t, server)

	var buf bytes.Buffer
	exitCode := runWorld(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Heat: 6")) {
		t.Errorf("wrapped world not decoded:\n%s", buf.String())
	}
}

func TestWorldCommand_JSON(t *testing.T) {
	server := newSessionBackend(t, map[string]any{"heat": 2})
	useBackend(t, server)
	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	exitCode := runWorld(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	var parsed client.WorldState
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed.Heat != 2 {
		t.Errorf("heat = %d, want 2", parsed.Heat)
	}
}

func TestFormatWorldHuman_Banned(t *testing.T) {
	out := formatWorldHuman(&client.WorldState{
		Banned:       true,
		BannedReason: "harassment",
	})

	if !bytes.Contains([]byte(out), []byte("BANNED: harassment")) {
		t.Errorf("expected ban notice, got:\n%s", out)
	}
}
