// ABOUTME: Tests for the storyteller tools tab
// ABOUTME: Covers the XP approval queue keys and view

package admin

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bloodscript/companion-cli/internal/client"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openItem(t *testing.T, m *Model, label string) tea.Cmd {
	t.Helper()
	for i, item := range menuItems {
		if item.label == label {
			m.cursor = i
			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			return cmd
		}
	}
	t.Fatalf("no menu item %q", label)
	return nil
}

func TestApproveXPMenuItemRequestsQueue(t *testing.T) {
	m := New(80, 24)

	cmd := openItem(t, m, "Approve XP")
	if cmd == nil {
		t.Fatal("expected a command from the menu item")
	}
	if _, ok := cmd().(PendingXPRequestedMsg); !ok {
		t.Fatal("expected PendingXPRequestedMsg")
	}
	if m.mode != modeXP {
		t.Errorf("mode = %d, want modeXP", m.mode)
	}
}

func TestApproveKeyEmitsSelectedSpend(t *testing.T) {
	m := New(80, 24)
	m.mode = modeXP
	m.SetPendingXP([]client.PendingXP{
		{XPID: "xp-1", CharacterID: "c-1", Amount: 5, Reason: "Celerity 2 -> 3"},
		{XPID: "xp-2", CharacterID: "c-2", Amount: 3},
	})

	m.Update(key("j"))
	_, cmd := m.Update(key("y"))
	if cmd == nil {
		t.Fatal("expected approve command")
	}
	msg, ok := cmd().(ApproveXPRequestedMsg)
	if !ok {
		t.Fatal("expected ApproveXPRequestedMsg")
	}
	if msg.XPID != "xp-2" {
		t.Errorf("approved %q, want xp-2", msg.XPID)
	}
}

func TestApproveKeyNoopOnEmptyQueue(t *testing.T) {
	m := New(80, 24)
	m.mode = modeXP

	if _, cmd := m.Update(key("y")); cmd != nil {
		t.Error("expected no command with nothing pending")
	}
}

func TestXPViewShowsAmountAndReason(t *testing.T) {
	m := New(80, 24)
	m.mode = modeXP
	m.SetPendingXP([]client.PendingXP{
		{XPID: "xp-1", CharacterID: "char-abcdef123", Amount: 5, Reason: "Celerity 2 -> 3"},
	})

	view := m.View()
	if !strings.Contains(view, "5 xp") {
		t.Errorf("view missing amount:\n%s", view)
	}
	if !strings.Contains(view, "Celerity 2 -> 3") {
		t.Errorf("view missing reason:\n%s", view)
	}
}
