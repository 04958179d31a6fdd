// ABOUTME: Owner console listing every engine with ban and safety state
// ABOUTME: Ban, unban, and inspect actions emit request messages to the app

package ownerconsole

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bloodscript/companion-cli/internal/client"
	"github.com/bloodscript/companion-cli/internal/tui/icons"
	"github.com/bloodscript/companion-cli/internal/tui/styles"
	"github.com/bloodscript/companion-cli/internal/tui/widgets"
)

// RefreshRequestedMsg asks the app to reload the engine roster.
type RefreshRequestedMsg struct{}

// BanRequestedMsg asks the app to ban an engine.
type BanRequestedMsg struct {
	EngineID string
	Reason   string
}

// UnbanRequestedMsg asks the app to unban an engine.
type UnbanRequestedMsg struct {
	EngineID string
}

// InspectRequestedMsg asks the app to fetch an engine's full record.
type InspectRequestedMsg struct {
	EngineID string
}

// Model is the owner console screen.
type Model struct {
	engines []client.Engine
	cursor  int
	notice  string
	inspect json.RawMessage

	// Ban reason prompt state; non-nil while the form is open.
	banForm   *huh.Form
	banReason string
	banTarget string

	width  int
	height int
}

// New creates an empty owner console; the roster arrives via SetEngines.
func New(width, height int) *Model {
	return &Model{width: width, height: height}
}

// SetEngines replaces the roster.
func (m *Model) SetEngines(engines []client.Engine) {
	m.engines = engines
	if m.cursor >= len(engines) {
		m.cursor = 0
	}
}

// SetNotice shows an action outcome inline.
func (m *Model) SetNotice(notice string) {
	m.notice = notice
}

// SetInspect shows a fetched engine record.
func (m *Model) SetInspect(record json.RawMessage) {
	m.inspect = record
}

// SetSize updates the console dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.banForm != nil {
		return m.updateBanForm(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.engines)-1 {
			m.cursor++
		}
	case "r":
		m.notice = ""
		return m, func() tea.Msg { return RefreshRequestedMsg{} }
	case "b":
		if e := m.selected(); e != nil && !e.Banned {
			m.banTarget = e.EngineID
			m.banReason = ""
			m.banForm = m.createBanForm(e.Name)
			return m, m.banForm.Init()
		}
	case "u":
		if e := m.selected(); e != nil && e.Banned {
			id := e.EngineID
			return m, func() tea.Msg { return UnbanRequestedMsg{EngineID: id} }
		}
	case "i":
		if e := m.selected(); e != nil {
			id := e.EngineID
			return m, func() tea.Msg { return InspectRequestedMsg{EngineID: id} }
		}
	case "esc":
		m.inspect = nil
	}

	return m, nil
}

func (m *Model) updateBanForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.banForm = nil
		return m, nil
	}

	form, cmd := m.banForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.banForm = f
	}

	if m.banForm.State == huh.StateCompleted {
		target, reason := m.banTarget, strings.TrimSpace(m.banReason)
		if reason == "" {
			reason = "Policy violation"
		}
		m.banForm = nil
		return m, func() tea.Msg { return BanRequestedMsg{EngineID: target, Reason: reason} }
	}

	return m, cmd
}

func (m *Model) createBanForm(engineName string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Ban reason").
				Description("Engine: " + engineName).
				Placeholder("Policy violation").
				Value(&m.banReason),
		).Title("Ban engine"),
	).WithTheme(huh.ThemeBase())
}

func (m *Model) selected() *client.Engine {
	if m.cursor < 0 || m.cursor >= len(m.engines) {
		return nil
	}
	return &m.engines[m.cursor]
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Shield.String() + " Owner Console"))
	sb.WriteString("\n")

	if m.notice != "" {
		sb.WriteString(styles.InlineError.Render(m.notice))
		sb.WriteString("\n")
	}

	if m.banForm != nil {
		sb.WriteString(m.banForm.View())
		return sb.String()
	}

	if len(m.engines) == 0 {
		sb.WriteString(styles.Subtitle.Render("No engines registered."))
		return sb.String()
	}

	for i, e := range m.engines {
		marker := "  "
		rowStyle := lipgloss.NewStyle()
		if i == m.cursor {
			marker = styles.KeyStyle.Render("> ")
			rowStyle = rowStyle.Bold(true)
		}
		sb.WriteString(marker + rowStyle.Render(e.Name) + " " + widgets.BanBadge(e.Banned))
		if e.Banned && e.BannedReason != "" {
			sb.WriteString(" " + styles.Subtitle.Render(e.BannedReason))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("    red %d (%d open)  yellow %d (%d open)  green %d\n",
			e.RedTotal, e.RedUnresolved, e.YellowTotal, e.YellowUnresolved, e.GreenTotal))
	}

	if m.inspect != nil {
		sb.WriteString("\n")
		sb.WriteString(styles.Title.Render("Engine Details"))
		sb.WriteString("\n")
		sb.WriteString(indentJSON(m.inspect))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("esc close"))
	}

	return sb.String()
}

func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
