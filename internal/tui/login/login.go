// ABOUTME: Login screen collecting an engine id and session token
// ABOUTME: Points the user at the Discord OAuth handoff for a fresh token

package login

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bloodscript/companion-cli/internal/tui/styles"
)

// SubmitMsg is sent when the user submits a credential.
type SubmitMsg struct {
	Token string
}

// CancelledMsg is sent when the user backs out of login.
type CancelledMsg struct{}

// Model is the login screen.
type Model struct {
	apiURL   string
	engineID string
	token    string
	notice   string
	form     *huh.Form
	width    int
}

// New creates the login screen. A previous auth failure message can be
// shown via SetNotice.
func New(apiURL, engineID string) *Model {
	m := &Model{apiURL: apiURL, engineID: engineID}
	m.form = m.createForm()
	return m
}

func (m *Model) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Engine ID").
				Description("UUID of your chronicle's engine record").
				Placeholder("e.g. 3f6c...").
				Value(&m.engineID),
			huh.NewInput().
				Title("Session token").
				Description("Paste the token issued after the Discord login redirect").
				EchoMode(huh.EchoModePassword).
				Value(&m.token).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("token is required")
					}
					return nil
				}),
		).Title("Sign in"),
	).WithTheme(huh.ThemeBase())
}

// SetNotice displays an authentication failure message above the form.
func (m *Model) SetNotice(notice string) {
	m.notice = notice
}

// Reset rebuilds the form so a fresh login attempt starts clean.
func (m *Model) Reset() tea.Cmd {
	m.token = ""
	m.form = m.createForm()
	return m.form.Init()
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return m, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		token := strings.TrimSpace(m.token)
		return m, func() tea.Msg { return SubmitMsg{Token: token} }
	}

	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Blood Script Companion"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Enter your engine id, then sign in with Discord to obtain a token:"))
	sb.WriteString("\n")
	sb.WriteString(styles.ValueStyle.Render("  " + m.loginURL()))
	sb.WriteString("\n\n")

	if m.notice != "" {
		sb.WriteString(styles.InlineError.Render(m.notice))
		sb.WriteString("\n\n")
	}

	sb.WriteString(m.form.View())
	return sb.String()
}

func (m *Model) loginURL() string {
	url := m.apiURL + "/auth/discord/login"
	if m.engineID != "" {
		url += "?engineId=" + m.engineID
	}
	return url
}
