// ABOUTME: Appeal screen shown to non-owners of a banned engine
// ABOUTME: Displays the ban reason and collects an appeal message

package appeal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bloodscript/companion-cli/internal/tui/icons"
	"github.com/bloodscript/companion-cli/internal/tui/styles"
)

// SubmittedMsg is sent when the user submits an appeal.
type SubmittedMsg struct {
	Message string
}

// Model is the banned/appeal screen.
type Model struct {
	reason    string
	message   string
	notice    string
	submitted bool
	form      *huh.Form
}

// New creates the appeal screen for the given ban reason.
func New(reason string) *Model {
	m := &Model{reason: reason}
	m.form = m.createForm()
	return m
}

func (m *Model) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Appeal message").
				Description("Explain why this engine's ban should be lifted").
				CharLimit(2000).
				Value(&m.message),
		).Title("Submit an appeal"),
	).WithTheme(huh.ThemeBase())
}

// SetNotice shows the outcome of the last appeal submission.
func (m *Model) SetNotice(notice string) {
	m.notice = notice
}

// MarkSubmitted switches the screen to its confirmation state.
func (m *Model) MarkSubmitted() {
	m.submitted = true
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.submitted {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, func() tea.Msg { return SubmittedMsg{Message: strings.TrimSpace(m.message)} }
	}

	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.StatusCritical.Render(icons.Banned.String() + " This engine has been banned."))
	sb.WriteString("\n")
	if m.reason != "" {
		sb.WriteString(styles.Subtitle.Render("Reason: " + m.reason))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if m.notice != "" {
		sb.WriteString(styles.InlineError.Render(m.notice))
		sb.WriteString("\n\n")
	}

	if m.submitted {
		sb.WriteString(styles.StatusOK.Render(icons.CheckOK.String() + " Appeal submitted. The owner will review it."))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(m.form.View())
	return sb.String()
}
