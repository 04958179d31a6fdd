// ABOUTME: Coterie roster and detail view for the dashboard
// ABOUTME: Detail fetches go through the app via request messages

package coteries

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bloodscript/companion-cli/internal/client"
	"github.com/bloodscript/companion-cli/internal/tui/icons"
	"github.com/bloodscript/companion-cli/internal/tui/styles"
)

// DetailRequestedMsg asks the app to fetch a coterie's full record.
type DetailRequestedMsg struct {
	CoterieID string
}

// RefreshRequestedMsg asks the app to reload the roster.
type RefreshRequestedMsg struct{}

// Model is the coteries tab.
type Model struct {
	list   []client.CoterieSummary
	cursor int
	notice string
	detail *client.CoterieDetail

	width  int
	height int
}

// New creates an empty coteries tab; the roster arrives via SetList.
func New(width, height int) *Model {
	return &Model{width: width, height: height}
}

// SetList replaces the roster.
func (m *Model) SetList(list []client.CoterieSummary) {
	m.list = list
	if m.cursor >= len(list) {
		m.cursor = 0
	}
}

// SetDetail shows a fetched coterie record.
func (m *Model) SetDetail(detail *client.CoterieDetail) {
	m.detail = detail
}

// SetNotice shows an action outcome inline.
func (m *Model) SetNotice(notice string) {
	m.notice = notice
}

// SetSize updates the tab dimensions.
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
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.detail != nil {
		if key.String() == "esc" || key.String() == "backspace" {
			m.detail = nil
		}
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.list)-1 {
			m.cursor++
		}
	case "enter":
		if c := m.selectedCoterie(); c != nil {
			id := c.CoterieID
			return m, func() tea.Msg { return DetailRequestedMsg{CoterieID: id} }
		}
	case "r":
		m.notice = ""
		return m, func() tea.Msg { return RefreshRequestedMsg{} }
	}

	return m, nil
}

func (m *Model) selectedCoterie() *client.CoterieSummary {
	if m.cursor < 0 || m.cursor >= len(m.list) {
		return nil
	}
	return &m.list[m.cursor]
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	if m.notice != "" {
		sb.WriteString(styles.InlineError.Render(m.notice))
		sb.WriteString("\n")
	}

	if m.detail != nil {
		sb.WriteString(m.detailView())
		return sb.String()
	}

	sb.WriteString(styles.Title.Render(icons.Coterie.String() + " Coteries"))
	sb.WriteString("\n")

	if len(m.list) == 0 {
		sb.WriteString(styles.Subtitle.Render("No coteries in this chronicle."))
		return sb.String()
	}

	for i, c := range m.list {
		marker := "  "
		rowStyle := lipgloss.NewStyle()
		if i == m.cursor {
			marker = styles.KeyStyle.Render("> ")
			rowStyle = rowStyle.Bold(true)
		}
		sb.WriteString(marker + rowStyle.Render(c.Name))
		sb.WriteString("\n")
		meta := c.Type
		if c.Domain != "" {
			if meta != "" {
				meta += ", "
			}
			meta += c.Domain
		}
		if meta != "" {
			sb.WriteString("    " + styles.Subtitle.Render(meta))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (m *Model) detailView() string {
	d := m.detail
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Coterie.String() + " " + d.Name))
	sb.WriteString("\n")

	meta := d.Type
	if d.Domain != "" {
		if meta != "" {
			meta += ", domain: "
		} else {
			meta = "domain: "
		}
		meta += d.Domain
	}
	if meta != "" {
		sb.WriteString(styles.Subtitle.Render(meta))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(d.Members) == 0 {
		sb.WriteString(styles.Subtitle.Render("No members."))
	} else {
		sb.WriteString(styles.KeyStyle.Render("Members"))
		sb.WriteString("\n")
		for _, member := range d.Members {
			name := member.Name
			if name == "" {
				name = member.CharacterID
			}
			sb.WriteString("  " + icons.Vampire.String() + " " + name)
			if member.Clan != "" {
				sb.WriteString(" " + styles.Subtitle.Render("("+member.Clan+")"))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("esc back"))
	return sb.String()
}
