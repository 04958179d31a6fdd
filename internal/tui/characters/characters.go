// ABOUTME: Character roster and V5 sheet viewer for the dashboard
// ABOUTME: Sheet fields render through the sheet package to absorb schema drift

package characters

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bloodscript/companion-cli/internal/client"
	"github.com/bloodscript/companion-cli/internal/sheet"
	"github.com/bloodscript/companion-cli/internal/tui/icons"
	"github.com/bloodscript/companion-cli/internal/tui/styles"
	"github.com/bloodscript/companion-cli/internal/tui/widgets"
)

// SheetRequestedMsg asks the app to fetch a character's sheet.
type SheetRequestedMsg struct {
	CharacterID string
}

// ActivateRequestedMsg asks the app to mark a character active.
type ActivateRequestedMsg struct {
	CharacterID string
}

// RefreshRequestedMsg asks the app to reload the roster.
type RefreshRequestedMsg struct{}

// XPSpendRequestedMsg asks the app to submit an XP spend request.
type XPSpendRequestedMsg struct {
	Input client.XPSpendInput
}

// SheetEditRequestedMsg asks the app to write one sheet field.
type SheetEditRequestedMsg struct {
	CharacterID string
	Field       string
	Value       string
}

// Model is the characters tab.
type Model struct {
	list   []client.CharacterSummary
	cursor int
	notice string

	// Sheet view state; nil sheet means the roster is showing.
	sheetID   string
	sheetData client.CharacterSheet
	showSheet bool

	// XP spend prompt state.
	xpForm   *huh.Form
	xpType   string
	xpAmount string
	xpReason string

	// Field edit prompt state.
	editForm  *huh.Form
	editField string
	editValue string

	width  int
	height int
}

// New creates an empty characters tab; the roster arrives via SetList.
func New(width, height int) *Model {
	return &Model{width: width, height: height}
}

// SetList replaces the roster.
func (m *Model) SetList(list []client.CharacterSummary) {
	m.list = list
	if m.cursor >= len(list) {
		m.cursor = 0
	}
}

// SetSheet shows a fetched character sheet.
func (m *Model) SetSheet(characterID string, s client.CharacterSheet) {
	m.sheetID = characterID
	m.sheetData = s
	m.showSheet = true
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
	if m.xpForm != nil {
		return m.updateXPForm(msg)
	}
	if m.editForm != nil {
		return m.updateEditForm(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.showSheet {
		switch key.String() {
		case "esc", "backspace":
			m.showSheet = false
		case "x":
			m.xpType = ""
			m.xpAmount = ""
			m.xpReason = ""
			m.xpForm = m.createXPForm()
			return m, m.xpForm.Init()
		case "e":
			m.editField = sheet.FieldHunger
			m.editValue = ""
			m.editForm = m.createEditForm()
			return m, m.editForm.Init()
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
		if c := m.selected(); c != nil {
			id := c.CharacterID
			return m, func() tea.Msg { return SheetRequestedMsg{CharacterID: id} }
		}
	case "a":
		if c := m.selected(); c != nil && !c.IsActive {
			id := c.CharacterID
			return m, func() tea.Msg { return ActivateRequestedMsg{CharacterID: id} }
		}
	case "r":
		m.notice = ""
		return m, func() tea.Msg { return RefreshRequestedMsg{} }
	}

	return m, nil
}

func (m *Model) updateXPForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.xpForm = nil
		return m, nil
	}

	form, cmd := m.xpForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.xpForm = f
	}

	if m.xpForm.State == huh.StateCompleted {
		current, _ := strconv.Atoi(strings.TrimSpace(m.xpAmount))
		input := client.XPSpendInput{
			CharacterID: m.sheetID,
			Type:        m.xpType,
			Current:     current,
			Reason:      strings.TrimSpace(m.xpReason),
		}
		m.xpForm = nil
		return m, func() tea.Msg { return XPSpendRequestedMsg{Input: input} }
	}

	return m, cmd
}

func (m *Model) updateEditForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.editForm = nil
		return m, nil
	}

	form, cmd := m.editForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.editForm = f
	}

	if m.editForm.State == huh.StateCompleted {
		edit := SheetEditRequestedMsg{
			CharacterID: m.sheetID,
			Field:       m.editField,
			Value:       strings.TrimSpace(m.editValue),
		}
		m.editForm = nil
		return m, func() tea.Msg { return edit }
	}

	return m, cmd
}

func (m *Model) createEditForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Field").
				Options(
					huh.NewOption("Hunger", sheet.FieldHunger),
					huh.NewOption("Willpower", sheet.FieldWillpower),
					huh.NewOption("Health", sheet.FieldHealth),
					huh.NewOption("Humanity", sheet.FieldHumanity),
					huh.NewOption("Blood pool", sheet.FieldBloodPool),
					huh.NewOption("Concept", sheet.FieldConcept),
					huh.NewOption("Predator type", sheet.FieldPredatorType),
				).
				Value(&m.editField),
			huh.NewInput().
				Title("New value").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("value is required")
					}
					return nil
				}).
				Value(&m.editValue),
		).Title("Edit sheet field"),
	).WithTheme(huh.ThemeBase())
}

func (m *Model) createXPForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What are you raising?").
				Options(
					huh.NewOption("Attribute", "attribute"),
					huh.NewOption("Skill", "skill"),
					huh.NewOption("Discipline", "discipline"),
					huh.NewOption("Blood Potency", "blood_potency"),
				).
				Value(&m.xpType),
			huh.NewInput().
				Title("Current rating").
				Placeholder("2").
				Validate(func(s string) error {
					if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("enter a number")
					}
					return nil
				}).
				Value(&m.xpAmount),
			huh.NewInput().
				Title("What and why").
				Placeholder("Celerity 2 -> 3, learned from sire").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("reason is required")
					}
					return nil
				}).
				Value(&m.xpReason),
		).Title("Spend XP"),
	).WithTheme(huh.ThemeBase())
}

func (m *Model) selected() *client.CharacterSummary {
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

	if m.xpForm != nil {
		sb.WriteString(m.xpForm.View())
		return sb.String()
	}
	if m.editForm != nil {
		sb.WriteString(m.editForm.View())
		return sb.String()
	}

	if m.showSheet {
		sb.WriteString(m.sheetView())
		return sb.String()
	}

	sb.WriteString(styles.Title.Render(icons.Vampire.String() + " Characters"))
	sb.WriteString("\n")

	if len(m.list) == 0 {
		sb.WriteString(styles.Subtitle.Render("No characters yet."))
		return sb.String()
	}

	for i, c := range m.list {
		marker := "  "
		rowStyle := lipgloss.NewStyle()
		if i == m.cursor {
			marker = styles.KeyStyle.Render("> ")
			rowStyle = rowStyle.Bold(true)
		}
		line := marker + rowStyle.Render(c.Name)
		if c.IsActive {
			line += " " + styles.StatusOK.Render(icons.Star.String()+" active")
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		meta := c.Clan
		if c.Concept != "" {
			if meta != "" {
				meta += ", "
			}
			meta += c.Concept
		}
		if meta != "" {
			sb.WriteString("    " + styles.Subtitle.Render(meta))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (m *Model) sheetView() string {
	s := m.sheetData
	var sb strings.Builder

	name := sheet.String(s, sheet.FieldName)
	if name == "" {
		name = "Unnamed"
	}
	sb.WriteString(styles.Title.Render(icons.Vampire.String() + " " + name))
	sb.WriteString("\n")

	identity := []string{}
	if clan := sheet.String(s, sheet.FieldClan); clan != "" {
		identity = append(identity, clan)
	}
	if concept := sheet.String(s, sheet.FieldConcept); concept != "" {
		identity = append(identity, concept)
	}
	if pred := sheet.String(s, sheet.FieldPredatorType); pred != "" {
		identity = append(identity, "Predator: "+pred)
	}
	if len(identity) > 0 {
		sb.WriteString(styles.Subtitle.Render(strings.Join(identity, " | ")))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	hunger := sheet.Int(s, sheet.FieldHunger, 0)
	sb.WriteString(styles.KeyStyle.Render("Hunger    ") + widgets.Dots(hunger, 5))
	sb.WriteString("\n")
	sb.WriteString(styles.KeyStyle.Render("Willpower ") + styles.ValueStyle.Render(strconv.Itoa(sheet.Int(s, sheet.FieldWillpower, 0))))
	sb.WriteString("\n")
	sb.WriteString(styles.KeyStyle.Render("Health    ") + styles.ValueStyle.Render(strconv.Itoa(sheet.Int(s, sheet.FieldHealth, 0))))
	sb.WriteString("\n")
	sb.WriteString(styles.KeyStyle.Render("Humanity  ") + styles.ValueStyle.Render(strconv.Itoa(sheet.Int(s, sheet.FieldHumanity, 0))))
	sb.WriteString("\n")

	pool := sheet.Int(s, sheet.FieldBloodPool, -1)
	if pool >= 0 {
		max := sheet.Int(s, sheet.FieldBloodPoolMax, pool)
		sb.WriteString(styles.KeyStyle.Render("Blood     ") + widgets.SegmentTrackerWithLabel(pool, max, styles.Primary, styles.Surface))
		sb.WriteString("\n")
	}

	if bane := sheet.String(s, sheet.FieldBaneText); bane != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.KeyStyle.Render("Bane") + " " + styles.Subtitle.Render(bane))
		if sev := sheet.Int(s, sheet.FieldBaneSeverity, 0); sev > 0 {
			sb.WriteString(styles.Subtitle.Render(fmt.Sprintf(" (severity %d)", sev)))
		}
		sb.WriteString("\n")
	}

	if disciplines := sheet.Traits(s, sheet.FieldDisciplines); len(disciplines) > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.Title.Render("Disciplines"))
		sb.WriteString("\n")
		for _, d := range disciplines {
			sb.WriteString(fmt.Sprintf("  %-16s %s\n", d.Name, widgets.Dots(d.Dots, 5)))
		}
	}

	if rituals := sheet.Rituals(s); len(rituals) > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.Title.Render("Rituals"))
		sb.WriteString("\n")
		for _, r := range rituals {
			sb.WriteString(fmt.Sprintf("  %-16s %s", r.Name, widgets.Dots(r.Level, 5)))
			if r.Discipline != "" {
				sb.WriteString(" " + styles.Subtitle.Render(r.Discipline))
			}
			sb.WriteString("\n")
			if r.Description != "" {
				sb.WriteString("    " + styles.Subtitle.Render(r.Description))
				sb.WriteString("\n")
			}
		}
	}

	if merits := sheet.Traits(s, sheet.FieldMerits); len(merits) > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.Title.Render("Merits"))
		sb.WriteString("\n")
		for _, t := range merits {
			sb.WriteString("  " + t.Name)
			if t.Dots > 0 {
				sb.WriteString(" " + widgets.Dots(t.Dots, 5))
			}
			sb.WriteString("\n")
		}
	}

	if flaws := sheet.Traits(s, sheet.FieldFlaws); len(flaws) > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.Title.Render("Flaws"))
		sb.WriteString("\n")
		for _, t := range flaws {
			sb.WriteString("  " + t.Name)
			if t.Dots > 0 {
				sb.WriteString(" " + widgets.Dots(t.Dots, 5))
			}
			sb.WriteString("\n")
		}
	}

	if xp := sheet.Int(s, sheet.FieldXP, -1); xp >= 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.KeyStyle.Render("XP ") + styles.ValueStyle.Render(strconv.Itoa(xp)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("e edit field  x spend xp  esc back"))
	return sb.String()
}
