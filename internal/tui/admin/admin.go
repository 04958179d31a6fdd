// ABOUTME: Storyteller tools tab with map, clock, arc, and intent actions
// ABOUTME: Each tool opens a huh form and emits a typed request message

package admin

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bloodscript/companion-cli/internal/client"
	"github.com/bloodscript/companion-cli/internal/tui/icons"
	"github.com/bloodscript/companion-cli/internal/tui/styles"
	"github.com/bloodscript/companion-cli/internal/tui/widgets"
)

// SetMapRequestedMsg asks the app to set the engine map URL.
type SetMapRequestedMsg struct {
	Input client.SetMapInput
}

// CreateClockRequestedMsg asks the app to create a clock.
type CreateClockRequestedMsg struct {
	Input client.CreateClockInput
}

// TickClockRequestedMsg asks the app to advance a clock.
type TickClockRequestedMsg struct {
	Input client.TickClockInput
}

// CreateArcRequestedMsg asks the app to create an arc.
type CreateArcRequestedMsg struct {
	Input client.CreateArcInput
}

// SetArcStatusRequestedMsg asks the app to move an arc through its lifecycle.
type SetArcStatusRequestedMsg struct {
	Input client.SetArcStatusInput
}

// IntentsRequestedMsg asks the app to reload the pending AI intents.
type IntentsRequestedMsg struct{}

// ApproveIntentRequestedMsg asks the app to approve an intent.
type ApproveIntentRequestedMsg struct {
	IntentID string
}

// RejectIntentRequestedMsg asks the app to reject an intent.
type RejectIntentRequestedMsg struct {
	IntentID string
}

// StoplightsRequestedMsg asks the app to reload raised safety signals.
type StoplightsRequestedMsg struct{}

// PendingXPRequestedMsg asks the app to reload XP spends awaiting approval.
type PendingXPRequestedMsg struct{}

// ApproveXPRequestedMsg asks the app to approve a pending XP spend.
type ApproveXPRequestedMsg struct {
	XPID string
}

type mode int

const (
	modeMenu mode = iota
	modeForm
	modeIntents
	modeStoplights
	modeXP
)

type menuItem struct {
	label string
	icon  icons.Icon
	open  func(m *Model) tea.Cmd
}

// Model is the storyteller tools tab.
type Model struct {
	mode   mode
	cursor int
	notice string

	form      *huh.Form
	submit    func(m *Model) tea.Msg
	formTitle string

	intents      []client.AiIntent
	intentCursor int

	stoplights []client.Stoplight

	pendingXP []client.PendingXP
	xpCursor  int

	// Form field bindings.
	mapURL       string
	clockTitle   string
	clockSegs    string
	clockNightly bool
	clockDesc    string
	tickPrefix   string
	tickAmount   string
	tickReason   string
	arcTitle     string
	arcSynopsis  string
	arcPrefix    string
	arcStatus    string
	arcOutcome   string

	width  int
	height int
}

var menuItems = []menuItem{
	{"Set map URL", icons.Map, (*Model).openMapForm},
	{"Create clock", icons.ClockRun, (*Model).openCreateClockForm},
	{"Tick clock", icons.ClockRun, (*Model).openTickClockForm},
	{"Create arc", icons.Arc, (*Model).openCreateArcForm},
	{"Set arc status", icons.Arc, (*Model).openArcStatusForm},
	{"Review AI intents", icons.Settings, (*Model).openIntents},
	{"Approve XP", icons.Star, (*Model).openPendingXP},
	{"Safety signals", icons.Shield, (*Model).openStoplights},
}

// New creates the storyteller tools tab at its menu.
func New(width, height int) *Model {
	return &Model{width: width, height: height}
}

// SetIntents replaces the pending intent list.
func (m *Model) SetIntents(intents []client.AiIntent) {
	m.intents = intents
	if m.intentCursor >= len(intents) {
		m.intentCursor = 0
	}
}

// SetStoplights replaces the raised safety signals.
func (m *Model) SetStoplights(list []client.Stoplight) {
	m.stoplights = list
}

// SetPendingXP replaces the XP approval queue.
func (m *Model) SetPendingXP(pending []client.PendingXP) {
	m.pendingXP = pending
	if m.xpCursor >= len(pending) {
		m.xpCursor = 0
	}
}

// SetNotice shows an action outcome inline and returns to the menu.
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
	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeIntents:
		return m.updateIntents(msg)
	case modeStoplights:
		return m.updateStoplights(msg)
	case modeXP:
		return m.updateXP(msg)
	}
	return m.updateMenu(msg)
}

func (m *Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "enter":
		m.notice = ""
		return m, menuItems[m.cursor].open(m)
	}

	return m, nil
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.mode = modeMenu
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		submit := m.submit
		m.mode = modeMenu
		m.form = nil
		return m, func() tea.Msg { return submit(m) }
	}

	return m, cmd
}

func (m *Model) updateIntents(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc", "backspace":
		m.mode = modeMenu
	case "up", "k":
		if m.intentCursor > 0 {
			m.intentCursor--
		}
	case "down", "j":
		if m.intentCursor < len(m.intents)-1 {
			m.intentCursor++
		}
	case "r":
		return m, func() tea.Msg { return IntentsRequestedMsg{} }
	case "y":
		if it := m.selectedIntent(); it != nil && it.Status == client.IntentProposed {
			id := it.IntentID
			return m, func() tea.Msg { return ApproveIntentRequestedMsg{IntentID: id} }
		}
	case "n":
		if it := m.selectedIntent(); it != nil && it.Status == client.IntentProposed {
			id := it.IntentID
			return m, func() tea.Msg { return RejectIntentRequestedMsg{IntentID: id} }
		}
	}

	return m, nil
}

func (m *Model) updateStoplights(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc", "backspace":
		m.mode = modeMenu
	case "r":
		return m, func() tea.Msg { return StoplightsRequestedMsg{} }
	}

	return m, nil
}

func (m *Model) updateXP(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc", "backspace":
		m.mode = modeMenu
	case "up", "k":
		if m.xpCursor > 0 {
			m.xpCursor--
		}
	case "down", "j":
		if m.xpCursor < len(m.pendingXP)-1 {
			m.xpCursor++
		}
	case "r":
		return m, func() tea.Msg { return PendingXPRequestedMsg{} }
	case "y":
		if p := m.selectedPendingXP(); p != nil {
			id := p.XPID
			return m, func() tea.Msg { return ApproveXPRequestedMsg{XPID: id} }
		}
	}

	return m, nil
}

func (m *Model) selectedPendingXP() *client.PendingXP {
	if m.xpCursor < 0 || m.xpCursor >= len(m.pendingXP) {
		return nil
	}
	return &m.pendingXP[m.xpCursor]
}

func (m *Model) selectedIntent() *client.AiIntent {
	if m.intentCursor < 0 || m.intentCursor >= len(m.intents) {
		return nil
	}
	return &m.intents[m.intentCursor]
}

func (m *Model) openMapForm() tea.Cmd {
	m.mapURL = ""
	m.formTitle = "Set map URL"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Map URL").
				Placeholder("https://...").
				Validate(requireNonEmpty("map URL")).
				Value(&m.mapURL),
		),
	).WithTheme(huh.ThemeBase())
	m.submit = func(m *Model) tea.Msg {
		return SetMapRequestedMsg{Input: client.SetMapInput{MapURL: strings.TrimSpace(m.mapURL)}}
	}
	m.mode = modeForm
	return m.form.Init()
}

func (m *Model) openCreateClockForm() tea.Cmd {
	m.clockTitle = ""
	m.clockSegs = "6"
	m.clockNightly = false
	m.clockDesc = ""
	m.formTitle = "Create clock"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(requireNonEmpty("title")).
				Value(&m.clockTitle),
			huh.NewInput().
				Title("Segments").
				Placeholder("6").
				Validate(requirePositiveInt("segments")).
				Value(&m.clockSegs),
			huh.NewConfirm().
				Title("Advance nightly?").
				Value(&m.clockNightly),
			huh.NewInput().
				Title("Description").
				Value(&m.clockDesc),
		),
	).WithTheme(huh.ThemeBase())
	m.submit = func(m *Model) tea.Msg {
		segments, _ := strconv.Atoi(strings.TrimSpace(m.clockSegs))
		return CreateClockRequestedMsg{Input: client.CreateClockInput{
			Title:       strings.TrimSpace(m.clockTitle),
			Segments:    segments,
			Nightly:     m.clockNightly,
			Description: strings.TrimSpace(m.clockDesc),
		}}
	}
	m.mode = modeForm
	return m.form.Init()
}

func (m *Model) openTickClockForm() tea.Cmd {
	m.tickPrefix = ""
	m.tickAmount = "1"
	m.tickReason = ""
	m.formTitle = "Tick clock"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Clock id or prefix").
				Validate(requireNonEmpty("clock id")).
				Value(&m.tickPrefix),
			huh.NewInput().
				Title("Ticks").
				Placeholder("1").
				Validate(requirePositiveInt("ticks")).
				Value(&m.tickAmount),
			huh.NewInput().
				Title("Reason").
				Validate(requireNonEmpty("reason")).
				Value(&m.tickReason),
		),
	).WithTheme(huh.ThemeBase())
	m.submit = func(m *Model) tea.Msg {
		amount, _ := strconv.Atoi(strings.TrimSpace(m.tickAmount))
		return TickClockRequestedMsg{Input: client.TickClockInput{
			ClockIDPrefix: strings.TrimSpace(m.tickPrefix),
			Amount:        amount,
			Reason:        strings.TrimSpace(m.tickReason),
		}}
	}
	m.mode = modeForm
	return m.form.Init()
}

func (m *Model) openCreateArcForm() tea.Cmd {
	m.arcTitle = ""
	m.arcSynopsis = ""
	m.formTitle = "Create arc"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(requireNonEmpty("title")).
				Value(&m.arcTitle),
			huh.NewText().
				Title("Synopsis").
				Value(&m.arcSynopsis),
		),
	).WithTheme(huh.ThemeBase())
	m.submit = func(m *Model) tea.Msg {
		return CreateArcRequestedMsg{Input: client.CreateArcInput{
			Title:    strings.TrimSpace(m.arcTitle),
			Synopsis: strings.TrimSpace(m.arcSynopsis),
		}}
	}
	m.mode = modeForm
	return m.form.Init()
}

func (m *Model) openArcStatusForm() tea.Cmd {
	m.arcPrefix = ""
	m.arcStatus = client.ArcActive
	m.arcOutcome = ""
	m.formTitle = "Set arc status"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Arc id or prefix").
				Validate(requireNonEmpty("arc id")).
				Value(&m.arcPrefix),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Planned", client.ArcPlanned),
					huh.NewOption("Active", client.ArcActive),
					huh.NewOption("Completed", client.ArcCompleted),
					huh.NewOption("Cancelled", client.ArcCancelled),
				).
				Value(&m.arcStatus),
			huh.NewText().
				Title("Outcome").
				Value(&m.arcOutcome),
		),
	).WithTheme(huh.ThemeBase())
	m.submit = func(m *Model) tea.Msg {
		return SetArcStatusRequestedMsg{Input: client.SetArcStatusInput{
			ArcIDPrefix: strings.TrimSpace(m.arcPrefix),
			Status:      m.arcStatus,
			Outcome:     strings.TrimSpace(m.arcOutcome),
		}}
	}
	m.mode = modeForm
	return m.form.Init()
}

func (m *Model) openIntents() tea.Cmd {
	m.mode = modeIntents
	return func() tea.Msg { return IntentsRequestedMsg{} }
}

func (m *Model) openStoplights() tea.Cmd {
	m.mode = modeStoplights
	return func() tea.Msg { return StoplightsRequestedMsg{} }
}

func (m *Model) openPendingXP() tea.Cmd {
	m.mode = modeXP
	return func() tea.Msg { return PendingXPRequestedMsg{} }
}

func requireNonEmpty(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func requirePositiveInt(name string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive number", name)
		}
		return nil
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	if m.notice != "" {
		sb.WriteString(styles.InlineError.Render(m.notice))
		sb.WriteString("\n")
	}

	switch m.mode {
	case modeForm:
		sb.WriteString(styles.Title.Render(m.formTitle))
		sb.WriteString("\n")
		sb.WriteString(m.form.View())
	case modeIntents:
		sb.WriteString(m.intentsView())
	case modeStoplights:
		sb.WriteString(m.stoplightsView())
	case modeXP:
		sb.WriteString(m.xpView())
	default:
		sb.WriteString(m.menuView())
	}

	return sb.String()
}

func (m *Model) menuView() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Settings.String() + " Storyteller Tools"))
	sb.WriteString("\n")

	for i, item := range menuItems {
		marker := "  "
		rowStyle := lipgloss.NewStyle()
		if i == m.cursor {
			marker = styles.KeyStyle.Render("> ")
			rowStyle = rowStyle.Bold(true)
		}
		sb.WriteString(marker + item.icon.String() + " " + rowStyle.Render(item.label))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m *Model) intentsView() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("AI Intents"))
	sb.WriteString("\n")

	if len(m.intents) == 0 {
		sb.WriteString(styles.Subtitle.Render("Nothing pending."))
		sb.WriteString("\n")
	}

	for i, it := range m.intents {
		marker := "  "
		rowStyle := lipgloss.NewStyle()
		if i == m.intentCursor {
			marker = styles.KeyStyle.Render("> ")
			rowStyle = rowStyle.Bold(true)
		}
		line := fmt.Sprintf("%s [%s] %s by %s %s",
			rowStyle.Render(it.IntentType), it.Status, styles.Subtitle.Render(shortID(it.IntentID)), it.ActorType, it.ActorID)
		sb.WriteString(marker + line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("y approve  n reject  r refresh  esc back"))
	return sb.String()
}

func (m *Model) xpView() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Star.String() + " Pending XP Approvals"))
	sb.WriteString("\n")

	if len(m.pendingXP) == 0 {
		sb.WriteString(styles.Subtitle.Render("No pending XP."))
		sb.WriteString("\n")
	}

	for i, p := range m.pendingXP {
		marker := "  "
		rowStyle := lipgloss.NewStyle()
		if i == m.xpCursor {
			marker = styles.KeyStyle.Render("> ")
			rowStyle = rowStyle.Bold(true)
		}
		sb.WriteString(marker + rowStyle.Render(fmt.Sprintf("%d xp", p.Amount)) +
			" for " + styles.Subtitle.Render(shortID(p.CharacterID)))
		sb.WriteString("\n")
		if p.Reason != "" {
			sb.WriteString("    " + styles.Subtitle.Render(p.Reason))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("y approve  r refresh  esc back"))
	return sb.String()
}

func (m *Model) stoplightsView() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Shield.String() + " Safety Signals"))
	sb.WriteString("\n")

	if len(m.stoplights) == 0 {
		sb.WriteString(styles.Subtitle.Render("No signals raised."))
		sb.WriteString("\n")
	}

	for _, s := range m.stoplights {
		line := "  " + widgets.StoplightBadge(s.Color)
		if s.Note != "" {
			line += " " + s.Note
		}
		if s.Resolved {
			line += " " + styles.StatusOK.Render("resolved")
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("r refresh  esc back"))
	return sb.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
