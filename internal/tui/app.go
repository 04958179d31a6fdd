// ABOUTME: Root bubbletea model routing between login, appeal, owner, and dashboard
// ABOUTME: Owns the session, world cache, and realtime push channel

package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bloodscript/companion-cli/internal/access"
	"github.com/bloodscript/companion-cli/internal/client"
	"github.com/bloodscript/companion-cli/internal/session"
	"github.com/bloodscript/companion-cli/internal/sheet"
	"github.com/bloodscript/companion-cli/internal/tui/admin"
	"github.com/bloodscript/companion-cli/internal/tui/appeal"
	"github.com/bloodscript/companion-cli/internal/tui/characters"
	"github.com/bloodscript/companion-cli/internal/tui/coteries"
	"github.com/bloodscript/companion-cli/internal/tui/debuglog"
	"github.com/bloodscript/companion-cli/internal/tui/icons"
	"github.com/bloodscript/companion-cli/internal/tui/login"
	"github.com/bloodscript/companion-cli/internal/tui/ownerconsole"
	"github.com/bloodscript/companion-cli/internal/tui/styles"
	"github.com/bloodscript/companion-cli/internal/tui/worldpanel"
	"github.com/bloodscript/companion-cli/internal/world"
)

// Screen identifies the active top-level screen. Only the app switches
// screens; panels emit messages and never navigate themselves.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenLoading
	ScreenError
	ScreenAppeal
	ScreenOwner
	ScreenDashboard
)

// Dashboard tabs.
const (
	tabWorld = iota
	tabCharacters
	tabCoteries
	tabAdmin
)

var tabNames = []string{"World", "Characters", "Coteries", "ST Tools"}

// Options configures the app.
type Options struct {
	APIURL        string
	OwnerID       string
	EngineID      string
	TokenOverride string
}

type sessionResolvedMsg struct {
	sess *client.Session
	err  error
}

type worldFetchedMsg struct {
	snapshot *client.WorldState
	err      error
}

type moderatorCheckedMsg struct {
	moderator bool
}

type pushConnectedMsg struct {
	rt  *client.Realtime
	err error
}

type pushEventMsg struct {
	event client.Event
	ok    bool
}

type enginesLoadedMsg struct {
	engines []client.Engine
	err     error
}

type engineInspectedMsg struct {
	record []byte
	err    error
}

type charactersLoadedMsg struct {
	list []client.CharacterSummary
	err  error
}

type sheetLoadedMsg struct {
	characterID string
	sheet       client.CharacterSheet
	err         error
}

type coteriesLoadedMsg struct {
	list []client.CoterieSummary
	err  error
}

type coterieDetailMsg struct {
	detail *client.CoterieDetail
	err    error
}

type intentsLoadedMsg struct {
	intents []client.AiIntent
	err     error
}

type stoplightsLoadedMsg struct {
	list []client.Stoplight
	err  error
}

type pendingXPLoadedMsg struct {
	pending []client.PendingXP
	err     error
}

// actionDoneMsg reports a mutation outcome. A non-nil snapshot is the new
// world returned by storyteller endpoints and replaces the cache.
type actionDoneMsg struct {
	notice   string
	snapshot *client.WorldState
	err      error
}

type appealDoneMsg struct {
	err error
}

// App is the root model.
type App struct {
	ctx      context.Context
	api      *client.Client
	resolver *session.Resolver
	opts     Options

	sess      *client.Session
	moderator bool
	cache     *world.Cache
	rt        *client.Realtime

	screen    Screen
	activeTab int
	errMsg    string
	updatedAt time.Time

	loginM   *login.Model
	appealM  *appeal.Model
	ownerM   *ownerconsole.Model
	worldM   *worldpanel.Model
	charsM   *characters.Model
	cotM     *coteries.Model
	adminM   *admin.Model
	spinner  spinner.Model

	charsLoaded    bool
	cotLoaded      bool
	loginSubmitted bool

	width  int
	height int
}

// NewApp wires an app from resolved configuration. The session is resolved
// asynchronously on Init; the first frame is the loading screen.
func NewApp(ctx context.Context, api *client.Client, resolver *session.Resolver, opts Options) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &App{
		ctx:      ctx,
		api:      api,
		resolver: resolver,
		opts:     opts,
		cache:    world.New(),
		screen:   ScreenLoading,
		loginM:   login.New(api.BaseURL(), opts.EngineID),
		ownerM:   ownerconsole.New(0, 0),
		worldM:   worldpanel.New(nil, 0, 0),
		charsM:   characters.New(0, 0),
		cotM:     coteries.New(0, 0),
		adminM:   admin.New(0, 0),
		spinner:  sp,
	}
}

// Run starts the TUI and blocks until it exits.
func Run(ctx context.Context, api *client.Client, resolver *session.Resolver, opts Options) error {
	app := NewApp(ctx, api, resolver, opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.resolveSession(a.opts.TokenOverride))
}

func (a *App) resolveSession(override string) tea.Cmd {
	return func() tea.Msg {
		sess, err := a.resolver.Resolve(a.ctx, override)
		return sessionResolvedMsg{sess: sess, err: err}
	}
}

func (a *App) fetchWorld() tea.Cmd {
	return func() tea.Msg {
		snapshot, err := a.api.World(a.ctx)
		return worldFetchedMsg{snapshot: snapshot, err: err}
	}
}

func (a *App) checkModerator() tea.Cmd {
	return func() tea.Msg {
		ok, err := a.api.IsModerator(a.ctx)
		if err != nil {
			// Roster lookup failures degrade to the player view.
			debuglog.Warn("moderator lookup failed: %v", err)
			ok = false
		}
		return moderatorCheckedMsg{moderator: ok}
	}
}

func (a *App) dialPush(token string) tea.Cmd {
	return func() tea.Msg {
		rt, err := client.DialRealtime(a.ctx, a.api.BaseURL(), token)
		return pushConnectedMsg{rt: rt, err: err}
	}
}

func (a *App) waitPush(rt *client.Realtime) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-rt.Events()
		return pushEventMsg{event: event, ok: ok}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		inner := msg.Height - 4
		a.worldM.SetSize(msg.Width, inner)
		a.charsM.SetSize(msg.Width, inner)
		a.cotM.SetSize(msg.Width, inner)
		a.adminM.SetSize(msg.Width, inner)
		a.ownerM.SetSize(msg.Width, inner)
		return a, nil

	case spinner.TickMsg:
		if a.screen != ScreenLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)

	case sessionResolvedMsg:
		return a.handleSessionResolved(msg)

	case worldFetchedMsg:
		return a.handleWorldFetched(msg)

	case moderatorCheckedMsg:
		a.moderator = msg.moderator
		if a.screen == ScreenDashboard || a.screen == ScreenAppeal {
			// Permission may have upgraded or downgraded; re-route.
			return a, a.route()
		}
		return a, nil

	case pushConnectedMsg:
		if msg.err != nil {
			// Push is an enhancement; REST keeps working without it.
			debuglog.Warn("realtime dial failed: %v", msg.err)
			return a, nil
		}
		if a.sess == nil {
			// Session tore down while the dial was in flight.
			msg.rt.Close()
			return a, nil
		}
		a.rt = msg.rt
		return a, a.waitPush(a.rt)

	case pushEventMsg:
		return a.handlePushEvent(msg)

	case login.SubmitMsg:
		a.loginSubmitted = true
		a.screen = ScreenLoading
		return a, tea.Batch(a.spinner.Tick, a.resolveSession(msg.Token))

	case login.CancelledMsg:
		return a, tea.Quit

	case appeal.SubmittedMsg:
		input := &client.AppealInput{EngineID: a.engineID(), Message: msg.Message}
		return a, func() tea.Msg {
			err := a.api.SubmitAppeal(a.ctx, a.sess, input)
			return appealDoneMsg{err: err}
		}

	case appealDoneMsg:
		if msg.err != nil {
			a.appealM.SetNotice(msg.err.Error())
		} else {
			a.appealM.MarkSubmitted()
		}
		return a, nil
	}

	if cmd, handled := a.handlePanelRequest(msg); handled {
		return a, cmd
	}
	if cmd, handled := a.handlePanelData(msg); handled {
		return a, cmd
	}

	return a.forward(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.screen {
	case ScreenError:
		switch msg.String() {
		case "q", "esc":
			return a, tea.Quit
		case "r":
			a.screen = ScreenLoading
			return a, tea.Batch(a.spinner.Tick, a.fetchWorld())
		}
		return a, nil

	case ScreenDashboard:
		switch msg.String() {
		case "tab":
			a.activeTab = (a.activeTab + 1) % a.tabCount()
			return a, a.enterTab()
		case "shift+tab":
			a.activeTab = (a.activeTab + a.tabCount() - 1) % a.tabCount()
			return a, a.enterTab()
		case "1", "2", "3", "4":
			want := int(msg.String()[0] - '1')
			if want < a.tabCount() {
				a.activeTab = want
				return a, a.enterTab()
			}
		case "R":
			return a, a.fetchWorld()
		case "q":
			if a.activeTab == tabWorld {
				return a, tea.Quit
			}
		}
	case ScreenOwner:
		if msg.String() == "q" {
			return a, tea.Quit
		}
	}

	return a.forward(msg)
}

// tabCount hides the storyteller tab from plain players.
func (a *App) tabCount() int {
	if a.permission() == access.ModeratorOrAbove {
		return 4
	}
	return 3
}

// engineID prefers the session's engine binding over the configured one.
func (a *App) engineID() string {
	if a.sess != nil && a.sess.EngineID != "" {
		return a.sess.EngineID
	}
	return a.opts.EngineID
}

func (a *App) permission() access.Permission {
	return access.Evaluate(a.sess, a.cache.Snapshot(), a.opts.OwnerID, a.moderator)
}

// enterTab lazily loads roster data the first time its tab is opened.
func (a *App) enterTab() tea.Cmd {
	switch a.activeTab {
	case tabCharacters:
		if !a.charsLoaded {
			a.charsLoaded = true
			return a.loadCharacters()
		}
	case tabCoteries:
		if !a.cotLoaded {
			a.cotLoaded = true
			return a.loadCoteries()
		}
	}
	return nil
}

func (a *App) handleSessionResolved(msg sessionResolvedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.toLogin()
		if !errors.Is(msg.err, session.ErrUnauthenticated) {
			a.loginM.SetNotice(msg.err.Error())
		} else if a.loginSubmitted || a.opts.TokenOverride != "" {
			a.loginM.SetNotice("Login failed. Check your token and try again.")
		}
		return a, a.loginM.Init()
	}

	a.sess = msg.sess
	a.api = a.api.WithToken(msg.sess.Token)
	a.screen = ScreenLoading

	cmds := []tea.Cmd{a.spinner.Tick, a.fetchWorld()}
	if a.sess.Role != client.RoleStoryteller && a.sess.Role != client.RoleAdmin {
		cmds = append(cmds, a.checkModerator())
	}
	cmds = append(cmds, a.dialPush(msg.sess.Token))
	return a, tea.Batch(cmds...)
}

func (a *App) handleWorldFetched(msg worldFetchedMsg) (tea.Model, tea.Cmd) {
	if a.sess == nil {
		return a, nil
	}
	err := a.cache.Load(a.ctx, func(context.Context) (*client.WorldState, error) {
		return msg.snapshot, msg.err
	})
	if err != nil && !a.cache.Loaded() {
		a.screen = ScreenError
		a.errMsg = err.Error()
		return a, nil
	}
	if err == nil {
		a.updatedAt = time.Now()
	}
	a.worldM.SetWorld(a.cache.Snapshot())
	return a, a.route()
}

// route picks the screen from the current permission. Loading never reaches
// here; it is entered explicitly before asynchronous work starts.
func (a *App) route() tea.Cmd {
	switch a.permission() {
	case access.LoginRequired:
		a.toLogin()
		return a.loginM.Init()
	case access.Owner:
		if a.screen != ScreenOwner {
			a.screen = ScreenOwner
			return a.loadEngines()
		}
	case access.Banned:
		if a.screen != ScreenAppeal {
			reason := ""
			if w := a.cache.Snapshot(); w != nil {
				reason = w.BannedReason
			}
			a.appealM = appeal.New(reason)
			a.screen = ScreenAppeal
			return a.appealM.Init()
		}
	default:
		a.screen = ScreenDashboard
		if a.activeTab >= a.tabCount() {
			a.activeTab = tabWorld
		}
	}
	return nil
}

func (a *App) handlePushEvent(msg pushEventMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		// Channel closed after a deliberate Close or after the error
		// event was delivered; nothing left to wait on.
		a.rt = nil
		return a, nil
	}

	switch msg.event.Name {
	case client.EventWorld:
		snapshot, err := msg.event.World()
		if err != nil {
			debuglog.Warn("bad world push: %v", err)
			break
		}
		a.cache.ApplyPush(snapshot)
		a.updatedAt = time.Now()
		a.worldM.SetWorld(a.cache.Snapshot())
		// The screen never changes on a world push, but a push can carry
		// a ban or unban, so re-route from the fresh snapshot.
		return a, tea.Batch(a.waitPush(a.rt), a.route())

	case client.EventError:
		// A pushed error is an authentication failure. Tear down the
		// whole session, not just the socket.
		return a, a.teardown("Session expired. Log in again.")

	case client.EventCharacterUpdated, client.EventActiveCharacterChanged:
		if a.charsLoaded {
			return a, tea.Batch(a.waitPush(a.rt), a.loadCharacters())
		}

	case client.EventXPApplied:
		a.charsM.SetNotice("An XP spend was applied.")
		if a.charsLoaded {
			return a, tea.Batch(a.waitPush(a.rt), a.loadCharacters())
		}
	}

	return a, a.waitPush(a.rt)
}

// teardown drops every piece of authenticated state and lands on login.
func (a *App) teardown(notice string) tea.Cmd {
	if a.rt != nil {
		a.rt.Close()
		a.rt = nil
	}
	if err := a.resolver.Forget(); err != nil {
		debuglog.Warn("clearing stored credential: %v", err)
	}
	a.sess = nil
	a.moderator = false
	a.cache.Clear()
	a.worldM.SetWorld(nil)
	a.charsLoaded = false
	a.cotLoaded = false
	a.api = a.api.WithToken("")
	a.toLogin()
	if notice != "" {
		a.loginM.SetNotice(notice)
	}
	return a.loginM.Init()
}

func (a *App) toLogin() {
	a.screen = ScreenLogin
	a.loginM = login.New(a.api.BaseURL(), a.opts.EngineID)
}

func (a *App) loadEngines() tea.Cmd {
	return func() tea.Msg {
		engines, err := a.api.ListEngines(a.ctx)
		return enginesLoadedMsg{engines: engines, err: err}
	}
}

func (a *App) loadCharacters() tea.Cmd {
	return func() tea.Msg {
		list, err := a.api.ListCharacters(a.ctx)
		return charactersLoadedMsg{list: list, err: err}
	}
}

func (a *App) loadCoteries() tea.Cmd {
	return func() tea.Msg {
		list, err := a.api.ListCoteries(a.ctx)
		return coteriesLoadedMsg{list: list, err: err}
	}
}

// handlePanelRequest turns panel request messages into API command calls.
func (a *App) handlePanelRequest(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case ownerconsole.RefreshRequestedMsg:
		return a.loadEngines(), true
	case ownerconsole.BanRequestedMsg:
		return a.ownerAction(func() error {
			return a.api.BanEngine(a.ctx, a.sess, msg.EngineID, msg.Reason)
		}, "Engine banned."), true
	case ownerconsole.UnbanRequestedMsg:
		return a.ownerAction(func() error {
			return a.api.UnbanEngine(a.ctx, a.sess, msg.EngineID)
		}, "Engine unbanned."), true
	case ownerconsole.InspectRequestedMsg:
		return func() tea.Msg {
			record, err := a.api.InspectEngine(a.ctx, a.sess, msg.EngineID)
			return engineInspectedMsg{record: record, err: err}
		}, true

	case characters.RefreshRequestedMsg:
		return a.loadCharacters(), true
	case characters.SheetRequestedMsg:
		return func() tea.Msg {
			s, err := a.api.GetCharacterSheet(a.ctx, msg.CharacterID)
			return sheetLoadedMsg{characterID: msg.CharacterID, sheet: s, err: err}
		}, true
	case characters.ActivateRequestedMsg:
		return func() tea.Msg {
			err := a.api.SetActiveCharacter(a.ctx, a.sess, msg.CharacterID)
			if err != nil {
				return actionDoneMsg{err: err}
			}
			list, err := a.api.ListCharacters(a.ctx)
			return charactersLoadedMsg{list: list, err: err}
		}, true
	case characters.SheetEditRequestedMsg:
		edit := msg
		return func() tea.Msg {
			s, err := a.api.GetCharacterSheet(a.ctx, edit.CharacterID)
			if err != nil {
				return actionDoneMsg{err: err}
			}
			var value any = edit.Value
			if n, err := strconv.Atoi(edit.Value); err == nil {
				value = n
			}
			if !sheet.Set(s, edit.Field, value) {
				return actionDoneMsg{err: fmt.Errorf("unknown sheet field %q", edit.Field)}
			}
			if err := a.api.UpdateCharacterSheet(a.ctx, a.sess, edit.CharacterID, s); err != nil {
				return actionDoneMsg{err: err}
			}
			return sheetLoadedMsg{characterID: edit.CharacterID, sheet: s}
		}, true
	case characters.XPSpendRequestedMsg:
		input := msg.Input
		return func() tea.Msg {
			result, err := a.api.RequestXPSpend(a.ctx, a.sess, &input)
			if err != nil {
				return actionDoneMsg{err: err}
			}
			notice := "XP spend submitted for review."
			if result.Message != "" {
				notice = result.Message
			}
			return actionDoneMsg{notice: notice}
		}, true

	case coteries.RefreshRequestedMsg:
		return a.loadCoteries(), true
	case coteries.DetailRequestedMsg:
		return func() tea.Msg {
			detail, err := a.api.GetCoterie(a.ctx, msg.CoterieID)
			return coterieDetailMsg{detail: detail, err: err}
		}, true

	case admin.SetMapRequestedMsg:
		input := msg.Input
		return a.stAction(func() (*client.WorldState, error) {
			return a.api.SetMap(a.ctx, a.sess, &input)
		}, "Map updated."), true
	case admin.CreateClockRequestedMsg:
		input := msg.Input
		return a.stAction(func() (*client.WorldState, error) {
			return a.api.CreateClock(a.ctx, a.sess, &input)
		}, "Clock created."), true
	case admin.TickClockRequestedMsg:
		input := msg.Input
		return a.stAction(func() (*client.WorldState, error) {
			return a.api.TickClock(a.ctx, a.sess, &input)
		}, "Clock advanced."), true
	case admin.CreateArcRequestedMsg:
		input := msg.Input
		return a.stAction(func() (*client.WorldState, error) {
			return a.api.CreateArc(a.ctx, a.sess, &input)
		}, "Arc created."), true
	case admin.SetArcStatusRequestedMsg:
		input := msg.Input
		return a.stAction(func() (*client.WorldState, error) {
			return a.api.SetArcStatus(a.ctx, a.sess, &input)
		}, "Arc updated."), true
	case admin.IntentsRequestedMsg:
		return func() tea.Msg {
			intents, err := a.api.ListIntents(a.ctx)
			return intentsLoadedMsg{intents: intents, err: err}
		}, true
	case admin.ApproveIntentRequestedMsg:
		id := msg.IntentID
		return func() tea.Msg {
			if err := a.api.ApproveIntent(a.ctx, a.sess, id); err != nil {
				return actionDoneMsg{err: err}
			}
			intents, err := a.api.ListIntents(a.ctx)
			return intentsLoadedMsg{intents: intents, err: err}
		}, true
	case admin.RejectIntentRequestedMsg:
		id := msg.IntentID
		return func() tea.Msg {
			if err := a.api.RejectIntent(a.ctx, a.sess, id); err != nil {
				return actionDoneMsg{err: err}
			}
			intents, err := a.api.ListIntents(a.ctx)
			return intentsLoadedMsg{intents: intents, err: err}
		}, true
	case admin.StoplightsRequestedMsg:
		return func() tea.Msg {
			list, err := a.api.ListStoplights(a.ctx)
			return stoplightsLoadedMsg{list: list, err: err}
		}, true
	case admin.PendingXPRequestedMsg:
		return func() tea.Msg {
			pending, err := a.api.ListPendingXP(a.ctx)
			return pendingXPLoadedMsg{pending: pending, err: err}
		}, true
	case admin.ApproveXPRequestedMsg:
		id := msg.XPID
		return func() tea.Msg {
			if err := a.api.ApproveXP(a.ctx, a.sess, id); err != nil {
				return actionDoneMsg{err: err}
			}
			pending, err := a.api.ListPendingXP(a.ctx)
			return pendingXPLoadedMsg{pending: pending, err: err}
		}, true
	}

	return nil, false
}

// stAction runs a storyteller mutation; on success the returned world
// replaces the cache like any other full snapshot.
func (a *App) stAction(call func() (*client.WorldState, error), notice string) tea.Cmd {
	return func() tea.Msg {
		snapshot, err := call()
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{notice: notice, snapshot: snapshot}
	}
}

func (a *App) ownerAction(call func() error, notice string) tea.Cmd {
	return func() tea.Msg {
		if err := call(); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{notice: notice}
	}
}

// handlePanelData routes fetched data back into the owning panel.
func (a *App) handlePanelData(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case enginesLoadedMsg:
		if msg.err != nil {
			a.ownerM.SetNotice(msg.err.Error())
		} else {
			a.ownerM.SetEngines(msg.engines)
		}
		return nil, true

	case engineInspectedMsg:
		if msg.err != nil {
			a.ownerM.SetNotice(msg.err.Error())
		} else {
			a.ownerM.SetInspect(msg.record)
		}
		return nil, true

	case charactersLoadedMsg:
		if msg.err != nil {
			a.charsM.SetNotice(msg.err.Error())
		} else {
			a.charsM.SetList(msg.list)
		}
		return nil, true

	case sheetLoadedMsg:
		if msg.err != nil {
			a.charsM.SetNotice(msg.err.Error())
		} else {
			a.charsM.SetSheet(msg.characterID, msg.sheet)
		}
		return nil, true

	case coteriesLoadedMsg:
		if msg.err != nil {
			a.cotM.SetNotice(msg.err.Error())
		} else {
			a.cotM.SetList(msg.list)
		}
		return nil, true

	case coterieDetailMsg:
		if msg.err != nil {
			a.cotM.SetNotice(msg.err.Error())
		} else {
			a.cotM.SetDetail(msg.detail)
		}
		return nil, true

	case intentsLoadedMsg:
		if msg.err != nil {
			a.adminM.SetNotice(msg.err.Error())
		} else {
			a.adminM.SetIntents(msg.intents)
		}
		return nil, true

	case stoplightsLoadedMsg:
		if msg.err != nil {
			a.adminM.SetNotice(msg.err.Error())
		} else {
			a.adminM.SetStoplights(msg.list)
		}
		return nil, true

	case pendingXPLoadedMsg:
		if msg.err != nil {
			a.adminM.SetNotice(msg.err.Error())
		} else {
			a.adminM.SetPendingXP(msg.pending)
		}
		return nil, true

	case actionDoneMsg:
		if msg.snapshot != nil {
			a.cache.ApplyPush(msg.snapshot)
			a.updatedAt = time.Now()
			a.worldM.SetWorld(a.cache.Snapshot())
		}
		notice := msg.notice
		if msg.err != nil {
			notice = msg.err.Error()
		}
		switch a.screen {
		case ScreenOwner:
			a.ownerM.SetNotice(notice)
			if msg.err == nil {
				return a.loadEngines(), true
			}
		case ScreenDashboard:
			switch a.activeTab {
			case tabCharacters:
				a.charsM.SetNotice(notice)
			case tabAdmin:
				a.adminM.SetNotice(notice)
			}
		}
		return nil, true
	}

	return nil, false
}

// forward passes a message to the active screen's model.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenLogin:
		_, cmd = a.loginM.Update(msg)
	case ScreenAppeal:
		if a.appealM != nil {
			_, cmd = a.appealM.Update(msg)
		}
	case ScreenOwner:
		_, cmd = a.ownerM.Update(msg)
	case ScreenDashboard:
		switch a.activeTab {
		case tabCharacters:
			_, cmd = a.charsM.Update(msg)
		case tabCoteries:
			_, cmd = a.cotM.Update(msg)
		case tabAdmin:
			_, cmd = a.adminM.Update(msg)
		}
	}
	return a, cmd
}

// View implements tea.Model
func (a *App) View() string {
	var body string

	switch a.screen {
	case ScreenLogin:
		body = a.loginM.View()
	case ScreenLoading:
		body = a.spinner.View() + " Contacting the chronicle..."
	case ScreenError:
		body = styles.StatusCritical.Render(icons.Critical.String()+" "+a.errMsg) + "\n\n" +
			styles.Help.Render("r retry  q quit")
	case ScreenAppeal:
		if a.appealM != nil {
			body = a.appealM.View()
		}
	case ScreenOwner:
		body = a.ownerM.View() + "\n" + styles.Help.Render("b ban  u unban  i inspect  r refresh  q quit")
	case ScreenDashboard:
		body = a.tabBar() + "\n" + a.tabBody()
	}

	header := styles.Title.Render(icons.App.String() + " Blood Script Companion")
	return header + "\n\n" + body + "\n" + a.footer()
}

func (a *App) tabBar() string {
	parts := make([]string, 0, len(tabNames))
	for i := 0; i < a.tabCount(); i++ {
		name := tabNames[i]
		if i == a.activeTab {
			parts = append(parts, styles.ActivePanel.Render(name))
		} else {
			parts = append(parts, styles.Panel.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) tabBody() string {
	switch a.activeTab {
	case tabCharacters:
		return a.charsM.View()
	case tabCoteries:
		return a.cotM.View()
	case tabAdmin:
		return a.adminM.View()
	default:
		return a.worldM.View()
	}
}

func (a *App) footer() string {
	parts := []string{}
	if !a.updatedAt.IsZero() {
		parts = append(parts, fmt.Sprintf("Updated %s", a.updatedAt.Format("15:04:05")))
	}
	if a.rt != nil {
		parts = append(parts, "live")
	}
	if a.screen == ScreenDashboard {
		parts = append(parts, "tab switch  R refresh  ctrl+c quit")
	}
	if len(parts) == 0 {
		return ""
	}
	return styles.Help.Render(strings.Join(parts, "  |  "))
}
