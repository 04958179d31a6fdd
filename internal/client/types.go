// ABOUTME: Data shapes exchanged with the Blood Script Companion backend
// ABOUTME: Sessions, world snapshots, characters, coteries, intents, engines

package client

import "encoding/json"

// Role values returned by /companion/me.
const (
	RolePlayer      = "player"
	RoleStoryteller = "st"
	RoleAdmin       = "admin"
)

// Session is the verified identity for the current user.
// The CSRF token lives here, not in package state, so every mutating call
// site receives it explicitly.
type Session struct {
	UserID        string `json:"user_id"`
	Role          string `json:"role"`
	CSRFToken     string `json:"csrfToken"`
	DiscordUserID string `json:"discord_user_id"`
	EngineID      string `json:"engine_id"`

	// Token is the opaque credential used to authenticate this session.
	// Not part of the backend response; filled in by the resolver.
	Token string `json:"-"`
}

// Arc statuses.
const (
	ArcPlanned   = "planned"
	ArcActive    = "active"
	ArcCompleted = "completed"
	ArcCancelled = "cancelled"
)

// Arc is a narrative arc in the current chronicle.
type Arc struct {
	ArcID  string `json:"arc_id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// Clock is a narrative progress tracker with a fixed segment count.
// The backend enforces progress <= segments; rendering must not assume it.
type Clock struct {
	ClockID  string `json:"clock_id"`
	Title    string `json:"title"`
	Progress int    `json:"progress"`
	Segments int    `json:"segments"`
	Status   string `json:"status"`
	Nightly  bool   `json:"nightly"`
}

// Pressure is a single pressure event contributing to heat.
type Pressure struct {
	Source      string `json:"source"`
	Severity    int    `json:"severity"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// WorldState is the shared narrative state of one engine. It is always
// replaced as a whole snapshot, never merged field by field.
type WorldState struct {
	Arcs         []Arc      `json:"arcs"`
	Clocks       []Clock    `json:"clocks"`
	Pressure     []Pressure `json:"pressure"`
	Heat         int        `json:"heat"`
	MapURL       string     `json:"mapUrl,omitempty"`
	Banned       bool       `json:"banned,omitempty"`
	BannedReason string     `json:"banned_reason,omitempty"`
}

// worldEnvelope tolerates both response shapes the backend has shipped:
// {"world": {...}} and the bare WorldState object.
type worldEnvelope struct {
	World *WorldState `json:"world"`
}

func decodeWorld(data []byte) (*WorldState, error) {
	var env worldEnvelope
	if err := json.Unmarshal(data, &env); err == nil && env.World != nil {
		return env.World, nil
	}
	var w WorldState
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// CharacterSummary is a roster entry. UserID is present only for ST/admin.
type CharacterSummary struct {
	CharacterID string `json:"character_id"`
	Name        string `json:"name"`
	Clan        string `json:"clan,omitempty"`
	Concept     string `json:"concept,omitempty"`
	IsActive    bool   `json:"is_active,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

// CharacterSheet is a freeform V5 sheet. The schema has drifted across
// backend versions, so field access goes through the sheet package.
type CharacterSheet map[string]any

// CoterieSummary is a coterie roster entry.
type CoterieSummary struct {
	CoterieID string `json:"coterie_id"`
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"`
	Domain    string `json:"domain,omitempty"`
}

// CoterieMember is one member row in a coterie detail view.
type CoterieMember struct {
	CharacterID string `json:"character_id"`
	Name        string `json:"name,omitempty"`
	Clan        string `json:"clan,omitempty"`
	Concept     string `json:"concept,omitempty"`
}

// CoterieDetail is the full coterie record.
type CoterieDetail struct {
	CoterieID string          `json:"coterie_id"`
	Name      string          `json:"name"`
	Type      string          `json:"type,omitempty"`
	Domain    string          `json:"domain,omitempty"`
	Members   []CoterieMember `json:"members,omitempty"`
}

// Intent statuses.
const (
	IntentProposed = "proposed"
	IntentApproved = "approved"
	IntentRejected = "rejected"
)

// AiIntent is an AI- or player-proposed action awaiting storyteller review.
type AiIntent struct {
	IntentID   string          `json:"intent_id"`
	IntentType string          `json:"intent_type"`
	Status     string          `json:"status"`
	ActorType  string          `json:"actor_type"`
	ActorID    string          `json:"actor_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// Engine is one chronicle instance as seen from the owner console,
// including stoplight safety tallies.
type Engine struct {
	EngineID     string `json:"engine_id"`
	Name         string `json:"name"`
	Banned       bool   `json:"banned"`
	BannedReason string `json:"banned_reason,omitempty"`

	RedTotal      int `json:"red_total"`
	RedResolved   int `json:"red_resolved"`
	RedUnresolved int `json:"red_unresolved"`

	YellowTotal      int `json:"yellow_total"`
	YellowResolved   int `json:"yellow_resolved"`
	YellowUnresolved int `json:"yellow_unresolved"`

	GreenTotal int `json:"green_total"`
}

// Stoplight colors for the safety tool.
const (
	StoplightRed    = "red"
	StoplightYellow = "yellow"
	StoplightGreen  = "green"
)

// Stoplight is one raised safety signal.
type Stoplight struct {
	SignalID  string `json:"signal_id"`
	Color     string `json:"color"`
	Note      string `json:"note,omitempty"`
	Resolved  bool   `json:"resolved"`
	CreatedAt string `json:"created_at"`
}

// DiceResult is the outcome of a V5 dice roll.
type DiceResult struct {
	Pool        int    `json:"pool"`
	Hunger      int    `json:"hunger"`
	Successes   int    `json:"successes"`
	Results     []int  `json:"results"`
	HungerDice  []int  `json:"hunger_results,omitempty"`
	MessyCrit   bool   `json:"messy_crit,omitempty"`
	BestialFail bool   `json:"bestial_fail,omitempty"`
	Label       string `json:"label,omitempty"`
}

// ErrorResponse represents an API error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
