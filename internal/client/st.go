// ABOUTME: Storyteller mutations against /companion/st endpoints
// ABOUTME: Map, clocks, arcs, and AI intent review; each returns the new world

package client

import "context"

// SetMapInput sets the embedded map URL for the engine.
type SetMapInput struct {
	MapURL string `json:"mapUrl"`
}

// CreateClockInput creates a new narrative clock.
type CreateClockInput struct {
	Title       string `json:"title"`
	Segments    int    `json:"segments"`
	Nightly     bool   `json:"nightly"`
	Description string `json:"description,omitempty"`
}

// TickClockInput advances a clock, addressed by id or unique id prefix.
type TickClockInput struct {
	ClockIDPrefix string `json:"clockIdPrefix"`
	Amount        int    `json:"amount"`
	Reason        string `json:"reason"`
}

// CreateArcInput creates a new narrative arc.
type CreateArcInput struct {
	Title    string `json:"title"`
	Synopsis string `json:"synopsis,omitempty"`
}

// SetArcStatusInput moves an arc through its lifecycle.
type SetArcStatusInput struct {
	ArcIDPrefix string `json:"arcIdPrefix"`
	Status      string `json:"status"`
	Outcome     string `json:"outcome,omitempty"`
}

// SetMap calls POST /companion/st/map.
func (c *Client) SetMap(ctx context.Context, sess *Session, input *SetMapInput) (*WorldState, error) {
	return c.postWorld(ctx, sess, "/companion/st/map", input)
}

// CreateClock calls POST /companion/st/clocks.
func (c *Client) CreateClock(ctx context.Context, sess *Session, input *CreateClockInput) (*WorldState, error) {
	return c.postWorld(ctx, sess, "/companion/st/clocks", input)
}

// TickClock calls POST /companion/st/clocks/tick.
func (c *Client) TickClock(ctx context.Context, sess *Session, input *TickClockInput) (*WorldState, error) {
	return c.postWorld(ctx, sess, "/companion/st/clocks/tick", input)
}

// CreateArc calls POST /companion/st/arcs.
func (c *Client) CreateArc(ctx context.Context, sess *Session, input *CreateArcInput) (*WorldState, error) {
	return c.postWorld(ctx, sess, "/companion/st/arcs", input)
}

// SetArcStatus calls POST /companion/st/arcs/status.
func (c *Client) SetArcStatus(ctx context.Context, sess *Session, input *SetArcStatusInput) (*WorldState, error) {
	return c.postWorld(ctx, sess, "/companion/st/arcs/status", input)
}

// ListIntents calls GET /companion/st/intents.
func (c *Client) ListIntents(ctx context.Context) ([]AiIntent, error) {
	var intents []AiIntent
	if err := c.get(ctx, "/companion/st/intents", &intents); err != nil {
		return nil, err
	}
	return intents, nil
}

type intentAction struct {
	IntentID string `json:"intentId"`
}

// ApproveIntent calls POST /companion/st/intents/approve.
func (c *Client) ApproveIntent(ctx context.Context, sess *Session, intentID string) error {
	return c.post(ctx, sess, "/companion/st/intents/approve", intentAction{IntentID: intentID}, nil)
}

// RejectIntent calls POST /companion/st/intents/reject.
func (c *Client) RejectIntent(ctx context.Context, sess *Session, intentID string) error {
	return c.post(ctx, sess, "/companion/st/intents/reject", intentAction{IntentID: intentID}, nil)
}

// PendingXP is one player XP spend awaiting storyteller approval.
type PendingXP struct {
	XPID        string `json:"xp_id"`
	CharacterID string `json:"character_id"`
	Amount      int    `json:"amount"`
	Reason      string `json:"reason,omitempty"`
}

// ListPendingXP calls GET /companion/st/xp/pending.
func (c *Client) ListPendingXP(ctx context.Context) ([]PendingXP, error) {
	var pending []PendingXP
	if err := c.get(ctx, "/companion/st/xp/pending", &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

type xpAction struct {
	XPID string `json:"xpId"`
}

// ApproveXP calls POST /companion/st/xp/approve. The backend applies the
// spend to the character sheet and pushes an xp_applied event.
func (c *Client) ApproveXP(ctx context.Context, sess *Session, xpID string) error {
	return c.post(ctx, sess, "/companion/st/xp/approve", xpAction{XPID: xpID}, nil)
}
