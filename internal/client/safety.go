// ABOUTME: Stoplight safety-tool calls against /companion/safety
// ABOUTME: Raising and listing red/yellow/green signals

package client

import "context"

// StoplightInput raises a safety signal.
type StoplightInput struct {
	Color string `json:"color"`
	Note  string `json:"note,omitempty"`
}

// RaiseStoplight calls POST /companion/safety/stoplight.
func (c *Client) RaiseStoplight(ctx context.Context, sess *Session, input *StoplightInput) error {
	return c.post(ctx, sess, "/companion/safety/stoplight", input, nil)
}

// ListStoplights calls GET /companion/safety/stoplights.
func (c *Client) ListStoplights(ctx context.Context) ([]Stoplight, error) {
	var list []Stoplight
	if err := c.get(ctx, "/companion/safety/stoplights", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// DiceInput is a V5 dice pool roll request.
type DiceInput struct {
	Pool   int    `json:"pool"`
	Hunger int    `json:"hunger,omitempty"`
	Label  string `json:"label,omitempty"`
}

// RollDice calls POST /companion/dice/roll.
func (c *Client) RollDice(ctx context.Context, sess *Session, input *DiceInput) (*DiceResult, error) {
	var result DiceResult
	if err := c.post(ctx, sess, "/companion/dice/roll", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// IsModerator calls GET /companion/moderators/me, answering whether the
// current user is on the engine's moderator roster. Storyteller and admin
// roles don't need this; the gate short-circuits on role first.
func (c *Client) IsModerator(ctx context.Context) (bool, error) {
	var resp struct {
		Moderator bool `json:"moderator"`
	}
	if err := c.get(ctx, "/companion/moderators/me", &resp); err != nil {
		return false, err
	}
	return resp.Moderator, nil
}
