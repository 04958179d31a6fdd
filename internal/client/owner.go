// ABOUTME: Owner console calls against /owner and the ban-appeal workflow
// ABOUTME: Engine roster, ban/unban, inspection, and appeals

package client

import (
	"context"
	"encoding/json"
)

type enginesResponse struct {
	Engines []Engine `json:"engines"`
}

// ListEngines calls GET /owner/engines.
func (c *Client) ListEngines(ctx context.Context) ([]Engine, error) {
	var resp enginesResponse
	if err := c.get(ctx, "/owner/engines", &resp); err != nil {
		return nil, err
	}
	return resp.Engines, nil
}

type engineAction struct {
	EngineID string `json:"engineId"`
	Reason   string `json:"reason,omitempty"`
}

// BanEngine calls POST /owner/ban-engine.
func (c *Client) BanEngine(ctx context.Context, sess *Session, engineID, reason string) error {
	return c.post(ctx, sess, "/owner/ban-engine", engineAction{EngineID: engineID, Reason: reason}, nil)
}

// UnbanEngine calls POST /owner/unban-engine.
func (c *Client) UnbanEngine(ctx context.Context, sess *Session, engineID string) error {
	return c.post(ctx, sess, "/owner/unban-engine", engineAction{EngineID: engineID}, nil)
}

type inspectResponse struct {
	Engine json.RawMessage `json:"engine"`
}

// InspectEngine calls POST /owner/engine and returns the raw engine record
// for display; the owner console renders it verbatim.
func (c *Client) InspectEngine(ctx context.Context, sess *Session, engineID string) (json.RawMessage, error) {
	var resp inspectResponse
	if err := c.post(ctx, sess, "/owner/engine", engineAction{EngineID: engineID}, &resp); err != nil {
		return nil, err
	}
	return resp.Engine, nil
}

// AppealInput is a ban appeal submitted by a non-owner on a banned engine.
type AppealInput struct {
	EngineID string `json:"engineId"`
	Message  string `json:"message"`
}

// SubmitAppeal calls POST /engine/appeals.
func (c *Client) SubmitAppeal(ctx context.Context, sess *Session, input *AppealInput) error {
	return c.post(ctx, sess, "/engine/appeals", input, nil)
}
