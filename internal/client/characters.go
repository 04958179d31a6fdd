// ABOUTME: Character roster and sheet calls against /companion/characters
// ABOUTME: Includes active-character selection and XP spend requests

package client

import (
	"context"
	"fmt"
)

// ListCharacters calls GET /companion/characters.
func (c *Client) ListCharacters(ctx context.Context) ([]CharacterSummary, error) {
	var list []CharacterSummary
	if err := c.get(ctx, "/companion/characters", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetCharacterSheet calls GET /companion/characters/{id}/sheet.
func (c *Client) GetCharacterSheet(ctx context.Context, characterID string) (CharacterSheet, error) {
	var sheet CharacterSheet
	path := fmt.Sprintf("/companion/characters/%s/sheet", characterID)
	if err := c.get(ctx, path, &sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

// UpdateCharacterSheet calls POST /companion/characters/{id}/sheet.
func (c *Client) UpdateCharacterSheet(ctx context.Context, sess *Session, characterID string, sheet CharacterSheet) error {
	path := fmt.Sprintf("/companion/characters/%s/sheet", characterID)
	return c.post(ctx, sess, path, sheet, nil)
}

type setActiveInput struct {
	CharacterID string `json:"characterId"`
}

// SetActiveCharacter calls POST /companion/characters/active.
func (c *Client) SetActiveCharacter(ctx context.Context, sess *Session, characterID string) error {
	return c.post(ctx, sess, "/companion/characters/active", setActiveInput{CharacterID: characterID}, nil)
}

// XPSpendInput requests an XP spend for storyteller approval.
type XPSpendInput struct {
	CharacterID string `json:"characterId"`
	Type        string `json:"type"`
	Current     int    `json:"current"`
	Reason      string `json:"reason"`
}

// XPSpendResult reports whether the request was accepted.
type XPSpendResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// RequestXPSpend calls POST /companion/characters/xp.
func (c *Client) RequestXPSpend(ctx context.Context, sess *Session, input *XPSpendInput) (*XPSpendResult, error) {
	var result XPSpendResult
	if err := c.post(ctx, sess, "/companion/characters/xp", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
