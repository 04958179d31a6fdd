// ABOUTME: Coterie read calls against /companion/coteries
// ABOUTME: Roster listing and per-coterie detail with members

package client

import (
	"context"
	"fmt"
)

// ListCoteries calls GET /companion/coteries.
func (c *Client) ListCoteries(ctx context.Context) ([]CoterieSummary, error) {
	var list []CoterieSummary
	if err := c.get(ctx, "/companion/coteries", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetCoterie calls GET /companion/coteries/{id}.
func (c *Client) GetCoterie(ctx context.Context, coterieID string) (*CoterieDetail, error) {
	var detail CoterieDetail
	if err := c.get(ctx, fmt.Sprintf("/companion/coteries/%s", coterieID), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
