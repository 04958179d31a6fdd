// ABOUTME: HTTP client for the Blood Script Companion API
// ABOUTME: Wraps REST calls with bearer credentials and CSRF headers

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the API client for the companion backend. A zero token is
// valid: the identity check may still succeed via an ambient cookie
// session when the backend sits behind the OAuth redirect flow.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client with the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithToken returns a copy of the client that authenticates with the
// given credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Me calls /companion/me. This is the single identity check per
// resolution attempt; its response seeds the CSRF token used by every
// mutating call on the returned Session.
func (c *Client) Me(ctx context.Context) (*Session, error) {
	var sess Session
	if err := c.get(ctx, "/companion/me", &sess); err != nil {
		return nil, err
	}
	sess.Token = c.token
	return &sess, nil
}

// World calls /companion/world and returns the full snapshot.
func (c *Client) World(ctx context.Context) (*WorldState, error) {
	body, err := c.getRaw(ctx, "/companion/world")
	if err != nil {
		return nil, err
	}
	w, err := decodeWorld(body)
	if err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	return w, nil
}

// Logout calls /auth/discord/logout, invalidating the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.get(ctx, "/auth/discord/logout", nil)
}

// get issues a GET and decodes the JSON response into out (nil to discard).
func (c *Client) get(ctx context.Context, path string, out any) error {
	body, err := c.getRaw(ctx, path)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp)
	}

	return io.ReadAll(resp.Body)
}

// post issues a mutating call with the Session's CSRF token and decodes
// the response into out (nil to discard).
func (c *Client) post(ctx context.Context, sess *Session, path string, in, out any) error {
	var reader io.Reader
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if sess != nil && sess.CSRFToken != "" {
		req.Header.Set("x-csrf-token", sess.CSRFToken)
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// postWorld issues a storyteller mutation whose response is the updated
// WorldState, in either wrapped or bare form.
func (c *Client) postWorld(ctx context.Context, sess *Session, path string, in any) (*WorldState, error) {
	var raw json.RawMessage
	if err := c.post(ctx, sess, path, in, &raw); err != nil {
		return nil, err
	}
	w, err := decodeWorld(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	return w, nil
}

func (c *Client) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("not authenticated")
	}
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("backend error: %s", errResp.Error)
}
