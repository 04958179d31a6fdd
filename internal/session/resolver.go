// ABOUTME: Resolves a stored or freshly issued credential into a Session
// ABOUTME: Exactly one identity check per attempt; failure clears the credential

package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/bloodscript/companion-cli/internal/client"
)

// ErrUnauthenticated marks a terminal resolution failure. The caller must
// fall back to the login screen; no automatic retry happens.
var ErrUnauthenticated = errors.New("not authenticated")

// Resolver obtains exactly one verified Session before any protected data
// is requested.
type Resolver struct {
	store  *Store
	client *client.Client
}

// NewResolver creates a resolver over the given credential store and
// API client.
func NewResolver(store *Store, c *client.Client) *Resolver {
	return &Resolver{store: store, client: c}
}

// Resolve turns a credential into a verified Session, or fails terminally.
//
// An override credential (passed on the command line or delivered by the
// OAuth redirect) takes precedence over the stored one and replaces it.
// The session is all-or-nothing: either every identity field is populated
// from the backend response, or ErrUnauthenticated is returned and the
// stored credential is cleared.
func (r *Resolver) Resolve(ctx context.Context, override string) (*client.Session, error) {
	token := override
	if token == "" {
		token = r.store.Load()
	}

	sess, err := r.client.WithToken(token).Me(ctx)
	if err != nil {
		// Any failure invalidates the persisted credential so the next
		// attempt starts clean.
		r.store.Clear()
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	if override != "" {
		if err := r.store.Save(override); err != nil {
			return nil, fmt.Errorf("failed to persist credential: %w", err)
		}
	}

	return sess, nil
}

// Forget clears the persisted credential without contacting the backend.
func (r *Resolver) Forget() error {
	return r.store.Clear()
}
