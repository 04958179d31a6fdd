// ABOUTME: Authorization gate deriving a view permission from session state
// ABOUTME: Strict rule order; owner beats ban, ban beats role

package access

import "github.com/bloodscript/companion-cli/internal/client"

// Permission is one of the mutually exclusive view permissions. Evaluation
// order is fixed: an owner must never be locked out by a ban (operational
// safety valve), and a ban must lock out everyone else regardless of role.
type Permission int

const (
	LoginRequired Permission = iota
	Banned
	Owner
	ModeratorOrAbove
	Player
)

// String returns the permission name for logs and labels.
func (p Permission) String() string {
	switch p {
	case LoginRequired:
		return "login-required"
	case Banned:
		return "banned"
	case Owner:
		return "owner"
	case ModeratorOrAbove:
		return "moderator-or-above"
	case Player:
		return "player"
	default:
		return "unknown"
	}
}

// Evaluate computes the view permission. It is a pure function of its
// inputs; the moderator flag is the result of the asynchronous roster
// lookup and defaults to false until that lookup completes, so a player
// view can paint first and upgrade without bouncing through other states.
//
// A nil world with a non-nil session is the caller's loading state, not a
// permission; the owner check still applies so the owner console never
// waits on the world fetch.
func Evaluate(sess *client.Session, world *client.WorldState, ownerID string, moderator bool) Permission {
	if sess == nil {
		return LoginRequired
	}
	if ownerID != "" && sess.DiscordUserID == ownerID {
		return Owner
	}
	if world != nil && world.Banned {
		return Banned
	}
	if sess.Role == client.RoleStoryteller || sess.Role == client.RoleAdmin || moderator {
		return ModeratorOrAbove
	}
	return Player
}
