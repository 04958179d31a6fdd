// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Provides colored inline badges for arc, clock, and ban states

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bloodscript/companion-cli/internal/client"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	var bg, fg lipgloss.Color

	switch level {
	case StatusOK:
		bg, fg = BadgeOKBg, BadgeOKFg
	case StatusWarning:
		bg, fg = BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		bg, fg = BadgeCritBg, BadgeCritFg
	case StatusInfo:
		bg, fg = BadgeInfoBg, BadgeInfoFg
	default:
		bg, fg = BadgeNeutralBg, BadgeNeutralFg
	}

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// ArcBadge renders an arc status as a colored badge.
func ArcBadge(status string) string {
	return Badge(strings.ToUpper(status), arcLevel(status))
}

func arcLevel(status string) StatusLevel {
	switch status {
	case client.ArcActive:
		return StatusOK
	case client.ArcPlanned:
		return StatusInfo
	case client.ArcCompleted:
		return StatusNeutral
	case client.ArcCancelled:
		return StatusCritical
	default:
		return StatusNeutral
	}
}

// BanBadge renders the engine ban state.
func BanBadge(banned bool) string {
	if banned {
		return Badge("BANNED", StatusCritical)
	}
	return Badge("ACTIVE", StatusOK)
}

// StoplightBadge renders a safety signal color.
func StoplightBadge(color string) string {
	switch color {
	case client.StoplightRed:
		return Badge("RED", StatusCritical)
	case client.StoplightYellow:
		return Badge("YELLOW", StatusWarning)
	case client.StoplightGreen:
		return Badge("GREEN", StatusOK)
	default:
		return Badge("--", StatusNeutral)
	}
}
