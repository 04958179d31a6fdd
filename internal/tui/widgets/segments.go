// ABOUTME: Segment tracker widget for narrative clocks and severity dots
// ABOUTME: Renders filled/empty segments, clamping progress to the count

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SegmentTracker renders a clock as filled and empty segments. Progress
// beyond the segment count is clamped: the backend enforces the bound,
// but the renderer must not trust that.
func SegmentTracker(progress, segments int, filledColor, emptyColor lipgloss.Color) string {
	if segments <= 0 {
		return ""
	}
	if progress < 0 {
		progress = 0
	}
	if progress > segments {
		progress = segments
	}

	filledStyle := lipgloss.NewStyle().Foreground(filledColor)
	emptyStyle := lipgloss.NewStyle().Foreground(emptyColor)

	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < segments; i++ {
		if i < progress {
			sb.WriteString(filledStyle.Render("█"))
		} else {
			sb.WriteString(emptyStyle.Render("░"))
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// SegmentTrackerWithLabel renders the tracker with a progress/segments label.
func SegmentTrackerWithLabel(progress, segments int, filledColor, emptyColor lipgloss.Color) string {
	shown := progress
	if shown > segments {
		shown = segments
	}
	if shown < 0 {
		shown = 0
	}
	return fmt.Sprintf("%s %d/%d", SegmentTracker(progress, segments, filledColor, emptyColor), shown, segments)
}

// Dots renders a trait rating as filled and empty dots (●●●○○).
func Dots(rating, max int) string {
	if max <= 0 {
		max = 5
	}
	if rating < 0 {
		rating = 0
	}
	if rating > max {
		rating = max
	}
	return strings.Repeat("●", rating) + strings.Repeat("○", max-rating)
}
