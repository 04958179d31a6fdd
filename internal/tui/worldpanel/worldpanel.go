// ABOUTME: World tab displaying the current chronicle snapshot
// ABOUTME: Arcs, clocks, pressure events, heat, and the embedded map URL

package worldpanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bloodscript/companion-cli/internal/client"
	"github.com/bloodscript/companion-cli/internal/tui/icons"
	"github.com/bloodscript/companion-cli/internal/tui/styles"
	"github.com/bloodscript/companion-cli/internal/tui/widgets"
)

// maxPressureRows limits the pressure list to the most recent events.
const maxPressureRows = 6

// Model displays one world snapshot. It never mutates the snapshot; the
// app replaces it wholesale on every update.
type Model struct {
	world  *client.WorldState
	width  int
	height int
}

// New creates a world panel over the given snapshot.
func New(world *client.WorldState, width, height int) *Model {
	return &Model{world: world, width: width, height: height}
}

// SetWorld replaces the rendered snapshot.
func (m *Model) SetWorld(world *client.WorldState) {
	m.world = world
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the world panel.
func (m *Model) View() string {
	if m.world == nil {
		return styles.Panel.Width(m.width).Render("Loading world...")
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Heat.String() + " Second Inquisition Heat"))
	sb.WriteString("\n")
	sb.WriteString(m.heatLine())
	sb.WriteString("\n\n")

	sb.WriteString(styles.Title.Render(icons.Arc.String() + " Arcs"))
	sb.WriteString("\n")
	sb.WriteString(m.arcRows())
	sb.WriteString("\n")

	sb.WriteString(styles.Title.Render(icons.ClockRun.String() + " Clocks"))
	sb.WriteString("\n")
	sb.WriteString(m.clockRows())
	sb.WriteString("\n")

	sb.WriteString(styles.Title.Render(icons.Pressure.String() + " Pressure"))
	sb.WriteString("\n")
	sb.WriteString(m.pressureRows())

	if m.world.MapURL != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render(icons.Map.String() + " Map: " + m.world.MapURL))
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Render(sb.String())
}

// HeatLabel formats the heat level for display.
func HeatLabel(heat int) string {
	return fmt.Sprintf("%d", heat)
}

func (m *Model) heatLine() string {
	heat := m.world.Heat
	style := styles.StatusOK
	if heat >= 7 {
		style = styles.StatusCritical
	} else if heat >= 4 {
		style = styles.StatusWarning
	}
	return fmt.Sprintf("  Heat: %s", style.Render(HeatLabel(heat)))
}

func (m *Model) arcRows() string {
	if len(m.world.Arcs) == 0 {
		return styles.Subtitle.Render("  No arcs yet.") + "\n"
	}
	var sb strings.Builder
	for _, arc := range m.world.Arcs {
		sb.WriteString(fmt.Sprintf("  %s %s\n", widgets.ArcBadge(arc.Status), arc.Title))
	}
	return sb.String()
}

func (m *Model) clockRows() string {
	if len(m.world.Clocks) == 0 {
		return styles.Subtitle.Render("  No clocks running.") + "\n"
	}
	var sb strings.Builder
	for _, clock := range m.world.Clocks {
		nightly := ""
		if clock.Nightly {
			nightly = " " + styles.Subtitle.Render("(nightly)")
		}
		tracker := widgets.SegmentTrackerWithLabel(clock.Progress, clock.Segments, styles.Primary, styles.Surface)
		sb.WriteString(fmt.Sprintf("  %s %s%s\n", tracker, clock.Title, nightly))
	}
	return sb.String()
}

func (m *Model) pressureRows() string {
	if len(m.world.Pressure) == 0 {
		return styles.Subtitle.Render("  All quiet.") + "\n"
	}

	var sb strings.Builder

	severities := make([]float64, len(m.world.Pressure))
	for i, p := range m.world.Pressure {
		severities[i] = float64(p.Severity)
	}
	sb.WriteString("  " + widgets.Sparkline(severities, 24, styles.Crimson) + "\n")

	events := m.world.Pressure
	if len(events) > maxPressureRows {
		events = events[len(events)-maxPressureRows:]
	}
	for _, p := range events {
		sb.WriteString(fmt.Sprintf("  [%d] %s: %s\n", p.Severity, p.Source, p.Description))
	}
	return sb.String()
}
