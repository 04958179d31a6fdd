// ABOUTME: World command printing the current world snapshot
// ABOUTME: Human-readable summary or full JSON for scripting

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bloodscript/companion-cli/internal/client"
)

var worldCmd = &cobra.Command{
	Use:   "world",
	Short: "Show the current world state",
	Long: `Display the current world snapshot: arcs, clocks, pressure, heat,
and the engine map.

Exit codes:
  0 - Snapshot printed
  2 - Error (not logged in, connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWorld(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(worldCmd)
}

// runWorld fetches and prints the world snapshot, returning an exit code
func runWorld(ctx context.Context, w io.Writer) int {
	_, api, err := resolveSession(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	snapshot, err := api.World(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(snapshot, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprint(w, formatWorldHuman(snapshot))
	return 0
}

// formatWorldHuman formats a world snapshot for human readability
func formatWorldHuman(snapshot *client.WorldState) string {
	var out string

	if snapshot.Banned {
		out += "BANNED"
		if snapshot.BannedReason != "" {
			out += ": " + snapshot.BannedReason
		}
		out += "\n\n"
	}

	out += fmt.Sprintf("Heat: %d\n", snapshot.Heat)

	if len(snapshot.Arcs) > 0 {
		out += "\nArcs:\n"
		for _, arc := range snapshot.Arcs {
			out += fmt.Sprintf("  %-30s [%s]\n", arc.Title, arc.Status)
		}
	}

	if len(snapshot.Clocks) > 0 {
		out += "\nClocks:\n"
		for _, clock := range snapshot.Clocks {
			nightly := ""
			if clock.Nightly {
				nightly = " (nightly)"
			}
			out += fmt.Sprintf("  %-30s %d/%d%s\n", clock.Title, clock.Progress, clock.Segments, nightly)
		}
	}

	if len(snapshot.Pressure) > 0 {
		out += "\nPressure:\n"
		for _, p := range snapshot.Pressure {
			out += fmt.Sprintf("  [%d] %s\n", p.Severity, p.Description)
		}
	}

	if snapshot.MapURL != "" {
		out += fmt.Sprintf("\nMap: %s\n", snapshot.MapURL)
	}

	return out
}
