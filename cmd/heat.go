// ABOUTME: Heat command checking the city heat against a threshold
// ABOUTME: Exit-code driven so Discord bots and scripts can alert on it

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
)

var heatThreshold int

var heatCmd = &cobra.Command{
	Use:   "heat",
	Short: "Check city heat against a threshold",
	Long: `Check the current city heat and exit non-zero if it meets or
exceeds the threshold.

Exit codes:
  0 - Heat below threshold
  1 - Heat at or above threshold
  2 - Error (not logged in, connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHeat(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(heatCmd)
	heatCmd.Flags().IntVar(&heatThreshold, "threshold", 7, "Heat level that triggers a non-zero exit")
}

// runHeat fetches the world and checks heat, returning an exit code
func runHeat(ctx context.Context, w io.Writer) int {
	if heatThreshold < 0 {
		fmt.Fprintln(w, "Error: --threshold must not be negative")
		return 2
	}

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

	exceeded := snapshot.Heat >= heatThreshold

	if IsJSONOutput() {
		out := map[string]any{
			"heat":      snapshot.Heat,
			"threshold": heatThreshold,
			"exceeded":  exceeded,
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
	} else if exceeded {
		fmt.Fprintf(w, "✗ Heat %d at or above threshold %d\n", snapshot.Heat, heatThreshold)
	} else {
		fmt.Fprintf(w, "✓ Heat %d below threshold %d\n", snapshot.Heat, heatThreshold)
	}

	if exceeded {
		return 1
	}
	return 0
}
