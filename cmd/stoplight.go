// ABOUTME: Stoplight command raising a red/yellow/green safety signal
// ABOUTME: The note is optional so signals can stay anonymous

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bloodscript/companion-cli/internal/client"
)

var stoplightNote string

var stoplightCmd = &cobra.Command{
	Use:   "stoplight <red|yellow|green>",
	Short: "Raise a safety signal",
	Long: `Raise a stoplight safety signal for the current scene.

  red     stop the current content immediately
  yellow  ease off, steer away
  green   all good, keep going

Exit codes:
  0 - Signal raised
  2 - Error (not logged in, invalid color, connectivity)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runStoplight(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(stoplightCmd)
	stoplightCmd.Flags().StringVar(&stoplightNote, "note", "", "Optional note for the storyteller")
}

// runStoplight raises the signal, returning an exit code
func runStoplight(ctx context.Context, w io.Writer, color string) int {
	color = strings.ToLower(strings.TrimSpace(color))
	switch color {
	case client.StoplightRed, client.StoplightYellow, client.StoplightGreen:
	default:
		fmt.Fprintln(w, "Error: color must be red, yellow, or green")
		return 2
	}

	sess, api, err := resolveSession(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := api.RaiseStoplight(ctx, sess, &client.StoplightInput{
		Color: color,
		Note:  stoplightNote,
	}); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Raised %s.\n", color)
	return 0
}
