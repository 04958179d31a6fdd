// ABOUTME: Roll command for V5 dice pools via the backend roller
// ABOUTME: Server-side rolls so results land in the shared session log

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bloodscript/companion-cli/internal/client"
)

var (
	rollHunger int
	rollLabel  string
)

var rollCmd = &cobra.Command{
	Use:   "roll <pool>",
	Short: "Roll a V5 dice pool",
	Long: `Roll a dice pool on the backend roller. Hunger dice replace normal
dice from the pool; results are visible to the whole session.

Exit codes:
  0 - Rolled
  2 - Error (not logged in, invalid pool, connectivity)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRoll(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(rollCmd)
	rollCmd.Flags().IntVar(&rollHunger, "hunger", 0, "Hunger dice in the pool")
	rollCmd.Flags().StringVar(&rollLabel, "label", "", "Label shown in the session log")
}

// runRoll submits the roll and prints the result, returning an exit code
func runRoll(ctx context.Context, w io.Writer, poolArg string) int {
	pool, err := strconv.Atoi(strings.TrimSpace(poolArg))
	if err != nil || pool <= 0 {
		fmt.Fprintln(w, "Error: pool must be a positive number of dice")
		return 2
	}
	if rollHunger < 0 || rollHunger > pool {
		fmt.Fprintln(w, "Error: --hunger must be between 0 and the pool size")
		return 2
	}

	sess, api, err := resolveSession(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	result, err := api.RollDice(ctx, sess, &client.DiceInput{
		Pool:   pool,
		Hunger: rollHunger,
		Label:  rollLabel,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprint(w, formatRollHuman(result))
	return 0
}

// formatRollHuman formats a dice result for human readability
func formatRollHuman(result *client.DiceResult) string {
	var out string

	if result.Label != "" {
		out += result.Label + "\n"
	}
	out += fmt.Sprintf("Successes: %d (pool %d, hunger %d)\n",
		result.Successes, result.Pool, result.Hunger)
	out += fmt.Sprintf("Dice:      %s\n", joinInts(result.Results))
	if len(result.HungerDice) > 0 {
		out += fmt.Sprintf("Hunger:    %s\n", joinInts(result.HungerDice))
	}
	if result.MessyCrit {
		out += "MESSY CRITICAL\n"
	}
	if result.BestialFail {
		out += "BESTIAL FAILURE\n"
	}

	return out
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
