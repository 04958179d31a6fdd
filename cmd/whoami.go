// ABOUTME: Whoami command showing the resolved session
// ABOUTME: Useful to verify credentials and role before play

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

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami resolves and prints the session, returning an exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	sess, _, err := resolveSession(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		out := map[string]string{
			"user_id": sess.UserID,
			"role":    sess.Role,
		}
		if sess.DiscordUserID != "" {
			out["discord_user_id"] = sess.DiscordUserID
		}
		if sess.EngineID != "" {
			out["engine_id"] = sess.EngineID
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "User:   %s\n", sess.UserID)
	fmt.Fprintf(w, "Role:   %s\n", sess.Role)
	if sess.DiscordUserID != "" {
		fmt.Fprintf(w, "Discord: %s\n", sess.DiscordUserID)
	}
	if sess.EngineID != "" {
		fmt.Fprintf(w, "Engine: %s\n", sess.EngineID)
	}
	if GetOwnerID() != "" && sess.DiscordUserID == GetOwnerID() {
		fmt.Fprintln(w, "You are the deployment owner.")
	}
	return 0
}
