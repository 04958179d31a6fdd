// ABOUTME: Login command storing a session token as the local credential
// ABOUTME: Verifies the token against the backend before persisting it

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
	"github.com/bloodscript/companion-cli/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login <token>",
	Short: "Store a session token",
	Long: `Verify a session token against the backend and store it as the
local credential. Obtain a token by signing in with Discord:

  <api-url>/auth/discord/login?engineId=<engine>

Exit codes:
  0 - Token verified and stored
  2 - Token rejected or backend unreachable`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

// runLogin verifies and stores the token, returning an exit code
func runLogin(ctx context.Context, w io.Writer, token string) int {
	token = strings.TrimSpace(token)
	if token == "" {
		fmt.Fprintln(w, "Error: token is empty")
		return 2
	}

	base := client.New(GetAPIURL())
	store := session.NewStore(session.DefaultConfigDir())
	resolver := session.NewResolver(store, base)

	sess, err := resolver.Resolve(ctx, token)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Logged in as %s (%s)\n", sess.UserID, sess.Role)
	return 0
}
