// ABOUTME: Logout command clearing the stored credential
// ABOUTME: Best-effort backend logout; local state is always cleared

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bloodscript/companion-cli/internal/client"
	"github.com/bloodscript/companion-cli/internal/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored credential",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogout(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout tells the backend and clears the local credential
func runLogout(ctx context.Context, w io.Writer) int {
	store := session.NewStore(session.DefaultConfigDir())

	base := client.New(GetAPIURL())
	resolver := session.NewResolver(store, base)
	if sess, err := resolver.Resolve(ctx, GetTokenOverride()); err == nil {
		// The server invalidating the token is best effort; the local
		// credential goes away regardless.
		if err := base.WithToken(sess.Token).Logout(ctx); err != nil {
			fmt.Fprintf(w, "Warning: backend logout failed: %v\n", err)
		}
	}

	if err := store.Clear(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintln(w, "Logged out.")
	return 0
}
