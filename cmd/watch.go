// ABOUTME: Watch command opening the interactive dashboard
// ABOUTME: Also the default when bloodscript runs without a subcommand

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bloodscript/companion-cli/internal/client"
	"github.com/bloodscript/companion-cli/internal/session"
	"github.com/bloodscript/companion-cli/internal/tui"
	"github.com/bloodscript/companion-cli/internal/tui/debuglog"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the interactive dashboard",
	Long: `Open the full-screen dashboard with the live world state, your
characters, coteries, and (for storytellers) the ST tools.

The dashboard stays connected to the realtime channel and repaints as
world snapshots are pushed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// runWatch wires the app and runs the bubbletea program
func runWatch(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	configDir := session.DefaultConfigDir()
	if err := debuglog.Init(configDir); err == nil {
		defer debuglog.Close()
	}

	api := client.New(GetAPIURL())
	resolver := session.NewResolver(session.NewStore(configDir), api)

	err := tui.Run(ctx, api, resolver, tui.Options{
		APIURL:        GetAPIURL(),
		OwnerID:       GetOwnerID(),
		EngineID:      GetEngineID(),
		TokenOverride: GetTokenOverride(),
	})
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
