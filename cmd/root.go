// ABOUTME: Root command for the bloodscript CLI
// ABOUTME: Handles global flags, .env loading, and configuration precedence

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bloodscript/companion-cli/internal/client"
	"github.com/bloodscript/companion-cli/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
	engineID   string
	tokenFlag  string
)

const defaultAPIURL = "http://localhost:3000"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "bloodscript",
	Short: "CLI companion for Blood Script chronicles",
	Long: `bloodscript is a command-line companion for Blood Script,
a Vampire: The Masquerade (V5) play-by-Discord engine.

Run without a subcommand to open the interactive dashboard.

Environment Variables:
  BLOODSCRIPT_API_URL    Backend API URL (default: http://localhost:3000)
  BLOODSCRIPT_TOKEN      Session token (overrides the stored credential)
  BLOODSCRIPT_ENGINE_ID  Engine (chronicle) to log in against
  BLOODSCRIPT_OWNER_ID   Discord user id of the deployment owner`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd.Context())
	},
}

// Execute runs the root command
func Execute() error {
	// Missing .env is the common case outside development.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides BLOODSCRIPT_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&engineID, "engine", "", "Engine id (overrides BLOODSCRIPT_ENGINE_ID)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Session token (overrides stored credential and BLOODSCRIPT_TOKEN)")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("BLOODSCRIPT_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// GetEngineID returns the engine id from flag or env.
func GetEngineID() string {
	if engineID != "" {
		return engineID
	}
	return os.Getenv("BLOODSCRIPT_ENGINE_ID")
}

// GetTokenOverride returns an explicit token from flag or env. Empty means
// the stored credential is used.
func GetTokenOverride() string {
	if tokenFlag != "" {
		return tokenFlag
	}
	return os.Getenv("BLOODSCRIPT_TOKEN")
}

// GetOwnerID returns the configured deployment owner's Discord user id.
func GetOwnerID() string {
	return os.Getenv("BLOODSCRIPT_OWNER_ID")
}

// resolveSession resolves a session the same way the dashboard does and
// returns a client authenticated with it.
func resolveSession(ctx context.Context) (*client.Session, *client.Client, error) {
	base := client.New(GetAPIURL())
	store := session.NewStore(session.DefaultConfigDir())
	resolver := session.NewResolver(store, base)

	sess, err := resolver.Resolve(ctx, GetTokenOverride())
	if err != nil {
		return nil, nil, fmt.Errorf("not logged in: run 'bloodscript login' first (%v)", err)
	}
	return sess, base.WithToken(sess.Token), nil
}
