// Package cli implements the adrctl command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kraigochieng/4th-year-project/internal/api"
	"github.com/kraigochieng/4th-year-project/internal/config"
	"github.com/kraigochieng/4th-year-project/internal/logger"
)

// Exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitConnection = 2
)

var (
	configPath string
	apiURL     string
	jsonOutput bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "adrctl",
	Short: "Terminal client for ADR reporting",
	Long: `adrctl signs in to the ADR (Adverse Drug Reaction) reporting API and keeps
the session fresh. Run without a subcommand to start the interactive UI.

Environment Variables:
  ADRCTL_CONFIG     Path to a YAML config file
  ADRCTL_API_URL    API base URL (default: ` + api.DefaultBaseURL + `)
  ADRCTL_STORAGE    Token storage: cookie, sqlite, redis or memory
  ADRCTL_CACHE_DIR  Directory for the cookie file, database and debug log`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tuiCmd.RunE(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	defer logger.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (overrides ADRCTL_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides ADRCTL_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(loaded.CacheDir, 0o700); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	if err := logger.Init(loaded.Log.Env, loaded.LogPath); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func loadConfig() (*config.Config, error) {
	loaded, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		loaded.API.BaseURL = apiURL
	}
	return loaded, nil
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case api.IsKind(err, api.KindTransport):
		return exitConnection
	default:
		return exitFailure
	}
}

func exit(code int) {
	if code != exitOK {
		logger.Sync()
		os.Exit(code)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
