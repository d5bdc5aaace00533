package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kraigochieng/4th-year-project/internal/config"
)

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Resolve a destination through the route guard",
	Long: `Navigate to a destination the way the UI would and print where you end up.
Protected destinations redirect to /auth/login when there is no access token.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exit(runOpen(commandContext(cmd), os.Stdout, cfg, args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}

// runOpen prints the destination reached from dest and returns the exit code.
func runOpen(ctx context.Context, w io.Writer, cfg *config.Config, dest string) int {
	s, err := openSession(ctx, cfg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitFailure
	}
	defer s.Close()

	reached := s.router.Navigate(dest)
	if jsonOutput {
		writeJSON(w, map[string]any{
			"requested":  dest,
			"location":   reached,
			"redirected": reached != dest,
		})
		return exitOK
	}
	fmt.Fprintln(w, reached)
	return exitOK
}
