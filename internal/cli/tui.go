package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kraigochieng/4th-year-project/internal/config"
	"github.com/kraigochieng/4th-year-project/internal/monitor"
	"github.com/kraigochieng/4th-year-project/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [path]",
	Short: "Start the interactive UI",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(commandContext(cmd), syscall.SIGTERM)
		defer cancel()

		start := ""
		if len(args) == 1 {
			start = args[0]
		}
		return runTUI(ctx, cfg, start)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(ctx context.Context, cfg *config.Config, start string) error {
	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	mon := monitor.New(s.store, cfg.Session.Keepalive, cfg.API.Timeout)
	defer mon.Stop()

	app := ui.NewApp(s.store, s.router, mon, start)
	return ui.Run(ctx, app)
}
