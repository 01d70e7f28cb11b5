package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"world-dashboard/display"
	"world-dashboard/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live terminal dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// the screen is redrawn in place, so only errors reach stderr
		log := logger.NewWithWriter(os.Stderr, "error")
		a, err := newApp(cfg, log)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		stop := a.scheduler.Start(ctx)
		defer stop()

		display.Run(ctx, cmd.OutOrStdout(), a.store, a.printer, cfg.Schedule.ClockInterval)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
