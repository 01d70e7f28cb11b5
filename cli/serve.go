package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"world-dashboard/api"
	"world-dashboard/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the refresh cycles and the JSON API",
	Long: `Starts the clock, sun and weather cycles and serves the computed state:

  GET /api/health
  GET /api/cities
  GET /api/clocks            GET /api/clocks/:city
  GET /api/sun/:city
  GET /api/weather           GET /api/weather/:city
  GET /api/delta?from=&to=

Without OPENWEATHERMAP_API_KEY the weather endpoints answer 503.
SIGHUP re-reads the config file and applies its city list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.HTTP.Address = serveAddr
		}

		log := logger.New(cfg.LogLevel)
		a, err := newApp(cfg, log)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		stop := a.scheduler.Start(ctx)
		defer stop()

		server := api.NewServer(cfg.HTTP, a.store, a.dir, a.delta, a.printer, log).WithSun(a.sun, a.sunCache)
		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)

	loop:
		for {
			select {
			case <-hup:
				reloaded, err := loadConfig()
				if err == nil {
					err = a.reloadCities(reloaded)
				}
				if err != nil {
					log.Error("reload failed, keeping current cities", "error", err)
				}
			case <-ctx.Done():
				log.Info("shutdown signal received")
				break loop
			case err := <-errCh:
				return err
			}
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides http.address)")
	rootCmd.AddCommand(serveCmd)
}
