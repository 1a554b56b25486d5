package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecosort/ecosort/internal/logger"
	"github.com/ecosort/ecosort/internal/metrics"
	"github.com/ecosort/ecosort/internal/ui/client"
	"github.com/ecosort/ecosort/internal/ui/config"
	"github.com/ecosort/ecosort/internal/ui/routes"
	"github.com/ecosort/ecosort/internal/ui/server"
	"github.com/ecosort/ecosort/internal/ui/views"
	"github.com/ecosort/ecosort/internal/version"
)

func main() {
	cmd := &cobra.Command{
		Use:   "ecosort-ui",
		Short: "Ecosort web user interface",
		Long:  `Web UI for the ecosort waste sorting knowledge platform. Pages are rendered from the ecosort API.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
		SilenceUsage: true,
	}

	cmd.Version = version.Get().String()
	cmd.AddCommand(newRoutesCommand(), newAPICommand())

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewConfig()
	if err != nil {
		slog.Error("Failed to load UI configuration", slog.String("error", err.Error()))
		return err
	}

	serverLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
	slog.SetDefault(serverLogger)

	serverLogger.Info("Starting UI server", slog.String("version", version.Get().Version))

	m := metrics.NewManager(metrics.WithRuntimeCollectors())

	apiClient := client.NewClient(cfg.APIBaseURL, client.WithTransport(m.InstrumentTransport(nil)))
	set := views.NewSet(apiClient)
	table, err := set.Table(routes.WithLoadHook(func(name string, elapsed time.Duration, err error) {
		m.ObserveViewLoad(name, elapsed, err)
		if err != nil {
			serverLogger.Error("Failed to load view", slog.String("route", name), slog.String("error", err.Error()))
			return
		}
		serverLogger.Debug("View loaded", slog.String("route", name), slog.Duration("duration", elapsed))
	}))
	if err != nil {
		serverLogger.Error("Failed to build route table", slog.String("error", err.Error()))
		return err
	}

	s, err := server.NewServer(cfg, serverLogger, table, set, m)
	if err != nil {
		serverLogger.Error("Failed to create UI server", slog.String("error", err.Error()))
		return err
	}

	// Set up graceful shutdown handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Start(ctx); err != nil {
		serverLogger.Error("UI server error", slog.String("error", err.Error()))
		return err
	}

	serverLogger.Info("UI server shutdown complete")
	return nil
}
