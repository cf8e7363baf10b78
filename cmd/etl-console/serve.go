package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmussaku/mongodb-etl-poc/internal/api"
	"github.com/dmussaku/mongodb-etl-poc/internal/cache"
	"github.com/dmussaku/mongodb-etl-poc/internal/healthcheck"
	"github.com/dmussaku/mongodb-etl-poc/internal/service"
	"github.com/dmussaku/mongodb-etl-poc/pkg/httpserver"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the console shell API and view stream.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(parent context.Context, opts *rootOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	a, err := bootstrap(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("configuration loaded",
		slog.String("api_base_url", a.client.BaseURL()),
		slog.String("addr", a.cfg.Server.Addr),
	)

	console := service.NewConsoleService(a.repo, cache.NewNoticeStore(a.cfg.Notices.TTL), a.logger)
	defer console.Close()

	// Mount the dashboard so the first snapshot has something to show
	console.Navigate(ctx, "/")

	readiness := healthcheck.NewChecker(a.repo, a.cfg.API.Timeout, a.logger)
	handler := api.NewHandler(console, readiness, a.cfg.Server.BasePath, a.cfg.Server.AllowedOrigins, a.logger)
	srv := httpserver.New(
		a.cfg.Server.Addr,
		handler.Router(),
		a.cfg.Server.ReadTimeout,
		a.cfg.Server.WriteTimeout,
		a.logger,
	)

	a.logger.Info("starting etl-console service")
	if err := srv.Run(ctx); err != nil {
		return err
	}

	a.logger.Info("shutdown complete")
	return nil
}
