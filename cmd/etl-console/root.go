package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmussaku/mongodb-etl-poc/internal/config"
	"github.com/dmussaku/mongodb-etl-poc/internal/logger"
	"github.com/dmussaku/mongodb-etl-poc/internal/repository"
	"github.com/dmussaku/mongodb-etl-poc/internal/transport"
	"github.com/dmussaku/mongodb-etl-poc/internal/util"
)

type rootOptions struct {
	configPath string
	out        io.Writer
	logOut     io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{out: out, logOut: os.Stderr}

	cmd := &cobra.Command{
		Use:           "etl-console",
		Short:         "Operator console for the ETL service.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "config.yaml", "path to configuration file")

	cmd.AddCommand(newServeCmd(opts), newScreenCmd(opts), newProbeCmd(opts))
	return cmd
}

// app is the wiring shared by every command
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	client *transport.Client
	repo   repository.ETLRepository
}

func bootstrap(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, &exitError{code: 2, err: err}
	}

	log, err := logger.NewFromConfig(opts.logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, &exitError{code: 2, err: err}
	}

	tlsConfig, err := util.LoadTLSConfig(cfg.API.TLS)
	if err != nil {
		return nil, &exitError{code: 2, err: fmt.Errorf("failed to load api tls: %w", err)}
	}

	client := transport.New(transport.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		TLS:     tlsConfig,
	}, log)

	return &app{
		cfg:    cfg,
		logger: log,
		client: client,
		repo:   repository.NewETLRepository(client),
	}, nil
}
