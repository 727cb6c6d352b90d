// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/contentgate/internal/api"
	"github.com/tomtom215/contentgate/internal/logging"
	"github.com/tomtom215/contentgate/internal/metrics"
	"github.com/tomtom215/contentgate/internal/supervisor"
	"github.com/tomtom215/contentgate/internal/supervisor/services"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis and rating API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.runServe(ctx)
		},
	}
}

// runServe runs the HTTP server, and the metrics textfile writer when one is
// configured, under a supervisor tree until ctx is canceled.
func (a *app) runServe(ctx context.Context) error {
	cfg := a.cfg

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	handler := api.NewHandler(api.HandlerDeps{
		Pipeline:     eng.pipeline,
		Classifier:   eng.classifier,
		Audit:        eng.store,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Server))
	server := api.NewHTTPServer(cfg.Server, router)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if cfg.Metrics.Textfile != "" {
		tree.AddStorageService(services.NewTextfileService(cfg.Metrics.Textfile, cfg.Metrics.TextfileInterval, metrics.WriteTextfile))
		logging.Info().Str("path", cfg.Metrics.Textfile).Msg("Metrics textfile service added")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().
		Str("addr", server.Addr).
		Bool("audit", eng.store != nil).
		Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Server stopped gracefully")
	if ctx.Err() == nil && err != nil {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	return nil
}
