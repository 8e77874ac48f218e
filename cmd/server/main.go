// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

// Package main is the entry point for the Showlens server.
//
// Showlens is a self-hosted analytics dashboard for a static TV-shows
// dataset with simulated viewer demographics. It loads one CSV at
// startup, holds it immutably in memory, and serves recomputed chart
// payloads (histograms, scatter, correlation, top genres, time series,
// and a genre-by-age-group pivot) filtered by the client's age-group and
// genre selection.
//
// # Startup order
//
//  1. Configuration: Koanf v2 layered load (defaults, config.yaml, env)
//  2. Logging: zerolog, configured from the loaded settings
//  3. Dataset: one-time CSV load; missing or corrupt input is fatal
//  4. HTTP server: Chi router under a suture supervisor tree
//
// # Configuration
//
// Environment variables override the config file, which overrides
// defaults. The only required setting is the dataset location:
//
//	export DATASET_PATH=data/tv_shows.csv
//	export HTTP_PORT=8099
//	export LOG_LEVEL=info
//	./showlens
//
// # Signal handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the server stops
// accepting connections and drains in-flight requests within the
// configured shutdown timeout.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/showlens/showlens/internal/api"
	"github.com/showlens/showlens/internal/config"
	"github.com/showlens/showlens/internal/dataset"
	"github.com/showlens/showlens/internal/logging"
	"github.com/showlens/showlens/internal/metrics"
	"github.com/showlens/showlens/internal/supervisor"
	"github.com/showlens/showlens/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config not yet available; the default logger handles this.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("dataset", cfg.Dataset.Path).
		Str("addr", cfg.Server.Addr()).
		Bool("cache", cfg.Cache.Enabled).
		Msg("Starting Showlens")

	loadStart := time.Now()
	source := dataset.NewSource(cfg.Dataset.Path)
	table, diags, err := source.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dataset")
	}
	metrics.RecordDatasetLoad(table.Len(), len(diags), time.Since(loadStart))

	for _, d := range diags {
		logging.Warn().
			Int("row", d.Row).
			Str("column", d.Column).
			Str("reason", d.Reason).
			Msg("Dataset parse warning")
	}

	handler := api.NewHandler(table, diags, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("HTTP server listening")
	if err := tree.Serve(ctx); err != nil && err != context.Canceled {
		logging.Error().Err(err).Msg("Supervisor tree exited with error")
		os.Exit(1)
	}
	logging.Info().Msg("Showlens stopped")
}
