// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

// Package api provides the HTTP surface of the dashboard: chart
// endpoints, dataset metadata, health checks, and the WebSocket
// interaction channel.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response envelope and parameter parsing
//   - handlers_health.go: health endpoints
//   - handlers_dataset.go: dataset metadata and diagnostics
//   - handlers_charts.go: summary, the seven chart views, dashboard
//   - websocket.go: push-style dashboard channel
package api

import (
	"time"

	"github.com/showlens/showlens/internal/cache"
	"github.com/showlens/showlens/internal/config"
	"github.com/showlens/showlens/internal/dataset"
)

// Handler carries the dependencies of all API endpoints: the immutable
// loaded table, its load diagnostics, and the chart response cache.
type Handler struct {
	table     *dataset.Table
	diags     []dataset.Diagnostic
	config    *config.Config
	cache     *cache.Cache
	startTime time.Time
}

// NewHandler creates the API handler. The table is the memoized result of
// the one-time dataset load; the handler never reloads or mutates it.
func NewHandler(table *dataset.Table, diags []dataset.Diagnostic, cfg *config.Config) *Handler {
	h := &Handler{
		table:     table,
		diags:     diags,
		config:    cfg,
		startTime: time.Now(),
	}
	if cfg.Cache.Enabled {
		h.cache = cache.New(cfg.Cache.TTL)
	}
	return h
}

// ClearCache drops all cached chart payloads. There is no data path that
// requires it (the dataset is static); it exists for operational use.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
	}
}
