// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/showlens/showlens/internal/config"
	"github.com/showlens/showlens/internal/middleware"
)

// Router assembles the Chi route tree for the dashboard API.
type Router struct {
	handler *Handler
	config  *config.Config
}

// NewRouter creates a router around the given handler.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{handler: handler, config: cfg}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.config.Security.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health endpoints: permissive rate limit for monitoring probes.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, time.Minute))
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Data and chart endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		if !router.config.Security.RateLimitDisabled {
			r.Use(httprate.LimitByIP(
				router.config.Security.RateLimitReqs,
				router.config.Security.RateLimitWindow,
			))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Get("/dataset", router.handler.Dataset)
		r.Get("/dataset/diagnostics", router.handler.DatasetDiagnostics)
		r.Get("/summary", router.handler.Summary)
		r.Get("/dashboard", router.handler.Dashboard)
		r.Get("/ws", router.handler.WebSocket)

		r.Route("/charts", func(r chi.Router) {
			r.Get("/age-distribution", router.handler.ChartAgeDistribution)
			r.Get("/popularity-distribution", router.handler.ChartPopularityDistribution)
			r.Get("/vote-scatter", router.handler.ChartVoteScatter)
			r.Get("/correlation", router.handler.ChartCorrelation)
			r.Get("/top-genres", router.handler.ChartTopGenres)
			r.Get("/shows-per-year", router.handler.ChartShowsPerYear)
			r.Get("/genre-age-popularity", router.handler.ChartGenreAgePopularity)
		})
	})

	// Prometheus scrape endpoint, outside the API rate limit.
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	return r
}
