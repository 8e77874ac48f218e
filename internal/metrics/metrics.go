// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

// Package metrics exposes Prometheus instrumentation for the dashboard
// server: HTTP traffic, per-view computation time, the chart cache, and
// the one-time dataset load.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showlens_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showlens_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showlens_http_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Aggregation view metrics

	ViewComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showlens_view_compute_duration_seconds",
			Help:    "Time spent recomputing one aggregation view",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"view"},
	)

	FilteredRows = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showlens_filtered_rows",
			Help:    "Row count of the filtered view per computation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"view"},
	)

	// Chart cache metrics

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "showlens_chart_cache_hits_total",
			Help: "Total chart cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "showlens_chart_cache_misses_total",
			Help: "Total chart cache misses",
		},
	)

	// Dataset metrics

	DatasetRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showlens_dataset_rows",
			Help: "Number of rows in the loaded dataset",
		},
	)

	DatasetDiagnostics = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showlens_dataset_diagnostics",
			Help: "Number of recovered parse diagnostics from the dataset load",
		},
	)

	DatasetLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showlens_dataset_load_duration_seconds",
			Help: "Wall time of the one-time dataset load",
		},
	)

	// WebSocket metrics

	WSConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showlens_websocket_connections_active",
			Help: "Currently open dashboard WebSocket connections",
		},
	)

	WSMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showlens_websocket_messages_total",
			Help: "WebSocket messages by direction",
		},
		[]string{"direction"},
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	APIRequestsTotal.WithLabelValues(method, path, status).Inc()
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// ObserveView records the computation time and input size of one
// aggregation view pass.
func ObserveView(view string, rows int, duration time.Duration) {
	ViewComputeDuration.WithLabelValues(view).Observe(duration.Seconds())
	FilteredRows.WithLabelValues(view).Observe(float64(rows))
}

// RecordDatasetLoad publishes the one-time load gauges.
func RecordDatasetLoad(rows, diagnostics int, duration time.Duration) {
	DatasetRows.Set(float64(rows))
	DatasetDiagnostics.Set(float64(diagnostics))
	DatasetLoadDuration.Set(duration.Seconds())
}
