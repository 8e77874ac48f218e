// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

package api

import (
	"net/http"
	"time"
)

// healthStatus is the health endpoint payload.
type healthStatus struct {
	Status        string    `json:"status"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	DatasetRows   int       `json:"dataset_rows"`
	DatasetLoaded time.Time `json:"dataset_loaded"`
}

// Health reports overall server health.
//
// Method: GET
// Path: /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, healthStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		DatasetRows:   h.table.Len(),
		DatasetLoaded: h.table.LoadedAt,
	}, 0, false)
}

// HealthLive is the liveness probe: the process is up.
//
// Method: GET
// Path: /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]string{"status": "alive"}, 0, false)
}

// HealthReady is the readiness probe. Showlens is ready as soon as the
// dataset load completed, which is a precondition of constructing the
// handler, so this always reports ready.
//
// Method: GET
// Path: /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]string{"status": "ready"}, 0, false)
}
