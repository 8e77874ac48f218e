// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

package api

import (
	"net/http"

	"github.com/showlens/showlens/internal/dataset"
	"github.com/showlens/showlens/internal/models"
)

// Dataset describes the loaded table: row count and the filter domains
// the dashboard's multi-select widgets are built from.
//
// Method: GET
// Path: /api/v1/dataset
func (h *Handler) Dataset(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, models.DatasetInfo{
		Rows:        h.table.Len(),
		AgeGroups:   h.table.AgeGroups,
		Genres:      h.table.Genres,
		LoadedAt:    h.table.LoadedAt,
		Diagnostics: len(h.diags),
	}, 0, false)
}

// DatasetDiagnostics returns the structured per-cell parse diagnostics
// recovered during the one-time load. Affected rows were retained with
// the offending cells null-filled.
//
// Method: GET
// Path: /api/v1/dataset/diagnostics
func (h *Handler) DatasetDiagnostics(w http.ResponseWriter, r *http.Request) {
	diags := h.diags
	if diags == nil {
		diags = []dataset.Diagnostic{}
	}
	respondSuccess(w, diags, 0, false)
}
