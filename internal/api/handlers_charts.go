// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

package api

import (
	"net/http"
	"time"

	"github.com/showlens/showlens/internal/analytics"
	"github.com/showlens/showlens/internal/cache"
	"github.com/showlens/showlens/internal/logging"
	"github.com/showlens/showlens/internal/metrics"
)

// executeChart is the shared path of every chart endpoint: parse the
// selection, consult the response cache, otherwise filter the table and
// recompute the view in full.
func (h *Handler) executeChart(w http.ResponseWriter, r *http.Request, view string, compute func(*analytics.View) interface{}) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	sel, apiErr := h.parseSelection(r)
	if apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	var key string
	if h.cache != nil {
		key = cache.GenerateKey(view, map[string]interface{}{
			"age_groups": sel.AgeGroups,
			"genres":     sel.Genres,
		})
		if data, ok := h.cache.Get(key); ok {
			metrics.CacheHits.Inc()
			respondSuccess(w, data, 0, true)
			return
		}
		metrics.CacheMisses.Inc()
	}

	start := time.Now()
	filtered := analytics.Filter(h.table, sel)
	data := compute(filtered)
	elapsed := time.Since(start)
	metrics.ObserveView(view, filtered.Len(), elapsed)

	logging.Debug().
		Str("view", view).
		Int("rows", filtered.Len()).
		Dur("elapsed", elapsed).
		Msg("View recomputed")

	if h.cache != nil {
		h.cache.Set(key, data)
	}
	respondSuccess(w, data, elapsed, false)
}

// Summary returns the headline metrics for the current selection.
//
// Method: GET
// Path: /api/v1/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	h.executeChart(w, r, "summary", func(v *analytics.View) interface{} {
		return v.Summary()
	})
}

// ChartAgeDistribution returns the 20-bin viewer-age histogram.
//
// Method: GET
// Path: /api/v1/charts/age-distribution
func (h *Handler) ChartAgeDistribution(w http.ResponseWriter, r *http.Request) {
	h.executeChart(w, r, "age_distribution", func(v *analytics.View) interface{} {
		return v.AgeHistogram()
	})
}

// ChartPopularityDistribution returns the 30-bin popularity histogram.
//
// Method: GET
// Path: /api/v1/charts/popularity-distribution
func (h *Handler) ChartPopularityDistribution(w http.ResponseWriter, r *http.Request) {
	h.executeChart(w, r, "popularity_distribution", func(v *analytics.View) interface{} {
		return v.PopularityHistogram()
	})
}

// ChartVoteScatter returns the vote-average versus vote-count pairs.
//
// Method: GET
// Path: /api/v1/charts/vote-scatter
func (h *Handler) ChartVoteScatter(w http.ResponseWriter, r *http.Request) {
	h.executeChart(w, r, "vote_scatter", func(v *analytics.View) interface{} {
		return v.VoteScatter()
	})
}

// ChartCorrelation returns the Pearson correlation matrix over the four
// numeric columns.
//
// Method: GET
// Path: /api/v1/charts/correlation
func (h *Handler) ChartCorrelation(w http.ResponseWriter, r *http.Request) {
	h.executeChart(w, r, "correlation", func(v *analytics.View) interface{} {
		return v.Correlation()
	})
}

// ChartTopGenres returns the ten most frequent genres after exploding
// genre lists.
//
// Method: GET
// Path: /api/v1/charts/top-genres
func (h *Handler) ChartTopGenres(w http.ResponseWriter, r *http.Request) {
	h.executeChart(w, r, "top_genres", func(v *analytics.View) interface{} {
		return v.TopGenres()
	})
}

// ChartShowsPerYear returns the per-year row counts.
//
// Method: GET
// Path: /api/v1/charts/shows-per-year
func (h *Handler) ChartShowsPerYear(w http.ResponseWriter, r *http.Request) {
	h.executeChart(w, r, "shows_per_year", func(v *analytics.View) interface{} {
		return v.ShowsPerYear()
	})
}

// ChartGenreAgePopularity returns the genre-by-age-group mean-popularity
// pivot.
//
// Method: GET
// Path: /api/v1/charts/genre-age-popularity
func (h *Handler) ChartGenreAgePopularity(w http.ResponseWriter, r *http.Request) {
	h.executeChart(w, r, "genre_age_popularity", func(v *analytics.View) interface{} {
		return v.GenreAgePopularity()
	})
}

// Dashboard returns the summary plus all seven chart payloads in one
// response, mirroring one full interaction pass.
//
// Method: GET
// Path: /api/v1/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.executeChart(w, r, "dashboard", func(v *analytics.View) interface{} {
		return v.Dashboard()
	})
}
