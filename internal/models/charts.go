// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

package models

import "time"

// The chart payloads below are the JSON shapes the dashboard client
// renders. Every payload is recomputed in full from the filtered view on
// each request; nullable aggregate values (means, correlations, pivot
// cells) use pointers so that "undefined" serializes as JSON null rather
// than a misleading zero.

// HistogramBin is one equal-width bin. Lower/Upper are the bin edges;
// the final bin is closed on both sides.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram is an equal-width binned distribution of one numeric field.
// An empty filtered view yields all-zero counts with zeroed edges.
type Histogram struct {
	Field string         `json:"field"`
	Bins  []HistogramBin `json:"bins"`
	Total int            `json:"total"`
}

// ScatterPoint is one (vote_average, vote_count) pair.
type ScatterPoint struct {
	VoteAverage float64 `json:"vote_average"`
	VoteCount   float64 `json:"vote_count"`
}

// VoteScatter is the vote relationship scatter payload. No outlier
// filtering is applied.
type VoteScatter struct {
	Points []ScatterPoint `json:"points"`
}

// CorrelationMatrix is the pairwise Pearson correlation over the numeric
// columns. Values is indexed [row][col] parallel to Columns, symmetric
// with a unit diagonal; entries are null when a column has zero variance
// or fewer than two pairwise-complete observations.
type CorrelationMatrix struct {
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
}

// GenreCount is one bar of the top-genres chart.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// TopGenres holds at most ten genres ordered by descending count, ties
// broken by first-encountered order in the filtered view.
type TopGenres struct {
	Genres []GenreCount `json:"genres"`
}

// YearCount is one point of the shows-per-year series.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// ShowsPerYear counts rows per non-null year in ascending year order.
type ShowsPerYear struct {
	Years []YearCount `json:"years"`
}

// GenreAgePivot is the genre-by-age-group mean-popularity table. Values is
// indexed [genre][age_group] parallel to Genres and AgeGroups; cells with
// no backing rows are null, not zero.
type GenreAgePivot struct {
	Genres    []string     `json:"genres"`
	AgeGroups []string     `json:"age_groups"`
	Values    [][]*float64 `json:"values"`
}

// Summary holds the three headline metrics shown above the charts. Means
// are null when the filtered view is empty.
type Summary struct {
	Rows            int      `json:"rows"`
	MeanVoteAverage *float64 `json:"mean_vote_average"`
	MeanPopularity  *float64 `json:"mean_popularity"`
}

// Dashboard bundles the summary and all seven chart payloads, mirroring
// one full recomputation pass of the interactive dashboard.
type Dashboard struct {
	Summary                Summary           `json:"summary"`
	AgeDistribution        Histogram         `json:"age_distribution"`
	PopularityDistribution Histogram         `json:"popularity_distribution"`
	VoteScatter            VoteScatter       `json:"vote_scatter"`
	Correlation            CorrelationMatrix `json:"correlation"`
	TopGenres              TopGenres         `json:"top_genres"`
	ShowsPerYear           ShowsPerYear      `json:"shows_per_year"`
	GenreAgePopularity     GenreAgePivot     `json:"genre_age_popularity"`
}

// DatasetInfo describes the loaded table for the filter widgets: total
// rows, the age-group and genre domains, and when the file was read.
type DatasetInfo struct {
	Rows        int       `json:"rows"`
	AgeGroups   []string  `json:"age_groups"`
	Genres      []string  `json:"genres"`
	LoadedAt    time.Time `json:"loaded_at"`
	Diagnostics int       `json:"diagnostics"`
}
