// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

// Package dataset loads the backing TV-show CSV into an immutable typed
// table.
//
// The source file is a delimited export of TV shows where each row carries
// one simulated viewer-age sample alongside the show's metadata. The loader
// reads the file exactly once per process (see Source), normalizes the
// text-encoded list columns and the air date, derives year/decade and the
// viewer age group, and reports every cell-level parse failure as a
// structured Diagnostic instead of dropping the row.
package dataset

import (
	"fmt"
	"time"
)

// Column names expected in the backing CSV. GenreNames through VoteCount
// are required; an input missing any of them fails with LoadError.
const (
	ColName          = "name"
	ColGenreNames    = "genre_names"
	ColOriginCountry = "origin_country"
	ColFirstAirDate  = "first_air_date"
	ColUserAge       = "user_age"
	ColAgeGroup      = "age_group"
	ColPopularity    = "popularity"
	ColVoteAverage   = "vote_average"
	ColVoteCount     = "vote_count"
)

// requiredColumns lists the columns the loader refuses to run without.
// age_group and name are optional: age_group is derived from user_age when
// absent, name is informational only.
var requiredColumns = []string{
	ColGenreNames,
	ColOriginCountry,
	ColFirstAirDate,
	ColUserAge,
	ColPopularity,
	ColVoteAverage,
	ColVoteCount,
}

// Show is one row of the dataset: a TV show plus a single simulated
// viewer-age sample. The table deliberately models one viewing event per
// row rather than per-show aggregate demographics; downstream analytics
// preserve that shape.
//
// Nullable fields use pointers; a nil pointer is the null marker produced
// by the loader for missing or unparseable source cells. AgeGroup uses the
// empty string as its null marker since its domain is a closed label set.
type Show struct {
	Name          string
	GenreNames    []string
	OriginCountry []string
	FirstAirDate  *time.Time
	Year          *int
	Decade        *int
	UserAge       *int
	AgeGroup      string
	Popularity    *float64
	VoteAverage   *float64
	VoteCount     *float64
}

// Table is the immutable loaded dataset. It is constructed once at process
// start and never mutated; all downstream views reference its rows by
// index and must not modify them.
type Table struct {
	Shows    []Show
	LoadedAt time.Time

	// AgeGroups is the ordered set of age-group labels with at least one
	// non-null occurrence in the data. Genres is the sorted union of all
	// genre labels. Both feed the dashboard's filter widgets.
	AgeGroups []string
	Genres    []string
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Shows)
}

// Diagnostic records one recovered per-cell parse failure. The affected
// row is retained with the cell null-filled.
type Diagnostic struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("row %d column %s: %s (value %q)", d.Row, d.Column, d.Reason, d.Value)
}

// LoadError reports a fatal dataset failure: the backing file is missing,
// unreadable, or not parseable as tabular data. It halts startup and is
// never retried.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
