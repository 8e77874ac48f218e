// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

package dataset

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/showlens/showlens/internal/logging"
)

// dateLayouts are the accepted first_air_date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006",
}

// Source memoizes the loaded dataset for the process lifetime. The backing
// file is static, so there is no invalidation path: the first Load wins
// and every later call returns the same table, diagnostics, and error.
type Source struct {
	path string

	once  sync.Once
	table *Table
	diags []Diagnostic
	err   error
}

// NewSource creates a memoizing loader for the CSV at path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load returns the dataset, loading it on first call. A returned error is
// always a *LoadError and is fatal to the caller; per-cell parse failures
// are recovered into the diagnostics slice instead.
func (s *Source) Load() (*Table, []Diagnostic, error) {
	s.once.Do(func() {
		start := time.Now()
		s.table, s.diags, s.err = Load(s.path)
		if s.err != nil {
			return
		}
		logging.Info().
			Str("path", s.path).
			Int("rows", s.table.Len()).
			Int("diagnostics", len(s.diags)).
			Dur("elapsed", time.Since(start)).
			Msg("Dataset loaded")
	})
	return s.table, s.diags, s.err
}

// Load reads and normalizes the dataset CSV in one pass. Prefer Source for
// the process-wide memoized view; Load itself is stateless.
func Load(path string) (*Table, []Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	t, diags, err := parse(f)
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}
	return t, diags, nil
}

// parse reads CSV rows from r into a typed Table. All columns are read as
// raw strings so that every conversion failure is under our control and
// lands in the diagnostics list rather than silently coercing.
func parse(r io.Reader) (*Table, []Diagnostic, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", df.Err)
	}

	names := make(map[string]bool, len(df.Names()))
	for _, n := range df.Names() {
		names[n] = true
	}
	for _, col := range requiredColumns {
		if !names[col] {
			return nil, nil, fmt.Errorf("missing required column %q", col)
		}
	}
	hasAgeGroup := names[ColAgeGroup]
	hasName := names[ColName]

	var diags []Diagnostic
	warn := func(row int, col, val, reason string) {
		diags = append(diags, Diagnostic{Row: row, Column: col, Value: val, Reason: reason})
	}

	n := df.Nrow()
	shows := make([]Show, 0, n)
	genreSet := make(map[string]bool)

	for i := 0; i < n; i++ {
		var sh Show
		if hasName {
			sh.Name = cell(df, ColName, i)
		}

		sh.GenreNames = parseList(df, ColGenreNames, i, warn)
		sh.OriginCountry = parseList(df, ColOriginCountry, i, warn)

		if d, ok := parseDate(df, ColFirstAirDate, i, warn); ok {
			year := d.Year()
			decade := year / 10 * 10
			sh.FirstAirDate = &d
			sh.Year = &year
			sh.Decade = &decade
		}

		sh.UserAge = parseIntCell(df, ColUserAge, i, warn)
		sh.Popularity = parseFloatCell(df, ColPopularity, i, warn)
		sh.VoteAverage = parseFloatCell(df, ColVoteAverage, i, warn)
		sh.VoteCount = parseFloatCell(df, ColVoteCount, i, warn)

		// Age group comes from the source column when present; it is
		// derived from user_age only for inputs that lack the column.
		if hasAgeGroup {
			raw := cell(df, ColAgeGroup, i)
			switch {
			case raw == "":
				// null age group
			case IsAgeGroupLabel(raw):
				sh.AgeGroup = raw
			default:
				warn(i, ColAgeGroup, raw, "unknown age group label")
			}
		} else if sh.UserAge != nil {
			sh.AgeGroup = AgeGroupFor(*sh.UserAge)
		}

		for _, g := range sh.GenreNames {
			genreSet[g] = true
		}
		shows = append(shows, sh)
	}

	return &Table{
		Shows:     shows,
		LoadedAt:  time.Now(),
		AgeGroups: presentAgeGroups(shows),
		Genres:    sortedKeys(genreSet),
	}, diags, nil
}

// cell returns the trimmed raw string of one cell, with the usual CSV
// null spellings collapsed to "".
func cell(df dataframe.DataFrame, col string, row int) string {
	v := strings.TrimSpace(df.Col(col).Elem(row).String())
	switch v {
	case "NaN", "nan", "NA", "<nil>":
		return ""
	}
	return v
}

func parseList(df dataframe.DataFrame, col string, row int, warn func(int, string, string, string)) []string {
	raw := cell(df, col, row)
	vals, err := ParseListLiteral(raw)
	if err != nil {
		warn(row, col, raw, "unparseable list literal")
		return nil
	}
	return vals
}

func parseDate(df dataframe.DataFrame, col string, row int, warn func(int, string, string, string)) (time.Time, bool) {
	raw := cell(df, col, row)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, true
		}
	}
	warn(row, col, raw, "unparseable date")
	return time.Time{}, false
}

func parseIntCell(df dataframe.DataFrame, col string, row int, warn func(int, string, string, string)) *int {
	raw := cell(df, col, row)
	if raw == "" {
		return nil
	}
	// Ages exported through a float pipeline arrive as "34.0".
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		warn(row, col, raw, "not an integer")
		return nil
	}
	v := int(f)
	return &v
}

func parseFloatCell(df dataframe.DataFrame, col string, row int, warn func(int, string, string, string)) *float64 {
	raw := cell(df, col, row)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		warn(row, col, raw, "not a number")
		return nil
	}
	return &f
}

// presentAgeGroups returns the canonical bucket labels that occur at least
// once, preserving ascending age order.
func presentAgeGroups(shows []Show) []string {
	seen := make(map[string]bool)
	for _, sh := range shows {
		if sh.AgeGroup != "" {
			seen[sh.AgeGroup] = true
		}
	}
	var out []string
	for _, label := range AgeGroupLabels() {
		if seen[label] {
			out = append(out, label)
		}
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
