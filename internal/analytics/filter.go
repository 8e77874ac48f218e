// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

// Package analytics implements the filtering-and-aggregation pipeline:
// one shared filtered view over the immutable dataset, and the seven
// independent chart aggregations computed from it.
//
// Every aggregation recomputes in full from the filtered view on each
// call. The table is bounded (tens of thousands of rows) and views are
// only computed on user interaction, so there is no incremental state to
// keep consistent.
package analytics

import (
	"github.com/showlens/showlens/internal/dataset"
)

// Selection is the user's current filter choice: the selected age-group
// labels and the selected genres.
//
// An empty Genres slice means "no genre filter" and lets every row pass.
// This is deliberate: omitting a selection is permissive, while selecting
// a set restricts to it. AgeGroups carries no such convention; callers
// that want "everything" pass the full domain.
type Selection struct {
	AgeGroups []string `json:"age_groups"`
	Genres    []string `json:"genres"`
}

// View is a filtered, read-only window onto a Table. It stores row
// indices into the shared table rather than copying rows, so deriving a
// view never mutates or duplicates the dataset.
type View struct {
	table *dataset.Table
	idx   []int
}

// Filter derives the view of t matching sel.
//
// A row is kept iff its age group is one of sel.AgeGroups; a null age
// group never matches. When sel.Genres is non-empty the row must also
// share at least one genre with the selection; rows with no decoded genre
// list are treated as non-matching.
func Filter(t *dataset.Table, sel Selection) *View {
	ageSet := make(map[string]bool, len(sel.AgeGroups))
	for _, a := range sel.AgeGroups {
		ageSet[a] = true
	}
	genreSet := make(map[string]bool, len(sel.Genres))
	for _, g := range sel.Genres {
		genreSet[g] = true
	}

	idx := make([]int, 0, t.Len())
	for i := range t.Shows {
		sh := &t.Shows[i]
		if sh.AgeGroup == "" || !ageSet[sh.AgeGroup] {
			continue
		}
		if len(genreSet) > 0 && !intersects(sh.GenreNames, genreSet) {
			continue
		}
		idx = append(idx, i)
	}
	return &View{table: t, idx: idx}
}

// FullView returns the unfiltered view of t: every age group selected and
// no genre restriction.
func FullView(t *dataset.Table) *View {
	return Filter(t, Selection{AgeGroups: dataset.AgeGroupLabels()})
}

func intersects(genres []string, set map[string]bool) bool {
	for _, g := range genres {
		if set[g] {
			return true
		}
	}
	return false
}

// Len returns the number of rows in the view.
func (v *View) Len() int {
	return len(v.idx)
}

// Row returns the i-th row of the view. The returned pointer references
// the shared immutable table and must not be written through.
func (v *View) Row(i int) *dataset.Show {
	return &v.table.Shows[v.idx[i]]
}

// Refilter applies sel to the rows already in v, returning a new view.
// Filtering is idempotent: refiltering with the same selection returns an
// identical row set.
func (v *View) Refilter(sel Selection) *View {
	ageSet := make(map[string]bool, len(sel.AgeGroups))
	for _, a := range sel.AgeGroups {
		ageSet[a] = true
	}
	genreSet := make(map[string]bool, len(sel.Genres))
	for _, g := range sel.Genres {
		genreSet[g] = true
	}

	idx := make([]int, 0, len(v.idx))
	for _, i := range v.idx {
		sh := &v.table.Shows[i]
		if sh.AgeGroup == "" || !ageSet[sh.AgeGroup] {
			continue
		}
		if len(genreSet) > 0 && !intersects(sh.GenreNames, genreSet) {
			continue
		}
		idx = append(idx, i)
	}
	return &View{table: v.table, idx: idx}
}

// Indices returns a copy of the view's row indices into the table.
func (v *View) Indices() []int {
	out := make([]int, len(v.idx))
	copy(out, v.idx)
	return out
}
