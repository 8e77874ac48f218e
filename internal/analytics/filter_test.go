// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/showlens/showlens/internal/dataset"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

// testShow builds a row with the given demographics; numeric fields get
// fixed non-null values unless overridden by the caller.
func testShow(name, ageGroup string, genres ...string) dataset.Show {
	return dataset.Show{
		Name:        name,
		GenreNames:  genres,
		AgeGroup:    ageGroup,
		UserAge:     ip(30),
		Popularity:  fp(50),
		VoteAverage: fp(7),
		VoteCount:   fp(1000),
	}
}

func testTable(shows ...dataset.Show) *dataset.Table {
	return &dataset.Table{Shows: shows, LoadedAt: time.Now()}
}

func viewNames(v *View) []string {
	names := make([]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		names = append(names, v.Row(i).Name)
	}
	return names
}

func TestFilterByAgeGroup(t *testing.T) {
	tbl := testTable(
		testShow("a", "Teen", "Drama"),
		testShow("b", "Adult", "Comedy"),
		testShow("c", "Senior", "Drama"),
		testShow("d", "", "Drama"), // null age group
	)

	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		{
			name: "single group",
			sel:  Selection{AgeGroups: []string{"Teen"}},
			want: []string{"a"},
		},
		{
			name: "two groups",
			sel:  Selection{AgeGroups: []string{"Teen", "Senior"}},
			want: []string{"a", "c"},
		},
		{
			name: "empty selection matches nothing",
			sel:  Selection{},
			want: []string{},
		},
		{
			name: "null age group never matches",
			sel:  Selection{AgeGroups: dataset.AgeGroupLabels()},
			want: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := viewNames(Filter(tbl, tt.sel))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%+v) rows = %v, want %v", tt.sel, got, tt.want)
			}
		})
	}
}

func TestFilterByGenre(t *testing.T) {
	tbl := testTable(
		testShow("drama", "Adult", "Drama"),
		testShow("dramedy", "Adult", "Drama", "Comedy"),
		testShow("comedy", "Adult", "Comedy"),
		testShow("nogenre", "Adult"),
	)
	allAges := dataset.AgeGroupLabels()

	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		{
			name: "empty genres is permissive",
			sel:  Selection{AgeGroups: allAges},
			want: []string{"drama", "dramedy", "comedy", "nogenre"},
		},
		{
			name: "single genre intersects",
			sel:  Selection{AgeGroups: allAges, Genres: []string{"Drama"}},
			want: []string{"drama", "dramedy"},
		},
		{
			name: "union semantics across genres",
			sel:  Selection{AgeGroups: allAges, Genres: []string{"Drama", "Comedy"}},
			want: []string{"drama", "dramedy", "comedy"},
		},
		{
			name: "genre filter drops genre-less rows",
			sel:  Selection{AgeGroups: allAges, Genres: []string{"Comedy"}},
			want: []string{"dramedy", "comedy"},
		},
		{
			name: "unknown genre matches nothing",
			sel:  Selection{AgeGroups: allAges, Genres: []string{"Western"}},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := viewNames(Filter(tbl, tt.sel))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%+v) rows = %v, want %v", tt.sel, got, tt.want)
			}
		})
	}
}

func TestFilterIdempotent(t *testing.T) {
	tbl := testTable(
		testShow("a", "Teen", "Drama"),
		testShow("b", "Adult", "Comedy"),
		testShow("c", "Teen", "Comedy"),
	)
	sel := Selection{AgeGroups: []string{"Teen"}, Genres: []string{"Drama", "Comedy"}}

	once := Filter(tbl, sel)
	twice := once.Refilter(sel)
	if !reflect.DeepEqual(once.Indices(), twice.Indices()) {
		t.Errorf("refilter with same selection changed rows: %v -> %v",
			once.Indices(), twice.Indices())
	}
}

func TestFullView(t *testing.T) {
	tbl := testTable(
		testShow("a", "Teen", "Drama"),
		testShow("b", "", "Drama"),
		testShow("c", "Senior"),
	)
	v := FullView(tbl)
	want := []string{"a", "c"}
	if got := viewNames(v); !reflect.DeepEqual(got, want) {
		t.Errorf("FullView rows = %v, want %v", got, want)
	}
}

func TestViewDoesNotCopyRows(t *testing.T) {
	tbl := testTable(testShow("a", "Teen", "Drama"))
	v := Filter(tbl, Selection{AgeGroups: []string{"Teen"}})
	if v.Row(0) != &tbl.Shows[0] {
		t.Error("Row should alias the shared table, not a copy")
	}
}
