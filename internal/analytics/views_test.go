// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

package analytics

import (
	"math"
	"reflect"
	"testing"

	"github.com/showlens/showlens/internal/dataset"
)

func numericShow(ageGroup string, age int, pop, voteAvg, voteCount float64) dataset.Show {
	return dataset.Show{
		GenreNames:  []string{"Drama"},
		AgeGroup:    ageGroup,
		UserAge:     ip(age),
		Popularity:  fp(pop),
		VoteAverage: fp(voteAvg),
		VoteCount:   fp(voteCount),
	}
}

func TestAgeHistogram(t *testing.T) {
	// Ages 13..52: range 39, 20 bins of width 1.95.
	shows := make([]dataset.Show, 0, 40)
	for age := 13; age <= 52; age++ {
		shows = append(shows, numericShow(dataset.AgeGroupFor(age), age, 10, 7, 100))
	}
	v := FullView(testTable(shows...))

	h := v.AgeHistogram()
	if h.Field != "user_age" {
		t.Errorf("Field = %q, want user_age", h.Field)
	}
	if len(h.Bins) != AgeHistogramBins {
		t.Fatalf("bins = %d, want %d", len(h.Bins), AgeHistogramBins)
	}
	if h.Total != 40 {
		t.Errorf("Total = %d, want 40", h.Total)
	}

	sum := 0
	for _, b := range h.Bins {
		sum += b.Count
	}
	if sum != h.Total {
		t.Errorf("bin counts sum to %d, want %d", sum, h.Total)
	}
	if h.Bins[0].Lower != 13 {
		t.Errorf("first bin lower = %v, want 13", h.Bins[0].Lower)
	}
	if h.Bins[len(h.Bins)-1].Upper != 52 {
		t.Errorf("last bin upper = %v, want 52", h.Bins[len(h.Bins)-1].Upper)
	}
}

func TestHistogramMaxLandsInFinalBin(t *testing.T) {
	v := FullView(testTable(
		numericShow("Adult", 25, 0, 7, 100),
		numericShow("Adult", 26, 100, 7, 100),
	))
	h := v.PopularityHistogram()
	if got := h.Bins[len(h.Bins)-1].Count; got != 1 {
		t.Errorf("final bin count = %d, want 1 (maximum is included)", got)
	}
}

func TestHistogramDegenerateRange(t *testing.T) {
	// All values identical: the edges widen so the count still lands.
	v := FullView(testTable(
		numericShow("Adult", 30, 42, 7, 100),
		numericShow("Adult", 31, 42, 7, 100),
	))
	h := v.PopularityHistogram()
	if h.Total != 2 {
		t.Fatalf("Total = %d, want 2", h.Total)
	}
	if h.Bins[0].Lower != 41.5 || h.Bins[len(h.Bins)-1].Upper != 42.5 {
		t.Errorf("widened edges = [%v, %v], want [41.5, 42.5]",
			h.Bins[0].Lower, h.Bins[len(h.Bins)-1].Upper)
	}
	sum := 0
	for _, b := range h.Bins {
		sum += b.Count
	}
	if sum != 2 {
		t.Errorf("bin counts sum to %d, want 2", sum)
	}
}

func TestHistogramEmptyView(t *testing.T) {
	v := FullView(testTable())
	h := v.AgeHistogram()
	if h.Total != 0 {
		t.Errorf("Total = %d, want 0", h.Total)
	}
	if len(h.Bins) != AgeHistogramBins {
		t.Fatalf("empty view still gets %d bins, got %d", AgeHistogramBins, len(h.Bins))
	}
	for i, b := range h.Bins {
		if b.Count != 0 || b.Lower != 0 || b.Upper != 0 {
			t.Errorf("bin %d = %+v, want zeroed", i, b)
		}
	}
}

func TestVoteScatterSkipsNulls(t *testing.T) {
	full := numericShow("Adult", 30, 10, 8.5, 2000)
	noAvg := numericShow("Adult", 30, 10, 0, 500)
	noAvg.VoteAverage = nil
	noCount := numericShow("Adult", 30, 10, 6.0, 0)
	noCount.VoteCount = nil

	v := FullView(testTable(full, noAvg, noCount))
	sc := v.VoteScatter()
	if len(sc.Points) != 1 {
		t.Fatalf("points = %d, want 1", len(sc.Points))
	}
	if sc.Points[0].VoteAverage != 8.5 || sc.Points[0].VoteCount != 2000 {
		t.Errorf("point = %+v", sc.Points[0])
	}
}

func TestCorrelation(t *testing.T) {
	// popularity rises with vote_count, falls with vote_average.
	v := FullView(testTable(
		numericShow("Adult", 25, 10, 9, 100),
		numericShow("Adult", 30, 20, 8, 200),
		numericShow("Adult", 35, 30, 7, 300),
		numericShow("Adult", 40, 40, 6, 400),
	))
	m := v.Correlation()

	if !reflect.DeepEqual(m.Columns, CorrelationColumns) {
		t.Fatalf("Columns = %v", m.Columns)
	}
	for i := range m.Columns {
		d := m.Values[i][i]
		if d == nil || math.Abs(*d-1) > 1e-12 {
			t.Errorf("diagonal [%d][%d] = %v, want 1", i, i, d)
		}
	}
	// popularity is column 0, vote_count column 2.
	r := m.Values[0][2]
	if r == nil || math.Abs(*r-1) > 1e-12 {
		t.Errorf("corr(popularity, vote_count) = %v, want 1", r)
	}
	r = m.Values[0][1]
	if r == nil || math.Abs(*r+1) > 1e-12 {
		t.Errorf("corr(popularity, vote_average) = %v, want -1", r)
	}
	// Symmetry.
	for i := range m.Values {
		for j := range m.Values[i] {
			a, b := m.Values[i][j], m.Values[j][i]
			if (a == nil) != (b == nil) || (a != nil && *a != *b) {
				t.Errorf("matrix not symmetric at [%d][%d]", i, j)
			}
		}
	}
}

func TestCorrelationZeroVariance(t *testing.T) {
	// vote_average constant: every entry involving it is null, including
	// its own diagonal.
	v := FullView(testTable(
		numericShow("Adult", 25, 10, 7, 100),
		numericShow("Adult", 30, 20, 7, 200),
		numericShow("Adult", 35, 30, 7, 300),
	))
	m := v.Correlation()
	for j := range m.Columns {
		if m.Values[1][j] != nil {
			t.Errorf("constant column entry [1][%d] = %v, want nil", j, *m.Values[1][j])
		}
	}
}

func TestCorrelationEmptyView(t *testing.T) {
	m := FullView(testTable()).Correlation()
	for i := range m.Values {
		for j := range m.Values[i] {
			if m.Values[i][j] != nil {
				t.Errorf("empty view entry [%d][%d] should be nil", i, j)
			}
		}
	}
}

func TestTopGenres(t *testing.T) {
	shows := []dataset.Show{
		testShow("a", "Adult", "Drama", "Crime"),
		testShow("b", "Adult", "Drama", "Comedy"),
		testShow("c", "Adult", "Drama"),
		testShow("d", "Adult", "Comedy"),
	}
	v := FullView(testTable(shows...))

	tg := v.TopGenres()
	want := []string{"Drama", "Comedy", "Crime"}
	got := make([]string, len(tg.Genres))
	for i, g := range tg.Genres {
		got[i] = g.Genre
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("genres = %v, want %v", got, want)
	}
	if tg.Genres[0].Count != 3 {
		t.Errorf("Drama count = %d, want 3", tg.Genres[0].Count)
	}
	// Crime and Comedy would tie at 1 each without row d; with it, Comedy
	// has 2. Tie behavior is covered below.
}

func TestTopGenresTieKeepsFirstSeen(t *testing.T) {
	v := FullView(testTable(
		testShow("a", "Adult", "Mystery"),
		testShow("b", "Adult", "Animation"),
	))
	tg := v.TopGenres()
	if len(tg.Genres) != 2 || tg.Genres[0].Genre != "Mystery" {
		t.Errorf("tied genres should keep first-seen order, got %v", tg.Genres)
	}
}

func TestTopGenresCap(t *testing.T) {
	genres := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	shows := make([]dataset.Show, 0, len(genres))
	for _, g := range genres {
		shows = append(shows, testShow(g, "Adult", g))
	}
	tg := FullView(testTable(shows...)).TopGenres()
	if len(tg.Genres) != TopGenresLimit {
		t.Errorf("genres = %d, want capped at %d", len(tg.Genres), TopGenresLimit)
	}
}

func TestShowsPerYear(t *testing.T) {
	y2010, y2008 := 2010, 2008
	a := testShow("a", "Adult", "Drama")
	a.Year = &y2010
	b := testShow("b", "Adult", "Drama")
	b.Year = &y2008
	c := testShow("c", "Adult", "Drama")
	c.Year = &y2010
	d := testShow("d", "Adult", "Drama") // nil year, excluded

	spy := FullView(testTable(a, b, c, d)).ShowsPerYear()
	if len(spy.Years) != 2 {
		t.Fatalf("years = %d, want 2", len(spy.Years))
	}
	if spy.Years[0].Year != 2008 || spy.Years[0].Count != 1 {
		t.Errorf("first = %+v, want 2008/1", spy.Years[0])
	}
	if spy.Years[1].Year != 2010 || spy.Years[1].Count != 2 {
		t.Errorf("second = %+v, want 2010/2", spy.Years[1])
	}
}

func TestGenreAgePopularity(t *testing.T) {
	mk := func(ageGroup string, pop float64, genres ...string) dataset.Show {
		sh := testShow("", ageGroup, genres...)
		sh.Popularity = fp(pop)
		return sh
	}
	v := FullView(testTable(
		mk("Teen", 100, "Drama"),
		mk("Teen", 200, "Drama", "Comedy"),
		mk("Adult", 50, "Comedy"),
	))
	p := v.GenreAgePopularity()

	if !reflect.DeepEqual(p.Genres, []string{"Comedy", "Drama"}) {
		t.Fatalf("Genres = %v (want alphabetical)", p.Genres)
	}
	if !reflect.DeepEqual(p.AgeGroups, []string{"Teen", "Adult"}) {
		t.Fatalf("AgeGroups = %v (want ascending age order)", p.AgeGroups)
	}

	// Values[genre][ageGroup]
	cell := func(gi, ai int) *float64 { return p.Values[gi][ai] }
	if c := cell(1, 0); c == nil || *c != 150 {
		t.Errorf("Drama/Teen = %v, want 150", c)
	}
	if c := cell(0, 0); c == nil || *c != 200 {
		t.Errorf("Comedy/Teen = %v, want 200", c)
	}
	if c := cell(0, 1); c == nil || *c != 50 {
		t.Errorf("Comedy/Adult = %v, want 50", c)
	}
	if c := cell(1, 1); c != nil {
		t.Errorf("Drama/Adult = %v, want nil (no backing rows)", *c)
	}
}

func TestSummary(t *testing.T) {
	v := FullView(testTable(
		numericShow("Adult", 30, 10, 6, 100),
		numericShow("Adult", 40, 30, 8, 200),
	))
	s := v.Summary()
	if s.Rows != 2 {
		t.Errorf("Rows = %d, want 2", s.Rows)
	}
	if s.MeanVoteAverage == nil || *s.MeanVoteAverage != 7 {
		t.Errorf("MeanVoteAverage = %v, want 7", s.MeanVoteAverage)
	}
	if s.MeanPopularity == nil || *s.MeanPopularity != 20 {
		t.Errorf("MeanPopularity = %v, want 20", s.MeanPopularity)
	}
}

func TestSummaryEmptyView(t *testing.T) {
	s := FullView(testTable()).Summary()
	if s.Rows != 0 {
		t.Errorf("Rows = %d, want 0", s.Rows)
	}
	if s.MeanVoteAverage != nil || s.MeanPopularity != nil {
		t.Error("empty view means should be null, not zero")
	}
}

func TestDashboardFilteredScenario(t *testing.T) {
	// A Teen viewer filtering to Drama: every panel reflects only the two
	// matching rows.
	v := Filter(testTable(
		numericShow("Teen", 15, 100, 8, 500),
		numericShow("Teen", 16, 200, 9, 700),
		numericShow("Adult", 30, 999, 5, 100),
	), Selection{AgeGroups: []string{"Teen"}, Genres: []string{"Drama"}})

	d := v.Dashboard()
	if d.Summary.Rows != 2 {
		t.Fatalf("Rows = %d, want 2", d.Summary.Rows)
	}
	if *d.Summary.MeanPopularity != 150 {
		t.Errorf("MeanPopularity = %v, want 150", *d.Summary.MeanPopularity)
	}
	if d.PopularityDistribution.Total != 2 {
		t.Errorf("popularity total = %d, want 2", d.PopularityDistribution.Total)
	}
	if len(d.VoteScatter.Points) != 2 {
		t.Errorf("scatter points = %d, want 2", len(d.VoteScatter.Points))
	}
	if len(d.TopGenres.Genres) != 1 || d.TopGenres.Genres[0].Genre != "Drama" {
		t.Errorf("top genres = %v, want only Drama", d.TopGenres.Genres)
	}
}
