// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/showlens/showlens/internal/dataset"
	"github.com/showlens/showlens/internal/models"
)

// Bin counts fixed by the dashboard layout.
const (
	AgeHistogramBins        = 20
	PopularityHistogramBins = 30
)

// TopGenresLimit caps the top-genres bar chart.
const TopGenresLimit = 10

// CorrelationColumns are the numeric fields of the correlation heatmap,
// in display order.
var CorrelationColumns = []string{"popularity", "vote_average", "vote_count", "user_age"}

// numericValue extracts one correlation column from a row, or (0, false)
// when the cell is null.
func numericValue(sh *dataset.Show, col string) (float64, bool) {
	switch col {
	case "popularity":
		if sh.Popularity != nil {
			return *sh.Popularity, true
		}
	case "vote_average":
		if sh.VoteAverage != nil {
			return *sh.VoteAverage, true
		}
	case "vote_count":
		if sh.VoteCount != nil {
			return *sh.VoteCount, true
		}
	case "user_age":
		if sh.UserAge != nil {
			return float64(*sh.UserAge), true
		}
	}
	return 0, false
}

// AgeHistogram bins user_age into 20 equal-width bins.
func (v *View) AgeHistogram() models.Histogram {
	return v.histogram("user_age", AgeHistogramBins)
}

// PopularityHistogram bins popularity into 30 equal-width bins.
func (v *View) PopularityHistogram() models.Histogram {
	return v.histogram("popularity", PopularityHistogramBins)
}

// histogram computes an equal-width histogram over the non-null values of
// one numeric column. With no values the bins are returned zero-counted
// with zeroed edges; a degenerate single-valued range is widened by half a
// unit on each side so the value lands in a real bin.
func (v *View) histogram(field string, bins int) models.Histogram {
	var values []float64
	for i := 0; i < v.Len(); i++ {
		if x, ok := numericValue(v.Row(i), field); ok {
			values = append(values, x)
		}
	}

	h := models.Histogram{
		Field: field,
		Bins:  make([]models.HistogramBin, bins),
		Total: len(values),
	}
	if len(values) == 0 {
		return h
	}

	lo, hi := values[0], values[0]
	for _, x := range values[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(bins)
	for i := range h.Bins {
		h.Bins[i].Lower = lo + float64(i)*width
		h.Bins[i].Upper = lo + float64(i+1)*width
	}
	h.Bins[bins-1].Upper = hi

	for _, x := range values {
		b := int((x - lo) / width)
		if b >= bins {
			// the maximum falls in the closed final bin
			b = bins - 1
		}
		h.Bins[b].Count++
	}
	return h
}

// VoteScatter returns every (vote_average, vote_count) pair where both
// values are present. Outliers are intentionally kept.
func (v *View) VoteScatter() models.VoteScatter {
	points := make([]models.ScatterPoint, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		sh := v.Row(i)
		if sh.VoteAverage == nil || sh.VoteCount == nil {
			continue
		}
		points = append(points, models.ScatterPoint{
			VoteAverage: *sh.VoteAverage,
			VoteCount:   *sh.VoteCount,
		})
	}
	return models.VoteScatter{Points: points}
}

// Correlation computes the pairwise Pearson correlation matrix over the
// four numeric columns. Each pair uses only rows where both cells are
// non-null. Entries are null when fewer than two complete pairs exist or
// a column has zero variance over the pair's rows; the diagonal is exactly
// 1 for columns with nonzero variance.
func (v *View) Correlation() models.CorrelationMatrix {
	cols := CorrelationColumns
	m := models.CorrelationMatrix{
		Columns: cols,
		Values:  make([][]*float64, len(cols)),
	}
	for i := range m.Values {
		m.Values[i] = make([]*float64, len(cols))
	}

	for i := range cols {
		for j := i; j < len(cols); j++ {
			r := v.pairCorrelation(cols[i], cols[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

// pairCorrelation computes Pearson's r for one column pair over the
// pairwise-complete rows, or nil when undefined.
func (v *View) pairCorrelation(colX, colY string) *float64 {
	var xs, ys []float64
	for i := 0; i < v.Len(); i++ {
		sh := v.Row(i)
		x, okX := numericValue(sh, colX)
		y, okY := numericValue(sh, colY)
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return nil
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		// zero variance in at least one column
		return nil
	}
	return &r
}

// TopGenres explodes genre lists, counts occurrences per genre, and keeps
// the ten most frequent in descending count order. Ties keep the
// first-encountered genre first.
func (v *View) TopGenres() models.TopGenres {
	counts := make(map[string]int)
	var order []string
	for i := 0; i < v.Len(); i++ {
		for _, g := range v.Row(i).GenreNames {
			if _, seen := counts[g]; !seen {
				order = append(order, g)
			}
			counts[g]++
		}
	}

	firstSeen := make(map[string]int, len(order))
	for pos, g := range order {
		firstSeen[g] = pos
	}
	sort.SliceStable(order, func(a, b int) bool {
		ga, gb := order[a], order[b]
		if counts[ga] != counts[gb] {
			return counts[ga] > counts[gb]
		}
		return firstSeen[ga] < firstSeen[gb]
	})

	if len(order) > TopGenresLimit {
		order = order[:TopGenresLimit]
	}
	out := models.TopGenres{Genres: make([]models.GenreCount, 0, len(order))}
	for _, g := range order {
		out.Genres = append(out.Genres, models.GenreCount{Genre: g, Count: counts[g]})
	}
	return out
}

// ShowsPerYear counts rows per non-null first-air year, ascending.
func (v *View) ShowsPerYear() models.ShowsPerYear {
	counts := make(map[int]int)
	for i := 0; i < v.Len(); i++ {
		if y := v.Row(i).Year; y != nil {
			counts[*y]++
		}
	}
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	out := models.ShowsPerYear{Years: make([]models.YearCount, 0, len(years))}
	for _, y := range years {
		out.Years = append(out.Years, models.YearCount{Year: y, Count: counts[y]})
	}
	return out
}

// GenreAgePopularity explodes genre lists and computes mean popularity per
// (genre, age group) cell. Rows are the observed genres sorted
// alphabetically; columns are the observed age groups in ascending age
// order. Cells with no backing rows are null.
func (v *View) GenreAgePopularity() models.GenreAgePivot {
	type cellKey struct {
		genre, ageGroup string
	}
	sums := make(map[cellKey]float64)
	ns := make(map[cellKey]int)
	genreSet := make(map[string]bool)
	ageSet := make(map[string]bool)

	for i := 0; i < v.Len(); i++ {
		sh := v.Row(i)
		if sh.AgeGroup == "" {
			continue
		}
		for _, g := range sh.GenreNames {
			genreSet[g] = true
			ageSet[sh.AgeGroup] = true
			if sh.Popularity != nil {
				k := cellKey{g, sh.AgeGroup}
				sums[k] += *sh.Popularity
				ns[k]++
			}
		}
	}

	genres := make([]string, 0, len(genreSet))
	for g := range genreSet {
		genres = append(genres, g)
	}
	sort.Strings(genres)

	var ageGroups []string
	for _, label := range dataset.AgeGroupLabels() {
		if ageSet[label] {
			ageGroups = append(ageGroups, label)
		}
	}

	pivot := models.GenreAgePivot{
		Genres:    genres,
		AgeGroups: ageGroups,
		Values:    make([][]*float64, len(genres)),
	}
	for gi, g := range genres {
		pivot.Values[gi] = make([]*float64, len(ageGroups))
		for ai, a := range ageGroups {
			k := cellKey{g, a}
			if n := ns[k]; n > 0 {
				mean := sums[k] / float64(n)
				pivot.Values[gi][ai] = &mean
			}
		}
	}
	return pivot
}

// Summary computes the three headline metrics. Means are null on an empty
// view rather than zero.
func (v *View) Summary() models.Summary {
	s := models.Summary{Rows: v.Len()}
	var votes, pops []float64
	for i := 0; i < v.Len(); i++ {
		sh := v.Row(i)
		if sh.VoteAverage != nil {
			votes = append(votes, *sh.VoteAverage)
		}
		if sh.Popularity != nil {
			pops = append(pops, *sh.Popularity)
		}
	}
	if len(votes) > 0 {
		m := stat.Mean(votes, nil)
		s.MeanVoteAverage = &m
	}
	if len(pops) > 0 {
		m := stat.Mean(pops, nil)
		s.MeanPopularity = &m
	}
	return s
}

// Dashboard runs the full recomputation pass: summary plus all seven
// chart views, exactly what one user interaction triggers.
func (v *View) Dashboard() models.Dashboard {
	return models.Dashboard{
		Summary:                v.Summary(),
		AgeDistribution:        v.AgeHistogram(),
		PopularityDistribution: v.PopularityHistogram(),
		VoteScatter:            v.VoteScatter(),
		Correlation:            v.Correlation(),
		TopGenres:              v.TopGenres(),
		ShowsPerYear:           v.ShowsPerYear(),
		GenreAgePopularity:     v.GenreAgePopularity(),
	}
}
