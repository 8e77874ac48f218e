// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

package dataset

// Viewer age buckets: half-open intervals (12,17] (17,24] (24,34] (34,44]
// (44,54] (54,70]. Ages outside [13,70] map to the null age group.
var ageGroupBins = []struct {
	Upper int
	Label string
}{
	{17, "Teen"},
	{24, "Young Adult"},
	{34, "Adult"},
	{44, "Mid Adult"},
	{54, "Older Adult"},
	{70, "Senior"},
}

// ageGroupMin is the exclusive lower edge of the first bucket.
const ageGroupMin = 12

// AgeGroupLabels returns the six bucket labels in ascending age order.
func AgeGroupLabels() []string {
	labels := make([]string, len(ageGroupBins))
	for i, b := range ageGroupBins {
		labels[i] = b.Label
	}
	return labels
}

// AgeGroupFor maps a viewer age to its bucket label, or "" when the age
// falls outside every bucket.
func AgeGroupFor(age int) string {
	if age <= ageGroupMin {
		return ""
	}
	for _, b := range ageGroupBins {
		if age <= b.Upper {
			return b.Label
		}
	}
	return ""
}

// IsAgeGroupLabel reports whether s is one of the six bucket labels.
func IsAgeGroupLabel(s string) bool {
	for _, b := range ageGroupBins {
		if b.Label == s {
			return true
		}
	}
	return false
}
