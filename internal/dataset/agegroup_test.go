// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

package dataset

import (
	"reflect"
	"testing"
)

func TestAgeGroupFor(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{12, ""}, // exclusive lower edge
		{13, "Teen"},
		{17, "Teen"},
		{18, "Young Adult"},
		{24, "Young Adult"},
		{25, "Adult"},
		{34, "Adult"},
		{35, "Mid Adult"},
		{44, "Mid Adult"},
		{45, "Older Adult"},
		{54, "Older Adult"},
		{55, "Senior"},
		{70, "Senior"},
		{71, ""},
		{0, ""},
		{-5, ""},
	}

	for _, tt := range tests {
		if got := AgeGroupFor(tt.age); got != tt.want {
			t.Errorf("AgeGroupFor(%d) = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestAgeGroupLabels(t *testing.T) {
	want := []string{"Teen", "Young Adult", "Adult", "Mid Adult", "Older Adult", "Senior"}
	if got := AgeGroupLabels(); !reflect.DeepEqual(got, want) {
		t.Errorf("AgeGroupLabels() = %v, want %v", got, want)
	}
}

func TestIsAgeGroupLabel(t *testing.T) {
	for _, label := range AgeGroupLabels() {
		if !IsAgeGroupLabel(label) {
			t.Errorf("IsAgeGroupLabel(%q) = false, want true", label)
		}
	}
	for _, s := range []string{"", "teen", "Kid", "Adults"} {
		if IsAgeGroupLabel(s) {
			t.Errorf("IsAgeGroupLabel(%q) = true, want false", s)
		}
	}
}
