// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/showlens/showlens/internal/analytics"
	"github.com/showlens/showlens/internal/dataset"
	"github.com/showlens/showlens/internal/logging"
	"github.com/showlens/showlens/internal/models"
	"github.com/showlens/showlens/internal/validation"
)

// sanitizeLogValue strips control characters from request-derived strings
// before they reach the log, preventing forged log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends the response envelope with proper headers.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a weak ETag from the payload using FNV-1a.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, data interface{}, queryTime time.Duration, cached bool) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: queryTime.Milliseconds(),
			Cached:      cached,
		},
	})
}

// respondError sends an error envelope.
func respondError(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// parseCommaSeparated splits a comma-separated parameter, trimming blanks.
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// selectionRequest bounds the filter parameters before they reach the
// pipeline.
type selectionRequest struct {
	AgeGroups []string `validate:"max=16,dive,min=1,max=32"`
	Genres    []string `validate:"max=128,dive,min=1,max=64"`
}

// parseSelection extracts the filter selection from query parameters.
//
// An omitted age_groups parameter defaults to the full domain; an omitted
// genres parameter defaults to no genre restriction. A present-but-empty
// parameter is a genuine "select nothing" and yields an empty result, per
// the default-permissive policy's distinction between no selection and
// selecting nothing. Unknown age-group labels are a validation error.
func (h *Handler) parseSelection(r *http.Request) (analytics.Selection, *models.APIError) {
	q := r.URL.Query()

	sel := analytics.Selection{}
	if q.Has("age_groups") {
		sel.AgeGroups = parseCommaSeparated(q.Get("age_groups"))
	} else {
		sel.AgeGroups = dataset.AgeGroupLabels()
	}
	sel.Genres = parseCommaSeparated(q.Get("genres"))

	if apiErr := validateSelection(sel); apiErr != nil {
		return analytics.Selection{}, apiErr
	}
	return sel, nil
}

// validateSelection bounds and checks a selection regardless of whether it
// arrived via query parameters or a WebSocket message.
func validateSelection(sel analytics.Selection) *models.APIError {
	req := selectionRequest{AgeGroups: sel.AgeGroups, Genres: sel.Genres}
	if verr := validation.ValidateStruct(&req); verr != nil {
		code, msg, details := verr.APIError()
		return &models.APIError{Code: code, Message: msg, Details: details}
	}
	for _, a := range sel.AgeGroups {
		if !dataset.IsAgeGroupLabel(a) {
			return &models.APIError{
				Code:    "VALIDATION_ERROR",
				Message: fmt.Sprintf("unknown age group %q", sanitizeLogValue(a)),
				Details: map[string]interface{}{"age_groups": sanitizeLogValue(a)},
			}
		}
	}
	return nil
}
