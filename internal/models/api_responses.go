// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

// Package models defines the API response envelope and the chart payload
// types shared by the analytics pipeline and the HTTP layer.
package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by every HTTP
// endpoint.
//
// Status is "success" or "error". Data carries the payload for success
// responses; Error is populated only for error responses. Metadata is
// always present.
//
//	{
//	  "status": "success",
//	  "data": {...},
//	  "metadata": {"timestamp": "2026-08-29T12:00:00Z", "query_time_ms": 3}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields: server timestamp,
// view computation time in milliseconds (0 when served from cache), and
// whether the response came from the chart cache.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError holds structured error details.
//
// Codes used by Showlens:
//   - VALIDATION_ERROR: invalid filter parameters or request body
//   - METHOD_NOT_ALLOWED: wrong HTTP method
//   - NOT_FOUND: unknown route
//   - INTERNAL_ERROR: unexpected failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
