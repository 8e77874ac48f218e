// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/showlens/showlens/internal/analytics"
	"github.com/showlens/showlens/internal/dataset"
	"github.com/showlens/showlens/internal/logging"
	"github.com/showlens/showlens/internal/metrics"
	"github.com/showlens/showlens/internal/models"
)

// The WebSocket channel carries the dashboard's interaction loop in push
// style: the client sends its filter selection whenever a widget changes,
// the server replies with the fully recomputed dashboard payload. One
// message in, one message out; there is no server-initiated traffic
// beyond the initial dataset description.

// wsFilterMessage is one client interaction. A null age_groups field
// means "full domain"; an empty array is a genuine empty selection.
type wsFilterMessage struct {
	AgeGroups *[]string `json:"age_groups"`
	Genres    []string  `json:"genres"`
}

// wsReply is the server-to-client message envelope.
type wsReply struct {
	Type  string           `json:"type"`
	Data  interface{}      `json:"data,omitempty"`
	Error *models.APIError `json:"error,omitempty"`
}

const wsMaxMessageBytes = 16 * 1024

// WebSocket upgrades the connection and serves the interaction loop.
//
// Method: GET
// Path: /api/v1/ws
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	metrics.WSConnectionsActive.Inc()
	defer metrics.WSConnectionsActive.Dec()
	conn.SetReadLimit(wsMaxMessageBytes)

	// Greet with the dataset description so the client can populate its
	// filter widgets without a separate REST round trip.
	welcome := wsReply{Type: "dataset", Data: models.DatasetInfo{
		Rows:        h.table.Len(),
		AgeGroups:   h.table.AgeGroups,
		Genres:      h.table.Genres,
		LoadedAt:    h.table.LoadedAt,
		Diagnostics: len(h.diags),
	}}
	if err := conn.WriteJSON(welcome); err != nil {
		return
	}
	metrics.WSMessagesTotal.WithLabelValues("out").Inc()

	for {
		var msg wsFilterMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug().Err(err).Msg("WebSocket closed unexpectedly")
			}
			return
		}
		metrics.WSMessagesTotal.WithLabelValues("in").Inc()

		reply := h.computeDashboardReply(msg)
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
		metrics.WSMessagesTotal.WithLabelValues("out").Inc()
	}
}

// computeDashboardReply validates one filter message and runs the full
// recomputation pass.
func (h *Handler) computeDashboardReply(msg wsFilterMessage) wsReply {
	sel := analytics.Selection{Genres: msg.Genres}
	if msg.AgeGroups == nil {
		sel.AgeGroups = dataset.AgeGroupLabels()
	} else {
		sel.AgeGroups = *msg.AgeGroups
	}

	if apiErr := validateSelection(sel); apiErr != nil {
		return wsReply{Type: "error", Error: apiErr}
	}

	start := time.Now()
	filtered := analytics.Filter(h.table, sel)
	data := filtered.Dashboard()
	metrics.ObserveView("dashboard_ws", filtered.Len(), time.Since(start))

	return wsReply{Type: "dashboard", Data: data}
}

// checkWebSocketOrigin validates the Origin header against the configured
// CORS origins. Browser clients always send Origin; requests without one
// are rejected since allowing them would bypass CORS entirely.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}
	if h.config == nil {
		return true
	}
	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
