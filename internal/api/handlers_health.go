// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package api

import (
	"net/http"
	"time"
)

// healthPayload is the body of the health endpoint.
type healthPayload struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	LogAppends    int64   `json:"inference_log_appends"`
	LogErrors     int64   `json:"inference_log_errors"`
	LastInference string  `json:"last_inference,omitempty"`
}

// Health handles GET /api/v1/health. The service is healthy whenever it can
// answer: the model was loaded at startup and a load failure is fatal, so
// reaching this handler implies a serveable model.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stats := h.log.Stats()

	payload := healthPayload{
		Status:        "ok",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		LogAppends:    stats.TotalAppends,
		LogErrors:     stats.TotalErrors,
	}
	if !stats.LastAppend.IsZero() {
		payload.LastInference = stats.LastAppend.UTC().Format(time.RFC3339)
	}

	respondEnvelope(w, r, http.StatusOK, payload)
}
