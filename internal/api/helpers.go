// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vintner/internal/logging"
	"github.com/tomtom215/vintner/internal/models"
)

// maxRequestBody caps the JSON body of the predict endpoint. Eleven floats
// never come close; anything larger is abuse.
const maxRequestBody = 1 << 16

// respondJSON writes v as the JSON response body. Marshal failures fall back
// to a plain 500 since the response writer may already hold the status.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// respondError writes the structured error envelope:
//
//	{"error": {"code": ..., "message": ..., "details": ...}}
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}) {
	respondJSON(w, r, status, map[string]*models.APIError{
		"error": {Code: code, Message: message, Details: details},
	})
}

// respondEnvelope writes the standard success wrapper used by the
// operational endpoints (health, drift trigger).
func respondEnvelope(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	respondJSON(w, r, status, models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// decodeStrict decodes the request body into v, rejecting unknown fields and
// trailing garbage. Unknown fields are rejected because a misspelled feature
// name would otherwise silently validate as missing-plus-ignored.
func decodeStrict(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON body")
	}
	return nil
}

// respondHTML writes an HTML payload with the given status.
func respondHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, body)
}
