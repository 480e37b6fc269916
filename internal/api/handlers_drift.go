// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/tomtom215/vintner/internal/drift"
	"github.com/tomtom215/vintner/internal/logging"
)

// CheckDrift handles GET /check_drift.
//
// It queues a drift check for the background worker and returns immediately;
// the caller never waits on the computation. A trigger arriving while one is
// already queued is dropped, since the pending check will observe the same
// log anyway.
func (h *Handler) CheckDrift(w http.ResponseWriter, r *http.Request) {
	select {
	case h.driftTrigger <- struct{}{}:
		logging.Ctx(r.Context()).Info().Msg("Drift check queued")
	default:
		logging.Ctx(r.Context()).Debug().Msg("Drift check already queued, trigger coalesced")
	}

	respondEnvelope(w, r, http.StatusAccepted, map[string]string{
		"message": "drift check started in background",
	})
}

// DriftReport handles GET /drift_report.
//
// The report is computed fresh on every request so it always reflects the
// inference log at request time, then served as HTML. Before any predictions
// have been logged there is nothing to compare, and the endpoint responds
// 404.
func (h *Handler) DriftReport(w http.ResponseWriter, r *http.Request) {
	path, result, err := h.monitor.WriteReport(r.Context())
	if errors.Is(err, drift.ErrNoData) {
		respondHTML(w, http.StatusNotFound, reportMissingPage("Drift report",
			"No predictions have been logged yet. Serve some traffic, then try again."))
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Drift report generation failed")
		respondHTML(w, http.StatusInternalServerError, reportMissingPage("Drift report",
			"Report generation failed. See server logs."))
		return
	}

	logging.Ctx(r.Context()).Info().
		Float64("score", result.Score).
		Int("drifted_features", result.DriftedFeatures).
		Int("current_rows", result.CurrentRows).
		Msg("Drift report rendered")

	http.ServeFile(w, r, path)
}

// DataProfiling handles GET /data_profiling, serving the profiling report
// generated from the reference dataset. 404 when the report has not been
// generated.
func (h *Handler) DataProfiling(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(h.profileReportPath); err != nil {
		respondHTML(w, http.StatusNotFound, reportMissingPage("Data profiling report",
			"The profiling report has not been generated."))
		return
	}
	http.ServeFile(w, r, h.profileReportPath)
}

// reportMissingPage renders the 404/error page for the report endpoints.
func reportMissingPage(title, msg string) string {
	return renderErrorPage(title, msg)
}
