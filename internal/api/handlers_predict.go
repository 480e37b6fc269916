// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/vintner/internal/logging"
	"github.com/tomtom215/vintner/internal/metrics"
	"github.com/tomtom215/vintner/internal/models"
	"github.com/tomtom215/vintner/internal/validation"
)

// PredictJSON handles POST /predict.
//
// The request body must contain all 11 feature fields under their canonical
// names; unknown fields and non-numeric values are rejected with 422.
// Success responds with {"prediction": <float>}.
func (h *Handler) PredictJSON(w http.ResponseWriter, r *http.Request) {
	var req models.PredictRequest
	if err := decodeStrict(r, &req); err != nil {
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		respondError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"invalid request body: "+err.Error(), nil)
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		apiErr := verr.ToAPIError()
		respondError(w, r, http.StatusUnprocessableEntity, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	features := req.Vector()
	prediction := h.predict(features)

	h.logPrediction(r, features, prediction)

	respondJSON(w, r, http.StatusOK, models.PredictResponse{Prediction: prediction})
}

// predict runs the engine and records inference latency.
func (h *Handler) predict(features models.FeatureVector) float64 {
	start := time.Now()
	prediction := h.engine.Predict(features)
	metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	metrics.PredictionsTotal.WithLabelValues("success").Inc()
	return prediction
}

// logPrediction appends the served prediction to the inference log. A failed
// append is logged and counted but never surfaced: the prediction has already
// been computed and the client gets it regardless. The gap it leaves in the
// drift monitor's view of traffic is acceptable; a serving outage is not.
func (h *Handler) logPrediction(r *http.Request, features models.FeatureVector, prediction float64) {
	if err := h.log.Append(features, prediction, time.Now()); err != nil {
		metrics.InferenceLogErrors.Inc()
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to append inference log record")
		return
	}
	metrics.InferenceLogRecords.Inc()
}
