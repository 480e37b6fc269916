// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

// Package api provides the HTTP layer: request validation, the prediction
// endpoints, the drift trigger, and report retrieval.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, dependency interfaces
//   - handlers_predict.go: JSON prediction endpoint
//   - handlers_web.go: index page and form-based prediction
//   - handlers_drift.go: drift trigger and report endpoints
//   - handlers_health.go: health endpoint
//   - helpers.go: response helpers
package api

import (
	"context"
	"time"

	"github.com/tomtom215/vintner/internal/inferlog"
	"github.com/tomtom215/vintner/internal/models"
)

// Predictor is the inference engine surface the handlers need.
// Satisfied by *inference.Engine.
type Predictor interface {
	Predict(models.FeatureVector) float64
}

// InferenceLogger records served predictions.
// Satisfied by *inferlog.Logger.
type InferenceLogger interface {
	Append(features models.FeatureVector, prediction float64, ts time.Time) error
	Stats() inferlog.Stats
}

// DriftReporter renders the drift report on demand.
// Satisfied by *drift.Monitor.
type DriftReporter interface {
	WriteReport(ctx context.Context) (string, models.DriftResult, error)
}

// Handler contains dependencies for the API handlers. Immutable after
// construction; all fields are safe for concurrent use.
type Handler struct {
	engine  Predictor
	log     InferenceLogger
	monitor DriftReporter

	// driftTrigger hands drift checks to the background worker. Sends are
	// non-blocking: a trigger arriving while one is already queued is
	// coalesced, since a single pending check covers both.
	driftTrigger chan<- struct{}

	profileReportPath string
	startTime         time.Time
}

// NewHandler creates the API handler.
//
// driftTrigger is the worker queue owned by the drift service; the handler
// only sends. profileReportPath points at the profiling report artifact
// served by DataProfiling.
func NewHandler(engine Predictor, log InferenceLogger, monitor DriftReporter, driftTrigger chan<- struct{}, profileReportPath string) *Handler {
	return &Handler{
		engine:            engine,
		log:               log,
		monitor:           monitor,
		driftTrigger:      driftTrigger,
		profileReportPath: profileReportPath,
		startTime:         time.Now(),
	}
}
