// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the serving and drift-monitoring loop:
// - Prediction latency and throughput
// - Inference log append volume and failures
// - Drift check outcomes, duration, and the drift score gauge
// - API endpoint latency and throughput

var (
	// Drift Metrics

	// DataDriftScore is the share of drifted features from the most recent
	// drift check, in [0,1]. Overwrite-on-set: the gauge always reflects
	// the latest computation; history belongs to the metrics backend.
	DataDriftScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "data_drift_score",
			Help: "Share of drifted features (0 to 1) from the most recent drift check",
		},
	)

	DriftChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drift_checks_total",
			Help: "Total number of drift checks by outcome",
		},
		[]string{"outcome"}, // "completed", "no_data", "error"
	)

	DriftCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "drift_check_duration_seconds",
			Help:    "Duration of drift checks in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	// Prediction Metrics

	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of prediction requests by result",
		},
		[]string{"result"}, // "success", "error"
	)

	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prediction_duration_seconds",
			Help:    "Duration of model inference in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	// Inference Log Metrics

	InferenceLogRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inference_log_records_total",
			Help: "Total number of records appended to the inference log",
		},
	)

	InferenceLogErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inference_log_errors_total",
			Help: "Total number of failed inference log appends (swallowed, not surfaced to callers)",
		},
	)

	// API Endpoint Metrics

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)
