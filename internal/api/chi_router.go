// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/vintner/internal/config"
	"github.com/tomtom215/vintner/internal/middleware"
)

// Router assembles the HTTP surface: middleware stack plus routes.
type Router struct {
	handler *Handler
	chiMW   *ChiMiddleware
}

// NewRouter creates a router for the given handler and API configuration.
func NewRouter(handler *Handler, apiCfg config.APIConfig) *Router {
	return &Router{
		handler: handler,
		chiMW: NewChiMiddleware(&ChiMiddlewareConfig{
			CORSAllowedOrigins: apiCfg.CORSOrigins,
			CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
			CORSAllowedHeaders: []string{"Content-Type"},
			CORSMaxAge:         86400,
			RateLimitRequests:  apiCfg.RateLimitRequests,
			RateLimitWindow:    apiCfg.RateLimitWindow,
			RateLimitDisabled:  apiCfg.RateLimitDisabled,
		}),
	}
}

// SetupChi builds the chi mux with the full middleware stack and all routes.
//
// Route map:
//
//	GET  /                -> prediction form
//	POST /predict         -> JSON prediction
//	POST /predict_web     -> form prediction, HTML result
//	GET  /check_drift     -> queue a background drift check
//	GET  /drift_report    -> compute and serve the drift report
//	GET  /data_profiling  -> serve the reference profiling report
//	GET  /metrics         -> Prometheus exposition
//	GET  /api/v1/health   -> health and log counters
func (rt *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.chiMW.CORS())
	r.Use(middleware.PrometheusMetrics)

	r.Group(func(r chi.Router) {
		r.Use(rt.chiMW.RateLimitPredict())
		r.Get("/", rt.handler.Index)
		r.Post("/predict", rt.handler.PredictJSON)
		r.Post("/predict_web", rt.handler.PredictWeb)
	})

	r.Group(func(r chi.Router) {
		r.Use(rt.chiMW.RateLimitReports())
		r.Get("/check_drift", rt.handler.CheckDrift)
		r.Get("/drift_report", rt.handler.DriftReport)
		r.Get("/data_profiling", rt.handler.DataProfiling)
	})

	r.Group(func(r chi.Router) {
		r.Use(rt.chiMW.RateLimitHealth())
		r.Get("/api/v1/health", rt.handler.Health)
		r.Handle("/metrics", promhttp.Handler())
	})

	return r
}
