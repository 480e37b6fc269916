// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

// Package metrics defines the Prometheus collectors exported at /metrics.
//
// All collectors are registered at package init via promauto. The central
// one is DataDriftScore, the gauge consumed by external dashboards and
// alerting; when no Prometheus scraper is configured the gauge is still set
// but goes nowhere, which deliberately makes an absent sink a no-op rather
// than an error.
package metrics
