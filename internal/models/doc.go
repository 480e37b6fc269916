// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

// Package models defines the shared data types for Vintner: the canonical
// feature schema, the API response envelope, and drift check results.
package models
