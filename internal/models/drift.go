// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package models

import "time"

// DriftOutcome classifies the result of a drift check.
type DriftOutcome string

const (
	// DriftOutcomeCompleted means a score was computed and published.
	DriftOutcomeCompleted DriftOutcome = "completed"

	// DriftOutcomeNoData means the inference log does not exist or holds no
	// rows yet. This is a skip, not an error, and no score is fabricated.
	DriftOutcomeNoData DriftOutcome = "no_data"
)

// FeatureDrift is the per-feature result of a two-sample drift test.
type FeatureDrift struct {
	Name      string  `json:"name"`
	Statistic float64 `json:"statistic"`
	Threshold float64 `json:"threshold"`
	Drifted   bool    `json:"drifted"`
}

// DriftResult is the outcome of one drift check.
//
// Score is the share of drifted features, always in [0,1] when Outcome is
// DriftOutcomeCompleted. The result is ephemeral: history is owned by the
// metrics backend, not by this process.
type DriftResult struct {
	Outcome         DriftOutcome   `json:"outcome"`
	Score           float64        `json:"score"`
	DriftedFeatures int            `json:"drifted_features"`
	TotalFeatures   int            `json:"total_features"`
	Features        []FeatureDrift `json:"features,omitempty"`
	ReferenceRows   int            `json:"reference_rows"`
	CurrentRows     int            `json:"current_rows"`
	ComputedAt      time.Time      `json:"computed_at"`
}
