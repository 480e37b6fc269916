// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

// Package drift compares the inference log against the training-time
// reference distribution and produces a drift score.
//
// The statistical machinery is delegated to gonum: each feature gets a
// two-sample Kolmogorov-Smirnov test, and the score is the share of
// features whose statistic exceeds the large-sample critical value at the
// configured significance level. This package's own job is only marshaling
// the two datasets into matching schemas and extracting the scalar.
//
// Drift monitoring is best-effort by contract: every failure is reported to
// the caller for logging and counting, and no failure may ever destabilize
// the serving path. An absent or empty inference log is a skip, not an
// error.
package drift

import (
	"context"
	"errors"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/vintner/internal/inferlog"
	"github.com/tomtom215/vintner/internal/metrics"
	"github.com/tomtom215/vintner/internal/models"
)

// ErrNoData reports that the inference log holds no rows yet. Callers
// surface it as "not ready", never as a failure.
var ErrNoData = errors.New("no inference data recorded yet")

// Config holds drift monitor settings.
type Config struct {
	// ReferencePath is the training reference dataset (CSV with target column).
	ReferencePath string

	// LogPath is the inference log to treat as current traffic.
	LogPath string

	// ReportPath is where WriteReport renders the HTML report.
	ReportPath string

	// Alpha is the per-feature test significance level. Default 0.05.
	Alpha float64
}

// Monitor computes drift scores on demand. Stateless between checks: the
// reference dataset and the log are re-read on every invocation so a
// retrained reference or a grown log is always picked up.
type Monitor struct {
	cfg Config
}

// NewMonitor creates a drift monitor. A zero Alpha gets the 0.05 default.
func NewMonitor(cfg Config) *Monitor {
	if cfg.Alpha == 0 {
		cfg.Alpha = 0.05
	}
	return &Monitor{cfg: cfg}
}

// Check runs one drift computation.
//
// Outcomes:
//   - log missing or empty: DriftOutcomeNoData, nil error, no score published
//   - computed: DriftOutcomeCompleted, score published to the
//     data_drift_score gauge (overwrite-on-set)
//   - anything else: zero result and an error for the caller to log
//
// The context is accepted for call-site symmetry; a check runs to
// completion or fails, there are no cancellation semantics.
func (m *Monitor) Check(_ context.Context) (models.DriftResult, error) {
	started := time.Now()
	defer func() {
		metrics.DriftCheckDuration.Observe(time.Since(started).Seconds())
	}()

	current, err := inferlog.Snapshot(m.cfg.LogPath)
	if err != nil {
		metrics.DriftChecksTotal.WithLabelValues("error").Inc()
		return models.DriftResult{}, err
	}
	if len(current) == 0 {
		metrics.DriftChecksTotal.WithLabelValues("no_data").Inc()
		return models.DriftResult{
			Outcome:    models.DriftOutcomeNoData,
			ComputedAt: time.Now().UTC(),
		}, nil
	}

	reference, err := loadReference(m.cfg.ReferencePath)
	if err != nil {
		metrics.DriftChecksTotal.WithLabelValues("error").Inc()
		return models.DriftResult{}, err
	}

	result := compare(reference, current, m.cfg.Alpha)

	metrics.DataDriftScore.Set(result.Score)
	metrics.DriftChecksTotal.WithLabelValues("completed").Inc()
	return result, nil
}

// compare runs the per-feature two-sample tests and assembles the result.
// Both sides are already schema-aligned: reference columns are keyed by
// canonical feature name and records carry features in canonical order.
func compare(reference *referenceData, current []inferlog.Record, alpha float64) models.DriftResult {
	features := make([]models.FeatureDrift, 0, models.NumFeatures)
	drifted := 0

	cur := make([]float64, len(current))
	for i, name := range models.FeatureNames {
		ref := reference.columns[name]
		for j, rec := range current {
			cur[j] = rec.Features[i]
		}

		statistic, threshold := ksTest(ref, cur, alpha)
		fd := models.FeatureDrift{
			Name:      name,
			Statistic: statistic,
			Threshold: threshold,
			Drifted:   statistic > threshold,
		}
		if fd.Drifted {
			drifted++
		}
		features = append(features, fd)
	}

	return models.DriftResult{
		Outcome:         models.DriftOutcomeCompleted,
		Score:           float64(drifted) / float64(models.NumFeatures),
		DriftedFeatures: drifted,
		TotalFeatures:   models.NumFeatures,
		Features:        features,
		ReferenceRows:   reference.rows,
		CurrentRows:     len(current),
		ComputedAt:      time.Now().UTC(),
	}
}

// ksTest computes the two-sample Kolmogorov-Smirnov statistic (via gonum)
// and the large-sample critical value at significance alpha. Inputs are
// copied and sorted; the caller's slices are untouched.
func ksTest(ref, cur []float64, alpha float64) (statistic, threshold float64) {
	x := make([]float64, len(ref))
	copy(x, ref)
	sort.Float64s(x)

	y := make([]float64, len(cur))
	copy(y, cur)
	sort.Float64s(y)

	statistic = stat.KolmogorovSmirnov(x, nil, y, nil)
	threshold = ksCriticalValue(len(x), len(y), alpha)
	return statistic, threshold
}
