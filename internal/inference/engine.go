// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

// Package inference holds the loaded model and preprocessor in memory and
// exposes a pure predict transform over them.
//
// The engine is constructed once at startup and shared read-only across all
// concurrent requests; it takes no locks. It has no side effects: appending
// to the inference log is a separate step owned by the caller, so compute
// and audit stay independently testable.
package inference

import (
	"errors"
	"fmt"

	"github.com/tomtom215/vintner/internal/artifact"
	"github.com/tomtom215/vintner/internal/models"
)

// ErrSchemaMismatch is returned when a predict input diverges from the
// trained feature schema. Request-scoped: the process stays healthy.
var ErrSchemaMismatch = errors.New("input schema does not match trained schema")

// Engine applies the persisted preprocessor and model to feature vectors.
type Engine struct {
	model *artifact.Model
	pre   *artifact.Preprocessor
}

// NewEngine loads both artifacts and cross-checks their shapes. Any failure
// wraps artifact.ErrArtifactLoad and is fatal to service startup: serving
// without valid artifacts would silently return garbage.
func NewEngine(modelPath, preprocessorPath string) (*Engine, error) {
	model, err := artifact.LoadModel(modelPath)
	if err != nil {
		return nil, err
	}
	pre, err := artifact.LoadPreprocessor(preprocessorPath)
	if err != nil {
		return nil, err
	}
	if model.NumFeatures() != pre.NumFeatures() {
		return nil, fmt.Errorf("%w: model expects %d features, preprocessor %d",
			artifact.ErrArtifactLoad, model.NumFeatures(), pre.NumFeatures())
	}
	return &Engine{model: model, pre: pre}, nil
}

// Predict transforms a raw feature vector with the fitted preprocessor and
// applies the model. Deterministic: same input and same loaded artifacts
// always produce bit-identical output.
func (e *Engine) Predict(v models.FeatureVector) float64 {
	return e.model.Predict(e.pre.Transform(v.Slice()))
}

// PredictRaw is Predict for callers holding a plain slice. The slice length
// is checked against the trained schema; a mismatch returns
// ErrSchemaMismatch rather than panicking.
func (e *Engine) PredictRaw(x []float64) (float64, error) {
	if len(x) != e.pre.NumFeatures() {
		return 0, fmt.Errorf("%w: got %d features, want %d",
			ErrSchemaMismatch, len(x), e.pre.NumFeatures())
	}
	return e.model.Predict(e.pre.Transform(x)), nil
}
