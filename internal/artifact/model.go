// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package artifact

import (
	"gonum.org/v1/gonum/mat"
)

// Model is a fitted ElasticNet regressor: prediction is the dot product of
// the coefficient vector with a preprocessed feature vector, plus the
// intercept. Immutable after construction.
type Model struct {
	intercept float64
	coef      *mat.VecDense
}

func newModel(intercept float64, coefficients []float64) *Model {
	c := make([]float64, len(coefficients))
	copy(c, coefficients)
	return &Model{
		intercept: intercept,
		coef:      mat.NewVecDense(len(c), c),
	}
}

// NumFeatures returns the number of input features the model expects.
func (m *Model) NumFeatures() int {
	return m.coef.Len()
}

// Predict computes the regression output for one preprocessed observation.
// x must have exactly NumFeatures elements; Predict panics otherwise, which
// is acceptable because the inference engine checks the shape first.
func (m *Model) Predict(x []float64) float64 {
	v := mat.NewVecDense(len(x), x)
	return m.intercept + mat.Dot(m.coef, v)
}
