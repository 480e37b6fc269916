// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package artifact

import (
	"math"
)

// lambdaEpsilon decides when a Yeo-Johnson lambda is treated as the
// logarithmic limit case, matching the tolerance the training pipeline uses
// when evaluating the fitted transform.
const lambdaEpsilon = 1e-12

// Preprocessor is the fitted feature transform: a per-feature Yeo-Johnson
// power transform followed by standardization, both applied with the exact
// parameters learned at training time. It never refits. Immutable after
// construction.
type Preprocessor struct {
	lambdas []float64
	means   []float64
	scales  []float64
}

func newPreprocessor(lambdas, means, scales []float64) *Preprocessor {
	p := &Preprocessor{
		lambdas: make([]float64, len(lambdas)),
		means:   make([]float64, len(means)),
		scales:  make([]float64, len(scales)),
	}
	copy(p.lambdas, lambdas)
	copy(p.means, means)
	copy(p.scales, scales)
	return p
}

// NumFeatures returns the number of features the preprocessor was fitted on.
func (p *Preprocessor) NumFeatures() int {
	return len(p.lambdas)
}

// Transform applies the fitted transform to one raw observation and returns
// a new slice; the input is not modified. x must have exactly NumFeatures
// elements; Transform panics otherwise, the inference engine checks the
// shape first.
//
// Deterministic: the same input always yields bit-identical output.
func (p *Preprocessor) Transform(x []float64) []float64 {
	if len(x) != len(p.lambdas) {
		panic("artifact: transform input length does not match fitted features")
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (yeoJohnson(v, p.lambdas[i]) - p.means[i]) / p.scales[i]
	}
	return out
}

// yeoJohnson evaluates the Yeo-Johnson transform at a fitted lambda.
// Piecewise closed form; the lambda==0 and lambda==2 branches are the
// logarithmic limits of their neighbors.
func yeoJohnson(x, lambda float64) float64 {
	switch {
	case x >= 0 && math.Abs(lambda) > lambdaEpsilon:
		return (math.Pow(x+1, lambda) - 1) / lambda
	case x >= 0:
		return math.Log1p(x)
	case math.Abs(lambda-2) > lambdaEpsilon:
		return -(math.Pow(-x+1, 2-lambda) - 1) / (2 - lambda)
	default:
		return -math.Log1p(-x)
	}
}
