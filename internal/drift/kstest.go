// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package drift

import (
	"math"
)

// ksCriticalValue returns the asymptotic two-sample Kolmogorov-Smirnov
// rejection threshold at significance alpha for sample sizes n and m:
//
//	c(alpha) * sqrt((n+m)/(n*m)),  c(alpha) = sqrt(-ln(alpha/2)/2)
//
// The statistic exceeding this value rejects the equal-distribution
// hypothesis. For alpha = 0.05, c is approximately 1.358.
func ksCriticalValue(n, m int, alpha float64) float64 {
	c := math.Sqrt(-math.Log(alpha/2) / 2)
	return c * math.Sqrt(float64(n+m)/float64(n*m))
}
