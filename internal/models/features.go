// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package models

// NumFeatures is the number of wine chemistry measurements in the model schema.
const NumFeatures = 11

// FeatureNames is the canonical feature schema, in training order.
//
// Names include embedded spaces because they must match the column names the
// preprocessor was fitted on exactly. They are also the JSON field names of
// the predict endpoint and the header columns of the inference log and the
// reference dataset. Order is load-bearing: the persisted preprocessor and
// model consume features positionally.
var FeatureNames = [NumFeatures]string{
	"fixed acidity",
	"volatile acidity",
	"citric acid",
	"residual sugar",
	"chlorides",
	"free sulfur dioxide",
	"total sulfur dioxide",
	"density",
	"pH",
	"sulphates",
	"alcohol",
}

// TargetColumn is the label column of the reference dataset. It is present in
// the training data but never part of the serving schema.
const TargetColumn = "quality"

// FeatureVector is one observation in canonical feature order.
type FeatureVector [NumFeatures]float64

// Slice returns the vector as a freshly allocated []float64.
// Callers may mutate the result without affecting the vector.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v[:])
	return out
}

// PredictRequest is the JSON body of POST /predict.
//
// Fields are pointers so that presence can be distinguished from a zero
// value: citric acid of 0.0 is a legitimate measurement, while an absent
// field is a validation error. The JSON names carry the canonical
// space-containing column names.
type PredictRequest struct {
	FixedAcidity       *float64 `json:"fixed acidity" validate:"required"`
	VolatileAcidity    *float64 `json:"volatile acidity" validate:"required"`
	CitricAcid         *float64 `json:"citric acid" validate:"required"`
	ResidualSugar      *float64 `json:"residual sugar" validate:"required"`
	Chlorides          *float64 `json:"chlorides" validate:"required"`
	FreeSulfurDioxide  *float64 `json:"free sulfur dioxide" validate:"required"`
	TotalSulfurDioxide *float64 `json:"total sulfur dioxide" validate:"required"`
	Density            *float64 `json:"density" validate:"required"`
	PH                 *float64 `json:"pH" validate:"required"`
	Sulphates          *float64 `json:"sulphates" validate:"required"`
	Alcohol            *float64 `json:"alcohol" validate:"required"`
}

// Vector converts a validated request into a FeatureVector.
// Must only be called after validation; nil fields panic by design because
// they indicate a missed validation step, not a runtime condition.
func (r *PredictRequest) Vector() FeatureVector {
	return FeatureVector{
		*r.FixedAcidity,
		*r.VolatileAcidity,
		*r.CitricAcid,
		*r.ResidualSugar,
		*r.Chlorides,
		*r.FreeSulfurDioxide,
		*r.TotalSulfurDioxide,
		*r.Density,
		*r.PH,
		*r.Sulphates,
		*r.Alcohol,
	}
}

// PredictResponse is the JSON payload of a successful prediction.
type PredictResponse struct {
	Prediction float64 `json:"prediction"`
}
