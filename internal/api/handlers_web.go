// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/vintner/internal/logging"
	"github.com/tomtom215/vintner/internal/metrics"
	"github.com/tomtom215/vintner/internal/models"
)

// formFieldNames maps canonical feature names to the snake_case form field
// names used by the web form, in canonical order.
var formFieldNames = [models.NumFeatures]string{
	"fixed_acidity",
	"volatile_acidity",
	"citric_acid",
	"residual_sugar",
	"chlorides",
	"free_sulfur_dioxide",
	"total_sulfur_dioxide",
	"density",
	"pH",
	"sulphates",
	"alcohol",
}

// Index handles GET / and renders the prediction form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, indexPage{Fields: formFields()}); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render index page")
	}
}

// PredictWeb handles POST /predict_web: the form-encoded counterpart of
// PredictJSON, responding with an HTML result page instead of JSON.
func (h *Handler) PredictWeb(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		respondHTML(w, http.StatusUnprocessableEntity, formErrorPage("malformed form data"))
		return
	}

	features, err := parseFormFeatures(r)
	if err != nil {
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		respondHTML(w, http.StatusUnprocessableEntity, formErrorPage(err.Error()))
		return
	}

	prediction := h.predict(features)
	h.logPrediction(r, features, prediction)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := resultTemplate.Execute(w, resultPage{Prediction: prediction}); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render result page")
	}
}

// parseFormFeatures extracts the 11 feature values from the form. Every
// field must be present and numeric; the error message names the offending
// field by its form name.
func parseFormFeatures(r *http.Request) (models.FeatureVector, error) {
	var features models.FeatureVector
	for i, field := range formFieldNames {
		raw := strings.TrimSpace(r.PostFormValue(field))
		if raw == "" {
			return features, fmt.Errorf("%s is required", field)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return features, fmt.Errorf("%s must be numeric", field)
		}
		features[i] = v
	}
	return features, nil
}

// formFields pairs form field names with their display labels for the index
// template.
func formFields() []formField {
	fields := make([]formField, models.NumFeatures)
	for i := range formFieldNames {
		fields[i] = formField{
			Name:  formFieldNames[i],
			Label: models.FeatureNames[i],
		}
	}
	return fields
}

// formErrorPage renders a minimal HTML error page for form submissions.
func formErrorPage(msg string) string {
	return renderErrorPage("Invalid input", msg)
}

// renderErrorPage renders the shared HTML error page.
func renderErrorPage(title, msg string) string {
	var b strings.Builder
	errorPageTemplate.Execute(&b, errorPage{Title: title, Message: msg})
	return b.String()
}
