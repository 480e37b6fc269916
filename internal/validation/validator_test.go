// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/vintner/internal/models"
)

func f64(v float64) *float64 { return &v }

// fullRequest returns a PredictRequest with every field set.
func fullRequest() models.PredictRequest {
	return models.PredictRequest{
		FixedAcidity:       f64(7.4),
		VolatileAcidity:    f64(0.7),
		CitricAcid:         f64(0),
		ResidualSugar:      f64(1.9),
		Chlorides:          f64(0.076),
		FreeSulfurDioxide:  f64(11),
		TotalSulfurDioxide: f64(34),
		Density:            f64(0.9978),
		PH:                 f64(3.51),
		Sulphates:          f64(0.56),
		Alcohol:            f64(9.4),
	}
}

func TestValidateStructComplete(t *testing.T) {
	req := fullRequest()
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct() error = %v, want nil", err)
	}
}

func TestValidateStructZeroValueIsPresent(t *testing.T) {
	// citric acid of 0.0 is a legitimate measurement, not a missing field.
	req := fullRequest()
	req.CitricAcid = f64(0)
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct() with zero citric acid error = %v, want nil", err)
	}
}

func TestValidateStructMissingField(t *testing.T) {
	req := fullRequest()
	req.FixedAcidity = nil

	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("ValidateStruct() expected error, got nil")
	}

	errs := verr.Errors()
	if len(errs) != 1 {
		t.Fatalf("Errors() returned %d errors, want 1", len(errs))
	}
	// The wire name, spaces included, not the Go field name.
	if got := errs[0].Field(); got != "fixed acidity" {
		t.Errorf("Field() = %q, want %q", got, "fixed acidity")
	}
	if got := errs[0].Error(); got != "fixed acidity is required" {
		t.Errorf("Error() = %q, want %q", got, "fixed acidity is required")
	}
}

func TestValidateStructMultipleMissing(t *testing.T) {
	req := fullRequest()
	req.PH = nil
	req.Alcohol = nil

	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("ValidateStruct() expected error, got nil")
	}
	if len(verr.Errors()) != 2 {
		t.Fatalf("Errors() returned %d errors, want 2", len(verr.Errors()))
	}

	msg := verr.Error()
	if !strings.Contains(msg, "pH is required") || !strings.Contains(msg, "alcohol is required") {
		t.Errorf("Error() = %q, want both missing fields mentioned", msg)
	}
}

func TestToAPIError(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		req := fullRequest()
		req.Density = nil

		apiErr := ValidateStruct(&req).ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
		}
		if apiErr.Message != "density is required" {
			t.Errorf("Message = %q, want %q", apiErr.Message, "density is required")
		}
		if apiErr.Details["field"] != "density" {
			t.Errorf("Details[field] = %v, want density", apiErr.Details["field"])
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		req := fullRequest()
		req.Density = nil
		req.Chlorides = nil

		apiErr := ValidateStruct(&req).ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
		}
		if _, ok := apiErr.Details["fields"]; !ok {
			t.Error("Details missing per-field breakdown")
		}
	})
}
