// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

// Package artifact loads the persisted model and preprocessor parameter
// files produced by the training pipeline and applies them at inference
// time.
//
// Artifacts are versioned JSON parameter files, not opaque binary blobs:
// the training pipeline exports the fitted ElasticNet coefficients and the
// fitted preprocessor parameters (Yeo-Johnson lambdas, standardization
// means and scales). Loading never fits anything; every transform applies
// exactly the parameters learned at training time. Both artifacts are
// immutable after load and safe for unlimited concurrent readers.
package artifact

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vintner/internal/models"
)

// SupportedSchemaVersion is the artifact file format version this build
// understands. Version mismatches fail the load: serving with parameters
// written by an incompatible exporter would silently corrupt predictions.
const SupportedSchemaVersion = 1

// ErrArtifactLoad wraps every failure to load or validate an artifact file.
// It is fatal at startup; the service must not come up without valid
// artifacts.
var ErrArtifactLoad = errors.New("artifact load failed")

// modelFile is the on-disk layout of the model artifact.
type modelFile struct {
	SchemaVersion int       `json:"schema_version"`
	Features      []string  `json:"features"`
	Intercept     float64   `json:"intercept"`
	Coefficients  []float64 `json:"coefficients"`
}

// preprocessorFile is the on-disk layout of the preprocessor artifact.
type preprocessorFile struct {
	SchemaVersion int       `json:"schema_version"`
	Features      []string  `json:"features"`
	Lambdas       []float64 `json:"lambdas"`
	Means         []float64 `json:"means"`
	Scales        []float64 `json:"scales"`
}

// LoadModel reads and validates a model artifact.
func LoadModel(path string) (*Model, error) {
	var f modelFile
	if err := readArtifact(path, &f); err != nil {
		return nil, err
	}
	if err := checkSchema(path, f.SchemaVersion, f.Features); err != nil {
		return nil, err
	}
	if len(f.Coefficients) != len(f.Features) {
		return nil, fmt.Errorf("%w: %s: %d coefficients for %d features",
			ErrArtifactLoad, path, len(f.Coefficients), len(f.Features))
	}
	return newModel(f.Intercept, f.Coefficients), nil
}

// LoadPreprocessor reads and validates a preprocessor artifact.
func LoadPreprocessor(path string) (*Preprocessor, error) {
	var f preprocessorFile
	if err := readArtifact(path, &f); err != nil {
		return nil, err
	}
	if err := checkSchema(path, f.SchemaVersion, f.Features); err != nil {
		return nil, err
	}
	n := len(f.Features)
	if len(f.Lambdas) != n || len(f.Means) != n || len(f.Scales) != n {
		return nil, fmt.Errorf("%w: %s: parameter lengths (%d lambdas, %d means, %d scales) do not match %d features",
			ErrArtifactLoad, path, len(f.Lambdas), len(f.Means), len(f.Scales), n)
	}
	for i, s := range f.Scales {
		if s == 0 {
			return nil, fmt.Errorf("%w: %s: zero scale for feature %q",
				ErrArtifactLoad, path, f.Features[i])
		}
	}
	return newPreprocessor(f.Lambdas, f.Means, f.Scales), nil
}

// readArtifact reads the file and decodes it into v.
func readArtifact(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrArtifactLoad, path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: corrupt artifact: %v", ErrArtifactLoad, path, err)
	}
	return nil
}

// checkSchema verifies the artifact version and that its feature list is
// exactly the canonical training schema, names and order both.
func checkSchema(path string, version int, features []string) error {
	if version != SupportedSchemaVersion {
		return fmt.Errorf("%w: %s: schema version %d, want %d",
			ErrArtifactLoad, path, version, SupportedSchemaVersion)
	}
	if len(features) != models.NumFeatures {
		return fmt.Errorf("%w: %s: %d features, want %d",
			ErrArtifactLoad, path, len(features), models.NumFeatures)
	}
	for i, name := range features {
		if name != models.FeatureNames[i] {
			return fmt.Errorf("%w: %s: feature %d is %q, want %q",
				ErrArtifactLoad, path, i, name, models.FeatureNames[i])
		}
	}
	return nil
}
