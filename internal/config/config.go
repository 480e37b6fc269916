// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

// Package config loads and validates Vintner configuration using Koanf v2
// with layered sources: struct defaults, optional YAML file, environment
// variables (highest priority).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Vintner server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Drift     DriftConfig     `koanf:"drift"`
	Profiling ProfilingConfig `koanf:"profiling"`
	API       APIConfig       `koanf:"api"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level: trace, debug, info, warn, error.
	Level string `koanf:"level"`
	// Format: json or console.
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ArtifactsConfig holds the artifact store file layout. These paths are an
// external contract shared with the training pipeline and must stay stable
// across retrain and redeploy.
type ArtifactsConfig struct {
	// ModelPath is the persisted ElasticNet parameter file.
	ModelPath string `koanf:"model_path"`
	// PreprocessorPath is the persisted fitted preprocessor parameter file.
	PreprocessorPath string `koanf:"preprocessor_path"`
	// ReferencePath is the training-time reference dataset (CSV, includes
	// the quality target column).
	ReferencePath string `koanf:"reference_path"`
	// InferenceLogPath is the append-only inference log (CSV).
	InferenceLogPath string `koanf:"inference_log_path"`
	// DriftReportPath is where the rendered drift report is written.
	DriftReportPath string `koanf:"drift_report_path"`
	// ProfileReportPath is where the data profiling report lives.
	ProfileReportPath string `koanf:"profile_report_path"`
}

// DriftConfig holds drift detection settings.
type DriftConfig struct {
	// Alpha is the significance level of the per-feature two-sample test.
	// Must be in (0, 1). Default 0.05.
	Alpha float64 `koanf:"alpha"`
	// QueueSize is the capacity of the fire-and-forget trigger queue.
	// Triggers beyond capacity are coalesced, not queued.
	QueueSize int `koanf:"queue_size"`
}

// ProfilingConfig controls the reference-dataset profiling report.
type ProfilingConfig struct {
	// GenerateOnStart renders the profiling report at startup when it does
	// not already exist.
	GenerateOnStart bool `koanf:"generate_on_start"`
}

// APIConfig holds HTTP boundary settings.
type APIConfig struct {
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// defaultConfig returns a Config with all default values. Artifact paths
// mirror the training pipeline's output layout.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Artifacts: ArtifactsConfig{
			ModelPath:         "artifacts/model_trainer/model.json",
			PreprocessorPath:  "artifacts/data_transformation/preprocessor.json",
			ReferencePath:     "artifacts/data_ingestion/data.csv",
			InferenceLogPath:  "artifacts/predictions/inference_log.csv",
			DriftReportPath:   "artifacts/predictions/drift_report.html",
			ProfileReportPath: "artifacts/data_validation/report.html",
		},
		Drift: DriftConfig{
			Alpha:     0.05,
			QueueSize: 1,
		},
		Profiling: ProfilingConfig{
			GenerateOnStart: false,
		},
		API: APIConfig{
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{},
		},
	}
}

// Validate checks the configuration for values that cannot work at runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Drift.Alpha <= 0 || c.Drift.Alpha >= 1 {
		return fmt.Errorf("drift.alpha must be in (0, 1), got %g", c.Drift.Alpha)
	}
	if c.Drift.QueueSize < 1 {
		return fmt.Errorf("drift.queue_size must be >= 1, got %d", c.Drift.QueueSize)
	}
	for name, path := range map[string]string{
		"artifacts.model_path":         c.Artifacts.ModelPath,
		"artifacts.preprocessor_path":  c.Artifacts.PreprocessorPath,
		"artifacts.reference_path":     c.Artifacts.ReferencePath,
		"artifacts.inference_log_path": c.Artifacts.InferenceLogPath,
		"artifacts.drift_report_path":  c.Artifacts.DriftReportPath,
	} {
		if path == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	if !c.API.RateLimitDisabled && c.API.RateLimitRequests < 1 {
		return fmt.Errorf("api.rate_limit_requests must be >= 1, got %d", c.API.RateLimitRequests)
	}
	return nil
}
