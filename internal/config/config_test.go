// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Drift.Alpha != 0.05 {
		t.Errorf("Drift.Alpha = %g, want 0.05", cfg.Drift.Alpha)
	}
	if cfg.Drift.QueueSize != 1 {
		t.Errorf("Drift.QueueSize = %d, want 1", cfg.Drift.QueueSize)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Artifacts.ModelPath != "artifacts/model_trainer/model.json" {
		t.Errorf("Artifacts.ModelPath = %q", cfg.Artifacts.ModelPath)
	}
	if cfg.Artifacts.InferenceLogPath != "artifacts/predictions/inference_log.csv" {
		t.Errorf("Artifacts.InferenceLogPath = %q", cfg.Artifacts.InferenceLogPath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VINTNER_SERVER_PORT", "9090")
	t.Setenv("VINTNER_LOG_LEVEL", "debug")
	t.Setenv("VINTNER_DRIFT_ALPHA", "0.01")
	t.Setenv("VINTNER_MODEL_PATH", "/srv/artifacts/model.json")
	t.Setenv("VINTNER_INFERENCE_LOG_PATH", "/var/log/vintner/inference_log.csv")
	t.Setenv("VINTNER_SERVER_READ_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Drift.Alpha != 0.01 {
		t.Errorf("Drift.Alpha = %g, want 0.01", cfg.Drift.Alpha)
	}
	if cfg.Artifacts.ModelPath != "/srv/artifacts/model.json" {
		t.Errorf("Artifacts.ModelPath = %q", cfg.Artifacts.ModelPath)
	}
	if cfg.Artifacts.InferenceLogPath != "/var/log/vintner/inference_log.csv" {
		t.Errorf("Artifacts.InferenceLogPath = %q", cfg.Artifacts.InferenceLogPath)
	}
	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 45s", cfg.Server.ReadTimeout)
	}
}

func TestLoadCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("VINTNER_API_CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.API.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.API.CORSOrigins, want)
	}
	for i := range want {
		if cfg.API.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.API.CORSOrigins[i], want[i])
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := strings.TrimSpace(`
server:
  port: 7070
drift:
  alpha: 0.1
`)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Drift.Alpha != 0.1 {
		t.Errorf("Drift.Alpha = %g, want 0.1", cfg.Drift.Alpha)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
}

func TestEnvBeatsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("VINTNER_SERVER_PORT", "6060")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 6060 {
		t.Errorf("Server.Port = %d, want env override 6060", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "port too low",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "alpha zero",
			mutate:  func(c *Config) { c.Drift.Alpha = 0 },
			wantErr: "drift.alpha",
		},
		{
			name:    "alpha one",
			mutate:  func(c *Config) { c.Drift.Alpha = 1 },
			wantErr: "drift.alpha",
		},
		{
			name:    "queue size zero",
			mutate:  func(c *Config) { c.Drift.QueueSize = 0 },
			wantErr: "drift.queue_size",
		},
		{
			name:    "empty model path",
			mutate:  func(c *Config) { c.Artifacts.ModelPath = "" },
			wantErr: "artifacts.model_path",
		},
		{
			name:    "rate limit zero while enabled",
			mutate:  func(c *Config) { c.API.RateLimitRequests = 0 },
			wantErr: "api.rate_limit_requests",
		},
		{
			name: "rate limit zero while disabled is fine",
			mutate: func(c *Config) {
				c.API.RateLimitRequests = 0
				c.API.RateLimitDisabled = true
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
