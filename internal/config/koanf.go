// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/vintner/config.yaml",
	"/etc/vintner/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces Vintner environment variables.
const envPrefix = "VINTNER_"

// envKeyMap maps environment variable names (without prefix) to koanf paths.
// An explicit table is used because several config keys contain underscores,
// which a mechanical SNAKE_CASE -> dotted-path transform would mangle
// (VINTNER_ARTIFACTS_INFERENCE_LOG_PATH is artifacts.inference_log_path,
// not artifacts.inference.log.path).
var envKeyMap = map[string]string{
	"SERVER_HOST":              "server.host",
	"SERVER_PORT":              "server.port",
	"SERVER_READ_TIMEOUT":      "server.read_timeout",
	"SERVER_WRITE_TIMEOUT":     "server.write_timeout",
	"SERVER_SHUTDOWN_TIMEOUT":  "server.shutdown_timeout",
	"LOG_LEVEL":                "logging.level",
	"LOG_FORMAT":               "logging.format",
	"LOG_CALLER":               "logging.caller",
	"MODEL_PATH":               "artifacts.model_path",
	"PREPROCESSOR_PATH":        "artifacts.preprocessor_path",
	"REFERENCE_PATH":           "artifacts.reference_path",
	"INFERENCE_LOG_PATH":       "artifacts.inference_log_path",
	"DRIFT_REPORT_PATH":        "artifacts.drift_report_path",
	"PROFILE_REPORT_PATH":      "artifacts.profile_report_path",
	"DRIFT_ALPHA":              "drift.alpha",
	"DRIFT_QUEUE_SIZE":         "drift.queue_size",
	"PROFILE_ON_START":         "profiling.generate_on_start",
	"API_RATE_LIMIT_REQUESTS":  "api.rate_limit_requests",
	"API_RATE_LIMIT_WINDOW":    "api.rate_limit_window",
	"API_RATE_LIMIT_DISABLED":  "api.rate_limit_disabled",
	"API_CORS_ORIGINS":         "api.cors_origins",
}

// Load builds the configuration from layered sources, highest priority last:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML config file (CONFIG_PATH or DefaultConfigPaths)
//  3. VINTNER_-prefixed environment variables
//
// The result is validated before being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(key string) string {
		return envKeyMap[strings.TrimPrefix(key, envPrefix)]
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices when
// they arrive as strings from the environment.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated env strings into slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
