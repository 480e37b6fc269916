// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

// Package main is the entry point for the Vintner server.
//
// Vintner serves wine quality predictions from a persisted regression model
// and monitors the served traffic for data drift against the training
// reference dataset.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered settings via Koanf v2 (defaults, YAML file,
//     VINTNER_-prefixed environment variables)
//  2. Inference engine: load the model and preprocessor parameter files;
//     a load failure is fatal, the server never runs without a model
//  3. Inference log: open (or create) the append-only prediction log
//  4. Drift monitor: on-demand comparison of the log against the reference
//  5. Profiling report: optionally rendered at startup
//  6. HTTP server and drift worker, run under a suture supervision tree
//
// # Configuration
//
// Common environment variables:
//   - VINTNER_SERVER_PORT: listen port (default 8080)
//   - VINTNER_MODEL_PATH: model parameter file
//   - VINTNER_PREPROCESSOR_PATH: preprocessor parameter file
//   - VINTNER_REFERENCE_PATH: training reference dataset (CSV)
//   - VINTNER_INFERENCE_LOG_PATH: append-only inference log (CSV)
//   - VINTNER_DRIFT_ALPHA: per-feature test significance level (default 0.05)
//   - VINTNER_LOG_LEVEL / VINTNER_LOG_FORMAT: logging
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops accepting
// connections, waits for in-flight requests up to the shutdown timeout, and
// closes the inference log last so no accepted prediction goes unrecorded.
//
// # Example Usage
//
//	export VINTNER_MODEL_PATH=artifacts/model_trainer/model.json
//	export VINTNER_PREPROCESSOR_PATH=artifacts/data_transformation/preprocessor.json
//	export VINTNER_REFERENCE_PATH=artifacts/data_ingestion/data.csv
//	./vintner
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/vintner/internal/api"
	"github.com/tomtom215/vintner/internal/config"
	"github.com/tomtom215/vintner/internal/drift"
	"github.com/tomtom215/vintner/internal/inference"
	"github.com/tomtom215/vintner/internal/inferlog"
	"github.com/tomtom215/vintner/internal/logging"
	"github.com/tomtom215/vintner/internal/profile"
	"github.com/tomtom215/vintner/internal/supervisor"
	"github.com/tomtom215/vintner/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("model", cfg.Artifacts.ModelPath).
		Str("reference", cfg.Artifacts.ReferencePath).
		Msg("Starting Vintner")

	// The model is the whole point of the process: refuse to start without it.
	engine, err := inference.NewEngine(cfg.Artifacts.ModelPath, cfg.Artifacts.PreprocessorPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load model artifacts")
	}

	infLog, err := inferlog.Open(cfg.Artifacts.InferenceLogPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open inference log")
	}
	defer func() {
		if err := infLog.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close inference log")
		}
	}()

	monitor := drift.NewMonitor(drift.Config{
		ReferencePath: cfg.Artifacts.ReferencePath,
		LogPath:       cfg.Artifacts.InferenceLogPath,
		ReportPath:    cfg.Artifacts.DriftReportPath,
		Alpha:         cfg.Drift.Alpha,
	})

	if cfg.Profiling.GenerateOnStart {
		if _, err := os.Stat(cfg.Artifacts.ProfileReportPath); os.IsNotExist(err) {
			if err := profile.Generate(cfg.Artifacts.ReferencePath, cfg.Artifacts.ProfileReportPath); err != nil {
				// Profiling is a convenience artifact, not a serving dependency.
				logging.Error().Err(err).Msg("Failed to generate profiling report")
			} else {
				logging.Info().
					Str("path", cfg.Artifacts.ProfileReportPath).
					Msg("Profiling report generated")
			}
		}
	}

	driftTriggers := make(chan struct{}, cfg.Drift.QueueSize)

	handler := api.NewHandler(engine, infLog, monitor, driftTriggers, cfg.Artifacts.ProfileReportPath)
	router := api.NewRouter(handler, cfg.API)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddMonitoringService(services.NewDriftService(
		monitor,
		driftTriggers,
		logging.With().Str("component", "drift").Logger(),
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Server listening")

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree terminated with error")
		os.Exit(1)
	}

	logging.Info().Msg("Server stopped")
}
