// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vintner/internal/models"
)

// DriftChecker runs one drift computation. Satisfied by *drift.Monitor.
type DriftChecker interface {
	Check(ctx context.Context) (models.DriftResult, error)
}

// DriftService is the background worker behind the fire-and-forget drift
// endpoint. It consumes the trigger channel and runs one check per trigger.
//
// A failed check is logged and never returned: returning an error would make
// suture restart the worker, and a broken reference dataset would turn every
// trigger into a restart storm. The worker only exits on context
// cancellation.
type DriftService struct {
	monitor  DriftChecker
	triggers <-chan struct{}
	log      zerolog.Logger
}

// NewDriftService creates the drift worker. The service reads from triggers;
// the API handler owns the sending side.
func NewDriftService(monitor DriftChecker, triggers <-chan struct{}, log zerolog.Logger) *DriftService {
	return &DriftService{
		monitor:  monitor,
		triggers: triggers,
		log:      log,
	}
}

// Serve implements suture.Service.
func (s *DriftService) Serve(ctx context.Context) error {
	s.log.Info().Msg("Drift worker started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Drift worker stopping")
			return ctx.Err()

		case <-s.triggers:
			s.runCheck(ctx)
		}
	}
}

// runCheck executes one drift computation and logs the outcome.
func (s *DriftService) runCheck(ctx context.Context) {
	result, err := s.monitor.Check(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Drift check failed")
		return
	}

	switch result.Outcome {
	case models.DriftOutcomeNoData:
		s.log.Info().Msg("Drift check skipped: no inference data recorded yet")
	default:
		s.log.Info().
			Float64("score", result.Score).
			Int("drifted_features", result.DriftedFeatures).
			Int("total_features", result.TotalFeatures).
			Int("reference_rows", result.ReferenceRows).
			Int("current_rows", result.CurrentRows).
			Msg("Drift check completed")
	}
}

// String identifies the service in suture's event logs.
func (s *DriftService) String() string {
	return "drift-worker"
}
