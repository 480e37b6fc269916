// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

// Package inferlog provides the durable append-only inference log.
//
// Every served prediction is appended as one CSV row: the 11 input features
// in canonical order, the prediction, and an RFC3339 timestamp. The file is
// the ground truth of current traffic that the drift monitor compares
// against the training reference; its layout is an external contract.
//
// Concurrency: appends from concurrent requests are serialized through a
// single mutex-guarded writer on an O_APPEND handle, so rows can never
// interleave. Rows are only appended, never rewritten; there is no
// deduplication, no compaction, and no rotation (retention is an operator
// concern).
package inferlog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/vintner/internal/models"
)

// ErrClosed is returned by Append after Close.
var ErrClosed = errors.New("inference log is closed")

// Record is one logged inference.
type Record struct {
	Features   models.FeatureVector
	Prediction float64
	Timestamp  time.Time
}

// Stats contains logger counters for monitoring.
type Stats struct {
	// TotalAppends is the number of successful Append calls.
	TotalAppends int64

	// TotalErrors is the number of failed Append calls.
	TotalErrors int64

	// LastAppend is the timestamp of the most recent successful append.
	LastAppend time.Time
}

// Logger appends inference records to a CSV file.
type Logger struct {
	path string

	mu     sync.Mutex
	file   *os.File
	closed bool

	totalAppends atomic.Int64
	totalErrors  atomic.Int64

	lastMu     sync.Mutex
	lastAppend time.Time
}

// header returns the CSV header row: feature columns, prediction, timestamp.
func header() []string {
	h := make([]string, 0, models.NumFeatures+2)
	h = append(h, models.FeatureNames[:]...)
	return append(h, "prediction", "timestamp")
}

// Open opens (or creates) the inference log at path, creating parent
// directories as needed. A new or empty file gets the header row; an
// existing file is appended to as-is.
func Open(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create inference log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open inference log: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat inference log: %w", err)
	}

	l := &Logger{path: path, file: f}

	if info.Size() == 0 {
		if err := l.writeRow(header()); err != nil {
			f.Close()
			return nil, fmt.Errorf("write inference log header: %w", err)
		}
	}

	return l, nil
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// Append writes one record. Records appear in call order; concurrent
// callers are serialized. The returned error is informational for the
// caller's error accounting — by policy a failed append must not fail the
// prediction that produced it.
func (l *Logger) Append(features models.FeatureVector, prediction float64, ts time.Time) error {
	row := make([]string, 0, models.NumFeatures+2)
	for _, v := range features {
		row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
	}
	row = append(row,
		strconv.FormatFloat(prediction, 'g', -1, 64),
		ts.UTC().Format(time.RFC3339Nano),
	)

	if err := l.writeRow(row); err != nil {
		l.totalErrors.Add(1)
		return err
	}

	l.totalAppends.Add(1)
	l.lastMu.Lock()
	l.lastAppend = ts
	l.lastMu.Unlock()
	return nil
}

// writeRow serializes one CSV row and appends it with a single write call
// under the writer lock.
func (l *Logger) writeRow(row []string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	_, err := l.file.Write(buf.Bytes())
	return err
}

// Stats returns logger counters.
func (l *Logger) Stats() Stats {
	l.lastMu.Lock()
	last := l.lastAppend
	l.lastMu.Unlock()
	return Stats{
		TotalAppends: l.totalAppends.Load(),
		TotalErrors:  l.totalErrors.Load(),
		LastAppend:   last,
	}
}

// Close closes the underlying file. Further appends return ErrClosed.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.file.Close()
}

// Snapshot reads all complete records from the log at path.
//
// A missing file returns (nil, nil): no traffic yet is a normal condition,
// not an error. A torn final row — an append in flight from a concurrent
// writer — is skipped silently; this is the one documented race between the
// drift monitor's read and the serving path's writes.
func Snapshot(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open inference log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	head, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read inference log header: %w", err)
	}
	want := header()
	if len(head) != len(want) {
		return nil, fmt.Errorf("inference log header has %d columns, want %d", len(head), len(want))
	}
	for i, col := range head {
		if col != want[i] {
			return nil, fmt.Errorf("inference log column %d is %q, want %q", i, col, want[i])
		}
	}

	var records []Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row, likely torn by an in-flight append. Skip.
			continue
		}
		rec, ok := parseRow(row)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseRow converts one CSV row into a Record. Incomplete or non-numeric
// rows report ok=false and are skipped by the caller.
func parseRow(row []string) (Record, bool) {
	if len(row) != models.NumFeatures+2 {
		return Record{}, false
	}
	var rec Record
	for i := 0; i < models.NumFeatures; i++ {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return Record{}, false
		}
		rec.Features[i] = v
	}
	pred, err := strconv.ParseFloat(row[models.NumFeatures], 64)
	if err != nil {
		return Record{}, false
	}
	rec.Prediction = pred
	ts, err := time.Parse(time.RFC3339Nano, row[models.NumFeatures+1])
	if err != nil {
		return Record{}, false
	}
	rec.Timestamp = ts
	return rec, true
}
