// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package drift

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/vintner/internal/inferlog"
	"github.com/tomtom215/vintner/internal/models"
)

// writeReference writes a reference dataset CSV where every feature of row i
// has value base+i, plus a quality target column.
func writeReference(t *testing.T, dir string, rows int, base float64) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(strings.Join(models.FeatureNames[:], ","))
	b.WriteString("," + models.TargetColumn + "\n")
	for i := 0; i < rows; i++ {
		v := fmt.Sprintf("%g", base+float64(i))
		cells := make([]string, models.NumFeatures+1)
		for j := range cells {
			cells[j] = v
		}
		cells[models.NumFeatures] = "5"
		b.WriteString(strings.Join(cells, ",") + "\n")
	}

	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write reference: %v", err)
	}
	return path
}

// writeLog appends rows records through the real logger so the log carries
// the production header and formatting. Every feature of row i is base+i.
func writeLog(t *testing.T, dir string, rows int, base float64) string {
	t.Helper()

	path := filepath.Join(dir, "inference_log.csv")
	l, err := inferlog.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer l.Close()

	for i := 0; i < rows; i++ {
		var v models.FeatureVector
		for j := range v {
			v[j] = base + float64(i)
		}
		if err := l.Append(v, 5, time.Now()); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	return path
}

func newTestMonitor(t *testing.T, dir, refPath, logPath string) *Monitor {
	t.Helper()
	return NewMonitor(Config{
		ReferencePath: refPath,
		LogPath:       logPath,
		ReportPath:    filepath.Join(dir, "drift_report.html"),
		Alpha:         0.05,
	})
}

func TestCheckNoData(t *testing.T) {
	dir := t.TempDir()
	refPath := writeReference(t, dir, 50, 1)

	t.Run("missing log", func(t *testing.T) {
		m := newTestMonitor(t, dir, refPath, filepath.Join(dir, "never_created.csv"))
		result, err := m.Check(context.Background())
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if result.Outcome != models.DriftOutcomeNoData {
			t.Errorf("Outcome = %q, want %q", result.Outcome, models.DriftOutcomeNoData)
		}
	})

	t.Run("header-only log", func(t *testing.T) {
		logPath := writeLog(t, dir, 0, 0)
		m := newTestMonitor(t, dir, refPath, logPath)
		result, err := m.Check(context.Background())
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if result.Outcome != models.DriftOutcomeNoData {
			t.Errorf("Outcome = %q, want %q", result.Outcome, models.DriftOutcomeNoData)
		}
	})
}

func TestCheckIdenticalDistributions(t *testing.T) {
	dir := t.TempDir()
	refPath := writeReference(t, dir, 100, 1)
	logPath := writeLog(t, dir, 100, 1)

	m := newTestMonitor(t, dir, refPath, logPath)
	result, err := m.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if result.Outcome != models.DriftOutcomeCompleted {
		t.Fatalf("Outcome = %q, want %q", result.Outcome, models.DriftOutcomeCompleted)
	}
	if result.Score != 0 {
		t.Errorf("Score = %g, want 0 for identical distributions", result.Score)
	}
	if result.DriftedFeatures != 0 {
		t.Errorf("DriftedFeatures = %d, want 0", result.DriftedFeatures)
	}
	if result.TotalFeatures != models.NumFeatures {
		t.Errorf("TotalFeatures = %d, want %d", result.TotalFeatures, models.NumFeatures)
	}
	if result.ReferenceRows != 100 || result.CurrentRows != 100 {
		t.Errorf("rows = (%d, %d), want (100, 100)", result.ReferenceRows, result.CurrentRows)
	}
}

func TestCheckShiftedDistributions(t *testing.T) {
	dir := t.TempDir()
	refPath := writeReference(t, dir, 100, 1)
	// Shift far beyond the reference support: every feature must drift.
	logPath := writeLog(t, dir, 100, 10_000)

	m := newTestMonitor(t, dir, refPath, logPath)
	result, err := m.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if result.Score != 1 {
		t.Errorf("Score = %g, want 1 for fully shifted distributions", result.Score)
	}
	if result.DriftedFeatures != models.NumFeatures {
		t.Errorf("DriftedFeatures = %d, want %d", result.DriftedFeatures, models.NumFeatures)
	}
	for _, fd := range result.Features {
		if !fd.Drifted {
			t.Errorf("feature %q not marked drifted", fd.Name)
		}
		if fd.Statistic <= fd.Threshold {
			t.Errorf("feature %q statistic %g not above threshold %g", fd.Name, fd.Statistic, fd.Threshold)
		}
	}
}

func TestCheckScoreBounds(t *testing.T) {
	dir := t.TempDir()
	refPath := writeReference(t, dir, 60, 1)
	logPath := writeLog(t, dir, 40, 20)

	m := newTestMonitor(t, dir, refPath, logPath)
	result, err := m.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if result.Score < 0 || result.Score > 1 {
		t.Errorf("Score = %g, want within [0, 1]", result.Score)
	}
}

func TestCheckBrokenReference(t *testing.T) {
	dir := t.TempDir()
	logPath := writeLog(t, dir, 10, 1)

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing feature column",
			content: "fixed acidity,quality\n7.4,5\n",
		},
		{
			name: "unknown column",
			content: strings.Join(models.FeatureNames[:], ",") +
				",mystery\n" + strings.Repeat("1,", models.NumFeatures) + "2\n",
		},
		{
			name: "non-numeric cell",
			content: strings.Join(models.FeatureNames[:], ",") + "\n" +
				"abc" + strings.Repeat(",1", models.NumFeatures-1) + "\n",
		},
		{
			name:    "empty dataset",
			content: strings.Join(models.FeatureNames[:], ",") + "\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refPath := filepath.Join(dir, "bad_ref.csv")
			if err := os.WriteFile(refPath, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write reference: %v", err)
			}
			m := newTestMonitor(t, dir, refPath, logPath)
			if _, err := m.Check(context.Background()); err == nil {
				t.Error("Check() expected error, got nil")
			}
		})
	}
}

func TestKSCriticalValue(t *testing.T) {
	// c(0.05) = sqrt(-ln(0.025)/2) ~= 1.3581; with n=m=100 the factor
	// sqrt((n+m)/(n*m)) is sqrt(0.02).
	got := ksCriticalValue(100, 100, 0.05)
	want := math.Sqrt(-math.Log(0.025)/2) * math.Sqrt(0.02)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("ksCriticalValue(100, 100, 0.05) = %g, want %g", got, want)
	}

	// The threshold tightens as samples grow.
	if small, large := ksCriticalValue(20, 20, 0.05), ksCriticalValue(2000, 2000, 0.05); large >= small {
		t.Errorf("critical value did not shrink with sample size: %g vs %g", small, large)
	}
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	refPath := writeReference(t, dir, 50, 1)
	logPath := writeLog(t, dir, 50, 1)

	m := newTestMonitor(t, dir, refPath, logPath)
	path, result, err := m.WriteReport(context.Background())
	if err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}
	if result.Outcome != models.DriftOutcomeCompleted {
		t.Errorf("Outcome = %q, want %q", result.Outcome, models.DriftOutcomeCompleted)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "Data Drift Report") {
		t.Error("report missing title")
	}
	for _, name := range models.FeatureNames {
		if !strings.Contains(html, name) {
			t.Errorf("report missing feature %q", name)
		}
	}
}

func TestWriteReportNoData(t *testing.T) {
	dir := t.TempDir()
	refPath := writeReference(t, dir, 50, 1)

	m := newTestMonitor(t, dir, refPath, filepath.Join(dir, "never_created.csv"))
	_, _, err := m.WriteReport(context.Background())
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("WriteReport() error = %v, want ErrNoData", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "drift_report.html")); !os.IsNotExist(statErr) {
		t.Error("WriteReport() wrote a report despite no data")
	}
}
