// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/vintner/internal/models"
)

func writeDataset(t *testing.T, dir string, rows int) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(strings.Join(models.FeatureNames[:], ","))
	b.WriteString("," + models.TargetColumn + "\n")
	for i := 0; i < rows; i++ {
		cells := make([]string, models.NumFeatures+1)
		for j := range cells {
			cells[j] = fmt.Sprintf("%d", i+j)
		}
		b.WriteString(strings.Join(cells, ",") + "\n")
	}

	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	refPath := writeDataset(t, dir, 30)
	outPath := filepath.Join(dir, "reports", "report.html")

	if err := Generate(refPath, outPath); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "Data Profiling Report") {
		t.Error("report missing title")
	}
	for _, name := range models.FeatureNames {
		if !strings.Contains(html, name) {
			t.Errorf("report missing column %q", name)
		}
	}
	if !strings.Contains(html, models.TargetColumn) {
		t.Errorf("report missing target column %q", models.TargetColumn)
	}
	if !strings.Contains(html, "30 rows") {
		t.Error("report missing row count")
	}
}

func TestGenerateSchemaValidation(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "report.html")

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
			content: strings.Join(models.FeatureNames[:], ",") + ",mystery," + models.TargetColumn + "\n" +
				strings.Repeat("1,", models.NumFeatures+1) + "5\n",
		},
		{
			name:    "empty dataset",
			content: strings.Join(models.FeatureNames[:], ",") + "," + models.TargetColumn + "\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refPath := filepath.Join(dir, "bad.csv")
			if err := os.WriteFile(refPath, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write dataset: %v", err)
			}
			if err := Generate(refPath, outPath); err == nil {
				t.Error("Generate() expected error, got nil")
			}
			if _, err := os.Stat(outPath); !os.IsNotExist(err) {
				t.Error("Generate() wrote a report despite invalid input")
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	p := summarize("test", []float64{1, 2, 3, 4, 5}, 2)

	if p.Count != 5 {
		t.Errorf("Count = %d, want 5", p.Count)
	}
	if p.Missing != 2 {
		t.Errorf("Missing = %d, want 2", p.Missing)
	}
	if p.Mean != 3 {
		t.Errorf("Mean = %g, want 3", p.Mean)
	}
	if p.Min != 1 || p.Max != 5 {
		t.Errorf("Min, Max = %g, %g, want 1, 5", p.Min, p.Max)
	}
	if p.Median != 3 {
		t.Errorf("Median = %g, want 3", p.Median)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	p := summarize("empty", nil, 7)
	if p.Count != 0 || p.Missing != 7 {
		t.Errorf("Count, Missing = %d, %d, want 0, 7", p.Count, p.Missing)
	}
	if p.Mean != 0 || p.StdDev != 0 {
		t.Errorf("empty column produced nonzero stats: %+v", p)
	}
}
