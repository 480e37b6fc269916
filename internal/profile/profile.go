// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

// Package profile renders an exploratory profiling report for the reference
// dataset: per-column summary statistics as a standalone HTML artifact,
// served by the data-profiling endpoint.
//
// It doubles as the dataset validation stage: generation fails when the
// dataset's columns diverge from the canonical training schema, so a
// retrained pipeline that changed the schema is caught before serving.
package profile

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/vintner/internal/models"
)

// ColumnProfile is the summary of one dataset column.
type ColumnProfile struct {
	Name    string
	Count   int
	Missing int
	Mean    float64
	StdDev  float64
	Min     float64
	Q25     float64
	Median  float64
	Q75     float64
	Max     float64
}

// Report is the rendered profiling payload.
type Report struct {
	Source      string
	Rows        int
	Columns     []ColumnProfile
	GeneratedAt time.Time
}

// Generate profiles the dataset at referencePath and writes the HTML report
// to outPath. The dataset must carry exactly the canonical feature columns
// plus, optionally, the target column.
func Generate(referencePath, outPath string) error {
	report, err := analyze(referencePath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".profile_report_*.html")
	if err != nil {
		return fmt.Errorf("create report temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := profileTemplate.Execute(tmp, report); err != nil {
		tmp.Close()
		return fmt.Errorf("render profiling report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close profiling report: %w", err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return fmt.Errorf("publish profiling report: %w", err)
	}
	return nil
}

// analyze loads the dataset and computes per-column summaries.
func analyze(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	head, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	if err := validateColumns(head); err != nil {
		return nil, err
	}

	values := make([][]float64, len(head))
	missing := make([]int, len(head))
	rows := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row: %w", err)
		}
		for i, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				missing[i]++
				continue
			}
			values[i] = append(values[i], v)
		}
		rows++
	}
	if rows == 0 {
		return nil, fmt.Errorf("dataset %s has no rows", path)
	}

	columns := make([]ColumnProfile, len(head))
	for i, name := range head {
		columns[i] = summarize(name, values[i], missing[i])
	}

	return &Report{
		Source:      filepath.Base(path),
		Rows:        rows,
		Columns:     columns,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// validateColumns checks the dataset schema: all canonical features must be
// present, and only the target column is allowed beyond them.
func validateColumns(head []string) error {
	seen := make(map[string]bool, len(head))
	for _, col := range head {
		if col == models.TargetColumn {
			continue
		}
		known := false
		for _, name := range models.FeatureNames {
			if col == name {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("dataset has unknown column %q", col)
		}
		seen[col] = true
	}
	for _, name := range models.FeatureNames {
		if !seen[name] {
			return fmt.Errorf("dataset is missing column %q", name)
		}
	}
	return nil
}

// summarize computes one column's statistics. Quantiles use the empirical
// distribution of the sorted sample.
func summarize(name string, vals []float64, missing int) ColumnProfile {
	p := ColumnProfile{Name: name, Count: len(vals), Missing: missing}
	if len(vals) == 0 {
		return p
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	p.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		p.StdDev = stat.StdDev(sorted, nil)
	}
	p.Min = sorted[0]
	p.Max = sorted[len(sorted)-1]
	p.Q25 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	p.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p.Q75 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
	return p
}

var profileTemplate = template.Must(template.New("profile_report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Data Profiling Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.5rem; }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
th, td { text-align: right; padding: 0.4rem 0.6rem; border-bottom: 1px solid #ddd; }
th:first-child, td:first-child { text-align: left; }
th { background: #f4f6f8; }
.meta { color: #666; font-size: 0.85rem; margin-top: 1.5rem; }
</style>
</head>
<body>
<h1>Data Profiling Report &mdash; {{.Source}}</h1>
<p>{{.Rows}} rows</p>
<table>
  <thead>
    <tr><th>Column</th><th>Count</th><th>Missing</th><th>Mean</th><th>Std</th><th>Min</th><th>25%</th><th>Median</th><th>75%</th><th>Max</th></tr>
  </thead>
  <tbody>
  {{- range .Columns}}
    <tr>
      <td>{{.Name}}</td>
      <td>{{.Count}}</td>
      <td>{{.Missing}}</td>
      <td>{{printf "%.4f" .Mean}}</td>
      <td>{{printf "%.4f" .StdDev}}</td>
      <td>{{printf "%.4f" .Min}}</td>
      <td>{{printf "%.4f" .Q25}}</td>
      <td>{{printf "%.4f" .Median}}</td>
      <td>{{printf "%.4f" .Q75}}</td>
      <td>{{printf "%.4f" .Max}}</td>
    </tr>
  {{- end}}
  </tbody>
</table>
<p class="meta">Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>
</body>
</html>
`))
