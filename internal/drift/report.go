// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package drift

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/tomtom215/vintner/internal/models"
)

// reportTemplate renders the per-feature drift table. Self-contained HTML,
// no external assets, so the file can be archived or served as-is.
var reportTemplate = template.Must(template.New("drift_report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Data Drift Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.5rem; }
.summary { margin: 1rem 0; padding: 1rem; border-radius: 6px; background: #f4f6f8; }
.score { font-size: 2rem; font-weight: 600; }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
th, td { text-align: left; padding: 0.5rem 0.75rem; border-bottom: 1px solid #ddd; }
th { background: #f4f6f8; }
.drifted { color: #b00020; font-weight: 600; }
.stable { color: #1a7f37; }
.meta { color: #666; font-size: 0.85rem; margin-top: 1.5rem; }
</style>
</head>
<body>
<h1>Data Drift Report</h1>
<div class="summary">
  <div class="score">{{printf "%.3f" .Score}}</div>
  <div>{{.DriftedFeatures}} of {{.TotalFeatures}} features drifted</div>
</div>
<table>
  <thead>
    <tr><th>Feature</th><th>KS statistic</th><th>Threshold</th><th>Status</th></tr>
  </thead>
  <tbody>
  {{- range .Features}}
    <tr>
      <td>{{.Name}}</td>
      <td>{{printf "%.4f" .Statistic}}</td>
      <td>{{printf "%.4f" .Threshold}}</td>
      {{- if .Drifted}}
      <td class="drifted">drifted</td>
      {{- else}}
      <td class="stable">stable</td>
      {{- end}}
    </tr>
  {{- end}}
  </tbody>
</table>
<p class="meta">Reference rows: {{.ReferenceRows}} &middot; Current rows: {{.CurrentRows}} &middot; Computed {{.ComputedAt.Format "2006-01-02 15:04:05 MST"}}</p>
</body>
</html>
`))

// WriteReport runs a drift check and renders the HTML report to the
// configured path. Returns the rendered path, or ErrNoData when the
// inference log holds no rows (no file is written in that case).
func (m *Monitor) WriteReport(ctx context.Context) (string, models.DriftResult, error) {
	result, err := m.Check(ctx)
	if err != nil {
		return "", models.DriftResult{}, err
	}
	if result.Outcome == models.DriftOutcomeNoData {
		return "", result, ErrNoData
	}

	if err := os.MkdirAll(filepath.Dir(m.cfg.ReportPath), 0o755); err != nil {
		return "", result, fmt.Errorf("create report directory: %w", err)
	}

	// Render to a temp file and rename so a concurrent reader never sees a
	// half-written report.
	tmp, err := os.CreateTemp(filepath.Dir(m.cfg.ReportPath), ".drift_report_*.html")
	if err != nil {
		return "", result, fmt.Errorf("create report temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := reportTemplate.Execute(tmp, result); err != nil {
		tmp.Close()
		return "", result, fmt.Errorf("render drift report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", result, fmt.Errorf("close drift report: %w", err)
	}
	if err := os.Rename(tmp.Name(), m.cfg.ReportPath); err != nil {
		return "", result, fmt.Errorf("publish drift report: %w", err)
	}

	return m.cfg.ReportPath, result, nil
}
