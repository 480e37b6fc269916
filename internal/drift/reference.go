// Vintner - Wine Quality Inference Serving and Drift Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vintner

package drift

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tomtom215/vintner/internal/models"
)

// referenceData is the training feature distribution, columns keyed by
// canonical feature name. The target column is dropped on load so the
// reference exposes exactly the serving schema.
type referenceData struct {
	columns map[string][]float64
	rows    int
}

// loadReference reads the reference dataset CSV. Every canonical feature
// column must be present; the target column is ignored. Malformed numeric
// cells are an error — the reference is static training output, not
// best-effort traffic.
func loadReference(path string) (*referenceData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	head, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read reference header: %w", err)
	}

	// Map canonical feature -> column index; -1 marks ignored columns
	// (the target). Unknown columns fail: a changed training schema must
	// not be silently reinterpreted.
	index := make([]int, len(head))
	seen := make(map[string]bool, models.NumFeatures)
	for i, col := range head {
		index[i] = -1
		if col == models.TargetColumn {
			continue
		}
		found := false
		for j, name := range models.FeatureNames {
			if col == name {
				index[i] = j
				seen[name] = true
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("reference dataset has unknown column %q", col)
		}
	}
	for _, name := range models.FeatureNames {
		if !seen[name] {
			return nil, fmt.Errorf("reference dataset is missing column %q", name)
		}
	}

	columns := make(map[string][]float64, models.NumFeatures)
	for _, name := range models.FeatureNames {
		columns[name] = nil
	}

	rows := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read reference row: %w", err)
		}
		for i, cell := range row {
			j := index[i]
			if j < 0 {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("reference row %d column %q: %w", rows+1, head[i], err)
			}
			name := models.FeatureNames[j]
			columns[name] = append(columns[name], v)
		}
		rows++
	}

	if rows == 0 {
		return nil, fmt.Errorf("reference dataset %s has no rows", path)
	}

	return &referenceData{columns: columns, rows: rows}, nil
}
