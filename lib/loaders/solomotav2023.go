// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// Solomotav2023ID is the Zenodo record of the Solomatov and Akkaynak
// (2023) "Spectral Sensitivity Estimates" dataset.
const Solomotav2023ID = "8314702"

// Solomotav2023 loads the estimated and ground-truth camera
// sensitivities: one CSV per camera in the csv/ and ground-truths/
// directories, keyed by camera name with dashes spelled as spaces.
type Solomotav2023 struct {
	materializer Materializer
}

func NewSolomotav2023(m Materializer) *Solomotav2023 {
	return &Solomotav2023{materializer: m}
}

func (l *Solomotav2023) ID() string { return Solomotav2023ID }

func (l *Solomotav2023) Load(ctx context.Context) (*dataset.Collection, error) {
	root, err := l.materializer.Ensure(ctx, Solomotav2023ID)
	if err != nil {
		return nil, err
	}

	content := dataset.NewCollection()
	for _, group := range []struct {
		key       string
		directory string
	}{
		{"Estimated", "csv"},
		{"Ground Truth", "ground-truths"},
	} {
		// The archives unpack into a directory named after themselves.
		pattern := filepath.Join(root, group.directory, group.directory, "*.csv")
		paths, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		sort.Strings(paths)
		if len(paths) == 0 {
			return nil, formatError(Solomotav2023ID, group.directory, "no camera CSV files")
		}

		cameras := dataset.NewCollection()
		for _, path := range paths {
			filename := filepath.Base(path)
			camera := strings.ReplaceAll(strings.TrimSuffix(filename, ".csv"), "-", " ")
			table, err := readSpectralCSV(path, camera)
			if err != nil {
				return nil, formatError(Solomotav2023ID, filename, "%v", err)
			}
			cameras.Set(camera, table)
		}
		content.Set(group.key, cameras)
	}
	return content, nil
}

// readSpectralCSV parses a comma-separated spectral table: a header
// whose first cell labels the wavelength column, then one row per
// wavelength.
func readSpectralCSV(path, name string) (*dataset.SpectralTable, error) {
	raw, err := readCSVTable(path, ',', 0)
	if err != nil {
		return nil, err
	}
	return spectralFromTable(raw, name)
}

// spectralFromTable reorients a wavelength-rows Table into a
// SpectralTable, labelling channels from the header.
func spectralFromTable(raw *dataset.Table, name string) (*dataset.SpectralTable, error) {
	columns := len(raw.Header) - 1
	table := &dataset.SpectralTable{
		Name:    name,
		Columns: make([][]float64, columns),
		Labels:  raw.Header[1:],
	}
	for _, row := range raw.Values {
		table.Wavelengths = append(table.Wavelengths, row[0])
		for c := 0; c < columns; c++ {
			table.Columns[c] = append(table.Columns[c], row[c+1])
		}
	}
	return table, table.Validate()
}
