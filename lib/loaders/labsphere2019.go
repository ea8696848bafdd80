// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// Labsphere2019ID is the Zenodo record of the Labsphere (2019)
// "Spectralon Diffuse Reflectance Data" dataset.
const Labsphere2019ID = "3245875"

// Labsphere2019 loads the SRS-99-020 reflectance standard: a two
// column tab-separated file with two header lines.
type Labsphere2019 struct {
	materializer Materializer
}

func NewLabsphere2019(m Materializer) *Labsphere2019 {
	return &Labsphere2019{materializer: m}
}

func (l *Labsphere2019) ID() string { return Labsphere2019ID }

func (l *Labsphere2019) Load(ctx context.Context) (*dataset.Collection, error) {
	root, err := l.materializer.Ensure(ctx, Labsphere2019ID)
	if err != nil {
		return nil, err
	}

	const filename = "SRS-99-020.txt"
	lines, err := readLines(filepath.Join(root, filename))
	if err != nil {
		return nil, formatError(Labsphere2019ID, filename, "%v", err)
	}
	if len(lines) <= 2 {
		return nil, formatError(Labsphere2019ID, filename, "no data rows after the header")
	}

	table := &dataset.SpectralTable{
		Name:    "Labsphere SRS-99-020",
		Columns: [][]float64{nil},
	}
	for _, line := range lines[2:] {
		values, err := parseFloats(strings.Fields(line))
		if err != nil || len(values) != 2 {
			return nil, formatError(Labsphere2019ID, filename, "row %q: want 2 numeric cells", line)
		}
		table.Wavelengths = append(table.Wavelengths, values[0])
		table.Columns[0] = append(table.Columns[0], values[1])
	}

	content := dataset.NewCollection()
	content.Set("Labsphere SRS-99-020", table)
	return content, nil
}
