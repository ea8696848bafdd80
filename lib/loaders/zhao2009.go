// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// Zhao2009ID is the Zenodo record of the Zhao et al. (2009) "Spectral
// Sensitivity Database" dataset.
const Zhao2009ID = "4297288"

// zhao2009Cameras names the twelve measured cameras in file order:
// camera_0.spectra through camera_11.spectra.
var zhao2009Cameras = []string{
	"SONY DXC 930", "KODAK DCS 420", "NIKON D1X", "SONY DXC 9000",
	"CANON 10D", "NIKON D70", "KODAK DCS 460", "CANON 400D",
	"CANON 5D", "CANON 5D Mark 2", "Ladybug2", "KODAK DCS 200",
}

// Zhao2009 loads the twelve per-camera sensitivity files, each a
// whitespace-delimited table of wavelength then R, G, B columns.
type Zhao2009 struct {
	materializer Materializer
}

func NewZhao2009(m Materializer) *Zhao2009 {
	return &Zhao2009{materializer: m}
}

func (l *Zhao2009) ID() string { return Zhao2009ID }

func (l *Zhao2009) Load(ctx context.Context) (*dataset.Collection, error) {
	root, err := l.materializer.Ensure(ctx, Zhao2009ID)
	if err != nil {
		return nil, err
	}

	content := dataset.NewCollection()
	for i, camera := range zhao2009Cameras {
		filename := fmt.Sprintf("camera_%d.spectra", i)
		lines, err := readLines(filepath.Join(root, filename))
		if err != nil {
			return nil, formatError(Zhao2009ID, filename, "%v", err)
		}

		table := &dataset.SpectralTable{
			Name:    camera,
			Columns: [][]float64{nil, nil, nil},
			Labels:  []string{"R", "G", "B"},
		}
		for _, line := range lines {
			values, err := parseFloats(strings.Fields(line))
			if err != nil || len(values) != 4 {
				return nil, formatError(Zhao2009ID, filename, "row %q: want 4 numeric cells", line)
			}
			table.Wavelengths = append(table.Wavelengths, values[0])
			for c := 0; c < 3; c++ {
				table.Columns[c] = append(table.Columns[c], values[c+1])
			}
		}
		if len(table.Wavelengths) == 0 {
			return nil, formatError(Zhao2009ID, filename, "no data rows")
		}
		content.Set(camera, table)
	}
	return content, nil
}
