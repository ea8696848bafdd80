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

// Brendel2020ID is the Zenodo record of the Brendel (2020) "Measured
// SPDs of 50 LEDs" dataset.
const Brendel2020ID = "4051012"

// Brendel2020 loads the LED power distributions: one CSV with a
// header line, one LED per row, columns sampling 350-700nm at 2nm.
// Labels embed the peak wavelength and the row index.
type Brendel2020 struct {
	materializer Materializer
}

func NewBrendel2020(m Materializer) *Brendel2020 {
	return &Brendel2020{materializer: m}
}

func (l *Brendel2020) ID() string { return Brendel2020ID }

func (l *Brendel2020) Load(ctx context.Context) (*dataset.Collection, error) {
	root, err := l.materializer.Ensure(ctx, Brendel2020ID)
	if err != nil {
		return nil, err
	}

	const filename = "led_spd_350_700.csv"
	lines, err := readLines(filepath.Join(root, filename))
	if err != nil {
		return nil, formatError(Brendel2020ID, filename, "%v", err)
	}
	if len(lines) < 2 {
		return nil, formatError(Brendel2020ID, filename, "no data rows after the header")
	}

	wavelengths := wavelengthRange(350, 700, 2)
	content := dataset.NewCollection()
	for i, line := range lines[1:] {
		values, err := parseFloats(strings.Split(line, ","))
		if err != nil {
			return nil, formatError(Brendel2020ID, filename, "row %d: %v", i, err)
		}
		if len(values) != len(wavelengths) {
			return nil, formatError(Brendel2020ID, filename,
				"row %d has %d values, want %d", i, len(values), len(wavelengths))
		}

		peak := 0
		for j, value := range values {
			if value > values[peak] {
				peak = j
			}
		}
		name := fmt.Sprintf("%dnm - LED %d - Brendel (2020)", int(wavelengths[peak]), i)
		content.Set(name, &dataset.SpectralTable{
			Name:        name,
			Wavelengths: wavelengths,
			Columns:     [][]float64{values},
		})
	}
	return content, nil
}
