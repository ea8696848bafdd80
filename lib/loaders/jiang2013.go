// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// Jiang2013ID is the Zenodo record of the Jiang et al. (2013) "Camera
// Spectral Sensitivity Database" dataset.
const Jiang2013ID = "3245883"

// Jiang2013 loads the camera sensitivity database: a single text file
// alternating camera name lines with tab-separated value lines. Each
// camera carries 99 values, the R, G and B channels concatenated over
// a 400-720nm, 10nm step axis.
type Jiang2013 struct {
	materializer Materializer
}

func NewJiang2013(m Materializer) *Jiang2013 {
	return &Jiang2013{materializer: m}
}

func (l *Jiang2013) ID() string { return Jiang2013ID }

func (l *Jiang2013) Load(ctx context.Context) (*dataset.Collection, error) {
	root, err := l.materializer.Ensure(ctx, Jiang2013ID)
	if err != nil {
		return nil, err
	}

	const filename = "camspec_database.txt"
	lines, err := readLines(filepath.Join(root, filename))
	if err != nil {
		return nil, formatError(Jiang2013ID, filename, "%v", err)
	}

	wavelengths := wavelengthRange(400, 720, 10)
	content := dataset.NewCollection()

	camera := ""
	values := map[string][]float64{}
	for _, line := range lines {
		if isNameLine(line) {
			camera = line
			values[camera] = nil
			content.Set(camera, nil)
			continue
		}
		if camera == "" {
			return nil, formatError(Jiang2013ID, filename, "values before first camera name: %q", line)
		}
		row, err := parseFloats(strings.Split(line, "\t"))
		if err != nil {
			return nil, formatError(Jiang2013ID, filename, "camera %q: %v", camera, err)
		}
		values[camera] = append(values[camera], row...)
	}

	for _, camera := range content.Keys() {
		channels := values[camera]
		if len(channels) != 3*len(wavelengths) {
			return nil, formatError(Jiang2013ID, filename,
				"camera %q has %d values, want %d", camera, len(channels), 3*len(wavelengths))
		}
		content.Set(camera, &dataset.SpectralTable{
			Name:        camera,
			Wavelengths: wavelengths,
			Columns: [][]float64{
				channels[0:len(wavelengths)],
				channels[len(wavelengths) : 2*len(wavelengths)],
				channels[2*len(wavelengths):],
			},
			Labels: []string{"R", "G", "B"},
		})
	}
	return content, nil
}

// isNameLine reports whether line opens a camera block. Value lines
// start with a digit or sign; name lines start with a letter.
func isNameLine(line string) bool {
	c := line[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// wavelengthRange returns the inclusive axis from first to last.
func wavelengthRange(first, last, step float64) []float64 {
	var axis []float64
	for w := first; w <= last; w += step {
		axis = append(axis, w)
	}
	return axis
}
