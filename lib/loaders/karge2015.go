// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// Karge2015ID is the Zenodo record of the Karge et al. (2015) "Open
// Film Tools Light Emission Spectra" dataset.
const Karge2015ID = "4642271"

// karge2015Vendors filters the sample package to the measured light
// vendors; auxiliary files in the same directory are skipped.
var karge2015Vendors = map[string]bool{
	"Arri": true, "Bron": true, "CMT": true, "Dedolight": true,
}

// karge2015Filler matches filler series names interleaved with the
// real measurements in some files.
var karge2015Filler = regexp.MustCompile(`^f\d`)

// Karge2015 loads the emission spectra: one semicolon-delimited CSV
// per vendor file, spectra as rows against a shared wavelength
// header. Content is grouped by light type, then by the Raw or
// Normalised variant.
type Karge2015 struct {
	materializer Materializer
}

func NewKarge2015(m Materializer) *Karge2015 {
	return &Karge2015{materializer: m}
}

func (l *Karge2015) ID() string { return Karge2015ID }

func (l *Karge2015) Load(ctx context.Context) (*dataset.Collection, error) {
	root, err := l.materializer.Ensure(ctx, Karge2015ID)
	if err != nil {
		return nil, err
	}

	databaseRoot := filepath.Join(root, "OFTP_full-sample-package_v2")
	entries, err := os.ReadDir(databaseRoot)
	if err != nil {
		return nil, formatError(Karge2015ID, "OFTP_full-sample-package_v2", "%v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	content := dataset.NewCollection()
	for _, filename := range names {
		vendor, _, _ := strings.Cut(filename, "_")
		if !karge2015Vendors[vendor] {
			continue
		}

		stem := strings.TrimSuffix(filename, filepath.Ext(filename))
		lightType := strings.ReplaceAll(strings.ReplaceAll(
			strings.ReplaceAll(stem, "_v2", ""), "_normalized", ""), "_", " ")
		category := "Raw"
		if strings.Contains(filename, "normalized") {
			category = "Normalised"
		}

		spectra, err := readTransposedSpectralCSV(filepath.Join(databaseRoot, filename))
		if err != nil {
			return nil, formatError(Karge2015ID, filename, "%v", err)
		}

		group, err := content.Sub(lightType)
		if err != nil {
			group = dataset.NewCollection()
			content.Set(lightType, group)
		}
		group.Set(category, spectra)
	}
	return content, nil
}

// readTransposedSpectralCSV parses a spectra-as-rows file: the header
// carries the wavelength axis after its label cell, and each
// following row is a named series. Filler series are dropped.
func readTransposedSpectralCSV(path string) (*dataset.Collection, error) {
	raw, err := readCSVTable(path, ';', 1)
	if err != nil {
		return nil, err
	}
	wavelengths, err := parseFloats(raw.Header[1:])
	if err != nil {
		return nil, err
	}

	spectra := dataset.NewCollection()
	for i, names := range raw.Names {
		name := names[0]
		if karge2015Filler.MatchString(name) {
			continue
		}
		table := &dataset.SpectralTable{
			Name:        name,
			Wavelengths: wavelengths,
			Columns:     [][]float64{raw.Values[i]},
		}
		if err := table.Validate(); err != nil {
			return nil, err
		}
		spectra.Set(name, table)
	}
	return spectra, nil
}
