// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// AMPASDocument is a parsed A.M.P.A.S. spectral data JSON file, the
// format the RAW to ACES utilities publish camera sensitivities,
// colour matching functions and illuminants in.
type AMPASDocument struct {
	Name                 string                `json:"name"`
	Header               map[string]any        `json:"header"`
	Units                string                `json:"units"`
	ReflectionGeometry   string                `json:"reflection_geometry"`
	TransmissionGeometry string                `json:"transmission_geometry"`
	BandwidthFWHM        float64               `json:"bandwidth_fwhm"`
	BandwidthCorrected   bool                  `json:"bandwidth_corrected"`
	Table                *dataset.SpectralTable `json:"table"`
}

// ampasFile mirrors the JSON layout. data.main maps a stringified
// wavelength to the value of each indexed channel at that wavelength.
type ampasFile struct {
	Header       map[string]any `json:"header"`
	SpectralData struct {
		Units                string `json:"units"`
		ReflectionGeometry   string `json:"reflection_geometry"`
		TransmissionGeometry string `json:"transmission_geometry"`
		BandwidthFWHM        float64 `json:"bandwidth_FWHM"`
		BandwidthCorrected   bool    `json:"bandwidth_corrected"`
		Index                struct {
			Main []string `json:"main"`
		} `json:"index"`
		Data struct {
			Main map[string][]float64 `json:"main"`
		} `json:"data"`
	} `json:"spectral_data"`
}

// readAMPAS parses path. Multi-channel documents label one column per
// index entry; single-distribution documents (multi false) keep only
// the first value at each wavelength.
func readAMPAS(path string, multi bool) (*AMPASDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file ampasFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	data := file.SpectralData.Data.Main
	if len(data) == 0 {
		return nil, fmt.Errorf("%s has no spectral data", path)
	}

	wavelengths := make([]float64, 0, len(data))
	for key := range data {
		w, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: wavelength %q: %w", path, key, err)
		}
		wavelengths = append(wavelengths, w)
	}
	sort.Float64s(wavelengths)

	columns := 1
	var labels []string
	if multi {
		labels = file.SpectralData.Index.Main
		if len(labels) == 0 {
			return nil, fmt.Errorf("%s has no channel index", path)
		}
		columns = len(labels)
	}

	table := &dataset.SpectralTable{
		Wavelengths: wavelengths,
		Columns:     make([][]float64, columns),
		Labels:      labels,
	}
	for _, w := range wavelengths {
		values := data[strconv.FormatFloat(w, 'f', -1, 64)]
		if values == nil {
			// The file may spell the wavelength with a decimal point.
			values = data[strconv.FormatFloat(w, 'f', 1, 64)]
		}
		if len(values) < columns {
			return nil, fmt.Errorf("%s: wavelength %v has %d values, want %d",
				path, w, len(values), columns)
		}
		for c := 0; c < columns; c++ {
			table.Columns[c] = append(table.Columns[c], values[c])
		}
	}

	document := &AMPASDocument{
		Header:               file.Header,
		Units:                file.SpectralData.Units,
		ReflectionGeometry:   file.SpectralData.ReflectionGeometry,
		TransmissionGeometry: file.SpectralData.TransmissionGeometry,
		BandwidthFWHM:        file.SpectralData.BandwidthFWHM,
		BandwidthCorrected:   file.SpectralData.BandwidthCorrected,
		Table:                table,
	}
	document.Name = ampasName(file.Header)
	document.Table.Name = document.Name
	return document, nil
}

// ampasName derives the document name: manufacturer and model when
// both are present, then illuminant, then type.
func ampasName(header map[string]any) string {
	asString := func(key string) (string, bool) {
		value, ok := header[key].(string)
		return value, ok && value != ""
	}
	if manufacturer, ok := asString("manufacturer"); ok {
		if model, ok := asString("model"); ok {
			return manufacturer + " " + model
		}
	}
	if illuminant, ok := asString("illuminant"); ok {
		return illuminant
	}
	if kind, ok := asString("type"); ok {
		return kind
	}
	return ""
}
