// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// XRite2016ID is the Zenodo record of the X-Rite (2016) "New Color
// Specifications for ColorChecker SG and Classic Charts" dataset.
const XRite2016ID = "3245895"

// XRite2016 loads the four ColorChecker chart specifications. Each
// chart is a CGATS text file whose samples are listed row-major;
// published chart references enumerate patches column-major, so the
// grid is transposed before flattening.
type XRite2016 struct {
	materializer Materializer
}

func NewXRite2016(m Materializer) *XRite2016 {
	return &XRite2016{materializer: m}
}

func (l *XRite2016) ID() string { return XRite2016ID }

func (l *XRite2016) Load(ctx context.Context) (*dataset.Collection, error) {
	root, err := l.materializer.Ensure(ctx, XRite2016ID)
	if err != nil {
		return nil, err
	}

	keys := []string{
		"ColorChecker24 - After November 2014",
		"ColorChecker24 - Before November 2014",
		"ColorCheckerSG - After November 2014",
		"ColorCheckerSG - Before November 2014",
	}
	filenames := []string{
		"ColorChecker24_After_Nov2014.txt",
		"ColorChecker24_Before_Nov2014.txt",
		"ColorCheckerSG_After_Nov2014.txt",
		"ColorCheckerSG_Before_Nov2014.txt",
	}

	content := dataset.NewCollection()
	for i, key := range keys {
		filename := filenames[i]
		directory := strings.TrimSuffix(filename, filepath.Ext(filename))
		path := filepath.Join(root, directory, filename)

		chart, err := l.parseChart(path, filename)
		if err != nil {
			return nil, err
		}
		content.Set(key, chart)
	}
	return content, nil
}

// parseChart reads the BEGIN_DATA/END_DATA block of a CGATS chart
// file and returns its samples in column-major chart order.
func (l *XRite2016) parseChart(path, filename string) (*dataset.Table, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, formatError(XRite2016ID, filename, "%v", err)
	}

	type sample struct {
		name string
		lab  []float64
	}
	var samples []sample
	inData := false
	for _, line := range lines {
		if line == "END_DATA" {
			inData = false
		}
		if inData {
			tokens := strings.Fields(line)
			if len(tokens) < 4 {
				return nil, formatError(XRite2016ID, filename,
					"sample line %q has %d fields, want at least 4", line, len(tokens))
			}
			lab, err := parseFloats(tokens[1:4])
			if err != nil {
				return nil, formatError(XRite2016ID, filename, "sample %q: %v", tokens[0], err)
			}
			samples = append(samples, sample{name: tokens[0], lab: lab})
		}
		if line == "BEGIN_DATA" {
			inData = true
		}
	}

	rows, columns := 14, 10
	if len(samples) == 24 {
		rows, columns = 6, 4
	}
	if len(samples) != rows*columns {
		return nil, formatError(XRite2016ID, filename,
			"%d samples do not fill a %dx%d chart", len(samples), rows, columns)
	}

	table := &dataset.Table{
		Header:      []string{"SAMPLE_NAME", "LAB_L", "LAB_A", "LAB_B"},
		NameColumns: 1,
	}
	for c := 0; c < columns; c++ {
		for r := 0; r < rows; r++ {
			s := samples[r*columns+c]
			table.Names = append(table.Names, []string{s.name})
			table.Values = append(table.Values, s.lab)
		}
	}
	return table, nil
}
