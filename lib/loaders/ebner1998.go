// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// Ebner1998ID is the Zenodo record of the Ebner and Fairchild (1998)
// "Constant Perceived-Hue Data" dataset.
const Ebner1998ID = "3362536"

// HueMatches holds one reference hue angle's colour matches: the
// adapting white point, the reference colour, and the colours judged
// to match its hue. All tristimulus values are scaled to [0, 1].
type HueMatches struct {
	Name       string         `json:"name"`
	Hue        int            `json:"hue"`
	WhitePoint []float64      `json:"white_point"`
	Reference  []float64      `json:"reference"`
	Matches    dataset.Matrix `json:"matches"`
}

// Ebner1998 loads the constant perceived-hue measurements: a single
// tab-separated file with a white point line followed by one line per
// reference hue angle.
type Ebner1998 struct {
	materializer Materializer
}

func NewEbner1998(m Materializer) *Ebner1998 {
	return &Ebner1998{materializer: m}
}

func (l *Ebner1998) ID() string { return Ebner1998ID }

func (l *Ebner1998) Load(ctx context.Context) (*dataset.Collection, error) {
	root, err := l.materializer.Ensure(ctx, Ebner1998ID)
	if err != nil {
		return nil, err
	}

	const filename = "Ebner_Constant_Hue_Data.txt"
	lines, err := readLines(filepath.Join(root, filename))
	if err != nil {
		return nil, formatError(Ebner1998ID, filename, "%v", err)
	}

	matches := dataset.NewCollection()
	var whitePoint []float64
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "White Point"):
			_, data, _ := strings.Cut(line, ":")
			triples, err := parseTriples(data)
			if err != nil || len(triples) != 1 {
				return nil, formatError(Ebner1998ID, filename, "white point %q: %v", data, err)
			}
			whitePoint = triples[0]
		case strings.HasPrefix(line, "reference hue "):
			rest := strings.TrimPrefix(line, "reference hue ")
			attribute, data, ok := strings.Cut(rest, "\t")
			if !ok {
				return nil, formatError(Ebner1998ID, filename, "hue line %q has no values", line)
			}
			hue, err := strconv.Atoi(attribute)
			if err != nil {
				return nil, formatError(Ebner1998ID, filename, "hue angle %q: %v", attribute, err)
			}
			triples, err := parseTriples(data)
			if err != nil || len(triples) < 2 {
				return nil, formatError(Ebner1998ID, filename, "hue %d values: %v", hue, err)
			}
			if whitePoint == nil {
				return nil, formatError(Ebner1998ID, filename, "hue %d precedes the white point", hue)
			}
			matches.Set(strconv.Itoa(hue), &HueMatches{
				Name:       fmt.Sprintf("Reference Hue Angle - %d", hue),
				Hue:        hue,
				WhitePoint: whitePoint,
				Reference:  triples[0],
				Matches:    dataset.Matrix(triples[1:]),
			})
		}
	}

	content := dataset.NewCollection()
	content.Set("Constant Perceived-Hue Data", matches)
	return content, nil
}

// parseTriples splits tab-separated values, scales them to [0, 1] and
// groups them as XYZ triples.
func parseTriples(data string) ([][]float64, error) {
	var fields []string
	for _, field := range strings.Split(data, "\t") {
		if field = strings.TrimSpace(field); field != "" {
			fields = append(fields, field)
		}
	}
	values, err := parseFloats(fields)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 || len(values)%3 != 0 {
		return nil, fmt.Errorf("%d values do not form XYZ triples", len(values))
	}
	triples := make([][]float64, 0, len(values)/3)
	for i := 0; i < len(values); i += 3 {
		triples = append(triples, []float64{
			values[i] / 100, values[i+1] / 100, values[i+2] / 100,
		})
	}
	return triples, nil
}
