// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"path/filepath"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// Hung1995ID is the Zenodo record of the Hung and Berns (1995)
// "Determination of Constant Hue Loci for a CRT Gamut" dataset.
const Hung1995ID = "3367463"

// hung1995Hues orders the twelve reference hues around the circle.
var hung1995Hues = []string{
	"Red", "Red-yellow", "Yellow", "Yellow-green",
	"Green", "Green-cyan", "Cyan", "Cyan-blue",
	"Blue", "Blue-magenta", "Magenta", "Magenta-red",
}

// HueLoci holds one reference hue's constant hue locus for a single
// experiment: the reference colour and the matched colours at each
// chroma level, with the published C*uv per match. Values are scaled
// to [0, 1].
type HueLoci struct {
	Name      string         `json:"name"`
	Reference []float64      `json:"reference"`
	Matches   dataset.Matrix `json:"matches"`
	ChromaUV  []float64      `json:"chroma_uv"`
}

// Hung1995 loads the four published tables and derives the per-hue
// constant hue loci for the constant-luminance (CL) and
// varying-luminance (VL) experiments.
type Hung1995 struct {
	materializer Materializer
}

func NewHung1995(m Materializer) *Hung1995 {
	return &Hung1995{materializer: m}
}

func (l *Hung1995) ID() string { return Hung1995ID }

func (l *Hung1995) Load(ctx context.Context) (*dataset.Collection, error) {
	root, err := l.materializer.Ensure(ctx, Hung1995ID)
	if err != nil {
		return nil, err
	}

	content := dataset.NewCollection()
	tables := make(map[string]*dataset.Table, 4)
	for _, filename := range []string{"Table I.csv", "Table II.csv", "Table III.csv", "Table IV.csv"} {
		table, err := readCSVTable(filepath.Join(root, filename), ',', 1)
		if err != nil {
			return nil, formatError(Hung1995ID, filename, "%v", err)
		}
		key := filename[:len(filename)-len(".csv")]
		tables[key] = table
		content.Set(key, table)
	}

	for _, experiment := range []struct {
		table string
		key   string
	}{
		{"Table III", "Constant Hue Loci Data - CL"},
		{"Table IV", "Constant Hue Loci Data - VL"},
	} {
		loci := dataset.NewCollection()
		for _, hue := range hung1995Hues {
			entry, err := l.lociForHue(tables, experiment.table, hue)
			if err != nil {
				return nil, err
			}
			loci.Set(hue, entry)
		}
		content.Set(experiment.key, loci)
	}
	return content, nil
}

// lociForHue assembles one hue's locus: the reference colour from
// Table I and every row of the experiment table naming that hue.
func (l *Hung1995) lociForHue(tables map[string]*dataset.Table, table, hue string) (*HueLoci, error) {
	var reference []float64
	for i, names := range tables["Table I"].Names {
		if names[0] == hue {
			row := tables["Table I"].Values[i]
			if len(row) < 3 {
				return nil, formatError(Hung1995ID, "Table I.csv",
					"reference row for %q has %d values, want at least 3", hue, len(row))
			}
			reference = []float64{row[0] / 100, row[1] / 100, row[2] / 100}
			break
		}
	}
	if reference == nil {
		return nil, formatError(Hung1995ID, "Table I.csv", "no reference colour for hue %q", hue)
	}

	entry := &HueLoci{Name: hue, Reference: reference}
	source := tables[table]
	for i, names := range source.Names {
		if names[0] != hue {
			continue
		}
		row := source.Values[i]
		if len(row) < 2 {
			return nil, formatError(Hung1995ID, table+".csv",
				"row for %q has %d values, want at least 2", hue, len(row))
		}
		entry.ChromaUV = append(entry.ChromaUV, row[0])
		match := make([]float64, len(row)-1)
		for j, value := range row[1:] {
			match[j] = value / 100
		}
		entry.Matches = append(entry.Matches, match)
	}
	if len(entry.Matches) == 0 {
		return nil, formatError(Hung1995ID, table+".csv", "no matches for hue %q", hue)
	}
	return entry, nil
}
