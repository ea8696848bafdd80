// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// Luo1999ID is the Zenodo record of the Luo and Rhodes (1999)
// "Corresponding-Colour Datasets" dataset.
const Luo1999ID = "3270903"

// CorrespondingColours holds one experimental phase: the reference
// and test adapting whites, the corresponding colour pairs, and the
// published viewing conditions. Tristimulus values are scaled to
// [0, 1]; luminances are in cd/m2, converted from the published
// illuminance figures.
type CorrespondingColours struct {
	Name                string             `json:"name"`
	ReferenceWhite      []float64          `json:"reference_white"`
	TestWhite           []float64          `json:"test_white"`
	Reference           dataset.Matrix     `json:"reference"`
	Test                dataset.Matrix     `json:"test"`
	ReferenceLuminance  float64            `json:"reference_luminance"`
	TestLuminance       float64            `json:"test_luminance"`
	ReferenceBackground float64            `json:"reference_background"`
	TestBackground      float64            `json:"test_background"`
	Metadata            Luo1999Conditions  `json:"metadata"`
}

// Luo1999Conditions records the experiment description published
// alongside each group of phases.
type Luo1999Conditions struct {
	Phases              int        `json:"phases"`
	Samples             int        `json:"samples"`
	TestIlluminant      string     `json:"test_illuminant"`
	ReferenceIlluminant string     `json:"reference_illuminant"`
	Illuminance         [2]float64 `json:"illuminance_lux"`
	Background          [2]float64 `json:"background_percent"`
	SampleSize          string     `json:"sample_size"`
	Medium              string     `json:"medium"`
	Method              string     `json:"method"`
}

// luo1999Experiment is one published experiment group: its data files
// and the per-phase viewing conditions.
type luo1999Experiment struct {
	key            string
	files          []string
	phases         int
	samples        int
	testIlluminant string
	refIlluminant  string
	illuminance    [][2]float64
	background     [][2]float64
	sampleSize     string
	medium         string
	method         string
}

func pairs(value float64, n int) [][2]float64 {
	out := make([][2]float64, n)
	for i := range out {
		out[i] = [2]float64{value, value}
	}
	return out
}

func levelPairs(levels ...float64) [][2]float64 {
	out := make([][2]float64, len(levels))
	for i, level := range levels {
		out[i] = [2]float64{level, level}
	}
	return out
}

// luo1999Experiments reproduces the experiment descriptions from Luo
// and Rhodes (1999), in publication order.
var luo1999Experiments = []luo1999Experiment{
	{
		key: "CSAJ-C", files: []string{"CSAJ.da.dat"},
		phases: 1, samples: 87, testIlluminant: "D65", refIlluminant: "A",
		illuminance: pairs(1000, 1), background: pairs(20, 1),
		sampleSize: "S", medium: "Refl.", method: "Haploscopic",
	},
	{
		key:    "CSAJ-Hunt",
		files:  []string{"CSAJ.10.dat", "CSAJ.50.dat", "CSAJ.1000.dat", "CSAJ.3000.dat"},
		phases: 4, samples: 20, testIlluminant: "D65", refIlluminant: "D65",
		illuminance: levelPairs(10, 50, 1000, 3000), background: pairs(20, 4),
		sampleSize: "S", medium: "Refl.", method: "Haploscopic",
	},
	{
		key:    "CSAJ-Stevens",
		files:  []string{"Steve.10.dat", "Steve.50.dat", "Steve.1000.dat", "Steve.3000.dat"},
		phases: 4, samples: 19, testIlluminant: "D65", refIlluminant: "D65",
		illuminance: levelPairs(10, 50, 1000, 3000), background: pairs(20, 4),
		sampleSize: "S", medium: "Refl.", method: "Haploscopic",
	},
	{
		key: "Helson", files: []string{"helson.ca.dat"},
		phases: 1, samples: 59, testIlluminant: "D65", refIlluminant: "A",
		illuminance: pairs(1000, 1), background: pairs(20, 1),
		sampleSize: "S", medium: "Refl.", method: "Memory",
	},
	{
		key: "Lam & Rigg", files: []string{"lam.da.dat"},
		phases: 1, samples: 58, testIlluminant: "D65", refIlluminant: "A",
		illuminance: pairs(1000, 1), background: pairs(20, 1),
		sampleSize: "L", medium: "Refl.", method: "Memory",
	},
	{
		key: "Lutchi (A)", files: []string{"lutchi.da.dat"},
		phases: 1, samples: 43, testIlluminant: "D65", refIlluminant: "A",
		illuminance: pairs(1000, 1), background: pairs(20, 1),
		sampleSize: "S", medium: "Refl.", method: "Magnitude",
	},
	{
		key: "Lutchi (D50)", files: []string{"lutchi.dd.dat"},
		phases: 1, samples: 44, testIlluminant: "D65", refIlluminant: "D50",
		illuminance: pairs(1000, 1), background: pairs(20, 1),
		sampleSize: "S", medium: "Refl.", method: "Magnitude",
	},
	{
		key: "Lutchi (WF)", files: []string{"lutchi.dw.dat"},
		phases: 1, samples: 41, testIlluminant: "D65", refIlluminant: "WF",
		illuminance: pairs(1000, 1), background: pairs(20, 1),
		sampleSize: "S", medium: "Refl.", method: "Magnitude",
	},
	{
		key: "Kuo & Luo (A)", files: []string{"Kuo.da.dat"},
		phases: 1, samples: 40, testIlluminant: "D65", refIlluminant: "A",
		illuminance: pairs(1000, 1), background: pairs(20, 1),
		sampleSize: "L", medium: "Refl.", method: "Magnitude",
	},
	{
		key: "Kuo & Luo (TL84)", files: []string{"Kuo.dt.dat"},
		phases: 1, samples: 41, testIlluminant: "D65", refIlluminant: "TL84",
		illuminance: pairs(1000, 1), background: pairs(20, 1),
		sampleSize: "S", medium: "Refl.", method: "Magnitude",
	},
	{
		key: "Breneman-C",
		files: []string{
			"Brene.p1.dat", "Brene.p2.dat", "Brene.p3.dat", "Brene.p4.dat",
			"Brene.p6.dat", "Brene.p8.dat", "Brene.p9.dat", "Brene.p11.dat",
			"Brene.p12.dat",
		},
		phases: 9, samples: 107, testIlluminant: "D65, 55", refIlluminant: "A, P, G",
		illuminance: levelPairs(1500, 1500, 75, 75, 11100, 350, 15, 1560, 75),
		background:  pairs(30, 9),
		sampleSize:  "S", medium: "Trans.", method: "Magnitude",
	},
	{
		key:    "Breneman-L",
		files:  []string{"Brene.p5.dat", "Brene.p7.dat", "Brene.p10.dat"},
		phases: 3, samples: 36, testIlluminant: "D55", refIlluminant: "D55",
		illuminance: [][2]float64{{130, 2120}, {850, 11100}, {15, 270}},
		background:  pairs(30, 3),
		sampleSize:  "S", medium: "Trans.", method: "Haploscopic",
	},
	{
		key:    "Braun & Fairchild",
		files:  []string{"RIT.1.dat", "RIT.2.dat", "RIT.3.dat", "RIT.4.dat"},
		phases: 4, samples: 66, testIlluminant: "D65", refIlluminant: "D30, 65, 95",
		illuminance: pairs(129, 4), background: pairs(20, 4),
		sampleSize: "S", medium: "Mon., Refl.", method: "Matching",
	},
	{
		key: "McCann",
		files: []string{
			"mcan.b.dat", "mcan.g.dat", "mcan.grey.dat", "mcan.r.dat", "mcan.y.dat",
		},
		phases: 5, samples: 85, testIlluminant: "D65", refIlluminant: "R, Y, G, B",
		illuminance: pairs(27, 5), background: pairs(30, 5),
		sampleSize: "S", medium: "Refl.", method: "Haploscopic",
	},
}

// Luo1999 loads the corresponding-colour data files. Each phase is
// keyed "<experiment> - <file tag>", the tag being the middle segment
// of the data file's name.
type Luo1999 struct {
	materializer Materializer
}

func NewLuo1999(m Materializer) *Luo1999 {
	return &Luo1999{materializer: m}
}

func (l *Luo1999) ID() string { return Luo1999ID }

func (l *Luo1999) Load(ctx context.Context) (*dataset.Collection, error) {
	root, err := l.materializer.Ensure(ctx, Luo1999ID)
	if err != nil {
		return nil, err
	}

	content := dataset.NewCollection()
	for _, experiment := range luo1999Experiments {
		for i, filename := range experiment.files {
			phase, err := l.parsePhase(filepath.Join(root, filename), filename)
			if err != nil {
				return nil, err
			}

			tag := strings.Split(filename, ".")[1]
			phase.Name = fmt.Sprintf("%s - %s", experiment.key, tag)
			phase.ReferenceLuminance = experiment.illuminance[i][0] * math.Pi
			phase.TestLuminance = experiment.illuminance[i][1] * math.Pi
			phase.ReferenceBackground = experiment.background[i][0]
			phase.TestBackground = experiment.background[i][1]
			phase.Metadata = Luo1999Conditions{
				Phases:              experiment.phases,
				Samples:             experiment.samples,
				TestIlluminant:      experiment.testIlluminant,
				ReferenceIlluminant: experiment.refIlluminant,
				Illuminance:         experiment.illuminance[i],
				Background:          experiment.background[i],
				SampleSize:          experiment.sampleSize,
				Medium:              experiment.medium,
				Method:              experiment.method,
			}
			content.Set(phase.Name, phase)
		}
	}
	return content, nil
}

// parsePhase reads one .dat file: the first line carries the
// reference and test whites as six values, single-value separator
// lines are skipped, and every other line is a corresponding pair.
func (l *Luo1999) parsePhase(path, filename string) (*CorrespondingColours, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, formatError(Luo1999ID, filename, "%v", err)
	}

	phase := &CorrespondingColours{}
	for i, line := range lines {
		fields := strings.Fields(line)
		if i == 0 {
			values, err := parseFloats(fields)
			if err != nil || len(values) != 6 {
				return nil, formatError(Luo1999ID, filename, "white point line %q: want 6 values", line)
			}
			phase.ReferenceWhite = scaleDown(values[:3])
			phase.TestWhite = scaleDown(values[3:])
			continue
		}
		if len(fields) == 1 {
			continue
		}
		values, err := parseFloats(fields)
		if err != nil || len(values) != 6 {
			return nil, formatError(Luo1999ID, filename, "sample line %q: want 6 values", line)
		}
		phase.Reference = append(phase.Reference, scaleDown(values[:3]))
		phase.Test = append(phase.Test, scaleDown(values[3:]))
	}
	if phase.ReferenceWhite == nil || len(phase.Reference) == 0 {
		return nil, formatError(Luo1999ID, filename, "no corresponding colour pairs")
	}
	return phase, nil
}

func scaleDown(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, value := range values {
		out[i] = value / 100
	}
	return out
}
