// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// Jakob2019ID is the Zenodo record of the Jakob and Hanika (2019)
// "Spectral Upsampling Coefficient Tables" dataset.
const Jakob2019ID = "4050598"

// CoefficientsLUT is a parsed spectral upsampling coefficient table.
// Coefficients hold three polynomial coefficients for every node of a
// 3 x Resolution^3 grid, flattened in file order.
type CoefficientsLUT struct {
	Name         string    `json:"name"`
	Resolution   int       `json:"resolution"`
	Scale        []float64 `json:"scale"`
	Coefficients []float64 `json:"coefficients"`
}

// jakob2019Colourspaces maps coefficient file stems to the RGB
// colourspace names the tables were fitted for.
var jakob2019Colourspaces = map[string]string{
	"rec2020":     "ITU-R BT.2020",
	"srgb":        "sRGB",
	"aces2065_1":  "ACES2065-1",
	"prophotorgb": "ProPhoto RGB",
}

// Jakob2019 loads the binary .coeff tables from the dataset
// supplement, keyed by colourspace name.
type Jakob2019 struct {
	materializer Materializer
}

func NewJakob2019(m Materializer) *Jakob2019 {
	return &Jakob2019{materializer: m}
}

func (l *Jakob2019) ID() string { return Jakob2019ID }

func (l *Jakob2019) Load(ctx context.Context) (*dataset.Collection, error) {
	root, err := l.materializer.Ensure(ctx, Jakob2019ID)
	if err != nil {
		return nil, err
	}

	pattern := filepath.Join(root, "Jakob2019Spectral", "supplement", "tables", "*.coeff")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, formatError(Jakob2019ID, "tables", "no .coeff files")
	}

	content := dataset.NewCollection()
	for _, path := range paths {
		filename := filepath.Base(path)
		key := strings.TrimSuffix(filename, ".coeff")
		if colourspace, ok := jakob2019Colourspaces[key]; ok {
			key = colourspace
		}
		lut, err := readCoefficientsLUT(path, key)
		if err != nil {
			return nil, formatError(Jakob2019ID, filename, "%v", err)
		}
		content.Set(key, lut)
	}
	return content, nil
}

// readCoefficientsLUT parses the binary coefficient table layout: a
// "SPEC" magic, a little-endian int32 resolution, Resolution float32
// scale values, then 3*Resolution^3 nodes of 3 float32 coefficients.
func readCoefficientsLUT(path, name string) (*CoefficientsLUT, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	reader := bufio.NewReader(file)

	var magic [4]byte
	if _, err := io.ReadFull(reader, magic[:]); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic[:]) != "SPEC" {
		return nil, fmt.Errorf("bad magic %q, want \"SPEC\"", magic[:])
	}

	var resolution int32
	if err := binary.Read(reader, binary.LittleEndian, &resolution); err != nil {
		return nil, fmt.Errorf("reading resolution: %w", err)
	}
	if resolution <= 0 || resolution > 4096 {
		return nil, fmt.Errorf("implausible resolution %d", resolution)
	}
	res := int(resolution)

	scale, err := readFloat32s(reader, res)
	if err != nil {
		return nil, fmt.Errorf("reading scale: %w", err)
	}
	coefficients, err := readFloat32s(reader, 3*res*res*res*3)
	if err != nil {
		return nil, fmt.Errorf("reading coefficients: %w", err)
	}

	return &CoefficientsLUT{
		Name:         name,
		Resolution:   res,
		Scale:        scale,
		Coefficients: coefficients,
	}, nil
}

func readFloat32s(reader io.Reader, n int) ([]float64, error) {
	raw := make([]float32, n)
	if err := binary.Read(reader, binary.LittleEndian, raw); err != nil {
		return nil, err
	}
	values := make([]float64, n)
	for i, v := range raw {
		values[i] = float64(v)
	}
	return values, nil
}
