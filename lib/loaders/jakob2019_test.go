// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func coeffFixture(t *testing.T, resolution int32) []byte {
	t.Helper()
	var buffer bytes.Buffer
	buffer.WriteString("SPEC")
	if err := binary.Write(&buffer, binary.LittleEndian, resolution); err != nil {
		t.Fatalf("writing resolution: %v", err)
	}
	res := int(resolution)
	scale := make([]float32, res)
	for i := range scale {
		scale[i] = float32(i) / float32(res)
	}
	coefficients := make([]float32, 3*res*res*res*3)
	for i := range coefficients {
		coefficients[i] = float32(i)
	}
	if err := binary.Write(&buffer, binary.LittleEndian, scale); err != nil {
		t.Fatalf("writing scale: %v", err)
	}
	if err := binary.Write(&buffer, binary.LittleEndian, coefficients); err != nil {
		t.Fatalf("writing coefficients: %v", err)
	}
	return buffer.Bytes()
}

func TestJakob2019Load(t *testing.T) {
	materializer, root := newFakeMaterializer(t, Jakob2019ID)
	tables := filepath.Join(root, "Jakob2019Spectral", "supplement", "tables")
	if err := os.MkdirAll(tables, 0o755); err != nil {
		t.Fatalf("creating tables directory: %v", err)
	}
	for _, stem := range []string{"srgb", "rec2020", "custom"} {
		path := filepath.Join(tables, stem+".coeff")
		if err := os.WriteFile(path, coeffFixture(t, 4), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}

	content, err := NewJakob2019(materializer).Load(context.Background())
	if err != nil {
		t.Fatalf("loading: %v", err)
	}

	// Paths glob in sorted order; known stems map to colourspace names.
	keys := content.Keys()
	want := []string{"custom", "ITU-R BT.2020", "sRGB"}
	if len(keys) != len(want) {
		t.Fatalf("got keys %v, want %v", keys, want)
	}
	for i, key := range keys {
		if key != want[i] {
			t.Errorf("key %d: got %q, want %q", i, key, want[i])
		}
	}

	value, _ := content.Get("sRGB")
	lut := value.(*CoefficientsLUT)
	if lut.Resolution != 4 {
		t.Fatalf("resolution: got %d, want 4", lut.Resolution)
	}
	if len(lut.Scale) != 4 || len(lut.Coefficients) != 3*4*4*4*3 {
		t.Fatalf("got %d scale and %d coefficient values", len(lut.Scale), len(lut.Coefficients))
	}
	if !almostEqual(lut.Coefficients[5], 5) {
		t.Errorf("coefficient 5: got %v", lut.Coefficients[5])
	}
}

func TestJakob2019BadMagic(t *testing.T) {
	materializer, root := newFakeMaterializer(t, Jakob2019ID)
	writeFixture(t, root, "Jakob2019Spectral/supplement/tables/srgb.coeff", "NOPE")

	if _, err := NewJakob2019(materializer).Load(context.Background()); err == nil {
		t.Fatal("want an error for a bad magic")
	}
}
