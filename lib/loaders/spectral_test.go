// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

func tabbedValues(values []float64) string {
	fields := make([]string, len(values))
	for i, value := range values {
		fields[i] = fmt.Sprintf("%g", value)
	}
	return strings.Join(fields, "\t")
}

func TestJiang2013Load(t *testing.T) {
	materializer, root := newFakeMaterializer(t, Jiang2013ID)

	channel := func(base float64) []float64 {
		values := make([]float64, 33)
		for i := range values {
			values[i] = base + float64(i)/100
		}
		return values
	}
	var b strings.Builder
	for _, camera := range []string{"canon 5d", "nikon d90"} {
		b.WriteString(camera + "\n")
		for c := 0; c < 3; c++ {
			b.WriteString(tabbedValues(channel(float64(c))) + "\n")
		}
	}
	writeFixture(t, root, "camspec_database.txt", b.String())

	content, err := NewJiang2013(materializer).Load(context.Background())
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if keys := content.Keys(); len(keys) != 2 || keys[0] != "canon 5d" {
		t.Fatalf("got cameras %v", keys)
	}

	value, _ := content.Get("canon 5d")
	table := value.(*dataset.SpectralTable)
	if err := table.Validate(); err != nil {
		t.Fatalf("invalid table: %v", err)
	}
	if len(table.Wavelengths) != 33 || table.Wavelengths[0] != 400 || table.Wavelengths[32] != 720 {
		t.Fatalf("got axis %v", table.Wavelengths)
	}
	if !almostEqual(table.Columns[2][1], 2.01) {
		t.Errorf("B channel at 410nm: got %v, want 2.01", table.Columns[2][1])
	}
}

func TestJiang2013TruncatedCamera(t *testing.T) {
	materializer, root := newFakeMaterializer(t, Jiang2013ID)
	writeFixture(t, root, "camspec_database.txt", "canon 5d\n1.0\t2.0\n")

	_, err := NewJiang2013(materializer).Load(context.Background())
	var formatErr *dataset.FormatError
	if !asFormatError(err, &formatErr) {
		t.Fatalf("got %v, want a FormatError", err)
	}
}

func TestLabsphere2019Load(t *testing.T) {
	materializer, root := newFakeMaterializer(t, Labsphere2019ID)
	writeFixture(t, root, "SRS-99-020.txt",
		"Labsphere SRS-99-020\nWavelength\tReflectance\n250\t0.93\n300\t0.95\n")

	content, err := NewLabsphere2019(materializer).Load(context.Background())
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	value, ok := content.Get("Labsphere SRS-99-020")
	if !ok {
		t.Fatalf("got keys %v", content.Keys())
	}
	table := value.(*dataset.SpectralTable)
	if len(table.Wavelengths) != 2 || table.Wavelengths[1] != 300 {
		t.Fatalf("got axis %v", table.Wavelengths)
	}
	if !almostEqual(table.Columns[0][0], 0.93) {
		t.Errorf("reflectance at 250nm: got %v", table.Columns[0][0])
	}
}

func TestZhao2009Load(t *testing.T) {
	materializer, root := newFakeMaterializer(t, Zhao2009ID)
	for i := 0; i < 12; i++ {
		writeFixture(t, root, fmt.Sprintf("camera_%d.spectra", i),
			fmt.Sprintf("400 0.%d 0.2 0.3\n410 0.15 0.25 0.35\n", i))
	}

	content, err := NewZhao2009(materializer).Load(context.Background())
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	keys := content.Keys()
	if len(keys) != 12 || keys[0] != "SONY DXC 930" || keys[11] != "KODAK DCS 200" {
		t.Fatalf("got cameras %v", keys)
	}

	value, _ := content.Get("NIKON D1X")
	table := value.(*dataset.SpectralTable)
	if !almostEqual(table.Columns[0][0], 0.2) {
		t.Errorf("camera_2 R at 400nm: got %v, want 0.2", table.Columns[0][0])
	}
}

func TestBrendel2020Load(t *testing.T) {
	materializer, root := newFakeMaterializer(t, Brendel2020ID)

	row := func(peak int) string {
		values := make([]string, 176)
		for i := range values {
			values[i] = "0.01"
		}
		values[peak] = "1.0"
		return strings.Join(values, ",")
	}
	writeFixture(t, root, "led_spd_350_700.csv",
		"header\n"+row(0)+"\n"+row(25)+"\n")

	content, err := NewBrendel2020(materializer).Load(context.Background())
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	keys := content.Keys()
	if len(keys) != 2 {
		t.Fatalf("got %d LEDs, want 2", len(keys))
	}
	if keys[0] != "350nm - LED 0 - Brendel (2020)" {
		t.Errorf("got %q", keys[0])
	}
	if keys[1] != "400nm - LED 1 - Brendel (2020)" {
		t.Errorf("got %q", keys[1])
	}
}

func TestBrendel2020ShortRow(t *testing.T) {
	materializer, root := newFakeMaterializer(t, Brendel2020ID)
	writeFixture(t, root, "led_spd_350_700.csv", "header\n0.1,0.2,0.3\n")

	_, err := NewBrendel2020(materializer).Load(context.Background())
	var formatErr *dataset.FormatError
	if !asFormatError(err, &formatErr) {
		t.Fatalf("got %v, want a FormatError", err)
	}
}
