// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"testing"
)

const ampasCameraFixture = `{
    "header": {
        "schema_version": "1.0",
        "manufacturer": "Aardvark",
        "model": "Artisan"
    },
    "spectral_data": {
        "units": "relative",
        "reflection_geometry": "other",
        "bandwidth_FWHM": 5.0,
        "bandwidth_corrected": true,
        "index": {"main": ["R", "G", "B"]},
        "data": {"main": {
            "400": [0.1, 0.2, 0.3],
            "410": [0.4, 0.5, 0.6],
            "390": [0.01, 0.02, 0.03]
        }}
    }
}`

const ampasIlluminantFixture = `{
    "header": {"illuminant": "iso7589"},
    "spectral_data": {
        "units": "relative",
        "index": {"main": []},
        "data": {"main": {
            "400": [0.5],
            "410": [0.6]
        }}
    }
}`

func TestDyer2017Load(t *testing.T) {
	materializer, root := newFakeMaterializer(t, Dyer2017ID)
	writeFixture(t, root, "data/camera/aardvark.json", ampasCameraFixture)
	writeFixture(t, root, "data/illuminant/iso7589.json", ampasIlluminantFixture)

	content, err := NewDyer2017(materializer).Load(context.Background())
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	keys := content.Keys()
	want := []string{"camera", "cmf", "illuminant", "training"}
	for i, key := range keys {
		if key != want[i] {
			t.Fatalf("got groups %v, want %v", keys, want)
		}
	}

	cameras := mustSub(t, content, "camera")
	value, ok := cameras.Get("Aardvark Artisan")
	if !ok {
		t.Fatalf("got cameras %v", cameras.Keys())
	}
	document := value.(*AMPASDocument)
	if document.Units != "relative" || document.BandwidthFWHM != 5.0 || !document.BandwidthCorrected {
		t.Errorf("spectral data attributes not carried: %+v", document)
	}

	// Wavelength keys sort numerically regardless of JSON order.
	table := document.Table
	if len(table.Wavelengths) != 3 || table.Wavelengths[0] != 390 {
		t.Fatalf("got axis %v", table.Wavelengths)
	}
	if !almostEqual(table.Columns[1][2], 0.5) {
		t.Errorf("G at 410nm: got %v, want 0.5", table.Columns[1][2])
	}
	if len(table.Columns) != 3 || table.Labels[2] != "B" {
		t.Errorf("channels: %v", table.Labels)
	}

	illuminants := mustSub(t, content, "illuminant")
	value, ok = illuminants.Get("iso7589")
	if !ok {
		t.Fatalf("got illuminants %v", illuminants.Keys())
	}
	if document := value.(*AMPASDocument); len(document.Table.Columns) != 1 {
		t.Errorf("illuminant has %d columns, want 1", len(document.Table.Columns))
	}
}

func TestWinquist2022Load(t *testing.T) {
	materializer, root := newFakeMaterializer(t, Winquist2022ID)
	writeFixture(t, root, "aardvark.json", ampasCameraFixture)

	content, err := NewWinquist2022(materializer).Load(context.Background())
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if keys := content.Keys(); len(keys) != 1 || keys[0] != "Aardvark Artisan" {
		t.Fatalf("got keys %v", keys)
	}
}

func TestAMPASRejectsTruncatedChannels(t *testing.T) {
	materializer, root := newFakeMaterializer(t, Winquist2022ID)
	writeFixture(t, root, "bad.json", `{
        "header": {"model": "X"},
        "spectral_data": {
            "index": {"main": ["R", "G", "B"]},
            "data": {"main": {"400": [0.1]}}
        }
    }`)

	if _, err := NewWinquist2022(materializer).Load(context.Background()); err == nil {
		t.Fatal("want an error for truncated channel data")
	}
}
