// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"testing"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

func TestKarge2015Load(t *testing.T) {
	materializer, root := newFakeMaterializer(t, Karge2015ID)
	const raw = "name;380;385;390\nspot;0.1;0.2;0.3\nf1;9;9;9\nflood;0.4;0.5;0.6\n"
	const normalised = "name;380;385;390\nspot;1.0;1.0;1.0\n"
	writeFixture(t, root, "OFTP_full-sample-package_v2/Arri_HMI_v2.csv", raw)
	writeFixture(t, root, "OFTP_full-sample-package_v2/Arri_HMI_normalized_v2.csv", normalised)
	writeFixture(t, root, "OFTP_full-sample-package_v2/README.txt", "ignored")

	content, err := NewKarge2015(materializer).Load(context.Background())
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if keys := content.Keys(); len(keys) != 1 || keys[0] != "Arri HMI" {
		t.Fatalf("got light types %v", keys)
	}

	group := mustSub(t, content, "Arri HMI")
	keys := group.Keys()
	if len(keys) != 2 {
		t.Fatalf("got categories %v", keys)
	}

	rawSpectra := mustSub(t, group, "Raw")
	if keys := rawSpectra.Keys(); len(keys) != 2 || keys[0] != "spot" || keys[1] != "flood" {
		t.Fatalf("filler series not dropped: %v", keys)
	}

	value, _ := rawSpectra.Get("flood")
	table := value.(*dataset.SpectralTable)
	if len(table.Wavelengths) != 3 || table.Wavelengths[2] != 390 {
		t.Fatalf("got axis %v", table.Wavelengths)
	}
	if !almostEqual(table.Columns[0][1], 0.5) {
		t.Errorf("flood at 385nm: got %v, want 0.5", table.Columns[0][1])
	}

	if _, err := group.Sub("Normalised"); err != nil {
		t.Errorf("missing Normalised category: %v", err)
	}
}

func TestKarge2015MissingDatabase(t *testing.T) {
	materializer, _ := newFakeMaterializer(t, Karge2015ID)

	_, err := NewKarge2015(materializer).Load(context.Background())
	var formatErr *dataset.FormatError
	if !asFormatError(err, &formatErr) {
		t.Fatalf("got %v, want a FormatError", err)
	}
}
