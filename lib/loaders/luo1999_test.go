// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"math"
	"testing"
)

const luo1999Phase = "95.05 100.00 108.88 109.85 100.00 35.58\n" +
	"2\n" +
	"41.2 38.6 25.3 44.0 40.1 20.2\n" +
	"19.7 15.3 8.1 21.5 16.0 6.4\n"

func luo1999Fixture(t *testing.T) *fakeMaterializer {
	t.Helper()
	materializer, root := newFakeMaterializer(t, Luo1999ID)
	for _, experiment := range luo1999Experiments {
		for _, filename := range experiment.files {
			writeFixture(t, root, filename, luo1999Phase)
		}
	}
	return materializer
}

func TestLuo1999Load(t *testing.T) {
	content, err := NewLuo1999(luo1999Fixture(t)).Load(context.Background())
	if err != nil {
		t.Fatalf("loading: %v", err)
	}

	if content.Len() != 33 {
		t.Fatalf("got %d phases, want 33", content.Len())
	}
	keys := content.Keys()
	if keys[0] != "CSAJ-C - da" {
		t.Errorf("first phase: got %q", keys[0])
	}

	value, ok := content.Get("Breneman-L - p7")
	if !ok {
		t.Fatalf("got phases %v", keys)
	}
	phase := value.(*CorrespondingColours)
	if !almostEqual(phase.ReferenceWhite[2], 1.0888) {
		t.Errorf("reference white Z: got %v, want 1.0888", phase.ReferenceWhite[2])
	}
	if len(phase.Reference) != 2 || len(phase.Test) != 2 {
		t.Fatalf("got %d reference and %d test samples", len(phase.Reference), len(phase.Test))
	}
	if !almostEqual(phase.Test[1][0], 0.215) {
		t.Errorf("test X: got %v, want 0.215", phase.Test[1][0])
	}

	// Breneman-L publishes asymmetric illuminances; p7 is the second
	// phase at 850 and 11100 lux.
	if !almostEqual(phase.ReferenceLuminance, 850*math.Pi) {
		t.Errorf("reference luminance: got %v, want %v", phase.ReferenceLuminance, 850*math.Pi)
	}
	if !almostEqual(phase.TestLuminance, 11100*math.Pi) {
		t.Errorf("test luminance: got %v, want %v", phase.TestLuminance, 11100*math.Pi)
	}
	if phase.Metadata.Method != "Haploscopic" || phase.Metadata.Samples != 36 {
		t.Errorf("metadata: %+v", phase.Metadata)
	}
}

func TestLuo1999MissingFile(t *testing.T) {
	materializer, root := newFakeMaterializer(t, Luo1999ID)
	writeFixture(t, root, "CSAJ.da.dat", luo1999Phase)

	if _, err := NewLuo1999(materializer).Load(context.Background()); err == nil {
		t.Fatal("want an error for missing data files")
	}
}
