// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func hung1995Fixture(t *testing.T) *fakeMaterializer {
	t.Helper()
	materializer, root := newFakeMaterializer(t, Hung1995ID)

	var tableI strings.Builder
	tableI.WriteString("Color name,x,y,Y\n")
	for i, hue := range hung1995Hues {
		fmt.Fprintf(&tableI, "%s,0.3%d,0.32,30\n", hue, i)
	}
	writeFixture(t, root, "Table I.csv", tableI.String())
	writeFixture(t, root, "Table II.csv",
		"Color name,Intra,Inter\n"+hung1995Hues[0]+",1.0,2.0\n")

	for _, filename := range []string{"Table III.csv", "Table IV.csv"} {
		var table strings.Builder
		table.WriteString("Color name,Cuv,x,y,Y\n")
		for _, hue := range hung1995Hues {
			fmt.Fprintf(&table, "%s,20,0.30,0.31,28\n", hue)
			fmt.Fprintf(&table, "%s,40,0.33,0.34,26\n", hue)
		}
		writeFixture(t, root, filename, table.String())
	}
	return materializer
}

func TestHung1995Load(t *testing.T) {
	content, err := NewHung1995(hung1995Fixture(t)).Load(context.Background())
	if err != nil {
		t.Fatalf("loading: %v", err)
	}

	want := []string{
		"Table I", "Table II", "Table III", "Table IV",
		"Constant Hue Loci Data - CL", "Constant Hue Loci Data - VL",
	}
	keys := content.Keys()
	if len(keys) != len(want) {
		t.Fatalf("got keys %v, want %v", keys, want)
	}
	for i, key := range keys {
		if key != want[i] {
			t.Errorf("key %d: got %q, want %q", i, key, want[i])
		}
	}

	loci := mustSub(t, content, "Constant Hue Loci Data - CL")
	if got := loci.Keys(); len(got) != len(hung1995Hues) || got[0] != "Red" || got[11] != "Magenta-red" {
		t.Fatalf("got hues %v", got)
	}

	value, _ := loci.Get("Red")
	red := value.(*HueLoci)
	if !almostEqual(red.Reference[0], 0.0030) {
		t.Errorf("reference x: got %v, want 0.0030", red.Reference[0])
	}
	if len(red.Matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(red.Matches))
	}
	if !almostEqual(red.ChromaUV[1], 40) {
		t.Errorf("C*uv: got %v, want 40", red.ChromaUV[1])
	}
	if !almostEqual(red.Matches[1][2], 0.26) {
		t.Errorf("match Y: got %v, want 0.26", red.Matches[1][2])
	}
}

func TestHung1995MissingHue(t *testing.T) {
	materializer, root := newFakeMaterializer(t, Hung1995ID)
	writeFixture(t, root, "Table I.csv", "Color name,x,y,Y\nRed,0.3,0.3,30\n")
	writeFixture(t, root, "Table II.csv", "Color name,Intra,Inter\nRed,1,2\n")
	writeFixture(t, root, "Table III.csv", "Color name,Cuv,x,y,Y\nRed,20,0.3,0.3,28\n")
	writeFixture(t, root, "Table IV.csv", "Color name,Cuv,x,y,Y\nRed,20,0.3,0.3,28\n")

	if _, err := NewHung1995(materializer).Load(context.Background()); err == nil {
		t.Fatal("want an error for the missing hues")
	}
}
