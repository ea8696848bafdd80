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

func chartFixture(count int) string {
	var b strings.Builder
	b.WriteString("CGATS.17\n")
	fmt.Fprintf(&b, "NUMBER_OF_SETS %d\n", count)
	b.WriteString("BEGIN_DATA_FORMAT\nSAMPLE_NAME Lab_L Lab_a Lab_b\nEND_DATA_FORMAT\n")
	b.WriteString("BEGIN_DATA\n")
	for i := 0; i < count; i++ {
		fmt.Fprintf(&b, "S%03d %d,5 %d -%d\n", i, i, i, i)
	}
	b.WriteString("END_DATA\n")
	return b.String()
}

func xrite2016Fixture(t *testing.T) *fakeMaterializer {
	t.Helper()
	materializer, root := newFakeMaterializer(t, XRite2016ID)
	for _, fixture := range []struct {
		filename string
		count    int
	}{
		{"ColorChecker24_After_Nov2014.txt", 24},
		{"ColorChecker24_Before_Nov2014.txt", 24},
		{"ColorCheckerSG_After_Nov2014.txt", 140},
		{"ColorCheckerSG_Before_Nov2014.txt", 140},
	} {
		directory := strings.TrimSuffix(fixture.filename, ".txt")
		writeFixture(t, root, directory+"/"+fixture.filename, chartFixture(fixture.count))
	}
	return materializer
}

func TestXRite2016Keys(t *testing.T) {
	loader := NewXRite2016(xrite2016Fixture(t))
	content, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("loading: %v", err)
	}

	want := []string{
		"ColorChecker24 - After November 2014",
		"ColorChecker24 - Before November 2014",
		"ColorCheckerSG - After November 2014",
		"ColorCheckerSG - Before November 2014",
	}
	keys := content.Keys()
	if len(keys) != len(want) {
		t.Fatalf("got %d charts, want %d", len(keys), len(want))
	}
	for i, key := range keys {
		if key != want[i] {
			t.Errorf("chart %d: got %q, want %q", i, key, want[i])
		}
	}
}

func TestXRite2016ChartOrder(t *testing.T) {
	loader := NewXRite2016(xrite2016Fixture(t))
	content, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("loading: %v", err)
	}

	value, _ := content.Get("ColorChecker24 - After November 2014")
	chart := value.(*dataset.Table)
	if len(chart.Names) != 24 {
		t.Fatalf("got %d samples, want 24", len(chart.Names))
	}

	// Samples are listed row-major over a 6x4 grid and reordered
	// column-major, so the head of the chart walks the first column.
	for i, want := range []string{"S000", "S004", "S008", "S012", "S016", "S020", "S001"} {
		if chart.Names[i][0] != want {
			t.Errorf("sample %d: got %q, want %q", i, chart.Names[i][0], want)
		}
	}

	// Decimal commas parse as decimal points.
	if !almostEqual(chart.Values[1][0], 4.5) {
		t.Errorf("sample 1 L*: got %v, want 4.5", chart.Values[1][0])
	}
}

func TestXRite2016MissingFile(t *testing.T) {
	materializer, root := newFakeMaterializer(t, XRite2016ID)
	writeFixture(t, root,
		"ColorChecker24_After_Nov2014/ColorChecker24_After_Nov2014.txt", chartFixture(24))

	_, err := NewXRite2016(materializer).Load(context.Background())
	var formatErr *dataset.FormatError
	if !asFormatError(err, &formatErr) {
		t.Fatalf("got %v, want a FormatError", err)
	}
	if formatErr.Dataset != XRite2016ID {
		t.Errorf("error names dataset %q, want %q", formatErr.Dataset, XRite2016ID)
	}
}
