// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package spreadsheet

import (
	"testing"
)

func TestColumnConversions(t *testing.T) {
	cases := []struct {
		letters string
		index   int
	}{
		{"A", 0},
		{"Z", 25},
		{"AA", 26},
		{"DX", 127},
		{"XFD", MaxColumns - 1},
	}
	for _, c := range cases {
		index, err := ColumnToIndex(c.letters)
		if err != nil {
			t.Fatalf("ColumnToIndex(%q): %v", c.letters, err)
		}
		if index != c.index {
			t.Errorf("ColumnToIndex(%q): got %d, want %d", c.letters, index, c.index)
		}

		letters, err := IndexToColumn(c.index)
		if err != nil {
			t.Fatalf("IndexToColumn(%d): %v", c.index, err)
		}
		if letters != c.letters {
			t.Errorf("IndexToColumn(%d): got %q, want %q", c.index, letters, c.letters)
		}
	}
}

func TestColumnRoundtripExhaustive(t *testing.T) {
	for index := 0; index < MaxColumns; index++ {
		letters, err := IndexToColumn(index)
		if err != nil {
			t.Fatalf("IndexToColumn(%d): %v", index, err)
		}
		back, err := ColumnToIndex(letters)
		if err != nil {
			t.Fatalf("ColumnToIndex(%q): %v", letters, err)
		}
		if back != index {
			t.Fatalf("roundtrip %d -> %q -> %d", index, letters, back)
		}
	}
}

func TestColumnBounds(t *testing.T) {
	if _, err := ColumnToIndex(""); err == nil {
		t.Error("ColumnToIndex(\"\"): expected error")
	}
	if _, err := ColumnToIndex("XFE"); err == nil {
		t.Error("ColumnToIndex(XFE): expected error beyond last column")
	}
	if _, err := ColumnToIndex("A1"); err == nil {
		t.Error("ColumnToIndex(A1): expected error for non-letters")
	}
	if _, err := IndexToColumn(-1); err == nil {
		t.Error("IndexToColumn(-1): expected error")
	}
	if _, err := IndexToColumn(MaxColumns); err == nil {
		t.Error("IndexToColumn(MaxColumns): expected error")
	}
}

func TestRowConversions(t *testing.T) {
	index, err := RowToIndex("1")
	if err != nil {
		t.Fatalf("RowToIndex(1): %v", err)
	}
	if index != 0 {
		t.Errorf("RowToIndex(1): got %d, want 0", index)
	}
	if IndexToRow(0) != "1" {
		t.Errorf("IndexToRow(0): got %q, want 1", IndexToRow(0))
	}

	if _, err := RowToIndex("0"); err == nil {
		t.Error("RowToIndex(0): expected error")
	}
	if _, err := RowToIndex("abc"); err == nil {
		t.Error("RowToIndex(abc): expected error")
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("A1:C3")
	if err != nil {
		t.Fatalf("ParseRange(A1:C3): %v", err)
	}
	want := Range{ColumnIn: 0, RowIn: 0, ColumnOut: 2, RowOut: 2}
	if r != want {
		t.Errorf("ParseRange(A1:C3): got %+v, want %+v", r, want)
	}

	// Absolute markers are tolerated.
	r, err = ParseRange("$B$2:$D$5")
	if err != nil {
		t.Fatalf("ParseRange($B$2:$D$5): %v", err)
	}
	want = Range{ColumnIn: 1, RowIn: 1, ColumnOut: 3, RowOut: 4}
	if r != want {
		t.Errorf("ParseRange($B$2:$D$5): got %+v, want %+v", r, want)
	}

	// A single cell is a 1x1 range.
	r, err = ParseRange("E7")
	if err != nil {
		t.Fatalf("ParseRange(E7): %v", err)
	}
	want = Range{ColumnIn: 4, RowIn: 6, ColumnOut: 4, RowOut: 6}
	if r != want {
		t.Errorf("ParseRange(E7): got %+v, want %+v", r, want)
	}

	for _, bad := range []string{"", ":", "1:2", "A1:C3:D4", "A 1"} {
		if _, err := ParseRange(bad); err == nil {
			t.Errorf("ParseRange(%q): expected error", bad)
		}
	}
}

// gridSheet is an in-memory Sheet for tests.
type gridSheet [][]string

func (g gridSheet) Rows() int { return len(g) }

func (g gridSheet) Cell(row, column int) string {
	if row < 0 || row >= len(g) || column < 0 || column >= len(g[row]) {
		return ""
	}
	return g[row][column]
}

func TestRangeValues(t *testing.T) {
	sheet := gridSheet{
		{"label", "x", "y"},
		{"a", "1", "2"},
		{"b", "3", "4"},
	}

	values, err := RangeValues(sheet, "B2:C3")
	if err != nil {
		t.Fatalf("RangeValues: %v", err)
	}
	if len(values) != 2 || len(values[0]) != 2 {
		t.Fatalf("RangeValues shape: got %dx%d", len(values), len(values[0]))
	}
	if values[0][0] != "1" || values[1][1] != "4" {
		t.Errorf("RangeValues content: got %v", values)
	}

	// Rows beyond the sheet read as empty cells.
	values, err = RangeValues(sheet, "A4:B5")
	if err != nil {
		t.Fatalf("RangeValues beyond sheet: %v", err)
	}
	for _, row := range values {
		for _, cell := range row {
			if cell != "" {
				t.Errorf("expected empty cell, got %q", cell)
			}
		}
	}
}
