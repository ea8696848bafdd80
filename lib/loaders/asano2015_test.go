// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"fmt"
	"testing"
)

// gridSheet is an in-memory spreadsheet: cell (r, c) reads as
// "r<r>c<c>" within bounds and "" outside, with numeric overrides.
type gridSheet struct {
	rows, columns int
	values        map[[2]int]string
}

func (s *gridSheet) Rows() int { return s.rows }

func (s *gridSheet) Cell(row, column int) string {
	if row < 0 || row >= s.rows || column < 0 || column >= s.columns {
		return ""
	}
	if value, ok := s.values[[2]int{row, column}]; ok {
		return value
	}
	return fmt.Sprintf("%d.%d", row, column)
}

func TestNumericRange(t *testing.T) {
	sheet := &gridSheet{rows: 10, columns: 10}

	block, err := numericRange(sheet, "C3:E5", 3, 3)
	if err != nil {
		t.Fatalf("reading range: %v", err)
	}
	// C3 is 0-based (2, 2).
	if !almostEqual(block[0][0], 2.2) {
		t.Errorf("top-left: got %v, want 2.2", block[0][0])
	}
	if !almostEqual(block[2][1], 4.3) {
		t.Errorf("bottom-middle: got %v, want 4.3", block[2][1])
	}
}

func TestNumericRangeDimensionMismatch(t *testing.T) {
	sheet := &gridSheet{rows: 10, columns: 10}
	if _, err := numericRange(sheet, "C3:E5", 4, 3); err == nil {
		t.Fatal("want an error for a row count mismatch")
	}
}

func TestNumericRangeNonNumericCell(t *testing.T) {
	sheet := &gridSheet{
		rows: 10, columns: 10,
		values: map[[2]int]string{{2, 2}: "n/a"},
	}
	if _, err := numericRange(sheet, "C3:E5", 3, 3); err == nil {
		t.Fatal("want an error for a non-numeric cell")
	}
}
