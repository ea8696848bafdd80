// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import "fmt"

// SpectralTable is a sampled spectral quantity: a wavelength axis and
// one value column per channel. Single-channel measurements (a plain
// spectral distribution) have exactly one column; camera sensitivity
// tables typically carry three (R, G, B) and colour matching function
// tables three (X, Y, Z or L, M, S).
//
// Wavelengths and every column must have equal length. Labels, when
// present, name the columns in order.
type SpectralTable struct {
	Name        string
	Wavelengths []float64
	Columns     [][]float64
	Labels      []string
}

// Validate checks the structural invariants of the table.
func (t *SpectralTable) Validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("spectral table %q has no value columns", t.Name)
	}
	for i, column := range t.Columns {
		if len(column) != len(t.Wavelengths) {
			return fmt.Errorf("spectral table %q: column %d has %d values for %d wavelengths",
				t.Name, i, len(column), len(t.Wavelengths))
		}
	}
	if len(t.Labels) != 0 && len(t.Labels) != len(t.Columns) {
		return fmt.Errorf("spectral table %q: %d labels for %d columns",
			t.Name, len(t.Labels), len(t.Columns))
	}
	return nil
}

// Matrix is a dense row-major numeric table. All rows have equal
// length; Shape reports (rows, columns).
type Matrix [][]float64

// Shape returns the number of rows and columns. An empty matrix
// reports (0, 0).
func (m Matrix) Shape() (rows, columns int) {
	if len(m) == 0 {
		return 0, 0
	}
	return len(m), len(m[0])
}

// Transposed returns a new matrix with rows and columns swapped.
func (m Matrix) Transposed() Matrix {
	rows, columns := m.Shape()
	if rows == 0 {
		return nil
	}
	out := make(Matrix, columns)
	for j := 0; j < columns; j++ {
		out[j] = make([]float64, rows)
		for i := 0; i < rows; i++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Table is a labelled columnar table, the in-memory form of a parsed
// CSV: a header naming each column and one row per sample. Rows hold
// strings in the first NameColumns positions (sample identifiers) and
// numeric values elsewhere; purely numeric tables set NameColumns to
// zero.
type Table struct {
	Header      []string
	NameColumns int
	Names       [][]string
	Values      Matrix
}
