// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package spreadsheet

import (
	"fmt"

	"github.com/extrame/xls"
)

// Workbook is an open BIFF (.xls) workbook.
type Workbook struct {
	book *xls.WorkBook
}

// OpenWorkbook opens a .xls workbook.
func OpenWorkbook(path string) (*Workbook, error) {
	book, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return &Workbook{book: book}, nil
}

// Sheet returns the sheet at the given index.
func (w *Workbook) Sheet(index int) (Sheet, error) {
	sheet := w.book.GetSheet(index)
	if sheet == nil {
		return nil, fmt.Errorf("workbook has no sheet %d", index)
	}
	return &xlsSheet{sheet: sheet}, nil
}

// xlsSheet adapts an xls worksheet to the Sheet interface.
type xlsSheet struct {
	sheet *xls.WorkSheet
}

func (s *xlsSheet) Rows() int {
	return int(s.sheet.MaxRow) + 1
}

func (s *xlsSheet) Cell(row, column int) string {
	if row < 0 || row > int(s.sheet.MaxRow) {
		return ""
	}
	r := s.sheet.Row(row)
	if r == nil || column < r.FirstCol() || column >= r.LastCol() {
		return ""
	}
	return r.Col(column)
}
