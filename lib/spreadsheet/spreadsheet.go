// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

// Package spreadsheet translates between numeric coordinates and
// spreadsheet-style cell references, and extracts rectangular value
// blocks from workbook sheets. The address translation is pure and
// stateless; sheet access goes through the minimal [Sheet] interface
// so loaders can be tested without a workbook file.
package spreadsheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxColumns is the largest addressable column ("XFD").
const MaxColumns = 18278

// ColumnToIndex returns the 0-based index of column letters
// ("A" -> 0, "DX" -> 127).
func ColumnToIndex(column string) (int, error) {
	column = strings.ToUpper(column)
	if column == "" || len(column) > 3 {
		return 0, fmt.Errorf("invalid column letters %q", column)
	}

	index := 0
	for _, letter := range column {
		if letter < 'A' || letter > 'Z' {
			return 0, fmt.Errorf("invalid column letters %q", column)
		}
		index = index*26 + int(letter-'A'+1)
	}
	if index > MaxColumns {
		return 0, fmt.Errorf("column %q beyond %d", column, MaxColumns)
	}
	return index - 1, nil
}

// IndexToColumn returns the column letters of a 0-based index
// (0 -> "A", 127 -> "DX"). Right-shifts by 26 to produce letters in
// reverse order, the openpyxl construction.
func IndexToColumn(index int) (string, error) {
	number := index + 1
	if number < 1 || number > MaxColumns {
		return "", fmt.Errorf("column index %d must be in range [0, %d]", index, MaxColumns-1)
	}

	var letters []byte
	for number > 0 {
		remainder := number % 26
		number /= 26
		if remainder == 0 {
			remainder = 26
			number--
		}
		letters = append(letters, byte('A'+remainder-1))
	}
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters), nil
}

// RowToIndex returns the 0-based index of a 1-based row name
// ("1" -> 0).
func RowToIndex(row string) (int, error) {
	number, err := strconv.Atoi(row)
	if err != nil {
		return 0, fmt.Errorf("invalid row %q: %w", row, err)
	}
	if number < 1 {
		return 0, fmt.Errorf("row %d must be greater than 0", number)
	}
	return number - 1, nil
}

// IndexToRow returns the 1-based row name of a 0-based index
// (0 -> "1").
func IndexToRow(index int) string {
	return strconv.Itoa(index + 1)
}

// Range is a parsed cell range with inclusive 0-based bounds.
type Range struct {
	ColumnIn  int
	RowIn     int
	ColumnOut int
	RowOut    int
}

// Absolute-reference dollar markers are tolerated and ignored.
var rangePattern = regexp.MustCompile(
	`^[$]?(?P<column_in>[A-Za-z]{1,3})?[$]?(?P<row_in>\d+)?` +
		`(:[$]?(?P<column_out>[A-Za-z]{1,3})?[$]?(?P<row_out>\d+)?)?$`)

// ParseRange parses a cell range like "A1:C3" or a single cell like
// "B2" (which yields a 1x1 range).
func ParseRange(cellRange string) (Range, error) {
	match := rangePattern.FindStringSubmatch(cellRange)
	if match == nil {
		return Range{}, fmt.Errorf("invalid cell range %q", cellRange)
	}

	groups := make(map[string]string)
	for i, name := range rangePattern.SubexpNames() {
		if name != "" {
			groups[name] = match[i]
		}
	}
	if groups["column_in"] == "" || groups["row_in"] == "" {
		return Range{}, fmt.Errorf("cell range %q has no starting cell", cellRange)
	}
	if groups["column_out"] == "" {
		groups["column_out"] = groups["column_in"]
	}
	if groups["row_out"] == "" {
		groups["row_out"] = groups["row_in"]
	}

	columnIn, err := ColumnToIndex(groups["column_in"])
	if err != nil {
		return Range{}, err
	}
	rowIn, err := RowToIndex(groups["row_in"])
	if err != nil {
		return Range{}, err
	}
	columnOut, err := ColumnToIndex(groups["column_out"])
	if err != nil {
		return Range{}, err
	}
	rowOut, err := RowToIndex(groups["row_out"])
	if err != nil {
		return Range{}, err
	}

	return Range{
		ColumnIn:  columnIn,
		RowIn:     rowIn,
		ColumnOut: columnOut,
		RowOut:    rowOut,
	}, nil
}

// Sheet is the minimal read surface of a workbook sheet.
type Sheet interface {
	// Rows returns the number of rows.
	Rows() int
	// Cell returns the textual content of a cell by 0-based row and
	// column; empty string for cells outside the sheet.
	Cell(row, column int) string
}

// RangeValues returns the cell values of a range as rows of strings.
// Rows beyond the sheet yield empty cells, matching spreadsheet
// semantics where trailing blanks are indistinguishable from absent
// cells.
func RangeValues(sheet Sheet, cellRange string) ([][]string, error) {
	r, err := ParseRange(cellRange)
	if err != nil {
		return nil, err
	}

	var table [][]string
	for row := r.RowIn; row <= r.RowOut; row++ {
		values := make([]string, 0, r.ColumnOut-r.ColumnIn+1)
		for column := r.ColumnIn; column <= r.ColumnOut; column++ {
			values = append(values, sheet.Cell(row, column))
		}
		table = append(table, values)
	}
	return table, nil
}
