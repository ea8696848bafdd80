// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spectra-foundation/spectra/lib/dataset"
)

// readCSVTable parses a delimited file into a Table. The first record
// is the header; each subsequent record carries nameColumns leading
// string cells followed by numeric cells. Records shorter or longer
// than the header are rejected.
func readCSVTable(path string, delimiter rune, nameColumns int) (*dataset.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	table := &dataset.Table{Header: records[0], NameColumns: nameColumns}
	for i, record := range records[1:] {
		if len(record) != len(table.Header) {
			return nil, fmt.Errorf("%s: record %d has %d cells, header has %d",
				path, i+1, len(record), len(table.Header))
		}
		values, err := parseFloats(record[nameColumns:])
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", path, i+1, err)
		}
		names := make([]string, nameColumns)
		copy(names, record[:nameColumns])
		table.Names = append(table.Names, names)
		table.Values = append(table.Values, values)
	}
	return table, nil
}
