// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package loaders

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spectra-foundation/spectra/lib/dataset"
	"github.com/spectra-foundation/spectra/lib/spreadsheet"
)

// Asano2015ID is the Zenodo record of the Asano (2015) "Observer
// Function Database" dataset.
const Asano2015ID = "3252742"

// IndividualObserver holds one observer's colour matching functions
// and cone fundamentals at both field sizes, with the physiological
// parameters the functions were generated from. Colour normal
// observers additionally carry the published per-observer details.
type IndividualObserver struct {
	XYZ2       *dataset.SpectralTable `json:"xyz_2"`
	XYZ10      *dataset.SpectralTable `json:"xyz_10"`
	LMS2       *dataset.SpectralTable `json:"lms_2"`
	LMS10      *dataset.SpectralTable `json:"lms_10"`
	Parameters map[string]float64     `json:"parameters"`
	Details    map[string]string      `json:"details,omitempty"`
}

// Asano2015 loads the two observer workbooks: ten categorical
// observers and 151 colour normal observers, each workbook carrying
// XYZ and LMS sheets at 2 and 10 degrees plus a parameters sheet.
type Asano2015 struct {
	materializer Materializer
}

func NewAsano2015(m Materializer) *Asano2015 {
	return &Asano2015{materializer: m}
}

func (l *Asano2015) ID() string { return Asano2015ID }

func (l *Asano2015) Load(ctx context.Context) (*dataset.Collection, error) {
	root, err := l.materializer.Ensure(ctx, Asano2015ID)
	if err != nil {
		return nil, err
	}

	content := dataset.NewCollection()

	categorical, err := l.parseWorkbook(
		filepath.Join(root, "Data_10CatObs.xls"), 10, "Categorical Observer")
	if err != nil {
		return nil, err
	}
	content.Set("Categorical Observers", categorical)

	normal, err := l.parseWorkbook(
		filepath.Join(root, "Data_151Obs.xls"), 151, "Colour Normal Observer")
	if err != nil {
		return nil, err
	}
	if err := l.attachDetails(filepath.Join(root, "Data_151Obs.xls"), 151, normal); err != nil {
		return nil, err
	}
	content.Set("Colour Normal Observers", normal)

	return content, nil
}

// parseWorkbook reads the four CMF sheets and the parameters sheet.
// Observer data starts in the third column, one observer per column;
// the three wavelength blocks of each sheet span rows 3-81, 82-160
// and 161-239 for a 390-780nm, 5nm step axis.
func (l *Asano2015) parseWorkbook(path string, count int, kind string) (*dataset.Collection, error) {
	filename := filepath.Base(path)
	book, err := spreadsheet.OpenWorkbook(path)
	if err != nil {
		return nil, formatError(Asano2015ID, filename, "%v", err)
	}

	columnIn, err := spreadsheet.IndexToColumn(2)
	if err != nil {
		return nil, err
	}
	columnOut, err := spreadsheet.IndexToColumn(count + 1)
	if err != nil {
		return nil, err
	}

	wavelengths := wavelengthRange(390, 780, 5)
	observers := make([]*IndividualObserver, count)
	for i := range observers {
		observers[i] = &IndividualObserver{}
	}

	sheets := []struct {
		index  int
		cmf    string
		degree int
		labels []string
		assign func(o *IndividualObserver, table *dataset.SpectralTable)
	}{
		{0, "XYZ", 2, []string{"X", "Y", "Z"}, func(o *IndividualObserver, t *dataset.SpectralTable) { o.XYZ2 = t }},
		{1, "XYZ", 10, []string{"X", "Y", "Z"}, func(o *IndividualObserver, t *dataset.SpectralTable) { o.XYZ10 = t }},
		{2, "LMS", 2, []string{"L", "M", "S"}, func(o *IndividualObserver, t *dataset.SpectralTable) { o.LMS2 = t }},
		{3, "LMS", 10, []string{"L", "M", "S"}, func(o *IndividualObserver, t *dataset.SpectralTable) { o.LMS10 = t }},
	}
	for _, spec := range sheets {
		sheet, err := book.Sheet(spec.index)
		if err != nil {
			return nil, formatError(Asano2015ID, filename, "%v", err)
		}

		var blocks [3][][]float64
		for b, rows := range []string{"3:81", "82:160", "161:239"} {
			firstRow, lastRow, _ := strings.Cut(rows, ":")
			cellRange := fmt.Sprintf("%s%s:%s%s", columnIn, firstRow, columnOut, lastRow)
			block, err := numericRange(sheet, cellRange, len(wavelengths), count)
			if err != nil {
				return nil, formatError(Asano2015ID, filename, "sheet %d range %s: %v",
					spec.index, cellRange, err)
			}
			blocks[b] = block
		}

		for k, observer := range observers {
			table := &dataset.SpectralTable{
				Name: fmt.Sprintf("Asano 2015 %d %s No. %d %s",
					spec.degree, kind, k+1, spec.cmf),
				Wavelengths: wavelengths,
				Columns:     make([][]float64, 3),
				Labels:      spec.labels,
			}
			for c := 0; c < 3; c++ {
				column := make([]float64, len(wavelengths))
				for r := range column {
					column[r] = blocks[c][r][k]
				}
				table.Columns[c] = column
			}
			spec.assign(observer, table)
		}
	}

	if err := l.attachParameters(book, filename, count, observers); err != nil {
		return nil, err
	}

	group := dataset.NewCollection()
	for k, observer := range observers {
		group.Set(strconv.Itoa(k+1), observer)
	}
	return group, nil
}

// attachParameters reads the fifth sheet: parameter names in the
// first column, one observer per following column.
func (l *Asano2015) attachParameters(book *spreadsheet.Workbook, filename string, count int, observers []*IndividualObserver) error {
	sheet, err := book.Sheet(4)
	if err != nil {
		return formatError(Asano2015ID, filename, "%v", err)
	}
	columnOut, err := spreadsheet.IndexToColumn(count)
	if err != nil {
		return err
	}
	rows, err := spreadsheet.RangeValues(sheet, fmt.Sprintf("A2:%s10", columnOut))
	if err != nil {
		return formatError(Asano2015ID, filename, "parameters: %v", err)
	}
	for i := range observers {
		observers[i].Parameters = make(map[string]float64, len(rows))
	}
	for _, row := range rows {
		if len(row) != count+1 {
			return formatError(Asano2015ID, filename,
				"parameter row has %d cells, want %d", len(row), count+1)
		}
		values, err := parseFloats(row[1:])
		if err != nil {
			return formatError(Asano2015ID, filename, "parameter %q: %v", row[0], err)
		}
		for i, value := range values {
			observers[i].Parameters[row[0]] = value
		}
	}
	return nil
}

// attachDetails reads the sixth sheet of the colour normal workbook,
// two row blocks of per-observer information.
func (l *Asano2015) attachDetails(path string, count int, group *dataset.Collection) error {
	filename := filepath.Base(path)
	book, err := spreadsheet.OpenWorkbook(path)
	if err != nil {
		return formatError(Asano2015ID, filename, "%v", err)
	}
	sheet, err := book.Sheet(5)
	if err != nil {
		return formatError(Asano2015ID, filename, "%v", err)
	}
	columnOut, err := spreadsheet.IndexToColumn(count)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, cellRange := range []string{
		fmt.Sprintf("A2:%s9", columnOut),
		fmt.Sprintf("A12:%s16", columnOut),
	} {
		block, err := spreadsheet.RangeValues(sheet, cellRange)
		if err != nil {
			return formatError(Asano2015ID, filename, "details %s: %v", cellRange, err)
		}
		rows = append(rows, block...)
	}

	for k := 0; k < count; k++ {
		value, _ := group.Get(strconv.Itoa(k + 1))
		observer := value.(*IndividualObserver)
		observer.Details = make(map[string]string, len(rows))
		for _, row := range rows {
			if len(row) != count+1 {
				return formatError(Asano2015ID, filename,
					"detail row has %d cells, want %d", len(row), count+1)
			}
			observer.Details[row[0]] = row[k+1]
		}
	}
	return nil
}

// numericRange reads a cell range and parses it as a dense numeric
// block of the given dimensions.
func numericRange(sheet spreadsheet.Sheet, cellRange string, rows, columns int) ([][]float64, error) {
	cells, err := spreadsheet.RangeValues(sheet, cellRange)
	if err != nil {
		return nil, err
	}
	if len(cells) != rows {
		return nil, fmt.Errorf("%d rows, want %d", len(cells), rows)
	}
	block := make([][]float64, rows)
	for r, row := range cells {
		if len(row) != columns {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(row), columns)
		}
		values, err := parseFloats(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
		block[r] = values
	}
	return block, nil
}
