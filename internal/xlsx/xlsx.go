// Package xlsx moves tables between tinycsv and spreadsheet workbooks.
package xlsx

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/oleg578/tinycsv"
)

// DefaultSheet is the sheet name used when none is given.
const DefaultSheet = "Sheet1"

// ErrNoSheets indicates a workbook without any sheet.
var ErrNoSheets = errors.New("workbook has no sheets")

// Export writes t into a new workbook at path. Header rows are rendered bold.
func Export(t *tinycsv.Table, path, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := WriteSheet(f, t, sheet); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// WriteSheet fills sheet of f with the header rows and records of t, creating the sheet if needed.
func WriteSheet(f *excelize.File, t *tinycsv.Table, sheet string) error {
	if sheet == "" {
		sheet = DefaultSheet
	}
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("lookup sheet %q: %w", sheet, err)
	}
	if idx < 0 {
		if idx, err = f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}
	}
	f.SetActiveSheet(idx)

	rowNum := 1
	for _, rows := range [][][]string{t.Headers, t.Records} {
		for _, row := range rows {
			if err := writeRow(f, sheet, rowNum, row); err != nil {
				return err
			}
			rowNum++
		}
	}

	if len(t.Headers) > 0 && t.Columns() > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("create header style: %w", err)
		}
		first, _ := excelize.CoordinatesToCellName(1, 1)
		last, _ := excelize.CoordinatesToCellName(t.Columns(), len(t.Headers))
		if err := f.SetCellStyle(sheet, first, last, style); err != nil {
			return fmt.Errorf("style header rows: %w", err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, row []string) error {
	for colIdx, value := range row {
		if value == "" {
			continue
		}
		cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cellName, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cellName, err)
		}
	}
	return nil
}

// Import reads sheet of the workbook at path into a table. An empty sheet name selects the first
// sheet. The first headerRows rows become header rows; records are padded to the header width.
func Import(path, sheet string, headerRows int, comma byte, newline tinycsv.NewlineStyle) (*tinycsv.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return ReadSheet(f, sheet, headerRows, comma, newline)
}

// ReadSheet converts one sheet of f into a table.
func ReadSheet(f *excelize.File, sheet string, headerRows int, comma byte, newline tinycsv.NewlineStyle) (*tinycsv.Table, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoSheets
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	t := tinycsv.NewTable(comma, newline)
	n := min(max(headerRows, 0), len(rows))
	for _, row := range rows[:n] {
		t.AddHeader(row...)
	}
	width := t.Columns()
	for _, row := range rows[n:] {
		for len(row) < width {
			row = append(row, "")
		}
		t.AddRecord(row...)
	}
	return t, nil
}
