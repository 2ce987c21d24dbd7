package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the dataset in exported workbooks.
const SheetName = "dataset"

// numericColumns are written as numbers so spreadsheets sort them properly.
var numericColumns = map[string]bool{"speech_id": true, "segment_id": true}

// WriteXLSX exports t as a single-sheet workbook for annotators.
func WriteXLSX(path string, t *Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range t.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("set header cell: %w", err)
		}
	}

	for rowIdx, rec := range t.Records {
		for col, v := range rec {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			var value any = v
			if col < len(t.Header) && numericColumns[t.Header[col]] {
				if n, convErr := strconv.Atoi(v); convErr == nil {
					value = n
				}
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return f.SaveAs(path)
}

// ReadXLSX loads the dataset sheet of a workbook written by WriteXLSX.
// Trailing empty cells are not returned, so records may be short.
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}
	return &Table{Header: rows[0], Records: rows[1:]}, nil
}
