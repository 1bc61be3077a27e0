package datasource

import (
	"fmt"

	apperrors "clientele/internal/errors"

	"github.com/xuri/excelize/v2"
)

// loadSpreadsheet reads the first column of the first sheet.
func loadSpreadsheet(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeSourceUnreadable, fmt.Sprintf("open %s", path), err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []string{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.New(apperrors.CodeSourceUnreadable, fmt.Sprintf("read sheet %s in %s", sheets[0], path), err)
	}
	return Merge(firstColumn(rows)), nil
}

// WriteSpreadsheet exports values as a one-column sheet with a "name" header.
func WriteSpreadsheet(path string, values []string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", "name"); err != nil {
		return err
	}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
