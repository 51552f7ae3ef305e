package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const excelSheetName = "Results"

// writeExcel renders the table as a single-sheet workbook with a bold
// header row.
func writeExcel(t Table, path string) (Result, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", excelSheetName); err != nil {
		return Result{}, fmt.Errorf("failed to name worksheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, name := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return Result{}, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(excelSheetName, cell, name); err != nil {
			return Result{}, fmt.Errorf("failed to write header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(excelSheetName, cell, cell, headerStyle); err != nil {
			return Result{}, fmt.Errorf("failed to style header cell %s: %w", cell, err)
		}
	}

	for rowIdx, row := range t.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return Result{}, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(excelSheetName, cell, value); err != nil {
				return Result{}, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return Result{}, fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return Result{Path: path}, nil
}
