package export

import (
	"encoding/csv"
	"fmt"
	"os"
)

// writeCSV renders the table with the stdlib CSV codec: a header row
// followed by one record per row.
func writeCSV(t Table, path string) (Result, error) {
	file, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create CSV file %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(t.Columns); err != nil {
		return Result{}, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return Result{}, fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Result{}, fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return Result{Path: path}, nil
}
