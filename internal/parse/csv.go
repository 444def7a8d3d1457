package parse

import (
	"encoding/csv"
	"fmt"
	"os"
)

// ParseCSV reads a header-rowed CSV file with question/type columns and an
// optional description column.
func ParseCSV(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromTable(rows, titleFromPath(path))
}
