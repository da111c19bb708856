// Package common provides shared file-reading helpers used by the statement
// adapters.
package common

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// ReadCSVFile reads a headered CSV file into a slice of structs using gocsv.
// TCSVRow is the struct type whose csv tags map to the header columns.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	return rows, nil
}

// ReadCSVRecords reads a CSV file without interpreting any row as a header.
// Sources with no header row or with a preamble before the header use this
// and pick columns positionally.
func ReadCSVRecords(filePath string) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV file: %w", err)
	}
	return records, nil
}

// FindHeaderRow scans records for the first row containing every wanted
// column label and returns its index, or -1 when absent. Statement exports
// with account preambles are located this way.
func FindHeaderRow(records [][]string, wanted ...string) int {
	for i, record := range records {
		found := 0
		for _, label := range wanted {
			for _, cell := range record {
				if cell == label {
					found++
					break
				}
			}
		}
		if found == len(wanted) {
			return i
		}
	}
	return -1
}

// ColumnIndex returns the position of label in the header record, or -1.
func ColumnIndex(header []string, label string) int {
	for i, cell := range header {
		if cell == label {
			return i
		}
	}
	return -1
}
