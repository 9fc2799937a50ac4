// Package loader reads CSV input into raw rows for the analysis pipeline.
// It does no validation beyond CSV structure; the normalizer owns the
// semantics of each column.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"analyzer/models"
)

// ReadCSV parses CSV content into raw rows keyed by the header names,
// preserved exactly as written. Short records are padded with empty
// strings so every row carries the full key set.
func ReadCSV(r io.Reader) ([]models.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: reading header: %w", err)
	}
	// Strip a UTF-8 BOM from exported spreadsheets.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	rows := make([]models.RawRow, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: reading row %d: %w", len(rows)+1, err)
		}

		row := make(models.RawRow, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
