// Package fetcher reads the workout table out of its source files. Both
// readers return the header row separately from the data rows so the ingest
// stage can enforce the column contract before touching a single record.
package fetcher

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// ReadCSV reads a workout CSV export: first row is the header, every other
// row is data. Quoted fields with embedded commas and newlines are handled
// by encoding/csv; ragged rows are tolerated because trailing empty cells
// are routinely dropped by spreadsheet exports.
func ReadCSV(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "csv: open file")
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err = r.Read()
	if err == io.EOF {
		return nil, nil, eris.New("csv: file is empty")
	}
	if err != nil {
		return nil, nil, eris.Wrap(err, "csv: read header")
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, eris.Wrap(err, "csv: read row")
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
