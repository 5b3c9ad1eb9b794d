// Package ingest reads tabular depot exports into raw rows for the planner
// normalizer. It is a thin I/O wrapper: no validation happens here.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kochimetro/induction/core/planner"
)

// ReadRows parses CSV data into raw rows keyed by the header line. All values
// stay strings; the normalizer performs type coercion.
func ReadRows(r io.Reader) ([]planner.Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []planner.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		row := make(planner.Row, len(header))
		for i, field := range header {
			if i < len(rec) && rec[i] != "" {
				row[field] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadRowsFile reads a CSV file into raw rows.
func ReadRowsFile(path string) ([]planner.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
