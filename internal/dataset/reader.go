package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/mreyes/finboard/internal/model"
	"github.com/mreyes/finboard/internal/normalize"
)

// header maps required column names to their index in the CSV header row.
type header map[string]int

// readHeader validates that every required column is present and returns
// the column index map. Extra columns are ignored.
func readHeader(row []string, required []string) (header, error) {
	idx := make(header, len(row))
	for i, name := range row {
		idx[name] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}
	return idx, nil
}

func (h header) str(row []string, col string) string {
	return row[h[col]]
}

func (h header) float(row []string, col string) (float64, error) {
	v, err := normalize.ParseFloat(row[h[col]])
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return v, nil
}

func (h header) month(row []string, col string) (time.Time, error) {
	t, ok := normalize.ParseMonth(row[h[col]])
	if !ok {
		return time.Time{}, fmt.Errorf("column %q: unparseable date %q", col, row[h[col]])
	}
	return t, nil
}

func (h header) date(row []string, col string) (time.Time, error) {
	t, ok := normalize.ParseDate(row[h[col]])
	if !ok {
		return time.Time{}, fmt.Errorf("column %q: unparseable date %q", col, row[h[col]])
	}
	return t, nil
}

// forEachRow streams CSV records, validating the header against the
// dataset descriptor and invoking fn per data row. Row numbers in errors
// are 1-based counting the header.
func forEachRow(r io.Reader, ds model.Dataset, fn func(h header, row []string) error) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	first, err := cr.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	h, err := readHeader(first, ds.Columns)
	if err != nil {
		return fmt.Errorf("%s header: %w", ds.Name, err)
	}

	rowNum := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s row %d: %w", ds.Name, rowNum+1, err)
		}
		rowNum++
		if err := fn(h, row); err != nil {
			return fmt.Errorf("%s row %d: %w", ds.Name, rowNum, err)
		}
	}
}
