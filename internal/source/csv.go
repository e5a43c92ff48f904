package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nshankar/auweather/internal/dataset"
	"github.com/nshankar/auweather/internal/metrics"
)

// ReadCSV parses delimited text with a header row into a raw table. Header
// names are kept verbatim; schema resolution deals with their spelling.
// Short rows are tolerated (missing cells coerce to null later).
func ReadCSV(r io.Reader) (*dataset.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, dataset.ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	t := &dataset.Table{Columns: header}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// LoadCSVFile reads the dataset from a local flat file.
func LoadCSVFile(path string) (*dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	metrics.DatasetLoadsTotal.WithLabelValues("csv").Inc()
	return t, nil
}
