package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CSVReader reads tables stored as <root>/<name>.csv with a header row.
type CSVReader struct {
	root string
}

// NewCSVReader creates a reader rooted at the given directory.
func NewCSVReader(root string) *CSVReader {
	return &CSVReader{root: root}
}

// Path returns the file backing the named table.
func (r *CSVReader) Path(name string) string {
	return filepath.Join(r.root, name+".csv")
}

// ReadTable reads the whole file.
func (r *CSVReader) ReadTable(ctx context.Context, name string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := r.Path(name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s has no header row", path)
		}
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	table := &Table{Name: name, Columns: columns}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		cells := make([]*string, len(columns))
		for i := range columns {
			if i < len(record) {
				cells[i] = cellValue(record[i])
			}
		}
		table.Rows = append(table.Rows, cells)
	}

	return table, nil
}
