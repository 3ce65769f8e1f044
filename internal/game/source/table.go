// Package source loads the raw game, summary, team and line score tables.
package source

import "context"

// Table is a source read fully into memory. A nil cell is a null value.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]*string
}

// TableReader reads a named table from a storage location.
type TableReader interface {
	// ReadTable reads the whole table. Implementations release every resource they
	// acquired before returning, also on failure.
	ReadTable(ctx context.Context, name string) (*Table, error)
}

// row gives by-name access to one table row.
type row struct {
	cells []*string
	index map[string]int
}

func (t *Table) columnIndex() map[string]int {
	index := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, exists := index[c]; !exists {
			index[c] = i
		}
	}
	return index
}

func (r row) get(column string) *string {
	i, ok := r.index[column]
	if !ok || i >= len(r.cells) {
		return nil
	}
	return r.cells[i]
}

func (r row) str(column string) string {
	v := r.get(column)
	if v == nil {
		return ""
	}
	return *v
}
