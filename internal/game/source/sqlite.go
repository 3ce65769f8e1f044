package source

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// SQLiteReader reads tables from a SQLite database file such as the dataset's nba.sqlite.
// Every ReadTable call opens its own read-only connection and closes it before returning.
type SQLiteReader struct {
	path string
}

// NewSQLiteReader creates a reader for the given database file.
func NewSQLiteReader(path string) *SQLiteReader {
	return &SQLiteReader{path: path}
}

// ReadTable reads all rows of the named table.
func (r *SQLiteReader) ReadTable(ctx context.Context, name string) (*Table, error) {
	// sqlite would silently create a missing file
	if _, err := os.Stat(r.path); err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", r.path, err)
	}

	db, err := gorm.Open(sqlite.Open("file:"+r.path+"?mode=ro"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", r.path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	defer sqlDB.Close()

	if !db.WithContext(ctx).Migrator().HasTable(name) {
		return nil, fmt.Errorf("table %s does not exist in %s", name, r.path)
	}

	rows, err := db.WithContext(ctx).Table(name).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", name, err)
	}

	table := &Table{Name: name, Columns: columns}
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", name, err)
		}
		cells := make([]*string, len(columns))
		for i, v := range values {
			cells[i] = sqlValue(v)
		}
		table.Rows = append(table.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate table %s: %w", name, err)
	}

	return table, nil
}

func sqlValue(v any) *string {
	var s string
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		return cellValue(string(x))
	case string:
		return cellValue(x)
	case int64:
		s = strconv.FormatInt(x, 10)
	case float64:
		if math.IsNaN(x) {
			return nil
		}
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(x)
	case time.Time:
		s = x.Format("2006-01-02 15:04:05")
	default:
		s = fmt.Sprint(x)
	}
	return &s
}
