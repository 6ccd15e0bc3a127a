// Package table loads delimited files and database tables into immutable
// in-memory tables.
//
// A Table is produced once by a loader and never mutated afterwards. Rows are
// normalized to the header width at construction: short rows read as empty
// strings in their missing trailing cells, long rows are truncated.
package table

import "errors"

var (
	// ErrEmptyFile is returned when a source has no header row.
	ErrEmptyFile = errors.New("empty file: no header row")

	// ErrFileTooLarge is returned when a source exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNoDatabase is returned when a database source is requested but no
	// database connection is configured.
	ErrNoDatabase = errors.New("database source not configured")
)

// Table is an immutable, fully loaded tabular view with ordered named columns.
type Table struct {
	name    string
	columns []string
	rows    [][]string
}

// New builds a Table from a header and data rows. Both slices are copied.
func New(name string, columns []string, rows [][]string) *Table {
	cols := append([]string(nil), columns...)
	width := len(cols)

	normalized := make([][]string, len(rows))
	for i, row := range rows {
		r := make([]string, width)
		copy(r, row)
		normalized[i] = r
	}

	return &Table{
		name:    name,
		columns: cols,
		rows:    normalized,
	}
}

// Name returns the source name the table was loaded from.
func (t *Table) Name() string { return t.name }

// Columns returns a copy of the ordered column names.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// ColumnCount returns the number of columns in the header.
func (t *Table) ColumnCount() int { return len(t.columns) }

// RowCount returns the number of data rows, excluding the header.
func (t *Table) RowCount() int { return len(t.rows) }

// CellAt returns the cell at (row, col). Coordinates outside the table
// yield an empty string.
func (t *Table) CellAt(row, col int) string {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= len(t.columns) {
		return ""
	}
	return t.rows[row][col]
}
