// Package compare aligns two tables and classifies every cell of the
// row-interleaved diff grid.
//
// The grid holds two display rows per source row index k: row 2k shows
// table A (File 1), row 2k+1 shows table B (File 2). Columns are the
// left-first union of both headers. Match status is decided per row pair and
// column, so both display rows of a pair carry the same flag.
package compare

import "fmt"

// absent marks a unified column that a table does not have.
const absent = -1

// Model is the read-only comparison of two tables. It is built once and
// replaced wholesale when a new comparison runs.
type Model struct {
	left, right side

	columns    []string
	leftIndex  []int
	rightIndex []int

	pairs   int
	summary Summary
}

// side caches the header and row count of one input table.
type side struct {
	src     Source
	columns []string
	rows    int
}

// Source is a loaded table as seen by the model.
type Source interface {
	Columns() []string
	RowCount() int
	CellAt(row, col int) string
}

// NewModel builds the comparison of left (File 1) and right (File 2).
func NewModel(left, right Source) (*Model, error) {
	if left == nil || right == nil {
		return nil, &ModelConstructionError{Reason: "both tables are required"}
	}

	m := &Model{
		left:  side{src: left, columns: left.Columns(), rows: left.RowCount()},
		right: side{src: right, columns: right.Columns(), rows: right.RowCount()},
	}

	m.columns = unifyColumns(m.left.columns, m.right.columns)
	m.leftIndex = indexColumns(m.columns, m.left.columns)
	m.rightIndex = indexColumns(m.columns, m.right.columns)
	m.pairs = max(m.left.rows, m.right.rows)

	if err := m.check(); err != nil {
		return nil, err
	}

	m.summary = m.summarize()
	return m, nil
}

// unifyColumns returns left followed by every right name not found in left.
func unifyColumns(left, right []string) []string {
	inLeft := make(map[string]struct{}, len(left))
	for _, c := range left {
		inLeft[c] = struct{}{}
	}

	unified := make([]string, 0, len(left)+len(right))
	unified = append(unified, left...)
	for _, c := range right {
		if _, ok := inLeft[c]; !ok {
			unified = append(unified, c)
		}
	}
	return unified
}

// indexColumns maps each unified column to its first position in cols, or absent.
func indexColumns(unified, cols []string) []int {
	first := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, seen := first[c]; !seen {
			first[c] = i
		}
	}

	idx := make([]int, len(unified))
	for i, c := range unified {
		if pos, ok := first[c]; ok {
			idx[i] = pos
		} else {
			idx[i] = absent
		}
	}
	return idx
}

// check verifies the unified columns. The lower bound is the left width:
// a right header repeating a left name collapses into it.
func (m *Model) check() error {
	n, l, r := len(m.columns), len(m.left.columns), len(m.right.columns)
	if n < l || n > l+r {
		return &ModelConstructionError{
			Reason: fmt.Sprintf("unified column count %d outside [%d, %d]", n, l, l+r),
		}
	}
	for i := range m.columns {
		if m.leftIndex[i] == absent && m.rightIndex[i] == absent {
			return &ModelConstructionError{
				Reason: fmt.Sprintf("column %q belongs to neither table", m.columns[i]),
			}
		}
	}
	return nil
}

// DisplayRowCount is twice the larger table's row count.
func (m *Model) DisplayRowCount() int { return 2 * m.pairs }

// DisplayColumnCount is the number of unified columns.
func (m *Model) DisplayColumnCount() int { return len(m.columns) }

// Columns returns a copy of the unified column order.
func (m *Model) Columns() []string {
	cols := make([]string, len(m.columns))
	copy(cols, m.columns)
	return cols
}

// Summary returns the cell counts computed at construction.
func (m *Model) Summary() Summary { return m.summary }

// ColumnHeader returns the unified column name at col, verbatim.
func (m *Model) ColumnHeader(col int) string {
	if col < 0 || col >= len(m.columns) {
		return ""
	}
	return m.columns[col]
}

// RowHeader labels a display row. Only the File 1 half of a pair carries
// the line number.
func (m *Model) RowHeader(row int) string {
	if row < 0 || row >= m.DisplayRowCount() {
		return ""
	}
	sourceRow, file := row/2, row%2+1
	if file == 1 {
		return fmt.Sprintf("line %d » File %d ", sourceRow, file)
	}
	return fmt.Sprintf("File %d ", file)
}

// ValueAt returns the source cell shown at a display coordinate. ok is false
// when that side has no such row or column; the cell renders blank.
func (m *Model) ValueAt(row, col int) (value string, ok bool) {
	if !m.inGrid(row, col) {
		return "", false
	}
	sourceRow := row / 2
	if row%2 == 0 {
		return m.leftCell(sourceRow, col)
	}
	return m.rightCell(sourceRow, col)
}

// MatchStatusAt classifies the row pair of row in column col. Both display
// rows of a pair return the same status.
func (m *Model) MatchStatusAt(row, col int) Status {
	if !m.inGrid(row, col) {
		return Neutral
	}
	return m.pairStatus(row/2, col)
}

// BackgroundAt returns the fill for a display cell: mismatch red wins over
// the even/odd pair banding.
func (m *Model) BackgroundAt(row, col int) Background {
	if m.MatchStatusAt(row, col) == Mismatch {
		return BackgroundMismatch
	}
	if (row/2)%2 == 0 {
		return BackgroundBand
	}
	return BackgroundPlain
}

func (m *Model) pairStatus(sourceRow, col int) Status {
	a, inA := m.leftCell(sourceRow, col)
	b, inB := m.rightCell(sourceRow, col)

	switch {
	case inA && inB:
		if a == b {
			return Match
		}
		return Mismatch
	case inA || inB:
		return Mismatch
	default:
		return Neutral
	}
}

func (m *Model) inGrid(row, col int) bool {
	return row >= 0 && row < m.DisplayRowCount() && col >= 0 && col < len(m.columns)
}

func (m *Model) leftCell(sourceRow, col int) (string, bool) {
	return cellOf(m.left, m.leftIndex[col], sourceRow)
}

func (m *Model) rightCell(sourceRow, col int) (string, bool) {
	return cellOf(m.right, m.rightIndex[col], sourceRow)
}

func cellOf(s side, col, row int) (string, bool) {
	if col == absent || row >= s.rows {
		return "", false
	}
	return s.src.CellAt(row, col), true
}
