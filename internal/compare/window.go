package compare

// Cell is everything a renderer needs for one display cell.
type Cell struct {
	Value      string     `json:"value"`
	Present    bool       `json:"present"`
	Status     Status     `json:"status"`
	Background Background `json:"background"`
}

// Row is one display row with its header and cells.
type Row struct {
	Index  int    `json:"index"`
	Header string `json:"header"`
	Cells  []Cell `json:"cells"`
}

// CellAt gathers value, status and background for a display coordinate.
func (m *Model) CellAt(row, col int) Cell {
	v, ok := m.ValueAt(row, col)
	return Cell{
		Value:      v,
		Present:    ok,
		Status:     m.MatchStatusAt(row, col),
		Background: m.BackgroundAt(row, col),
	}
}

// Window returns up to limit display rows starting at offset. Offsets past
// the end yield an empty window.
func (m *Model) Window(offset, limit int) []Row {
	total := m.DisplayRowCount()
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || offset >= total {
		return []Row{}
	}
	end := min(offset+limit, total)

	rows := make([]Row, 0, end-offset)
	for r := offset; r < end; r++ {
		cells := make([]Cell, len(m.columns))
		for c := range m.columns {
			cells[c] = m.CellAt(r, c)
		}
		rows = append(rows, Row{
			Index:  r,
			Header: m.RowHeader(r),
			Cells:  cells,
		})
	}
	return rows
}
