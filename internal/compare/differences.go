package compare

// Difference is one mismatched row pair and column.
type Difference struct {
	Line    int    `json:"line"`
	Column  string `json:"column"`
	Left    string `json:"left"`
	Right   string `json:"right"`
	InLeft  bool   `json:"inLeft"`
	InRight bool   `json:"inRight"`
}

// Differences lists mismatched cells in row pair order, then column order.
// A limit of zero or less returns them all.
func (m *Model) Differences(limit int) []Difference {
	out := []Difference{}
	for k := 0; k < m.pairs; k++ {
		for c, name := range m.columns {
			if m.pairStatus(k, c) != Mismatch {
				continue
			}
			a, inA := m.leftCell(k, c)
			b, inB := m.rightCell(k, c)
			out = append(out, Difference{Line: k, Column: name, Left: a, Right: b, InLeft: inA, InRight: inB})
			if limit > 0 && len(out) == limit {
				return out
			}
		}
	}
	return out
}
