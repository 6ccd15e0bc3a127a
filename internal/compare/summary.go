package compare

// Summary counts the outcome of a comparison. Cell counts are per row pair
// and column, so each counted cell covers two display rows.
type Summary struct {
	Pairs        int      `json:"pairs"`
	Columns      int      `json:"columns"`
	LeftRows     int      `json:"leftRows"`
	RightRows    int      `json:"rightRows"`
	Matched      int      `json:"matched"`
	Mismatched   int      `json:"mismatched"`
	Neutral      int      `json:"neutral"`
	OnlyInLeft   []string `json:"onlyInLeft"`
	OnlyInRight  []string `json:"onlyInRight"`
	MismatchedIn []string `json:"mismatchedColumns"`
}

// Identical reports whether no cell was flagged.
func (s Summary) Identical() bool { return s.Mismatched == 0 }

func (m *Model) summarize() Summary {
	s := Summary{
		Pairs:        m.pairs,
		Columns:      len(m.columns),
		LeftRows:     m.left.rows,
		RightRows:    m.right.rows,
		OnlyInLeft:   []string{},
		OnlyInRight:  []string{},
		MismatchedIn: []string{},
	}

	for col, name := range m.columns {
		switch {
		case m.rightIndex[col] == absent:
			s.OnlyInLeft = append(s.OnlyInLeft, name)
		case m.leftIndex[col] == absent:
			s.OnlyInRight = append(s.OnlyInRight, name)
		}

		flagged := false
		for row := 0; row < m.pairs; row++ {
			switch m.pairStatus(row, col) {
			case Match:
				s.Matched++
			case Mismatch:
				s.Mismatched++
				flagged = true
			default:
				s.Neutral++
			}
		}
		if flagged {
			s.MismatchedIn = append(s.MismatchedIn, name)
		}
	}

	return s
}
