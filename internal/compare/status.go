package compare

// Status classifies a (row pair, column) cell of a comparison.
type Status int

const (
	// Neutral means neither table has a value to compare.
	Neutral Status = iota
	// Match means both tables hold exactly the same string.
	Match
	// Mismatch means the strings differ or only one table holds a value.
	Mismatch
)

func (s Status) String() string {
	switch s {
	case Match:
		return "MATCH"
	case Mismatch:
		return "MISMATCH"
	default:
		return "NEUTRAL"
	}
}

// MarshalText encodes the status by name for JSON responses.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Background is the fill of a rendered cell. The UI styles it as the
// bg-<name> class.
type Background int

const (
	// BackgroundPlain fills cells of odd row pairs.
	BackgroundPlain Background = iota
	// BackgroundBand fills cells of even row pairs so each pair reads as a block.
	BackgroundBand
	// BackgroundMismatch overrides banding on every mismatched cell.
	BackgroundMismatch
)

func (b Background) String() string {
	switch b {
	case BackgroundBand:
		return "band"
	case BackgroundMismatch:
		return "mismatch"
	default:
		return "plain"
	}
}

// MarshalText encodes the background by name for JSON responses.
func (b Background) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}
