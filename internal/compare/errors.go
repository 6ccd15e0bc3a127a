package compare

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBusy is returned when every comparison slot stays occupied for the
	// whole wait period.
	ErrBusy = errors.New("too many comparisons in progress, please try again later")

	// ErrNoComparison is returned when the grid is queried before any
	// comparison succeeded.
	ErrNoComparison = errors.New("no comparison loaded")

	// ErrStaleComparison is returned when a client asks for cells of a
	// comparison that has since been replaced.
	ErrStaleComparison = errors.New("comparison was replaced")
)

// ValidationError reports missing input before any file is loaded.
type ValidationError struct {
	// Missing lists the file numbers (1, 2) whose path is empty.
	Missing []int
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Missing))
	for i, n := range e.Missing {
		names[i] = fmt.Sprintf("file %d", n)
	}
	return "please provide files to compare: missing " + strings.Join(names, " and ")
}

// LoadError reports that one input could not be read or parsed.
type LoadError struct {
	File int    // 1 or 2
	Path string // source as given by the user
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error reading file %d (%s): %v", e.File, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ModelConstructionError reports a violated invariant while building a Model.
type ModelConstructionError struct {
	Reason string
}

func (e *ModelConstructionError) Error() string {
	return "model construction failed: " + e.Reason
}
