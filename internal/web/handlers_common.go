package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/csvcompare/internal/compare"
	"github.com/JonMunkholm/csvcompare/internal/web/templates"
)

// maxGridLimit caps the rows one grid request may ask for.
const maxGridLimit = 1000

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

var errInvalidRequest = errors.New("invalid request")

// intParam parses a non-negative integer query parameter, returning def
// when it is absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return def, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", errInvalidRequest, name)
	}
	return i, nil
}

// coordParam parses a required grid coordinate. Any integer is accepted;
// the model reads coordinates outside the grid as absent.
func coordParam(r *http.Request, name string) (int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return 0, fmt.Errorf("%w: %s is required", errInvalidRequest, name)
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errInvalidRequest, name)
	}
	return i, nil
}

// gridParams builds one page of the grid of snap.
func gridParams(snap *compare.Snapshot, offset, limit int) *templates.GridParams {
	m := snap.Model
	return &templates.GridParams{
		ID:      snap.ID.String(),
		Columns: m.Columns(),
		Rows:    m.Window(offset, limit),
		Offset:  offset,
		Limit:   limit,
		Total:   m.DisplayRowCount(),
		Summary: m.Summary(),
	}
}

// comparisonResponse describes the current comparison to API clients.
type comparisonResponse struct {
	ID          string                `json:"id"`
	File1       string                `json:"file1"`
	File2       string                `json:"file2"`
	Columns     []string              `json:"columns"`
	DisplayRows int                   `json:"displayRows"`
	Summary     compare.Summary       `json:"summary"`
	Status      compare.StatusMessage `json:"status"`
	CreatedAt   time.Time             `json:"createdAt"`
	DurationMS  int64                 `json:"durationMs"`
}

func newComparisonResponse(snap *compare.Snapshot, status compare.StatusMessage) comparisonResponse {
	return comparisonResponse{
		ID:          snap.ID.String(),
		File1:       snap.File1,
		File2:       snap.File2,
		Columns:     snap.Model.Columns(),
		DisplayRows: snap.Model.DisplayRowCount(),
		Summary:     snap.Model.Summary(),
		Status:      status,
		CreatedAt:   snap.CreatedAt,
		DurationMS:  snap.Duration.Milliseconds(),
	}
}

type gridResponse struct {
	ID      string        `json:"id"`
	Offset  int           `json:"offset"`
	Limit   int           `json:"limit"`
	Total   int           `json:"total"`
	Columns []string      `json:"columns"`
	Rows    []compare.Row `json:"rows"`
}

type cellResponse struct {
	ID     string `json:"id"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Header string `json:"header"`
	Column string `json:"column"`
	compare.Cell
}

type statusResponse struct {
	ComparisonID string                `json:"comparisonId,omitempty"`
	Status       compare.StatusMessage `json:"status"`
	Limiter      compare.LimiterStatus `json:"limiter"`
}
