package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/JonMunkholm/csvcompare/internal/compare"
	"github.com/JonMunkholm/csvcompare/internal/table"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

type compareRequest struct {
	File1 string `json:"file1"`
	File2 string `json:"file2"`
}

// handleCurrent describes the current comparison.
func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Lookup("")
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, newComparisonResponse(snap, s.service.StatusBar().Message()))
}

// handleCompareJSON compares two sources named in a JSON body.
func (s *Server) handleCompareJSON(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", errInvalidRequest, err), http.StatusBadRequest)
		return
	}

	snap, err := s.service.Compare(r.Context(), req.File1, req.File2)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, newComparisonResponse(snap, s.service.StatusBar().Message()))
}

// handleCompareUpload compares the multipart files "file1" and "file2".
func (s *Server) handleCompareUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.cfg.Compare.MaxFileSize+multipartMemory)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		respondError(w, r, fmt.Errorf("%w: %v", errInvalidRequest, err), status)
		return
	}
	defer r.MultipartForm.RemoveAll()

	snap, err := s.service.CompareInputs(r.Context(),
		s.uploadInput(r.MultipartForm, "file1"),
		s.uploadInput(r.MultipartForm, "file2"),
	)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, newComparisonResponse(snap, s.service.StatusBar().Message()))
}

// uploadInput returns an Input reading the first file of field. A missing
// field yields an empty Input, which fails validation.
func (s *Server) uploadInput(form *multipart.Form, field string) compare.Input {
	headers := form.File[field]
	if len(headers) == 0 {
		return compare.Input{}
	}
	fh := headers[0]
	name := fh.Filename
	if name == "" {
		name = field
	}

	return compare.Input{
		Name: name,
		Load: func(ctx context.Context) (*table.Table, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			defer f.Close()
			return s.uploads.Read(ctx, name, f)
		},
	}
}

// handleGrid returns a window of display rows. A stale id yields 409 so a
// client never mixes rows of two comparisons.
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	limit, err := intParam(r, "limit", s.cfg.Compare.PageSize)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	limit = min(limit, maxGridLimit)

	snap, err := s.service.Lookup(r.URL.Query().Get("id"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	g := gridParams(snap, offset, limit)
	writeJSON(w, r, http.StatusOK, gridResponse{
		ID:      g.ID,
		Offset:  g.Offset,
		Limit:   g.Limit,
		Total:   g.Total,
		Columns: g.Columns,
		Rows:    g.Rows,
	})
}

// handleCell returns one display cell. Coordinates outside the grid are
// reported as absent and neutral, as the model defines them.
func (s *Server) handleCell(w http.ResponseWriter, r *http.Request) {
	row, err := coordParam(r, "row")
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	col, err := coordParam(r, "col")
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	snap, err := s.service.Lookup(r.URL.Query().Get("id"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, http.StatusOK, cellResponse{
		ID:     snap.ID.String(),
		Row:    row,
		Col:    col,
		Header: snap.Model.RowHeader(row),
		Column: snap.Model.ColumnHeader(col),
		Cell:   snap.Model.CellAt(row, col),
	})
}

// handleStatus reports the status bar and in-flight comparisons.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:  s.service.StatusBar().Message(),
		Limiter: s.service.LimiterStatus(),
	}
	if snap := s.service.Current(); snap != nil {
		resp.ComparisonID = snap.ID.String()
	}
	writeJSON(w, r, http.StatusOK, resp)
}
