package web

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/csvcompare/internal/compare"
	"github.com/JonMunkholm/csvcompare/internal/logging"
	"github.com/JonMunkholm/csvcompare/internal/web/templates"
)

// pageParams assembles the compare page from the current state.
func (s *Server) pageParams(offset int, alert *compare.UserMessage) templates.PageParams {
	file1, file2 := s.prefilled()
	p := templates.PageParams{
		App:    s.app,
		File1:  file1,
		File2:  file2,
		Status: s.service.StatusBar().Message(),
		Alert:  alert,
	}
	if snap := s.service.Current(); snap != nil {
		p.Grid = gridParams(snap, offset, s.cfg.Compare.PageSize)
	}
	return p
}

// handleIndex renders the compare page. An invalid offset shows the first
// page. HTMX paging gets only the compare fragment, except when htmx
// restores history and needs the whole page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		offset = 0
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Add("Vary", "HX-Request")
	p := s.pageParams(offset, nil)
	if isHTMX(r) && !isHistoryRestore(r) {
		templates.CompareContent(p).Render(r.Context(), w)
		return
	}
	templates.ComparePage(p).Render(r.Context(), w)
}

// handleCompareForm runs a comparison from the form. On failure the page, or
// for HTMX the compare fragment, is re-rendered with an alert above the
// previous grid.
func (s *Server) handleCompareForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", errInvalidRequest, err), http.StatusBadRequest)
		return
	}

	file1, file2 := r.PostFormValue("file1"), r.PostFormValue("file2")
	s.Prefill(file1, file2)

	_, err := s.service.Compare(r.Context(), file1, file2)
	if err != nil {
		status := statusFor(err)
		logging.FromContext(r.Context()).Warn("comparison failed", "error", err, "status", status)
		msg := compare.MapError(err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if isHTMX(r) {
			templates.CompareContent(s.pageParams(0, &msg)).Render(r.Context(), w)
			return
		}
		templates.ComparePage(s.pageParams(0, &msg)).Render(r.Context(), w)
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.CompareContent(s.pageParams(0, nil)).Render(r.Context(), w)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.AboutPage(s.app).Render(r.Context(), w)
}
