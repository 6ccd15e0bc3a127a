package web

// errors.go renders every failure the same way: the technical error is
// logged with the request and comparison IDs, and the client receives the
// mapped compare.UserMessage as an HTMX fragment, JSON or plain text.

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/JonMunkholm/csvcompare/internal/compare"
	"github.com/JonMunkholm/csvcompare/internal/logging"
	"github.com/JonMunkholm/csvcompare/internal/web/templates"
)

var errRateLimited = errors.New("rate limit exceeded")

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes the user-facing message in the format
// the client asked for.
func respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	msg := compare.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	)

	switch {
	case isHTMX(r):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("HX-Retarget", "#alerts")
		w.Header().Set("HX-Reswap", "innerHTML")
		w.WriteHeader(status)
		templates.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w)
	case wantsJSON(r):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(ErrorResponse{
			Error:   msg.Message,
			Message: msg.Message,
			Action:  msg.Action,
			Code:    msg.Code,
		})
	default:
		http.Error(w, msg.Message+" ("+msg.Code+")", status)
	}
}

// statusFor picks the HTTP status for a comparison error.
func statusFor(err error) int {
	var (
		verr *compare.ValidationError
		lerr *compare.LoadError
	)
	switch {
	case errors.As(err, &verr), errors.Is(err, errInvalidRequest):
		return http.StatusBadRequest
	case errors.As(err, &lerr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, compare.ErrBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, compare.ErrNoComparison):
		return http.StatusNotFound
	case errors.Is(err, compare.ErrStaleComparison):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// isHistoryRestore reports whether htmx is reloading a page missing from its
// history cache.
func isHistoryRestore(r *http.Request) bool {
	return r.Header.Get("HX-History-Restore-Request") == "true"
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// clientIP returns the host part of r.RemoteAddr, which TrustedRealIP has
// already resolved.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
