package compare

// error_messages.go turns comparison errors into user-facing messages with
// stable support codes.
//
// # Codes
//
//	VAL001  - Missing file path(s); raised before any load
//	FILE001 - File too large
//	FILE002 - Not a valid delimited file
//	FILE003 - File not found
//	FILE004 - Permission denied
//	FILE005 - Empty file (no header row)
//	FILE006 - Path is a directory
//	FILE000 - Any other load failure
//	DB001   - Database source requested but no database configured
//	DB002   - Database table does not exist
//	DB003   - Database unreachable
//	S3001   - S3 source requested but no object store configured
//	S3002   - Malformed s3:// location
//	CMP001  - Model invariant violated
//	CMP002  - Too many comparisons in progress
//	CMP003  - Comparison replaced while being viewed
//	CMP004  - No comparison loaded yet
//	CMP005  - Comparison timed out
//	REQ001  - Malformed request parameters or body
//	RATE001 - Too many requests
//	ERR000  - Unknown error
//
// Load failures always name the file (1 or 2) and its source in the message
// and end with the underlying error text; the code describes the cause. Patterns are matched case-insensitively
// with strings.Contains and the first match wins.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/JonMunkholm/csvcompare/internal/table"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// loadSentinels classify the error wrapped by a LoadError. They are checked
// before loadPatterns, which catch drivers that only expose text.
var loadSentinels = []struct {
	err error
	msg UserMessage
}{
	{table.ErrFileTooLarge, UserMessage{"File is too large", "Split the file or raise COMPARE_MAX_FILE_SIZE", "FILE001"}},
	{table.ErrEmptyFile, UserMessage{"File is empty", "Provide a file with a header row", "FILE005"}},
	{table.ErrNoDatabase, UserMessage{"Database sources are not available", "Set DATABASE_URL to compare database tables", "DB001"}},
	{table.ErrNoObjectStore, UserMessage{"S3 sources are not available", "Set S3_ENABLED=true to compare objects stored in S3", "S3001"}},
	{os.ErrNotExist, UserMessage{"File not found", "Check the path and try again", "FILE003"}},
	{os.ErrPermission, UserMessage{"Permission denied", "Check that the file is readable", "FILE004"}},
}

var loadPatterns = []errorPattern{
	{"invalid csv", UserMessage{"File is not a valid delimited file", "Check quoting and the delimiter setting", "FILE002"}},
	{"unsupported delimiter", UserMessage{"Delimiter setting is not supported", "Use auto, ',' or ';'", "FILE002"}},
	{"is a directory", UserMessage{"Path is a directory", "Select a file, not a folder", "FILE006"}},
	{"does not exist", UserMessage{"Database table does not exist", "Check the schema and table name", "DB002"}},
	{"invalid table name", UserMessage{"Database table name is invalid", "Use pg:<table> or pg:<schema>.<table>", "DB002"}},
	{"invalid s3 location", UserMessage{"S3 location is invalid", "Use s3://<bucket>/<key>", "S3002"}},
	{"connection refused", UserMessage{"Unable to connect to database", "Please try again in a few moments", "DB003"}},
}

var timeoutMessage = UserMessage{"Comparison timed out", "Try smaller files or raise COMPARE_LOAD_TIMEOUT", "CMP005"}

var generalPatterns = []errorPattern{
	{"invalid request", UserMessage{"Invalid request", "Check the request parameters and try again", "REQ001"}},
	{"rate limit", UserMessage{"Too many requests", "Please wait a moment before trying again", "RATE001"}},
	{"context deadline exceeded", timeoutMessage},
	{"context canceled", UserMessage{"Comparison was cancelled", "Please try again", "CMP005"}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the application logs",
	Code:    "ERR000",
}

// MapError converts err into a UserMessage. A nil error maps to the default.
func MapError(err error) UserMessage {
	if err == nil {
		return defaultMessage
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return UserMessage{
			Message: "Please provide files to compare",
			Action:  "Select both File 1 and File 2",
			Code:    "VAL001",
		}
	}

	var lerr *LoadError
	if errors.As(err, &lerr) {
		cause, classified := classifyLoad(lerr.Err)
		cause.Message = fmt.Sprintf("Error reading file %d (%s): %s", lerr.File, lerr.Path, lowerFirst(cause.Message))
		if classified {
			cause.Message += ": " + lerr.Err.Error()
		}
		return cause
	}

	var merr *ModelConstructionError
	if errors.As(err, &merr) {
		return UserMessage{"The files could not be compared", "Check both headers and try again", "CMP001"}
	}

	switch {
	case errors.Is(err, ErrBusy):
		return UserMessage{"Too many comparisons in progress", "Please wait a moment and try again", "CMP002"}
	case errors.Is(err, ErrStaleComparison):
		return UserMessage{"The comparison was replaced by a newer one", "Reload the page to see the current comparison", "CMP003"}
	case errors.Is(err, ErrNoComparison):
		return UserMessage{"No comparison loaded", "Select two files and press Compare", "CMP004"}
	case errors.Is(err, context.DeadlineExceeded):
		return timeoutMessage
	}

	if msg, ok := matchPattern(err.Error(), generalPatterns); ok {
		return msg
	}
	return defaultMessage
}

// classifyLoad picks the message for the cause of a LoadError. classified
// is false when no sentinel or pattern matched and the message is the raw
// cause text.
func classifyLoad(err error) (msg UserMessage, classified bool) {
	if err == nil {
		return UserMessage{"Unknown load failure", "Please try again", "FILE000"}, false
	}
	for _, s := range loadSentinels {
		if errors.Is(err, s.err) {
			return s.msg, true
		}
	}
	if msg, ok := matchPattern(err.Error(), loadPatterns); ok {
		return msg, true
	}
	if msg, ok := matchPattern(err.Error(), generalPatterns); ok {
		return msg, true
	}
	return UserMessage{
		Message: err.Error(),
		Action:  "Check that the file is a readable CSV file",
		Code:    "FILE000",
	}, false
}

func matchPattern(text string, patterns []errorPattern) (UserMessage, bool) {
	lower := strings.ToLower(text)
	for _, p := range patterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg, true
		}
	}
	return UserMessage{}, false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// FormatUserError returns a user-friendly string with the support code.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Action != "" {
		return fmt.Sprintf("%s. %s. (Code: %s)", msg.Message, msg.Action, msg.Code)
	}
	return fmt.Sprintf("%s (Code: %s)", msg.Message, msg.Code)
}
