package compare

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/JonMunkholm/csvcompare/internal/table"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantMsg  string
	}{
		{"nil", nil, "ERR000", ""},
		{"validation", &ValidationError{Missing: []int{1}}, "VAL001", "Please provide files"},
		{"file too large", &LoadError{File: 1, Path: "a", Err: fmt.Errorf("%w: big", table.ErrFileTooLarge)}, "FILE001", "Error reading file 1"},
		{"empty file", &LoadError{File: 2, Path: "b", Err: table.ErrEmptyFile}, "FILE005", "Error reading file 2"},
		{"not found", &LoadError{File: 1, Path: "a", Err: &os.PathError{Op: "stat", Path: "a", Err: os.ErrNotExist}}, "FILE003", "file not found"},
		{"invalid csv", &LoadError{File: 2, Path: "b", Err: errors.New("invalid csv: bare quote")}, "FILE002", "Error reading file 2"},
		{"directory", &LoadError{File: 1, Path: "/tmp", Err: errors.New("/tmp is a directory")}, "FILE006", ""},
		{"no database", &LoadError{File: 1, Path: "pg:t", Err: table.ErrNoDatabase}, "DB001", ""},
		{"missing relation", &LoadError{File: 2, Path: "pg:t", Err: errors.New(`ERROR: relation "t" does not exist`)}, "DB002", ""},
		{"unknown load failure", &LoadError{File: 2, Path: "b", Err: errors.New("disk on fire")}, "FILE000", "disk on fire"},
		{"no object store", &LoadError{File: 2, Path: "s3://b/k", Err: table.ErrNoObjectStore}, "S3001", "Error reading file 2"},
		{"bad s3 location", &LoadError{File: 1, Path: "s3://b", Err: errors.New(`invalid s3 location "s3://b": want s3://<bucket>/<key>`)}, "S3002", ""},
		{"model", &ModelConstructionError{Reason: "x"}, "CMP001", ""},
		{"busy", ErrBusy, "CMP002", ""},
		{"stale", fmt.Errorf("%w: old", ErrStaleComparison), "CMP003", ""},
		{"none", ErrNoComparison, "CMP004", ""},
		{"deadline", context.DeadlineExceeded, "CMP005", ""},
		{"invalid request", errors.New("invalid request: row must be an integer"), "REQ001", ""},
		{"rate limit", errors.New("rate limit exceeded"), "RATE001", ""},
		{"unknown", errors.New("something odd"), "ERR000", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.wantMsg != "" && !strings.Contains(got.Message, tt.wantMsg) {
				t.Errorf("MapError() message = %q, want it to contain %q", got.Message, tt.wantMsg)
			}
			if got.Action == "" {
				t.Errorf("MapError() has no action for %v", tt.err)
			}
		})
	}
}

func TestMapError_LoadErrorKeepsCause(t *testing.T) {
	tests := []struct {
		name      string
		err       *LoadError
		wantCode  string
		wantParts []string
	}{
		{
			name:      "parser line number",
			err:       &LoadError{File: 2, Path: "orders.csv", Err: errors.New(`invalid csv: record on line 7: extraneous or missing " in quoted-field`)},
			wantCode:  "FILE002",
			wantParts: []string{"Error reading file 2 (orders.csv)", "not a valid delimited file", "record on line 7"},
		},
		{
			name:      "relation name",
			err:       &LoadError{File: 2, Path: "pg:public.orderz", Err: errors.New(`ERROR: relation "public.orderz" does not exist (SQLSTATE 42P01)`)},
			wantCode:  "DB002",
			wantParts: []string{"Error reading file 2 (pg:public.orderz)", "database table does not exist", `relation "public.orderz"`},
		},
		{
			name:      "wrapped path error",
			err:       &LoadError{File: 1, Path: "a.csv", Err: &os.PathError{Op: "stat", Path: "/data/a.csv", Err: os.ErrNotExist}},
			wantCode:  "FILE003",
			wantParts: []string{"Error reading file 1 (a.csv)", "stat /data/a.csv"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			for _, part := range tt.wantParts {
				if !strings.Contains(got.Message, part) {
					t.Errorf("MapError() message = %q, want it to contain %q", got.Message, part)
				}
			}
			if formatted := FormatUserError(tt.err); !strings.Contains(formatted, tt.wantParts[len(tt.wantParts)-1]) {
				t.Errorf("FormatUserError() = %q, want the cause text", formatted)
			}
		})
	}
}

func TestMapError_UnclassifiedCauseNotRepeated(t *testing.T) {
	got := MapError(&LoadError{File: 2, Path: "b", Err: errors.New("disk on fire")})
	if n := strings.Count(got.Message, "disk on fire"); n != 1 {
		t.Errorf("MapError() message = %q, want the cause exactly once", got.Message)
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(&ValidationError{Missing: []int{1, 2}})
	if !strings.Contains(got, "(Code: VAL001)") {
		t.Errorf("FormatUserError() = %q, want code suffix", got)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Missing: []int{1, 2}}
	if got, want := err.Error(), "please provide files to compare: missing file 1 and file 2"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
