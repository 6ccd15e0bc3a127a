package table

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Delimiter settings accepted by CSVLoader.
const (
	DelimiterAuto      = "auto"
	DelimiterComma     = ","
	DelimiterSemicolon = ";"
)

// DefaultMaxFileSize is used when a CSVLoader has no explicit limit (100MB).
const DefaultMaxFileSize = 100 * 1024 * 1024

// ctxCheckInterval is how many records are parsed between cancellation checks.
const ctxCheckInterval = 1000

// CSVLoader reads delimited files with a header row into Tables.
type CSVLoader struct {
	// Delimiter is one of DelimiterAuto, DelimiterComma or DelimiterSemicolon.
	Delimiter string

	// MaxFileSize is the largest accepted input in bytes.
	MaxFileSize int64
}

// NewCSVLoader creates a loader with the given delimiter setting and size limit.
func NewCSVLoader(delimiter string, maxFileSize int64) *CSVLoader {
	if delimiter == "" {
		delimiter = DelimiterAuto
	}
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &CSVLoader{Delimiter: delimiter, MaxFileSize: maxFileSize}
}

// Load opens the file at path and parses it.
func (l *CSVLoader) Load(ctx context.Context, path string) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > l.maxSize() {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, info.Size(), l.maxSize())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return l.Read(ctx, filepath.Base(path), f)
}

// Read parses a delimited stream. The first record is the header; every
// following record is a data row. Cell values are kept verbatim.
func (l *CSVLoader) Read(ctx context.Context, name string, r io.Reader) (*Table, error) {
	limit := l.maxSize()
	counter := &countingReader{r: io.LimitReader(r, limit+1)}
	br := bufio.NewReaderSize(newUTF8Sanitizer(counter), 64*1024)

	if err := skipBOM(br); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	comma, err := l.resolveDelimiter(br)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}

	// encoding/csv skips blank lines. With a single column a blank line is
	// an empty value, so the gaps are restored from record positions.
	single := len(header) == 1
	next := nextLine(cr, header)

	var rows [][]string
	for {
		if len(rows)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if counter.n > limit {
				break
			}
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		if single {
			line, _ := cr.FieldPos(0)
			for ; next < line; next++ {
				rows = append(rows, []string{""})
			}
			next = nextLine(cr, record)
		}
		rows = append(rows, record)
	}

	// A truncated stream may still parse, so the limit is checked last.
	if counter.n > limit {
		return nil, fmt.Errorf("%w: exceeds limit of %d bytes", ErrFileTooLarge, limit)
	}

	return New(name, header, rows), nil
}

// nextLine returns the input line following the record just read. A quoted
// field may span several lines.
func nextLine(cr *csv.Reader, record []string) int {
	last := len(record) - 1
	line, _ := cr.FieldPos(last)
	return line + strings.Count(record[last], "\n") + 1
}

func (l *CSVLoader) maxSize() int64 {
	if l.MaxFileSize <= 0 {
		return DefaultMaxFileSize
	}
	return l.MaxFileSize
}

func (l *CSVLoader) resolveDelimiter(br *bufio.Reader) (rune, error) {
	switch l.Delimiter {
	case DelimiterComma:
		return ',', nil
	case DelimiterSemicolon:
		return ';', nil
	case DelimiterAuto, "":
		return detectDelimiter(br), nil
	default:
		return 0, fmt.Errorf("unsupported delimiter %q", l.Delimiter)
	}
}

// detectDelimiter inspects the header line without consuming it and picks
// ';' when it holds more semicolons than commas.
func detectDelimiter(br *bufio.Reader) rune {
	head, _ := br.Peek(br.Size())
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	if bytes.Count(head, []byte{';'}) > bytes.Count(head, []byte{','}) {
		return ';'
	}
	return ','
}
