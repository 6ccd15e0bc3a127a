package table

import (
	"bufio"
	"bytes"
	"io"
	"testing"
	"testing/iotest"
)

func TestSkipBOM(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("id,name")...),
			expected: "id,name",
		},
		{
			name:     "file without BOM",
			input:    []byte("id,name"),
			expected: "id,name",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM kept",
			input:    []byte{0xEF, 0xBB, 'a'},
			expected: string([]byte{0xEF, 0xBB, 'a'}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := bufio.NewReader(bytes.NewReader(tt.input))
			if err := skipBOM(br); err != nil {
				t.Fatalf("skipBOM() error = %v", err)
			}
			got, err := io.ReadAll(br)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestUTF8Sanitizer(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "valid ASCII",
			input:    []byte("a,b\n1,2\n"),
			expected: "a,b\n1,2\n",
		},
		{
			name:     "valid multibyte",
			input:    []byte("name\nJosé\n"),
			expected: "name\nJosé\n",
		},
		{
			name:     "invalid byte replaced",
			input:    []byte{'h', 'e', 0x80, 'l', 'o'},
			expected: "he?lo",
		},
		{
			name:     "truncated sequence at EOF",
			input:    []byte{'a', 0xC3},
			expected: "a?",
		},
		{
			name:     "empty input",
			input:    []byte{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(newUTF8Sanitizer(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestUTF8Sanitizer_SplitSequence(t *testing.T) {
	// One byte per read forces every multibyte rune across a read boundary.
	input := []byte("é,ü\n€")
	got, err := io.ReadAll(newUTF8Sanitizer(iotest.OneByteReader(bytes.NewReader(input))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(input) {
		t.Errorf("got %q, want %q", got, input)
	}
}

func TestCountingReader(t *testing.T) {
	c := &countingReader{r: bytes.NewReader([]byte("0123456789"))}
	if _, err := io.ReadAll(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.n != 10 {
		t.Errorf("n = %d, want 10", c.n)
	}
}
