package table

// streaming.go holds the io.Reader wrappers applied to CSV input before it
// reaches encoding/csv:
//
//   - countingReader: counts raw bytes so the size limit can be enforced on
//     streams with no known length (multipart uploads)
//   - utf8Sanitizer: replaces invalid UTF-8 bytes with '?'
//   - skipBOM: drops a leading UTF-8 byte order mark
//
// Sanitizing never grows the data, so the wrappers work in bounded memory.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// countingReader tracks the number of bytes read from the wrapped reader.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// utf8Sanitizer replaces every byte that is not part of a valid UTF-8
// sequence with '?'. Sequences split across reads are held back until the
// next read completes them.
type utf8Sanitizer struct {
	r       io.Reader
	chunk   [32 * 1024]byte
	pending []byte
	out     []byte
	err     error
}

func newUTF8Sanitizer(r io.Reader) *utf8Sanitizer {
	return &utf8Sanitizer{r: r}
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for len(s.out) == 0 {
		if s.err != nil {
			return 0, s.err
		}

		n, err := s.r.Read(s.chunk[:])
		data := make([]byte, 0, len(s.pending)+n)
		data = append(data, s.pending...)
		data = append(data, s.chunk[:n]...)

		s.err = err
		s.out, s.pending = sanitizeUTF8(data, err != nil)
	}

	n := copy(p, s.out)
	s.out = s.out[n:]
	return n, nil
}

// sanitizeUTF8 returns the sanitized bytes of data and, unless final is set,
// any trailing bytes that may still become a valid sequence.
func sanitizeUTF8(data []byte, final bool) (out, pending []byte) {
	out = make([]byte, 0, len(data))

	for i := 0; i < len(data); {
		if data[i] < utf8.RuneSelf {
			out = append(out, data[i])
			i++
			continue
		}

		if !final && !utf8.FullRune(data[i:]) {
			return out, append([]byte(nil), data[i:]...)
		}

		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			out = append(out, '?')
			i++
			continue
		}
		out = append(out, data[i:i+size]...)
		i += size
	}

	return out, nil
}

// skipBOM discards a UTF-8 byte order mark at the head of br, if present.
func skipBOM(br *bufio.Reader) error {
	head, err := br.Peek(len(utf8BOM))
	if err != nil && err != io.EOF {
		return err
	}
	if bytes.Equal(head, utf8BOM) {
		_, err = br.Discard(len(utf8BOM))
		return err
	}
	return nil
}
