package peck

import (
	"unsafe"

	"github.com/corvidlabs/peck/ascii"
)

// Span is a borrowed region of the buffer being parsed, expressed as a
// half-open byte range. Spans never own data; resolving one against a
// different buffer than the one it was produced from is a programming
// error.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool { return s.End <= s.Start }

// Bytes resolves the span against buf. The returned slice aliases buf.
func (s Span) Bytes(buf []byte) []byte { return buf[s.Start:s.End] }

// trimSpace shrinks the span past leading and trailing linear
// whitespace. The underlying bytes are untouched.
func (s Span) trimSpace(buf []byte) Span {
	for s.Start < s.End && ascii.IsSpace(buf[s.Start]) {
		s.Start++
	}
	for s.End > s.Start && ascii.IsSpace(buf[s.End-1]) {
		s.End--
	}
	return s
}

// viewString converts b to a string without copying. The string aliases
// b's backing array: it must never be written through, and it must not
// outlive the buffer it was carved from.
func viewString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
