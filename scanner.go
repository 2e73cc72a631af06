package peck

import "bytes"

var crlf = []byte("\r\n")

// headScanner walks a buffer one header line at a time. Lines are
// terminated by CRLF only; a lone LF is treated as part of the line.
// The scan ends at the first empty line, which marks the head/body
// boundary. A scanner is good for exactly one forward pass.
type headScanner struct {
	buf  []byte
	pos  int
	body int // byte offset of the body, valid once next returns done
}

func newHeadScanner(buf []byte) *headScanner {
	return &headScanner{buf: buf, body: -1}
}

// next returns the spans of the next header line. done is true once the
// blank line closing the head has been consumed; after that the body
// offset is available from s.body. Running out of buffer before the
// blank line is found is an error: the head is incomplete and nothing
// can be assumed about the body.
func (s *headScanner) next() (line headerLine, done bool, err *ParseError) {
	if s.pos >= len(s.buf) {
		return headerLine{}, false, positionalError(ErrIncompleteHead, s.pos)
	}

	idx := bytes.Index(s.buf[s.pos:], crlf)
	if idx == -1 {
		return headerLine{}, false, positionalError(ErrIncompleteHead, s.pos)
	}
	if idx == 0 {
		// Empty line: the head is closed, the body starts right after.
		s.body = s.pos + 2
		s.pos = s.body
		return headerLine{}, true, nil
	}

	lineStart := s.pos
	lineEnd := s.pos + idx
	s.pos = lineEnd + 2

	// Split on the first ':' only; values may contain colons.
	colon := bytes.IndexByte(s.buf[lineStart:lineEnd], ':')
	if colon == -1 {
		return headerLine{}, false, positionalError(ErrMalformedLine, lineStart)
	}

	name := Span{Start: lineStart, End: lineStart + colon}.trimSpace(s.buf)
	value := Span{Start: lineStart + colon + 1, End: lineEnd}.trimSpace(s.buf)
	if name.IsEmpty() {
		return headerLine{}, false, positionalError(ErrMalformedLine, lineStart)
	}

	return headerLine{name: name, value: value, offset: lineStart}, false, nil
}

// headerLine is one resolved name/value pair. It is consumed by the
// dispatch loop immediately and never retained.
type headerLine struct {
	name   Span
	value  Span
	offset int
}
