package peck

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrMalformedLine   = errors.New("peck: malformed header line")
	ErrIncompleteHead  = errors.New("peck: header block not terminated by blank line")
	ErrInvalidText     = errors.New("peck: header value is not valid text")
	ErrBadValue        = errors.New("peck: cannot convert header value")
	ErrDuplicateHeader = errors.New("peck: duplicate header")
	ErrMissingHeader   = errors.New("peck: missing required header")
)

// ParseError is the concrete error type returned by Parse and
// ParseLoose. Kind is always one of the sentinel errors above, so
// callers can branch with errors.Is while still getting the offending
// header name and buffer position for diagnostics.
type ParseError struct {
	// Kind is the sentinel classifying the failure.
	Kind error

	// Header is the field name the failure relates to, or "" when the
	// failure is positional (malformed line, incomplete head).
	Header string

	// Offset is the byte offset into the input buffer where the
	// offending line begins, or -1 when no position applies.
	Offset int

	// Value is the raw value that failed conversion, or "".
	Value string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Header != "" {
		b.WriteString(": ")
		b.WriteString(e.Header)
	}
	if e.Value != "" {
		b.WriteString(" (")
		b.WriteString(strconv.Quote(e.Value))
		b.WriteByte(')')
	}
	if e.Offset >= 0 {
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Kind }

func positionalError(kind error, offset int) *ParseError {
	return &ParseError{Kind: kind, Offset: offset}
}

func fieldError(kind error, header string, offset int, value string) *ParseError {
	return &ParseError{Kind: kind, Header: header, Offset: offset, Value: value}
}
