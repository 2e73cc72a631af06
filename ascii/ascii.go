// Package ascii provides allocation-free ASCII helpers used by the
// header parsing engine. Header field names are matched with ASCII case
// folding only; bytes outside the ASCII range never compare equal to
// anything but themselves.
package ascii

import "unicode/utf8"

// Lower returns the ASCII lowercase form of c. Non-letter bytes are
// returned unchanged.
func Lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// EqualFold reports whether a and b are equal under ASCII case folding.
// Unlike strings.EqualFold it never considers Unicode case mappings,
// which is the comparison header field names require.
func EqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if Lower(a[i]) != Lower(b[i]) {
			return false
		}
	}
	return true
}

// EqualFoldBytes is EqualFold over a byte slice and a string.
func EqualFoldBytes(a []byte, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if Lower(a[i]) != Lower(b[i]) {
			return false
		}
	}
	return true
}

// LowerString returns s with ASCII uppercase letters folded to
// lowercase. Bytes outside the ASCII letter range are untouched, so
// the result is byte-for-byte comparable with keys folded by Lower.
func LowerString(s string) string {
	i := 0
	for ; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			break
		}
	}
	if i == len(s) {
		return s
	}
	b := []byte(s)
	for ; i < len(b); i++ {
		b[i] = Lower(b[i])
	}
	return string(b)
}

// IsASCII reports whether b contains only 7-bit bytes.
func IsASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// IndexNonASCII returns the index of the first byte outside the 7-bit
// range, or -1 if b is pure ASCII.
func IndexNonASCII(b []byte) int {
	for i, c := range b {
		if c >= utf8.RuneSelf {
			return i
		}
	}
	return -1
}

// IsSpace reports whether c is linear whitespace (space or tab).
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t'
}
