package peck

import "github.com/corvidlabs/peck/ascii"

// Header is one raw header field as it appeared in the head.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered collection of raw headers with case-insensitive
// helpers. It preserves every occurrence in input order, including
// fields no registry knows about.
type Headers []Header

// Get returns the first value with the given name (case-insensitive),
// or "" if the header is absent.
func (h Headers) Get(name string) string {
	for _, hdr := range h {
		if ascii.EqualFold(hdr.Name, name) {
			return hdr.Value
		}
	}
	return ""
}

// GetAll returns all values with the given name (case-insensitive).
func (h Headers) GetAll(name string) []string {
	var values []string
	for _, hdr := range h {
		if ascii.EqualFold(hdr.Name, name) {
			values = append(values, hdr.Value)
		}
	}
	return values
}

// Has reports whether at least one header with the given name exists.
func (h Headers) Has(name string) bool {
	for _, hdr := range h {
		if ascii.EqualFold(hdr.Name, name) {
			return true
		}
	}
	return false
}

// ParseLoose splits the head of raw into its raw name/value pairs
// without any registry: every line is kept, nothing is typed, names and
// values are copied into owned strings. It shares the scanner with
// Parse, so the line grammar and the error surface are identical minus
// the registry concerns.
//
// Use it to inspect heads whose shape is not known up front; use Parse
// when the field set is fixed.
func ParseLoose(raw []byte) (Headers, []byte, error) {
	var headers Headers

	sc := newHeadScanner(raw)
	for {
		line, done, perr := sc.next()
		if perr != nil {
			return nil, nil, perr
		}
		if done {
			break
		}
		headers = append(headers, Header{
			Name:  string(line.name.Bytes(raw)),
			Value: string(line.value.Bytes(raw)),
		})
	}
	return headers, raw[sc.body:], nil
}
