package peck

import (
	"golang.org/x/net/http/httpguts"
)

// slotState tracks a field's resolution progress during one parse.
// Transitions only move forward: unset to single, or unset to multi.
type slotState uint8

const (
	slotUnset slotState = iota
	slotSingle
	slotMulti
)

type slot struct {
	state  slotState
	value  Value   // single cardinalities
	values []Value // multi cardinalities, input order
}

// Parse scans the header lines at the start of raw, dispatches each one
// against the registry, and assembles the typed record. It returns the
// record together with the body, the bytes following the blank line
// that closes the head.
//
// The record and the body alias raw for every borrowed field kind: the
// caller must keep raw alive and unmodified for as long as either is in
// use. Record.Detach produces an owned copy when that is impractical.
//
// Parse is a pure function; a Registry may be shared by concurrent
// calls. The first error aborts the parse, and no partial record is
// ever returned.
func Parse(raw []byte, reg *Registry) (*Record, []byte, error) {
	rec := &Record{reg: reg, buf: raw, slots: make([]slot, len(reg.fields))}

	sc := newHeadScanner(raw)
	for {
		line, done, perr := sc.next()
		if perr != nil {
			return nil, nil, perr
		}
		if done {
			break
		}
		if perr := dispatch(rec, reg, raw, line); perr != nil {
			return nil, nil, perr
		}
	}

	if perr := assemble(rec, reg); perr != nil {
		return nil, nil, perr
	}
	rec.body = sc.body
	return rec, raw[sc.body:], nil
}

// dispatch matches one header line against the registry and updates the
// target slot per its cardinality. Unregistered names are skipped, but
// in strict or ASCII-only mode their lines are still validated: a head
// is either acceptable as a whole or not at all.
func dispatch(rec *Record, reg *Registry, raw []byte, line headerLine) *ParseError {
	nameBytes := line.name.Bytes(raw)
	valueBytes := line.value.Bytes(raw)

	if reg.asciiOnly {
		if off := validASCIISpan(raw, line.name); off >= 0 {
			return positionalError(ErrInvalidText, off)
		}
		if off := validASCIISpan(raw, line.value); off >= 0 {
			return positionalError(ErrInvalidText, off)
		}
	}
	if reg.strict {
		if !httpguts.ValidHeaderFieldName(viewString(nameBytes)) {
			return positionalError(ErrMalformedLine, line.offset)
		}
		if !httpguts.ValidHeaderFieldValue(viewString(valueBytes)) {
			return positionalError(ErrMalformedLine, line.offset)
		}
	}

	idx, ok := reg.lookup(nameBytes)
	if !ok {
		return nil
	}
	desc := &reg.fields[idx]
	st := &rec.slots[idx]

	if !desc.Card.multi() {
		if st.state == slotSingle {
			switch reg.duplicates {
			case DuplicateReject:
				return fieldError(ErrDuplicateHeader, desc.Name, line.offset, "")
			case DuplicateFirstWins:
				return nil
			}
			// DuplicateLastWins converts and overwrites below.
		}
		v, perr := convert(raw, line.value, desc.Conv, desc.Name, line.offset)
		if perr != nil {
			return perr
		}
		st.value = v
		st.state = slotSingle
		return nil
	}

	v, perr := convert(raw, line.value, desc.Conv, desc.Name, line.offset)
	if perr != nil {
		return perr
	}
	// Token lists flatten into the slot so repeated occurrences read as
	// one sequence; scalar kinds append one element per occurrence.
	if list, ok := v.List(); ok {
		st.values = append(st.values, list...)
	} else {
		st.values = append(st.values, v)
	}
	st.state = slotMulti
	return nil
}

// assemble enforces required cardinalities once the scan is exhausted.
// Optional fields left unset stay unset; their accessors report
// absence rather than an error.
func assemble(rec *Record, reg *Registry) *ParseError {
	for i := range reg.fields {
		desc := &reg.fields[i]
		st := &rec.slots[i]
		switch desc.Card {
		case Required:
			if st.state == slotUnset {
				return fieldError(ErrMissingHeader, desc.Name, -1, "")
			}
		case RequiredMulti:
			if len(st.values) == 0 {
				return fieldError(ErrMissingHeader, desc.Name, -1, "")
			}
		}
	}
	return nil
}
