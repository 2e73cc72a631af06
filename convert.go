package peck

import (
	"strconv"
	"unicode/utf8"

	"github.com/corvidlabs/peck/ascii"
)

// Value is one converted field value. The kind tag says which accessor
// carries the payload; Record's typed accessors are the usual way in,
// this type is exported for integrators that walk records generically.
type Value struct {
	kind Kind

	str  string // KindText (borrowed view), KindString (owned)
	raw  []byte // KindBytes (borrowed)
	i64  int64
	u64  uint64
	f64  float64
	b    bool
	list []Value // KindTokenList
}

// Kind returns the conversion kind that produced the value.
func (v Value) Kind() Kind { return v.kind }

// Text returns the text payload of a KindText or KindString value.
func (v Value) Text() (string, bool) {
	if v.kind == KindText || v.kind == KindString {
		return v.str, true
	}
	return "", false
}

// Bytes returns the payload of a KindBytes value.
func (v Value) Bytes() ([]byte, bool) {
	if v.kind == KindBytes {
		return v.raw, true
	}
	return nil, false
}

// Int returns the payload of a KindInt value.
func (v Value) Int() (int64, bool) {
	if v.kind == KindInt {
		return v.i64, true
	}
	return 0, false
}

// Uint returns the payload of a KindUint value.
func (v Value) Uint() (uint64, bool) {
	if v.kind == KindUint {
		return v.u64, true
	}
	return 0, false
}

// Float returns the payload of a KindFloat value.
func (v Value) Float() (float64, bool) {
	if v.kind == KindFloat {
		return v.f64, true
	}
	return 0, false
}

// Bool returns the payload of a KindBool value.
func (v Value) Bool() (bool, bool) {
	if v.kind == KindBool {
		return v.b, true
	}
	return false, false
}

// List returns the elements of a KindTokenList value.
func (v Value) List() ([]Value, bool) {
	if v.kind == KindTokenList {
		return v.list, true
	}
	return nil, false
}

// convert turns one raw value span into a typed Value per conv. buf is
// the whole input buffer; borrowed kinds alias it. name and offset feed
// the error context only.
func convert(buf []byte, sp Span, conv Conversion, name string, offset int) (Value, *ParseError) {
	raw := sp.Bytes(buf)

	switch conv.Kind {
	case KindText:
		if !utf8.Valid(raw) {
			return Value{}, fieldError(ErrInvalidText, name, offset, "")
		}
		return Value{kind: KindText, str: viewString(raw)}, nil

	case KindString:
		if !utf8.Valid(raw) {
			return Value{}, fieldError(ErrInvalidText, name, offset, "")
		}
		return Value{kind: KindString, str: string(raw)}, nil

	case KindBytes:
		return Value{kind: KindBytes, raw: raw}, nil

	case KindInt:
		n, err := strconv.ParseInt(viewString(raw), 10, 64)
		if err != nil {
			return Value{}, fieldError(ErrBadValue, name, offset, string(raw))
		}
		return Value{kind: KindInt, i64: n}, nil

	case KindUint:
		n, err := strconv.ParseUint(viewString(raw), 10, 64)
		if err != nil {
			return Value{}, fieldError(ErrBadValue, name, offset, string(raw))
		}
		return Value{kind: KindUint, u64: n}, nil

	case KindFloat:
		f, err := strconv.ParseFloat(viewString(raw), 64)
		if err != nil {
			return Value{}, fieldError(ErrBadValue, name, offset, string(raw))
		}
		return Value{kind: KindFloat, f64: f}, nil

	case KindBool:
		switch viewString(raw) {
		case "true":
			return Value{kind: KindBool, b: true}, nil
		case "false":
			return Value{kind: KindBool, b: false}, nil
		}
		return Value{}, fieldError(ErrBadValue, name, offset, string(raw))

	case KindTokenList:
		return convertTokens(buf, sp, conv, name, offset)
	}

	return Value{}, fieldError(ErrBadValue, name, offset, string(raw))
}

// convertTokens splits the span on the configured delimiter and
// converts every trimmed token with the element kind. Tokens are spans
// too: text elements stay zero-copy.
func convertTokens(buf []byte, sp Span, conv Conversion, name string, offset int) (Value, *ParseError) {
	elem := Conversion{Kind: conv.Elem}
	var list []Value

	start := sp.Start
	for i := sp.Start; i <= sp.End; i++ {
		if i < sp.End && buf[i] != conv.Delim {
			continue
		}
		token := Span{Start: start, End: i}.trimSpace(buf)
		v, err := convert(buf, token, elem, name, offset)
		if err != nil {
			return Value{}, err
		}
		list = append(list, v)
		start = i + 1
	}

	return Value{kind: KindTokenList, list: list}, nil
}

// validASCIISpan reports the offset of the first non-ASCII byte in the
// span, or -1.
func validASCIISpan(buf []byte, sp Span) int {
	if i := ascii.IndexNonASCII(sp.Bytes(buf)); i >= 0 {
		return sp.Start + i
	}
	return -1
}
