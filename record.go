package peck

import (
	"strings"

	"github.com/corvidlabs/peck/ascii"
)

// Record is the immutable result of one parse: one resolved value (or
// absence) per registered field, addressed by slot index. Slot indices
// are the registration order on the builder; Registry.Slot maps names
// back to indices for integrators that prefer names.
//
// Fields of borrowed kinds (KindText, KindBytes) and the body alias the
// input buffer. A Record must not outlive the buffer it was parsed
// from; use Detach to break the tie.
type Record struct {
	reg   *Registry
	buf   []byte
	slots []slot
	body  int
}

// Len returns the number of field slots.
func (r *Record) Len() int { return len(r.slots) }

// Has reports whether slot i resolved to at least one value.
func (r *Record) Has(i int) bool {
	switch r.slots[i].state {
	case slotSingle:
		return true
	case slotMulti:
		return len(r.slots[i].values) > 0
	}
	return false
}

// BodyOffset returns the byte offset of the body within the input
// buffer.
func (r *Record) BodyOffset() int { return r.body }

// Value returns the resolved value of a single-cardinality slot.
func (r *Record) Value(i int) (Value, bool) {
	if r.slots[i].state != slotSingle {
		return Value{}, false
	}
	return r.slots[i].value, true
}

// Values returns the accumulated values of a multi-cardinality slot in
// input order. The returned slice is owned by the record; callers must
// not modify it.
func (r *Record) Values(i int) ([]Value, bool) {
	if r.slots[i].state != slotMulti || len(r.slots[i].values) == 0 {
		return nil, false
	}
	return r.slots[i].values, true
}

// Text returns the text of a single text or string slot.
func (r *Record) Text(i int) (string, bool) {
	v, ok := r.Value(i)
	if !ok {
		return "", false
	}
	return v.Text()
}

// Bytes returns the raw bytes of a single bytes slot.
func (r *Record) Bytes(i int) ([]byte, bool) {
	v, ok := r.Value(i)
	if !ok {
		return nil, false
	}
	return v.Bytes()
}

// Int returns the value of a single integer slot.
func (r *Record) Int(i int) (int64, bool) {
	v, ok := r.Value(i)
	if !ok {
		return 0, false
	}
	return v.Int()
}

// Uint returns the value of a single unsigned integer slot.
func (r *Record) Uint(i int) (uint64, bool) {
	v, ok := r.Value(i)
	if !ok {
		return 0, false
	}
	return v.Uint()
}

// Float returns the value of a single float slot.
func (r *Record) Float(i int) (float64, bool) {
	v, ok := r.Value(i)
	if !ok {
		return 0, false
	}
	return v.Float()
}

// Bool returns the value of a single bool slot.
func (r *Record) Bool(i int) (bool, bool) {
	v, ok := r.Value(i)
	if !ok {
		return false, false
	}
	return v.Bool()
}

// TextList returns the text elements of slot i. It accepts both a
// multi-cardinality slot of text values and a single slot holding one
// token list.
func (r *Record) TextList(i int) ([]string, bool) {
	vs, ok := r.listValues(i)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		s, ok := v.Text()
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// IntList returns the integer elements of slot i, under the same slot
// shapes TextList accepts.
func (r *Record) IntList(i int) ([]int64, bool) {
	vs, ok := r.listValues(i)
	if !ok {
		return nil, false
	}
	out := make([]int64, 0, len(vs))
	for _, v := range vs {
		n, ok := v.Int()
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func (r *Record) listValues(i int) ([]Value, bool) {
	st := &r.slots[i]
	switch st.state {
	case slotMulti:
		if len(st.values) == 0 {
			return nil, false
		}
		return st.values, true
	case slotSingle:
		return st.value.List()
	}
	return nil, false
}

// Detach copies every resolved field and the body out of the input
// buffer into a self-contained snapshot. The snapshot is safe to keep
// after the buffer is gone and can cross process boundaries as
// MessagePack.
func (r *Record) Detach() *DetachedRecord {
	d := &DetachedRecord{
		Fields: make([]DetachedField, 0, len(r.slots)),
		Body:   append([]byte(nil), r.buf[r.body:]...),
	}
	for i := range r.slots {
		if !r.Has(i) {
			continue
		}
		desc := r.reg.fields[i]
		df := DetachedField{Name: desc.Name}
		if vs, ok := r.Values(i); ok {
			for _, v := range vs {
				df.Values = append(df.Values, detachValue(v))
			}
		} else if v, ok := r.Value(i); ok {
			if list, isList := v.List(); isList {
				for _, e := range list {
					df.Values = append(df.Values, detachValue(e))
				}
			} else {
				df.Values = append(df.Values, detachValue(v))
			}
		}
		d.Fields = append(d.Fields, df)
	}
	return d
}

func detachValue(v Value) DetachedValue {
	dv := DetachedValue{Kind: v.kind}
	switch v.kind {
	case KindText:
		// The view aliases the buffer; the copy must own its bytes.
		dv.Str = strings.Clone(v.str)
	case KindString:
		dv.Str = v.str
	case KindBytes:
		dv.Bytes = append([]byte(nil), v.raw...)
	case KindInt:
		dv.Int = v.i64
	case KindUint:
		dv.Uint = v.u64
	case KindFloat:
		dv.Float = v.f64
	case KindBool:
		dv.Bool = v.b
	}
	return dv
}

// DetachedRecord is an owned snapshot of a parsed record. Absent
// optional fields are omitted entirely; multi fields keep their input
// order.
type DetachedRecord struct {
	Fields []DetachedField
	Body   []byte
}

// DetachedField is one resolved field in a snapshot. Single fields
// carry exactly one value.
type DetachedField struct {
	Name   string
	Values []DetachedValue
}

// DetachedValue is one owned value. Kind says which payload field is
// meaningful.
type DetachedValue struct {
	Kind  Kind
	Str   string
	Bytes []byte
	Int   int64
	Uint  uint64
	Float float64
	Bool  bool
}

// Get returns the first value of the named field (case-insensitive).
func (d *DetachedRecord) Get(name string) (DetachedValue, bool) {
	for _, f := range d.Fields {
		if ascii.EqualFold(f.Name, name) && len(f.Values) > 0 {
			return f.Values[0], true
		}
	}
	return DetachedValue{}, false
}

// GetAll returns every value of the named field (case-insensitive).
func (d *DetachedRecord) GetAll(name string) []DetachedValue {
	for _, f := range d.Fields {
		if ascii.EqualFold(f.Name, name) {
			return f.Values
		}
	}
	return nil
}
