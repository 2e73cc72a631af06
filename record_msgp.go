package peck

import (
	"github.com/tinylib/msgp/msgp"
)

// MessagePack encoding of detached records. The layout is maps all the
// way down so foreign readers can skip fields they do not know:
//
//	record: {"fields": [field...], "body": bin}
//	field:  {"name": str, "values": [value...]}
//	value:  {"kind": uint8, <payload key>: payload}
//
// Payload keys by kind: "str" (text/string), "bin" (bytes), "int",
// "uint", "float", "bool".

// ToMessagePack serializes the snapshot.
func (d *DetachedRecord) ToMessagePack() ([]byte, error) {
	return d.MarshalMsg(nil)
}

// FromMessagePack deserializes a snapshot produced by ToMessagePack.
func FromMessagePack(data []byte) (*DetachedRecord, error) {
	d := new(DetachedRecord)
	if _, err := d.UnmarshalMsg(data); err != nil {
		return nil, err
	}
	return d, nil
}

// MarshalMsg implements msgp.Marshaler.
func (d *DetachedRecord) MarshalMsg(b []byte) ([]byte, error) {
	o := msgp.Require(b, d.Msgsize())
	o = msgp.AppendMapHeader(o, 2)
	o = msgp.AppendString(o, "fields")
	o = msgp.AppendArrayHeader(o, uint32(len(d.Fields)))
	for i := range d.Fields {
		o = d.Fields[i].appendMsg(o)
	}
	o = msgp.AppendString(o, "body")
	o = msgp.AppendBytes(o, d.Body)
	return o, nil
}

// UnmarshalMsg implements msgp.Unmarshaler.
func (d *DetachedRecord) UnmarshalMsg(b []byte) ([]byte, error) {
	sz, o, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return b, msgp.WrapError(err)
	}
	for ; sz > 0; sz-- {
		var key []byte
		key, o, err = msgp.ReadMapKeyZC(o)
		if err != nil {
			return b, msgp.WrapError(err)
		}
		switch string(key) {
		case "fields":
			var n uint32
			n, o, err = msgp.ReadArrayHeaderBytes(o)
			if err != nil {
				return b, msgp.WrapError(err, "Fields")
			}
			d.Fields = make([]DetachedField, n)
			for i := range d.Fields {
				o, err = d.Fields[i].readMsg(o)
				if err != nil {
					return b, msgp.WrapError(err, "Fields", i)
				}
			}
		case "body":
			d.Body, o, err = msgp.ReadBytesBytes(o, nil)
			if err != nil {
				return b, msgp.WrapError(err, "Body")
			}
		default:
			o, err = msgp.Skip(o)
			if err != nil {
				return b, msgp.WrapError(err)
			}
		}
	}
	return o, nil
}

// Msgsize implements msgp.Sizer with an upper bound.
func (d *DetachedRecord) Msgsize() int {
	s := msgp.MapHeaderSize +
		msgp.StringPrefixSize + len("fields") + msgp.ArrayHeaderSize +
		msgp.StringPrefixSize + len("body") + msgp.BytesPrefixSize + len(d.Body)
	for i := range d.Fields {
		s += d.Fields[i].msgsize()
	}
	return s
}

func (f *DetachedField) appendMsg(o []byte) []byte {
	o = msgp.AppendMapHeader(o, 2)
	o = msgp.AppendString(o, "name")
	o = msgp.AppendString(o, f.Name)
	o = msgp.AppendString(o, "values")
	o = msgp.AppendArrayHeader(o, uint32(len(f.Values)))
	for i := range f.Values {
		o = f.Values[i].appendMsg(o)
	}
	return o
}

func (f *DetachedField) readMsg(b []byte) ([]byte, error) {
	sz, o, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return b, err
	}
	for ; sz > 0; sz-- {
		var key []byte
		key, o, err = msgp.ReadMapKeyZC(o)
		if err != nil {
			return b, err
		}
		switch string(key) {
		case "name":
			f.Name, o, err = msgp.ReadStringBytes(o)
			if err != nil {
				return b, err
			}
		case "values":
			var n uint32
			n, o, err = msgp.ReadArrayHeaderBytes(o)
			if err != nil {
				return b, err
			}
			f.Values = make([]DetachedValue, n)
			for i := range f.Values {
				o, err = f.Values[i].readMsg(o)
				if err != nil {
					return b, err
				}
			}
		default:
			o, err = msgp.Skip(o)
			if err != nil {
				return b, err
			}
		}
	}
	return o, nil
}

func (f *DetachedField) msgsize() int {
	s := msgp.MapHeaderSize +
		msgp.StringPrefixSize + len("name") + msgp.StringPrefixSize + len(f.Name) +
		msgp.StringPrefixSize + len("values") + msgp.ArrayHeaderSize
	for i := range f.Values {
		s += f.Values[i].msgsize()
	}
	return s
}

func (v *DetachedValue) appendMsg(o []byte) []byte {
	o = msgp.AppendMapHeader(o, 2)
	o = msgp.AppendString(o, "kind")
	o = msgp.AppendUint8(o, uint8(v.Kind))
	switch v.Kind {
	case KindText, KindString:
		o = msgp.AppendString(o, "str")
		o = msgp.AppendString(o, v.Str)
	case KindBytes:
		o = msgp.AppendString(o, "bin")
		o = msgp.AppendBytes(o, v.Bytes)
	case KindInt:
		o = msgp.AppendString(o, "int")
		o = msgp.AppendInt64(o, v.Int)
	case KindUint:
		o = msgp.AppendString(o, "uint")
		o = msgp.AppendUint64(o, v.Uint)
	case KindFloat:
		o = msgp.AppendString(o, "float")
		o = msgp.AppendFloat64(o, v.Float)
	case KindBool:
		o = msgp.AppendString(o, "bool")
		o = msgp.AppendBool(o, v.Bool)
	default:
		o = msgp.AppendString(o, "str")
		o = msgp.AppendString(o, "")
	}
	return o
}

func (v *DetachedValue) readMsg(b []byte) ([]byte, error) {
	sz, o, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return b, err
	}
	for ; sz > 0; sz-- {
		var key []byte
		key, o, err = msgp.ReadMapKeyZC(o)
		if err != nil {
			return b, err
		}
		switch string(key) {
		case "kind":
			var k uint8
			k, o, err = msgp.ReadUint8Bytes(o)
			if err != nil {
				return b, err
			}
			v.Kind = Kind(k)
		case "str":
			v.Str, o, err = msgp.ReadStringBytes(o)
			if err != nil {
				return b, err
			}
		case "bin":
			v.Bytes, o, err = msgp.ReadBytesBytes(o, nil)
			if err != nil {
				return b, err
			}
		case "int":
			v.Int, o, err = msgp.ReadInt64Bytes(o)
			if err != nil {
				return b, err
			}
		case "uint":
			v.Uint, o, err = msgp.ReadUint64Bytes(o)
			if err != nil {
				return b, err
			}
		case "float":
			v.Float, o, err = msgp.ReadFloat64Bytes(o)
			if err != nil {
				return b, err
			}
		case "bool":
			v.Bool, o, err = msgp.ReadBoolBytes(o)
			if err != nil {
				return b, err
			}
		default:
			o, err = msgp.Skip(o)
			if err != nil {
				return b, err
			}
		}
	}
	return o, nil
}

func (v *DetachedValue) msgsize() int {
	return msgp.MapHeaderSize +
		msgp.StringPrefixSize + len("kind") + msgp.Uint8Size +
		msgp.StringPrefixSize + 5 + // payload key
		msgp.StringPrefixSize + len(v.Str) +
		msgp.BytesPrefixSize + len(v.Bytes) +
		msgp.Int64Size + msgp.Uint64Size + msgp.Float64Size + msgp.BoolSize
}
