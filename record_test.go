package peck

import (
	"bytes"
	"testing"
)

func parseSample(t *testing.T) (*Registry, *Record) {
	t.Helper()
	reg, err := NewRegistry().
		Text("content-type", Required).
		Int("content-length", Required).
		Uint("x-retries", Optional).
		Float("x-quality", Optional).
		Bool("x-cached", Optional).
		Bytes("etag", Optional).
		TokenList("accept", OptionalMulti).
		Text("missing", Optional).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	raw := []byte("content-type: text/html\r\n" +
		"content-length: 12\r\n" +
		"x-retries: 3\r\n" +
		"x-quality: 0.5\r\n" +
		"x-cached: true\r\n" +
		"etag: \"abc\"\r\n" +
		"accept: text/html, text/plain\r\n" +
		"\r\n" +
		"hello world!")
	rec, _, perr := Parse(raw, reg)
	if perr != nil {
		t.Fatalf("Parse failed: %v", perr)
	}
	return reg, rec
}

func TestRecord_TypedAccessors(t *testing.T) {
	reg, rec := parseSample(t)

	if v, ok := rec.Uint(reg.Slot("x-retries")); !ok || v != 3 {
		t.Errorf("x-retries = %d, %v", v, ok)
	}
	if v, ok := rec.Float(reg.Slot("x-quality")); !ok || v != 0.5 {
		t.Errorf("x-quality = %v, %v", v, ok)
	}
	if v, ok := rec.Bool(reg.Slot("x-cached")); !ok || !v {
		t.Errorf("x-cached = %v, %v", v, ok)
	}
	if v, ok := rec.Bytes(reg.Slot("etag")); !ok || !bytes.Equal(v, []byte(`"abc"`)) {
		t.Errorf("etag = %q, %v", v, ok)
	}
	// Accessor of the wrong type reports absence, not garbage.
	if _, ok := rec.Int(reg.Slot("content-type")); ok {
		t.Error("Int over a text slot should report false")
	}
}

func TestRecord_Detach(t *testing.T) {
	reg, rec := parseSample(t)
	_ = reg

	snap := rec.Detach()

	// The absent optional field is omitted entirely.
	if _, ok := snap.Get("missing"); ok {
		t.Error("absent field present in snapshot")
	}
	if v, ok := snap.Get("Content-Type"); !ok || v.Str != "text/html" {
		t.Errorf("content-type = %+v, %v", v, ok)
	}
	if v, ok := snap.Get("content-length"); !ok || v.Int != 12 {
		t.Errorf("content-length = %+v, %v", v, ok)
	}
	accept := snap.GetAll("accept")
	if len(accept) != 2 || accept[0].Str != "text/html" || accept[1].Str != "text/plain" {
		t.Errorf("accept = %+v", accept)
	}
	if string(snap.Body) != "hello world!" {
		t.Errorf("body = %q", snap.Body)
	}
}

func TestRecord_DetachOwnsItsMemory(t *testing.T) {
	reg, err := NewRegistry().Text("host", Required).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	raw := []byte("host: example.com\r\n\r\nbody")
	rec, _, perr := Parse(raw, reg)
	if perr != nil {
		t.Fatalf("Parse failed: %v", perr)
	}
	snap := rec.Detach()

	// Clobber the buffer; the snapshot must be unaffected.
	for i := range raw {
		raw[i] = 'X'
	}
	if v, ok := snap.Get("host"); !ok || v.Str != "example.com" {
		t.Errorf("host = %+v after buffer reuse", v)
	}
	if string(snap.Body) != "body" {
		t.Errorf("body = %q after buffer reuse", snap.Body)
	}
}

func TestDetachedRecord_MessagePackRoundTrip(t *testing.T) {
	_, rec := parseSample(t)
	snap := rec.Detach()

	data, err := snap.ToMessagePack()
	if err != nil {
		t.Fatalf("ToMessagePack failed: %v", err)
	}

	got, err := FromMessagePack(data)
	if err != nil {
		t.Fatalf("FromMessagePack failed: %v", err)
	}

	if len(got.Fields) != len(snap.Fields) {
		t.Fatalf("got %d fields, want %d", len(got.Fields), len(snap.Fields))
	}
	for i, f := range snap.Fields {
		g := got.Fields[i]
		if g.Name != f.Name {
			t.Errorf("field %d name = %q, want %q", i, g.Name, f.Name)
		}
		if len(g.Values) != len(f.Values) {
			t.Errorf("field %q: %d values, want %d", f.Name, len(g.Values), len(f.Values))
			continue
		}
		for j, v := range f.Values {
			if got := g.Values[j]; got.Kind != v.Kind || got.Str != v.Str ||
				got.Int != v.Int || got.Uint != v.Uint || got.Float != v.Float ||
				got.Bool != v.Bool || !bytes.Equal(got.Bytes, v.Bytes) {
				t.Errorf("field %q value %d = %+v, want %+v", f.Name, j, got, v)
			}
		}
	}
	if !bytes.Equal(got.Body, snap.Body) {
		t.Errorf("body = %q, want %q", got.Body, snap.Body)
	}
}

func TestDetachedRecord_MessagePackEmpty(t *testing.T) {
	snap := &DetachedRecord{}
	data, err := snap.ToMessagePack()
	if err != nil {
		t.Fatalf("ToMessagePack failed: %v", err)
	}
	got, err := FromMessagePack(data)
	if err != nil {
		t.Fatalf("FromMessagePack failed: %v", err)
	}
	if len(got.Fields) != 0 || len(got.Body) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}
