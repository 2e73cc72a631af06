package peck

import (
	"strings"
	"testing"
)

func benchRegistry(b *testing.B) *Registry {
	b.Helper()
	reg, err := NewRegistry().
		Text("host", Required).
		Text("content-type", Optional).
		Int("content-length", Optional).
		TokenList("accept", OptionalMulti).
		Text("user-agent", Optional).
		Build()
	if err != nil {
		b.Fatal(err)
	}
	return reg
}

func BenchmarkParse(b *testing.B) {
	benchmarks := []struct {
		name string
		raw  []byte
	}{
		{
			name: "small",
			raw:  []byte("host: example.com\r\n\r\n"),
		},
		{
			name: "typical",
			raw: []byte("host: example.com\r\n" +
				"content-type: application/json\r\n" +
				"content-length: 128\r\n" +
				"accept: application/json, text/plain\r\n" +
				"user-agent: bench/1.0\r\n" +
				"\r\n" +
				strings.Repeat("x", 128)),
		},
		{
			name: "many unknown headers",
			raw: []byte("host: example.com\r\n" +
				strings.Repeat("x-filler: some value here\r\n", 40) +
				"\r\n"),
		},
	}

	reg := benchRegistry(b)
	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			b.SetBytes(int64(len(bm.raw)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, _, err := Parse(bm.raw, reg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkParseLoose(b *testing.B) {
	raw := []byte("host: example.com\r\n" +
		"content-type: application/json\r\n" +
		"accept: application/json, text/plain\r\n" +
		"\r\nbody")
	b.SetBytes(int64(len(raw)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, _, err := ParseLoose(raw); err != nil {
			b.Fatal(err)
		}
	}
}
