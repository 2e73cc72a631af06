package peck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBuilder_SlotOrder(t *testing.T) {
	reg, err := NewRegistry().
		Text("content-type", Required).
		Int("content-length", Required).
		TokenList("accept", OptionalMulti).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, 0, reg.Slot("content-type"))
	assert.Equal(t, 1, reg.Slot("Content-Length"))
	assert.Equal(t, 2, reg.Slot("ACCEPT"))
	assert.Equal(t, -1, reg.Slot("nope"))
}

func TestRegistryBuilder_Descriptor(t *testing.T) {
	reg, err := NewRegistry().
		TokenListOf("x-ids", RequiredMulti, KindInt, ';').
		Build()
	require.NoError(t, err)

	d := reg.Descriptor(0)
	assert.Equal(t, "x-ids", d.Name)
	assert.Equal(t, RequiredMulti, d.Card)
	assert.Equal(t, KindTokenList, d.Conv.Kind)
	assert.Equal(t, KindInt, d.Conv.Elem)
	assert.Equal(t, byte(';'), d.Conv.Delim)
}

func TestRegistryBuilder_DefaultsForTokenList(t *testing.T) {
	reg, err := NewRegistry().TokenList("accept", Optional).Build()
	require.NoError(t, err)

	d := reg.Descriptor(0)
	assert.Equal(t, KindText, d.Conv.Elem)
	assert.Equal(t, byte(','), d.Conv.Delim)
}

func TestRegistryBuilder_Errors(t *testing.T) {
	t.Run("duplicate name case-insensitive", func(t *testing.T) {
		_, err := NewRegistry().
			Text("Content-Type", Required).
			Int("content-type", Optional).
			Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "registered twice")
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewRegistry().Text("", Required).Build()
		require.Error(t, err)
	})

	t.Run("nested token list", func(t *testing.T) {
		_, err := NewRegistry().
			Field("x", Optional, Conversion{Kind: KindTokenList, Elem: KindTokenList}).
			Build()
		require.Error(t, err)
	})

	t.Run("builder error is sticky", func(t *testing.T) {
		_, err := NewRegistry().
			Text("", Required).
			Text("ok", Optional).
			Build()
		require.Error(t, err)
	})
}

func TestRegistry_EmptyIsValid(t *testing.T) {
	reg, err := NewRegistry().Build()
	require.NoError(t, err)

	rec, body, perr := Parse([]byte("anything: goes\r\n\r\nrest"), reg)
	require.NoError(t, perr)
	assert.Equal(t, 0, rec.Len())
	assert.Equal(t, "rest", string(body))
}

func TestRegistry_LookupLongName(t *testing.T) {
	// Names longer than the stack key buffer take the allocating path;
	// behavior must not change.
	long := "x-" + strings.Repeat("a", 80)
	reg, err := NewRegistry().Text(long, Required).Build()
	require.NoError(t, err)

	raw := []byte(long + ": v\r\n\r\n")
	rec, _, perr := Parse(raw, reg)
	require.NoError(t, perr)
	got, ok := rec.Text(reg.Slot(long))
	require.True(t, ok)
	assert.Equal(t, "v", got)
}
