package peck

import (
	"fmt"

	"github.com/corvidlabs/peck/ascii"
)

// Cardinality states how many times a field may legally occur in a
// head and whether absence is an error.
type Cardinality uint8

const (
	// Required fields occur exactly once (subject to the duplicate
	// policy) and must be present.
	Required Cardinality = iota
	// Optional fields occur at most once; absence resolves to an
	// explicit "not set" marker, never an error.
	Optional
	// RequiredMulti fields accumulate every occurrence in input order
	// and must occur at least once.
	RequiredMulti
	// OptionalMulti fields accumulate every occurrence in input order
	// and may be absent.
	OptionalMulti
)

func (c Cardinality) multi() bool { return c == RequiredMulti || c == OptionalMulti }

func (c Cardinality) String() string {
	switch c {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case RequiredMulti:
		return "required-multi"
	case OptionalMulti:
		return "optional-multi"
	}
	return fmt.Sprintf("cardinality(%d)", uint8(c))
}

// Kind selects how a raw value span becomes a typed value. The set is
// dispatched by a flat switch in convert; adding a kind means adding a
// case there, not a new type hierarchy.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindText is a borrowed string view over the input buffer. The
	// value must be valid UTF-8.
	KindText
	// KindString is an owned copy of the value text.
	KindString
	// KindBytes is a borrowed byte slice over the input buffer, with
	// no text validation.
	KindBytes
	// KindInt is a signed decimal integer (int64).
	KindInt
	// KindUint is an unsigned decimal integer (uint64).
	KindUint
	// KindFloat is a decimal floating point number (float64).
	KindFloat
	// KindBool is the literal "true" or "false".
	KindBool
	// KindTokenList splits the value on a delimiter and converts each
	// trimmed token with the element kind.
	KindTokenList
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTokenList:
		return "token-list"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Conversion is the full conversion tag for one field: the kind plus,
// for token lists, the element kind and delimiter.
type Conversion struct {
	Kind Kind
	// Elem is the element kind for KindTokenList. Zero means KindText.
	Elem Kind
	// Delim is the token delimiter for KindTokenList. Zero means ','.
	Delim byte
}

func (c Conversion) normalize() Conversion {
	if c.Kind == KindTokenList {
		if c.Elem == KindInvalid {
			c.Elem = KindText
		}
		if c.Delim == 0 {
			c.Delim = ','
		}
	}
	return c
}

// DuplicatePolicy decides what happens when a single-cardinality field
// occurs more than once in the same head.
type DuplicatePolicy uint8

const (
	// DuplicateLastWins overwrites the earlier value. The default.
	DuplicateLastWins DuplicatePolicy = iota
	// DuplicateReject fails the parse with ErrDuplicateHeader.
	DuplicateReject
	// DuplicateFirstWins keeps the first value and skips later
	// occurrences without converting them.
	DuplicateFirstWins
)

// FieldDescriptor describes one field slot in the output record. The
// slot index is the registration order on the builder.
type FieldDescriptor struct {
	// Name is the header field name, matched case-insensitively.
	Name string
	Card Cardinality
	Conv Conversion
}

// Registry is the immutable dispatch table Parse consults for every
// header line. Build one per record shape at startup and reuse it; a
// Registry is safe for concurrent use by any number of parses.
type Registry struct {
	fields []FieldDescriptor
	index  map[string]int // lower-cased name -> slot

	duplicates DuplicatePolicy
	strict     bool
	asciiOnly  bool
}

// Len returns the number of registered fields.
func (r *Registry) Len() int { return len(r.fields) }

// Slot returns the slot index for name (case-insensitive), or -1 if no
// such field is registered.
func (r *Registry) Slot(name string) int {
	if i, ok := r.index[ascii.LowerString(name)]; ok {
		return i
	}
	return -1
}

// Descriptor returns a copy of the descriptor at slot i.
func (r *Registry) Descriptor(i int) FieldDescriptor { return r.fields[i] }

// lookup resolves a raw name span to a slot index without allocating
// for names of ordinary length.
func (r *Registry) lookup(name []byte) (int, bool) {
	var stack [64]byte
	var key []byte
	if len(name) <= len(stack) {
		key = stack[:len(name)]
	} else {
		key = make([]byte, len(name))
	}
	for i, c := range name {
		key[i] = ascii.Lower(c)
	}
	i, ok := r.index[string(key)]
	return i, ok
}

// RegistryBuilder accumulates field descriptors and engine
// configuration. It stands in for whatever generation layer the
// integrating code has; the engine only ever sees the finished
// Registry.
type RegistryBuilder struct {
	fields     []FieldDescriptor
	duplicates DuplicatePolicy
	strict     bool
	asciiOnly  bool
	err        error
}

// NewRegistry returns an empty builder with the default configuration:
// last-wins duplicates, no strict validation, UTF-8 heads allowed.
func NewRegistry() *RegistryBuilder {
	return &RegistryBuilder{}
}

// Field registers a descriptor with an explicit conversion tag. The
// slot index of the new field is the number of fields registered
// before it.
func (b *RegistryBuilder) Field(name string, card Cardinality, conv Conversion) *RegistryBuilder {
	if b.err == nil && name == "" {
		b.err = fmt.Errorf("peck: empty field name at slot %d", len(b.fields))
		return b
	}
	if b.err == nil && conv.Kind == KindTokenList && conv.Elem == KindTokenList {
		b.err = fmt.Errorf("peck: field %q: token list elements cannot be token lists", name)
		return b
	}
	b.fields = append(b.fields, FieldDescriptor{Name: name, Card: card, Conv: conv.normalize()})
	return b
}

// Text registers a borrowed UTF-8 text field.
func (b *RegistryBuilder) Text(name string, card Cardinality) *RegistryBuilder {
	return b.Field(name, card, Conversion{Kind: KindText})
}

// String registers an owned string field.
func (b *RegistryBuilder) String(name string, card Cardinality) *RegistryBuilder {
	return b.Field(name, card, Conversion{Kind: KindString})
}

// Bytes registers a borrowed raw bytes field.
func (b *RegistryBuilder) Bytes(name string, card Cardinality) *RegistryBuilder {
	return b.Field(name, card, Conversion{Kind: KindBytes})
}

// Int registers a signed decimal integer field.
func (b *RegistryBuilder) Int(name string, card Cardinality) *RegistryBuilder {
	return b.Field(name, card, Conversion{Kind: KindInt})
}

// Uint registers an unsigned decimal integer field.
func (b *RegistryBuilder) Uint(name string, card Cardinality) *RegistryBuilder {
	return b.Field(name, card, Conversion{Kind: KindUint})
}

// Float registers a decimal floating point field.
func (b *RegistryBuilder) Float(name string, card Cardinality) *RegistryBuilder {
	return b.Field(name, card, Conversion{Kind: KindFloat})
}

// Bool registers a true/false field.
func (b *RegistryBuilder) Bool(name string, card Cardinality) *RegistryBuilder {
	return b.Field(name, card, Conversion{Kind: KindBool})
}

// TokenList registers a comma-separated list of borrowed text tokens.
func (b *RegistryBuilder) TokenList(name string, card Cardinality) *RegistryBuilder {
	return b.Field(name, card, Conversion{Kind: KindTokenList})
}

// TokenListOf registers a delimiter-separated list with a chosen
// element kind.
func (b *RegistryBuilder) TokenListOf(name string, card Cardinality, elem Kind, delim byte) *RegistryBuilder {
	return b.Field(name, card, Conversion{Kind: KindTokenList, Elem: elem, Delim: delim})
}

// Duplicates sets the policy for single-cardinality fields occurring
// more than once.
func (b *RegistryBuilder) Duplicates(p DuplicatePolicy) *RegistryBuilder {
	b.duplicates = p
	return b
}

// Strict enables RFC 7230 validation of every header field name and
// value, including lines for unregistered fields.
func (b *RegistryBuilder) Strict(enabled bool) *RegistryBuilder {
	b.strict = enabled
	return b
}

// ASCIIOnly rejects any head containing bytes outside the 7-bit range,
// before value conversion runs.
func (b *RegistryBuilder) ASCIIOnly(enabled bool) *RegistryBuilder {
	b.asciiOnly = enabled
	return b
}

// Build finalizes the registry. Field names must be unique under ASCII
// case folding; a collision is a construction error, never a parse
// error.
func (b *RegistryBuilder) Build() (*Registry, error) {
	if b.err != nil {
		return nil, b.err
	}
	index := make(map[string]int, len(b.fields))
	for i, f := range b.fields {
		key := ascii.LowerString(f.Name)
		if prev, ok := index[key]; ok {
			return nil, fmt.Errorf("peck: field %q registered twice (slots %d and %d)", f.Name, prev, i)
		}
		index[key] = i
	}
	fields := make([]FieldDescriptor, len(b.fields))
	copy(fields, b.fields)
	return &Registry{
		fields:     fields,
		index:      index,
		duplicates: b.duplicates,
		strict:     b.strict,
		asciiOnly:  b.asciiOnly,
	}, nil
}
