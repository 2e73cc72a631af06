// Peck is a fast, allocation-averse parser for the header block of
// HTTP-style messages.
//
// Given a contiguous buffer holding header lines followed by a body,
// Peck extracts a fixed, statically known set of fields into a typed
// record, borrowing from the buffer wherever the target type permits.
//
// # Registry
//
// Declare the record shape once at startup with the fluent builder,
// then reuse the registry for every parse:
//
//	reg, err := peck.NewRegistry().
//	    Text("content-type", peck.Required).
//	    Int("content-length", peck.Required).
//	    TokenList("accept", peck.OptionalMulti).
//	    Text("connection", peck.Optional).
//	    Build()
//
// A Registry is immutable and safe for concurrent use.
//
// # Parsing
//
// Parse consumes the whole head in one synchronous pass and returns the
// typed record plus the body:
//
//	raw := []byte("content-type: text/html\r\ncontent-length: 12\r\n\r\nhello world!")
//	rec, body, err := peck.Parse(raw, reg)
//	if err != nil {
//	    return err
//	}
//	ct, _ := rec.Text(reg.Slot("content-type"))
//	n, _ := rec.Int(reg.Slot("content-length"))
//
// Field names match case-insensitively (ASCII folding). Header lines
// whose names are not registered are skipped, so messages may carry
// extra, unknown headers.
//
// # Zero copy and lifetimes
//
// Text and byte fields, and the returned body, alias the input buffer:
// no bytes are copied. The buffer must therefore stay alive and
// unmodified for as long as the record is in use. When the record needs
// to outlive the buffer, detach it:
//
//	snap := rec.Detach()          // owned copy of every field and the body
//	data, err := snap.ToMessagePack()
//
// # Cardinality
//
// Each field is Required, Optional, RequiredMulti, or OptionalMulti.
// Multi fields accumulate every occurrence in input order; token-list
// conversions flatten their tokens into the same sequence, so
//
//	accept: text/html, text/plain
//	accept: application/json
//
// resolves to ["text/html", "text/plain", "application/json"].
// Repeated single fields follow the registry's duplicate policy:
// last-wins (default), reject, or first-wins.
//
// # Errors
//
// Parsing stops at the first problem and returns a *ParseError that
// unwraps to one of the package sentinels:
//
//	if errors.Is(err, peck.ErrMissingHeader) { ... }
//
// # Loose parsing
//
// When the field set is not known up front, ParseLoose returns every
// raw header in input order with case-insensitive lookup helpers.
package peck
