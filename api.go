package forma

// Schema is the capability every validator exposes: a diagnostic type label
// and a single Validate operation from an untyped input to a typed result.
// Schemas are immutable after construction and safe for concurrent use; each
// Validate call owns its own traversal, a single-pass depth-first walk that
// halts at the first failure.
type Schema[T any] interface {
	// Type returns the human-readable label ("string", "array<number>",
	// "object", ...). It exists for diagnostics only and never drives
	// dispatch.
	Type() string

	// Validate checks v against the schema and produces either the typed
	// value or the first ParseError encountered. It never panics on
	// malformed input; the fatal Unwrap family is out of bounds inside
	// validators.
	Validate(v any) Result[T, ParseError]
}

// Codec performs bidirectional transformation and validation between the wire
// representation A and the domain representation B. Conversions are explicit;
// schemas themselves never coerce.
type Codec[A, B any] interface {
	In() Schema[A]                    // Wire schema (input side).
	Out() Schema[B]                   // Domain schema (output side).
	Decode(a A) Result[B, ParseError] // A -> B, then Out-side checks.
	Encode(b B) Result[A, ParseError] // B -> A, then In-side checks.
}

// Conforms reports whether v validates against s, discarding the value.
func Conforms[T any](s Schema[T], v any) bool {
	return s.Validate(v).IsOk()
}

// MustValidate validates v and panics on failure. For trust boundaries such
// as compiled-in fixtures and tests, never for user input.
func MustValidate[T any](s Schema[T], v any) T {
	return s.Validate(v).Expect("forma: MustValidate")
}
