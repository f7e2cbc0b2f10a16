package forma

// NumberMode dictates how sources surface numeric tokens into the value tree.
type NumberMode int

const (
	NumberJSONNumber NumberMode = iota // Preserve the literal as json.Number.
	NumberFloat64                      // Convert eagerly (with potential precision loss).
)

// DuplicatePolicy decides what the decode boundary does when a JSON object
// repeats a key.
type DuplicatePolicy int

const (
	DupIgnore DuplicatePolicy = iota // Last occurrence wins, silently.
	DupError                         // Reject the document at the repeated key.
)

// ParseOpt bundles decode-boundary limits. The zero value means no limits and
// last-wins duplicate handling.
type ParseOpt struct {
	// MaxDepth bounds container nesting while decoding; 0 means unlimited.
	// This is the external recursion-depth limit for untrusted input; the
	// schema walk itself imposes none.
	MaxDepth int
	// MaxBytes bounds how many bytes a reader-backed source may consume
	// before the document is rejected; 0 means unlimited.
	MaxBytes int64
	// OnDuplicateKey selects the duplicate-key policy for JSON objects.
	OnDuplicateKey DuplicatePolicy
}
