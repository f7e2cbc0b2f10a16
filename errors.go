package forma

import (
	"errors"
	"fmt"
	"strings"
)

// Validation messages (exported consts for stable matching in callers and
// tests; there is no localization layer).
const (
	MsgExpectingString    = "Expecting string"
	MsgExpectingNumber    = "Expecting number"
	MsgExpectingBoolean   = "Expecting boolean"
	MsgExpectingDate      = "Expecting valid date"
	MsgExpectingArray     = "Expecting array"
	MsgExpectingObject    = "Expecting object"
	MsgExpectingTimestamp = "Expecting RFC3339 timestamp"
	MsgUnknownKey         = "Unknown key"
	MsgDuplicateKey       = "Duplicate key"
	MsgTooFewItems        = "Too few items"
	MsgTooManyItems       = "Too many items"
	MsgValueTooSmall      = "Value too small"
	MsgValueTooLarge      = "Value too large"
	MsgFieldMismatch      = "Field type mismatch"
	MsgMalformedInput     = "Malformed input"
)

// ParseError is the single validation error kind. Path names the location of
// the first failure relative to the root input, ordered root-to-leaf; each
// segment is a field name or a stringified array index. Message is one of the
// fixed strings above. Input is the exact sub-value that failed the check,
// not the whole original input.
type ParseError struct {
	Path    []string
	Message string
	Input   any
}

// NewParseError builds a leaf error with an empty path. Enclosing validators
// add segments on the way out via Prepend.
func NewParseError(msg string, input any) ParseError {
	return ParseError{Message: msg, Input: input}
}

// Prepend returns a copy of the error with seg as the new first path segment.
// The receiver is left untouched.
func (e ParseError) Prepend(seg string) ParseError {
	p := make([]string, 0, len(e.Path)+1)
	p = append(p, seg)
	p = append(p, e.Path...)
	e.Path = p
	return e
}

// Pointer renders the path as a JSON Pointer; the root renders as "/".
func (e ParseError) Pointer() string {
	if len(e.Path) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, seg := range e.Path {
		b.WriteByte('/')
		b.WriteString(escapePointerSegment(seg))
	}
	return b.String()
}

// Error summarizes as "message at /pointer", e.g. "Expecting number at
// /items/1/n". ParseError satisfies error so the decode boundary can surface
// it directly.
func (e ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pointer())
}

// AsParseError extracts a ParseError from an error using errors.As
// internally.
func AsParseError(err error) (ParseError, bool) {
	if err == nil {
		return ParseError{}, false
	}
	var pe ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return ParseError{}, false
}

// RFC 6901 escaping for pointer segments.
var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointerSegment(s string) string { return pointerEscaper.Replace(s) }
