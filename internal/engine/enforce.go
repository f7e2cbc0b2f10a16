package engine

import (
	"strconv"
	"strings"
)

// Enforcement wrapper for TokenSource to apply duplicate key handling, max
// depth checks, and max bytes truncation in a streaming fashion.

// DuplicateMode controls duplicate key handling during enforcement.
type DuplicateMode int

const (
	DupIgnore  DuplicateMode = iota // last occurrence wins, silently
	DupCollect                      // report to the sink, keep going
	DupError                        // stop at the first duplicate
)

// ViolationKind discriminates enforcement failures so the public boundary can
// map them onto its own error vocabulary.
type ViolationKind int

const (
	ViolationSyntax ViolationKind = iota
	ViolationDepth
	ViolationBytes
	ViolationDuplicate
)

// Violation is a minimal enforcement failure: a kind, a JSON Pointer to the
// offending location, and the token text involved (the key for duplicates,
// empty otherwise).
type Violation struct {
	Kind  ViolationKind
	Path  string
	Token string
}

// ViolationError carries a Violation through the TokenSource error channel.
type ViolationError struct{ Violation }

func (e ViolationError) Error() string {
	switch e.Kind {
	case ViolationDepth:
		return "max depth exceeded at " + e.Path
	case ViolationBytes:
		return "max bytes exceeded"
	case ViolationDuplicate:
		return "key '" + e.Token + "' duplicated at " + e.Path
	default:
		return "malformed input at " + e.Path
	}
}

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateMode
	MaxDepth    int
	MaxBytes    int64
	// Sink receives non-fatal violations in DupCollect mode. Fatal
	// violations surface as ViolationError regardless.
	Sink func(Violation)
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type enforceFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// WrapWithEnforcement returns a TokenSource that enforces the duplicate key
// policy, maximum nesting depth, and maximum consumed bytes while tracking
// the current JSON Pointer.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []enforceFrame
	depth int
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	// Frames store the raw pointer ("" at the root); normalization to "/"
	// happens only when a violation is reported.
	path := e.currentPathForToken(tok)

	switch tok.Kind {
	case KindBeginObject:
		e.stack = append(e.stack, enforceFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path})
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			return Token{}, ViolationError{Violation{Kind: ViolationDepth, Path: normalizeViolationPath(path)}}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		if e.depth > 0 {
			e.depth--
		}
		e.valueDone()
	case KindBeginArray:
		e.stack = append(e.stack, enforceFrame{kind: kindArray, path: path})
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			return Token{}, ViolationError{Violation{Kind: ViolationDepth, Path: normalizeViolationPath(path)}}
		}
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if e.opt.OnDuplicate != DupIgnore {
					if _, seen := top.keys[tok.String]; seen {
						v := Violation{Kind: ViolationDuplicate, Path: normalizeViolationPath(path), Token: tok.String}
						if e.opt.OnDuplicate == DupError {
							return Token{}, ViolationError{v}
						}
						if e.opt.Sink != nil {
							e.opt.Sink(v)
						}
					}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	case KindString, KindNumber, KindBool, KindTime, KindNull:
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, ViolationError{Violation{Kind: ViolationBytes, Path: normalizeViolationPath(path)}}
		}
	}

	return tok, nil
}

// valueDone restores key expectation after a complete value inside an object.
func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingTokenSource) currentPathForToken(tok Token) string {
	if len(e.stack) == 0 {
		if tok.Kind == KindKey {
			return joinJSONPointer("", tok.String)
		}
		return ""
	}

	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		return joinJSONPointer(top.path, tok.String)
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindTime, KindNull:
		if top.kind == kindArray {
			p := joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
			return p
		}
		if top.kind == kindObject && (top.pendingKey != "" || !top.expectingKey) {
			return joinJSONPointer(top.path, top.pendingKey)
		}
		return top.path
	default:
		return top.path
	}
}

func normalizeViolationPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapeJSONPointerToken(s string) string {
	return jsonPointerEscaper.Replace(s)
}

func joinJSONPointer(base, token string) string {
	if base == "" {
		return "/" + escapeJSONPointerToken(token)
	}
	return base + "/" + escapeJSONPointerToken(token)
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
