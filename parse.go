package forma

import (
	"errors"
	"io"
	"strings"

	eng "github.com/soracane/forma/internal/engine"
)

// ParseFrom is the primary decode entry point. It consumes tokens from the
// Source, builds the value tree, and hands it to the Schema. Problems with
// the input itself surface as ParseError; a nil schema or a failing reader
// surfaces as a plain error.
func ParseFrom[T any](s Schema[T], src Source, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, errors.New("forma: nil schema")
	}

	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	v, err := decodeAnyFromSource(src, opt)
	if err != nil {
		return zero, toParseError(err)
	}

	res := s.Validate(v)
	if pe, failed := res.GetErr(); failed {
		return zero, pe
	}
	out, _ := res.Get()
	return out, nil
}

// StreamParse validates input by streaming tokens from an io.Reader.
// When MaxBytes is set it enforces the size cap up front, otherwise it
// delegates directly to ParseFrom via the Source driver.
func StreamParse[T any](s Schema[T], r io.Reader, opts ...ParseOpt) (T, error) {
	if len(opts) > 0 && opts[len(opts)-1].MaxBytes > 0 {
		max := opts[len(opts)-1].MaxBytes
		lr := io.LimitReader(r, max+1)
		data, err := io.ReadAll(lr)
		if err != nil {
			var zero T
			return zero, err
		}
		if int64(len(data)) > max {
			var zero T
			return zero, NewParseError(MsgMalformedInput, nil)
		}
		return ParseFrom[T](s, JSONBytes(data), opts...)
	}
	return ParseFrom[T](s, JSONReader(r), opts...)
}

// ---- helpers (decode, error mapping) ----

func decodeAnyFromSource(src Source, opt ParseOpt) (any, error) {
	enforced := eng.WrapWithEnforcement(EngineTokenSource(src), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
	})
	// Switch behavior according to the requested NumberMode.
	switch src.NumberMode() {
	case NumberFloat64:
		return eng.DecodeAnyFromSourceAsFloat64(enforced)
	case NumberJSONNumber:
		fallthrough
	default:
		return eng.DecodeAnyFromSource(enforced)
	}
}

// toParseError maps decode-side failures onto the fixed ParseError
// vocabulary. Enforcement violations keep their pointer as the path;
// everything else reports malformed input at the root with the underlying
// error text as Input.
func toParseError(err error) error {
	if err == nil {
		return nil
	}
	if pe, ok := AsParseError(err); ok {
		return pe
	}
	var ve eng.ViolationError
	if errors.As(err, &ve) {
		return violationToParseError(ve.Violation)
	}
	return NewParseError(MsgMalformedInput, err.Error())
}

func violationToParseError(v eng.Violation) ParseError {
	path := pointerToSegments(v.Path)
	switch v.Kind {
	case eng.ViolationDuplicate:
		return ParseError{Path: path, Message: MsgDuplicateKey, Input: v.Token}
	case eng.ViolationBytes:
		// The byte cap trips mid-document; the pointer there is noise.
		return ParseError{Message: MsgMalformedInput}
	default:
		var input any
		if v.Token != "" {
			input = v.Token
		}
		return ParseError{Path: path, Message: MsgMalformedInput, Input: input}
	}
}

// pointerToSegments splits a JSON Pointer into root-to-leaf segments,
// unescaping ~1 and ~0 per RFC 6901. The root pointer yields nil.
func pointerToSegments(p string) []string {
	if p == "" || p == "/" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(p, "/"), "/")
	segs := make([]string, len(parts))
	for i, s := range parts {
		s = strings.ReplaceAll(s, "~1", "/")
		s = strings.ReplaceAll(s, "~0", "~")
		segs[i] = s
	}
	return segs
}

// ---- Source -> engine.TokenSource adapter ----

type tokenSourceAdapter struct{ inner Source }

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{
		Kind:   toEngineKind(t.Kind),
		String: t.String,
		Number: t.Number,
		Bool:   t.Bool,
		Time:   t.Time,
		Offset: t.Offset,
	}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

// EngineTokenSource exposes the engine.TokenSource view of a forma.Source.
func EngineTokenSource(s Source) eng.TokenSource {
	// Fast-path: if s is already an engine-backed source, reuse the inner source.
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &tokenSourceAdapter{inner: s}
}

func toEngineKind(k tokenKind) eng.Kind {
	switch k {
	case _tokenBeginObject:
		return eng.KindBeginObject
	case _tokenEndObject:
		return eng.KindEndObject
	case _tokenBeginArray:
		return eng.KindBeginArray
	case _tokenEndArray:
		return eng.KindEndArray
	case _tokenKey:
		return eng.KindKey
	case _tokenString:
		return eng.KindString
	case _tokenNumber:
		return eng.KindNumber
	case _tokenBool:
		return eng.KindBool
	case _tokenTime:
		return eng.KindTime
	case _tokenNull:
		return eng.KindNull
	default:
		return eng.KindNull
	}
}
