package forma

import (
	"io"
	"sync"
	"time"

	eng "github.com/soracane/forma/internal/engine"
	jsonsrc "github.com/soracane/forma/source/json"
	yamlsrc "github.com/soracane/forma/source/yaml"
)

// tokenKind enumerates input token kinds.
type tokenKind int

const (
	_tokenBeginObject tokenKind = iota
	_tokenEndObject
	_tokenBeginArray
	_tokenEndArray
	_tokenKey
	_tokenString
	_tokenNumber
	_tokenBool
	_tokenTime
	_tokenNull
)

// Exported aliases so external drivers and tools can branch on token kinds
// without relying on unstable APIs. The alias and constants mirror the
// internal tokenKind.
type TokenKind = tokenKind

const (
	TokenBeginObject TokenKind = _tokenBeginObject
	TokenEndObject   TokenKind = _tokenEndObject
	TokenBeginArray  TokenKind = _tokenBeginArray
	TokenEndArray    TokenKind = _tokenEndArray
	TokenKey         TokenKind = _tokenKey
	TokenString      TokenKind = _tokenString
	TokenNumber      TokenKind = _tokenNumber
	TokenBool        TokenKind = _tokenBool
	TokenTime        TokenKind = _tokenTime
	TokenNull        TokenKind = _tokenNull
)

// Token describes a token in the input stream. Offset records the byte position
// when known (-1 otherwise). Time is set only for TokenTime, which YAML sources
// emit for resolved timestamps.
type Token struct {
	Kind   tokenKind
	String string // Stored for key/string tokens.
	Number string // Stored as text; NumberMode controls downstream interpretation.
	Bool   bool
	Time   time.Time
	Offset int64
}

// Source abstracts over polymorphic input sources.
type Source interface {
	NextToken() (Token, error)
	NumberMode() NumberMode
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The default
// implementation is based on goccy/go-json and may be swapped with SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default go-json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// CurrentJSONDriverName reports the name of the installed JSON driver.
func CurrentJSONDriverName() string { return getJSONDriver().Name() }

// defaultJSONDriver wraps the goccy/go-json implementation.
type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source {
	return &engineSourceAdapter{inner: jsonsrc.NewReader(r), numMode: NumberJSONNumber}
}
func (defaultJSONDriver) NewBytes(b []byte) Source {
	return &engineSourceAdapter{inner: jsonsrc.NewBytes(b), numMode: NumberJSONNumber}
}
func (defaultJSONDriver) Name() string { return "go-json" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return getJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return getJSONDriver().NewBytes(b) }

// YAMLReader wraps an io.Reader carrying YAML as a Source. Only the first
// document of a multi-document stream is read.
func YAMLReader(r io.Reader) Source {
	return &engineSourceAdapter{inner: yamlsrc.NewReader(r), numMode: NumberJSONNumber}
}

// YAMLBytes wraps YAML bytes as a Source.
func YAMLBytes(b []byte) Source {
	return &engineSourceAdapter{inner: yamlsrc.NewBytes(b), numMode: NumberJSONNumber}
}

// SourceFromEngine wraps an engine.TokenSource as a forma.Source. Callers
// choose the NumberMode to inherit subtree context.
func SourceFromEngine(inner eng.TokenSource, mode NumberMode) Source {
	return &engineSourceAdapter{inner: inner, numMode: mode}
}

// EnforceSource wraps a Source with runtime enforcement (duplicate keys,
// depth, bytes) using public options projected to internal engine options.
func EnforceSource(s Source, opt ParseOpt) Source {
	// Fast-path: if s already wraps an engine.TokenSource, unwrap to avoid
	// public<->engine adapter round-trips.
	if ea, ok := s.(*engineSourceAdapter); ok {
		enforced := eng.WrapWithEnforcement(ea.inner, eng.EnforceOptions{
			OnDuplicate: toEngineDup(opt.OnDuplicateKey),
			MaxDepth:    opt.MaxDepth,
			MaxBytes:    opt.MaxBytes,
		})
		return &engineSourceAdapter{inner: enforced, numMode: s.NumberMode()}
	}
	enforced := eng.WrapWithEnforcement(EngineTokenSource(s), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
	})
	return SourceFromEngine(enforced, s.NumberMode())
}

// EnforceSourceIfNeeded returns the original Source when the options are
// effectively disabled (ignore duplicate keys, zero depth, zero size),
// preventing unnecessary overhead for small inputs.
func EnforceSourceIfNeeded(s Source, opt ParseOpt) Source {
	if opt.OnDuplicateKey == DupIgnore && opt.MaxDepth == 0 && opt.MaxBytes == 0 {
		return s
	}
	return EnforceSource(s, opt)
}

func toEngineDup(p DuplicatePolicy) eng.DuplicateMode {
	if p == DupError {
		return eng.DupError
	}
	return eng.DupIgnore
}

// WithNumberMode wraps a Source and overrides its NumberMode.
func WithNumberMode(s Source, m NumberMode) Source { return &overrideNumberMode{inner: s, mode: m} }

type overrideNumberMode struct {
	inner Source
	mode  NumberMode
}

func (o *overrideNumberMode) NextToken() (Token, error) { return o.inner.NextToken() }
func (o *overrideNumberMode) NumberMode() NumberMode    { return o.mode }
func (o *overrideNumberMode) Location() int64           { return o.inner.Location() }

type engineSourceAdapter struct {
	inner   eng.TokenSource
	numMode NumberMode
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: fromEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Time: t.Time, Offset: t.Offset}, nil
}
func (s *engineSourceAdapter) NumberMode() NumberMode { return s.numMode }
func (s *engineSourceAdapter) Location() int64        { return s.inner.Location() }

func fromEngineKind(k eng.Kind) tokenKind {
	switch k {
	case eng.KindBeginObject:
		return _tokenBeginObject
	case eng.KindEndObject:
		return _tokenEndObject
	case eng.KindBeginArray:
		return _tokenBeginArray
	case eng.KindEndArray:
		return _tokenEndArray
	case eng.KindKey:
		return _tokenKey
	case eng.KindString:
		return _tokenString
	case eng.KindNumber:
		return _tokenNumber
	case eng.KindBool:
		return _tokenBool
	case eng.KindTime:
		return _tokenTime
	case eng.KindNull:
		return _tokenNull
	default:
		return _tokenNull
	}
}
