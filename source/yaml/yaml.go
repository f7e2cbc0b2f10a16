package yaml

import (
	"bytes"
	"fmt"
	"io"

	y "gopkg.in/yaml.v3"

	eng "github.com/soracane/forma/internal/engine"
)

// NewBytes wraps YAML bytes into an engine.TokenSource. Only the first
// document of a multi-document stream is read.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

// NewReader wraps an io.Reader carrying YAML into an engine.TokenSource.
// The document is decoded on the first NextToken call and replayed as tokens,
// so Location reports no byte offsets.
func NewReader(r io.Reader) eng.TokenSource { return &source{r: r} }

type source struct {
	r       io.Reader
	ts      eng.TokenSource
	decoded bool
}

func (s *source) NextToken() (eng.Token, error) {
	if !s.decoded {
		s.decoded = true
		var node any
		if err := y.NewDecoder(s.r).Decode(&node); err != nil {
			return eng.Token{}, err
		}
		norm, err := normalizeValue(node)
		if err != nil {
			return eng.Token{}, err
		}
		s.ts = eng.TreeSource(norm)
	}
	if s.ts == nil {
		return eng.Token{}, io.EOF
	}
	return s.ts.NextToken()
}

func (s *source) Location() int64 { return -1 }

// normalizeValue converts yaml.v3 output into the value vocabulary shared by
// all sources: map[string]any, []any and scalars. Mapping keys must be
// strings; yaml.v3 falls back to map[any]any when they are not.
func normalizeValue(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			nv, err := normalizeValue(vv)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("yaml: non-string mapping key %v", k)
			}
			nv, err := normalizeValue(vv)
			if err != nil {
				return nil, err
			}
			out[ks] = nv
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i := range t {
			nv, err := normalizeValue(t[i])
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	default:
		return v, nil
	}
}
