package engine

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"time"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindTime
	KindNull
)

// Token represents a streaming token with approximate input offset. Time is
// set only for KindTime (tagged timestamp scalars, e.g. from YAML).
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Time   time.Time
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// DecodeAnyFromSource builds an "any" value tree from the token source.
// Objects become map[string]any, arrays []any, numbers json.Number, tagged
// timestamps time.Time, null nil.
func DecodeAnyFromSource(src TokenSource) (any, error) {
	return decodeAnyFromSourceWithConv(src, func(s string) (any, error) {
		return json.Number(s), nil
	})
}

// DecodeAnyFromSourceAsFloat64 builds the same tree but decodes numbers as
// float64.
func DecodeAnyFromSourceAsFloat64(src TokenSource) (any, error) {
	return decodeAnyFromSourceWithConv(src, func(s string) (any, error) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	})
}

type numberConv func(string) (any, error)

func decodeAnyFromSourceWithConv(src TokenSource, conv numberConv) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return decodeValue(src, tok, conv)
}

func decodeValue(src TokenSource, tok Token, conv numberConv) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src, conv)
	case KindBeginArray:
		return decodeArray(src, conv)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return conv(tok.Number)
	case KindBool:
		return tok.Bool, nil
	case KindTime:
		return tok.Time, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func decodeObject(src TokenSource, conv numberConv) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(src, vt, conv)
		if err != nil {
			return nil, err
		}
		m[tok.String] = v
	}
}

func decodeArray(src TokenSource, conv numberConv) (any, error) {
	var arr []any
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok, conv)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// ---- tree tokenization ----

// TreeSource tokenizes an already-decoded value tree. Map keys are emitted in
// sorted order so downstream consumers see a deterministic stream. Sources
// that materialize a full document before token emission (YAML) build on
// this.
func TreeSource(v any) TokenSource {
	return &treeSource{pending: []treeOp{{value: v}}}
}

type treeOp struct {
	value any
	tok   *Token // pre-built token (container ends, keys)
}

type treeSource struct {
	pending []treeOp // LIFO
}

func (t *treeSource) NextToken() (Token, error) {
	if len(t.pending) == 0 {
		return Token{}, io.EOF
	}
	op := t.pending[len(t.pending)-1]
	t.pending = t.pending[:len(t.pending)-1]
	if op.tok != nil {
		return *op.tok, nil
	}
	return t.expand(op.value)
}

func (t *treeSource) expand(v any) (Token, error) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t.push(treeOp{tok: &Token{Kind: KindEndObject, Offset: -1}})
		for i := len(keys) - 1; i >= 0; i-- {
			k := keys[i]
			t.push(treeOp{value: val[k]})
			t.push(treeOp{tok: &Token{Kind: KindKey, String: k, Offset: -1}})
		}
		return Token{Kind: KindBeginObject, Offset: -1}, nil
	case []any:
		t.push(treeOp{tok: &Token{Kind: KindEndArray, Offset: -1}})
		for i := len(val) - 1; i >= 0; i-- {
			t.push(treeOp{value: val[i]})
		}
		return Token{Kind: KindBeginArray, Offset: -1}, nil
	case string:
		return Token{Kind: KindString, String: val, Offset: -1}, nil
	case bool:
		return Token{Kind: KindBool, Bool: val, Offset: -1}, nil
	case json.Number:
		return Token{Kind: KindNumber, Number: string(val), Offset: -1}, nil
	case int:
		return Token{Kind: KindNumber, Number: strconv.FormatInt(int64(val), 10), Offset: -1}, nil
	case int64:
		return Token{Kind: KindNumber, Number: strconv.FormatInt(val, 10), Offset: -1}, nil
	case uint64:
		return Token{Kind: KindNumber, Number: strconv.FormatUint(val, 10), Offset: -1}, nil
	case float64:
		return Token{Kind: KindNumber, Number: strconv.FormatFloat(val, 'g', -1, 64), Offset: -1}, nil
	case time.Time:
		return Token{Kind: KindTime, Time: val, Offset: -1}, nil
	case nil:
		return Token{Kind: KindNull, Offset: -1}, nil
	default:
		return Token{}, io.ErrUnexpectedEOF
	}
}

func (t *treeSource) push(op treeOp) { t.pending = append(t.pending, op) }

func (t *treeSource) Location() int64 { return -1 }
