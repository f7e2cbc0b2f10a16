package fastjson

import (
	"fmt"
	"io"

	fj "github.com/valyala/fastjson"

	forma "github.com/soracane/forma"
	eng "github.com/soracane/forma/internal/engine"
)

// Driver returns a forma.JSONDriver backed by valyala/fastjson.
// The driver parses the whole document up front and replays it as tokens,
// so it reports no byte offsets. Install it with forma.SetJSONDriver.
func Driver() forma.JSONDriver { return driverFastJSON{} }

type driverFastJSON struct{}

func (driverFastJSON) NewReader(r io.Reader) forma.Source {
	return forma.SourceFromEngine(NewReader(r), forma.NumberJSONNumber)
}
func (driverFastJSON) NewBytes(b []byte) forma.Source {
	return forma.SourceFromEngine(NewBytes(b), forma.NumberJSONNumber)
}
func (driverFastJSON) Name() string { return "fastjson" }

type walkOp struct {
	val *fj.Value
	tok *eng.Token
}

type source struct {
	data   []byte
	reader io.Reader
	parser fj.Parser
	ops    []walkOp
	parsed bool
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using
// fastjson. The reader is drained and parsed on the first NextToken call.
func NewReader(r io.Reader) eng.TokenSource { return &source{reader: r} }

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using fastjson.
func NewBytes(b []byte) eng.TokenSource { return &source{data: b} }

func (s *source) NextToken() (eng.Token, error) {
	if !s.parsed {
		if err := s.parse(); err != nil {
			return eng.Token{}, err
		}
	}
	if n := len(s.ops); n > 0 {
		op := s.ops[n-1]
		s.ops = s.ops[:n-1]
		if op.tok != nil {
			return *op.tok, nil
		}
		return s.expand(op.val)
	}
	return eng.Token{}, io.EOF
}

func (s *source) Location() int64 { return -1 }

func (s *source) parse() error {
	s.parsed = true
	data := s.data
	if s.reader != nil {
		b, err := io.ReadAll(s.reader)
		if err != nil {
			return err
		}
		data = b
	}
	v, err := s.parser.ParseBytes(data)
	if err != nil {
		return err
	}
	s.ops = append(s.ops, walkOp{val: v})
	return nil
}

// expand emits the leading token for v and pushes any children so they are
// replayed in document order.
func (s *source) expand(v *fj.Value) (eng.Token, error) {
	switch v.Type() {
	case fj.TypeObject:
		o, err := v.Object()
		if err != nil {
			return eng.Token{}, err
		}
		type member struct {
			key string
			val *fj.Value
		}
		var members []member
		o.Visit(func(key []byte, vv *fj.Value) {
			members = append(members, member{key: string(key), val: vv})
		})
		s.ops = append(s.ops, walkOp{tok: &eng.Token{Kind: eng.KindEndObject, Offset: -1}})
		for i := len(members) - 1; i >= 0; i-- {
			s.ops = append(s.ops, walkOp{val: members[i].val})
			s.ops = append(s.ops, walkOp{tok: &eng.Token{Kind: eng.KindKey, String: members[i].key, Offset: -1}})
		}
		return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
	case fj.TypeArray:
		items, err := v.Array()
		if err != nil {
			return eng.Token{}, err
		}
		s.ops = append(s.ops, walkOp{tok: &eng.Token{Kind: eng.KindEndArray, Offset: -1}})
		for i := len(items) - 1; i >= 0; i-- {
			s.ops = append(s.ops, walkOp{val: items[i]})
		}
		return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
	case fj.TypeString:
		sb, err := v.StringBytes()
		if err != nil {
			return eng.Token{}, err
		}
		return eng.Token{Kind: eng.KindString, String: string(sb), Offset: -1}, nil
	case fj.TypeNumber:
		// String on a parsed number yields the raw literal, which keeps
		// json.Number round-trips exact.
		return eng.Token{Kind: eng.KindNumber, Number: v.String(), Offset: -1}, nil
	case fj.TypeTrue:
		return eng.Token{Kind: eng.KindBool, Bool: true, Offset: -1}, nil
	case fj.TypeFalse:
		return eng.Token{Kind: eng.KindBool, Bool: false, Offset: -1}, nil
	case fj.TypeNull:
		return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
	}
	return eng.Token{}, fmt.Errorf("fastjson: unsupported value type %v", v.Type())
}
