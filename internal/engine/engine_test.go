package engine_test

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"testing"
	"time"

	eng "github.com/soracane/forma/internal/engine"
)

// sliceSource replays a fixed token stream. TreeSource cannot emit duplicate
// keys, so enforcement tests build their streams by hand.
type sliceSource struct {
	toks []eng.Token
	i    int
}

func (s *sliceSource) NextToken() (eng.Token, error) {
	if s.i >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func (s *sliceSource) Location() int64 { return -1 }

func beginObj() eng.Token    { return eng.Token{Kind: eng.KindBeginObject, Offset: -1} }
func endObj() eng.Token      { return eng.Token{Kind: eng.KindEndObject, Offset: -1} }
func key(s string) eng.Token { return eng.Token{Kind: eng.KindKey, String: s, Offset: -1} }
func num(s string) eng.Token { return eng.Token{Kind: eng.KindNumber, Number: s, Offset: -1} }

func TestTreeSource_EmitsKeysSorted(t *testing.T) {
	src := eng.TreeSource(map[string]any{"b": 1, "a": 2})
	var keys []string
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("token err: %v", err)
		}
		if tok.Kind == eng.KindKey {
			keys = append(keys, tok.String)
		}
	}
	if !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Fatalf("keys should come out sorted, got %v", keys)
	}
}

func TestTreeSource_DecodeRoundTrip(t *testing.T) {
	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	in := map[string]any{
		"name":  "web",
		"count": 3,
		"ratio": 0.5,
		"flag":  true,
		"at":    at,
		"tags":  []any{"a", json.Number("2")},
		"nope":  nil,
	}
	got, err := eng.DecodeAnyFromSource(eng.TreeSource(in))
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	want := map[string]any{
		"name":  "web",
		"count": json.Number("3"),
		"ratio": json.Number("0.5"),
		"flag":  true,
		"at":    at,
		"tags":  []any{"a", json.Number("2")},
		"nope":  nil,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestEnforcement_DepthLimit(t *testing.T) {
	tree := map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}
	wrapped := eng.WrapWithEnforcement(eng.TreeSource(tree), eng.EnforceOptions{MaxDepth: 2})
	_, err := eng.DecodeAnyFromSource(wrapped)
	var ve eng.ViolationError
	if !errors.As(err, &ve) || ve.Kind != eng.ViolationDepth {
		t.Fatalf("expected a depth violation, got %v", err)
	}
	if ve.Path != "/a/b" {
		t.Fatalf("violation should point at the container that crossed the limit, got %q", ve.Path)
	}
}

func TestEnforcement_DuplicateKeyPointerEscaping(t *testing.T) {
	src := &sliceSource{toks: []eng.Token{
		beginObj(),
		key("a/b"), num("1"),
		key("a/b"), num("2"),
		endObj(),
	}}
	wrapped := eng.WrapWithEnforcement(src, eng.EnforceOptions{OnDuplicate: eng.DupError})
	_, err := eng.DecodeAnyFromSource(wrapped)
	var ve eng.ViolationError
	if !errors.As(err, &ve) || ve.Kind != eng.ViolationDuplicate {
		t.Fatalf("expected a duplicate violation, got %v", err)
	}
	if ve.Path != "/a~1b" || ve.Token != "a/b" {
		t.Fatalf("expected the escaped pointer and raw key, got %q %q", ve.Path, ve.Token)
	}
}

func TestEnforcement_DuplicateAfterNestedValue(t *testing.T) {
	// The second "k" follows a complete nested object, so the frame must have
	// flipped back to expecting a key.
	src := &sliceSource{toks: []eng.Token{
		beginObj(),
		key("k"), beginObj(), key("x"), num("1"), endObj(),
		key("k"), num("2"),
		endObj(),
	}}
	wrapped := eng.WrapWithEnforcement(src, eng.EnforceOptions{OnDuplicate: eng.DupError})
	_, err := eng.DecodeAnyFromSource(wrapped)
	var ve eng.ViolationError
	if !errors.As(err, &ve) || ve.Path != "/k" {
		t.Fatalf("expected the duplicate at /k, got %v", err)
	}
}

func TestDetectDuplicateKeys_OrderAndCap(t *testing.T) {
	stream := func() *sliceSource {
		return &sliceSource{toks: []eng.Token{
			beginObj(),
			key("x"), num("1"),
			key("x"), num("2"),
			key("y"), num("3"),
			key("y"), num("4"),
			key("z"), num("5"),
			key("z"), num("6"),
			endObj(),
		}}
	}

	all := eng.DetectDuplicateKeys(stream(), -1)
	if len(all) != 3 {
		t.Fatalf("expected 3 duplicates, got %d: %v", len(all), all)
	}
	if all[0].Path != "/x" || all[1].Path != "/y" || all[2].Path != "/z" {
		t.Fatalf("duplicates should report in order of appearance: %v", all)
	}
	for _, v := range all {
		if v.Kind != eng.ViolationDuplicate {
			t.Fatalf("unexpected kind: %v", v)
		}
	}

	capped := eng.DetectDuplicateKeys(stream(), 2)
	if len(capped) != 2 || capped[1].Path != "/y" {
		t.Fatalf("cap should keep the first two, got %v", capped)
	}

	if got := eng.DetectDuplicateKeys(stream(), 0); len(got) != 0 {
		t.Fatalf("zero disables collection, got %v", got)
	}
}
