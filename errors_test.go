package forma_test

import (
	"errors"
	"fmt"
	"testing"

	forma "github.com/soracane/forma"
)

func TestParseError_Rendering(t *testing.T) {
	e := forma.NewParseError(forma.MsgExpectingNumber, "x").
		Prepend("n").Prepend("1").Prepend("items")
	if got := e.Pointer(); got != "/items/1/n" {
		t.Fatalf("Pointer expected /items/1/n, got %q", got)
	}
	if got := e.Error(); got != "Expecting number at /items/1/n" {
		t.Fatalf("Error expected full rendering, got %q", got)
	}
}

func TestParseError_RootPointer(t *testing.T) {
	e := forma.NewParseError(forma.MsgExpectingObject, nil)
	if got := e.Pointer(); got != "/" {
		t.Fatalf("empty path should render as /, got %q", got)
	}
	if got := e.Error(); got != "Expecting object at /" {
		t.Fatalf("Error expected root rendering, got %q", got)
	}
}

func TestParseError_PointerEscaping(t *testing.T) {
	e := forma.NewParseError(forma.MsgUnknownKey, nil).Prepend("a/b").Prepend("m~n")
	if got := e.Pointer(); got != "/m~0n/a~1b" {
		t.Fatalf("Pointer should escape per RFC 6901, got %q", got)
	}
}

func TestParseError_PrependLeavesReceiverUntouched(t *testing.T) {
	base := forma.NewParseError(forma.MsgExpectingString, 1)
	withA := base.Prepend("a")
	withB := base.Prepend("b")
	if len(base.Path) != 0 {
		t.Fatalf("base path should stay empty, got %v", base.Path)
	}
	if withA.Pointer() != "/a" || withB.Pointer() != "/b" {
		t.Fatalf("derived errors should diverge, got %q and %q", withA.Pointer(), withB.Pointer())
	}
}

func TestAsParseError(t *testing.T) {
	pe := forma.NewParseError(forma.MsgExpectingBoolean, "nope").Prepend("flag")

	got, matched := forma.AsParseError(pe)
	if !matched || got.Message != forma.MsgExpectingBoolean {
		t.Fatalf("direct extraction expected the same error, got (%v, %v)", got, matched)
	}

	wrapped := fmt.Errorf("request rejected: %w", pe)
	got, matched = forma.AsParseError(wrapped)
	if !matched || got.Pointer() != "/flag" {
		t.Fatalf("wrapped extraction expected /flag, got (%v, %v)", got, matched)
	}

	if _, matched := forma.AsParseError(errors.New("plain")); matched {
		t.Fatalf("plain errors should not extract")
	}
	if _, matched := forma.AsParseError(nil); matched {
		t.Fatalf("nil should not extract")
	}
}
