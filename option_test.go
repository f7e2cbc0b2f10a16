package forma_test

import (
	"testing"

	forma "github.com/soracane/forma"
)

func TestOption_Basic(t *testing.T) {
	s := forma.Some(42)
	if !s.IsSome() || s.IsNone() {
		t.Fatalf("Some(42) should be Some, got %v", s)
	}
	if v, present := s.Get(); !present || v != 42 {
		t.Fatalf("Get expected (42, true), got (%v, %v)", v, present)
	}
	if s.Unwrap() != 42 {
		t.Fatalf("Unwrap expected 42, got %v", s.Unwrap())
	}

	n := forma.None[int]()
	if n.IsSome() || !n.IsNone() {
		t.Fatalf("None should be None, got %v", n)
	}
	if _, present := n.Get(); present {
		t.Fatalf("Get on None should report absence")
	}
	if got := n.UnwrapOr(7); got != 7 {
		t.Fatalf("UnwrapOr expected 7, got %v", got)
	}
	if got := n.UnwrapOrElse(func() int { return 9 }); got != 9 {
		t.Fatalf("UnwrapOrElse expected 9, got %v", got)
	}
}

func TestOption_UnwrapNonePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Unwrap on None should panic")
		}
	}()
	_ = forma.None[string]().Unwrap()
}

func TestSome_PanicsOnAbsentValue(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Some around a nil pointer should panic")
		}
	}()
	var p *int
	_ = forma.Some(p)
}

func TestOption_FilterOrMap(t *testing.T) {
	even := func(v int) bool { return v%2 == 0 }

	if got := forma.Some(4).Filter(even); got.IsNone() {
		t.Fatalf("Filter should keep 4, got %v", got)
	}
	if got := forma.Some(3).Filter(even); got.IsSome() {
		t.Fatalf("Filter should drop 3, got %v", got)
	}
	if got := forma.None[int]().Filter(even); got.IsSome() {
		t.Fatalf("Filter on None should stay None, got %v", got)
	}

	alt := forma.Some(1)
	if got := forma.None[int]().Or(alt); got.Unwrap() != 1 {
		t.Fatalf("Or on None should yield the alternative, got %v", got)
	}
	if got := forma.Some(2).Or(alt); got.Unwrap() != 2 {
		t.Fatalf("Or on Some should keep the receiver, got %v", got)
	}
	if got := forma.None[int]().OrElse(func() forma.Option[int] { return forma.Some(5) }); got.Unwrap() != 5 {
		t.Fatalf("OrElse on None expected Some(5), got %v", got)
	}

	if got := forma.Some(10).Map(func(v int) int { return v * 2 }); got.Unwrap() != 20 {
		t.Fatalf("Map expected 20, got %v", got)
	}
	if got := forma.None[int]().Map(func(v int) int { return v * 2 }); got.IsSome() {
		t.Fatalf("Map on None should stay None, got %v", got)
	}
}

func TestOption_PackageCombinators(t *testing.T) {
	o := forma.MapOption(forma.Some(21), func(v int) string {
		if v > 20 {
			return "big"
		}
		return "small"
	})
	if o.Unwrap() != "big" {
		t.Fatalf("MapOption expected big, got %v", o)
	}

	chained := forma.AndThenOption(forma.Some(2), func(v int) forma.Option[string] {
		if v > 0 {
			return forma.Some("pos")
		}
		return forma.None[string]()
	})
	if chained.Unwrap() != "pos" {
		t.Fatalf("AndThenOption expected pos, got %v", chained)
	}
	if got := forma.AndThenOption(forma.None[int](), func(v int) forma.Option[string] {
		t.Fatalf("fn should not run on None")
		return forma.None[string]()
	}); got.IsSome() {
		t.Fatalf("AndThenOption on None should stay None")
	}
}

func TestOption_OkOr(t *testing.T) {
	r := forma.OkOr(forma.Some("v"), "missing")
	if v, passed := r.Get(); !passed || v != "v" {
		t.Fatalf("OkOr on Some expected Ok(v), got %v", r)
	}
	r = forma.OkOr(forma.None[string](), "missing")
	if e, failed := r.GetErr(); !failed || e != "missing" {
		t.Fatalf("OkOr on None expected Err(missing), got %v", r)
	}

	called := false
	r = forma.OkOrElse(forma.Some("v"), func() string { called = true; return "missing" })
	if r.IsErr() || called {
		t.Fatalf("OkOrElse on Some should not call fn, got %v called=%v", r, called)
	}
	r = forma.OkOrElse(forma.None[string](), func() string { return "lazy" })
	if e, _ := r.GetErr(); e != "lazy" {
		t.Fatalf("OkOrElse on None expected Err(lazy), got %v", r)
	}
}

func TestOption_String(t *testing.T) {
	if got := forma.Some(3).String(); got != "Some(3)" {
		t.Fatalf("String expected Some(3), got %q", got)
	}
	if got := forma.None[int]().String(); got != "None" {
		t.Fatalf("String expected None, got %q", got)
	}
}
