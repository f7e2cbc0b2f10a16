package dsl_test

import (
	"encoding/json"
	"testing"

	forma "github.com/soracane/forma"
	"github.com/soracane/forma/dsl"
)

func TestArraySchema_ElementsAndLengthRules(t *testing.T) {
	arr := dsl.Array[string](dsl.String()).Min(2).Max(3)
	if arr.Type() != "array<string>" {
		t.Fatalf("type expected array<string>, got %q", arr.Type())
	}

	// ok case (len=2)
	got, passed := arr.Validate([]any{"a", "b"}).Get()
	if !passed {
		t.Fatalf("unexpected failure")
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected value: %#v", got)
	}

	// too short (len=1)
	pe, failed := arr.Validate([]any{"a"}).GetErr()
	if !failed || pe.Message != forma.MsgTooFewItems {
		t.Fatalf("expected too few items, got (%v, %v)", pe, failed)
	}
	if len(pe.Path) != 0 {
		t.Fatalf("length rule failures carry an empty path, got %v", pe.Path)
	}

	// too long (len=4)
	pe, failed = arr.Validate([]any{"a", "b", "c", "d"}).GetErr()
	if !failed || pe.Message != forma.MsgTooManyItems {
		t.Fatalf("expected too many items, got (%v, %v)", pe, failed)
	}
}

func TestArraySchema_ElementFailurePath(t *testing.T) {
	arr := dsl.Array[float64](dsl.Number())
	pe, failed := arr.Validate([]any{json.Number("1"), "x", json.Number("3")}).GetErr()
	if !failed {
		t.Fatalf("expected element failure")
	}
	if pe.Message != forma.MsgExpectingNumber {
		t.Fatalf("expected %q, got %q", forma.MsgExpectingNumber, pe.Message)
	}
	if pe.Pointer() != "/1" {
		t.Fatalf("expected pointer /1, got %s", pe.Pointer())
	}
	if pe.Input != "x" {
		t.Fatalf("Input should be the failing element, got %v", pe.Input)
	}
}

func TestArraySchema_TypedSliceInput(t *testing.T) {
	arr := dsl.Array[float64](dsl.Number())
	got, passed := arr.Validate([]float64{1, 2}).Get()
	if !passed || len(got) != 2 || got[0] != 1 {
		t.Fatalf("typed slices should validate, got (%v, %v)", got, passed)
	}
}

func TestArraySchema_InvalidType(t *testing.T) {
	arr := dsl.Array[string](dsl.String())
	pe, failed := arr.Validate("not array").GetErr()
	if !failed || pe.Message != forma.MsgExpectingArray {
		t.Fatalf("expected array rejection, got (%v, %v)", pe, failed)
	}
}

func TestArraySchema_BuilderCopies(t *testing.T) {
	base := dsl.Array[string](dsl.String())
	limited := base.Min(2)
	if _, passed := base.Validate([]any{"only"}).Get(); !passed {
		t.Fatalf("Min on a derived builder must not leak into the base")
	}
	if _, failed := limited.Validate([]any{"only"}).GetErr(); !failed {
		t.Fatalf("derived builder should enforce its own minimum")
	}
}

func TestObjectSchema_DeclarationOrderShortCircuit(t *testing.T) {
	obj := dsl.Object().
		Field("a", dsl.SchemaOf(dsl.Number())).
		Field("b", dsl.SchemaOf(dsl.String())).
		MustBuild()
	if obj.Type() != "object" {
		t.Fatalf("type expected object, got %q", obj.Type())
	}

	// Both fields invalid: the first declared field reports.
	pe, failed := obj.Validate(map[string]any{"a": "x", "b": 1}).GetErr()
	if !failed || pe.Pointer() != "/a" {
		t.Fatalf("expected first declared failure at /a, got (%v, %v)", pe, failed)
	}

	// First valid, second invalid.
	pe, _ = obj.Validate(map[string]any{"a": float64(1), "b": 2}).GetErr()
	if pe.Pointer() != "/b" {
		t.Fatalf("expected /b, got %s", pe.Pointer())
	}
}

func TestObjectSchema_MissingFieldIsAbsent(t *testing.T) {
	obj := dsl.Object().
		Field("name", dsl.SchemaOf(dsl.String())).
		MustBuild()
	pe, failed := obj.Validate(map[string]any{}).GetErr()
	if !failed || pe.Message != forma.MsgExpectingString || pe.Pointer() != "/name" {
		t.Fatalf("missing field should fail the child check at /name, got (%v, %v)", pe, failed)
	}
}

func TestObjectSchema_ExtraKeysDroppedByDefault(t *testing.T) {
	obj := dsl.Object().
		Field("name", dsl.SchemaOf(dsl.String())).
		MustBuild()
	v, passed := obj.Validate(map[string]any{"name": "a", "x": 1, "y": 2}).Get()
	if !passed {
		t.Fatalf("extra keys should be dropped, not rejected")
	}
	if len(v) != 1 || v["name"] != "a" {
		t.Fatalf("output should hold exactly the declared fields, got %#v", v)
	}
}

func TestObjectSchema_UnknownStrict(t *testing.T) {
	obj := dsl.Object().
		Field("name", dsl.SchemaOf(dsl.String())).
		UnknownStrict().
		MustBuild()
	pe, failed := obj.Validate(map[string]any{"name": "a", "z": 1, "b": 2}).GetErr()
	if !failed || pe.Message != forma.MsgUnknownKey {
		t.Fatalf("expected unknown key, got (%v, %v)", pe, failed)
	}
	// The scan is lexicographic, so "b" reports before "z".
	if pe.Pointer() != "/b" {
		t.Fatalf("expected /b, got %s", pe.Pointer())
	}
	if pe.Input != "b" {
		t.Fatalf("Input should be the offending key, got %v", pe.Input)
	}
}

func TestObjectSchema_ReRegisterKeepsPosition(t *testing.T) {
	obj := dsl.Object().
		Field("a", dsl.SchemaOf(dsl.String())).
		Field("b", dsl.SchemaOf(dsl.String())).
		Field("a", dsl.SchemaOf(dsl.Number())).
		MustBuild()

	// "a" still validates first and now expects a number.
	pe, failed := obj.Validate(map[string]any{"a": "x", "b": 1}).GetErr()
	if !failed || pe.Pointer() != "/a" || pe.Message != forma.MsgExpectingNumber {
		t.Fatalf("re-registered field should keep its slot, got (%v, %v)", pe, failed)
	}
}

func TestObjectSchema_NonPlainInputs(t *testing.T) {
	obj := dsl.Object().MustBuild()
	for _, in := range []any{nil, []any{}, "s", 1, map[string]int{"a": 1}} {
		pe, failed := obj.Validate(in).GetErr()
		if !failed || pe.Message != forma.MsgExpectingObject {
			t.Fatalf("Validate(%T) expected object rejection, got (%v, %v)", in, pe, failed)
		}
	}
}

func TestObjectBuilder_EmptyFieldName(t *testing.T) {
	if _, err := dsl.Object().Field("", dsl.SchemaOf(dsl.String())).Build(); err == nil {
		t.Fatalf("expected build error for empty field name")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("MustBuild should panic on build error")
		}
	}()
	_ = dsl.Object().Field("", dsl.SchemaOf(dsl.String())).MustBuild()
}

func TestNestedPathComposition(t *testing.T) {
	obj := dsl.Object().
		Field("items", dsl.ArrayOf(
			dsl.Object().
				Field("n", dsl.SchemaOf(dsl.Number())).
				MustBuild(),
		)).
		MustBuild()

	in := map[string]any{
		"items": []any{
			map[string]any{"n": float64(1)},
			map[string]any{"n": "x"},
		},
	}
	pe, failed := obj.Validate(in).GetErr()
	if !failed {
		t.Fatalf("expected nested failure")
	}
	if pe.Pointer() != "/items/1/n" {
		t.Fatalf("expected pointer /items/1/n, got %s", pe.Pointer())
	}
	if pe.Message != forma.MsgExpectingNumber {
		t.Fatalf("expected %q, got %q", forma.MsgExpectingNumber, pe.Message)
	}
}

func TestAnyAdapter_MinMax(t *testing.T) {
	qty := dsl.SchemaOf(dsl.Number()).Min(1).Max(10)

	if _, passed := qty.Validate(float64(5)).Get(); !passed {
		t.Fatalf("in-range value should pass")
	}
	pe, failed := qty.Validate(float64(0)).GetErr()
	if !failed || pe.Message != forma.MsgValueTooSmall {
		t.Fatalf("expected value too small, got (%v, %v)", pe, failed)
	}
	pe, _ = qty.Validate(float64(11)).GetErr()
	if pe.Message != forma.MsgValueTooLarge {
		t.Fatalf("expected value too large, got %v", pe)
	}

	// Inside an object the range failure picks up the field segment.
	obj := dsl.Object().Field("qty", qty).MustBuild()
	pe, _ = obj.Validate(map[string]any{"qty": float64(0)}).GetErr()
	if pe.Pointer() != "/qty" || pe.Message != forma.MsgValueTooSmall {
		t.Fatalf("expected value too small at /qty, got %v", pe)
	}
}

func TestAnyAdapter_MinIgnoresNonNumericValues(t *testing.T) {
	ad := dsl.SchemaOf(dsl.String()).Min(3)
	if v, passed := ad.Validate("ab").Get(); !passed || v != "ab" {
		t.Fatalf("range rules only read numeric outputs, got (%v, %v)", v, passed)
	}
}

func TestAnyAdapter_SchemaView(t *testing.T) {
	ad := dsl.SchemaOf(dsl.Number())
	s := ad.Schema()
	if s.Type() != "number" {
		t.Fatalf("schema view should keep the label, got %q", s.Type())
	}
	v, passed := s.Validate(json.Number("2")).Get()
	if !passed || v != float64(2) {
		t.Fatalf("schema view should validate like the adapter, got (%v, %v)", v, passed)
	}
}
