package dsl

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"time"

	forma "github.com/soracane/forma"
)

// String returns the minimal string schema implementation.
func String() forma.Schema[string] { return stringSchema{} }

// Bool returns the minimal bool schema implementation.
func Bool() forma.Schema[bool] { return boolSchema{} }

// Number returns the float64 schema. It accepts every finite numeric node the
// decode boundary can produce and rejects NaN and the infinities. There is no
// string-to-number coercion.
func Number() forma.Schema[float64] { return numberSchema{} }

// Date returns the time.Time schema. The zero time and years outside the
// marshalable range [0,9999] count as invalid dates.
func Date() forma.Schema[time.Time] { return dateSchema{} }

type stringSchema struct{}

func (stringSchema) Type() string { return "string" }

func (stringSchema) Validate(v any) forma.Result[string, forma.ParseError] {
	s, isString := v.(string)
	if !isString {
		return reject[string](forma.NewParseError(forma.MsgExpectingString, v))
	}
	return accept(s)
}

type boolSchema struct{}

func (boolSchema) Type() string { return "boolean" }

func (boolSchema) Validate(v any) forma.Result[bool, forma.ParseError] {
	b, isBool := v.(bool)
	if !isBool {
		return reject[bool](forma.NewParseError(forma.MsgExpectingBoolean, v))
	}
	return accept(b)
}

type numberSchema struct{}

func (numberSchema) Type() string { return "number" }

func (numberSchema) Validate(v any) forma.Result[float64, forma.ParseError] {
	f, numeric := floatValue(v)
	if !numeric || math.IsNaN(f) || math.IsInf(f, 0) {
		return reject[float64](forma.NewParseError(forma.MsgExpectingNumber, v))
	}
	return accept(f)
}

// floatValue projects the numeric node kinds of the value-tree vocabulary
// onto float64. JSON decoding yields json.Number or float64 depending on
// NumberMode; YAML yields int, int64, uint64 or float64.
func floatValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8, int16, int32, int64:
		return float64(reflect.ValueOf(t).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(t).Uint()), true
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

type dateSchema struct{}

func (dateSchema) Type() string { return "date" }

func (dateSchema) Validate(v any) forma.Result[time.Time, forma.ParseError] {
	t, isTime := v.(time.Time)
	if !isTime {
		return reject[time.Time](forma.NewParseError(forma.MsgExpectingDate, v))
	}
	if t.IsZero() || t.Year() < 0 || t.Year() > 9999 {
		return reject[time.Time](forma.NewParseError(forma.MsgExpectingDate, v))
	}
	// Round(0) strips the monotonic reading so the result is a pure
	// wall-clock instant detached from the caller's value.
	return accept(t.Round(0))
}
