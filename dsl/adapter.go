package dsl

import (
	forma "github.com/soracane/forma"
)

// accept and reject fix the error side of Result to ParseError so schema
// code reads as a narration of outcomes.
func accept[T any](v T) forma.Result[T, forma.ParseError] {
	return forma.Ok[T, forma.ParseError](v)
}

func reject[T any](e forma.ParseError) forma.Result[T, forma.ParseError] {
	return forma.Err[T, forma.ParseError](e)
}

// AnyAdapter adapts Schema[T] to an any-typed carrier for object fields.
// It keeps the original schema to support typed binding and composition.
type AnyAdapter struct {
	typ      string
	validate func(any) forma.Result[any, forma.ParseError]
	orig     any
}

// SchemaOf wraps a strongly typed Schema[T] as an AnyAdapter for field builders.
func SchemaOf[T any](s forma.Schema[T]) AnyAdapter {
	return AnyAdapter{
		typ: s.Type(),
		validate: func(v any) forma.Result[any, forma.ParseError] {
			return forma.MapResult(s.Validate(v), func(tv T) any { return tv })
		},
		orig: s,
	}
}

// Type reports the wrapped schema's type label.
func (ad AnyAdapter) Type() string { return ad.typ }

// Validate runs the wrapped schema against v.
func (ad AnyAdapter) Validate(v any) forma.Result[any, forma.ParseError] { return ad.validate(v) }

// Orig returns the original Schema[T] or builder used to create this adapter.
// It is intended for advanced integrations and may change.
func (ad AnyAdapter) Orig() any { return ad.orig }

// Min layers an inclusive numeric minimum after the inner validation.
// Values the numeric projection cannot read pass through untouched.
func (ad AnyAdapter) Min(n float64) AnyAdapter {
	prev := ad.validate
	out := ad
	out.validate = func(v any) forma.Result[any, forma.ParseError] {
		res := prev(v)
		val, passed := res.Get()
		if !passed {
			return res
		}
		if f, numeric := floatValue(val); numeric && f < n {
			return reject[any](forma.NewParseError(forma.MsgValueTooSmall, val))
		}
		return res
	}
	return out
}

// Max layers an inclusive numeric maximum after the inner validation.
func (ad AnyAdapter) Max(n float64) AnyAdapter {
	prev := ad.validate
	out := ad
	out.validate = func(v any) forma.Result[any, forma.ParseError] {
		res := prev(v)
		val, passed := res.Get()
		if !passed {
			return res
		}
		if f, numeric := floatValue(val); numeric && f > n {
			return reject[any](forma.NewParseError(forma.MsgValueTooLarge, val))
		}
		return res
	}
	return out
}

// Schema recovers a Schema[any] view for generic composition.
func (ad AnyAdapter) Schema() forma.Schema[any] { return anySchema{ad: ad} }

type anySchema struct{ ad AnyAdapter }

func (s anySchema) Type() string                                       { return s.ad.typ }
func (s anySchema) Validate(v any) forma.Result[any, forma.ParseError] { return s.ad.validate(v) }
