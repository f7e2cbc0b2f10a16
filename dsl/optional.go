package dsl

import (
	forma "github.com/soracane/forma"
)

type optionalSchema[E any] struct {
	inner forma.Schema[E]
	typ   string
}

// Optional wraps a schema so absent input yields None instead of an error.
// Present input delegates to the inner schema; its failures propagate with
// the path unchanged.
func Optional[E any](s forma.Schema[E]) forma.Schema[forma.Option[E]] {
	return optionalSchema[E]{inner: s, typ: "option<" + s.Type() + ">"}
}

func (o optionalSchema[E]) Type() string { return o.typ }

func (o optionalSchema[E]) Validate(v any) forma.Result[forma.Option[E], forma.ParseError] {
	if forma.IsAbsent(v) {
		return accept(forma.None[E]())
	}
	return forma.MapResult(o.inner.Validate(v), func(ev E) forma.Option[E] {
		if forma.IsAbsent(ev) {
			return forma.None[E]()
		}
		return forma.Some(ev)
	})
}

type defaultedSchema[E any] struct {
	inner forma.Schema[E]
	def   E
}

// Defaulted substitutes the literal default when input is absent. The
// default is trusted as-is and never re-validated; present input delegates
// to the inner schema. The type label is inherited unchanged.
func Defaulted[E any](s forma.Schema[E], def E) forma.Schema[E] {
	return defaultedSchema[E]{inner: s, def: def}
}

func (d defaultedSchema[E]) Type() string { return d.inner.Type() }

func (d defaultedSchema[E]) Validate(v any) forma.Result[E, forma.ParseError] {
	if forma.IsAbsent(v) {
		return accept(d.def)
	}
	return d.inner.Validate(v)
}

// OptionalOf adapts Optional(s) for object fields.
func OptionalOf[E any](s forma.Schema[E]) AnyAdapter { return SchemaOf(Optional(s)) }

// DefaultedOf adapts Defaulted(s, def) for object fields.
func DefaultedOf[E any](s forma.Schema[E], def E) AnyAdapter { return SchemaOf(Defaulted(s, def)) }
