package dsl

import (
	forma "github.com/soracane/forma"
)

// Codec lifts a Codec[A, B] into a Schema[B]: the wire shape is checked by
// the codec's In side, then Decode carries the value across. The label is the
// Out side's, since that is the type callers receive.
func Codec[A, B any](c forma.Codec[A, B]) forma.Schema[B] {
	return codecSchema[A, B]{c: c}
}

type codecSchema[A, B any] struct{ c forma.Codec[A, B] }

func (s codecSchema[A, B]) Type() string { return s.c.Out().Type() }

func (s codecSchema[A, B]) Validate(v any) forma.Result[B, forma.ParseError] {
	return forma.AndThenResult(s.c.In().Validate(v), s.c.Decode)
}
