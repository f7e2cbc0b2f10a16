package codec

import (
	forma "github.com/soracane/forma"
)

// Identity returns a Codec[T, T] whose In and Out sides are both s. Decode
// and Encode re-run the schema, so a value crossing in either direction is
// checked the same way raw input would be.
func Identity[T any](s forma.Schema[T]) forma.Codec[T, T] {
	return &identityCodec[T]{s: s}
}

type identityCodec[T any] struct {
	s forma.Schema[T]
}

func (c *identityCodec[T]) In() forma.Schema[T]  { return c.s }
func (c *identityCodec[T]) Out() forma.Schema[T] { return c.s }

func (c *identityCodec[T]) Decode(a T) forma.Result[T, forma.ParseError] {
	return c.s.Validate(a)
}

func (c *identityCodec[T]) Encode(b T) forma.Result[T, forma.ParseError] {
	return c.s.Validate(b)
}
