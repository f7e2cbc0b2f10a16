package dsl

import (
	"strconv"

	forma "github.com/soracane/forma"
)

// ArrayBuilder is a Schema[[]E] with chainable length rules. Min and Max
// return modified copies, so a builder already in use stays immutable.
type ArrayBuilder[E any] struct {
	elem   forma.Schema[E]
	minLen int
	maxLen int
	typ    string
}

// Array returns an array schema with the given element schema.
func Array[E any](elem forma.Schema[E]) *ArrayBuilder[E] {
	return &ArrayBuilder[E]{elem: elem, minLen: -1, maxLen: -1, typ: "array<" + elem.Type() + ">"}
}

// ArrayOf adapts Array[E] to an AnyAdapter for object fields.
// Example: Field("tags", dsl.ArrayOf[string](dsl.String()))
func ArrayOf[E any](elem forma.Schema[E]) AnyAdapter {
	return SchemaOf[[]E](Array(elem))
}

// Min sets the minimum length on a copy.
func (a *ArrayBuilder[E]) Min(n int) *ArrayBuilder[E] {
	out := *a
	out.minLen = n
	return &out
}

// Max sets the maximum length on a copy.
func (a *ArrayBuilder[E]) Max(n int) *ArrayBuilder[E] {
	out := *a
	out.maxLen = n
	return &out
}

func (a *ArrayBuilder[E]) Type() string { return a.typ }

func (a *ArrayBuilder[E]) Validate(v any) forma.Result[[]E, forma.ParseError] {
	switch src := v.(type) {
	case []E:
		return validateArrayElems(a, src, v)
	case []any:
		return validateArrayElems(a, src, v)
	default:
		return reject[[]E](forma.NewParseError(forma.MsgExpectingArray, v))
	}
}

// validateArrayElems walks the elements in order, stopping at the first
// failure with the stringified index prepended. Length rules apply only
// after every element has passed.
func validateArrayElems[E, S any](a *ArrayBuilder[E], src []S, whole any) forma.Result[[]E, forma.ParseError] {
	out := make([]E, 0, len(src))
	for i := range src {
		res := a.elem.Validate(src[i])
		if e, failed := res.GetErr(); failed {
			return reject[[]E](e.Prepend(strconv.Itoa(i)))
		}
		ev, _ := res.Get()
		out = append(out, ev)
	}
	if a.minLen >= 0 && len(out) < a.minLen {
		return reject[[]E](forma.NewParseError(forma.MsgTooFewItems, whole))
	}
	if a.maxLen >= 0 && len(out) > a.maxLen {
		return reject[[]E](forma.NewParseError(forma.MsgTooManyItems, whole))
	}
	return accept(out)
}
