package dsl

import (
	"sort"

	forma "github.com/soracane/forma"
)

// Map returns a schema for objects whose keys are free-form and whose values
// all validate against elem. Keys are visited in sorted order so the first
// failure is deterministic regardless of map iteration.
func Map[V any](elem forma.Schema[V]) forma.Schema[map[string]V] {
	return mapSchema[V]{elem: elem, typ: "map<" + elem.Type() + ">"}
}

// MapOf adapts Map[V] to an AnyAdapter for object fields.
func MapOf[V any](elem forma.Schema[V]) AnyAdapter {
	return SchemaOf(Map(elem))
}

type mapSchema[V any] struct {
	elem forma.Schema[V]
	typ  string
}

func (m mapSchema[V]) Type() string { return m.typ }

func (m mapSchema[V]) Validate(v any) forma.Result[map[string]V, forma.ParseError] {
	switch src := v.(type) {
	case map[string]V:
		return validateMapValues(m, src)
	case map[string]any:
		return validateMapValues(m, src)
	default:
		return reject[map[string]V](forma.NewParseError(forma.MsgExpectingObject, v))
	}
}

func validateMapValues[V, S any](m mapSchema[V], src map[string]S) forma.Result[map[string]V, forma.ParseError] {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]V, len(src))
	for _, k := range keys {
		res := m.elem.Validate(src[k])
		if e, failed := res.GetErr(); failed {
			return reject[map[string]V](e.Prepend(k))
		}
		ev, _ := res.Get()
		out[k] = ev
	}
	return accept(out)
}
