package dsl

import (
	"fmt"
	"reflect"

	forma "github.com/soracane/forma"
)

// Bind builds the object schema and binds it to struct type T. Field keys
// resolve via forma.ResolveStructKey (forma:"name=..." tag, then json tag,
// then the field name; "-" opts a field out). T must be a struct or a
// pointer to one; anything else is rejected here rather than per call.
//
// Bind is a free function because Go methods cannot carry type parameters.
func Bind[T any](b *ObjectBuilder) (forma.Schema[T], error) {
	os, err := b.Build()
	if err != nil {
		return nil, err
	}
	inner, ok := os.(*objectSchema)
	if !ok {
		return nil, fmt.Errorf("dsl: Bind expects the builder's own object schema, have %T", os)
	}
	return newBoundSchema[T](inner)
}

// MustBind is Bind panicking on error. Intended for package-level schema
// variables where a bad binding is a programming error.
func MustBind[T any](b *ObjectBuilder) forma.Schema[T] {
	s, err := Bind[T](b)
	if err != nil {
		panic(err)
	}
	return s
}

// boundSchema projects the inner object schema's validated map onto struct T.
type boundSchema[T any] struct {
	inner      *objectSchema
	rt         reflect.Type // struct type, pointer already stripped
	wantPtr    bool
	fieldIndex map[string]int // object key -> struct field index
}

func newBoundSchema[T any](inner *objectSchema) (forma.Schema[T], error) {
	var probe T
	rt := reflect.TypeOf(&probe).Elem()
	wantPtr := rt.Kind() == reflect.Pointer
	if wantPtr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("dsl: Bind requires a struct or pointer to struct, have %s", rt.Kind())
	}
	byKey := make(map[string]int)
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := forma.ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		byKey[name] = i
	}
	fieldIndex := make(map[string]int, len(inner.fields))
	for _, f := range inner.fields {
		if i, found := byKey[f.name]; found {
			fieldIndex[f.name] = i
		}
	}
	return &boundSchema[T]{inner: inner, rt: rt, wantPtr: wantPtr, fieldIndex: fieldIndex}, nil
}

func (s *boundSchema[T]) Type() string { return s.inner.Type() }

func (s *boundSchema[T]) Validate(v any) forma.Result[T, forma.ParseError] {
	res := s.inner.Validate(v)
	if e, failed := res.GetErr(); failed {
		return reject[T](e)
	}
	m, _ := res.Get()
	pv := reflect.New(s.rt)
	rv := pv.Elem()
	// Walk declared order so a mismatch always reports the same field.
	for _, f := range s.inner.fields {
		idx, bound := s.fieldIndex[f.name]
		if !bound {
			continue
		}
		val, present := m[f.name]
		if !present {
			continue
		}
		fv := rv.Field(idx)
		if val == nil {
			switch fv.Kind() {
			case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
				fv.Set(reflect.Zero(fv.Type()))
			}
			continue
		}
		vv := reflect.ValueOf(val)
		switch {
		case vv.Type().AssignableTo(fv.Type()):
			fv.Set(vv)
		case vv.Type().ConvertibleTo(fv.Type()):
			fv.Set(vv.Convert(fv.Type()))
		default:
			return reject[T](forma.ParseError{
				Path:    []string{f.name},
				Message: forma.MsgFieldMismatch,
				Input:   val,
			})
		}
	}
	if s.wantPtr {
		return accept(pv.Interface().(T))
	}
	return accept(rv.Interface().(T))
}
