package dsl

import (
	"errors"

	forma "github.com/soracane/forma"
)

type fieldEntry struct {
	name string
	ad   AnyAdapter
}

// ObjectBuilder accumulates object fields in declaration order. The builder
// is single-goroutine; the schema returned by Build is immutable.
type ObjectBuilder struct {
	fields        []fieldEntry
	index         map[string]int
	strictUnknown bool
}

// Object creates a new object builder. Undeclared keys are dropped unless
// UnknownStrict is set.
func Object() *ObjectBuilder {
	return &ObjectBuilder{index: map[string]int{}}
}

// Field registers a field schema under name. Re-registering a name replaces
// the schema in place, keeping the original position.
func (b *ObjectBuilder) Field(name string, ad AnyAdapter) *ObjectBuilder {
	if i, seen := b.index[name]; seen {
		b.fields[i].ad = ad
		return b
	}
	b.index[name] = len(b.fields)
	b.fields = append(b.fields, fieldEntry{name: name, ad: ad})
	return b
}

// UnknownStrict rejects undeclared keys instead of dropping them.
func (b *ObjectBuilder) UnknownStrict() *ObjectBuilder {
	b.strictUnknown = true
	return b
}

// Build validates the builder and returns the object schema.
func (b *ObjectBuilder) Build() (forma.Schema[map[string]any], error) {
	if _, bad := b.index[""]; bad {
		return nil, errors.New("dsl: empty field name")
	}
	fields := make([]fieldEntry, len(b.fields))
	copy(fields, b.fields)
	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f.name] = struct{}{}
	}
	return &objectSchema{fields: fields, known: known, strictUnknown: b.strictUnknown}, nil
}

// MustBuild is like Build but panics on error.
func (b *ObjectBuilder) MustBuild() forma.Schema[map[string]any] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
