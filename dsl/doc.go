// Package dsl provides the schema constructors for forma.
//
// Overview
//   - Primitives: String()/Number()/Bool()/Date() validate single value-tree nodes.
//   - Array(elem): element-wise validation with Min/Max length rules.
//   - Object(): declare object fields in order with Field(), then Build()/MustBuild().
//   - Optional(s)/Defaulted(s, def): absent-value handling around any schema.
//   - AnyAdapter: adapt a Schema[T] for heterogeneous object fields via SchemaOf[T](s).
//   - Bind[T]: project a built object schema onto a struct via reflection.
//   - Codec(c): lift an explicit wire<->domain codec into a schema.
//
// Entry points
//   - Object(): create an object builder; chain Field/UnknownStrict then Build()/MustBuild().
//   - Array(elem): build an array schema from an element schema (Min/Max length rules).
//   - SchemaOf[T](s): adapter from Schema[T] to AnyAdapter (to pass into Field).
//   - Bind[T](b)/MustBind[T](b): typed struct projection of an object builder.
//
// Every schema constructed here is immutable and safe for concurrent use;
// builders are single-goroutine until Build.
package dsl
