package forma

// Package forma provides:
//
// - Algebraic containers Option[T] and Result[T, E] with combinators
// - Type-safe validation based on Schema[T] (Validate: any -> Result[T, ParseError])
// - A single error model via ParseError (root-to-leaf path, fixed message, failing sub-value)
// - A decode boundary (ParseFrom over JSON/YAML sources) with duplicate-key/depth/size limits
//
// Design policy:
// - Keep only public APIs in the root package; put the token engine under internal/.
// - Place schema constructors under dsl/, codecs under codec/, declaration
//   compilation under schemafile/, and the CLI under cmd/forma.
// - Validators never panic on input; the fatal Unwrap family is for trust
//   boundaries, Get/GetErr for control flow.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := buildSchema()
//	v, err := forma.ParseFrom(s, forma.JSONBytes(data))
//
//	res := s.Validate(tree)
//	if pe, failed := res.GetErr(); failed { ... }
