package dsl

import (
	"sort"

	forma "github.com/soracane/forma"
)

type objectSchema struct {
	fields        []fieldEntry
	known         map[string]struct{}
	strictUnknown bool
}

var _ forma.Schema[map[string]any] = (*objectSchema)(nil)

func (o *objectSchema) Type() string { return "object" }

// Validate walks the declared fields in declaration order; a missing key
// passes the absent value so Optional and Defaulted children can react. The
// output map holds exactly the declared fields.
func (o *objectSchema) Validate(v any) forma.Result[map[string]any, forma.ParseError] {
	src, isMap := v.(map[string]any)
	if !isMap {
		return reject[map[string]any](forma.NewParseError(forma.MsgExpectingObject, v))
	}
	out := make(map[string]any, len(o.fields))
	for _, f := range o.fields {
		res := f.ad.validate(src[f.name])
		if e, failed := res.GetErr(); failed {
			return reject[map[string]any](e.Prepend(f.name))
		}
		fv, _ := res.Get()
		out[f.name] = fv
	}
	if o.strictUnknown {
		if e, found := o.firstUnknown(src); found {
			return reject[map[string]any](e)
		}
	}
	return accept(out)
}

// firstUnknown reports the lexicographically first undeclared key so strict
// mode fails deterministically regardless of map iteration order.
func (o *objectSchema) firstUnknown(src map[string]any) (forma.ParseError, bool) {
	var unknown []string
	for k := range src {
		if _, declared := o.known[k]; !declared {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return forma.ParseError{}, false
	}
	sort.Strings(unknown)
	k := unknown[0]
	return forma.ParseError{Path: []string{k}, Message: forma.MsgUnknownKey, Input: k}, true
}
