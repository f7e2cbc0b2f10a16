// Package schemafile compiles schema declaration documents into runtime
// schemas. It is the data-driven counterpart of the dsl package for tools
// that receive shape descriptions as YAML or JSON rather than as code.
package schemafile

import (
	"fmt"

	forma "github.com/soracane/forma"
	"github.com/soracane/forma/dsl"
	yaml "gopkg.in/yaml.v3"
)

// Compile parses a declaration document and builds the schema it describes.
// The top level must declare an object. JSON documents work unchanged since
// JSON is a YAML subset.
//
// Declaration vocabulary per node: type (string, number, boolean, date,
// object, array), optional, default, min/max (number), items and
// minItems/maxItems (array), fields and strict (object). Anything else is a
// compile error, not a ParseError: these failures happen while building the
// schema, before any input exists.
func Compile(doc []byte) (forma.Schema[map[string]any], error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	node := resolveAlias(&root)
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("schemafile: empty document")
		}
		node = resolveAlias(node.Content[0])
	}
	d, err := readDecl(node, "schema")
	if err != nil {
		return nil, err
	}
	if d.typ != "object" {
		return nil, fmt.Errorf("schemafile: schema: top level must declare an object, have %q", d.typ)
	}
	return compileObject(d)
}

// MustCompile is Compile panicking on error, for compiled-in declarations.
func MustCompile(doc []byte) forma.Schema[map[string]any] {
	s, err := Compile(doc)
	if err != nil {
		panic(err)
	}
	return s
}

// decl is one parsed declaration node. Field order follows the document.
type decl struct {
	where string
	typ   string

	optional   bool
	hasDefault bool
	defVal     any

	min, max           *float64
	minItems, maxItems *int

	strict bool
	fields []fieldDecl // object
	items  *decl       // array
}

type fieldDecl struct {
	name string
	d    *decl
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// readDecl parses one declaration mapping. where names the node in error
// messages ("schema", "schema.fields.replicas", "schema.items", ...).
func readDecl(n *yaml.Node, where string) (*decl, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schemafile: %s: expected a mapping declaration", where)
	}
	d := &decl{where: where}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := resolveAlias(n.Content[i])
		val := resolveAlias(n.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("schemafile: %s: declaration keys must be strings", where)
		}
		switch key.Value {
		case "type":
			if err := val.Decode(&d.typ); err != nil {
				return nil, fmt.Errorf("schemafile: %s: type: %w", where, err)
			}
		case "optional":
			if err := val.Decode(&d.optional); err != nil {
				return nil, fmt.Errorf("schemafile: %s: optional: %w", where, err)
			}
		case "default":
			var v any
			if err := val.Decode(&v); err != nil {
				return nil, fmt.Errorf("schemafile: %s: default: %w", where, err)
			}
			d.hasDefault = true
			d.defVal = v
		case "min":
			f, err := numberValue(val, where, "min")
			if err != nil {
				return nil, err
			}
			d.min = &f
		case "max":
			f, err := numberValue(val, where, "max")
			if err != nil {
				return nil, err
			}
			d.max = &f
		case "minItems":
			k, err := intValue(val, where, "minItems")
			if err != nil {
				return nil, err
			}
			d.minItems = &k
		case "maxItems":
			k, err := intValue(val, where, "maxItems")
			if err != nil {
				return nil, err
			}
			d.maxItems = &k
		case "strict":
			if err := val.Decode(&d.strict); err != nil {
				return nil, fmt.Errorf("schemafile: %s: strict: %w", where, err)
			}
		case "fields":
			if val.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("schemafile: %s: fields must be a mapping", where)
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				fk := resolveAlias(val.Content[j])
				fv := val.Content[j+1]
				if fk.Kind != yaml.ScalarNode || fk.Value == "" {
					return nil, fmt.Errorf("schemafile: %s: field names must be non-empty strings", where)
				}
				fd, err := readDecl(fv, where+".fields."+fk.Value)
				if err != nil {
					return nil, err
				}
				d.fields = append(d.fields, fieldDecl{name: fk.Value, d: fd})
			}
		case "items":
			id, err := readDecl(val, where+".items")
			if err != nil {
				return nil, err
			}
			d.items = id
		default:
			return nil, fmt.Errorf("schemafile: %s: unknown declaration key %q", where, key.Value)
		}
	}
	if d.typ == "" {
		return nil, fmt.Errorf("schemafile: %s: missing type", where)
	}
	return d, checkDecl(d)
}

// checkDecl rejects key combinations that do not fit the declared type.
func checkDecl(d *decl) error {
	if d.optional && d.hasDefault {
		return fmt.Errorf("schemafile: %s: optional and default are mutually exclusive", d.where)
	}
	if (d.min != nil || d.max != nil) && d.typ != "number" {
		return fmt.Errorf("schemafile: %s: min/max require type number, have %q", d.where, d.typ)
	}
	if (d.minItems != nil || d.maxItems != nil || d.items != nil) && d.typ != "array" {
		return fmt.Errorf("schemafile: %s: items/minItems/maxItems require type array, have %q", d.where, d.typ)
	}
	if (d.fields != nil || d.strict) && d.typ != "object" {
		return fmt.Errorf("schemafile: %s: fields/strict require type object, have %q", d.where, d.typ)
	}
	return nil
}

// compileNode turns a parsed declaration into the adapter the surrounding
// object or array composes with. Wrap order: base type, then numeric range,
// then optional or default outermost.
func compileNode(d *decl) (dsl.AnyAdapter, error) {
	var base dsl.AnyAdapter
	switch d.typ {
	case "string":
		base = dsl.SchemaOf(dsl.String())
	case "number":
		base = dsl.SchemaOf(dsl.Number())
	case "boolean":
		base = dsl.SchemaOf(dsl.Bool())
	case "date":
		base = dsl.SchemaOf(dsl.Date())
	case "object":
		os, err := compileObject(d)
		if err != nil {
			return dsl.AnyAdapter{}, err
		}
		base = dsl.SchemaOf(os)
	case "array":
		if d.items == nil {
			return dsl.AnyAdapter{}, fmt.Errorf("schemafile: %s: array requires items", d.where)
		}
		elem, err := compileNode(d.items)
		if err != nil {
			return dsl.AnyAdapter{}, err
		}
		ab := dsl.Array[any](elem.Schema())
		if d.minItems != nil {
			ab = ab.Min(*d.minItems)
		}
		if d.maxItems != nil {
			ab = ab.Max(*d.maxItems)
		}
		base = dsl.SchemaOf[[]any](ab)
	default:
		return dsl.AnyAdapter{}, fmt.Errorf("schemafile: %s: unknown type %q", d.where, d.typ)
	}
	if d.min != nil {
		base = base.Min(*d.min)
	}
	if d.max != nil {
		base = base.Max(*d.max)
	}
	switch {
	case d.optional:
		base = dsl.OptionalOf(base.Schema())
	case d.hasDefault:
		base = dsl.DefaultedOf(base.Schema(), d.defVal)
	}
	return base, nil
}

func compileObject(d *decl) (forma.Schema[map[string]any], error) {
	b := dsl.Object()
	for _, f := range d.fields {
		ad, err := compileNode(f.d)
		if err != nil {
			return nil, err
		}
		b = b.Field(f.name, ad)
	}
	if d.strict {
		b = b.UnknownStrict()
	}
	s, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("schemafile: %s: %w", d.where, err)
	}
	return s, nil
}

func numberValue(n *yaml.Node, where, key string) (float64, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return 0, fmt.Errorf("schemafile: %s: %s: %w", where, key, err)
	}
	switch x := v.(type) {
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	}
	return 0, fmt.Errorf("schemafile: %s: %s must be a number, have %T", where, key, v)
}

func intValue(n *yaml.Node, where, key string) (int, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return 0, fmt.Errorf("schemafile: %s: %s: %w", where, key, err)
	}
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	}
	return 0, fmt.Errorf("schemafile: %s: %s must be an integer, have %T", where, key, v)
}
