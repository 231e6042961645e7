package docskema

import (
	"sort"

	js "github.com/reoring/docskema/jsonschema"
)

// JSONSchema projects the schema onto JSON Schema. The projection describes
// the domain form of documents: custom fields use their codec's domain type,
// language maps are objects keyed by language. Required paths become
// non-null (and non-empty for containers); constant defaults are attached to
// their fields. Validator predicates are opaque and are not projected.
func (s *Schema) JSONSchema() (*js.Schema, error) {
	root := s.nodeSchema(s.structure)
	root.SchemaURI = js.Draft
	root.Title = s.name
	if !s.opts.Schemaless {
		for _, k := range s.opts.ReservedKeys {
			if _, declared := root.Properties[k]; !declared {
				root.Properties[k] = &js.Schema{}
			}
		}
	}
	for _, p := range sortedPaths(s.defaults) {
		d := s.defaults[p]
		if d.IsFactory() {
			continue
		}
		if leaf := schemaAt(root, SplitPath(p)); leaf != nil {
			leaf.Default = deepCopy(d.Constant())
		}
	}
	for _, p := range s.required {
		leaf := schemaAt(root, SplitPath(p))
		if leaf == nil {
			continue
		}
		leaf.NonNull()
		for _, t := range leaf.Types() {
			switch t {
			case "array":
				leaf.MinItems = js.Ptr(1)
			case "object":
				leaf.MinProperties = js.Ptr(1)
			}
		}
	}
	return root, nil
}

func (s *Schema) nodeSchema(n Node) *js.Schema {
	switch t := n.(type) {
	case *Primitive:
		return typeSchema(t.Type).Nullable()
	case *AnyOf:
		types := t.Types
		if len(types) == 0 {
			types = s.AuthorizedTypes()
		}
		out := &js.Schema{AnyOf: make([]*js.Schema, 0, len(types))}
		for _, typ := range types {
			out.AnyOf = append(out.AnyOf, typeSchema(typ))
		}
		return out.Nullable()
	case *Nested:
		out := &js.Schema{Type: "object", Properties: make(map[string]*js.Schema, len(t.Fields))}
		for _, f := range t.Fields {
			out.Properties[f.Name] = s.nodeSchema(f.Node)
		}
		if s.opts.Schemaless {
			return out
		}
		out.AdditionalProperties = false
		out.Required = t.Names()
		sort.Strings(out.Required)
		return out
	case *List:
		return &js.Schema{Type: "array", Items: s.nodeSchema(t.Elem)}
	case *Tuple:
		out := &js.Schema{Type: "array", MinItems: js.Ptr(len(t.Elems)), MaxItems: js.Ptr(len(t.Elems))}
		for _, e := range t.Elems {
			out.PrefixItems = append(out.PrefixItems, s.nodeSchema(e))
		}
		return out
	case *TypedMap:
		return &js.Schema{Type: "object", AdditionalProperties: s.nodeSchema(t.Value)}
	case *Custom:
		out := &js.Schema{}
		if dt := t.Codec.DomainType(); dt != nil {
			out = typeSchema(dt)
		}
		out.Description = "codec: " + t.Codec.Name()
		return out.Nullable()
	case *Combinator:
		return combinatorSchema(t)
	case *LangMap:
		return &js.Schema{Type: "object", AdditionalProperties: s.nodeSchema(t.Inner)}
	}
	return &js.Schema{}
}

func combinatorSchema(c *Combinator) *js.Schema {
	switch c.Op {
	case OpIs:
		return (&js.Schema{Enum: append([]any(nil), c.Literals...)}).Nullable()
	case OpNot:
		out := &js.Schema{Not: &js.Schema{}}
		for _, t := range c.Types {
			out.Not.AnyOf = append(out.Not.AnyOf, typeSchema(t))
		}
		return out
	}
	out := &js.Schema{}
	for _, t := range c.Types {
		out.AnyOf = append(out.AnyOf, typeSchema(t))
	}
	return out.Nullable()
}

// typeSchema maps a built-in type; other types project to the empty schema.
func typeSchema(t *Type) *js.Schema {
	switch t {
	case TypeString:
		return &js.Schema{Type: "string"}
	case TypeBool:
		return &js.Schema{Type: "boolean"}
	case TypeInt:
		return &js.Schema{Type: "integer"}
	case TypeFloat, TypeNumber:
		return &js.Schema{Type: "number"}
	case TypeTime:
		return &js.Schema{Type: "string", Format: "date-time"}
	case TypeBytes:
		return &js.Schema{Type: "string", Format: "byte"}
	case TypeDict:
		return &js.Schema{Type: "object"}
	case TypeList:
		return &js.Schema{Type: "array"}
	case TypeObjectID:
		return &js.Schema{Type: "string", Pattern: "^[0-9a-f]{24}$"}
	case TypeUUID:
		return &js.Schema{Type: "string", Format: "uuid"}
	}
	return &js.Schema{Description: t.Name()}
}

// schemaAt walks properties, and additionalProperties for wildcard segments.
func schemaAt(root *js.Schema, segs []string) *js.Schema {
	cur := root
	for _, seg := range segs {
		if cur == nil {
			return nil
		}
		if IsWildcard(seg) {
			next, _ := cur.AdditionalProperties.(*js.Schema)
			cur = next
			continue
		}
		cur = cur.Properties[seg]
	}
	return cur
}
