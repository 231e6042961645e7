// Package jsonschema holds the JSON Schema (draft 2020-12) subset that
// document kinds are exported to.
package jsonschema

// Draft is the $schema URI set on exported root schemas.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a JSON Schema node. Type holds either a single type name or a
// list of names (see Types and Nullable).
type Schema struct {
	// Core
	SchemaURI   string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        any    `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Pattern     string `json:"pattern,omitempty"`
	Default     any    `json:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	MinProperties        *int               `json:"minProperties,omitempty"`

	// Array
	Items       *Schema   `json:"items,omitempty"`
	PrefixItems []*Schema `json:"prefixItems,omitempty"`
	MinItems    *int      `json:"minItems,omitempty"`
	MaxItems    *int      `json:"maxItems,omitempty"`

	// Composition
	OneOf []*Schema `json:"oneOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`
}

// Types returns the type names of s.
func (s *Schema) Types() []string {
	switch t := s.Type.(type) {
	case string:
		return []string{t}
	case []string:
		return append([]string(nil), t...)
	}
	return nil
}

// Nullable additionally accepts null.
func (s *Schema) Nullable() *Schema {
	switch {
	case s.Type != nil:
		s.Type = setNull(s.Types(), true)
	case s.Enum != nil:
		if !hasNil(s.Enum) {
			s.Enum = append(s.Enum, nil)
		}
	case s.AnyOf != nil:
		for _, a := range s.AnyOf {
			if isNullSchema(a) {
				return s
			}
		}
		s.AnyOf = append(s.AnyOf, &Schema{Type: "null"})
	}
	return s
}

// NonNull removes the null alternative added by Nullable.
func (s *Schema) NonNull() *Schema {
	switch {
	case s.Type != nil:
		s.Type = setNull(s.Types(), false)
	case s.Enum != nil:
		out := s.Enum[:0:0]
		for _, e := range s.Enum {
			if e != nil {
				out = append(out, e)
			}
		}
		s.Enum = out
	case s.AnyOf != nil:
		out := s.AnyOf[:0:0]
		for _, a := range s.AnyOf {
			if !isNullSchema(a) {
				out = append(out, a)
			}
		}
		s.AnyOf = out
	}
	return s
}

// Ptr returns a pointer to n, for the MinItems style fields.
func Ptr(n int) *int { return &n }

func setNull(types []string, null bool) any {
	out := make([]string, 0, len(types)+1)
	for _, t := range types {
		if t != "null" {
			out = append(out, t)
		}
	}
	if null {
		out = append(out, "null")
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

func hasNil(vs []any) bool {
	for _, v := range vs {
		if v == nil {
			return true
		}
	}
	return false
}

func isNullSchema(s *Schema) bool {
	t, ok := s.Type.(string)
	return ok && t == "null"
}
