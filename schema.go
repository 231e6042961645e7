package docskema

import (
	"reflect"
	"slices"
	"sort"
	"strings"
)

// Schema is a compiled, frozen document kind. It is safe for concurrent use
// by any number of goroutines; nothing mutates it after Declare returns.
type Schema struct {
	name       string
	structure  *Nested
	required   []string
	defaults   map[string]DefaultSpec
	validators map[string][]Validator
	i18n       []string
	types      TypeSet
	opts       Options
	reserved   map[string]struct{}
	ns         Namespace
	nodes      map[string]Node
	parent     *Schema
}

// Declare compiles a declaration, merging it with parent when given. Every
// path referenced by required fields, defaults, validators and i18n must
// belong to the namespace of the merged structure; violations are reported as
// *DefinitionError and no schema is returned.
func Declare(d Declaration, parent *Schema) (*Schema, error) {
	if dup, ok := firstDuplicate(d.Required); ok {
		return nil, defErr(d.Name, dup, ErrDuplicateRequired, "declared more than once")
	}
	if parent != nil {
		d = Merge(parent, d)
	}

	s := &Schema{
		name:   d.Name,
		opts:   d.Options,
		parent: parent,
	}
	types := d.AuthorizedTypes
	if types == nil {
		types = builtinTypes
	}
	s.types = NewTypeSet(types...)

	structure := d.Structure
	if structure == nil {
		structure = &Nested{}
	}
	root, ok := cloneNode(structure).(*Nested)
	if !ok || root == nil {
		root = &Nested{}
	}
	if err := s.checkNode(root, ""); err != nil {
		return nil, err
	}

	var err error
	s.i18n = dedupe(d.I18n)
	for _, p := range s.i18n {
		if root, err = s.wrapI18n(root, p); err != nil {
			return nil, err
		}
	}
	s.structure = root
	s.ns, s.nodes = flatten(root)
	for _, p := range s.ns.Paths() {
		if _, ok := s.nodes[p].(*LangMap); ok && !HasWildcard(p) && !slices.Contains(s.i18n, p) {
			s.i18n = append(s.i18n, p)
		}
	}

	s.required = append([]string(nil), d.Required...)
	for _, p := range s.required {
		if !s.ns.Has(p) {
			return nil, defErr(s.name, p, ErrPathNotInNamespace, "required field")
		}
	}

	s.defaults = make(map[string]DefaultSpec, len(d.Defaults))
	for p, spec := range d.Defaults {
		if HasWildcard(p) {
			return nil, defErr(s.name, p, ErrWildcardDefault, "defaults need a concrete key")
		}
		if !s.ns.Has(p) {
			return nil, defErr(s.name, p, ErrPathNotInNamespace, "default value")
		}
		s.defaults[p] = spec
	}

	s.validators = make(map[string][]Validator, len(d.Validators))
	for p, vs := range d.Validators {
		if !s.ns.Has(p) {
			return nil, defErr(s.name, p, ErrPathNotInNamespace, "validator")
		}
		for i, v := range vs {
			if v.Check == nil {
				return nil, defErr(s.name, p, ErrInvalidStructure, "validator #%d has no predicate", i)
			}
		}
		s.validators[p] = append([]Validator(nil), vs...)
	}

	reserved := d.Options.ReservedKeys
	if reserved == nil {
		reserved = DefaultReservedKeys
	}
	s.opts.ReservedKeys = append([]string(nil), reserved...)
	s.reserved = make(map[string]struct{}, len(reserved))
	for _, k := range reserved {
		s.reserved[k] = struct{}{}
	}
	return s, nil
}

// MustDeclare is like Declare but panics on definition errors. It is meant
// for package-level schema variables.
func MustDeclare(d Declaration, parent *Schema) *Schema {
	s, err := Declare(d, parent)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the kind name.
func (s *Schema) Name() string { return s.name }

// Parent returns the schema this one was merged with, or nil.
func (s *Schema) Parent() *Schema { return s.parent }

// Structure returns a copy of the merged structure.
func (s *Schema) Structure() *Nested { return cloneNode(s.structure).(*Nested) }

// Namespace returns every valid dotted path of the schema.
func (s *Schema) Namespace() Namespace { return s.ns }

// NodeAt returns a copy of the node declared at a namespace path.
func (s *Schema) NodeAt(path string) (Node, bool) {
	n, ok := s.nodes[path]
	if !ok {
		return nil, false
	}
	return cloneNode(n), true
}

// Required returns the required paths in declaration order.
func (s *Schema) Required() []string { return append([]string(nil), s.required...) }

// I18n returns the internationalized field paths.
func (s *Schema) I18n() []string { return append([]string(nil), s.i18n...) }

// Defaults returns the declared defaults keyed by path.
func (s *Schema) Defaults() map[string]DefaultSpec {
	out := make(map[string]DefaultSpec, len(s.defaults))
	for k, v := range s.defaults {
		out[k] = v
	}
	return out
}

// Validators returns the declared validators keyed by path.
func (s *Schema) Validators() map[string][]Validator {
	out := make(map[string][]Validator, len(s.validators))
	for k, v := range s.validators {
		out[k] = append([]Validator(nil), v...)
	}
	return out
}

// AuthorizedTypes returns the authorized type set.
func (s *Schema) AuthorizedTypes() []*Type {
	out := make([]*Type, 0, len(s.types))
	for _, n := range s.types.Names() {
		out = append(out, s.types[n])
	}
	return out
}

// Options returns the schema options.
func (s *Schema) Options() Options {
	o := s.opts
	o.ReservedKeys = append([]string(nil), s.opts.ReservedKeys...)
	return o
}

// declaration rebuilds the declaration this schema was compiled from, after
// merging. Merge uses it as the parent side.
func (s *Schema) declaration() Declaration {
	return Declaration{
		Name:            s.name,
		Structure:       s.Structure(),
		Required:        s.Required(),
		Defaults:        s.Defaults(),
		Validators:      s.Validators(),
		I18n:            s.I18n(),
		AuthorizedTypes: s.AuthorizedTypes(),
		Options:         s.Options(),
	}
}

func (s *Schema) checkNode(n Node, path string) error {
	if n == nil {
		return defErr(s.name, path, ErrInvalidStructure, "nil node")
	}
	if rv := reflect.ValueOf(n); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return defErr(s.name, path, ErrInvalidStructure, "nil node")
	}
	switch t := n.(type) {
	case *Primitive:
		return s.checkType(t.Type, path)
	case *Nested:
		seen := make(map[string]struct{}, len(t.Fields))
		for _, f := range t.Fields {
			p := JoinPath(path, f.Name)
			switch {
			case f.Name == "":
				return defErr(s.name, path, ErrInvalidStructure, "empty field name")
			case strings.Contains(f.Name, pathSep):
				return defErr(s.name, p, ErrInvalidStructure, "field names cannot contain %q", pathSep)
			case IsWildcard(f.Name):
				return defErr(s.name, p, ErrInvalidStructure, "field names cannot start with %q", wildcardPrefix)
			}
			if _, dup := seen[f.Name]; dup {
				return defErr(s.name, p, ErrInvalidStructure, "duplicate field")
			}
			seen[f.Name] = struct{}{}
			if err := s.checkNode(f.Node, p); err != nil {
				return err
			}
		}
	case *AnyOf:
		for _, typ := range t.Types {
			if err := s.checkType(typ, path); err != nil {
				return err
			}
		}
	case *List:
		return s.checkNode(t.Elem, path)
	case *Tuple:
		if len(t.Elems) == 0 {
			return defErr(s.name, path, ErrInvalidStructure, "tuple without elements")
		}
		for _, e := range t.Elems {
			if err := s.checkNode(e, path); err != nil {
				return err
			}
		}
	case *TypedMap:
		if err := s.checkType(t.Key, path); err != nil {
			return err
		}
		return s.checkNode(t.Value, JoinPath(path, WildcardSegment(t.Key)))
	case *Custom:
		if t.Codec == nil {
			return defErr(s.name, path, ErrInvalidStructure, "custom field without codec")
		}
		if st := t.Codec.StorageType(); st != nil {
			if err := s.checkType(st, path); err != nil {
				return err
			}
		}
	case *Combinator:
		return s.checkCombinator(t, path)
	case *LangMap:
		return s.checkNode(t.Inner, path)
	default:
		return defErr(s.name, path, ErrInvalidStructure, "unsupported node %T", n)
	}
	return nil
}

func (s *Schema) checkType(t *Type, path string) error {
	if t == nil {
		return defErr(s.name, path, ErrUnauthorizedType, "nil type")
	}
	if !s.types.Has(t) {
		return defErr(s.name, path, ErrUnauthorizedType, "%s", t.Name())
	}
	return nil
}

func (s *Schema) checkCombinator(c *Combinator, path string) error {
	switch c.Op {
	case OpOr, OpNot:
		if len(c.Types) == 0 || len(c.Literals) > 0 {
			return defErr(s.name, path, ErrInvalidOperand, "%s takes one or more types", c.Op)
		}
		for _, t := range c.Types {
			if t == nil || !s.types.Has(t) {
				return defErr(s.name, path, ErrInvalidOperand, "%s operand is not an authorized type", c.Op)
			}
		}
	case OpIs:
		if len(c.Literals) == 0 || len(c.Types) > 0 {
			return defErr(s.name, path, ErrInvalidOperand, "is takes one or more literals")
		}
		for _, lit := range c.Literals {
			if _, ok := s.types.Match(lit); !ok {
				return defErr(s.name, path, ErrInvalidOperand, "literal %v has no authorized type", lit)
			}
		}
	default:
		return defErr(s.name, path, ErrInvalidOperand, "unknown operator %d", c.Op)
	}
	return nil
}

// wrapI18n replaces the node at path by a LangMap around it. The path must
// walk nested sub-documents only and end on a primitive or list field.
func (s *Schema) wrapI18n(root *Nested, path string) (*Nested, error) {
	segs := SplitPath(path)
	if len(segs) == 0 {
		return nil, defErr(s.name, path, ErrInvalidI18n, "empty path")
	}
	cur := root
	for i, seg := range segs {
		idx := -1
		for j, f := range cur.Fields {
			if f.Name == seg {
				idx = j
				break
			}
		}
		if idx < 0 {
			return nil, defErr(s.name, path, ErrPathNotInNamespace, "i18n field")
		}
		n := cur.Fields[idx].Node
		if i < len(segs)-1 {
			next, ok := n.(*Nested)
			if !ok {
				return nil, defErr(s.name, path, ErrInvalidI18n, "i18n paths walk sub-documents only")
			}
			cur = next
			continue
		}
		switch t := n.(type) {
		case *LangMap:
		case *Primitive, *List:
			cur.Fields[idx].Node = &LangMap{Inner: t}
		default:
			return nil, defErr(s.name, path, ErrInvalidI18n, "%s fields cannot be internationalized", n.Kind())
		}
	}
	return root, nil
}

// cloneNode copies the node tree so that a declared schema never shares
// nodes with caller code.
func cloneNode(n Node) Node {
	switch t := n.(type) {
	case nil:
		return nil
	case *Primitive:
		c := *t
		return &c
	case *Nested:
		if t == nil {
			return (*Nested)(nil)
		}
		c := &Nested{Fields: make([]Field, len(t.Fields))}
		for i, f := range t.Fields {
			c.Fields[i] = Field{Name: f.Name, Node: cloneNode(f.Node)}
		}
		return c
	case *AnyOf:
		return &AnyOf{Types: append([]*Type(nil), t.Types...)}
	case *List:
		return &List{Elem: cloneNode(t.Elem)}
	case *Tuple:
		c := &Tuple{Elems: make([]Node, len(t.Elems))}
		for i, e := range t.Elems {
			c.Elems[i] = cloneNode(e)
		}
		return c
	case *TypedMap:
		return &TypedMap{Key: t.Key, Value: cloneNode(t.Value)}
	case *Custom:
		c := *t
		return &c
	case *Combinator:
		lits := make([]any, len(t.Literals))
		for i, l := range t.Literals {
			lits[i] = deepCopy(l)
		}
		if t.Literals == nil {
			lits = nil
		}
		return &Combinator{Op: t.Op, Types: append([]*Type(nil), t.Types...), Literals: lits}
	case *LangMap:
		return &LangMap{Inner: cloneNode(t.Inner)}
	}
	return n
}

func firstDuplicate(paths []string) (string, bool) {
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			return p, true
		}
		seen[p] = struct{}{}
	}
	return "", false
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func sortedPaths[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
