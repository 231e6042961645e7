package docskema

import "reflect"

// NodeKind identifies a schema node variant.
type NodeKind int

const (
	KindPrimitive NodeKind = iota
	KindNested
	KindAnyOf
	KindList
	KindTuple
	KindTypedMap
	KindCustom
	KindCombinator
	KindLangMap
)

func (k NodeKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindNested:
		return "nested"
	case KindAnyOf:
		return "any_of"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	case KindTypedMap:
		return "typed_map"
	case KindCustom:
		return "custom"
	case KindCombinator:
		return "combinator"
	case KindLangMap:
		return "lang_map"
	}
	return "unknown"
}

// Node is a schema node. The set of implementations is closed: Primitive,
// Nested, AnyOf, List, Tuple, TypedMap, Custom, Combinator and LangMap.
type Node interface {
	Kind() NodeKind
}

// Primitive accepts null or an instance of Type.
type Primitive struct {
	Type *Type
}

func (*Primitive) Kind() NodeKind { return KindPrimitive }

// Field is one named entry of a Nested node.
type Field struct {
	Name string
	Node Node
}

// Nested is a sub-document with an ordered set of fields.
type Nested struct {
	Fields []Field
}

func (*Nested) Kind() NodeKind { return KindNested }

// Lookup returns the node declared for name.
func (n *Nested) Lookup(name string) (Node, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Node, true
		}
	}
	return nil, false
}

// Names returns field names in declaration order.
func (n *Nested) Names() []string {
	out := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		out[i] = f.Name
	}
	return out
}

// AnyOf accepts null or any value whose type is in Types, or in the schema's
// authorized type set when Types is empty. It is the element node of untyped
// lists.
type AnyOf struct {
	Types []*Type
}

func (*AnyOf) Kind() NodeKind { return KindAnyOf }

// List is a homogeneous list. Elements are not individually addressable.
type List struct {
	Elem Node
}

func (*List) Kind() NodeKind { return KindList }

// Tuple is a fixed-arity list; element i is validated against Elems[i].
type Tuple struct {
	Elems []Node
}

func (*Tuple) Kind() NodeKind { return KindTuple }

// TypedMap is a map whose keys are all instances of Key and whose values all
// follow Value.
type TypedMap struct {
	Key   *Type
	Value Node
}

func (*TypedMap) Kind() NodeKind { return KindTypedMap }

// Custom delegates the field representation to a codec.
type Custom struct {
	Codec Codec
}

func (*Custom) Kind() NodeKind { return KindCustom }

// CombinatorOp is the logical operator of a Combinator.
type CombinatorOp int

const (
	OpOr CombinatorOp = iota
	OpNot
	OpIs
)

func (op CombinatorOp) String() string {
	switch op {
	case OpOr:
		return "or"
	case OpNot:
		return "not"
	case OpIs:
		return "is"
	}
	return "unknown"
}

// Combinator is a logical constraint. OpOr and OpNot use Types; OpIs uses
// Literals and compares both value and exact runtime type.
type Combinator struct {
	Op       CombinatorOp
	Types    []*Type
	Literals []any
}

func (*Combinator) Kind() NodeKind { return KindCombinator }

// LangMap is an internationalized field: a map from language tag to a value
// following Inner.
type LangMap struct {
	Inner Node
}

func (*LangMap) Kind() NodeKind { return KindLangMap }

// Convenience constructors.

func Prim(t *Type) *Primitive               { return &Primitive{Type: t} }
func ListOf(elem Node) *List                { return &List{Elem: elem} }
func AnyList(types ...*Type) *List          { return &List{Elem: &AnyOf{Types: types}} }
func TupleOf(elems ...Node) *Tuple          { return &Tuple{Elems: elems} }
func MapOf(key *Type, value Node) *TypedMap { return &TypedMap{Key: key, Value: value} }
func CustomOf(c Codec) *Custom              { return &Custom{Codec: c} }
func Or(types ...*Type) *Combinator         { return &Combinator{Op: OpOr, Types: types} }
func Not(types ...*Type) *Combinator        { return &Combinator{Op: OpNot, Types: types} }
func Is(literals ...any) *Combinator        { return &Combinator{Op: OpIs, Literals: literals} }
func I18n(inner Node) *LangMap              { return &LangMap{Inner: inner} }

// Struct builds a Nested node; field order is kept.
func Struct(fields ...Field) *Nested { return &Nested{Fields: fields} }

// F is shorthand for a Field.
func F(name string, n Node) Field { return Field{Name: name, Node: n} }

// NodesEqual reports structural identity: two nodes with the same shape are
// interchangeable. Codecs compare by name.
func NodesEqual(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Primitive:
		return x.Type == b.(*Primitive).Type
	case *Nested:
		y := b.(*Nested)
		if len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if x.Fields[i].Name != y.Fields[i].Name || !NodesEqual(x.Fields[i].Node, y.Fields[i].Node) {
				return false
			}
		}
		return true
	case *AnyOf:
		return sameTypes(x.Types, b.(*AnyOf).Types)
	case *List:
		return NodesEqual(x.Elem, b.(*List).Elem)
	case *Tuple:
		y := b.(*Tuple)
		if len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !NodesEqual(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case *TypedMap:
		y := b.(*TypedMap)
		return x.Key == y.Key && NodesEqual(x.Value, y.Value)
	case *Custom:
		y := b.(*Custom)
		if x.Codec == nil || y.Codec == nil {
			return x.Codec == nil && y.Codec == nil
		}
		return x.Codec.Name() == y.Codec.Name()
	case *Combinator:
		y := b.(*Combinator)
		return x.Op == y.Op && sameTypes(x.Types, y.Types) && reflect.DeepEqual(x.Literals, y.Literals)
	case *LangMap:
		return NodesEqual(x.Inner, b.(*LangMap).Inner)
	}
	return false
}

func sameTypes(a, b []*Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
