package dsl

import "github.com/reoring/docskema"

type objectBuilder struct {
	fields []docskema.Field
	index  map[string]int
}

// Object creates a sub-document builder. Fields keep their declaration order.
func Object() *objectBuilder {
	return &objectBuilder{index: map[string]int{}}
}

// Field adds a field; declaring a name twice replaces the earlier node.
func (b *objectBuilder) Field(name string, n docskema.Node) *objectBuilder {
	if i, ok := b.index[name]; ok {
		b.fields[i].Node = n
		return b
	}
	b.index[name] = len(b.fields)
	b.fields = append(b.fields, docskema.F(name, n))
	return b
}

// Node returns the nested node built so far.
func (b *objectBuilder) Node() *docskema.Nested {
	return docskema.Struct(append([]docskema.Field(nil), b.fields...)...)
}
