package dsl

import "github.com/reoring/docskema"

type kindBuilder struct {
	obj    *objectBuilder
	decl   docskema.Declaration
	parent *docskema.Schema
}

type fieldStep struct {
	b    *kindBuilder
	name string
}

// Kind creates a builder for the document kind name.
func Kind(name string) *kindBuilder {
	return &kindBuilder{
		obj: Object(),
		decl: docskema.Declaration{
			Name:       name,
			Defaults:   map[string]docskema.DefaultSpec{},
			Validators: map[string][]docskema.Validator{},
		},
	}
}

// Field registers a top-level field.
func (b *kindBuilder) Field(name string, n docskema.Node) *fieldStep {
	b.obj.Field(name, n)
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required.
func (f *fieldStep) Required() *fieldStep {
	f.b.Require(f.name)
	return f
}

// Default sets a constant default for the field.
func (f *fieldStep) Default(v any) *fieldStep {
	f.b.Default(f.name, v)
	return f
}

// DefaultFunc sets a default computed on every new document.
func (f *fieldStep) DefaultFunc(fn func() any) *fieldStep {
	f.b.DefaultFunc(f.name, fn)
	return f
}

// Validate appends validators to the field.
func (f *fieldStep) Validate(vs ...docskema.Validator) *fieldStep {
	f.b.Validate(f.name, vs...)
	return f
}

// I18n declares the field internationalized.
func (f *fieldStep) I18n() *fieldStep {
	f.b.I18n(f.name)
	return f
}

func (f *fieldStep) Field(name string, n docskema.Node) *fieldStep { return f.b.Field(name, n) }
func (f *fieldStep) Require(paths ...string) *kindBuilder          { return f.b.Require(paths...) }
func (f *fieldStep) Build() (*docskema.Schema, error)              { return f.b.Build() }
func (f *fieldStep) MustBuild() *docskema.Schema                   { return f.b.MustBuild() }
func (f *fieldStep) Kind() *kindBuilder                            { return f.b }

// Require marks dotted paths as required. Repeating a path is a definition
// error reported by Build.
func (b *kindBuilder) Require(paths ...string) *kindBuilder {
	b.decl.Required = append(b.decl.Required, paths...)
	return b
}

// Default sets a constant default at a dotted path.
func (b *kindBuilder) Default(path string, v any) *kindBuilder {
	b.decl.Defaults[path] = docskema.Value(v)
	return b
}

// DefaultFunc sets a factory default at a dotted path.
func (b *kindBuilder) DefaultFunc(path string, fn func() any) *kindBuilder {
	b.decl.Defaults[path] = docskema.Factory(fn)
	return b
}

// Validate appends validators at a dotted path.
func (b *kindBuilder) Validate(path string, vs ...docskema.Validator) *kindBuilder {
	b.decl.Validators[path] = append(b.decl.Validators[path], vs...)
	return b
}

// I18n declares internationalized fields.
func (b *kindBuilder) I18n(paths ...string) *kindBuilder {
	b.decl.I18n = append(b.decl.I18n, paths...)
	return b
}

// Types closes the authorized type set.
func (b *kindBuilder) Types(ts ...*docskema.Type) *kindBuilder {
	b.decl.AuthorizedTypes = append([]*docskema.Type(nil), ts...)
	return b
}

// Schemaless turns off the unknown/missing field checks.
func (b *kindBuilder) Schemaless() *kindBuilder {
	b.decl.Options.Schemaless = true
	return b
}

// Accumulate collects every issue instead of stopping at the first.
func (b *kindBuilder) Accumulate() *kindBuilder {
	b.decl.Options.Accumulate = true
	return b
}

// Reserved sets the root-level keys accepted without declaration.
func (b *kindBuilder) Reserved(keys ...string) *kindBuilder {
	b.decl.Options.ReservedKeys = append([]string{}, keys...)
	return b
}

// Extends sets the parent kind.
func (b *kindBuilder) Extends(parent *docskema.Schema) *kindBuilder {
	b.parent = parent
	return b
}

// Declaration returns the declaration built so far, before any merge.
func (b *kindBuilder) Declaration() docskema.Declaration {
	d := b.decl
	d.Structure = b.obj.Node()
	d.Required = append([]string(nil), b.decl.Required...)
	d.I18n = append([]string(nil), b.decl.I18n...)
	d.Defaults = make(map[string]docskema.DefaultSpec, len(b.decl.Defaults))
	for k, v := range b.decl.Defaults {
		d.Defaults[k] = v
	}
	d.Validators = make(map[string][]docskema.Validator, len(b.decl.Validators))
	for k, v := range b.decl.Validators {
		d.Validators[k] = append([]docskema.Validator(nil), v...)
	}
	return d
}

// Build declares the kind.
func (b *kindBuilder) Build() (*docskema.Schema, error) {
	return docskema.Declare(b.Declaration(), b.parent)
}

// MustBuild is like Build but panics on definition errors.
func (b *kindBuilder) MustBuild() *docskema.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// BuildIn declares the kind in reg, inheriting from the kind named parent
// when parent is not empty. Extends is ignored.
func (b *kindBuilder) BuildIn(reg *docskema.Registry, parent string) (*docskema.Schema, error) {
	return reg.Declare(b.Declaration(), parent)
}
