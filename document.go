package docskema

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// ErrNotI18n is returned by the localized accessors on fields that are not
// internationalized.
var ErrNotI18n = errors.New("docskema: field is not internationalized")

// Doc binds a document to its schema. It is a thin accessor over the plain
// map returned by Data; it adds no behavior to the values themselves.
//
// A Doc is not safe for concurrent mutation.
type Doc struct {
	schema *Schema
	data   Document
	// Errors holds the issues of the last Validate call when the schema
	// records issues instead of returning them (Options.Accumulate).
	Errors Issues
}

// New creates a document: the skeleton of the schema filled from partial,
// with defaults injected. This is the only place defaults are applied
// implicitly.
func (s *Schema) New(partial Document) *Doc {
	return &Doc{schema: s, data: s.Skeleton(partial)}
}

// Wrap binds an existing document, typically one read from the store. The
// map is used as is: no copy, no skeleton, no defaults.
func (s *Schema) Wrap(doc Document) *Doc {
	if doc == nil {
		doc = Document{}
	}
	return &Doc{schema: s, data: doc}
}

// Schema returns the schema the document is bound to.
func (d *Doc) Schema() *Schema { return d.schema }

// Data returns the underlying map.
func (d *Doc) Data() Document { return d.data }

// Get resolves a dotted path.
func (d *Doc) Get(path string) (any, bool) { return GetPath(d.data, path) }

// Set assigns a value at a dotted path, creating missing sub-documents.
func (d *Doc) Set(path string, v any) error {
	if HasWildcard(path) {
		return fmt.Errorf("docskema: set %q: wildcard paths are not addressable", path)
	}
	return SetPath(d.data, path, v)
}

// Validate checks the document. With a fail-fast schema (the default) the
// issues are returned. With an accumulating schema they are stored on
// d.Errors and Validate returns nil; callers must inspect Errors. An
// explicit Mode in opts selects returning.
func (d *Doc) Validate(opts ...ValidateOpt) error {
	opt := pickValidateOpt(opts)
	iss := d.schema.Check(d.data, opt)
	if opt.Mode == ModeDefault && d.schema.opts.Accumulate {
		d.Errors = iss
		return nil
	}
	d.Errors = nil
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// Valid reports whether the last recorded validation found no issue.
func (d *Doc) Valid() bool { return len(d.Errors) == 0 }

// Localized returns the translation of an i18n field picked by loc.
func (d *Doc) Localized(path string, loc Localizer) (any, bool) {
	if !d.isI18n(path) {
		return nil, false
	}
	v, ok := d.Get(path)
	if !ok {
		return nil, false
	}
	m, ok := asStringMap(v)
	if !ok {
		return nil, false
	}
	return loc.Pick(m)
}

// SetLocalized sets one translation of an i18n field.
func (d *Doc) SetLocalized(path string, lang language.Tag, v any) error {
	if !d.isI18n(path) {
		return fmt.Errorf("%w: %s", ErrNotI18n, path)
	}
	cur, _ := d.Get(path)
	m, ok := cur.(map[string]any)
	if !ok {
		m = map[string]any{}
		if err := d.Set(path, m); err != nil {
			return err
		}
	}
	m[lang.String()] = v
	return nil
}

func (d *Doc) isI18n(path string) bool {
	_, ok := d.schema.nodes[path].(*LangMap)
	return ok
}
