// Package docskema declares document kinds and validates, fills and converts
// nested map documents against them.
//
// A Schema is built once from a Declaration (structure, required paths,
// defaults, validators, i18n paths and options) and is immutable afterwards.
// It then provides:
//
// - Validate/Check: structural, type, required and validator checks reported as Issues
// - New/Skeleton/InjectDefaults: document creation from the declared structure
// - ToStorage/ToDomain: per-field codec conversion for custom types
// - JSONSchema: a JSON Schema projection of the declared structure
//
// Layout:
// - DSL under dsl/, codecs under codec/, reusable validators under rules/
// - JSON decoding with duplicate-key/depth/size enforcement under source/
// - YAML schema files under schemafile/, a BSON-backed collection under store/
// - The CLI under cmd/docskema
//
// Typical usage:
//
//	s := docskema.MustDeclare(decl, nil)
//	doc := s.New(nil)
//	_ = doc.Set("title", "hello")
//	if err := doc.Validate(); err != nil { ... }
//	stored, err := s.ToStorage(doc.Data())
package docskema
