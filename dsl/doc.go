// Package dsl provides a fluent builder for docskema document kinds.
//
// Overview
//   - Kind(name): declare a document kind; chain Field/Required/Default/Validate then Build()/MustBuild().
//   - Object(): build a nested sub-document node to pass into Field.
//   - Str()/Int()/Float()/Bool()/Time()/...: primitive nodes for the built-in types.
//   - List/AnyList/Tuple/Map/Custom/Or/Not/Is/I18n: the other node kinds.
//   - Extends(parent)/BuildIn(registry, parent): inheritance.
//
// Paths passed to the builder-level methods are dotted paths; typed-map
// levels use the "$type" wildcard segment (e.g. "scores.$str").
//
// Example
//
//	post := dsl.Kind("post").
//	    Field("title", dsl.Str()).Required().Validate(rules.MinLen(3)).
//	    Field("tags", dsl.List(dsl.Str())).Default([]any{}).
//	    Field("author", dsl.Object().
//	        Field("name", dsl.Str()).
//	        Field("email", dsl.Str()).
//	        Node()).
//	    Require("author.name").
//	    MustBuild()
//	doc := post.New(nil)
//	_ = doc.Validate()
package dsl
