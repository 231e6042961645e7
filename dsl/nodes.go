package dsl

import "github.com/reoring/docskema"

// Str returns a string field node.
func Str() docskema.Node { return docskema.Prim(docskema.TypeString) }

// Int returns an integer field node (every Go integer kind).
func Int() docskema.Node { return docskema.Prim(docskema.TypeInt) }

// Float returns a float field node.
func Float() docskema.Node { return docskema.Prim(docskema.TypeFloat) }

// Number returns a node accepting integers and floats.
func Number() docskema.Node { return docskema.Prim(docskema.TypeNumber) }

// Bool returns a boolean field node.
func Bool() docskema.Node { return docskema.Prim(docskema.TypeBool) }

// Time returns a time.Time field node.
func Time() docskema.Node { return docskema.Prim(docskema.TypeTime) }

// Bytes returns a []byte field node.
func Bytes() docskema.Node { return docskema.Prim(docskema.TypeBytes) }

// Dict returns a node accepting any string-keyed map, unchecked.
func Dict() docskema.Node { return docskema.Prim(docskema.TypeDict) }

// ObjectID returns a BSON ObjectID field node.
func ObjectID() docskema.Node { return docskema.Prim(docskema.TypeObjectID) }

// UUID returns a uuid.UUID field node.
func UUID() docskema.Node { return docskema.Prim(docskema.TypeUUID) }

// Prim returns a node for a custom primitive type.
func Prim(t *docskema.Type) docskema.Node { return docskema.Prim(t) }

func List(elem docskema.Node) docskema.Node                     { return docskema.ListOf(elem) }
func AnyList(types ...*docskema.Type) docskema.Node             { return docskema.AnyList(types...) }
func Tuple(elems ...docskema.Node) docskema.Node                { return docskema.TupleOf(elems...) }
func Map(key *docskema.Type, value docskema.Node) docskema.Node { return docskema.MapOf(key, value) }
func Custom(c docskema.Codec) docskema.Node                     { return docskema.CustomOf(c) }
func Or(types ...*docskema.Type) docskema.Node                  { return docskema.Or(types...) }
func Not(types ...*docskema.Type) docskema.Node                 { return docskema.Not(types...) }
func Is(literals ...any) docskema.Node                          { return docskema.Is(literals...) }
func I18n(inner docskema.Node) docskema.Node                    { return docskema.I18n(inner) }
