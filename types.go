package docskema

import (
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is the in-memory shape handed to and received from the store.
type Document = map[string]any

// Type identifies a primitive value type. Instance checks go through Is, so a
// type may accept several Go types (int accepts every integer kind, number
// accepts ints and floats).
type Type struct {
	name  string
	match func(v any) bool
}

// NewType declares a primitive type with a custom instance check.
func NewType(name string, match func(v any) bool) *Type {
	return &Type{name: name, match: match}
}

// TypeOf declares a primitive type matching exactly the Go type T.
func TypeOf[T any](name string) *Type {
	return &Type{name: name, match: func(v any) bool { _, ok := v.(T); return ok }}
}

// Name returns the type name used in wildcard path segments and schema files.
func (t *Type) Name() string { return t.name }

// Is reports whether v is an instance of t. nil is never an instance.
func (t *Type) Is(v any) bool {
	if t == nil || v == nil {
		return false
	}
	return t.match(v)
}

func (t *Type) String() string { return t.name }

// Built-in types.
var (
	TypeString   = TypeOf[string]("str")
	TypeBool     = TypeOf[bool]("bool")
	TypeInt      = NewType("int", isInteger)
	TypeFloat    = NewType("float", isFloat)
	TypeNumber   = NewType("number", func(v any) bool { return isInteger(v) || isFloat(v) })
	TypeTime     = TypeOf[time.Time]("datetime")
	TypeBytes    = TypeOf[[]byte]("bytes")
	TypeDict     = NewType("dict", isStringMap)
	TypeList     = NewType("list", isSequence)
	TypeObjectID = TypeOf[primitive.ObjectID]("objectid")
	TypeUUID     = TypeOf[uuid.UUID]("uuid")
)

var builtinTypes = []*Type{
	TypeString, TypeBool, TypeInt, TypeFloat, TypeNumber, TypeTime,
	TypeBytes, TypeDict, TypeList, TypeObjectID, TypeUUID,
}

// BuiltinTypes returns the built-in primitive types. They form the default
// authorized type set.
func BuiltinTypes() []*Type { return append([]*Type(nil), builtinTypes...) }

// LookupType resolves a built-in type by name.
func LookupType(name string) (*Type, bool) {
	for _, t := range builtinTypes {
		if t.name == name {
			return t, true
		}
	}
	return nil, false
}

// TypeSet is a closed set of types keyed by name.
type TypeSet map[string]*Type

// NewTypeSet builds a set from the given types. Later duplicates win.
func NewTypeSet(types ...*Type) TypeSet {
	ts := make(TypeSet, len(types))
	for _, t := range types {
		if t != nil {
			ts[t.name] = t
		}
	}
	return ts
}

// Has reports whether t (by identity) belongs to the set.
func (ts TypeSet) Has(t *Type) bool {
	if t == nil {
		return false
	}
	got, ok := ts[t.name]
	return ok && got == t
}

// Match returns the first type (by name order) that v is an instance of.
func (ts TypeSet) Match(v any) (*Type, bool) {
	for _, n := range ts.Names() {
		if ts[n].Is(v) {
			return ts[n], true
		}
	}
	return nil, false
}

// Lookup resolves a type by name.
func (ts TypeSet) Lookup(name string) (*Type, bool) {
	t, ok := ts[name]
	return t, ok
}

// Names returns the sorted type names.
func (ts TypeSet) Names() []string {
	out := make([]string, 0, len(ts))
	for n := range ts {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func isInteger(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func isFloat(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return false
}

func isStringMap(v any) bool {
	_, ok := asStringMap(v)
	return ok
}

func isSequence(v any) bool {
	_, ok := asSequence(v)
	return ok
}

// asStringMap views v as a string-keyed map. Named map types (bson.M and
// friends) are copied through reflection.
func asStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		out[it.Key().String()] = it.Value().Interface()
	}
	return out, true
}

// asSequence views v as a list. []byte is a primitive, never a sequence.
func asSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []byte, nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// mapEntry is one key/value pair of an arbitrarily keyed map.
type mapEntry struct {
	key any
	val any
}

// mapEntries lists the entries of any Go map, sorted by the printed key so
// that issue order is deterministic.
func mapEntries(v any) ([]mapEntry, bool) {
	if m, ok := v.(map[string]any); ok {
		keys := sortedKeys(m)
		out := make([]mapEntry, len(keys))
		for i, k := range keys {
			out[i] = mapEntry{key: k, val: m[k]}
		}
		return out, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make([]mapEntry, 0, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		out = append(out, mapEntry{key: it.Key().Interface(), val: it.Value().Interface()})
	}
	sort.Slice(out, func(i, j int) bool { return keyString(out[i].key) < keyString(out[j].key) })
	return out, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
