// Package schemafile declares document kinds from YAML.
//
// A file is a stream of YAML documents, one kind per document or a list of
// kinds under a top-level "kinds" key:
//
//	name: post
//	extends: base
//	structure:
//	  title: str
//	  tags: [str]
//	  body: {$i18n: str}
//	  price: {$custom: decimal}
//	required: [title]
//	defaults:
//	  tags: []
//	validators:
//	  title: [{minlen: 1}, {maxlen: 80}]
//	i18n: [body]
//
// Kinds are declared into a docskema.Registry in file order, so a kind may
// extend any kind declared before it, in the same file or earlier.
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/reoring/docskema"
	"github.com/reoring/docskema/codec"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"
)

// Error locates a problem in a schema file.
type Error struct {
	Kind string
	Line int
	Col  int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	s := "schemafile"
	if e.Kind != "" {
		s += fmt.Sprintf(": kind %q", e.Kind)
	}
	if e.Line > 0 {
		s += fmt.Sprintf(" at %d:%d", e.Line, e.Col)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Loader turns YAML kind documents into schemas.
type Loader struct {
	Registry *docskema.Registry
	// Codecs resolves $custom names. nil selects codec.Defaults().
	Codecs *codec.Set
	// Types resolves type names. nil selects the built-in types.
	Types docskema.TypeSet
	// Factories resolves {$factory: name} defaults. Missing names fall back
	// to the built-in factories (now, uuid, objectid).
	Factories map[string]func() any
}

// NewLoader returns a loader declaring into reg with the default codecs and
// types.
func NewLoader(reg *docskema.Registry) *Loader {
	return &Loader{Registry: reg}
}

var builtinFactories = map[string]func() any{
	"now":      func() any { return time.Now().UTC() },
	"uuid":     func() any { return uuid.New() },
	"objectid": func() any { return primitive.NewObjectID() },
}

// LoadFile reads and declares every kind in the file at path.
func (l *Loader) LoadFile(path string) ([]*docskema.Schema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	return l.Load(bytes.NewReader(b))
}

// Load declares every kind in the YAML stream r. It stops at the first
// failing kind; kinds declared before it stay registered.
func (l *Loader) Load(r io.Reader) ([]*docskema.Schema, error) {
	if l.Registry == nil {
		l.Registry = docskema.NewRegistry()
	}
	dec := yaml.NewDecoder(r)
	var out []*docskema.Schema
	for {
		var root yaml.Node
		if err := dec.Decode(&root); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, &Error{Msg: "parse", Err: err}
		}
		if err := checkDuplicates(&root); err != nil {
			return out, &Error{Err: err}
		}
		if len(root.Content) == 0 {
			continue
		}
		body := resolve(root.Content[0])
		docs := []*yaml.Node{body}
		if list, ok := singleKey(body, "kinds"); ok && list.Kind == yaml.SequenceNode {
			docs = list.Content
		}
		for _, n := range docs {
			s, err := l.declare(resolve(n))
			if err != nil {
				return out, err
			}
			out = append(out, s)
		}
	}
}

func (l *Loader) declare(n *yaml.Node) (*docskema.Schema, error) {
	decl, parent, err := l.kind(n)
	if err != nil {
		return nil, err
	}
	s, err := l.Registry.Declare(decl, parent)
	if err != nil {
		return nil, &Error{Kind: decl.Name, Line: n.Line, Col: n.Column, Err: err}
	}
	return s, nil
}

func (l *Loader) codecs() *codec.Set {
	if l.Codecs == nil {
		l.Codecs = codec.Defaults()
	}
	return l.Codecs
}

func (l *Loader) lookupType(name string) (*docskema.Type, bool) {
	if l.Types != nil {
		return l.Types.Lookup(name)
	}
	return docskema.LookupType(name)
}

func (l *Loader) factory(name string) (func() any, bool) {
	if fn, ok := l.Factories[name]; ok {
		return fn, true
	}
	fn, ok := builtinFactories[name]
	return fn, ok
}

func errAt(kind string, n *yaml.Node, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: n.Line, Col: n.Column, Msg: fmt.Sprintf(format, args...)}
}
