package schemafile

import (
	"strings"

	"github.com/reoring/docskema"
	"gopkg.in/yaml.v3"
)

// Structure directives. A mapping with a single key starting with "$" is a
// directive; any other mapping is a nested sub-document.
const (
	dirTuple  = "$tuple"
	dirMap    = "$map"
	dirCustom = "$custom"
	dirOr     = "$or"
	dirNot    = "$not"
	dirIs     = "$is"
	dirI18n   = "$i18n"
	dirAny    = "$any"
	dirList   = "$list"
)

func (l *Loader) structure(kind string, n *yaml.Node) (*docskema.Nested, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errAt(kind, n, "structure must be a mapping")
	}
	node, err := l.node(kind, n)
	if err != nil {
		return nil, err
	}
	nested, ok := node.(*docskema.Nested)
	if !ok {
		return nil, errAt(kind, n, "structure must be a sub-document, not a directive")
	}
	return nested, nil
}

func (l *Loader) node(kind string, n *yaml.Node) (docskema.Node, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Value == "any" {
			return &docskema.AnyOf{}, nil
		}
		t, err := l.typeAt(kind, n)
		if err != nil {
			return nil, err
		}
		return docskema.Prim(t), nil
	case yaml.SequenceNode:
		switch len(n.Content) {
		case 0:
			return docskema.AnyList(), nil
		case 1:
			elem, err := l.node(kind, n.Content[0])
			if err != nil {
				return nil, err
			}
			return docskema.ListOf(elem), nil
		}
		return nil, errAt(kind, n, "a list declares one element node; use %s for fixed arity", dirTuple)
	case yaml.MappingNode:
		if len(n.Content) == 2 && strings.HasPrefix(n.Content[0].Value, "$") {
			return l.directive(kind, n.Content[0], resolve(n.Content[1]))
		}
		nested := &docskema.Nested{}
		for _, p := range pairs(n) {
			if strings.HasPrefix(p[0].Value, "$") {
				return nil, errAt(kind, p[0], "directive %q must be the only key of its mapping", p[0].Value)
			}
			child, err := l.node(kind, p[1])
			if err != nil {
				return nil, err
			}
			nested.Fields = append(nested.Fields, docskema.F(p[0].Value, child))
		}
		return nested, nil
	}
	return nil, errAt(kind, n, "unsupported structure node")
}

func (l *Loader) directive(kind string, k, arg *yaml.Node) (docskema.Node, error) {
	switch k.Value {
	case dirTuple:
		if arg.Kind != yaml.SequenceNode {
			return nil, errAt(kind, arg, "%s takes a list of nodes", dirTuple)
		}
		elems := make([]docskema.Node, 0, len(arg.Content))
		for _, c := range arg.Content {
			e, err := l.node(kind, c)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return docskema.TupleOf(elems...), nil
	case dirMap:
		keyNode, valNode, ok := mapArgs(arg)
		if !ok {
			return nil, errAt(kind, arg, "%s takes [key type, value node] or {key: type, value: node}", dirMap)
		}
		key, err := l.typeAt(kind, keyNode)
		if err != nil {
			return nil, err
		}
		val, err := l.node(kind, valNode)
		if err != nil {
			return nil, err
		}
		return docskema.MapOf(key, val), nil
	case dirCustom:
		c, err := l.codecs().Get(arg.Value)
		if err != nil {
			return nil, &Error{Kind: kind, Line: arg.Line, Col: arg.Column, Err: err}
		}
		return docskema.CustomOf(c), nil
	case dirOr, dirNot, dirAny:
		types, err := l.typeList(kind, arg)
		if err != nil {
			return nil, err
		}
		switch k.Value {
		case dirOr:
			return docskema.Or(types...), nil
		case dirNot:
			return docskema.Not(types...), nil
		}
		return &docskema.AnyOf{Types: types}, nil
	case dirIs:
		v, err := value(arg)
		if err != nil {
			return nil, wrap(kind, arg, err)
		}
		lits, ok := v.([]any)
		if !ok {
			lits = []any{v}
		}
		return docskema.Is(lits...), nil
	case dirI18n:
		inner, err := l.node(kind, arg)
		if err != nil {
			return nil, err
		}
		return docskema.I18n(inner), nil
	case dirList:
		elem, err := l.node(kind, arg)
		if err != nil {
			return nil, err
		}
		return docskema.ListOf(elem), nil
	}
	return nil, errAt(kind, k, "unknown directive %q", k.Value)
}

func (l *Loader) typeAt(kind string, n *yaml.Node) (*docskema.Type, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, errAt(kind, n, "expected a type name")
	}
	t, ok := l.lookupType(n.Value)
	if !ok {
		return nil, errAt(kind, n, "unknown type %q", n.Value)
	}
	return t, nil
}

func mapArgs(arg *yaml.Node) (key, val *yaml.Node, ok bool) {
	switch arg.Kind {
	case yaml.SequenceNode:
		if len(arg.Content) == 2 {
			return resolve(arg.Content[0]), arg.Content[1], true
		}
	case yaml.MappingNode:
		for _, p := range pairs(arg) {
			switch p[0].Value {
			case "key":
				key = resolve(p[1])
			case "value":
				val = p[1]
			default:
				return nil, nil, false
			}
		}
		return key, val, key != nil && val != nil
	}
	return nil, nil, false
}
