package schemafile

import (
	"github.com/reoring/docskema"
	"gopkg.in/yaml.v3"
)

// kind reads one kind document. It returns the declaration and the name of
// the parent kind ("" when the kind extends nothing).
func (l *Loader) kind(n *yaml.Node) (docskema.Declaration, string, error) {
	var d docskema.Declaration
	if n.Kind != yaml.MappingNode {
		return d, "", errAt("", n, "kind document must be a mapping")
	}
	ps := pairs(n)
	for _, p := range ps {
		if p[0].Value == "name" {
			d.Name = p[1].Value
		}
	}
	var parent string
	for _, p := range ps {
		k, v := p[0], resolve(p[1])
		var err error
		switch k.Value {
		case "name":
		case "extends":
			parent = v.Value
		case "structure":
			d.Structure, err = l.structure(d.Name, v)
		case "required":
			d.Required, err = l.pathList(d.Name, v)
		case "i18n":
			d.I18n, err = l.pathList(d.Name, v)
		case "defaults":
			d.Defaults, err = l.defaults(d.Name, v)
		case "validators":
			d.Validators, err = l.validators(d.Name, v)
		case "types":
			d.AuthorizedTypes, err = l.typeList(d.Name, v)
		case "schemaless":
			err = v.Decode(&d.Options.Schemaless)
		case "accumulate":
			err = v.Decode(&d.Options.Accumulate)
		case "reserved":
			d.Options.ReservedKeys, err = l.pathList(d.Name, v)
		default:
			return d, "", errAt(d.Name, k, "unknown key %q", k.Value)
		}
		if err != nil {
			return d, "", wrap(d.Name, v, err)
		}
	}
	if d.Name == "" {
		return d, "", errAt("", n, "kind has no name")
	}
	return d, parent, nil
}

func wrap(kind string, n *yaml.Node, err error) error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Kind: kind, Line: n.Line, Col: n.Column, Err: err}
}

func (l *Loader) pathList(kind string, n *yaml.Node) ([]string, error) {
	out, err := stringList(n)
	if err != nil {
		return nil, errAt(kind, n, "expected a list of strings")
	}
	return out, nil
}

func (l *Loader) typeList(kind string, n *yaml.Node) ([]*docskema.Type, error) {
	names, err := l.pathList(kind, n)
	if err != nil {
		return nil, err
	}
	out := make([]*docskema.Type, 0, len(names))
	for _, name := range names {
		t, ok := l.lookupType(name)
		if !ok {
			return nil, errAt(kind, n, "unknown type %q", name)
		}
		out = append(out, t)
	}
	return out, nil
}

func (l *Loader) defaults(kind string, n *yaml.Node) (map[string]docskema.DefaultSpec, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errAt(kind, n, "defaults must be a mapping")
	}
	out := map[string]docskema.DefaultSpec{}
	for _, p := range pairs(n) {
		v := resolve(p[1])
		if name, ok := singleKey(v, "$factory"); ok {
			fn, ok := l.factory(name.Value)
			if !ok {
				return nil, errAt(kind, name, "unknown factory %q", name.Value)
			}
			out[p[0].Value] = docskema.Factory(fn)
			continue
		}
		val, err := value(v)
		if err != nil {
			return nil, wrap(kind, v, err)
		}
		out[p[0].Value] = docskema.Value(val)
	}
	return out, nil
}

// singleKey returns the argument of a single-key {name: arg} mapping.
func singleKey(n *yaml.Node, name string) (*yaml.Node, bool) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 || n.Content[0].Value != name {
		return nil, false
	}
	return resolve(n.Content[1]), true
}
