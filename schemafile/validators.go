package schemafile

import (
	"github.com/reoring/docskema"
	"github.com/reoring/docskema/rules"
	"gopkg.in/yaml.v3"
)

// validators reads path: [rule, ...]. A rule is a bare name (nonempty) or a
// single-key mapping {name: argument}. Comparison operators (">", "ge", ...)
// are rule names too.
func (l *Loader) validators(kind string, n *yaml.Node) (map[string][]docskema.Validator, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errAt(kind, n, "validators must be a mapping")
	}
	out := map[string][]docskema.Validator{}
	for _, p := range pairs(n) {
		list := resolve(p[1])
		items := list.Content
		if list.Kind != yaml.SequenceNode {
			items = []*yaml.Node{list}
		}
		for _, item := range items {
			v, err := l.rule(kind, resolve(item))
			if err != nil {
				return nil, err
			}
			out[p[0].Value] = append(out[p[0].Value], v)
		}
	}
	return out, nil
}

func (l *Loader) rule(kind string, n *yaml.Node) (docskema.Validator, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Value == "nonempty" {
			return rules.NonEmpty(), nil
		}
		return docskema.Validator{}, errAt(kind, n, "rule %q needs an argument", n.Value)
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return docskema.Validator{}, errAt(kind, n, "a rule mapping has exactly one key")
		}
	default:
		return docskema.Validator{}, errAt(kind, n, "unsupported rule")
	}
	name, arg := n.Content[0].Value, resolve(n.Content[1])
	switch name {
	case "minlen", "maxlen":
		var i int
		if err := arg.Decode(&i); err != nil {
			return docskema.Validator{}, wrap(kind, arg, err)
		}
		if name == "minlen" {
			return rules.MinLen(i), nil
		}
		return rules.MaxLen(i), nil
	case "min", "max":
		var f float64
		if err := arg.Decode(&f); err != nil {
			return docskema.Validator{}, wrap(kind, arg, err)
		}
		if name == "min" {
			return rules.Min(f), nil
		}
		return rules.Max(f), nil
	case "pattern":
		v, err := rules.PatternE(arg.Value)
		if err != nil {
			return docskema.Validator{}, wrap(kind, arg, err)
		}
		return v, nil
	case "enum":
		v, err := value(arg)
		if err != nil {
			return docskema.Validator{}, wrap(kind, arg, err)
		}
		allowed, ok := v.([]any)
		if !ok {
			return docskema.Validator{}, errAt(kind, arg, "enum takes a list")
		}
		return rules.Enum(allowed...), nil
	case "unique":
		return rules.UniqueBy(arg.Value), nil
	}
	if op, ok := rules.ParseOp(name); ok {
		v, err := value(arg)
		if err != nil {
			return docskema.Validator{}, wrap(kind, arg, err)
		}
		return rules.Compare(op, v), nil
	}
	return docskema.Validator{}, errAt(kind, n.Content[0], "unknown rule %q", name)
}
