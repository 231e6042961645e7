package docskema

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/language"
)

// Validate checks doc against the schema and returns Issues, or nil when the
// document is valid. It never modifies doc.
//
// Checks run in three passes: structure and types, field validators, then
// required fields. Required fields are only checked once the structure
// conforms. In fail-fast mode the first issue ends the call.
func (s *Schema) Validate(doc Document, opts ...ValidateOpt) error {
	if iss := s.Check(doc, opts...); len(iss) > 0 {
		return iss
	}
	return nil
}

// Check is Validate returning the issues directly.
func (s *Schema) Check(doc Document, opts ...ValidateOpt) Issues {
	opt := pickValidateOpt(opts)
	v := &validation{s: s, opt: opt, failFast: s.failFast(opt.Mode)}
	v.node(doc, s.structure, "", true)
	structural := len(v.iss) > 0
	if !v.stopped() && !opt.SkipValidators && opt.Stage == StageDomain {
		v.fieldValidators(doc)
	}
	if !structural && !v.stopped() && !opt.SkipRequired {
		v.required(doc)
	}
	return v.iss
}

func (s *Schema) failFast(m Mode) bool {
	switch m {
	case ModeFailFast:
		return true
	case ModeAccumulate:
		return false
	}
	return !s.opts.Accumulate
}

// validation carries the state of one Check call.
type validation struct {
	s        *Schema
	opt      ValidateOpt
	failFast bool
	iss      Issues
}

func (v *validation) stopped() bool { return v.failFast && len(v.iss) > 0 }

func (v *validation) add(it Issue) { v.iss = AppendIssues(v.iss, it) }

func (v *validation) node(val any, n Node, path string, root bool) {
	if v.stopped() {
		return
	}
	switch t := n.(type) {
	case *Primitive:
		if val != nil && !t.Type.Is(val) {
			v.add(mismatch(path, CodeTypeMismatch, t.Type.Name(), val))
		}
	case *AnyOf:
		v.anyOf(val, t, path)
	case *Nested:
		v.nested(val, t, path, root)
	case *TypedMap:
		v.typedMap(val, t, path)
	case *List:
		seq, ok := asSequence(val)
		if !ok {
			v.add(container(path, "list", val))
			return
		}
		for _, e := range seq {
			v.node(e, t.Elem, path, false)
		}
	case *Tuple:
		seq, ok := asSequence(val)
		if !ok {
			v.add(container(path, "list", val))
			return
		}
		if len(seq) != len(t.Elems) {
			it := container(path, fmt.Sprintf("list of %d", len(t.Elems)), val)
			it.Params["len"] = len(seq)
			v.add(it)
			return
		}
		// a null slot is unset, whatever the slot's node kind
		for i, e := range seq {
			if e != nil {
				v.node(e, t.Elems[i], path, false)
			}
		}
	case *Custom:
		v.custom(val, t, path)
	case *Combinator:
		if val != nil && !combinatorAccepts(t, val) {
			v.add(mismatch(path, CodeTypeMismatch, combinatorString(t), val))
		}
	case *LangMap:
		v.langMap(val, t, path)
	}
}

func (v *validation) anyOf(val any, t *AnyOf, path string) {
	if val == nil {
		return
	}
	if len(t.Types) > 0 {
		for _, typ := range t.Types {
			if typ.Is(val) {
				return
			}
		}
		v.add(mismatch(path, CodeUnauthorizedType, typeNames(t.Types), val))
		return
	}
	if _, ok := v.s.types.Match(val); !ok {
		v.add(mismatch(path, CodeUnauthorizedType, strings.Join(v.s.types.Names(), "|"), val))
	}
}

func (v *validation) nested(val any, t *Nested, path string, root bool) {
	m, ok := asStringMap(val)
	if !ok {
		v.add(container(path, "dict", val))
		return
	}
	if !v.s.opts.Schemaless {
		for _, k := range sortedKeys(m) {
			if _, declared := t.Lookup(k); declared {
				continue
			}
			if _, reserved := v.s.reserved[k]; root && reserved {
				continue
			}
			v.add(IssueAt(JoinPath(path, k), CodeUnknownField, k, nil))
			if v.stopped() {
				return
			}
		}
		for _, f := range t.Fields {
			if _, ok := m[f.Name]; !ok {
				v.add(IssueAt(JoinPath(path, f.Name), CodeMissingField, f.Name, nil))
				if v.stopped() {
					return
				}
			}
		}
	}
	for _, f := range t.Fields {
		if fv, ok := m[f.Name]; ok {
			v.node(fv, f.Node, JoinPath(path, f.Name), false)
		}
	}
}

func (v *validation) typedMap(val any, t *TypedMap, path string) {
	entries, ok := mapEntries(val)
	if !ok {
		v.add(container(path, "dict", val))
		return
	}
	wpath := JoinPath(path, WildcardSegment(t.Key))
	for _, e := range entries {
		if !t.Key.Is(e.key) {
			it := mismatch(wpath, CodeTypeMismatch, t.Key.Name(), e.key)
			it.Hint = keyString(e.key)
			v.add(it)
			if v.stopped() {
				return
			}
			continue
		}
		v.node(e.val, t.Value, wpath, false)
	}
}

func (v *validation) custom(val any, t *Custom, path string) {
	if val == nil {
		return
	}
	want := t.Codec.DomainType()
	if v.opt.Stage == StageStorage {
		want = t.Codec.StorageType()
	}
	if want != nil && !want.Is(val) {
		it := mismatch(path, CodeCustomTypeMismatch, want.Name(), val)
		it.Rule = t.Codec.Name()
		v.add(it)
		return
	}
	if vv, ok := t.Codec.(ValueValidator); ok && v.opt.Stage == StageDomain {
		if err := vv.ValidateValue(val, path); err != nil {
			v.add(Issue{Path: path, Code: CodeValidatorFailed, Message: err.Error(), Rule: t.Codec.Name(), Cause: err})
		}
	}
}

func (v *validation) langMap(val any, t *LangMap, path string) {
	if v.opt.Stage == StageStorage {
		v.langList(val, t, path)
		return
	}
	entries, ok := mapEntries(val)
	if !ok {
		v.add(container(path, "language map", val))
		return
	}
	for _, e := range entries {
		if !v.langKey(e.key, path) {
			continue
		}
		v.node(e.val, t.Inner, path, false)
		if v.stopped() {
			return
		}
	}
}

// langList validates the storage form of a language map.
func (v *validation) langList(val any, t *LangMap, path string) {
	seq, ok := asSequence(val)
	if !ok {
		v.add(container(path, "language list", val))
		return
	}
	for _, e := range seq {
		m, ok := asStringMap(e)
		if !ok || len(m) != 2 {
			v.add(container(path, "{lang, value}", e))
			return
		}
		lang, hasLang := m[storageLangKey]
		value, hasValue := m[storageValueKey]
		if !hasLang || !hasValue {
			v.add(container(path, "{lang, value}", e))
			return
		}
		if !v.langKey(lang, path) {
			continue
		}
		v.node(value, t.Inner, path, false)
		if v.stopped() {
			return
		}
	}
}

func (v *validation) langKey(k any, path string) bool {
	s, ok := k.(string)
	if ok {
		if _, err := language.Parse(s); err == nil {
			return true
		}
	}
	v.add(IssueAt(path, CodeInvalidLanguage, keyString(k), map[string]any{"key": keyString(k)}))
	return false
}

func mismatch(path, code, expected string, got any) Issue {
	return IssueAt(path, code, expected, map[string]any{"expected": expected, "got": typeName(got)})
}

func container(path, expected string, got any) Issue {
	return IssueAt(path, CodeInvalidContainer, expected, map[string]any{"expected": expected, "got": typeName(got)})
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

func typeNames(ts []*Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name()
	}
	return strings.Join(names, "|")
}

func combinatorAccepts(c *Combinator, v any) bool {
	switch c.Op {
	case OpOr:
		for _, t := range c.Types {
			if t.Is(v) {
				return true
			}
		}
		return false
	case OpNot:
		for _, t := range c.Types {
			if t.Is(v) {
				return false
			}
		}
		return true
	case OpIs:
		for _, l := range c.Literals {
			if sameLiteral(l, v) {
				return true
			}
		}
	}
	return false
}

// sameLiteral compares type and value: 3 is not 3.0 and "3" is not 3.
func sameLiteral(lit, v any) bool {
	if reflect.TypeOf(lit) != reflect.TypeOf(v) {
		return false
	}
	return reflect.DeepEqual(lit, v)
}

func combinatorString(c *Combinator) string {
	if c.Op == OpIs {
		parts := make([]string, len(c.Literals))
		for i, l := range c.Literals {
			parts[i] = fmt.Sprintf("%#v", l)
		}
		return "is(" + strings.Join(parts, ", ") + ")"
	}
	return c.Op.String() + "(" + strings.Join(strings.Split(typeNames(c.Types), "|"), ", ") + ")"
}
