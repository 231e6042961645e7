package docskema

import "reflect"

type direction int

const (
	toStorage direction = iota
	toDomain
)

// ToStorage returns the storage form of doc: every custom field goes through
// its codec's ToStorage and language maps become lists of {lang, value}
// entries sorted by language. Before conversion each custom value is checked
// against the codec's domain type. doc is not modified.
func (s *Schema) ToStorage(doc Document) (Document, error) {
	return s.convert(doc, toStorage)
}

// ToDomain is the inverse of ToStorage, applied to documents read from the
// store. Defaults are not injected.
func (s *Schema) ToDomain(doc Document) (Document, error) {
	return s.convert(doc, toDomain)
}

func (s *Schema) convert(doc Document, dir direction) (Document, error) {
	if doc == nil {
		return nil, nil
	}
	out, err := convertNode(doc, s.structure, "", dir)
	if err != nil {
		return nil, err
	}
	m, _ := out.(map[string]any)
	return m, nil
}

func convertNode(val any, n Node, path string, dir direction) (any, error) {
	if val == nil {
		return nil, nil
	}
	switch t := n.(type) {
	case *Nested:
		m, ok := asStringMap(val)
		if !ok {
			return deepCopy(val), nil
		}
		out := make(map[string]any, len(m))
		for k, fv := range m {
			fn, declared := t.Lookup(k)
			if !declared {
				out[k] = deepCopy(fv)
				continue
			}
			c, err := convertNode(fv, fn, JoinPath(path, k), dir)
			if err != nil {
				return nil, err
			}
			out[k] = c
		}
		return out, nil
	case *List:
		seq, ok := asSequence(val)
		if !ok {
			return deepCopy(val), nil
		}
		out := make([]any, len(seq))
		for i, e := range seq {
			c, err := convertNode(e, t.Elem, path, dir)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case *Tuple:
		seq, ok := asSequence(val)
		if !ok || len(seq) != len(t.Elems) {
			return deepCopy(val), nil
		}
		out := make([]any, len(seq))
		for i, e := range seq {
			c, err := convertNode(e, t.Elems[i], path, dir)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case *TypedMap:
		wpath := JoinPath(path, WildcardSegment(t.Key))
		m, ok := asStringMap(val)
		if !ok {
			return convertKeyedMap(val, t, wpath, dir)
		}
		out := make(map[string]any, len(m))
		for k, fv := range m {
			c, err := convertNode(fv, t.Value, wpath, dir)
			if err != nil {
				return nil, err
			}
			out[k] = c
		}
		return out, nil
	case *Custom:
		return convertCustom(val, t.Codec, path, dir)
	case *LangMap:
		if dir == toStorage {
			return langMapToList(val, t, path)
		}
		return langListToMap(val, t, path)
	}
	return deepCopy(val), nil
}

// convertKeyedMap converts a typed map whose keys are not strings. The result
// keeps the key type and holds converted values as any.
func convertKeyedMap(val any, t *TypedMap, wpath string, dir direction) (any, error) {
	entries, ok := mapEntries(val)
	if !ok {
		return deepCopy(val), nil
	}
	rv := reflect.ValueOf(val)
	out := reflect.MakeMapWithSize(reflect.MapOf(rv.Type().Key(), anyType), len(entries))
	for _, e := range entries {
		c, err := convertNode(e.val, t.Value, wpath, dir)
		if err != nil {
			return nil, err
		}
		cv := reflect.Zero(anyType)
		if c != nil {
			cv = reflect.ValueOf(c)
		}
		out.SetMapIndex(reflect.ValueOf(e.key), cv)
	}
	return out.Interface(), nil
}

var anyType = reflect.TypeOf((*any)(nil)).Elem()

func convertCustom(val any, c Codec, path string, dir direction) (any, error) {
	in, out := c.DomainType(), c.StorageType()
	conv := c.ToStorage
	if dir == toDomain {
		in, out = out, in
		conv = c.ToDomain
	}
	if in != nil && !in.Is(val) {
		it := mismatch(path, CodeCustomTypeMismatch, in.Name(), val)
		it.Rule = c.Name()
		return nil, Issues{it}
	}
	res, err := conv(val)
	if err != nil {
		it := IssueAt(path, CodeCustomTypeMismatch, "", nil)
		it.Message, it.Rule, it.Cause = err.Error(), c.Name(), err
		return nil, Issues{it}
	}
	if out != nil && res != nil && !out.Is(res) {
		it := mismatch(path, CodeCustomTypeMismatch, out.Name(), res)
		it.Rule = c.Name()
		return nil, Issues{it}
	}
	return res, nil
}

func langMapToList(val any, t *LangMap, path string) (any, error) {
	if _, ok := asSequence(val); ok {
		return deepCopy(val), nil
	}
	entries, ok := mapEntries(val)
	if !ok {
		return deepCopy(val), nil
	}
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		c, err := convertNode(e.val, t.Inner, path, toStorage)
		if err != nil {
			return nil, err
		}
		out = append(out, map[string]any{storageLangKey: keyString(e.key), storageValueKey: c})
	}
	return out, nil
}

func langListToMap(val any, t *LangMap, path string) (any, error) {
	seq, ok := asSequence(val)
	if !ok {
		if m, isMap := asStringMap(val); isMap {
			out := make(map[string]any, len(m))
			for k, v := range m {
				c, err := convertNode(v, t.Inner, path, toDomain)
				if err != nil {
					return nil, err
				}
				out[k] = c
			}
			return out, nil
		}
		return deepCopy(val), nil
	}
	out := make(map[string]any, len(seq))
	for _, e := range seq {
		m, ok := asStringMap(e)
		if !ok {
			return deepCopy(val), nil
		}
		lang, _ := m[storageLangKey].(string)
		c, err := convertNode(m[storageValueKey], t.Inner, path, toDomain)
		if err != nil {
			return nil, err
		}
		out[lang] = c
	}
	return out, nil
}
