package docskema

// Skeleton builds a new document: every declared field is present (see
// Generate) and declared defaults are injected. partial is copied, never
// modified.
func (s *Schema) Skeleton(partial Document) Document {
	return s.InjectDefaults(s.Generate(partial))
}

// Generate returns a copy of partial in which every declared field holds a
// value: sub-documents are generated recursively, lists become empty lists,
// tuples become lists of nulls of the declared arity, typed maps and language
// maps become empty maps, custom fields take their codec's empty value and
// everything else is null. Defaults are not applied.
func (s *Schema) Generate(partial Document) Document {
	doc := DeepCopy(partial)
	if doc == nil {
		doc = Document{}
	}
	fillNested(s.structure, doc)
	return doc
}

func fillNested(n *Nested, doc map[string]any) {
	for _, f := range n.Fields {
		cur, ok := doc[f.Name]
		if !ok {
			doc[f.Name] = emptyValue(f.Node)
			continue
		}
		switch t := f.Node.(type) {
		case *Nested:
			if cur == nil {
				doc[f.Name] = emptyValue(t)
				continue
			}
			if m, ok := cur.(map[string]any); ok {
				fillNested(t, m)
			}
		case *TypedMap:
			sub, ok := t.Value.(*Nested)
			if !ok {
				continue
			}
			if m, ok := cur.(map[string]any); ok {
				for k, v := range m {
					if v == nil {
						m[k] = emptyValue(sub)
					} else if vm, ok := v.(map[string]any); ok {
						fillNested(sub, vm)
					}
				}
			}
		}
	}
}

func emptyValue(n Node) any {
	switch t := n.(type) {
	case *Nested:
		m := map[string]any{}
		fillNested(t, m)
		return m
	case *List:
		return []any{}
	case *Tuple:
		return make([]any, len(t.Elems))
	case *TypedMap, *LangMap:
		return map[string]any{}
	case *Custom:
		if e, ok := t.Codec.(Emptier); ok {
			return e.Empty()
		}
	}
	return nil
}
