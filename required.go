package docskema

// required reports every required path whose value is null, an empty list or
// an empty map. Wildcard segments match every key of the typed map found at
// that level; an empty typed map leaves the path unsatisfied.
func (v *validation) required(doc Document) {
	for _, p := range v.s.required {
		if !v.s.satisfied(doc, SplitPath(p), "") {
			v.add(IssueAt(p, CodeRequired, "", nil))
			if v.stopped() {
				return
			}
		}
	}
}

func (s *Schema) satisfied(cur any, segs []string, nodePath string) bool {
	if len(segs) == 0 {
		return !s.emptyAt(cur, nodePath)
	}
	seg := segs[0]
	next := JoinPath(nodePath, seg)
	if IsWildcard(seg) {
		entries, ok := mapEntries(cur)
		if !ok || len(entries) == 0 {
			return false
		}
		for _, e := range entries {
			if !s.satisfied(e.val, segs[1:], next) {
				return false
			}
		}
		return true
	}
	m, ok := asStringMap(cur)
	if !ok {
		return false
	}
	val, ok := m[seg]
	if !ok {
		return false
	}
	return s.satisfied(val, segs[1:], next)
}

// emptyAt applies the unset test to a value. A custom field stored as a map
// is only set when its storage value is a non-empty map.
func (s *Schema) emptyAt(v any, nodePath string) bool {
	if isEmpty(v) {
		return true
	}
	c, ok := s.nodes[nodePath].(*Custom)
	if !ok || c.Codec.StorageType() != TypeDict {
		return false
	}
	out, err := c.Codec.ToStorage(v)
	if err != nil {
		return true
	}
	m, ok := asStringMap(out)
	return !ok || len(m) == 0
}
