package docskema

// InjectDefaults assigns every declared default whose target is still null,
// an empty list or an empty map, and returns doc. Constant defaults are
// deep-copied and factories are called on each assignment, so two documents
// never share a default container. Missing intermediate sub-documents are
// created; a path crossing a non-map value is left for Validate to report.
//
// Language-map defaults assign the whole map, not one language.
func (s *Schema) InjectDefaults(doc Document) Document {
	if doc == nil {
		doc = Document{}
	}
	for _, p := range sortedPaths(s.defaults) {
		cur, ok := GetPath(doc, p)
		if ok && !isEmpty(cur) {
			continue
		}
		_ = SetPath(doc, p, s.defaults[p].Resolve())
	}
	return doc
}
