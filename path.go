package docskema

import (
	"errors"
	"fmt"
	"strings"
)

const (
	pathSep        = "."
	wildcardPrefix = "$"
)

// ErrPathConflict is returned by SetPath when an intermediate segment holds a
// non-map value.
var ErrPathConflict = errors.New("docskema: path crosses a non-map value")

// JoinPath appends a segment to a dotted path.
func JoinPath(parent, seg string) string {
	if parent == "" {
		return seg
	}
	return parent + pathSep + seg
}

// SplitPath splits a dotted path into segments. The root path yields nil.
func SplitPath(p string) []string {
	if p == "" {
		return nil
	}
	return strings.Split(p, pathSep)
}

// WildcardSegment is the path segment standing for "any key of type t".
func WildcardSegment(t *Type) string { return wildcardPrefix + t.Name() }

// IsWildcard reports whether seg is a typed-map wildcard segment.
func IsWildcard(seg string) bool { return strings.HasPrefix(seg, wildcardPrefix) }

// HasWildcard reports whether any segment of p is a wildcard.
func HasWildcard(p string) bool {
	for _, s := range SplitPath(p) {
		if IsWildcard(s) {
			return true
		}
	}
	return false
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// GetPath resolves a concrete dotted path (no wildcards) in doc.
func GetPath(doc Document, path string) (any, bool) {
	var cur any = doc
	for _, seg := range SplitPath(path) {
		m, ok := asStringMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// SetPath assigns v at a concrete dotted path, creating missing or null
// intermediate sub-documents.
func SetPath(doc Document, path string, v any) error {
	segs := SplitPath(path)
	if len(segs) == 0 {
		return fmt.Errorf("%w: empty path", ErrPathConflict)
	}
	cur := doc
	for i, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg]
		if !ok || next == nil {
			m := map[string]any{}
			cur[seg] = m
			cur = m
			continue
		}
		m, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s", ErrPathConflict, strings.Join(segs[:i+1], pathSep))
		}
		cur = m
	}
	cur[segs[len(segs)-1]] = v
	return nil
}

// resolved is one concrete location matched by a (possibly wildcard) path.
type resolved struct {
	path  string
	value any
}

// resolveAll expands a dotted path against doc. Wildcard segments match every
// key of the map found at that level; missing keys yield no match.
func resolveAll(doc any, segs []string, prefix string, out []resolved) []resolved {
	if len(segs) == 0 {
		return append(out, resolved{path: prefix, value: doc})
	}
	seg := segs[0]
	if IsWildcard(seg) {
		entries, ok := mapEntries(doc)
		if !ok {
			return out
		}
		for _, e := range entries {
			out = resolveAll(e.val, segs[1:], JoinPath(prefix, keyString(e.key)), out)
		}
		return out
	}
	m, ok := asStringMap(doc)
	if !ok {
		return out
	}
	v, ok := m[seg]
	if !ok {
		return out
	}
	return resolveAll(v, segs[1:], JoinPath(prefix, seg), out)
}
