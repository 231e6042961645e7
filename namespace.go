package docskema

import "sort"

// Namespace is the flattened set of dotted paths of a schema. List elements
// are not addressable, so paths never descend into lists; typed-map levels use
// the $TypeName segment.
type Namespace struct {
	paths []string
	set   map[string]struct{}
}

// Has reports whether p is a valid path.
func (n Namespace) Has(p string) bool {
	_, ok := n.set[p]
	return ok
}

// Paths returns the sorted paths.
func (n Namespace) Paths() []string { return append([]string(nil), n.paths...) }

// Len returns the number of paths.
func (n Namespace) Len() int { return len(n.paths) }

// Flatten computes the namespace of a structure without declaring it.
func Flatten(root *Nested) Namespace {
	ns, _ := flatten(root)
	return ns
}

func flatten(root *Nested) (Namespace, map[string]Node) {
	nodes := map[string]Node{}
	if root != nil {
		walkNamespace(root, "", nodes)
	}
	ns := Namespace{paths: make([]string, 0, len(nodes)), set: make(map[string]struct{}, len(nodes))}
	for p := range nodes {
		ns.paths = append(ns.paths, p)
		ns.set[p] = struct{}{}
	}
	sort.Strings(ns.paths)
	return ns, nodes
}

func walkNamespace(n Node, path string, nodes map[string]Node) {
	switch t := n.(type) {
	case *Nested:
		for _, f := range t.Fields {
			p := JoinPath(path, f.Name)
			nodes[p] = f.Node
			walkNamespace(f.Node, p, nodes)
		}
	case *TypedMap:
		p := JoinPath(path, WildcardSegment(t.Key))
		nodes[p] = t.Value
		walkNamespace(t.Value, p, nodes)
	}
}
