package docskema

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrKindExists  = errors.New("docskema: kind already declared")
	ErrUnknownKind = errors.New("docskema: unknown kind")
)

// Registry holds named kinds. Parents are referenced by name and must be
// declared first. Kinds are never replaced once declared.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]*Schema
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: map[string]*Schema{}}
}

// Declare compiles d, inheriting from the kind named parent when parent is
// not empty, and registers the result under d.Name.
func (r *Registry) Declare(d Declaration, parent string) (*Schema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.Name == "" {
		return nil, defErr("", "", ErrInvalidStructure, "kind name is empty")
	}
	if _, ok := r.kinds[d.Name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrKindExists, d.Name)
	}
	var p *Schema
	if parent != "" {
		var ok bool
		if p, ok = r.kinds[parent]; !ok {
			return nil, defErr(d.Name, "", ErrUnknownParent, "%s", parent)
		}
	}
	s, err := Declare(d, p)
	if err != nil {
		return nil, err
	}
	r.kinds[d.Name] = s
	return s, nil
}

// Register adds an already compiled schema.
func (r *Registry) Register(s *Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.kinds[s.name]; ok {
		return fmt.Errorf("%w: %s", ErrKindExists, s.name)
	}
	r.kinds[s.name] = s
	return nil
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.kinds[name]
	return s, ok
}

// Get is Lookup returning ErrUnknownKind.
func (r *Registry) Get(name string) (*Schema, error) {
	if s, ok := r.Lookup(name); ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, name)
}

// Names lists the registered kinds in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.kinds))
	for n := range r.kinds {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
