package codec

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/reoring/docskema"
)

// ErrUnknownCodec is returned by Set.Get for unregistered names.
var ErrUnknownCodec = errors.New("codec: unknown codec")

// Set resolves codecs by name, for schema files and other declarative
// sources.
type Set struct {
	mu     sync.RWMutex
	codecs map[string]docskema.Codec
}

// NewSet returns a set holding codecs, keyed by their names.
func NewSet(codecs ...docskema.Codec) *Set {
	s := &Set{codecs: make(map[string]docskema.Codec, len(codecs))}
	for _, c := range codecs {
		s.codecs[c.Name()] = c
	}
	return s
}

// Defaults returns a set with the codecs of this package.
func Defaults() *Set {
	return NewSet(Decimal(), RFC3339(), UUID(), ObjectID(), JSONObject())
}

// Register adds or replaces a codec.
func (s *Set) Register(c docskema.Codec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codecs[c.Name()] = c
}

// Lookup returns the codec registered under name.
func (s *Set) Lookup(name string) (docskema.Codec, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.codecs[name]
	return c, ok
}

// Get is Lookup returning ErrUnknownCodec.
func (s *Set) Get(name string) (docskema.Codec, error) {
	if c, ok := s.Lookup(name); ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, name)
}

// Names lists the registered codec names in lexical order.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.codecs))
	for n := range s.codecs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
