// Package codec provides docskema codecs: converters between the value a
// field holds in application code (domain) and the value handed to the store
// (storage).
package codec

import (
	"fmt"

	"github.com/reoring/docskema"
)

// FuncCodec adapts a pair of typed conversion functions to docskema.Codec.
type FuncCodec[S, D any] struct {
	name      string
	storage   *docskema.Type
	domain    *docskema.Type
	toStorage func(D) (S, error)
	toDomain  func(S) (D, error)
	empty     func() any
	validate  func(D) error
	lossy     bool
}

// Func builds a codec from typed conversions. storage and domain may be nil
// to skip the corresponding type checks.
func Func[S, D any](name string, storage, domain *docskema.Type, toStorage func(D) (S, error), toDomain func(S) (D, error)) *FuncCodec[S, D] {
	return &FuncCodec[S, D]{name: name, storage: storage, domain: domain, toStorage: toStorage, toDomain: toDomain}
}

// WithEmpty sets the skeleton value of fields using the codec.
func (c *FuncCodec[S, D]) WithEmpty(fn func() any) *FuncCodec[S, D] {
	c.empty = fn
	return c
}

// WithValidate adds a semantic check on domain values.
func (c *FuncCodec[S, D]) WithValidate(fn func(D) error) *FuncCodec[S, D] {
	c.validate = fn
	return c
}

// AsLossy marks the codec as not preserving values across a round trip.
func (c *FuncCodec[S, D]) AsLossy() *FuncCodec[S, D] {
	c.lossy = true
	return c
}

func (c *FuncCodec[S, D]) Name() string                { return c.name }
func (c *FuncCodec[S, D]) StorageType() *docskema.Type { return c.storage }
func (c *FuncCodec[S, D]) DomainType() *docskema.Type  { return c.domain }
func (c *FuncCodec[S, D]) Lossy() bool                 { return c.lossy }

func (c *FuncCodec[S, D]) ToStorage(v any) (any, error) {
	d, ok := v.(D)
	if !ok {
		return nil, fmt.Errorf("codec %s: expected %T, got %T", c.name, *new(D), v)
	}
	return c.toStorage(d)
}

func (c *FuncCodec[S, D]) ToDomain(v any) (any, error) {
	s, ok := v.(S)
	if !ok {
		return nil, fmt.Errorf("codec %s: expected %T, got %T", c.name, *new(S), v)
	}
	return c.toDomain(s)
}

// Empty implements docskema.Emptier; without WithEmpty fields start null.
func (c *FuncCodec[S, D]) Empty() any {
	if c.empty == nil {
		return nil
	}
	return c.empty()
}

// ValidateValue implements docskema.ValueValidator.
func (c *FuncCodec[S, D]) ValidateValue(v any, path string) error {
	if c.validate == nil {
		return nil
	}
	d, ok := v.(D)
	if !ok {
		return fmt.Errorf("%s: codec %s: expected %T, got %T", path, c.name, *new(D), v)
	}
	if err := c.validate(d); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
