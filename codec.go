package docskema

// Codec converts one field between its storage and domain representations.
// Codecs are stateless and shared by every document validated against the
// schema that declares them.
type Codec interface {
	Name() string
	// StorageType is the type handed to the store. nil disables the check.
	StorageType() *Type
	// DomainType is the type application code works with. nil disables the check.
	DomainType() *Type
	ToStorage(v any) (any, error)
	ToDomain(v any) (any, error)
}

// Emptier is implemented by codecs that declare the skeleton value of their
// fields. Empty is called once per skeleton, so it must return a fresh value.
type Emptier interface {
	Empty() any
}

// ValueValidator is implemented by codecs with a semantic check on domain
// values. path is the dotted path of the field being validated.
type ValueValidator interface {
	ValidateValue(v any, path string) error
}

// Lossy is implemented by codecs whose round trip does not preserve values.
type Lossy interface {
	Lossy() bool
}

// IsLossy reports whether c declares itself lossy.
func IsLossy(c Codec) bool {
	l, ok := c.(Lossy)
	return ok && l.Lossy()
}
