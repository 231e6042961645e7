package docskema

// DefaultSpec is either a constant value (deep-copied on every use) or a
// zero-argument factory.
type DefaultSpec struct {
	value   any
	factory func() any
}

// Value declares a constant default. Maps and lists are deep-copied each time
// the default is applied, so documents never share default containers.
func Value(v any) DefaultSpec { return DefaultSpec{value: v} }

// Factory declares a default computed on every application.
func Factory(fn func() any) DefaultSpec { return DefaultSpec{factory: fn} }

// IsFactory reports whether the default is computed by a factory.
func (d DefaultSpec) IsFactory() bool { return d.factory != nil }

// Constant returns the declared constant (nil for factories).
func (d DefaultSpec) Constant() any { return d.value }

// Resolve produces the value to assign.
func (d DefaultSpec) Resolve() any {
	if d.factory != nil {
		return d.factory()
	}
	return deepCopy(d.value)
}

// Predicate checks a field value. Returning false or a non-nil error both
// reject the value; the error message, when present, becomes the issue message.
// A panicking predicate is reported like one returning an error.
type Predicate func(v any) (bool, error)

// Validator is a named predicate attached to a dotted path.
type Validator struct {
	Name  string
	Check Predicate
}

// Options are the per-schema settings.
type Options struct {
	// Schemaless turns off the unknown/missing field checks of nested
	// sub-documents. Required fields and validators still apply.
	Schemaless bool
	// Accumulate records every issue instead of stopping at the first one.
	// Doc.Validate records issues on Doc.Errors instead of returning them.
	Accumulate bool
	// ReservedKeys are root-level keys accepted without being declared.
	// nil selects DefaultReservedKeys.
	ReservedKeys []string
}

// DefaultReservedKeys are the root-level meta keys every document may carry.
var DefaultReservedKeys = []string{"_id", "_ns", "_revision", "_version"}

// Declaration is the input of Declare: everything needed to describe one
// document kind.
type Declaration struct {
	Name       string
	Structure  *Nested
	Required   []string
	Defaults   map[string]DefaultSpec
	Validators map[string][]Validator
	I18n       []string
	// AuthorizedTypes closes the set of primitive types the schema may use.
	// nil selects BuiltinTypes.
	AuthorizedTypes []*Type
	Options         Options
}

// Mode selects the error raise policy of one validation call.
type Mode int

const (
	ModeDefault    Mode = iota // Use the schema's Options.Accumulate.
	ModeFailFast               // Stop at the first issue.
	ModeAccumulate             // Collect every issue.
)

// Stage tells the validator which side of the codecs the document is on.
type Stage int

const (
	StageDomain  Stage = iota // Before ToStorage: custom fields hold domain values.
	StageStorage              // After ToStorage: custom fields hold storage values.
)

// ValidateOpt bundles per-call validation options.
type ValidateOpt struct {
	Mode           Mode
	Stage          Stage
	SkipRequired   bool
	SkipValidators bool
}

func pickValidateOpt(opts []ValidateOpt) ValidateOpt {
	if len(opts) == 0 {
		return ValidateOpt{}
	}
	return opts[0]
}
