package docskema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes.
const (
	// Structure errors.
	CodeUnknownField     = "unknown_field"
	CodeMissingField     = "missing_field"
	CodeInvalidContainer = "invalid_container"
	CodeInvalidLanguage  = "invalid_language"
	// Type errors.
	CodeTypeMismatch     = "type_mismatch"
	CodeUnauthorizedType = "unauthorized_type"
	// Constraint errors.
	CodeRequired           = "required"
	CodeValidatorFailed    = "validator_failed"
	CodeCustomTypeMismatch = "custom_type_mismatch"
)

// ErrorClass groups issue codes into the error taxonomy.
type ErrorClass int

const (
	ClassUnknown ErrorClass = iota
	ClassStructure
	ClassType
	ClassRequired
	ClassValidator
	ClassCustomType
)

func (c ErrorClass) String() string {
	switch c {
	case ClassStructure:
		return "StructureError"
	case ClassType:
		return "TypeMismatch"
	case ClassRequired:
		return "RequiredFieldMissing"
	case ClassValidator:
		return "ValidatorFailed"
	case ClassCustomType:
		return "CustomTypeMismatch"
	}
	return "Unknown"
}

// Issue is a single per-document validation entry.
type Issue struct {
	Path    string // Dotted path ("" for the document root).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: expected type, offending key, etc.
	Rule    string // Optional: validator or codec name that produced the issue.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g. {"expected": "int", "got": "string"})
	// for i18n and observability.
	Params map[string]any
}

// Class maps the issue code to its taxonomy class.
func (it Issue) Class() ErrorClass {
	switch it.Code {
	case CodeUnknownField, CodeMissingField, CodeInvalidContainer, CodeInvalidLanguage:
		return ClassStructure
	case CodeTypeMismatch, CodeUnauthorizedType:
		return ClassType
	case CodeRequired:
		return ClassRequired
	case CodeValidatorFailed:
		return ClassValidator
	case CodeCustomTypeMismatch:
		return ClassCustomType
	}
	return ClassUnknown
}

func (it Issue) String() string {
	p := it.Path
	if p == "" {
		p = "<root>"
	}
	if it.Message == "" {
		return fmt.Sprintf("%s at %s", it.Code, p)
	}
	return fmt.Sprintf("%s at %s: %s", it.Code, p, it.Message)
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].String())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Has reports whether any issue carries the given code.
func (iss Issues) Has(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// At returns the issues reported at path.
func (iss Issues) At(path string) Issues {
	var out Issues
	for _, it := range iss {
		if it.Path == path {
			out = append(out, it)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Definition error sentinels; match with errors.Is.
var (
	ErrUnauthorizedType   = errors.New("unauthorized type")
	ErrPathNotInNamespace = errors.New("path not in namespace")
	ErrDuplicateRequired  = errors.New("duplicate required path")
	ErrInvalidOperand     = errors.New("invalid combinator operand")
	ErrWildcardDefault    = errors.New("default path crosses a typed-map wildcard")
	ErrInvalidStructure   = errors.New("invalid structure")
	ErrInvalidI18n        = errors.New("invalid i18n field")
	ErrUnknownParent      = errors.New("unknown parent kind")
)

// DefinitionError reports a schema that cannot be declared. It is always
// fatal: the schema is never returned alongside it.
type DefinitionError struct {
	Schema string // Kind name, when known.
	Path   string
	Msg    string
	Err    error // One of the Err* sentinels.
}

func (e *DefinitionError) Error() string {
	b := &strings.Builder{}
	b.WriteString("docskema: definition")
	if e.Schema != "" {
		fmt.Fprintf(b, " of %q", e.Schema)
	}
	if e.Path != "" {
		fmt.Fprintf(b, " at %q", e.Path)
	}
	b.WriteString(": ")
	if e.Err != nil {
		b.WriteString(e.Err.Error())
		if e.Msg != "" {
			b.WriteString(": ")
		}
	}
	b.WriteString(e.Msg)
	return b.String()
}

func (e *DefinitionError) Unwrap() error { return e.Err }

func defErr(schema, path string, err error, format string, args ...any) *DefinitionError {
	return &DefinitionError{Schema: schema, Path: path, Err: err, Msg: fmt.Sprintf(format, args...)}
}
