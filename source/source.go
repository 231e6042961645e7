// Package source reads and writes documents as JSON.
//
// Decoding goes through a go-json token stream so duplicate keys, nesting
// depth and input size can be enforced before the document reaches a
// schema. Numbers decode to int64 when integral and float64 otherwise, which
// keeps them distinguishable for the int and float primitive types.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/reoring/docskema"
	eng "github.com/reoring/docskema/internal/engine"
)

// Severity controls how a duplicate object key is handled.
type Severity int

const (
	Ignore Severity = iota // Keep the last value silently.
	Warn                   // Keep the last value and report through Options.Warn.
	Error                  // Reject the input.
)

// Issue codes produced while decoding.
const (
	CodeParseError   = "parse_error"
	CodeDuplicateKey = eng.CodeDuplicateKey
	CodeMaxDepth     = eng.CodeMaxDepth
	CodeTruncated    = "truncated"
)

// Options controls decoding and encoding.
type Options struct {
	OnDuplicateKey Severity
	MaxDepth       int   // 0 means unlimited.
	MaxBytes       int64 // 0 means unlimited.
	// ExtendedJSON maps {"$oid": ...} and {"$date": ...} wrappers to
	// ObjectID and time.Time values on decode and back on encode.
	ExtendedJSON bool
	// Warn receives duplicate-key issues under the Warn severity.
	Warn func(docskema.Issue)
	// Indent pretty-prints encoded output when non-empty.
	Indent string
}

// Decode reads one JSON object from r.
func Decode(r io.Reader, opt Options) (docskema.Document, error) {
	if opt.MaxBytes > 0 {
		b, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return nil, err
		}
		if int64(len(b)) > opt.MaxBytes {
			return nil, docskema.Issues{{
				Code:    CodeTruncated,
				Message: fmt.Sprintf("input exceeds %d bytes", opt.MaxBytes),
			}}
		}
		r = bytes.NewReader(b)
	}
	src := eng.WrapWithEnforcement(eng.NewReader(r), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		IssueSink:   warnSink(opt.Warn),
	})
	v, err := eng.Decode(src)
	if err != nil {
		return nil, toIssues(err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, docskema.Issues{docskema.IssueAt("", docskema.CodeInvalidContainer, "", map[string]any{
			"expected": "object",
			"got":      jsonKind(v),
		})}
	}
	if opt.ExtendedJSON {
		m = fromExtended(m).(map[string]any)
	}
	return m, nil
}

// DecodeBytes reads one JSON object from b.
func DecodeBytes(b []byte, opt Options) (docskema.Document, error) {
	return Decode(bytes.NewReader(b), opt)
}

func toEngineDup(s Severity) eng.DuplicatePolicy {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func warnSink(fn func(docskema.Issue)) func(eng.SimpleIssue) {
	if fn == nil {
		return nil
	}
	return func(si eng.SimpleIssue) { fn(fromEngineIssue(si)) }
}

func fromEngineIssue(si eng.SimpleIssue) docskema.Issue {
	return docskema.Issue{Path: si.Path, Code: si.Code, Message: si.Message}
}

func toIssues(err error) error {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return docskema.Issues{fromEngineIssue(ie.SimpleIssue)}
	}
	return docskema.Issues{{Code: CodeParseError, Message: err.Error(), Cause: err}}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	return "number"
}
