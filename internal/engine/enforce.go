package engine

import "strconv"

// DuplicatePolicy controls what happens when an object repeats a key.
type DuplicatePolicy int

const (
	DupIgnore DuplicatePolicy = iota
	DupWarn
	DupError
)

// Issue codes reported by the enforcing source.
const (
	CodeDuplicateKey = "duplicate_key"
	CodeMaxDepth     = "max_depth"
)

// SimpleIssue is a minimal issue representation used by internal helpers.
// Path is dotted, with array positions as decimal segments.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.Path + ": " + e.Message }

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicatePolicy
	MaxDepth    int
	// IssueSink receives non-fatal issues (duplicate keys under DupWarn).
	IssueSink func(SimpleIssue)
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	pendingKey   string
	nextIndex    int
}

// WrapWithEnforcement returns a TokenSource that applies the duplicate key
// policy and the maximum nesting depth while tokens stream through.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if opt.OnDuplicate == DupIgnore && opt.MaxDepth <= 0 {
		return inner
	}
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		path := e.valuePath()
		if e.opt.MaxDepth > 0 && len(e.stack)+1 > e.opt.MaxDepth {
			return Token{}, IssueError{SimpleIssue{Code: CodeMaxDepth, Path: path, Message: "max depth " + strconv.Itoa(e.opt.MaxDepth) + " exceeded"}}
		}
		f := frame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f = frame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path}
		}
		e.stack = append(e.stack, f)
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate != DupIgnore {
				si := SimpleIssue{Code: CodeDuplicateKey, Path: join(top.path, tok.String), Message: "key '" + tok.String + "' duplicated"}
				if e.opt.OnDuplicate == DupError {
					return Token{}, IssueError{si}
				}
				if e.opt.IssueSink != nil {
					e.opt.IssueSink(si)
				}
			}
			top.keys[tok.String] = struct{}{}
			top.expectingKey = false
			top.pendingKey = tok.String
		}
		return tok, nil
	default:
		e.valuePath()
	}
	return tok, nil
}

// valuePath returns the path of the value about to start and advances the
// enclosing container past it.
func (e *enforcingTokenSource) valuePath() string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := &e.stack[n-1]
	if top.kind == kindArray {
		p := join(top.path, strconv.Itoa(top.nextIndex))
		top.nextIndex++
		return p
	}
	p := join(top.path, top.pendingKey)
	top.expectingKey = true
	top.pendingKey = ""
	return p
}

func join(base, seg string) string {
	if base == "" {
		return seg
	}
	return base + "." + seg
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
