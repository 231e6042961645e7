// Package rules provides reusable field validators for document kinds. Each
// rule is a docskema.Validator: a named predicate on one field value.
// Rules ignore values of types they do not apply to, so a length rule on a
// number never fails; combine with a typed structure to reject those.
package rules

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/reoring/docskema"
)

// Op defines simple comparison operators for Compare and If.
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

func (op Op) String() string {
	switch op {
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	}
	return "?"
}

// ParseOp parses the textual operator forms accepted by schema files.
func ParseOp(s string) (Op, bool) {
	for _, op := range []Op{Eq, Ne, Lt, Le, Gt, Ge} {
		if op.String() == s {
			return op, true
		}
	}
	switch s {
	case "eq":
		return Eq, true
	case "ne":
		return Ne, true
	case "lt":
		return Lt, true
	case "le":
		return Le, true
	case "gt":
		return Gt, true
	case "ge":
		return Ge, true
	}
	return 0, false
}

// Func wraps a plain predicate.
func Func(name string, fn func(v any) bool) docskema.Validator {
	return docskema.Validator{Name: name, Check: func(v any) (bool, error) { return fn(v), nil }}
}

// Compare checks value op want. Numbers compare by value across int and
// float kinds; Eq and Ne fall back to deep equality.
func Compare(op Op, want any) docskema.Validator {
	return docskema.Validator{
		Name: fmt.Sprintf("compare(%s %v)", op, want),
		Check: func(v any) (bool, error) {
			if compare(v, op, want) {
				return true, nil
			}
			return false, fmt.Errorf("%v is not %s %v", v, op, want)
		},
	}
}

// MinLen requires strings (in runes), lists and maps to hold at least n items.
func MinLen(n int) docskema.Validator {
	return docskema.Validator{
		Name: fmt.Sprintf("minlen(%d)", n),
		Check: func(v any) (bool, error) {
			l, ok := length(v)
			if !ok || l >= n {
				return true, nil
			}
			return false, fmt.Errorf("length %d is below the minimum %d", l, n)
		},
	}
}

// MaxLen requires strings (in runes), lists and maps to hold at most n items.
func MaxLen(n int) docskema.Validator {
	return docskema.Validator{
		Name: fmt.Sprintf("maxlen(%d)", n),
		Check: func(v any) (bool, error) {
			l, ok := length(v)
			if !ok || l <= n {
				return true, nil
			}
			return false, fmt.Errorf("length %d exceeds the maximum %d", l, n)
		},
	}
}

// Min requires numbers to be >= min.
func Min(min float64) docskema.Validator {
	return docskema.Validator{
		Name: fmt.Sprintf("min(%v)", min),
		Check: func(v any) (bool, error) {
			f, ok := toFloat(v)
			if !ok || f >= min {
				return true, nil
			}
			return false, fmt.Errorf("%v is below the minimum %v", v, min)
		},
	}
}

// Max requires numbers to be <= max.
func Max(max float64) docskema.Validator {
	return docskema.Validator{
		Name: fmt.Sprintf("max(%v)", max),
		Check: func(v any) (bool, error) {
			f, ok := toFloat(v)
			if !ok || f <= max {
				return true, nil
			}
			return false, fmt.Errorf("%v exceeds the maximum %v", v, max)
		},
	}
}

// Pattern requires strings to match re. It panics on an invalid expression;
// use PatternE for expressions coming from configuration.
func Pattern(re string) docskema.Validator {
	v, err := PatternE(re)
	if err != nil {
		panic(err)
	}
	return v
}

// PatternE is Pattern returning the compile error.
func PatternE(expr string) (docskema.Validator, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return docskema.Validator{}, fmt.Errorf("rules: pattern %q: %w", expr, err)
	}
	return docskema.Validator{
		Name: "pattern(" + expr + ")",
		Check: func(v any) (bool, error) {
			s, ok := v.(string)
			if !ok || re.MatchString(s) {
				return true, nil
			}
			return false, fmt.Errorf("%q does not match %s", s, expr)
		},
	}, nil
}

// Enum requires the value to equal one of the allowed values. Numbers match
// by value regardless of their Go kind.
func Enum(allowed ...any) docskema.Validator {
	parts := make([]string, len(allowed))
	for i, a := range allowed {
		parts[i] = fmt.Sprint(a)
	}
	list := strings.Join(parts, ", ")
	return docskema.Validator{
		Name: "enum(" + list + ")",
		Check: func(v any) (bool, error) {
			for _, a := range allowed {
				if compare(v, Eq, a) {
					return true, nil
				}
			}
			return false, fmt.Errorf("%v is not one of [%s]", v, list)
		},
	}
}

// NonEmpty rejects empty strings, lists and maps.
func NonEmpty() docskema.Validator {
	return docskema.Validator{
		Name: "nonempty",
		Check: func(v any) (bool, error) {
			l, ok := length(v)
			if !ok || l > 0 {
				return true, nil
			}
			return false, fmt.Errorf("value is empty")
		},
	}
}

// UniqueBy requires the sub-documents of a list to carry distinct values at
// the dotted path key. Elements without the key are ignored.
func UniqueBy(key string) docskema.Validator {
	return docskema.Validator{
		Name: "uniqueby(" + key + ")",
		Check: func(v any) (bool, error) {
			rv := reflect.ValueOf(v)
			if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				return true, nil
			}
			seen := map[string]int{}
			for i := 0; i < rv.Len(); i++ {
				m, ok := rv.Index(i).Interface().(map[string]any)
				if !ok {
					continue
				}
				kv, ok := docskema.GetPath(m, key)
				if !ok {
					continue
				}
				k := fmt.Sprint(kv)
				if j, dup := seen[k]; dup {
					return false, fmt.Errorf("items %d and %d share %s=%s", j, i, key, k)
				}
				seen[k] = i
			}
			return true, nil
		},
	}
}

// Conditional gates rules on a comparison of the field value.
type Conditional struct {
	op   Op
	want any
}

// If builds a conditional on the field value.
func If(op Op, want any) Conditional { return Conditional{op: op, want: want} }

// Then runs rules only when the condition holds.
func (c Conditional) Then(rules ...docskema.Validator) docskema.Validator {
	inner := And(rules...)
	return docskema.Validator{
		Name: fmt.Sprintf("if(%s %v)", c.op, c.want),
		Check: func(v any) (bool, error) {
			if !compare(v, c.op, c.want) {
				return true, nil
			}
			return inner.Check(v)
		},
	}
}

// And passes when every rule passes and reports the first failure.
func And(rules ...docskema.Validator) docskema.Validator {
	return docskema.Validator{
		Name: "and(" + names(rules) + ")",
		Check: func(v any) (bool, error) {
			for _, r := range rules {
				if r.Check == nil {
					continue
				}
				ok, err := r.Check(v)
				if err != nil || !ok {
					return false, failure(r, v, err)
				}
			}
			return true, nil
		},
	}
}

// Or passes when any rule passes. When all fail, the first failure is
// reported.
func Or(rules ...docskema.Validator) docskema.Validator {
	return docskema.Validator{
		Name: "or(" + names(rules) + ")",
		Check: func(v any) (bool, error) {
			var first error
			for _, r := range rules {
				if r.Check == nil {
					continue
				}
				ok, err := r.Check(v)
				if err == nil && ok {
					return true, nil
				}
				if first == nil {
					first = failure(r, v, err)
				}
			}
			if first == nil {
				return true, nil
			}
			return false, first
		},
	}
}

// ------- helpers -------

func failure(r docskema.Validator, v any, err error) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("%v does not pass %s", v, r.Name)
}

func names(rules []docskema.Validator) string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Name
	}
	return strings.Join(out, ", ")
}

func length(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

func compare(cur any, op Op, want any) bool {
	a, aok := toFloat(cur)
	b, bok := toFloat(want)
	if aok && bok {
		switch op {
		case Eq:
			return a == b
		case Ne:
			return a != b
		case Lt:
			return a < b
		case Le:
			return a <= b
		case Gt:
			return a > b
		case Ge:
			return a >= b
		}
	}
	switch op {
	case Eq:
		return reflect.DeepEqual(cur, want)
	case Ne:
		return !reflect.DeepEqual(cur, want)
	case Lt, Le, Gt, Ge:
		cs, cok := cur.(string)
		ws, wok := want.(string)
		if !cok || !wok {
			return false
		}
		switch op {
		case Lt:
			return cs < ws
		case Le:
			return cs <= ws
		case Gt:
			return cs > ws
		case Ge:
			return cs >= ws
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
