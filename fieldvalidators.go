package docskema

import "fmt"

// fieldValidators runs the predicates declared on each path against every
// non-null value the path resolves to. Predicates on one path run in
// declaration order and stop at the first failure. On a language map field
// each translation is checked on its own.
func (v *validation) fieldValidators(doc Document) {
	for _, p := range sortedPaths(v.s.validators) {
		_, i18n := v.s.nodes[p].(*LangMap)
		for _, r := range resolveAll(doc, SplitPath(p), "", nil) {
			if r.value == nil {
				continue
			}
			if !i18n {
				v.runPredicates(r.path, r.value, v.s.validators[p])
			} else if entries, ok := mapEntries(r.value); ok {
				for _, e := range entries {
					if e.val != nil {
						v.runPredicates(r.path, e.val, v.s.validators[p])
					}
					if v.stopped() {
						return
					}
				}
			}
			if v.stopped() {
				return
			}
		}
	}
}

func (v *validation) runPredicates(path string, val any, preds []Validator) {
	for _, pv := range preds {
		ok, err := callPredicate(pv, val)
		if err == nil && ok {
			continue
		}
		it := Issue{Path: path, Code: CodeValidatorFailed, Rule: pv.Name, Cause: err}
		if err != nil {
			it.Message = err.Error()
		} else {
			it.Message = fmt.Sprintf("%s does not pass the validator %s", path, validatorName(pv))
		}
		v.add(it)
		return
	}
}

// callPredicate runs one predicate. A panic is reported as a failure.
func callPredicate(pv Validator, val any) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("validator %s panicked: %v", validatorName(pv), r)
		}
	}()
	return pv.Check(val)
}

func validatorName(pv Validator) string {
	if pv.Name == "" {
		return "<anonymous>"
	}
	return pv.Name
}
