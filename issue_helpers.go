package docskema

import "github.com/reoring/docskema/i18n"

// IssueAt creates an Issue at the given path with a translated message.
// This is a convenience helper to improve readability at call sites with many parameters.
func IssueAt(path, code, hint string, params map[string]any) Issue {
	var data map[string]string
	if exp, ok := params["expected"].(string); ok {
		data = map[string]string{"expected": exp}
	}
	return Issue{Path: path, Code: code, Message: i18n.T(code, data), Hint: hint, Params: params}
}
