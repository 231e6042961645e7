package codec

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/reoring/docskema"
)

// JSONObject stores a JSON object given as text in its decoded map form. The
// skeleton value is "{}", which a required check treats as unset.
func JSONObject() *FuncCodec[map[string]any, string] {
	return Func("json", docskema.TypeDict, docskema.TypeString,
		decodeObject,
		func(m map[string]any) (string, error) {
			b, err := json.Marshal(m)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
	).WithEmpty(func() any { return "{}" }).WithValidate(func(s string) error {
		_, err := decodeObject(s)
		return err
	}).AsLossy()
}

func decodeObject(s string) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}
