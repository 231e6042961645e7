package codec

import "github.com/reoring/docskema"

// Identity returns a codec that stores values unchanged. Both sides are
// checked against t.
func Identity(name string, t *docskema.Type) docskema.Codec {
	id := func(v any) (any, error) { return v, nil }
	return Func[any, any](name, t, t, id, id)
}
