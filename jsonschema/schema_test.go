package jsonschema

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullable_TypeList(t *testing.T) {
	s := (&Schema{Type: "string"}).Nullable()
	assert.Equal(t, []string{"string", "null"}, s.Type)
	s.Nullable()
	assert.Equal(t, []string{"string", "null"}, s.Type)
	s.NonNull()
	assert.Equal(t, "string", s.Type)
}

func TestNullable_EnumAndAnyOf(t *testing.T) {
	e := (&Schema{Enum: []any{1, "a"}}).Nullable()
	assert.Equal(t, []any{1, "a", nil}, e.Enum)
	assert.Equal(t, []any{1, "a"}, e.NonNull().Enum)

	a := (&Schema{AnyOf: []*Schema{{Type: "integer"}}}).Nullable()
	require.Len(t, a.AnyOf, 2)
	assert.Len(t, a.NonNull().AnyOf, 1)
}

func TestNullable_AnyValueUnchanged(t *testing.T) {
	s := (&Schema{}).Nullable()
	assert.Nil(t, s.Type)
}

func TestMarshal_OmitsEmpty(t *testing.T) {
	b, err := json.Marshal(&Schema{Type: "array", Items: &Schema{Type: "string"}, MinItems: Ptr(1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"array","items":{"type":"string"},"minItems":1}`, string(b))
}
