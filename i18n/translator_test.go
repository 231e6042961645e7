package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	assert.Equal(t, "type mismatch", T("type_mismatch", nil))
	assert.Equal(t, "type mismatch (expected int)", T("type_mismatch", map[string]string{"expected": "int"}))

	SetLanguage("ja")
	defer SetLanguage("en")
	assert.NotEqual(t, "type mismatch", T("type_mismatch", nil))
	assert.NotEqual(t, "required", T("required", nil))
}

func TestTranslator_UnknownCodeFallsBackToCode(t *testing.T) {
	assert.Equal(t, "no_such_code", T("no_such_code", nil))
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	assert.Equal(t, "X:required", T("required", nil))
	SetTranslator(nil)
	assert.Equal(t, "required field is empty", T("required", nil))
}
