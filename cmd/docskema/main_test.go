package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaFile = "testdata/product.yaml"

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestValidate(t *testing.T) {
	code, out, _ := runCLI(t, "", "validate", "-schema", schemaFile, "testdata/pen.json")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "testdata/pen.json: ok\n", out)

	code, out, _ = runCLI(t, `{"name":"x","price":"1","tags":[],"title":{},"extra":1}`,
		"validate", "-schema", schemaFile, "-accumulate")
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out, "unknown_field at extra")
	assert.Contains(t, out, "validator_failed at name")
	assert.NotContains(t, out, "required")
}

func TestValidate_Select(t *testing.T) {
	in := `{"data":{"item":{"name":"pen","price":"2","tags":[],"title":{}}}}`
	code, out, _ := runCLI(t, in, "validate", "-schema", schemaFile, "-select", "data.item")
	assert.Equal(t, exitOK, code, out)

	code, _, errOut := runCLI(t, in, "validate", "-schema", schemaFile, "-select", "data.nope")
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, errOut, `nothing at "data.nope"`)
}

func TestValidate_StorageStage(t *testing.T) {
	in := `{"name":"pen","price":1.5,"tags":[],"title":[{"lang":"en","value":"Pen"}]}`
	code, out, _ := runCLI(t, in, "validate", "-schema", schemaFile, "-stage", "storage")
	assert.Equal(t, exitOK, code, out)
}

func TestSkeleton(t *testing.T) {
	code, out, _ := runCLI(t, "", "skeleton", "-schema", schemaFile)
	require.Equal(t, exitOK, code)
	assert.JSONEq(t, `{"name":null,"price":null,"tags":[],"title":{}}`, out)
}

func TestNamespace(t *testing.T) {
	code, out, _ := runCLI(t, "", "namespace", "-schema", schemaFile, "-kind", "product")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "name\tstr\nprice\tcustom(decimal)\ntags\tlist\ntitle\tlang_map\n", out)

	code, _, errOut := runCLI(t, "", "namespace", "-schema", schemaFile, "-kind", "nope")
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, errOut, "unknown kind")
}

func TestJSONSchema(t *testing.T) {
	code, out, _ := runCLI(t, "", "jsonschema", "-schema", schemaFile)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, `"title": "product"`)
}

func TestConvert(t *testing.T) {
	code, out, _ := runCLI(t, "", "convert", "-schema", schemaFile, "-to", "storage", "testdata/pen.json")
	require.Equal(t, exitOK, code)
	assert.JSONEq(t, `{"name":"pen","price":1.5,"tags":["office"],"title":[{"lang":"en","value":"Pen"}]}`, out)

	code, out, _ = runCLI(t, out, "convert", "-schema", schemaFile, "-to", "domain")
	require.Equal(t, exitOK, code)
	assert.JSONEq(t, `{"name":"pen","price":"1.5","tags":["office"],"title":{"en":"Pen"}}`, out)
}

func TestDumpAndVerbose(t *testing.T) {
	code, _, errOut := runCLI(t, `{"name":"pen","name":"pen","price":null,"tags":[],"title":{}}`,
		"validate", "-schema", schemaFile, "-dump", "-v")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, errOut, "(map[string]interface {})")
	assert.Contains(t, errOut, "duplicate key")
	assert.Contains(t, errOut, "schema loaded")
}

func TestUsage(t *testing.T) {
	code, _, errOut := runCLI(t, "")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "Usage:")

	code, _, _ = runCLI(t, "", "validate")
	assert.Equal(t, exitUsage, code)
}
