package dsl_test

import (
	"errors"
	"testing"

	"github.com/reoring/docskema"
	"github.com/reoring/docskema/codec"
	"github.com/reoring/docskema/dsl"
	"github.com/reoring/docskema/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func blogPost() *docskema.Schema {
	return dsl.Kind("post").
		Field("title", dsl.Str()).Required().Validate(rules.MinLen(3)).
		Field("body", dsl.Str()).I18n().
		Field("tags", dsl.List(dsl.Str())).Default([]any{}).
		Field("price", dsl.Custom(codec.Decimal())).
		Field("author", dsl.Object().
			Field("name", dsl.Str()).
			Field("email", dsl.Str()).
			Node()).
		Require("author.name").
		MustBuild()
}

func TestKind_BuildsDeclaration(t *testing.T) {
	s := blogPost()
	assert.Equal(t, "post", s.Name())
	assert.Equal(t, []string{"title", "author.name"}, s.Required())
	assert.Equal(t, []string{"body"}, s.I18n())
	assert.Equal(t, []string{"author", "author.email", "author.name", "body", "price", "tags", "title"}, s.Namespace().Paths())

	n, ok := s.NodeAt("body")
	require.True(t, ok)
	assert.Equal(t, docskema.KindLangMap, n.Kind())
}

func TestKind_NewValidateFlow(t *testing.T) {
	s := blogPost()
	doc := s.New(nil)
	assert.Equal(t, []any{}, doc.Data()["tags"])

	err := doc.Validate()
	iss, ok := docskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, "title", iss[0].Path)
	assert.Equal(t, docskema.CodeRequired, iss[0].Code)

	require.NoError(t, doc.Set("title", "Hi"))
	require.NoError(t, doc.Set("author.name", "ann"))
	err = doc.Validate()
	iss, _ = docskema.AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, docskema.CodeValidatorFailed, iss[0].Code)

	require.NoError(t, doc.Set("title", "Hello"))
	require.NoError(t, doc.SetLocalized("body", language.English, "text"))
	require.NoError(t, doc.Validate())
}

func TestKind_ReplacesFieldAndExtends(t *testing.T) {
	base := dsl.Kind("base").
		Field("a", dsl.Object().Field("foo", dsl.Int()).Node()).
		Require("a.foo").
		Default("a.foo", 3).
		MustBuild()
	child := dsl.Kind("child").
		Field("b", dsl.Str()).
		Kind().
		Default("a.foo", 5).
		Extends(base).
		MustBuild()
	assert.Equal(t, docskema.Document{"a": map[string]any{"foo": 5}, "b": nil}, child.Skeleton(nil))

	o := dsl.Object().Field("x", dsl.Int()).Field("x", dsl.Str()).Node()
	require.Len(t, o.Fields, 1)
	assert.True(t, docskema.NodesEqual(dsl.Str(), o.Fields[0].Node))
}

func TestKind_DefinitionErrors(t *testing.T) {
	_, err := dsl.Kind("bad").Field("a", dsl.Str()).Require("a", "a").Build()
	require.ErrorIs(t, err, docskema.ErrDuplicateRequired)

	_, err = dsl.Kind("bad").Field("a", dsl.Str()).Kind().Default("b", 1).Build()
	require.ErrorIs(t, err, docskema.ErrPathNotInNamespace)
	var de *docskema.DefinitionError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "b", de.Path)

	_, err = dsl.Kind("bad").Field("a", dsl.Float()).Kind().Types(docskema.TypeString).Build()
	require.ErrorIs(t, err, docskema.ErrUnauthorizedType)

	assert.Panics(t, func() { dsl.Kind("bad").Field("a.b", dsl.Str()).MustBuild() })
}

func TestKind_BuildInRegistry(t *testing.T) {
	reg := docskema.NewRegistry()
	_, err := dsl.Kind("base").Field("id", dsl.Str()).Required().Kind().BuildIn(reg, "")
	require.NoError(t, err)
	s, err := dsl.Kind("user").Field("name", dsl.Str()).Kind().Accumulate().BuildIn(reg, "base")
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, s.Required())
	assert.True(t, s.Options().Accumulate)

	_, err = dsl.Kind("orphan").BuildIn(reg, "nope")
	require.ErrorIs(t, err, docskema.ErrUnknownParent)
}
