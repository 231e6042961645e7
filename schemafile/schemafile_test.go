package schemafile_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/reoring/docskema"
	"github.com/reoring/docskema/schemafile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func loadBlog(t *testing.T) (*docskema.Registry, []*docskema.Schema) {
	t.Helper()
	reg := docskema.NewRegistry()
	kinds, err := schemafile.NewLoader(reg).LoadFile("testdata/blog.yaml")
	require.NoError(t, err)
	return reg, kinds
}

func TestLoadFile_DeclaresKindsInOrder(t *testing.T) {
	reg, kinds := loadBlog(t)
	require.Len(t, kinds, 2)
	assert.Equal(t, "base", kinds[0].Name())
	assert.Equal(t, "post", kinds[1].Name())
	assert.Equal(t, []string{"base", "post"}, reg.Names())
	assert.Same(t, kinds[0], kinds[1].Parent())

	ns := kinds[1].Namespace()
	for _, p := range []string{"created", "title", "pos", "scores.$str.v", "author.id", "body"} {
		assert.True(t, ns.Has(p), p)
	}
	assert.Equal(t, []string{"created", "title", "slug", "tags", "extra", "pos", "scores", "price", "state", "either", "body", "author"},
		kinds[1].Structure().Names(), "field order follows the file")
}

func TestLoadFile_SkeletonAndValidation(t *testing.T) {
	_, kinds := loadBlog(t)
	post := kinds[1]

	doc := post.New(nil)
	assert.Equal(t, "draft", doc.Data()["state"])
	assert.IsType(t, time.Time{}, doc.Data()["created"])
	id, _ := doc.Get("author.id")
	assert.IsType(t, primitive.ObjectID{}, id)

	require.NoError(t, doc.Set("title", "hello"))
	require.NoError(t, doc.Set("author.name", "ann"))
	require.NoError(t, doc.Set("tags", []any{"go"}))
	require.NoError(t, doc.Validate())

	require.NoError(t, doc.Set("slug", "Not A Slug"))
	err := doc.Validate()
	iss, ok := docskema.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, "slug", iss[0].Path)
	assert.Equal(t, docskema.CodeValidatorFailed, iss[0].Code)

	require.NoError(t, doc.Set("slug", "a-slug"))
	require.NoError(t, doc.Set("scores", map[string]any{"x": map[string]any{"v": int64(-1)}}))
	iss, _ = docskema.AsIssues(doc.Validate())
	require.Len(t, iss, 1)
	assert.Equal(t, "scores.x.v", iss[0].Path)
}

func TestLoad_ExtendsAcrossCalls(t *testing.T) {
	reg, _ := loadBlog(t)
	kinds, err := schemafile.NewLoader(reg).Load(strings.NewReader(`
name: page
extends: post
structure:
  order: int
`))
	require.NoError(t, err)
	assert.True(t, kinds[0].Namespace().Has("author.name"))
	assert.True(t, kinds[0].Namespace().Has("order"))
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"duplicate key", "name: a\nstructure:\n  x: str\n  x: int\n", `duplicate YAML key "x"`},
		{"unknown key", "name: a\nbogus: 1\n", `unknown key "bogus"`},
		{"unknown type", "name: a\nstructure:\n  x: strr\n", `unknown type "strr"`},
		{"unknown directive", "name: a\nstructure:\n  x: {$nope: str}\n", `unknown directive "$nope"`},
		{"mixed directive", "name: a\nstructure:\n  x: {$i18n: str, y: int}\n", `must be the only key`},
		{"long list", "name: a\nstructure:\n  x: [str, int]\n", `$tuple`},
		{"unknown rule", "name: a\nstructure:\n  x: str\nvalidators:\n  x: [{foo: 1}]\n", `unknown rule "foo"`},
		{"bad pattern", "name: a\nstructure:\n  x: str\nvalidators:\n  x: [{pattern: \"(\"}]\n", `pattern`},
		{"unknown factory", "name: a\nstructure:\n  x: str\ndefaults:\n  x: {$factory: nope}\n", `unknown factory "nope"`},
		{"no name", "structure:\n  x: str\n", `no name`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schemafile.NewLoader(nil).Load(strings.NewReader(tc.in))
			require.Error(t, err)
			var fe *schemafile.Error
			require.True(t, errors.As(err, &fe))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_DefinitionErrorsPassThrough(t *testing.T) {
	_, err := schemafile.NewLoader(nil).Load(strings.NewReader("name: a\nstructure:\n  x: str\nrequired: [y]\n"))
	assert.ErrorIs(t, err, docskema.ErrPathNotInNamespace)

	var de *docskema.DefinitionError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "y", de.Path)

	_, err = schemafile.NewLoader(nil).Load(strings.NewReader("name: a\nextends: missing\n"))
	assert.ErrorIs(t, err, docskema.ErrUnknownParent)
}

func TestLoad_CustomTypesAndCodecs(t *testing.T) {
	l := schemafile.NewLoader(nil)
	l.Types = docskema.NewTypeSet(docskema.TypeString)
	_, err := l.Load(strings.NewReader("name: a\nstructure:\n  x: int\n"))
	assert.ErrorContains(t, err, `unknown type "int"`)

	_, err = l.Load(strings.NewReader("name: b\nstructure:\n  x: {$custom: nope}\n"))
	assert.ErrorContains(t, err, "unknown codec")
}

func TestLoad_KindsList(t *testing.T) {
	kinds, err := schemafile.NewLoader(nil).Load(strings.NewReader(`
kinds:
  - name: tag
    structure:
      label: str
  - name: tagged
    extends: tag
    structure:
      counts: {$map: {key: str, value: int}}
`))
	require.NoError(t, err)
	require.Len(t, kinds, 2)
	assert.True(t, kinds[1].Namespace().Has("counts.$str"))
	assert.True(t, kinds[1].Namespace().Has("label"))
}
