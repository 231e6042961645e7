package docskema_test

import (
	"testing"

	"github.com/reoring/docskema"
	"github.com/reoring/docskema/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func richSchema(t *testing.T) *docskema.Schema {
	return declare(t, docskema.Declaration{
		Name: "rich",
		Structure: obj(
			f("title", str),
			f("body", str),
			f("count", num),
			f("ratio", docskema.Prim(docskema.TypeNumber)),
			f("tags", list(str)),
			f("any", docskema.AnyList()),
			f("loose", &docskema.AnyOf{}),
			f("pair", docskema.TupleOf(str, num)),
			f("slots", docskema.TupleOf(obj(f("a", str)), list(str))),
			f("scores", docskema.MapOf(docskema.TypeString, num)),
			f("price", docskema.CustomOf(codec.Decimal())),
			f("meta", docskema.CustomOf(codec.JSONObject())),
			f("kind", docskema.Is("a", "b")),
			f("either", docskema.Or(docskema.TypeString, docskema.TypeInt)),
			f("author", obj(f("name", str), f("address", obj(f("city", str))))),
			f("items", list(obj(f("sku", str), f("qty", num)))),
		),
		Required: []string{"title"},
		Defaults: map[string]docskema.DefaultSpec{
			"count":       docskema.Value(0),
			"tags":        docskema.Value([]any{"new"}),
			"author.name": docskema.Value("anon"),
		},
		I18n: []string{"body"},
	})
}

func TestGenerate_EmptyValues(t *testing.T) {
	s := richSchema(t)
	got := s.Generate(nil)
	want := docskema.Document{
		"title":  nil,
		"body":   map[string]any{},
		"count":  nil,
		"ratio":  nil,
		"tags":   []any{},
		"any":    []any{},
		"loose":  nil,
		"pair":   []any{nil, nil},
		"slots":  []any{nil, nil},
		"scores": map[string]any{},
		"price":  nil,
		"meta":   "{}",
		"kind":   nil,
		"either": nil,
		"author": map[string]any{"name": nil, "address": map[string]any{"city": nil}},
		"items":  []any{},
	}
	assert.Equal(t, want, got)
}

func TestSkeleton_FooBarExample(t *testing.T) {
	s := declare(t, docskema.Declaration{
		Name:      "k",
		Structure: obj(f("foo", obj(f("bar", num)))),
		Required:  []string{"foo.bar"},
	})
	doc := s.Skeleton(nil)
	assert.Equal(t, docskema.Document{"foo": map[string]any{"bar": nil}}, doc)

	iss := issues(t, s.Validate(doc))
	require.Len(t, iss, 1)
	assert.Equal(t, "foo.bar", iss[0].Path)
	assert.Equal(t, docskema.CodeRequired, iss[0].Code)

	require.NoError(t, docskema.SetPath(doc, "foo.bar", 5))
	require.NoError(t, s.Validate(doc))
}

func TestSkeleton_IsStructurallyValid(t *testing.T) {
	s := richSchema(t)
	doc := s.Skeleton(nil)
	require.NoError(t, s.Validate(doc, docskema.ValidateOpt{Mode: docskema.ModeAccumulate, SkipRequired: true}))

	iss := issues(t, s.Validate(doc, accumulate()))
	require.Len(t, iss, 1)
	assert.Equal(t, "title", iss[0].Path)
}

func TestSkeleton_PartialIsCopiedAndCompleted(t *testing.T) {
	s := richSchema(t)
	partial := docskema.Document{
		"title":  "hello",
		"author": map[string]any{"address": map[string]any{}},
		"tags":   []any{"x"},
	}
	doc := s.Skeleton(partial)
	assert.Equal(t, "hello", doc["title"])
	assert.Equal(t, []any{"x"}, doc["tags"], "non-empty values keep precedence over defaults")
	assert.Equal(t, map[string]any{"name": "anon", "address": map[string]any{"city": nil}}, doc["author"])

	assert.Equal(t, docskema.Document{
		"title":  "hello",
		"author": map[string]any{"address": map[string]any{}},
		"tags":   []any{"x"},
	}, partial)
	require.NoError(t, s.Validate(doc))
}

func TestSkeleton_NullSubDocumentIsRebuilt(t *testing.T) {
	s := declare(t, docskema.Declaration{Name: "k", Structure: obj(f("a", obj(f("b", num))))})
	assert.Equal(t, docskema.Document{"a": map[string]any{"b": nil}}, s.Skeleton(docskema.Document{"a": nil}))
}

func TestSkeleton_TypedMapEntriesCompleted(t *testing.T) {
	s := declare(t, docskema.Declaration{
		Name:      "k",
		Structure: obj(f("users", docskema.MapOf(docskema.TypeString, obj(f("name", str), f("age", num))))),
	})
	doc := s.Skeleton(docskema.Document{"users": map[string]any{"u1": map[string]any{"name": "x"}, "u2": nil}})
	assert.Equal(t, map[string]any{
		"u1": map[string]any{"name": "x", "age": nil},
		"u2": map[string]any{"name": nil, "age": nil},
	}, doc["users"])
}

func TestSkeleton_AntiAliasing(t *testing.T) {
	s := richSchema(t)
	a := s.Skeleton(nil)
	b := s.Skeleton(nil)
	a["tags"] = append(a["tags"].([]any), "mutated")
	a["tags"].([]any)[0] = "changed"
	assert.Equal(t, []any{"new"}, b["tags"])
	assert.Equal(t, []any{"new"}, s.Defaults()["tags"].Constant())
}

func TestSkeleton_FactoryCalledPerDocument(t *testing.T) {
	calls := 0
	s := declare(t, docskema.Declaration{
		Name:      "k",
		Structure: obj(f("seq", num)),
		Defaults: map[string]docskema.DefaultSpec{"seq": docskema.Factory(func() any {
			calls++
			return calls
		})},
	})
	assert.Equal(t, 1, s.Skeleton(nil)["seq"])
	assert.Equal(t, 2, s.Skeleton(nil)["seq"])
}

func TestInjectDefaults_Idempotent(t *testing.T) {
	s := richSchema(t)
	once := s.InjectDefaults(s.Generate(nil))
	twice := s.InjectDefaults(docskema.DeepCopy(once))
	assert.Equal(t, once, twice)
}

func TestInjectDefaults_CreatesIntermediates(t *testing.T) {
	s := richSchema(t)
	doc := s.InjectDefaults(docskema.Document{})
	assert.Equal(t, docskema.Document{
		"count":  0,
		"tags":   []any{"new"},
		"author": map[string]any{"name": "anon"},
	}, doc)

	// a non-map intermediate is left for Validate to report
	doc = s.InjectDefaults(docskema.Document{"author": "x"})
	assert.Equal(t, "x", doc["author"])
}

func TestInjectDefaults_EmptyCollectionsAreUnset(t *testing.T) {
	s := richSchema(t)
	doc := s.InjectDefaults(docskema.Document{"tags": []any{}, "count": 7})
	assert.Equal(t, []any{"new"}, doc["tags"])
	assert.Equal(t, 7, doc["count"])
}

func TestInjectDefaults_LanguageMapAssignedWhole(t *testing.T) {
	s := declare(t, docskema.Declaration{
		Name:      "k",
		Structure: obj(f("title", str)),
		I18n:      []string{"title"},
		Defaults:  map[string]docskema.DefaultSpec{"title": docskema.Value(map[string]any{"en": "Untitled", "fr": "Sans titre"})},
	})
	doc := s.Skeleton(nil)
	assert.Equal(t, map[string]any{"en": "Untitled", "fr": "Sans titre"}, doc["title"])
	require.NoError(t, s.Validate(doc))
}

func TestSkeleton_ContainerSlotsRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		node   docskema.Node
		sample any
	}{
		{"primitive", str, "x"},
		{"any of", &docskema.AnyOf{}, 3},
		{"nested", obj(f("a", str), f("b", list(num))), map[string]any{"a": "x", "b": []any{1}}},
		{"list", list(str), []any{"x", "y"}},
		{"tuple", docskema.TupleOf(str, obj(f("a", num))), []any{"x", map[string]any{"a": 1}}},
		{"typed map", docskema.MapOf(docskema.TypeString, num), map[string]any{"a": 1}},
		{"custom", docskema.CustomOf(codec.Decimal()), "1.5"},
		{"combinator", docskema.Or(docskema.TypeString, docskema.TypeInt), 7},
		{"language map", docskema.I18n(str), map[string]any{"en": "x", "fr": "y"}},
	}
	storage := docskema.ValidateOpt{Mode: docskema.ModeAccumulate, Stage: docskema.StageStorage}
	domain := docskema.ValidateOpt{Mode: docskema.ModeAccumulate, SkipRequired: true}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := declare(t, docskema.Declaration{
				Name: "k",
				Structure: obj(
					f("slot", docskema.TupleOf(tc.node, tc.node)),
					f("byKey", docskema.MapOf(docskema.TypeString, tc.node)),
				),
			})
			empty := s.Skeleton(nil)
			assert.Equal(t, []any{nil, nil}, empty["slot"])
			filled := s.Skeleton(docskema.Document{
				"slot":  []any{tc.sample, nil},
				"byKey": map[string]any{"k": tc.sample},
			})
			for _, doc := range []docskema.Document{empty, filled} {
				require.NoError(t, s.Validate(doc, domain))
				stored, err := s.ToStorage(doc)
				require.NoError(t, err)
				require.NoError(t, s.Validate(stored, storage))
				back, err := s.ToDomain(stored)
				require.NoError(t, err)
				assert.Equal(t, doc, back)
			}
		})
	}
}
