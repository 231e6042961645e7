package docskema_test

import (
	"testing"

	"github.com/reoring/docskema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func pageSchema(t *testing.T, accumulate bool) *docskema.Schema {
	return declare(t, docskema.Declaration{
		Name:      "page",
		Structure: obj(f("slug", str), f("title", str), f("meta", obj(f("views", num)))),
		Required:  []string{"slug"},
		Defaults:  map[string]docskema.DefaultSpec{"meta.views": docskema.Value(0)},
		I18n:      []string{"title"},
		Options:   docskema.Options{Accumulate: accumulate},
	})
}

func TestDoc_NewAppliesDefaultsWrapDoesNot(t *testing.T) {
	s := pageSchema(t, false)
	d := s.New(docskema.Document{"slug": "home"})
	v, ok := d.Get("meta.views")
	require.True(t, ok)
	assert.Equal(t, 0, v)
	assert.Same(t, s, d.Schema())
	require.NoError(t, d.Validate())

	raw := docskema.Document{"slug": "home", "title": map[string]any{}, "meta": map[string]any{"views": nil}}
	w := s.Wrap(raw)
	v, _ = w.Get("meta.views")
	assert.Nil(t, v)
	require.NoError(t, w.Set("meta.views", 3))
	assert.Equal(t, 3, raw["meta"].(map[string]any)["views"], "Wrap does not copy")

	assert.Error(t, w.Set("meta.$str", 1))
	assert.Equal(t, docskema.Document{}, s.Wrap(nil).Data())
}

func TestDoc_ValidateRaisesOrRecords(t *testing.T) {
	raising := pageSchema(t, false).New(nil)
	err := raising.Validate()
	iss := issues(t, err)
	assert.Equal(t, "slug", iss[0].Path)
	assert.Empty(t, raising.Errors)

	recording := pageSchema(t, true).New(docskema.Document{"extra": 1})
	require.NoError(t, recording.Validate())
	assert.False(t, recording.Valid())
	require.Len(t, recording.Errors, 1)
	assert.Equal(t, docskema.CodeUnknownField, recording.Errors[0].Code)

	delete(recording.Data(), "extra")
	require.NoError(t, recording.Set("slug", "s"))
	require.NoError(t, recording.Validate())
	assert.True(t, recording.Valid())

	// an explicit mode returns instead of recording
	delete(recording.Data(), "slug")
	err = recording.Validate(docskema.ValidateOpt{Mode: docskema.ModeAccumulate})
	assert.Len(t, issues(t, err), 1)
	assert.Empty(t, recording.Errors)
}

func TestDoc_Localized(t *testing.T) {
	s := pageSchema(t, false)
	d := s.New(docskema.Document{"slug": "home"})
	require.NoError(t, d.SetLocalized("title", language.English, "Welcome"))
	require.NoError(t, d.SetLocalized("title", language.French, "Bienvenue"))
	require.NoError(t, d.Validate())

	got, ok := d.Localized("title", docskema.Localizer{Current: language.French, Fallback: language.English})
	require.True(t, ok)
	assert.Equal(t, "Bienvenue", got)

	got, ok = d.Localized("title", docskema.Localizer{Current: language.German, Fallback: language.English})
	require.True(t, ok)
	assert.Equal(t, "Welcome", got)

	_, ok = d.Localized("slug", docskema.Localizer{Current: language.English})
	assert.False(t, ok)
	require.ErrorIs(t, d.SetLocalized("slug", language.English, "x"), docskema.ErrNotI18n)

	w := s.Wrap(docskema.Document{"slug": "x", "title": nil, "meta": map[string]any{}})
	require.NoError(t, w.SetLocalized("title", language.Japanese, "ようこそ"))
	assert.Equal(t, map[string]any{"ja": "ようこそ"}, w.Data()["title"])
}

func TestLocalizer_Pick(t *testing.T) {
	m := map[string]any{"en": "color", "en-GB": "colour", "pt": "cor", "bad tag": "x"}
	cases := []struct {
		name  string
		loc   docskema.Localizer
		want  any
		found bool
	}{
		{"exact", docskema.Localizer{Current: language.BritishEnglish}, "colour", true},
		{"base language", docskema.Localizer{Current: language.AmericanEnglish}, "color", true},
		{"regional match", docskema.Localizer{Current: language.BrazilianPortuguese}, "cor", true},
		{"fallback", docskema.Localizer{Current: language.Korean, Fallback: language.English}, "color", true},
		{"no match", docskema.Localizer{Current: language.Korean}, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.loc.Pick(m)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, got)
		})
	}
	_, ok := docskema.Localizer{Current: language.English}.Pick(nil)
	assert.False(t, ok)
}
