package docskema

import "golang.org/x/text/language"

// Keys of one entry in the storage form of a language map.
const (
	storageLangKey  = "lang"
	storageValueKey = "value"
)

// Localizer selects one translation of a language map. Current and Fallback
// are explicit; no language state lives in documents or schemas.
type Localizer struct {
	Current  language.Tag
	Fallback language.Tag
}

// Pick returns the translation for Current, or for Fallback when Current has
// none. Exact keys win; otherwise keys are matched as BCP 47 tags, so "en"
// serves "en-US". Keys that are not valid tags are ignored.
func (l Localizer) Pick(m map[string]any) (any, bool) {
	if len(m) == 0 {
		return nil, false
	}
	keys := sortedKeys(m)
	tags := make([]language.Tag, 0, len(keys))
	tagKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		t, err := language.Parse(k)
		if err != nil {
			continue
		}
		tags = append(tags, t)
		tagKeys = append(tagKeys, k)
	}
	for _, want := range []language.Tag{l.Current, l.Fallback} {
		if want == language.Und {
			continue
		}
		if v, ok := m[want.String()]; ok {
			return v, true
		}
		if len(tags) == 0 {
			continue
		}
		_, idx, conf := language.NewMatcher(tags).Match(want)
		if conf != language.No && idx >= 0 && idx < len(tagKeys) {
			return m[tagKeys[idx]], true
		}
	}
	return nil, false
}
