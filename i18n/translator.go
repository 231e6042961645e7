package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "unknown_field":
			msg = "スキーマに存在しないフィールドです"
		case "missing_field":
			msg = "フィールドが不足しています"
		case "invalid_container":
			msg = "コンテナの種類が不正です"
		case "invalid_language":
			msg = "言語タグが不正です"
		case "type_mismatch":
			msg = "型が不正です"
		case "unauthorized_type":
			msg = "許可されていない型です"
		case "required":
			msg = "必須フィールドが空です"
		case "validator_failed":
			msg = "バリデーションに失敗しました"
		case "custom_type_mismatch":
			msg = "カスタム型の契約に違反しています"
		}
	default: // "en"
		switch code {
		case "unknown_field":
			msg = "field not declared in the schema"
		case "missing_field":
			msg = "declared field is missing"
		case "invalid_container":
			msg = "invalid container kind"
		case "invalid_language":
			msg = "invalid language tag"
		case "type_mismatch":
			msg = "type mismatch"
		case "unauthorized_type":
			msg = "unauthorized type"
		case "required":
			msg = "required field is empty"
		case "validator_failed":
			msg = "validator failed"
		case "custom_type_mismatch":
			msg = "custom type contract violated"
		}
	}
	if msg == "" {
		return code
	}
	if exp := data["expected"]; exp != "" {
		msg += " (expected " + exp + ")"
	}
	return msg
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
