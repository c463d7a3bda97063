package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// the offending type id).
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "dangling_ref":
			return "未知の型への参照です"
		case "duplicate_type_id":
			return "異なる型が同じ型IDを共有しています"
		case "malformed_polymorphic":
			return "多相サブタイプがオブジェクトではありません"
		case "unsupported_descriptor":
			return "未対応のディスクリプタ形状です"
		case "invalid_root":
			return "ルート型を変換できません"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "dangling_ref":
			return "reference to unknown type"
		case "duplicate_type_id":
			return "distinct types share one type id"
		case "malformed_polymorphic":
			return "polymorphic subtype is not an object"
		case "unsupported_descriptor":
			return "unsupported descriptor shape"
		case "invalid_root":
			return "root type cannot be converted"
		case "parse_error":
			return "parse error"
		}
	}
	return code
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
