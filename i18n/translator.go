package i18n

// Translator retrieves localized titles for error and issue codes.
// data provides optional metadata to embed in the message (for example,
// "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"empty_input":               "empty input",
		"unexpected_token":          "unexpected character",
		"invalid_literal":           "invalid literal",
		"invalid_number":            "invalid number",
		"unterminated_string":       "unterminated string",
		"newline_in_string":         "newline in string",
		"invalid_escape":            "invalid escape sequence",
		"trailing_escape":           "trailing backslash",
		"string_decode":             "undecodable string",
		"unterminated_array":        "unterminated array",
		"expected_item":             "array item expected",
		"expected_comma_or_bracket": "',' or ']' expected",
		"unterminated_object":       "unterminated object",
		"expected_key":              "property name expected",
		"missing_colon":             "':' expected",
		"expected_value":            "property value expected",
		"expected_comma_or_brace":   "',' or '}' expected",
		"extra_data":                "extra data",
		"max_depth":                 "nesting too deep",
		"too_large":                 "input too large",
		"duplicate_key":             "duplicate key",
		"not_encodable":             "not encodable",
		"non_string_key":            "non-string key",
		"self_reference":            "self reference",
		"truncated":                 "truncated",
	},
	"ja": {
		"empty_input":               "入力が空です",
		"unexpected_token":          "予期しない文字です",
		"invalid_literal":           "リテラルが不正です",
		"invalid_number":            "数値が不正です",
		"unterminated_string":       "文字列が閉じられていません",
		"newline_in_string":         "文字列中に改行があります",
		"invalid_escape":            "エスケープシーケンスが不正です",
		"trailing_escape":           "末尾にバックスラッシュがあります",
		"string_decode":             "文字列をデコードできません",
		"unterminated_array":        "配列が閉じられていません",
		"expected_item":             "配列の要素が必要です",
		"expected_comma_or_bracket": "',' または ']' が必要です",
		"unterminated_object":       "オブジェクトが閉じられていません",
		"expected_key":              "プロパティ名が必要です",
		"missing_colon":             "':' が必要です",
		"expected_value":            "プロパティ値が必要です",
		"expected_comma_or_brace":   "',' または '}' が必要です",
		"extra_data":                "余分なデータがあります",
		"max_depth":                 "ネストが深すぎます",
		"too_large":                 "入力が大きすぎます",
		"duplicate_key":             "キーが重複しています",
		"not_encodable":             "エンコードできません",
		"non_string_key":            "キーが文字列ではありません",
		"self_reference":            "自己参照しています",
		"truncated":                 "打ち切られました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	if msg, ok := dictionaries[t.lang][code]; ok {
		if key := data["key"]; key != "" {
			return msg + " (" + key + ")"
		}
		return msg
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
