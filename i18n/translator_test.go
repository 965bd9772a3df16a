package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("unterminated_object", nil); msg != "unterminated object" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("unterminated_object", nil); msg == "unterminated object" || msg == "unterminated_object" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeAndData(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown codes should pass through, got %q", msg)
	}
	if msg := T("duplicate_key", map[string]string{"key": "a"}); msg != "duplicate key (a)" {
		t.Fatalf("got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("max_depth", nil); msg != "X:max_depth" {
		t.Fatalf("got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("max_depth", nil); msg != "nesting too deep" {
		t.Fatalf("got %q", msg)
	}
}
