package i18n

import "strings"

// Translator retrieves localized messages for issue codes.
// data provides optional parameters to embed in the message (for example,
// "max" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tpl string
	switch t.lang {
	case "ja":
		switch code {
		case "required":
			tpl = "この値は必須です。"
		case "invalid_type":
			if _, ok := data["entries"]; ok {
				tpl = "この値は{entries}個の要素を持つ必要があります。"
			} else {
				tpl = "この値は{want}でなければなりません。"
			}
		case "missing_entry":
			tpl = "\"{key}\"エントリがありません。"
		case "unknown_key":
			tpl = "未変換の値: {keys}"
		case "not_a_number":
			tpl = "この値は数値でなければなりません。"
		case "not_an_integer":
			tpl = "この値は整数でなければなりません。"
		case "invalid_format":
			tpl = "有効な{kind}を入力してください。"
		case "invalid_email":
			tpl = "有効なメールアドレスを入力してください。"
		case "too_short":
			tpl = "この値は{min}文字以上でなければなりません（現在{len}文字）。"
		case "too_long":
			tpl = "この値は{max}文字以下でなければなりません（現在{len}文字）。"
		case "too_small":
			tpl = "この値は{min}より大きくなければなりません。"
		case "too_big":
			tpl = "この値は{max}より小さくなければなりません。"
		case "not_equal":
			tpl = "この値は{want}と等しくなければなりません。"
		case "invalid_enum":
			tpl = "この値は次のいずれかでなければなりません: {choices}"
		case "no_match":
			tpl = "この値はどのスキーマにも一致しません。"
		}
	default: // "en"
		switch code {
		case "required":
			tpl = "This value is required."
		case "invalid_type":
			if _, ok := data["entries"]; ok {
				tpl = "This value must have {entries} entries."
			} else {
				tpl = "This value must be a {want}."
			}
		case "missing_entry":
			tpl = "The \"{key}\" entry is missing."
		case "unknown_key":
			tpl = "Unconverted values: {keys}"
		case "not_a_number":
			tpl = "This value must be a number."
		case "not_an_integer":
			tpl = "This value must be an integer."
		case "invalid_format":
			tpl = "Please enter a valid {kind}."
		case "invalid_email":
			tpl = "Enter a valid e-mail address."
		case "too_short":
			tpl = "Ensure this value has at least {min} characters (it has {len})."
		case "too_long":
			tpl = "Ensure this value has at most {max} characters (it has {len})."
		case "too_small":
			tpl = "This value must be larger than {min}."
		case "too_big":
			tpl = "This value must be smaller than {max}."
		case "not_equal":
			tpl = "This value must be equal to {want}."
		case "invalid_enum":
			tpl = "This value must be one of: {choices}"
		case "no_match":
			tpl = "This value doesn't match any acceptable schema."
		}
	}
	if tpl == "" {
		return code
	}
	return expand(tpl, data)
}

// expand substitutes {key} placeholders from data. Unknown placeholders are
// left intact so a bad call site stays diagnosable.
func expand(tpl string, data map[string]string) string {
	if len(data) == 0 {
		return tpl
	}
	for k, v := range data {
		tpl = strings.ReplaceAll(tpl, "{"+k+"}", v)
	}
	return tpl
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
