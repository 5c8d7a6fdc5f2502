package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator renders the auto-generated diagnostic for a code.
// data carries the already formatted operands of the message ("value",
// "schema", "type", "name", "key", "alternatives").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var templates = map[string]map[string]string{
	"en": {
		"mismatch":      "{schema} does not match {value}",
		"invalid_type":  "{value} should be instance of {type}",
		"falsy":         "{name}({value}) should evaluate to True",
		"raised":        "{name}({value}) raised {type}()",
		"missing_key":   "Missing key: {key}",
		"wrong_key":     "Wrong key {key} in {value}",
		"invalid_value": "Invalid value for key {key}",
		"no_match":      "Or({alternatives}) did not validate {value}",
		"failed":        "validation failed",
	},
	"ja": {
		"mismatch":      "{schema} は {value} と一致しません",
		"invalid_type":  "{value} は {type} のインスタンスである必要があります",
		"falsy":         "{name}({value}) は真と評価される必要があります",
		"raised":        "{name}({value}) が {type}() を発生させました",
		"missing_key":   "キーが不足しています: {key}",
		"wrong_key":     "{value} に不正なキー {key} があります",
		"invalid_value": "キー {key} の値が不正です",
		"no_match":      "Or({alternatives}) は {value} を検証できませんでした",
		"failed":        "検証に失敗しました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tpl, ok := templates[t.lang][code]
	if !ok {
		return code
	}
	return render(tpl, data)
}

func render(tpl string, data map[string]string) string {
	if len(data) == 0 {
		return tpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

type holder struct{ tr Translator }

var current atomic.Value

func init() { current.Store(holder{dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := templates[lang]; !ok {
		lang = "en"
	}
	current.Store(holder{dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). A nil Translator restores the English catalogue.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(holder{tr})
}

// T renders the message for code using the current Translator.
func T(code string, data map[string]string) string {
	return current.Load().(holder).tr.Message(code, data)
}
