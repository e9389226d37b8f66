package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "field", "value" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var templates = map[string]map[string]string{
	"en": {
		"message_type_not_found":  "Message '{type}' hasn't been found in dictionary",
		"field_not_found":         "Field '{field}' hasn't been found in message structure: {type}",
		"type_mismatch":           "Expected '{expected}' value but got '{got}' for field '{field}'",
		"unknown_enum":            "Unknown '{field}' enum value/alias for '{value}' field in the '{namespace}' dictionary",
		"numeric_overflow":        "Cannot convert '{value}' to {kind} without loss",
		"blank_or_null":           "Null value is not allowed for field '{field}'",
		"unsupported_scalar_kind": "No converter for type: {kind}",
		"depth_exceeded":          "max depth exceeded",
		"invalid_format":          "Cannot convert from string to {kind} - value: {value}",
		"blank_type":              "Cannot convert message with blank message type",
		"integer_conversion":      "cannot convert from integer to {kind}",
		"duplicate_key":           "key '{key}' duplicated",
		"parse_error":             "malformed body: {reason}",
	},
	"ja": {
		"message_type_not_found":  "メッセージ '{type}' が辞書に見つかりません",
		"field_not_found":         "フィールド '{field}' がメッセージ構造 {type} に見つかりません",
		"type_mismatch":           "フィールド '{field}' には '{expected}' が必要ですが '{got}' でした",
		"unknown_enum":            "'{namespace}' 辞書の '{field}' に列挙値/別名 '{value}' がありません",
		"numeric_overflow":        "'{value}' を {kind} へ損失なく変換できません",
		"blank_or_null":           "フィールド '{field}' に null は使用できません",
		"unsupported_scalar_kind": "型 {kind} の変換器がありません",
		"depth_exceeded":          "最大深度を超えました",
		"invalid_format":          "文字列から {kind} へ変換できません - 値: {value}",
		"blank_type":              "メッセージ型が空のため変換できません",
		"integer_conversion":      "整数から {kind} へ変換できません",
		"duplicate_key":           "キー '{key}' が重複しています",
		"parse_error":             "本文を解析できません: {reason}",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tpl, ok := templates[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return tpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
