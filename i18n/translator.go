package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "column" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "registry_required":
			return "コンバータレジストリが必要です"
		case "not_constructible":
			return "対象型を構築できません"
		case "no_mapped_fields":
			return "マッピング可能なフィールドがありません"
		case "file_not_found":
			return "ファイルが見つかりません"
		case "not_csv":
			return "CSVファイルではありません"
		case "read_error":
			return "読み込みエラー"
		case "empty_input":
			return "入力が空です"
		case "column_not_found":
			return "列が見つかりません"
		case "row_too_short":
			return "行の値が不足しています"
		case "unsupported_type":
			return "未対応の型です"
		case "conversion_error":
			return "変換エラー"
		case "null_to_value":
			return "空の値を非null型に割り当てられません"
		case "type_mismatch":
			return "型が一致しません"
		}
	default: // "en"
		switch code {
		case "registry_required":
			return "converter registry required"
		case "not_constructible":
			return "target type is not constructible"
		case "no_mapped_fields":
			return "no mappable fields"
		case "file_not_found":
			return "file not found"
		case "not_csv":
			return "not a CSV file"
		case "read_error":
			return "read error"
		case "empty_input":
			return "input is empty"
		case "column_not_found":
			return "column not found"
		case "row_too_short":
			return "row is too short"
		case "unsupported_type":
			return "unsupported type"
		case "conversion_error":
			return "conversion error"
		case "null_to_value":
			return "empty value for non-nullable type"
		case "type_mismatch":
			return "type mismatch"
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
