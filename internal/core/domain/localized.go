package domain

import "encoding/json"

// Language is the active display language of the console.
type Language string

const (
	LangEN Language = "en"
	LangVI Language = "vi"
)

// ParseLanguage returns the language for a code, defaulting to English.
func ParseLanguage(code string) Language {
	if Language(code) == LangVI {
		return LangVI
	}
	return LangEN
}

// LocalizedText is a bilingual value pair. Legacy records sometimes carry a
// plain string instead of an {en, vi} object; UnmarshalJSON accepts both
// shapes so the ambiguity is resolved once at the ingestion boundary.
type LocalizedText struct {
	EN string `json:"en"`
	VI string `json:"vi"`
}

// NewLocalizedText builds a pair from an already-resolved legacy string.
func NewLocalizedText(s string) LocalizedText {
	return LocalizedText{EN: s, VI: s}
}

// Resolve returns the display string for lang, falling back to the other
// language when the requested one is empty. Total: never fails, an empty
// value resolves to "".
func (t LocalizedText) Resolve(lang Language) string {
	primary, fallback := t.EN, t.VI
	if lang == LangVI {
		primary, fallback = t.VI, t.EN
	}
	if primary != "" {
		return primary
	}
	return fallback
}

// IsEmpty reports whether both languages are empty.
func (t LocalizedText) IsEmpty() bool {
	return t.EN == "" && t.VI == ""
}

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	// Legacy shape: a bare string, already resolved.
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*t = NewLocalizedText(plain)
		return nil
	}

	var pair struct {
		EN string `json:"en"`
		VI string `json:"vi"`
	}
	if err := json.Unmarshal(data, &pair); err != nil {
		// Malformed localized fields degrade to empty, they never fail a
		// whole listing response.
		*t = LocalizedText{}
		return nil
	}
	*t = LocalizedText{EN: pair.EN, VI: pair.VI}
	return nil
}
