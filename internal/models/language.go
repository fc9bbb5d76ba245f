package models

type Language string

const (
	LangTR Language = "tr"
	LangEN Language = "en"
)

// ParseLanguage maps a client-supplied language tag to a supported language.
// Only "en" selects English; everything else, including empty, is Turkish.
func ParseLanguage(s string) Language {
	if s == string(LangEN) {
		return LangEN
	}
	return LangTR
}
