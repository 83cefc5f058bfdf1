package api

// Language is a supported UI/response language code.
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageHindi    Language = "hi"
	LanguageGujarati Language = "gu"
)

// DefaultLanguage is used when no preference is stored and the locale is not recognized.
const DefaultLanguage = LanguageEnglish

// SupportedLanguages returns all language codes the assistant can respond in.
func SupportedLanguages() []Language {
	return []Language{LanguageEnglish, LanguageHindi, LanguageGujarati}
}

// Valid reports whether the language is one of the supported codes.
func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageHindi, LanguageGujarati:
		return true
	}
	return false
}

// ParseLanguage returns the Language for a code and whether it is supported.
// Unsupported codes fall back to DefaultLanguage.
func ParseLanguage(code string) (Language, bool) {
	if l := Language(code); l.Valid() {
		return l, true
	}
	return DefaultLanguage, false
}
