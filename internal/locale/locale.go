package locale

import "strings"

const (
	LanguageKorean  = "ko"
	LanguageEnglish = "en"
	LanguageChinese = "zh"
)

// DefaultLanguage is used when neither ?lang= nor Accept-Language matches.
const DefaultLanguage = LanguageKorean

type Preference struct {
	Language    string
	ContentLang string
}

func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(trimmed, "ko") || trimmed == "kr":
		return LanguageKorean
	case strings.HasPrefix(trimmed, "zh") || trimmed == "cn":
		return LanguageChinese
	case strings.HasPrefix(trimmed, "en"):
		return LanguageEnglish
	}
	return ""
}

// LanguageFromAcceptLanguage returns the first supported language in the
// header, in the order the client listed them.
func LanguageFromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := part
		if idx := strings.IndexByte(tag, ';'); idx >= 0 {
			tag = tag[:idx]
		}
		if language := NormalizeLanguage(tag); language != "" {
			return language
		}
	}
	return ""
}

func PreferenceForLanguage(language string) Preference {
	switch NormalizeLanguage(language) {
	case LanguageEnglish:
		return Preference{Language: LanguageEnglish, ContentLang: "en-US"}
	case LanguageChinese:
		return Preference{Language: LanguageChinese, ContentLang: "zh-CN"}
	default:
		return Preference{Language: LanguageKorean, ContentLang: "ko-KR"}
	}
}
