package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/wakja/wakja-be/internal/locale"
)

const localeContextKey = "__request_locale"

// LocaleMiddleware resolves the response language from ?lang= or
// Accept-Language and advertises it.
func LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		pref := requestLocale(c)
		c.Header("Content-Language", pref.ContentLang)
		c.Writer.Header().Add("Vary", "Accept-Language")
		c.Next()
	}
}

func requestLocale(c *gin.Context) locale.Preference {
	if cached, exists := c.Get(localeContextKey); exists {
		if pref, ok := cached.(locale.Preference); ok {
			return pref
		}
	}

	language := locale.NormalizeLanguage(c.Query("lang"))
	if language == "" {
		language = locale.LanguageFromAcceptLanguage(c.GetHeader("Accept-Language"))
	}
	if language == "" {
		language = locale.DefaultLanguage
	}

	pref := locale.PreferenceForLanguage(language)
	c.Set(localeContextKey, pref)
	return pref
}

func message(c *gin.Context, key string) string {
	return locale.Message(requestLocale(c).Language, key)
}
