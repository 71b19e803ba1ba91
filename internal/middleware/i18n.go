// internal/middleware/i18n.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/phonemarket/backend/internal/i18n"
)

// Catalog languages in matcher order; the first is the fallback.
var (
	supportedTags = []language.Tag{language.English, language.Russian}
	langMatcher   = language.NewMatcher(supportedTags)
)

// Languages served from the Russian catalog.
var russianSpeaking = map[string]bool{"ru": true, "be": true, "kk": true, "uk": true}

// I18nMiddleware picks the message catalog from Accept-Language.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", negotiateLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func negotiateLanguage(header string) string {
	if header == "" {
		return i18n.DefaultLanguage
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return i18n.DefaultLanguage
	}
	if base, _ := tags[0].Base(); russianSpeaking[base.String()] {
		return "ru"
	}

	_, index, _ := langMatcher.Match(tags...)
	base, _ := supportedTags[index].Base()
	return base.String()
}
