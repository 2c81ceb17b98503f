// Package i18n resolves the request locale and exposes the localized copy
// each page section renders.
package i18n

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	platformi18n "github.com/vpshub/site/internal/platform/i18n"
	"github.com/vpshub/site/internal/platform/i18n/catalog"
)

// LangParam is the query parameter fragments use to carry the page locale.
const LangParam = "lang"

// Localizer formats catalog messages.
type Localizer interface {
	Sprintf(key message.Reference, a ...any) string
}

// Printer returns a message printer for tag. The embedded catalog registers
// itself when the catalog package initializes.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ResolveTag picks the locale for r: a locale path prefix wins, then the
// lang query parameter, then the default locale.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil || r.URL == nil {
		return platformi18n.DefaultTag()
	}
	if tag, _ := platformi18n.SplitPath(r.URL.Path); tag != platformi18n.DefaultTag() {
		return tag
	}
	if tag, ok := platformi18n.ParseTag(r.URL.Query().Get(LangParam)); ok {
		return tag
	}
	return platformi18n.DefaultTag()
}

// T formats key with loc, falling back to the base catalog when loc is nil.
func T(loc Localizer, key string, args ...any) string {
	if loc == nil {
		if value, ok := catalog.Default().Message(catalog.BaseLocale, key); ok {
			return value
		}
		return key
	}
	return loc.Sprintf(key, args...)
}
