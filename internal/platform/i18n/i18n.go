// Package i18n defines the locales the site serves and how they map onto
// URL paths.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var supportedTags = []language.Tag{
	language.English,
	language.Vietnamese,
}

var matcher = language.NewMatcher(supportedTags)

// SupportedTags returns the supported locales, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// DefaultTag returns the locale served without a path prefix.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// ParseTag resolves a raw locale value to a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	parsed, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	base, _ := parsed.Base()
	for _, tag := range supportedTags {
		supportedBase, _ := tag.Base()
		if base == supportedBase {
			return tag, true
		}
	}
	return language.Und, false
}

// MatchTags picks the best supported tag for an Accept-Language preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supportedTags[index]
}

// PathPrefix returns the URL prefix for a locale; the default locale has none.
func PathPrefix(tag language.Tag) string {
	if tag == DefaultTag() {
		return ""
	}
	return "/" + tag.String()
}

// SplitPath separates a locale prefix from the rest of a URL path.
// Paths without a known prefix belong to the default locale.
func SplitPath(path string) (language.Tag, string) {
	trimmed := strings.TrimPrefix(path, "/")
	first, rest, _ := strings.Cut(trimmed, "/")
	for _, tag := range supportedTags[1:] {
		if first == tag.String() {
			return tag, "/" + rest
		}
	}
	if path == "" {
		path = "/"
	}
	return DefaultTag(), path
}

// LocalizedPath prefixes path with the locale's path prefix.
func LocalizedPath(tag language.Tag, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return PathPrefix(tag) + path
}
