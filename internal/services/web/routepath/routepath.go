// Package routepath stores canonical HTTP paths for site modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root              = "/"
	Health            = "/healthz"
	StaticPrefix      = "/static/"
	Metrics           = "/metrics"
	APIPrefix         = "/api/"
	PricingAPI        = "/api/vps"
	PartialsPrefix    = "/partials/"
	PricingPartial    = "/partials/pricing"
	AuthPrefix        = "/auth/"
	AuthButtons       = "/auth/buttons"
	AuthModal         = "/auth/modal"
	AuthLogin         = "/auth/login"
	AuthLogout        = "/auth/logout"
	AuthGitHub        = "/auth/social/github"
	AuthGoogleStart   = "/auth/social/google/start"
	AuthGoogleReturn  = "/auth/social/google/callback"
	AuthGoogleToken   = "/auth/social/google/token"
	ModalModeLogin    = "login"
	ModalModeRegister = "register"
)

// WithLang appends the lang query parameter used by fragment requests.
func WithLang(path string, lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return path
	}
	return path + "?" + url.Values{"lang": {lang}}.Encode()
}

// ModalURL returns the modal fragment path for a form mode and language.
func ModalURL(mode string, lang string) string {
	query := url.Values{}
	if mode = strings.TrimSpace(mode); mode != "" {
		query.Set("mode", mode)
	}
	if lang = strings.TrimSpace(lang); lang != "" {
		query.Set("lang", lang)
	}
	if len(query) == 0 {
		return AuthModal
	}
	return AuthModal + "?" + query.Encode()
}
