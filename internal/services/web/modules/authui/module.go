// Package authui serves the auth widget: the button group and modal
// fragments plus the login, social login, and logout handlers.
package authui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vpshub/site/internal/services/web/auth"
	module "github.com/vpshub/site/internal/services/web/module"
	"github.com/vpshub/site/internal/services/web/platform/httpx"
	"github.com/vpshub/site/internal/services/web/platform/observability"
	"github.com/vpshub/site/internal/services/web/platform/publichandler"
	"github.com/vpshub/site/internal/services/web/platform/requestmeta"
	"github.com/vpshub/site/internal/services/web/platform/visitorcookie"
	"github.com/vpshub/site/internal/services/web/routepath"
	"github.com/vpshub/site/internal/services/web/social"
	"github.com/vpshub/site/internal/services/web/storage"
)

// Config carries the module's collaborators.
type Config struct {
	Visitors *visitorcookie.Codec
	Storage  storage.Provider
	Auth     auth.Config
	// Google is optional; without it the modal hides the Google button.
	Google      *social.Google
	IdentityURL string
	Metrics     *observability.Metrics
	Policy      requestmeta.SchemePolicy
	// Limiter throttles the POST handlers per client address.
	Limiter *httpx.ClientLimiter
}

// Module provides the auth widget routes.
type Module struct {
	cfg Config
}

// New returns the auth widget module.
func New(cfg Config) Module {
	return Module{cfg: cfg}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "authui"
}

// Mount wires the auth routes under /auth/.
func (m Module) Mount() (module.Mount, error) {
	if m.cfg.Visitors == nil || m.cfg.Storage == nil {
		return module.Mount{}, errors.New("authui: visitor cookie codec and storage are required")
	}
	identityURL := strings.TrimSpace(m.cfg.IdentityURL)
	if identityURL == "" {
		return module.Mount{}, errors.New("authui: identity url is required")
	}
	h := handlers{
		Base: publichandler.NewBase(
			publichandler.WithVisitors(m.cfg.Visitors, m.cfg.Storage),
			publichandler.WithAuthConfig(m.cfg.Auth),
		),
		google:      m.cfg.Google,
		identityURL: identityURL,
		metrics:     m.cfg.Metrics,
		policy:      m.cfg.Policy,
	}
	mux := http.NewServeMux()
	registerRoutes(mux, h, m.cfg.Limiter)
	return module.Mount{Prefix: routepath.AuthPrefix, Handler: mux}, nil
}

func registerRoutes(mux *http.ServeMux, h handlers, limiter *httpx.ClientLimiter) {
	mutation := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimit(limiter), h.requireSameOrigin)
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthButtons, h.handleButtons)
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthModal, h.handleModal)
	mux.Handle(http.MethodPost+" "+routepath.AuthLogin, mutation(h.handleLogin))
	mux.Handle(http.MethodPost+" "+routepath.AuthGitHub, mutation(h.handleGitHub))
	mux.Handle(http.MethodPost+" "+routepath.AuthLogout, mutation(h.handleLogout))
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthGoogleStart, h.handleGoogleStart)
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthGoogleReturn, h.handleGoogleCallback)
	mux.Handle(http.MethodPost+" "+routepath.AuthGoogleToken, mutation(h.handleGoogleToken))
	mux.HandleFunc(routepath.AuthPrefix, h.handleNotFound)
}
