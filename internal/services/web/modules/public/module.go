// Package public serves the landing page in every locale, the pricing grid
// fragment, the pricing API proxy, and health.
package public

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	module "github.com/vpshub/site/internal/services/web/module"
	"github.com/vpshub/site/internal/services/web/platform/observability"
	"github.com/vpshub/site/internal/services/web/platform/publichandler"
	"github.com/vpshub/site/internal/services/web/pricing"
	"github.com/vpshub/site/internal/services/web/routepath"
)

// Config carries the module's collaborators.
type Config struct {
	Pricing pricing.Lister
	// UpstreamURL is the origin /api/ requests are proxied to.
	UpstreamURL string
	// IdentityURL is the external identity service that plan and hero links
	// point at.
	IdentityURL string
	Metrics     *observability.Metrics
	// Transport overrides the proxy round tripper.
	Transport http.RoundTripper
}

// Module provides the public site routes.
type Module struct {
	cfg Config
}

// New returns the public module.
func New(cfg Config) Module {
	return Module{cfg: cfg}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "public"
}

// Mount wires public routes under the root prefix.
func (m Module) Mount() (module.Mount, error) {
	identityURL := strings.TrimSpace(m.cfg.IdentityURL)
	if identityURL == "" {
		return module.Mount{}, fmt.Errorf("identity url is required")
	}
	mux := http.NewServeMux()
	h := handlers{
		Base:        publichandler.NewBase(),
		pricing:     m.cfg.Pricing,
		identityURL: identityURL,
		metrics:     m.cfg.Metrics,
	}
	registerRoutes(mux, h)

	if upstream := strings.TrimSpace(m.cfg.UpstreamURL); upstream != "" {
		target, err := url.Parse(upstream)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return module.Mount{}, fmt.Errorf("upstream url %q must be absolute", upstream)
		}
		mux.Handle(routepath.APIPrefix, newAPIProxy(target, m.cfg.Transport, m.cfg.Metrics))
	}
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleLanding)
	mux.HandleFunc(http.MethodGet+" /vi/{$}", h.handleLanding)
	mux.HandleFunc(http.MethodGet+" /vi", h.handleLocaleRoot)
	mux.HandleFunc(http.MethodGet+" "+routepath.PricingPartial, h.handlePricingPartial)
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	mux.HandleFunc(routepath.Root, h.handleNotFound)
}
