// Package modules defines web module registry helpers.
package modules

import (
	"net/http"

	"github.com/vpshub/site/internal/services/web/auth"
	module "github.com/vpshub/site/internal/services/web/module"
	"github.com/vpshub/site/internal/services/web/platform/httpx"
	"github.com/vpshub/site/internal/services/web/platform/observability"
	"github.com/vpshub/site/internal/services/web/platform/requestmeta"
	"github.com/vpshub/site/internal/services/web/platform/visitorcookie"
	"github.com/vpshub/site/internal/services/web/pricing"
	"github.com/vpshub/site/internal/services/web/social"
	"github.com/vpshub/site/internal/services/web/storage"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the collaborators required to compose the web module
// registry. Composition builds them once; modules receive only the fields
// they use.
type Dependencies struct {
	IdentityURL string

	// Public site.
	Pricing        pricing.Lister
	UpstreamURL    string
	ProxyTransport http.RoundTripper

	// Auth widget.
	Visitors *visitorcookie.Codec
	Storage  storage.Provider
	Auth     auth.Config
	Google   *social.Google
	Policy   requestmeta.SchemePolicy
	Limiter  *httpx.ClientLimiter

	Metrics *observability.Metrics
}
