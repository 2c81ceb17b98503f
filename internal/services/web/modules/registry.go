package modules

import (
	"github.com/vpshub/site/internal/services/web/modules/authui"
	"github.com/vpshub/site/internal/services/web/modules/public"
)

// DefaultModules returns the site modules in mount order.
func DefaultModules(deps Dependencies) []Module {
	return []Module{
		public.New(public.Config{
			Pricing:     deps.Pricing,
			UpstreamURL: deps.UpstreamURL,
			IdentityURL: deps.IdentityURL,
			Metrics:     deps.Metrics,
			Transport:   deps.ProxyTransport,
		}),
		authui.New(authui.Config{
			Visitors:    deps.Visitors,
			Storage:     deps.Storage,
			Auth:        deps.Auth,
			Google:      deps.Google,
			IdentityURL: deps.IdentityURL,
			Metrics:     deps.Metrics,
			Policy:      deps.Policy,
			Limiter:     deps.Limiter,
		}),
	}
}
