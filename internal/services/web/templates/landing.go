package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	webi18n "github.com/vpshub/site/internal/services/web/platform/i18n"
	"github.com/vpshub/site/internal/services/web/pricing"
)

// LandingView is the landing page body.
type LandingView struct {
	Page    webi18n.PageCopy
	Pricing pricing.Grid
	// SignupURL is where the hero call to action points.
	SignupURL string
}

// Landing renders hero, features, marketing, and pricing sections.
func Landing(view LandingView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.open("section", "id", "hero", "class", "hero")
		h.element("h1", view.Page.HeroTitle)
		h.element("p", view.Page.HeroSubtitle, "class", "hero-subtitle")
		h.element("a", view.Page.HeroCTA, "class", "button button-primary", "href", view.SignupURL)
		h.close("section")

		h.open("section", "id", "services", "class", "features")
		h.element("h2", view.Page.FeaturesTitle)
		h.close("section")

		h.open("section", "id", "marketing", "class", "marketing")
		h.element("h2", view.Page.MarketingTitle)
		h.close("section")

		h.open("section", "id", "pricing", "class", "pricing")
		h.element("h2", view.Pricing.Copy.Title)
		h.component(PricingGrid(view.Pricing))
		h.close("section")
		return h.err
	})
}
