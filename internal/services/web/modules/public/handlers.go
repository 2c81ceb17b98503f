package public

import (
	"log"
	"net/http"

	platformi18n "github.com/vpshub/site/internal/platform/i18n"
	"github.com/vpshub/site/internal/services/web/platform/httpx"
	"github.com/vpshub/site/internal/services/web/platform/observability"
	"github.com/vpshub/site/internal/services/web/platform/pagerender"
	"github.com/vpshub/site/internal/services/web/platform/publichandler"
	webi18n "github.com/vpshub/site/internal/services/web/platform/i18n"
	"github.com/vpshub/site/internal/services/web/pricing"
	"github.com/vpshub/site/internal/services/web/routepath"
	"github.com/vpshub/site/internal/services/web/templates"
)

type handlers struct {
	publichandler.Base
	pricing     pricing.Lister
	identityURL string
	metrics     *observability.Metrics
}

func (h handlers) handleLanding(w http.ResponseWriter, r *http.Request) {
	tag, _ := platformi18n.SplitPath(r.URL.Path)
	h.WritePage(w, r, pagerender.Page{
		Tag: tag,
		Body: templates.Landing(templates.LandingView{
			Page:      webi18n.Page(tag),
			Pricing:   pricing.Loading(tag, routepath.WithLang(routepath.PricingPartial, tag.String())),
			SignupURL: h.identityURL,
		}),
	})
}

func (h handlers) handleLocaleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
}

// handlePricingPartial always answers 200: a failed fetch renders the
// grid's error state.
func (h handlers) handlePricingPartial(w http.ResponseWriter, r *http.Request) {
	tag := webi18n.ResolveTag(r)
	grid, err := pricing.FetchGrid(httpx.RequestContext(r), h.pricing, tag, h.identityURL)
	h.metrics.PricingFetched(err)
	if err != nil {
		log.Printf("pricing fetch failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
	}
	h.WriteFragment(w, r, http.StatusOK, templates.PricingGrid(grid))
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}
