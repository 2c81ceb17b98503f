package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/vpshub/site/internal/services/web/pricing"
)

// PricingGridID is the element the loading placeholder swaps out.
const PricingGridID = "pricing-grid"

// PricingGrid renders the grid in its current state.
func PricingGrid(grid pricing.Grid) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		switch grid.State {
		case pricing.StateLoading:
			h.element("div", grid.Copy.Loading,
				"id", PricingGridID,
				"class", "pricing-grid pricing-loading",
				"aria-busy", "true",
				"hx-get", grid.FragmentURL,
				"hx-trigger", "load",
				"hx-swap", "outerHTML",
			)
		case pricing.StateError:
			h.element("div", grid.Copy.Error, "id", PricingGridID, "class", "pricing-grid pricing-error", "role", "alert")
		default:
			h.open("div", "id", PricingGridID, "class", "pricing-grid")
			for _, card := range grid.Cards {
				writePlanCard(h, card)
			}
			h.close("div")
		}
		return h.err
	})
}

func writePlanCard(h *htmlWriter, card pricing.Card) {
	class := "plan-card"
	buttonClass := "button"
	if card.Popular {
		class += " plan-card-popular"
		buttonClass += " button-primary"
	}
	h.open("article", "class", class, "data-plan-id", card.ID)
	if card.Popular {
		h.element("div", card.Badge, "class", "plan-badge")
	}
	h.element("h3", card.Name)
	if card.Title != "" {
		h.element("p", card.Title, "class", "plan-title")
	}
	h.open("p", "class", "plan-price")
	h.element("span", card.Price, "class", "plan-amount")
	h.element("span", card.Currency, "class", "plan-currency")
	h.element("span", card.Period, "class", "plan-period")
	h.close("p")
	h.open("ul", "class", "plan-features")
	for _, feature := range card.Features {
		h.element("li", feature)
	}
	h.close("ul")
	h.element("a", card.Choose, "class", buttonClass, "href", card.ChooseURL)
	h.close("article")
}
