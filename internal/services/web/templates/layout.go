package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	webi18n "github.com/vpshub/site/internal/services/web/platform/i18n"
	"github.com/vpshub/site/internal/services/web/routepath"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// LayoutView is the shared page shell.
type LayoutView struct {
	Page webi18n.PageCopy
	// HomePath is the localized landing path used by the nav links.
	HomePath string
	// AuthSlot renders inside the header; usually the auth placeholder.
	AuthSlot templ.Component
}

// Layout renders the document shell around its children.
func Layout(view LayoutView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", view.Page.Lang)
		h.open("head")
		h.raw(`<meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.element("title", view.Page.Title)
		h.open("meta", "name", "description", "content", view.Page.MetaDescription)
		h.open("link", "rel", "stylesheet", "href", routepath.StaticPrefix+"site.css")
		h.open("script", "src", htmxScriptURL, "defer", "")
		h.close("script")
		h.open("script", "src", routepath.StaticPrefix+"site.js", "defer", "")
		h.close("script")
		h.close("head")
		h.open("body")

		h.open("header", "class", "site-header")
		h.open("nav", "class", "site-nav")
		h.element("a", "VPSHub", "class", "brand", "href", view.HomePath)
		h.element("a", view.Page.NavHome, "href", view.HomePath)
		h.element("a", view.Page.NavServices, "href", view.HomePath+"#services")
		h.element("a", view.Page.NavPricing, "href", view.HomePath+"#pricing")
		h.element("a", view.Page.NavContact, "href", view.HomePath+"#contact")
		h.close("nav")
		h.open("ul", "class", "lang-switcher")
		for _, option := range view.Page.Languages {
			h.open("li")
			if option.Active {
				h.element("span", option.Label, "lang", option.Lang, "aria-current", "true")
			} else {
				h.element("a", option.Label, "lang", option.Lang, "hreflang", option.Lang, "href", option.URL)
			}
			h.close("li")
		}
		h.close("ul")
		h.component(view.AuthSlot)
		h.close("header")

		h.open("main", "id", "main")
		h.children()
		h.close("main")

		h.open("footer", "id", "contact", "class", "site-footer")
		h.element("a", view.Page.FooterTerms, "href", view.HomePath+"#terms")
		h.element("a", view.Page.FooterContact, "href", "mailto:support@vpshub.vn")
		h.close("footer")

		h.open("div", "id", AuthModalID)
		h.close("div")
		h.close("body")
		h.close("html")
		return h.err
	})
}
