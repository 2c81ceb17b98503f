// Package pagerender writes templ components as full pages or HTMX fragments.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"golang.org/x/text/language"

	platformi18n "github.com/vpshub/site/internal/platform/i18n"
	"github.com/vpshub/site/internal/services/web/platform/httpx"
	webi18n "github.com/vpshub/site/internal/services/web/platform/i18n"
	"github.com/vpshub/site/internal/services/web/templates"
)

// Page describes a page response for both full-page and HTMX flows.
type Page struct {
	Tag        language.Tag
	StatusCode int
	Body       templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage renders page inside the site layout. HTMX requests receive the
// body alone.
func WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}
	if httpx.IsHTMXRequest(r) {
		return WriteFragment(w, r, page.StatusCode, body)
	}

	tag := page.Tag
	if tag == language.Und {
		tag = platformi18n.DefaultTag()
	}
	layout := templates.Layout(templates.LayoutView{
		Page:     webi18n.Page(tag),
		HomePath: platformi18n.LocalizedPath(tag, "/"),
		AuthSlot: templates.AuthPlaceholder(tag.String()),
	})
	return write(templ.WithChildren(httpx.RequestContext(r), body), w, page.StatusCode, layout)
}

// WriteFragment renders component without the layout.
func WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, component templ.Component) error {
	if w == nil {
		return nil
	}
	if component == nil {
		component = emptyComponent{}
	}
	return write(httpx.RequestContext(r), w, statusCode, component)
}

func write(ctx context.Context, w http.ResponseWriter, statusCode int, component templ.Component) error {
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}
