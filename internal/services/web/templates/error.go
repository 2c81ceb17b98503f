package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ErrorBody renders a short error notice inside the page layout.
func ErrorBody(message string, homeLabel string, homePath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.open("section", "class", "error-page")
		h.element("h1", message)
		h.element("a", homeLabel, "href", homePath)
		h.close("section")
		return h.err
	})
}
