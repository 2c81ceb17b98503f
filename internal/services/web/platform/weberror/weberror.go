// Package weberror renders localized error responses for site modules.
package weberror

import (
	"log"
	"net/http"
	"strings"

	platformi18n "github.com/vpshub/site/internal/platform/i18n"
	apperrors "github.com/vpshub/site/internal/services/web/platform/errors"
	"github.com/vpshub/site/internal/services/web/platform/httpx"
	webi18n "github.com/vpshub/site/internal/services/web/platform/i18n"
	"github.com/vpshub/site/internal/services/web/platform/pagerender"
	"github.com/vpshub/site/internal/services/web/templates"
)

// ShouldRenderPage reports whether status gets the full error page UX.
func ShouldRenderPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized message for err.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		if localized := strings.TrimSpace(webi18n.T(loc, key)); localized != "" && localized != key {
			return localized
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode == http.StatusNotFound {
		return webi18n.T(loc, "error.not_found")
	}
	if statusCode >= http.StatusInternalServerError {
		return webi18n.T(loc, "error.internal")
	}
	return http.StatusText(statusCode)
}

// WriteError writes err as a localized page, or as plain text when the
// status does not warrant a page.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil || err == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError {
		log.Printf("web error method=%s path=%s request_id=%s err=%v", requestMethod(r), requestPath(r), httpx.RequestIDFrom(r), err)
	}
	if !ShouldRenderPage(statusCode) {
		httpx.WriteError(w, err)
		return
	}
	tag := webi18n.ResolveTag(r)
	loc := webi18n.Printer(tag)
	page := webi18n.Page(tag)
	body := templates.ErrorBody(PublicMessage(loc, err), page.NavHome, platformi18n.LocalizedPath(tag, "/"))
	if renderErr := pagerender.WritePage(w, r, pagerender.Page{Tag: tag, StatusCode: statusCode, Body: body}); renderErr != nil {
		log.Printf("web error page render failed path=%s err=%v", requestPath(r), renderErr)
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteNotFound writes the localized not-found page.
func WriteNotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, apperrors.EK(apperrors.KindNotFound, "error.not_found", "page not found"))
}

func requestMethod(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.Method
}

func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Path
}
