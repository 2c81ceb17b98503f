package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	webi18n "github.com/vpshub/site/internal/services/web/platform/i18n"
	"github.com/vpshub/site/internal/services/web/routepath"
)

// Element ids shared by the auth fragments.
const (
	AuthButtonsID = "auth-buttons"
	AuthModalID   = "auth-modal"
)

// authRefreshTrigger reloads the button group when another fragment signals
// an auth change.
const authRefreshTrigger = "auth-changed from:body"

// AuthPlaceholder is rendered with the page before the visitor's auth state
// is known. It is invisible and replaces itself with the button group once
// loaded.
func AuthPlaceholder(lang string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.open("div",
			"id", AuthButtonsID,
			"class", "auth-buttons auth-placeholder",
			"aria-hidden", "true",
			"style", "visibility:hidden",
			"hx-get", routepath.WithLang(routepath.AuthButtons, lang),
			"hx-trigger", "load",
			"hx-swap", "outerHTML",
		)
		h.open("span", "class", "auth-skeleton")
		h.close("span")
		h.close("div")
		return h.err
	})
}

// AuthButtonsView is the loaded button group.
type AuthButtonsView struct {
	Copy            webi18n.AuthCopy
	Lang            string
	IsAuthenticated bool
	Username        string
	DashboardURL    string
	// CloseModal empties the modal container out of band.
	CloseModal bool
}

// AuthButtons renders the log in / sign up triggers or the dashboard link
// and logout control.
func AuthButtons(view AuthButtonsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.open("div",
			"id", AuthButtonsID,
			"class", "auth-buttons",
			"hx-get", routepath.WithLang(routepath.AuthButtons, view.Lang),
			"hx-trigger", authRefreshTrigger,
			"hx-swap", "outerHTML",
		)
		if view.IsAuthenticated {
			h.element("a", view.Copy.Dashboard, "class", "auth-dashboard", "href", view.DashboardURL, "title", view.Username)
			h.open("button",
				"type", "button",
				"class", "auth-logout",
				"title", view.Copy.Logout,
				"hx-post", routepath.WithLang(routepath.AuthLogout, view.Lang),
				"hx-target", "#"+AuthButtonsID,
				"hx-swap", "outerHTML",
			)
			h.element("span", view.Copy.Logout, "class", "visually-hidden")
			h.close("button")
		} else {
			h.element("button", view.Copy.Login,
				"type", "button",
				"class", "auth-login",
				"hx-get", routepath.ModalURL(routepath.ModalModeLogin, view.Lang),
				"hx-target", "#"+AuthModalID,
				"hx-swap", "innerHTML",
			)
			h.element("button", view.Copy.Signup,
				"type", "button",
				"class", "button button-primary auth-signup",
				"hx-get", routepath.ModalURL(routepath.ModalModeRegister, view.Lang),
				"hx-target", "#"+AuthModalID,
				"hx-swap", "innerHTML",
			)
		}
		h.close("div")
		if view.CloseModal {
			h.open("div", "id", AuthModalID, "hx-swap-oob", "innerHTML")
			h.close("div")
		}
		return h.err
	})
}

// AuthModalView is the login / register dialog.
type AuthModalView struct {
	Copy     webi18n.AuthCopy
	Lang     string
	Register bool
	// Google shows the Google button; it is hidden when sign-in with Google
	// is not configured.
	Google bool
	// Username re-fills the form after a failed submit.
	Username string
	Email    string
}

// AuthModal renders the dialog body placed inside the modal container.
func AuthModal(view AuthModalView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		title, submit, toggle, toggleMode := view.Copy.LoginTitle, view.Copy.SubmitLogin, view.Copy.NoAccount, routepath.ModalModeRegister
		mode := routepath.ModalModeLogin
		if view.Register {
			title, submit, toggle, toggleMode = view.Copy.RegisterTitle, view.Copy.SubmitRegister, view.Copy.HaveAccount, routepath.ModalModeLogin
			mode = routepath.ModalModeRegister
		}
		closeTarget := "#" + AuthModalID

		h.open("div", "class", "modal-backdrop")
		h.open("div", "class", "modal", "role", "dialog", "aria-modal", "true", "aria-labelledby", "auth-modal-title")
		h.open("button", "type", "button", "class", "modal-close", "data-modal-close", closeTarget, "aria-label", view.Copy.Close)
		h.raw("&times;")
		h.close("button")
		h.element("h2", title, "id", "auth-modal-title")

		h.open("div", "class", "social-login")
		if view.Google {
			h.element("a", "Google", "class", "button social-google", "href", routepath.WithLang(routepath.AuthGoogleStart, view.Lang))
		}
		h.element("button", "Github",
			"type", "button",
			"class", "button social-github",
			"hx-post", routepath.WithLang(routepath.AuthGitHub, view.Lang),
			"hx-target", "#"+AuthButtonsID,
			"hx-swap", "outerHTML",
			"hx-disabled-elt", "this",
		)
		h.close("div")
		h.element("p", view.Copy.OrContinueWith, "class", "divider")

		h.open("form",
			"class", "auth-form",
			"hx-post", routepath.WithLang(routepath.AuthLogin, view.Lang),
			"hx-target", "#"+AuthButtonsID,
			"hx-swap", "outerHTML",
			"hx-disabled-elt", "find button[type='submit']",
		)
		h.open("input", "type", "hidden", "name", "mode", "value", mode)
		if view.Register {
			writeField(h, "email", "email", view.Copy.Email, view.Email, "email")
		}
		writeField(h, "username", "text", view.Copy.Username, view.Username, "username")
		writeField(h, "password", "password", view.Copy.Password, "", "current-password")
		h.element("button", submit, "type", "submit", "class", "button button-primary")
		h.close("form")

		h.element("button", toggle,
			"type", "button",
			"class", "link-button",
			"hx-get", routepath.ModalURL(toggleMode, view.Lang),
			"hx-target", closeTarget,
			"hx-swap", "innerHTML",
		)
		h.close("div")
		h.close("div")
		return h.err
	})
}

// GoogleRelayView is the page Google's token flow returns to.
type GoogleRelayView struct {
	Copy webi18n.AuthCopy
	Lang string
}

// GoogleRelay renders a form that site.js fills from the URL fragment and
// submits, handing the access token to the server.
func GoogleRelay(view GoogleRelayView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.open("form",
			"class", "google-relay",
			"method", "post",
			"action", routepath.WithLang(routepath.AuthGoogleToken, view.Lang),
			"data-google-relay", "",
		)
		for _, name := range []string{"access_token", "state", "error"} {
			h.open("input", "type", "hidden", "name", name, "value", "")
		}
		h.element("p", view.Copy.GoogleRelay)
		h.close("form")
		return h.err
	})
}

func writeField(h *htmlWriter, name, inputType, label, value, autocomplete string) {
	id := "auth-" + name
	h.element("label", label, "for", id)
	h.open("input",
		"id", id,
		"name", name,
		"type", inputType,
		"value", value,
		"autocomplete", autocomplete,
		"required", "",
	)
}
