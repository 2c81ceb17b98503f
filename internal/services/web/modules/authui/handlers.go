package authui

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	platformi18n "github.com/vpshub/site/internal/platform/i18n"
	"github.com/vpshub/site/internal/services/web/auth"
	apperrors "github.com/vpshub/site/internal/services/web/platform/errors"
	"github.com/vpshub/site/internal/services/web/platform/httpx"
	webi18n "github.com/vpshub/site/internal/services/web/platform/i18n"
	"github.com/vpshub/site/internal/services/web/platform/observability"
	"github.com/vpshub/site/internal/services/web/platform/publichandler"
	"github.com/vpshub/site/internal/services/web/platform/requestmeta"
	"github.com/vpshub/site/internal/services/web/routepath"
	"github.com/vpshub/site/internal/services/web/social"
	"github.com/vpshub/site/internal/services/web/templates"
)

// providerLocal labels form logins in metrics.
const providerLocal = "local"

// HTMX response headers that move a failed login back into the modal.
const (
	htmxRetargetHeader = "HX-Retarget"
	htmxReswapHeader   = "HX-Reswap"
)

type handlers struct {
	publichandler.Base
	google      *social.Google
	identityURL string
	metrics     *observability.Metrics
	policy      requestmeta.SchemePolicy
}

func (h handlers) requireSameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.policy.SameOrigin(r) {
			log.Printf("auth: cross-origin request rejected path=%s request_id=%s", r.URL.Path, httpx.RequestIDFrom(r))
			httpx.WriteError(w, apperrors.E(apperrors.KindForbidden, "cross-origin request rejected"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h handlers) handleButtons(w http.ResponseWriter, r *http.Request) {
	tag := webi18n.ResolveTag(r)
	state := h.ReadAuthStore(r).GetAuthState(httpx.RequestContext(r))
	h.writeButtons(w, r, tag, state, false)
}

func (h handlers) handleModal(w http.ResponseWriter, r *http.Request) {
	tag := webi18n.ResolveTag(r)
	register := strings.TrimSpace(r.URL.Query().Get("mode")) == routepath.ModalModeRegister
	h.WriteFragment(w, r, http.StatusOK, templates.AuthModal(templates.AuthModalView{
		Copy:     webi18n.Auth(tag),
		Lang:     tag.String(),
		Register: register,
		Google:   h.google != nil,
	}))
}

// handleLogin signs in with the username field. Failures are logged and the
// modal is re-rendered with the submitted values; no error is shown.
func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	tag := webi18n.ResolveTag(r)
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, apperrors.Wrap(apperrors.KindInvalidInput, "", err))
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	email := strings.TrimSpace(r.PostForm.Get("email"))
	register := r.PostForm.Get("mode") == routepath.ModalModeRegister

	store, err := h.EnsureAuthStore(w, r)
	if err == nil {
		_, err = store.Login(httpx.RequestContext(r), username, r.PostForm.Get("password"))
	}
	h.metrics.LoginAttempted(providerLocal, err)
	if err != nil {
		log.Printf("auth: login failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		w.Header().Set(htmxRetargetHeader, "#"+templates.AuthModalID)
		w.Header().Set(htmxReswapHeader, "innerHTML")
		h.WriteFragment(w, r, http.StatusOK, templates.AuthModal(templates.AuthModalView{
			Copy:     webi18n.Auth(tag),
			Lang:     tag.String(),
			Register: register,
			Google:   h.google != nil,
			Username: username,
			Email:    email,
		}))
		return
	}
	h.writeButtons(w, r, tag, store.GetAuthState(httpx.RequestContext(r)), true)
}

func (h handlers) handleGitHub(w http.ResponseWriter, r *http.Request) {
	tag := webi18n.ResolveTag(r)
	identity := social.GitHubIdentity()
	store, err := h.EnsureAuthStore(w, r)
	if err == nil {
		_, err = store.SocialLogin(httpx.RequestContext(r), identity.Provider, identity.AccessToken, identity.Email)
	}
	h.metrics.LoginAttempted(string(identity.Provider), err)
	if err != nil {
		log.Printf("auth: social login failed provider=%s request_id=%s err=%v", identity.Provider, httpx.RequestIDFrom(r), err)
		h.writeButtons(w, r, tag, h.ReadAuthStore(r).GetAuthState(httpx.RequestContext(r)), false)
		return
	}
	h.writeButtons(w, r, tag, store.GetAuthState(httpx.RequestContext(r)), true)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	tag := webi18n.ResolveTag(r)
	if err := h.ReadAuthStore(r).Logout(httpx.RequestContext(r)); err != nil {
		log.Printf("auth: logout failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
	}
	h.metrics.LoggedOut()
	h.writeButtons(w, r, tag, auth.State{}, false)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) writeButtons(w http.ResponseWriter, r *http.Request, tag language.Tag, state auth.State, closeModal bool) {
	view := templates.AuthButtonsView{
		Copy:            webi18n.Auth(tag),
		Lang:            tag.String(),
		IsAuthenticated: state.IsAuthenticated,
		CloseModal:      closeModal,
	}
	if state.IsAuthenticated {
		view.DashboardURL = dashboardURL(h.identityURL, state.Token)
		if state.User != nil {
			view.Username = state.User.Username
		}
	}
	h.WriteFragment(w, r, http.StatusOK, templates.AuthButtons(view))
}

// dashboardURL links to the identity service, passing the token when there
// is one.
func dashboardURL(identityURL string, token string) string {
	if token == "" {
		return identityURL
	}
	u, err := url.Parse(identityURL)
	if err != nil {
		return identityURL
	}
	query := u.Query()
	query.Set("token", token)
	u.RawQuery = query.Encode()
	return u.String()
}

func homePath(tag language.Tag) string {
	return platformi18n.LocalizedPath(tag, routepath.Root)
}
