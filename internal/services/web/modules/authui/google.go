package authui

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"

	platformi18n "github.com/vpshub/site/internal/platform/i18n"
	"github.com/vpshub/site/internal/services/web/auth"
	"github.com/vpshub/site/internal/services/web/platform/httpx"
	webi18n "github.com/vpshub/site/internal/services/web/platform/i18n"
	"github.com/vpshub/site/internal/services/web/platform/pagerender"
	"github.com/vpshub/site/internal/services/web/routepath"
	"github.com/vpshub/site/internal/services/web/social"
	"github.com/vpshub/site/internal/services/web/templates"
)

// flowCookieName holds the in-flight Google flow between start and callback.
const flowCookieName = "vpshub_oauth_flow"

const flowCookieMaxAge = 10 * time.Minute

var errFlowMissing = errors.New("oauth flow cookie missing or malformed")

// googleFlow is what the flow cookie carries from start to callback.
type googleFlow struct {
	social.FlowState
	// RedirectURL is the callback URL sent to Google; the code exchange must
	// repeat it.
	RedirectURL string
	Tag         language.Tag
}

func (h handlers) handleGoogleStart(w http.ResponseWriter, r *http.Request) {
	tag := webi18n.ResolveTag(r)
	if h.google == nil {
		log.Printf("auth: google sign-in is not configured request_id=%s", httpx.RequestIDFrom(r))
		httpx.WriteRedirect(w, r, homePath(tag))
		return
	}
	state, err := social.NewFlowState()
	if err != nil {
		log.Printf("auth: google start failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		httpx.WriteRedirect(w, r, homePath(tag))
		return
	}
	flow := googleFlow{
		FlowState:   state,
		RedirectURL: h.google.RedirectURL(h.policy.Origin(r)),
		Tag:         tag,
	}
	h.writeFlowCookie(w, r, flow)
	httpx.WriteRedirect(w, r, h.google.AuthCodeURL(flow.FlowState, flow.RedirectURL))
}

// handleGoogleCallback finishes the flow and always lands the visitor back
// on the landing page; failures are only logged. In the token flow the
// token is in the URL fragment, so the callback serves the relay page and
// keeps the flow cookie for handleGoogleToken.
func (h handlers) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	flow, flowErr := readFlowCookie(r)
	query := r.URL.Query()
	if h.google != nil && h.google.Implicit() && query.Get("code") == "" && query.Get("error") == "" {
		h.WritePage(w, r, pagerender.Page{
			Tag:  flow.Tag,
			Body: templates.GoogleRelay(templates.GoogleRelayView{Copy: webi18n.Auth(flow.Tag), Lang: flow.Tag.String()}),
		})
		return
	}
	h.clearFlowCookie(w, r)
	err := h.completeGoogle(w, r, flow, flowErr)
	h.finishGoogle(w, r, flow.Tag, err, http.StatusFound)
}

// handleGoogleToken receives the access token the relay page read from the
// callback fragment.
func (h handlers) handleGoogleToken(w http.ResponseWriter, r *http.Request) {
	flow, flowErr := readFlowCookie(r)
	h.clearFlowCookie(w, r)
	err := h.completeGoogleToken(w, r, flow, flowErr)
	h.finishGoogle(w, r, flow.Tag, err, http.StatusSeeOther)
}

func (h handlers) finishGoogle(w http.ResponseWriter, r *http.Request, tag language.Tag, err error, status int) {
	h.metrics.LoginAttempted(string(auth.ProviderGoogle), err)
	if err != nil {
		log.Printf("auth: google sign-in failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
	}
	http.Redirect(w, r, homePath(tag), status)
}

func (h handlers) completeGoogle(w http.ResponseWriter, r *http.Request, flow googleFlow, flowErr error) error {
	query := r.URL.Query()
	if err := checkGoogleReturn(h.google, query.Get("error"), query.Get("state"), flow, flowErr); err != nil {
		return err
	}
	ctx := httpx.RequestContext(r)
	identity, err := h.google.Complete(ctx, query.Get("code"), flow.FlowState, flow.RedirectURL)
	if err != nil {
		return err
	}
	return h.socialLogin(w, r, identity)
}

func (h handlers) completeGoogleToken(w http.ResponseWriter, r *http.Request, flow googleFlow, flowErr error) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	if err := checkGoogleReturn(h.google, r.PostForm.Get("error"), r.PostForm.Get("state"), flow, flowErr); err != nil {
		return err
	}
	identity, err := h.google.CompleteToken(httpx.RequestContext(r), r.PostForm.Get("access_token"))
	if err != nil {
		return err
	}
	return h.socialLogin(w, r, identity)
}

// checkGoogleReturn validates what Google sent back against the flow cookie.
func checkGoogleReturn(google *social.Google, providerErr, state string, flow googleFlow, flowErr error) error {
	if google == nil {
		return errors.New("google sign-in is not configured")
	}
	if providerErr = strings.TrimSpace(providerErr); providerErr != "" {
		return errors.New("provider returned " + providerErr)
	}
	if flowErr != nil {
		return flowErr
	}
	if subtle.ConstantTimeCompare([]byte(state), []byte(flow.State)) != 1 {
		return errors.New("oauth state mismatch")
	}
	return nil
}

func (h handlers) socialLogin(w http.ResponseWriter, r *http.Request, identity social.Identity) error {
	store, err := h.EnsureAuthStore(w, r)
	if err != nil {
		return err
	}
	_, err = store.SocialLogin(httpx.RequestContext(r), identity.Provider, identity.AccessToken, identity.Email)
	return err
}

func (h handlers) writeFlowCookie(w http.ResponseWriter, r *http.Request, flow googleFlow) {
	value := url.Values{
		"state":    {flow.State},
		"verifier": {flow.Verifier},
		"redirect": {flow.RedirectURL},
		"lang":     {flow.Tag.String()},
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flowCookieName,
		Value:    value.Encode(),
		Path:     routepath.AuthPrefix,
		MaxAge:   int(flowCookieMaxAge / time.Second),
		HttpOnly: true,
		Secure:   h.policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h handlers) clearFlowCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     flowCookieName,
		Value:    "",
		Path:     routepath.AuthPrefix,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// readFlowCookie returns the stored flow. Its locale falls back to the
// default when the cookie is unusable.
func readFlowCookie(r *http.Request) (googleFlow, error) {
	flow := googleFlow{Tag: platformi18n.DefaultTag()}
	cookie, err := r.Cookie(flowCookieName)
	if err != nil {
		return flow, errFlowMissing
	}
	values, err := url.ParseQuery(cookie.Value)
	if err != nil {
		return flow, errFlowMissing
	}
	if tag, ok := platformi18n.ParseTag(values.Get("lang")); ok {
		flow.Tag = tag
	}
	flow.State = values.Get("state")
	flow.Verifier = values.Get("verifier")
	flow.RedirectURL = values.Get("redirect")
	if flow.State == "" || flow.Verifier == "" || flow.RedirectURL == "" {
		return googleFlow{Tag: flow.Tag}, errFlowMissing
	}
	return flow, nil
}
