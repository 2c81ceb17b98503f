package social

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/vpshub/site/internal/platform/timeouts"
	"github.com/vpshub/site/internal/services/web/auth"
	"github.com/vpshub/site/internal/services/web/routepath"
)

// DefaultGoogleClientID is the public OAuth client registered for the site.
const DefaultGoogleClientID = "191036157586-7ioan5ct6dd23qfqqk728pip3tvpt0p2.apps.googleusercontent.com"

// GoogleUserInfoURL returns the signed-in user's profile.
const GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

var googleScopes = []string{"openid", "email", "profile"}

// GoogleConfig configures the Google provider. Endpoint and UserInfoURL
// default to Google's production endpoints. An empty RedirectURL makes
// callers derive one per request with RedirectURL. Without a ClientSecret
// the provider uses the browser token flow, which needs no exchange.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Endpoint     oauth2.Endpoint
	UserInfoURL  string
	HTTPClient   *http.Client
}

// Google runs the sign-in flow against Google: the authorization-code flow
// with PKCE when a client secret is configured, the token flow otherwise.
type Google struct {
	oauth       *oauth2.Config
	implicit    bool
	userInfoURL string
	httpClient  *http.Client
}

// NewGoogle validates cfg and builds the provider.
func NewGoogle(cfg GoogleConfig) (*Google, error) {
	clientID := strings.TrimSpace(cfg.ClientID)
	if clientID == "" {
		return nil, errors.New("google client id is required")
	}
	redirectURL := strings.TrimSpace(cfg.RedirectURL)
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" || endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}
	userInfoURL := strings.TrimSpace(cfg.UserInfoURL)
	if userInfoURL == "" {
		userInfoURL = GoogleUserInfoURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeouts.UpstreamRequest,
		}
	}
	clientSecret := strings.TrimSpace(cfg.ClientSecret)
	return &Google{
		implicit: clientSecret == "",
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoint,
			Scopes:       googleScopes,
		},
		userInfoURL: userInfoURL,
		httpClient:  httpClient,
	}, nil
}

// Implicit reports whether Google returns the access token to the browser
// in the callback fragment instead of an authorization code.
func (g *Google) Implicit() bool {
	return g.implicit
}

// RedirectURL returns the configured callback URL, or the callback path
// under origin when none is configured.
func (g *Google) RedirectURL(origin string) string {
	if g.oauth.RedirectURL != "" {
		return g.oauth.RedirectURL
	}
	return strings.TrimRight(origin, "/") + routepath.AuthGoogleReturn
}

// AuthCodeURL returns the consent page URL for flow, sending Google back to
// redirectURL.
func (g *Google) AuthCodeURL(flow FlowState, redirectURL string) string {
	opts := []oauth2.AuthCodeOption{oauth2.SetAuthURLParam("redirect_uri", redirectURL)}
	if g.implicit {
		opts = append(opts, oauth2.SetAuthURLParam("response_type", "token"))
	} else {
		opts = append(opts, oauth2.S256ChallengeOption(flow.Verifier))
	}
	return g.oauth.AuthCodeURL(flow.State, opts...)
}

// Complete exchanges code for an access token and looks up the user's email.
// redirectURL must match the one sent to the consent page. A userinfo
// response without an email is not an error.
func (g *Google) Complete(ctx context.Context, code string, flow FlowState, redirectURL string) (Identity, error) {
	if g.implicit {
		return Identity{}, errors.New("google token flow has no code exchange")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return Identity{}, errors.New("authorization code is required")
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	token, err := g.oauth.Exchange(ctx, code,
		oauth2.VerifierOption(flow.Verifier),
		oauth2.SetAuthURLParam("redirect_uri", redirectURL),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("exchange google code: %w", err)
	}
	return g.identify(ctx, token)
}

// CompleteToken looks up the user's email with an access token the browser
// received from the token flow.
func (g *Google) CompleteToken(ctx context.Context, accessToken string) (Identity, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return Identity{}, errors.New("access token is required")
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	return g.identify(ctx, &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
}

func (g *Google) identify(ctx context.Context, token *oauth2.Token) (Identity, error) {
	email, err := g.fetchEmail(ctx, token)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Provider: auth.ProviderGoogle, AccessToken: token.AccessToken, Email: email}, nil
}

func (g *Google) fetchEmail(ctx context.Context, token *oauth2.Token) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return "", fmt.Errorf("build userinfo request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch google userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch google userinfo: status %d", resp.StatusCode)
	}

	var payload struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode google userinfo: %w", err)
	}
	return strings.TrimSpace(payload.Email), nil
}
