package web

import (
	"context"
	"flag"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/vpshub/site/internal/services/web"
	"github.com/vpshub/site/internal/services/web/social"
)

func newServerHandler(t *testing.T, cfg web.Config) (http.Handler, func()) {
	t.Helper()
	server, err := web.NewServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return server.Handler(), func() {
		if err := server.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8080")
	}
	if cfg.PricingBaseURL != "https://identity.vpshub.vn" {
		t.Fatalf("PricingBaseURL = %q, want %q", cfg.PricingBaseURL, "https://identity.vpshub.vn")
	}
	if cfg.StorageBackend != "memory" {
		t.Fatalf("StorageBackend = %q, want %q", cfg.StorageBackend, "memory")
	}
	if cfg.LoginLatency != 800*time.Millisecond {
		t.Fatalf("LoginLatency = %s, want 800ms", cfg.LoginLatency)
	}
	if cfg.SocialLatency != time.Second {
		t.Fatalf("SocialLatency = %s, want 1s", cfg.SocialLatency)
	}
	if cfg.GoogleClientID != social.DefaultGoogleClientID {
		t.Fatalf("GoogleClientID = %q, want default client id", cfg.GoogleClientID)
	}
	if cfg.GoogleRedirectURL != "" || cfg.GoogleClientSecret != "" {
		t.Fatalf("Google redirect/secret = %q/%q, want empty", cfg.GoogleRedirectURL, cfg.GoogleClientSecret)
	}
}

func TestDefaultConfigEnablesGoogleSignIn(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	serverCfg, err := serverConfig(cfg)
	if err != nil {
		t.Fatalf("serverConfig() error = %v", err)
	}
	handler, closeServer := newServerHandler(t, serverCfg)
	defer closeServer()

	modal := httptest.NewRecorder()
	handler.ServeHTTP(modal, httptest.NewRequest(http.MethodGet, "/auth/modal?lang=en", nil))
	if !strings.Contains(modal.Body.String(), "social-google") {
		t.Fatalf("modal missing Google button: %q", modal.Body.String())
	}

	start := httptest.NewRecorder()
	handler.ServeHTTP(start, httptest.NewRequest(http.MethodGet, "http://localhost:8080/auth/social/google/start", nil))
	if start.Code != http.StatusFound {
		t.Fatalf("start status = %d, want %d", start.Code, http.StatusFound)
	}
	location, err := url.Parse(start.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse Location: %v", err)
	}
	if location.Host != "accounts.google.com" {
		t.Fatalf("Location host = %q, want accounts.google.com", location.Host)
	}
	query := location.Query()
	if got := query.Get("client_id"); got != social.DefaultGoogleClientID {
		t.Fatalf("client_id = %q, want default client id", got)
	}
	if got, want := query.Get("redirect_uri"), "http://localhost:8080/auth/social/google/callback"; got != want {
		t.Fatalf("redirect_uri = %q, want %q", got, want)
	}
	if got := query.Get("response_type"); got != "token" {
		t.Fatalf("response_type = %q, want token without a client secret", got)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("VPSHUB_WEB_HTTP_ADDR", "0.0.0.0:9000")
	t.Setenv("VPSHUB_WEB_STORAGE", "sqlite")
	t.Setenv("VPSHUB_WEB_GOOGLE_REDIRECT_URL", "https://vpshub.vn/auth/social/google/callback")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:9002", "-login-latency", "10ms"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9002" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "127.0.0.1:9002")
	}
	if cfg.StorageBackend != "sqlite" {
		t.Fatalf("StorageBackend = %q, want %q", cfg.StorageBackend, "sqlite")
	}
	if cfg.LoginLatency != 10*time.Millisecond {
		t.Fatalf("LoginLatency = %s, want 10ms", cfg.LoginLatency)
	}
	if cfg.GoogleClientID != social.DefaultGoogleClientID {
		t.Fatalf("GoogleClientID = %q, want default client id", cfg.GoogleClientID)
	}
}

func TestServerConfigGeneratesVisitorSecret(t *testing.T) {
	t.Parallel()

	got, err := serverConfig(Config{HTTPAddr: "localhost:8080"})
	if err != nil {
		t.Fatalf("serverConfig() error = %v", err)
	}
	if len(got.VisitorSecret) < 16 {
		t.Fatalf("VisitorSecret length = %d, want >= 16", len(got.VisitorSecret))
	}
	if got.UpstreamTimeout <= 0 {
		t.Fatalf("UpstreamTimeout = %s, want positive default", got.UpstreamTimeout)
	}

	kept, err := serverConfig(Config{VisitorSecret: "configured-secret-value"})
	if err != nil {
		t.Fatalf("serverConfig() error = %v", err)
	}
	if kept.VisitorSecret != "configured-secret-value" {
		t.Fatalf("VisitorSecret = %q, want configured value", kept.VisitorSecret)
	}
}

func TestParseConfigRejectsUnknownFlag(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-game-addr", "x"}); err == nil {
		t.Fatalf("ParseConfig() error = nil, want error")
	}
}
