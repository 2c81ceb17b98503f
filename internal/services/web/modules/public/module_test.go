package public

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vpshub/site/internal/services/web/platform/observability"
	"github.com/vpshub/site/internal/services/web/pricing"
	"github.com/vpshub/site/internal/services/web/routepath"
)

const identityURL = "https://identity.vpshub.vn"

type fakeLister struct {
	plans []pricing.Plan
	err   error
}

func (f fakeLister) ListPlans(context.Context) ([]pricing.Plan, error) {
	return f.plans, f.err
}

func mountHandler(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	if cfg.IdentityURL == "" {
		cfg.IdentityURL = identityURL
	}
	mount, err := New(cfg).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != routepath.Root {
		t.Fatalf("Prefix = %q, want %q", mount.Prefix, routepath.Root)
	}
	return mount.Handler
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func TestModuleIDReturnsPublic(t *testing.T) {
	t.Parallel()

	if got := New(Config{}).ID(); got != "public" {
		t.Fatalf("ID() = %q, want %q", got, "public")
	}
}

func TestMountRequiresIdentityURL(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{}).Mount(); err == nil {
		t.Fatalf("Mount() error = nil, want error")
	}
}

func TestMountRejectsRelativeUpstream(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{IdentityURL: identityURL, UpstreamURL: "/api"}).Mount(); err == nil {
		t.Fatalf("Mount() error = nil, want error")
	}
}

func TestLandingServesBothLocales(t *testing.T) {
	t.Parallel()

	h := mountHandler(t, Config{})
	tests := []struct {
		path    string
		markers []string
	}{
		{
			path:    "/",
			markers: []string{`<html lang="en">`, "Build Fast. Deploy Smarter.", `hx-get="/partials/pricing?lang=en"`, `hx-get="/auth/buttons?lang=en"`, "Loading plans..."},
		},
		{
			path:    "/vi/",
			markers: []string{`<html lang="vi">`, "Xây dựng nhanh.", `hx-get="/partials/pricing?lang=vi"`, "Bảng giá linh hoạt"},
		},
	}
	for _, tc := range tests {
		rr := serve(h, http.MethodGet, tc.path)
		if rr.Code != http.StatusOK {
			t.Fatalf("path %q status = %d, want %d", tc.path, rr.Code, http.StatusOK)
		}
		body := rr.Body.String()
		for _, marker := range tc.markers {
			if !strings.Contains(body, marker) {
				t.Fatalf("path %q body missing %q", tc.path, marker)
			}
		}
	}
}

func TestLocaleRootRedirects(t *testing.T) {
	t.Parallel()

	rr := serve(mountHandler(t, Config{}), http.MethodGet, "/vi")
	if rr.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMovedPermanently)
	}
	if got := rr.Header().Get("Location"); got != "/vi/" {
		t.Fatalf("Location = %q, want %q", got, "/vi/")
	}
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	t.Parallel()

	rr := serve(mountHandler(t, Config{}), http.MethodGet, "/nope")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), "Page not found") {
		t.Fatalf("body missing not-found copy: %q", rr.Body.String())
	}
}

func TestPricingPartialRendersCards(t *testing.T) {
	t.Parallel()

	metrics := observability.NewMetrics()
	plans := []pricing.Plan{
		{ID: "p1", Name: "Basic", MonthlyPrice: 150000, Traffic: "Unlimited", NumberOfIPs: 1},
		{ID: "p2", Name: "Standard", MonthlyPrice: 300000, Traffic: "2 TB", NumberOfIPs: 2},
	}
	h := mountHandler(t, Config{Pricing: fakeLister{plans: plans}, Metrics: metrics})

	rr := serve(h, http.MethodGet, routepath.WithLang(routepath.PricingPartial, "en"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if got := strings.Count(body, "<article"); got != len(plans) {
		t.Fatalf("card count = %d, want %d", got, len(plans))
	}
	for _, marker := range []string{"Unlimited traffic", "2 IP addresses", "1 IP address", "150,000", "Most Popular", identityURL} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
	if strings.Contains(body, "<html") {
		t.Fatalf("fragment rendered full document")
	}
	assertMetric(t, metrics, `vpshub_pricing_fetch_total{outcome="success"} 1`)
}

func TestPricingPartialRendersErrorState(t *testing.T) {
	t.Parallel()

	h := mountHandler(t, Config{Pricing: fakeLister{err: errors.New("status 500")}})
	rr := serve(h, http.MethodGet, routepath.WithLang(routepath.PricingPartial, "vi"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Không thể tải bảng giá") {
		t.Fatalf("body missing vietnamese error copy: %q", body)
	}
	if strings.Contains(body, "<article") {
		t.Fatalf("error state rendered cards: %q", body)
	}
}

func TestPricingPartialWithUpstreamFailure(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(upstream.Close)
	client, err := pricing.NewClient(upstream.URL, pricing.WithHTTPClient(upstream.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	rr := serve(mountHandler(t, Config{Pricing: client}), http.MethodGet, routepath.PricingPartial)
	if !strings.Contains(rr.Body.String(), "Unable to load pricing plans") {
		t.Fatalf("body missing error copy: %q", rr.Body.String())
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rr := serve(mountHandler(t, Config{}), http.MethodGet, routepath.Health)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"status":"ok"}` {
		t.Fatalf("body = %q", got)
	}
}

func TestAPIProxyForwardsToUpstream(t *testing.T) {
	t.Parallel()

	var gotPath, gotForwardedHost string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotForwardedHost = r.Header.Get("X-Forwarded-Host")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(upstream.Close)

	metrics := observability.NewMetrics()
	h := mountHandler(t, Config{UpstreamURL: upstream.URL, Metrics: metrics})
	rr := serve(h, http.MethodGet, routepath.PricingAPI)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if gotPath != "/api/vps" {
		t.Fatalf("upstream path = %q, want %q", gotPath, "/api/vps")
	}
	if gotForwardedHost != "example.com" {
		t.Fatalf("X-Forwarded-Host = %q, want %q", gotForwardedHost, "example.com")
	}
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("body = %q, want []", rr.Body.String())
	}
	assertMetric(t, metrics, `vpshub_api_proxy_responses_total{class="2xx"} 1`)
}

func TestAPIProxyUnreachableUpstream(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.NotFoundHandler())
	upstreamURL := upstream.URL
	upstream.Close()

	metrics := observability.NewMetrics()
	rr := serve(mountHandler(t, Config{UpstreamURL: upstreamURL, Metrics: metrics}), http.MethodGet, routepath.PricingAPI)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadGateway)
	}
	assertMetric(t, metrics, `vpshub_api_proxy_responses_total{class="5xx"} 1`)
}

func assertMetric(t *testing.T, metrics *observability.Metrics, line string) {
	t.Helper()
	rr := serve(metrics.Handler(), http.MethodGet, routepath.Metrics)
	if !strings.Contains(rr.Body.String(), line) {
		t.Fatalf("metrics missing %q", line)
	}
}
