package requestmeta

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSameOrigin(t *testing.T) {
	t.Parallel()

	newPost := func(target string, headers map[string]string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, target, nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req
	}

	tests := []struct {
		name   string
		req    *http.Request
		policy SchemePolicy
		want   bool
	}{
		{
			name: "origin matches",
			req:  newPost("https://vpshub.test/auth/logout", map[string]string{"Origin": "https://vpshub.test"}),
			want: true,
		},
		{
			name: "referer used without origin",
			req:  newPost("https://vpshub.test/auth/logout", map[string]string{"Referer": "https://vpshub.test/vi/"}),
			want: true,
		},
		{
			name: "foreign host",
			req:  newPost("https://vpshub.test/auth/logout", map[string]string{"Origin": "https://evil.test"}),
			want: false,
		},
		{
			name: "scheme mismatch",
			req:  newPost("https://vpshub.test/auth/logout", map[string]string{"Origin": "http://vpshub.test"}),
			want: false,
		},
		{
			name: "explicit default port",
			req:  newPost("https://vpshub.test/auth/logout", map[string]string{"Origin": "https://vpshub.test:443"}),
			want: true,
		},
		{
			name: "no proof",
			req:  newPost("https://vpshub.test/auth/logout", nil),
			want: false,
		},
		{
			name: "untrusted forwarded proto ignored",
			req: newPost("https://vpshub.test/auth/logout", map[string]string{
				"Origin":            "http://vpshub.test",
				"X-Forwarded-Proto": "http",
			}),
			want: false,
		},
		{
			name: "trusted forwarded proto used",
			req: newPost("https://vpshub.test/auth/logout", map[string]string{
				"Origin":            "http://vpshub.test",
				"X-Forwarded-Proto": "http",
			}),
			policy: SchemePolicy{TrustForwardedProto: true},
			want:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.policy.SameOrigin(tc.req); got != tc.want {
				t.Fatalf("SameOrigin() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSameOriginNilRequest(t *testing.T) {
	t.Parallel()

	if (SchemePolicy{}).SameOrigin(nil) {
		t.Fatalf("SameOrigin(nil) = true, want false")
	}
}

func TestIsHTTPS(t *testing.T) {
	t.Parallel()

	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	if (SchemePolicy{}).IsHTTPS(plain) {
		t.Fatalf("IsHTTPS(plain) = true, want false")
	}

	withTLS := httptest.NewRequest(http.MethodGet, "/", nil)
	withTLS.TLS = &tls.ConnectionState{}
	if !(SchemePolicy{}).IsHTTPS(withTLS) {
		t.Fatalf("IsHTTPS(tls) = false, want true")
	}

	forwarded := httptest.NewRequest(http.MethodGet, "/", nil)
	forwarded.Header.Set("X-Forwarded-Proto", "https")
	if (SchemePolicy{}).IsHTTPS(forwarded) {
		t.Fatalf("IsHTTPS(untrusted forwarded) = true, want false")
	}
	if !(SchemePolicy{TrustForwardedProto: true}).IsHTTPS(forwarded) {
		t.Fatalf("IsHTTPS(trusted forwarded) = false, want true")
	}
}

func TestOrigin(t *testing.T) {
	t.Parallel()

	forwarded := httptest.NewRequest(http.MethodGet, "/auth/social/google/start", nil)
	forwarded.Host = "VPSHub.test"
	forwarded.Header.Set("X-Forwarded-Proto", "https")

	tests := []struct {
		name   string
		req    *http.Request
		policy SchemePolicy
		want   string
	}{
		{name: "plain http", req: httptest.NewRequest(http.MethodGet, "http://localhost:8080/", nil), want: "http://localhost:8080"},
		{name: "tls", req: httptest.NewRequest(http.MethodGet, "https://vpshub.test/", nil), want: "https://vpshub.test"},
		{name: "forwarded proto ignored", req: forwarded, want: "http://vpshub.test"},
		{name: "forwarded proto trusted", req: forwarded, policy: SchemePolicy{TrustForwardedProto: true}, want: "https://vpshub.test"},
		{name: "nil request", req: nil, want: ""},
	}
	for _, tc := range tests {
		if got := tc.policy.Origin(tc.req); got != tc.want {
			t.Fatalf("%s: Origin() = %q, want %q", tc.name, got, tc.want)
		}
	}
}
