package publichandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vpshub/site/internal/services/web/auth"
	"github.com/vpshub/site/internal/services/web/platform/visitorcookie"
	"github.com/vpshub/site/internal/services/web/storage/memory"
)

func newTestBase(t *testing.T) Base {
	t.Helper()
	codec, err := visitorcookie.New(visitorcookie.Config{Secret: "0123456789abcdef0123456789abcdef"})
	if err != nil {
		t.Fatalf("visitorcookie.New() error = %v", err)
	}
	cfg := auth.Config{}
	return NewBase(WithVisitors(codec, memory.New()), WithAuthConfig(cfg))
}

func TestReadAuthStoreWithoutCookieIsUnbound(t *testing.T) {
	t.Parallel()

	base := newTestBase(t)
	store := base.ReadAuthStore(httptest.NewRequest(http.MethodGet, "/auth/buttons", nil))
	if state := store.GetAuthState(context.Background()); state.IsAuthenticated {
		t.Fatalf("GetAuthState() = %+v, want unauthenticated", state)
	}
	if _, err := store.Login(context.Background(), "a@b.c", ""); err == nil {
		t.Fatalf("Login() on unbound store error = nil, want error")
	}
}

func TestEnsureAuthStoreIssuesCookieAndPersists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := newTestBase(t)
	rec := httptest.NewRecorder()
	store, err := base.EnsureAuthStore(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	if err != nil {
		t.Fatalf("EnsureAuthStore() error = %v", err)
	}
	if _, err := store.Login(ctx, "alice@example.com", "x"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != visitorcookie.Name {
		t.Fatalf("cookies = %v, want visitor cookie", cookies)
	}

	next := httptest.NewRequest(http.MethodGet, "/auth/buttons", nil)
	next.AddCookie(cookies[0])
	state := base.ReadAuthStore(next).GetAuthState(ctx)
	if !state.IsAuthenticated || state.User.Username != "alice" {
		t.Fatalf("GetAuthState() = %+v, want alice", state)
	}
}

func TestEnsureAuthStoreRequiresConfiguration(t *testing.T) {
	t.Parallel()

	if _, err := NewBase().EnsureAuthStore(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil)); err == nil {
		t.Fatalf("EnsureAuthStore() error = nil, want error")
	}
}

func TestWriteNotFound(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewBase().WriteNotFound(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
