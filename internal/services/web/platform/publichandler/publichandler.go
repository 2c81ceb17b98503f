// Package publichandler provides a shared base for site module handlers.
// It centralizes visitor storage binding, error handling, and page rendering
// that would otherwise be duplicated across modules.
package publichandler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/a-h/templ"

	"github.com/vpshub/site/internal/services/web/auth"
	"github.com/vpshub/site/internal/services/web/platform/pagerender"
	"github.com/vpshub/site/internal/services/web/platform/visitorcookie"
	"github.com/vpshub/site/internal/services/web/platform/weberror"
	"github.com/vpshub/site/internal/services/web/storage"
)

// Base provides visitor-bound auth state plus shared rendering. Embed it in
// handler structs.
type Base struct {
	visitors   *visitorcookie.Codec
	storage    storage.Provider
	authConfig auth.Config
}

// Option configures a Base.
type Option func(*Base)

// WithVisitors attaches the visitor cookie codec and the storage provider.
func WithVisitors(visitors *visitorcookie.Codec, provider storage.Provider) Option {
	return func(b *Base) {
		b.visitors = visitors
		b.storage = provider
	}
}

// WithAuthConfig overrides the auth store configuration.
func WithAuthConfig(cfg auth.Config) Option {
	return func(b *Base) { b.authConfig = cfg }
}

// NewBase builds a handler base with the given options.
func NewBase(opts ...Option) Base {
	b := Base{authConfig: auth.DefaultConfig()}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// ReadAuthStore returns the auth store for the visitor on r without issuing a
// cookie. Requests without a visitor cookie get a store with no storage bound.
func (b Base) ReadAuthStore(r *http.Request) *auth.Store {
	if b.visitors == nil || b.storage == nil {
		return auth.NewStore(nil, b.authConfig)
	}
	visitorID, ok := b.visitors.Read(r)
	if !ok {
		return auth.NewStore(nil, b.authConfig)
	}
	st, err := b.storage.ForVisitor(visitorID)
	if err != nil {
		log.Printf("visitor storage unavailable err=%v", err)
		return auth.NewStore(nil, b.authConfig)
	}
	return auth.NewStore(st, b.authConfig)
}

// EnsureAuthStore returns the auth store for the visitor on r, issuing a
// visitor cookie first when needed.
func (b Base) EnsureAuthStore(w http.ResponseWriter, r *http.Request) (*auth.Store, error) {
	if b.visitors == nil || b.storage == nil {
		return nil, fmt.Errorf("visitor storage is not configured")
	}
	visitorID, err := b.visitors.Ensure(w, r)
	if err != nil {
		return nil, err
	}
	st, err := b.storage.ForVisitor(visitorID)
	if err != nil {
		return nil, fmt.Errorf("bind visitor storage: %w", err)
	}
	return auth.NewStore(st, b.authConfig), nil
}

// WritePage renders a full page, falling back to the error page when
// rendering fails.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.WritePage(w, r, page); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteFragment renders an HTMX fragment.
func (b Base) WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, component templ.Component) {
	if err := pagerender.WriteFragment(w, r, statusCode, component); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteNotFound renders a localized 404 page.
func (Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteNotFound(w, r)
}

// WriteError renders a user-safe error response.
func (Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteError(w, r, err)
}
