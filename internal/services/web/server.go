package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vpshub/site/internal/platform/timeouts"
	"github.com/vpshub/site/internal/services/web/auth"
	"github.com/vpshub/site/internal/services/web/modules"
	"github.com/vpshub/site/internal/services/web/platform/httpx"
	"github.com/vpshub/site/internal/services/web/platform/observability"
	"github.com/vpshub/site/internal/services/web/platform/requestmeta"
	"github.com/vpshub/site/internal/services/web/platform/visitorcookie"
	"github.com/vpshub/site/internal/services/web/pricing"
	"github.com/vpshub/site/internal/services/web/routepath"
	"github.com/vpshub/site/internal/services/web/social"
	"github.com/vpshub/site/internal/services/web/static"
	"github.com/vpshub/site/internal/services/web/storage"
	"github.com/vpshub/site/internal/services/web/storage/memory"
	"github.com/vpshub/site/internal/services/web/storage/sqlite"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// otelOperation names the server span for every request.
const otelOperation = "vpshub-web"

// Config defines the inputs for the site server.
type Config struct {
	HTTPAddr       string
	PricingBaseURL string
	IdentityURL    string

	StorageBackend string
	SQLitePath     string
	// StorageRetention bounds how long an idle visitor's values survive.
	// Zero disables the sweeper.
	StorageRetention time.Duration
	SweepInterval    time.Duration

	VisitorSecret string
	VisitorMaxAge time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	LoginLatency    time.Duration
	SocialLatency   time.Duration
	UpstreamTimeout time.Duration

	RateLimitPerSecond float64
	RateLimitBurst     int

	// TrustForwardedProto honors X-Forwarded-Proto for the scheme and
	// X-Forwarded-For for rate limit keys.
	TrustForwardedProto bool
}

// Server hosts the site HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	storage    storage.Provider
	sweepStop  context.CancelFunc
	sweepDone  <-chan struct{}
}

// NewHandler mounts every module plus static assets and metrics behind the
// shared middleware chain.
func NewHandler(deps modules.Dependencies) (http.Handler, error) {
	mux := http.NewServeMux()
	for _, module := range modules.DefaultModules(deps) {
		mount, err := module.Mount()
		if err != nil {
			return nil, fmt.Errorf("mount module %s: %w", module.ID(), err)
		}
		mux.Handle(mount.Prefix, mount.Handler)
	}

	mux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(static.FS))))
	mux.Handle(http.MethodGet+" "+routepath.Metrics, deps.Metrics.Handler())

	return httpx.Chain(mux,
		traceRequests,
		httpx.RequestID(),
		observability.RequestLogger(log.Default()),
		httpx.RecoverPanic(),
	), nil
}

func traceRequests(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, otelOperation)
}

// NewServer builds a configured site server. The caller owns Close.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if strings.TrimSpace(config.IdentityURL) == "" {
		return nil, errors.New("identity url is required")
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto}

	visitors, err := visitorcookie.New(visitorcookie.Config{
		Secret: config.VisitorSecret,
		MaxAge: config.VisitorMaxAge,
		Policy: policy,
	})
	if err != nil {
		return nil, err
	}
	pricingClient, err := pricing.NewClient(config.PricingBaseURL, pricing.WithTimeout(config.UpstreamTimeout))
	if err != nil {
		return nil, err
	}
	google, err := newGoogle(config)
	if err != nil {
		return nil, err
	}

	provider, sweepTarget, err := openStorage(ctx, config)
	if err != nil {
		return nil, err
	}

	authConfig := auth.DefaultConfig()
	if config.LoginLatency > 0 {
		authConfig.LoginLatency = config.LoginLatency
	}
	if config.SocialLatency > 0 {
		authConfig.SocialLatency = config.SocialLatency
	}

	handler, err := NewHandler(modules.Dependencies{
		IdentityURL: config.IdentityURL,
		Pricing:     pricingClient,
		UpstreamURL: config.PricingBaseURL,
		Visitors:    visitors,
		Storage:     provider,
		Auth:        authConfig,
		Google:      google,
		Policy:      policy,
		Limiter:     httpx.NewClientLimiter(config.RateLimitPerSecond, config.RateLimitBurst, httpx.WithForwardedClient(config.TrustForwardedProto)),
		Metrics:     observability.NewMetrics(),
	})
	if err != nil {
		_ = provider.Close()
		return nil, fmt.Errorf("build handler: %w", err)
	}

	s := &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		storage: provider,
	}
	if sweepTarget != nil && config.StorageRetention > 0 {
		s.sweepStop, s.sweepDone = startStorageSweeper(sweepTarget, config.StorageRetention, config.SweepInterval, time.Now)
	}
	return s, nil
}

// newGoogle returns nil when no client id is configured. Without a redirect
// URL the callback is derived from each request's origin; without a client
// secret Google's token flow is used.
func newGoogle(config Config) (*social.Google, error) {
	if strings.TrimSpace(config.GoogleClientID) == "" {
		log.Printf("google sign-in disabled: client id not set")
		return nil, nil
	}
	google, err := social.NewGoogle(social.GoogleConfig{
		ClientID:     config.GoogleClientID,
		ClientSecret: config.GoogleClientSecret,
		RedirectURL:  config.GoogleRedirectURL,
	})
	if err != nil {
		return nil, fmt.Errorf("configure google sign-in: %w", err)
	}
	return google, nil
}

// openStorage returns the visitor storage provider and the purger the
// sweeper runs against.
func openStorage(ctx context.Context, config Config) (storage.Provider, purger, error) {
	switch backend := strings.ToLower(strings.TrimSpace(config.StorageBackend)); backend {
	case "", StorageMemory:
		store := memory.New()
		return store, store, nil
	case StorageSQLite:
		store, err := sqlite.Open(ctx, config.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open visitor storage: %w", err)
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return http.NotFoundHandler()
	}
	return s.httpServer.Handler
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening addr=%s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops the storage sweeper and releases visitor storage.
func (s *Server) Close() error {
	if s == nil {
		return nil
	}
	if s.sweepStop != nil {
		s.sweepStop()
		<-s.sweepDone
	}
	if s.storage == nil {
		return nil
	}
	return s.storage.Close()
}
