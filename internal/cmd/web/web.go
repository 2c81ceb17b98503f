// Package web parses site flags and launches the marketing site.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	entrypoint "github.com/vpshub/site/internal/platform/cmd"
	"github.com/vpshub/site/internal/platform/id"
	"github.com/vpshub/site/internal/platform/timeouts"
	"github.com/vpshub/site/internal/services/web"
	"github.com/vpshub/site/internal/services/web/social"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr       string `env:"VPSHUB_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	PricingBaseURL string `env:"VPSHUB_WEB_PRICING_BASE_URL" envDefault:"https://identity.vpshub.vn"`
	IdentityURL    string `env:"VPSHUB_WEB_IDENTITY_URL" envDefault:"https://identity.vpshub.vn"`

	StorageBackend   string        `env:"VPSHUB_WEB_STORAGE" envDefault:"memory"`
	SQLitePath       string        `env:"VPSHUB_WEB_SQLITE_PATH" envDefault:"data/web-visitors.db"`
	StorageRetention time.Duration `env:"VPSHUB_WEB_STORAGE_RETENTION" envDefault:"8760h"`

	VisitorSecret string `env:"VPSHUB_WEB_VISITOR_SECRET"`

	GoogleClientID     string `env:"VPSHUB_WEB_GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"VPSHUB_WEB_GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"VPSHUB_WEB_GOOGLE_REDIRECT_URL"`

	LoginLatency    time.Duration `env:"VPSHUB_WEB_LOGIN_LATENCY" envDefault:"800ms"`
	SocialLatency   time.Duration `env:"VPSHUB_WEB_SOCIAL_LATENCY" envDefault:"1s"`
	UpstreamTimeout time.Duration `env:"VPSHUB_WEB_UPSTREAM_TIMEOUT" envDefault:"10s"`

	RateLimitPerSecond float64 `env:"VPSHUB_WEB_RATE_LIMIT_RPS" envDefault:"2"`
	RateLimitBurst     int     `env:"VPSHUB_WEB_RATE_LIMIT_BURST" envDefault:"10"`

	TrustForwardedProto bool `env:"VPSHUB_WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.GoogleClientID) == "" {
		cfg.GoogleClientID = social.DefaultGoogleClientID
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.PricingBaseURL, "pricing-base-url", cfg.PricingBaseURL, "Pricing API base URL; /api/ is proxied here")
	fs.StringVar(&cfg.IdentityURL, "identity-url", cfg.IdentityURL, "Identity service URL linked from plans and the dashboard button")
	fs.StringVar(&cfg.StorageBackend, "storage", cfg.StorageBackend, "Visitor storage backend (memory or sqlite)")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite database path for the sqlite backend")
	fs.StringVar(&cfg.GoogleRedirectURL, "google-redirect-url", cfg.GoogleRedirectURL, "Google OAuth redirect URL; empty derives it from the request origin")
	fs.DurationVar(&cfg.LoginLatency, "login-latency", cfg.LoginLatency, "Simulated login latency")
	fs.DurationVar(&cfg.SocialLatency, "social-latency", cfg.SocialLatency, "Simulated social login latency")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto and X-Forwarded-For from a fronting proxy")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the site server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		serverConfig, err := serverConfig(cfg)
		if err != nil {
			return err
		}
		server, err := web.NewServer(ctx, serverConfig)
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer func() {
			if err := server.Close(); err != nil {
				log.Printf("close web server: %v", err)
			}
		}()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func serverConfig(cfg Config) (web.Config, error) {
	secret := strings.TrimSpace(cfg.VisitorSecret)
	if secret == "" {
		generated, err := id.NewID()
		if err != nil {
			return web.Config{}, fmt.Errorf("generate visitor secret: %w", err)
		}
		secret = generated
		log.Printf("VPSHUB_WEB_VISITOR_SECRET not set; using an ephemeral secret, visitors sign out on restart")
	}
	upstreamTimeout := cfg.UpstreamTimeout
	if upstreamTimeout <= 0 {
		upstreamTimeout = timeouts.UpstreamRequest
	}
	return web.Config{
		HTTPAddr:            cfg.HTTPAddr,
		PricingBaseURL:      cfg.PricingBaseURL,
		IdentityURL:         cfg.IdentityURL,
		StorageBackend:      cfg.StorageBackend,
		SQLitePath:          cfg.SQLitePath,
		StorageRetention:    cfg.StorageRetention,
		VisitorSecret:       secret,
		GoogleClientID:      cfg.GoogleClientID,
		GoogleClientSecret:  cfg.GoogleClientSecret,
		GoogleRedirectURL:   cfg.GoogleRedirectURL,
		LoginLatency:        cfg.LoginLatency,
		SocialLatency:       cfg.SocialLatency,
		UpstreamTimeout:     upstreamTimeout,
		RateLimitPerSecond:  cfg.RateLimitPerSecond,
		RateLimitBurst:      cfg.RateLimitBurst,
		TrustForwardedProto: cfg.TrustForwardedProto,
	}, nil
}
