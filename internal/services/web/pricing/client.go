package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vpshub/site/internal/platform/timeouts"
	apperrors "github.com/vpshub/site/internal/services/web/platform/errors"
	"github.com/vpshub/site/internal/services/web/routepath"
)

const maxResponseBytes = 1 << 20

// Lister lists the current plans.
type Lister interface {
	ListPlans(ctx context.Context) ([]Plan, error)
}

// Client calls the pricing API.
type Client struct {
	endpoint string
	http     *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default traced HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTimeout bounds each upstream request.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// NewClient builds a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("pricing base url %q must be absolute", baseURL)
	}
	c := &Client{
		endpoint: strings.TrimRight(parsed.String(), "/") + routepath.PricingAPI,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeouts.UpstreamRequest,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListPlans performs one GET against the plans endpoint. A non-2xx status or
// an undecodable body is an error.
func (c *Client) ListPlans(ctx context.Context) ([]Plan, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build pricing request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "pricing.error", fmt.Errorf("fetch pricing plans: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "pricing.error", fmt.Errorf("fetch pricing plans: status %d", resp.StatusCode))
	}

	var plans []Plan
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&plans); err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "pricing.error", fmt.Errorf("decode pricing plans: %w", err))
	}
	return plans, nil
}
