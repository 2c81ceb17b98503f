package public

import (
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vpshub/site/internal/services/web/platform/httpx"
	"github.com/vpshub/site/internal/services/web/platform/observability"
)

// newAPIProxy forwards /api/ requests to target unchanged.
func newAPIProxy(target *url.URL, transport http.RoundTripper, metrics *observability.Metrics) http.Handler {
	if transport == nil {
		transport = otelhttp.NewTransport(http.DefaultTransport)
	}
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		Transport: transport,
		ModifyResponse: func(resp *http.Response) error {
			metrics.ProxyResponded(resp.StatusCode)
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			metrics.ProxyResponded(http.StatusBadGateway)
			log.Printf("api proxy failed method=%s path=%s request_id=%s err=%v", r.Method, r.URL.Path, httpx.RequestIDFrom(r), err)
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		},
	}
}
