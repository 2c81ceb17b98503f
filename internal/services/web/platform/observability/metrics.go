package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds the site's collectors on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	pricingFetch  *prometheus.CounterVec
	logins        *prometheus.CounterVec
	logouts       prometheus.Counter
	upstreamProxy *prometheus.CounterVec
}

// NewMetrics registers the site collectors plus Go runtime and process
// collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pricingFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vpshub",
			Subsystem: "pricing",
			Name:      "fetch_total",
			Help:      "Pricing plan fetches by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vpshub",
			Subsystem: "auth",
			Name:      "login_total",
			Help:      "Mock logins by provider and outcome.",
		}, []string{"provider", "outcome"}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vpshub",
			Subsystem: "auth",
			Name:      "logout_total",
			Help:      "Logouts served.",
		}),
		upstreamProxy: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vpshub",
			Subsystem: "api_proxy",
			Name:      "responses_total",
			Help:      "Proxied upstream API responses by status class.",
		}, []string{"class"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.pricingFetch,
		m.logins,
		m.logouts,
		m.upstreamProxy,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// PricingFetched records one pricing fetch.
func (m *Metrics) PricingFetched(err error) {
	if m == nil {
		return
	}
	m.pricingFetch.WithLabelValues(outcome(err)).Inc()
}

// LoginAttempted records one login for provider ("local" for the form).
func (m *Metrics) LoginAttempted(provider string, err error) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(provider, outcome(err)).Inc()
}

// LoggedOut records one logout.
func (m *Metrics) LoggedOut() {
	if m == nil {
		return
	}
	m.logouts.Inc()
}

// ProxyResponded records the status class of one proxied upstream response.
func (m *Metrics) ProxyResponded(status int) {
	if m == nil {
		return
	}
	class := "5xx"
	switch {
	case status < 300:
		class = "2xx"
	case status < 400:
		class = "3xx"
	case status < 500:
		class = "4xx"
	}
	m.upstreamProxy.WithLabelValues(class).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
