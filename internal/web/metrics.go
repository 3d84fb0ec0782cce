package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gcdash_http_requests_total",
		Help: "HTTP requests served, by route and status code.",
	}, []string{"route", "code"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gcdash_http_request_duration_seconds",
		Help:    "HTTP request latency, by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

func instrument(route string, next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerDuration(
		requestDuration.MustCurryWith(prometheus.Labels{"route": route}),
		promhttp.InstrumentHandlerCounter(
			requestsTotal.MustCurryWith(prometheus.Labels{"route": route}),
			next,
		),
	)
}

// NewServeMux assembles the dashboard routes with Prometheus
// instrumentation and the /metrics endpoint. The handler still routes
// internally; the mux exists to split the metrics label per route.
func NewServeMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/simulation", instrument("simulation", h))
	mux.Handle("/difference", instrument("difference", h))
	mux.Handle("/api/v1/diff-requests", instrument("diff-requests", h))
	mux.Handle("/healthz", instrument("healthz", h))
	mux.Handle("/", instrument("dashboard", h))
	return mux
}
