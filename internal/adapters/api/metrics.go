package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lifehub",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "API requests by method and status code.",
		},
		[]string{"code", "method"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lifehub",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request round-trip time.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// instrumentTransport wraps a RoundTripper with request count and
// duration collectors.
func instrumentTransport(rt http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperCounter(requestsTotal,
		promhttp.InstrumentRoundTripperDuration(requestDuration, rt))
}
