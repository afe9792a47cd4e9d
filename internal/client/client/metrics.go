package client

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the client-side counters. A nil *Metrics disables them.
type Metrics struct {
	Requests           *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	Refreshes          *prometheus.CounterVec
	CredentialsCleared prometheus.Counter
}

// NewMetrics registers the client metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agentsynergy_client_requests_total",
			Help: "HTTP requests sent to the backend, including refresh exchanges and replays",
		}, []string{"code", "method"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agentsynergy_client_request_duration_seconds",
			Help:    "Latency of backend HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		Refreshes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agentsynergy_client_token_refresh_total",
			Help: "Access token refresh exchanges by result",
		}, []string{"result"}),
		CredentialsCleared: f.NewCounter(prometheus.CounterOpts{
			Name: "agentsynergy_client_credentials_cleared_total",
			Help: "Times persisted credentials were cleared after an unrecoverable 401",
		}),
	}
}

func (m *Metrics) instrument(rt http.RoundTripper) http.RoundTripper {
	if m == nil {
		return rt
	}
	return promhttp.InstrumentRoundTripperCounter(m.Requests,
		promhttp.InstrumentRoundTripperDuration(m.RequestDuration, rt))
}

func (m *Metrics) refreshed(ok bool) {
	if m == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	m.Refreshes.WithLabelValues(result).Inc()
}

func (m *Metrics) cleared() {
	if m == nil {
		return
	}
	m.CredentialsCleared.Inc()
}
