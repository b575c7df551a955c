package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	StagesProcessed *prometheus.CounterVec
	APIErrors       prometheus.Counter
	RequestSeconds  *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		StagesProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geoscout_lookup_stages_total",
			Help: "Total number of processed lookup stages.",
		}, []string{"stage", "status"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "geoscout_provider_api_errors_total",
			Help: "Total number of errors received from the upstream provider APIs.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geoscout_provider_request_duration_seconds",
			Help:    "Duration of requests to the upstream provider APIs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
	}
}
