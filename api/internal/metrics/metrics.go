package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Identify outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeDemo     = "demo"
	OutcomeBadInput = "bad_input"
	OutcomeUpstream = "upstream_error"
	OutcomeParse    = "parse_error"
)

var (
	once sync.Once

	// IdentifyTotal counts POST /api/identify requests by outcome.
	IdentifyTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "plantid",
		Subsystem: "identify",
		Name:      "requests_total",
		Help:      "Total number of identification requests, labeled by outcome.",
	}, []string{"outcome"})

	// IdentifyDurationSeconds is end-to-end handler time per identification.
	IdentifyDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "plantid",
		Subsystem: "identify",
		Name:      "duration_seconds",
		Help:      "End-to-end time to answer an identification request.",
		Buckets:   []float64{0.01, 0.05, 0.25, 0.5, 1, 2, 5, 10, 20, 60, 180},
	}, []string{"outcome"})

	// ProviderDurationSeconds is the time spent in one vision provider call.
	ProviderDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "plantid",
		Subsystem: "provider",
		Name:      "call_duration_seconds",
		Help:      "Time spent in a vision provider call, labeled by provider and result.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 60, 180},
	}, []string{"provider", "result"})

	// CatalogueTotal counts catalogue reads.
	CatalogueTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "plantid",
		Subsystem: "catalogue",
		Name:      "requests_total",
		Help:      "Total number of catalogue requests, labeled by route.",
	}, []string{"route"})
)

// Register registers the service metrics with the default Prometheus
// registry. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			IdentifyTotal,
			IdentifyDurationSeconds,
			ProviderDurationSeconds,
			CatalogueTotal,
		)
	})
}

func ObserveIdentify(outcome string, d time.Duration) {
	IdentifyTotal.WithLabelValues(outcome).Inc()
	IdentifyDurationSeconds.WithLabelValues(outcome).Observe(d.Seconds())
}

func ObserveProvider(provider string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ProviderDurationSeconds.WithLabelValues(provider, result).Observe(d.Seconds())
}
