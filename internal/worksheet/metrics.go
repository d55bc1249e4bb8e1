package worksheet

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments worksheet generation.
type Metrics struct {
	problemsGenerated *prometheus.CounterVec
	configErrors      *prometheus.CounterVec
	samplingFallbacks *prometheus.CounterVec
	duration          *prometheus.HistogramVec
}

// NewMetrics registers the worksheet metrics with reg. A nil reg uses the
// default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		problemsGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mathgen",
			Name:      "problems_generated_total",
			Help:      "Problems generated, by generator.",
		}, []string{"generator"}),
		configErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mathgen",
			Name:      "configuration_errors_total",
			Help:      "Worksheets rejected because of invalid parameters, by generator.",
		}, []string{"generator"}),
		samplingFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mathgen",
			Name:      "sampling_fallbacks_total",
			Help:      "Problems whose constrained sampling fell back to default values, by generator.",
		}, []string{"generator"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mathgen",
			Name:      "worksheet_duration_seconds",
			Help:      "Time to generate a whole worksheet.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"generator"}),
	}
}
