// Package metrics exposes Prometheus collectors for crop recommendations.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
)

// Outcome labels for crop_recommendations_total
const (
	OutcomeOK         = "ok"
	OutcomeOutOfRange = "out_of_range"
	OutcomeError      = "error"
)

// Metrics groups the service collectors
type Metrics struct {
	Recommendations *prometheus.CounterVec
	Duration        prometheus.Histogram
	TopPicks        *prometheus.CounterVec
	CropFaults      *prometheus.CounterVec
}

// New creates and registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crop_recommendations_total",
			Help: "Recommendations served, by outcome.",
		}, []string{"outcome"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "crop_recommendation_duration_seconds",
			Help:    "Time spent computing a recommendation.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		TopPicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crop_top_pick_total",
			Help: "Times each crop was the top recommendation.",
		}, []string{"crop"}),
		CropFaults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crop_evaluation_faults_total",
			Help: "Per-crop inference faults degraded to a zero score.",
		}, []string{"crop"}),
	}

	reg.MustRegister(m.Recommendations, m.Duration, m.TopPicks, m.CropFaults)
	return m
}

// ObserveRecommendation records one Recommend call.
func (m *Metrics) ObserveRecommendation(rec *domain.Recommendation, err error, elapsed time.Duration) {
	m.Duration.Observe(elapsed.Seconds())

	switch {
	case err == nil:
		m.Recommendations.WithLabelValues(OutcomeOK).Inc()
		if rec != nil && rec.Top != nil {
			m.TopPicks.WithLabelValues(rec.Top.Crop).Inc()
		}
	case errors.Is(err, domain.ErrOutOfRange):
		m.Recommendations.WithLabelValues(OutcomeOutOfRange).Inc()
	default:
		m.Recommendations.WithLabelValues(OutcomeError).Inc()
	}
}

// CropFault has the recommender.FaultHandler signature.
func (m *Metrics) CropFault(crop string, _ error) {
	m.CropFaults.WithLabelValues(crop).Inc()
}
