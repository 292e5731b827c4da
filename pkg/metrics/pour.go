package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PourMetrics records pour processing outcomes.
type PourMetrics struct {
	processed *prometheus.CounterVec
	shortfall prometheus.Counter
	volume    prometheus.Histogram
}

// NewPourMetrics registers the pour metrics on the provided registerer.
func NewPourMetrics(reg prometheus.Registerer) *PourMetrics {
	if reg == nil {
		return &PourMetrics{}
	}
	processed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pours_processed_total",
		Help: "Processed pours by outcome.",
	}, []string{"outcome"})
	shortfall := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pour_shortfall_ml_total",
		Help: "Unauthorized pour volume in milliliters.",
	})
	volume := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pour_volume_ml",
		Help:    "Distribution of pour volume in milliliters.",
		Buckets: []float64{50, 150, 355, 500, 1000, 2000},
	})
	reg.MustRegister(processed, shortfall, volume)
	return &PourMetrics{
		processed: processed,
		shortfall: shortfall,
		volume:    volume,
	}
}

// IncProcessed increments the processed counter for the given outcome.
func (p *PourMetrics) IncProcessed(outcome string) {
	if p == nil || p.processed == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	p.processed.WithLabelValues(outcome).Inc()
}

// AddShortfall accumulates unauthorized volume.
func (p *PourMetrics) AddShortfall(volumeML int64) {
	if p == nil || p.shortfall == nil || volumeML <= 0 {
		return
	}
	p.shortfall.Add(float64(volumeML))
}

// ObserveVolume records the size of a processed pour.
func (p *PourMetrics) ObserveVolume(volumeML int64) {
	if p == nil || p.volume == nil {
		return
	}
	p.volume.Observe(float64(volumeML))
}
