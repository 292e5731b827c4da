package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SweepJobMetrics records metadata for scheduled maintenance jobs.
type SweepJobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewSweepJobMetrics registers the sweep job metrics on the provided registerer.
func NewSweepJobMetrics(reg prometheus.Registerer) *SweepJobMetrics {
	if reg == nil {
		return &SweepJobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sweep_job_duration_seconds",
		Help:    "Duration of sweep jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sweep_job_success_total",
		Help: "Successful sweep job executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sweep_job_failure_total",
		Help: "Failed sweep job executions.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure)
	return &SweepJobMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named job.
func (s *SweepJobMetrics) ObserveDuration(job string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(jobLabel(job)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (s *SweepJobMetrics) IncSuccess(job string) {
	if s == nil || s.success == nil {
		return
	}
	s.success.WithLabelValues(jobLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (s *SweepJobMetrics) IncFailure(job string) {
	if s == nil || s.failure == nil {
		return
	}
	s.failure.WithLabelValues(jobLabel(job)).Inc()
}

func jobLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}
