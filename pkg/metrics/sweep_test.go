package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestSweepJobMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewSweepJobMetrics(reg)
	job := "test-job"
	metrics.ObserveDuration(job, 250*time.Millisecond)
	metrics.IncSuccess(job)
	metrics.IncSuccess(job)
	metrics.IncFailure(job)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "sweep_job_success_total", "job", job); err != nil {
		t.Fatalf("fetch success: %v", err)
	} else if got != 2 {
		t.Fatalf("expected success=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "sweep_job_failure_total", "job", job); err != nil {
		t.Fatalf("fetch failure: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failure=1, got %f", got)
	}

	duration := findMetricFamily(mfs, "sweep_job_duration_seconds")
	if duration == nil || duration.GetMetric()[0].GetHistogram().GetSampleCount() != 1 {
		t.Fatalf("expected one duration sample, got %v", duration)
	}
}

func TestSweepJobMetricsNilSafe(t *testing.T) {
	var metrics *SweepJobMetrics
	metrics.ObserveDuration("job", time.Second)
	metrics.IncSuccess("job")
	metrics.IncFailure("job")

	empty := NewSweepJobMetrics(nil)
	empty.ObserveDuration("", 0)
	empty.IncSuccess("")
	empty.IncFailure("")
}
