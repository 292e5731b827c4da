package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestPourMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewPourMetrics(reg)
	metrics.IncProcessed("ok")
	metrics.IncProcessed("rejected")
	metrics.AddShortfall(100)
	metrics.ObserveVolume(355)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "pours_processed_total", "outcome", "ok"); err != nil {
		t.Fatalf("fetch processed: %v", err)
	} else if got != 1 {
		t.Fatalf("expected processed=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "pours_processed_total", "outcome", "rejected"); err != nil {
		t.Fatalf("fetch rejected: %v", err)
	} else if got != 1 {
		t.Fatalf("expected rejected=1, got %f", got)
	}

	shortfall := findMetricFamily(mfs, "pour_shortfall_ml_total")
	if shortfall == nil || shortfall.GetMetric()[0].GetCounter().GetValue() != 100 {
		t.Fatalf("expected shortfall=100, got %v", shortfall)
	}

	volume := findMetricFamily(mfs, "pour_volume_ml")
	if volume == nil || volume.GetMetric()[0].GetHistogram().GetSampleSum() != 355 {
		t.Fatalf("expected volume sum 355, got %v", volume)
	}
}

func TestPourMetricsNilSafe(t *testing.T) {
	var metrics *PourMetrics
	metrics.IncProcessed("ok")
	metrics.AddShortfall(10)
	metrics.ObserveVolume(10)

	empty := NewPourMetrics(nil)
	empty.IncProcessed("")
	empty.AddShortfall(-1)
	empty.ObserveVolume(0)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
