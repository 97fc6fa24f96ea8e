package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/Brickline-Labs/Foresight/internal/store"
)

func readings(usages ...float64) []*store.MeterReading {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*store.MeterReading, len(usages))
	for i, u := range usages {
		out[i] = &store.MeterReading{
			MeterType:   "electric",
			Usage:       u,
			ReadingDate: base.AddDate(0, i, 0),
		}
	}
	return out
}

func TestDetectAnomaliesInsufficientHistory(t *testing.T) {
	report := DetectAnomalies("electric", readings(100, 102, 98))
	if report.Sufficient {
		t.Error("3 readings should be insufficient")
	}
	if len(report.Anomalies) != 0 {
		t.Errorf("expected no anomalies, got %d", len(report.Anomalies))
	}
	if report.Baseline.Count != 3 {
		t.Errorf("expected count 3, got %d", report.Baseline.Count)
	}
}

func TestDetectAnomaliesStableUsage(t *testing.T) {
	report := DetectAnomalies("electric", readings(100, 102, 98, 101, 99, 100))
	if !report.Sufficient {
		t.Fatal("6 readings should be sufficient")
	}
	if len(report.Anomalies) != 0 {
		t.Errorf("stable usage should produce no anomalies, got %d", len(report.Anomalies))
	}
	if math.Abs(report.Baseline.Mean-100) > 0.001 {
		t.Errorf("expected mean 100, got %f", report.Baseline.Mean)
	}
}

func TestDetectAnomaliesFlagsSpike(t *testing.T) {
	report := DetectAnomalies("electric", readings(100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 250))
	if !report.Sufficient {
		t.Fatal("expected sufficient history")
	}
	if len(report.Anomalies) != 1 {
		t.Fatalf("expected exactly the spike flagged, got %d", len(report.Anomalies))
	}
	a := report.Anomalies[0]
	if a.Reading.Usage != 250 {
		t.Errorf("wrong reading flagged: %f", a.Reading.Usage)
	}
	if a.Severity != "anomalous" {
		t.Errorf("expected anomalous, got %s", a.Severity)
	}
	if a.ZScore <= zAnomalous {
		t.Errorf("expected z above %f, got %f", zAnomalous, a.ZScore)
	}
}

func TestDetectAnomaliesZeroVariance(t *testing.T) {
	report := DetectAnomalies("water", readings(50, 50, 50, 50, 50, 50))
	if !report.Sufficient {
		t.Fatal("expected sufficient history")
	}
	if report.Baseline.StdDev != 0 {
		t.Errorf("expected zero stddev, got %f", report.Baseline.StdDev)
	}
	if len(report.Anomalies) != 0 {
		t.Error("zero variance must not divide by zero or flag readings")
	}
}

func TestSeverityForZ(t *testing.T) {
	tests := []struct {
		z    float64
		want string
	}{
		{0, ""},
		{1.49, ""},
		{1.5, "elevated"},
		{-1.8, "elevated"},
		{2.49, "elevated"},
		{2.5, "anomalous"},
		{-3.0, "anomalous"},
	}
	for _, tt := range tests {
		if got := severityForZ(tt.z); got != tt.want {
			t.Errorf("severityForZ(%.2f) = %q, want %q", tt.z, got, tt.want)
		}
	}
}

func TestComputeBaselineSampleVariance(t *testing.T) {
	b := computeBaseline(readings(2, 4, 4, 4, 5, 5, 7, 9))
	if math.Abs(b.Mean-5) > 0.001 {
		t.Errorf("expected mean 5, got %f", b.Mean)
	}
	// Sample stddev of this classic set is ~2.138 (population is 2.0).
	if math.Abs(b.StdDev-2.138) > 0.01 {
		t.Errorf("expected sample stddev ~2.138, got %f", b.StdDev)
	}
}
