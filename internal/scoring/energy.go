package scoring

import (
	"math"

	"github.com/Brickline-Labs/Foresight/internal/store"
)

// EnergyBaseline is the mean/stddev baseline computed over a meter's history.
type EnergyBaseline struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Count  int     `json:"count"`
}

// ReadingAnomaly is one reading flagged against the baseline.
type ReadingAnomaly struct {
	Reading  *store.MeterReading `json:"reading"`
	ZScore   float64             `json:"z_score"`
	Severity string              `json:"severity"` // elevated or anomalous
}

// EnergyReport is the full anomaly detection output for one meter.
type EnergyReport struct {
	MeterType  string           `json:"meter_type"`
	Baseline   EnergyBaseline   `json:"baseline"`
	Anomalies  []ReadingAnomaly `json:"anomalies"`
	Sufficient bool             `json:"sufficient"` // enough history to judge
}

const (
	minReadingsForBaseline = 6
	zElevated              = 1.5
	zAnomalous             = 2.5
)

// DetectAnomalies computes a mean/stddev baseline over the full history and
// flags readings whose z-score clears the elevated or anomalous threshold.
// Fewer than minReadingsForBaseline readings yields an insufficient report.
func DetectAnomalies(meterType string, readings []*store.MeterReading) EnergyReport {
	report := EnergyReport{MeterType: meterType}
	if len(readings) < minReadingsForBaseline {
		report.Baseline.Count = len(readings)
		return report
	}

	report.Sufficient = true
	report.Baseline = computeBaseline(readings)
	if report.Baseline.StdDev == 0 {
		return report
	}

	for _, r := range readings {
		z := (r.Usage - report.Baseline.Mean) / report.Baseline.StdDev
		severity := severityForZ(z)
		if severity == "" {
			continue
		}
		report.Anomalies = append(report.Anomalies, ReadingAnomaly{
			Reading:  r,
			ZScore:   z,
			Severity: severity,
		})
	}
	return report
}

func computeBaseline(readings []*store.MeterReading) EnergyBaseline {
	n := len(readings)
	var sum float64
	for _, r := range readings {
		sum += r.Usage
	}
	mean := sum / float64(n)

	var sqDiff float64
	for _, r := range readings {
		d := r.Usage - mean
		sqDiff += d * d
	}
	// Sample variance (n-1).
	stddev := math.Sqrt(sqDiff / float64(n-1))

	return EnergyBaseline{Mean: mean, StdDev: stddev, Count: n}
}

func severityForZ(z float64) string {
	abs := math.Abs(z)
	switch {
	case abs >= zAnomalous:
		return "anomalous"
	case abs >= zElevated:
		return "elevated"
	default:
		return ""
	}
}
