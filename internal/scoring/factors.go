package scoring

// FactorResult captures one factor's contribution to a composite score.
type FactorResult struct {
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Weight    float64 `json:"weight"`
	Weighted  float64 `json:"weighted"`
	Available bool    `json:"available"`
	Reason    string  `json:"reason"`
}

// RiskLevel is the ordered categorical output shared by the screening and
// fraud engines. Ordering: low < medium < high < critical.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ReliabilityRiskLevel maps a 0–100 reliability score to a risk level.
// Higher reliability never yields a higher risk bucket.
func ReliabilityRiskLevel(score float64) RiskLevel {
	switch {
	case score >= 75:
		return RiskLow
	case score >= 55:
		return RiskMedium
	case score >= 35:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// FraudRiskLevel maps a 0–100 fraud score to a risk level. Higher score
// never yields a lower risk bucket.
func FraudRiskLevel(score float64) RiskLevel {
	switch {
	case score < 25:
		return RiskLow
	case score < 50:
		return RiskMedium
	case score < 75:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// FactorMap flattens factor results into a map for persistence alongside
// an assessment.
func FactorMap(factors []FactorResult) map[string]interface{} {
	m := make(map[string]interface{}, len(factors))
	for _, f := range factors {
		m[f.Name] = map[string]interface{}{
			"score":     f.Score,
			"weight":    f.Weight,
			"weighted":  f.Weighted,
			"available": f.Available,
			"reason":    f.Reason,
		}
	}
	return m
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
