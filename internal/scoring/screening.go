package scoring

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Brickline-Labs/Foresight/internal/store"
)

// ScreeningContext bundles all inputs needed to score a single tenant.
type ScreeningContext struct {
	Tenant    *store.Tenant
	Rent      *decimal.Decimal // rent of the current or proposed unit
	Payments  []*store.Payment
	Messages  []*store.Message
	Documents []*store.Document
	Now       time.Time
}

// ScreeningResult captures the complete screening output for one tenant.
type ScreeningResult struct {
	ReliabilityScore float64        `json:"reliability_score"` // 0–100
	RiskLevel        RiskLevel      `json:"risk_level"`
	Factors          []FactorResult `json:"factors"`
	Recommendations  []string       `json:"recommendations"`
}

// Screener is the 5-factor weighted additive tenant screening engine.
type Screener struct {
	weights ScreeningWeightSet
	logger  *slog.Logger
}

// NewScreener creates a Screener with the given weights.
func NewScreener(weights ScreeningWeightSet, logger *slog.Logger) *Screener {
	return &Screener{weights: weights, logger: logger}
}

// Score computes the reliability score for one tenant. Single pass:
// extract features, weight factors, classify, recommend.
func (s *Screener) Score(sc *ScreeningContext) ScreeningResult {
	factors := []FactorResult{
		FinancialFactor(sc),
		RentalHistoryFactor(sc),
		EmploymentFactor(sc),
		CommunicationFactor(sc),
		DocumentFactor(sc),
	}

	weights := []float64{
		s.weights.Financial,
		s.weights.RentalHistory,
		s.weights.Employment,
		s.weights.Communication,
		s.weights.Documents,
	}

	var total float64
	for i := range factors {
		factors[i].Weight = weights[i]
		factors[i].Weighted = factors[i].Score * weights[i]
		total += factors[i].Weighted
	}

	score := clamp(total*100, 0, 100)
	level := ReliabilityRiskLevel(score)

	result := ScreeningResult{
		ReliabilityScore: score,
		RiskLevel:        level,
		Factors:          factors,
		Recommendations:  screeningRecommendations(level, factors),
	}

	s.logger.Debug("tenant screened",
		"tenant_id", sc.Tenant.ID,
		"reliability", fmt.Sprintf("%.1f", score),
		"risk_level", level,
	)
	return result
}

// FinancialFactor combines on-time payment history (60%) with the
// income-to-rent ratio (40%).
func FinancialFactor(sc *ScreeningContext) FactorResult {
	stats := ExtractPaymentStats(sc.Payments)

	incomeScore := 0.5
	incomeAvailable := false
	if sc.Tenant.MonthlyIncome != nil && sc.Rent != nil && sc.Rent.IsPositive() {
		incomeAvailable = true
		ratio, _ := sc.Tenant.MonthlyIncome.Div(*sc.Rent).Float64()
		switch {
		case ratio >= 3.0:
			incomeScore = 1.0
		case ratio >= 2.5:
			incomeScore = 0.8
		case ratio >= 2.0:
			incomeScore = 0.6
		case ratio >= 1.5:
			incomeScore = 0.35
		default:
			incomeScore = 0.1
		}
	}

	if !stats.Available && !incomeAvailable {
		return FactorResult{Name: "financial", Score: 0.5, Available: false, Reason: "no payment history or income"}
	}
	if !stats.Available {
		return FactorResult{Name: "financial", Score: incomeScore, Available: true, Reason: "income-to-rent only"}
	}

	score := clamp(0.6*stats.OnTimeRatio+0.4*incomeScore, 0, 1)
	return FactorResult{Name: "financial", Score: score, Available: true, Reason: "payment history and income evaluated"}
}

// RentalHistoryFactor penalizes evictions, thin rental history, and
// missing references.
func RentalHistoryFactor(sc *ScreeningContext) FactorResult {
	t := sc.Tenant

	score := 1.0
	score -= 0.4 * float64(t.PriorEvictions)

	if t.YearsRenting != nil {
		switch {
		case *t.YearsRenting < 2:
			score -= 0.15
		case *t.YearsRenting < 5:
			score -= 0.05
		}
	} else {
		score -= 0.1
	}

	switch t.ReferencesCount {
	case 0:
		score -= 0.15
	case 1:
		score -= 0.05
	}

	score = clamp(score, 0, 1)
	reason := "history evaluated"
	if t.PriorEvictions > 0 {
		reason = fmt.Sprintf("%d prior eviction(s)", t.PriorEvictions)
	}
	return FactorResult{Name: "rental_history", Score: score, Available: true, Reason: reason}
}

// EmploymentFactor scores employment type discounted by tenure.
func EmploymentFactor(sc *ScreeningContext) FactorResult {
	t := sc.Tenant
	if t.EmploymentType == "" {
		return FactorResult{Name: "employment", Score: 0.5, Available: false, Reason: "no employment data"}
	}

	var base float64
	switch t.EmploymentType {
	case "full_time":
		base = 1.0
	case "retired":
		base = 0.8
	case "self_employed":
		base = 0.75
	case "part_time":
		base = 0.6
	case "unemployed":
		base = 0.1
	default:
		base = 0.5
	}

	tenureMult := 1.0
	if t.EmploymentMonths != nil {
		switch {
		case *t.EmploymentMonths >= 24:
			tenureMult = 1.0
		case *t.EmploymentMonths >= 12:
			tenureMult = 0.9
		case *t.EmploymentMonths >= 6:
			tenureMult = 0.75
		case *t.EmploymentMonths >= 3:
			tenureMult = 0.6
		default:
			tenureMult = 0.4
		}
	}

	score := clamp(base*tenureMult, 0, 1)
	return FactorResult{Name: "employment", Score: score, Available: true, Reason: t.EmploymentType}
}

// CommunicationFactor combines reply rate (60%) with response latency (40%).
func CommunicationFactor(sc *ScreeningContext) FactorResult {
	stats := ExtractMessageStats(sc.Messages, sc.Now)
	if !stats.Available {
		return FactorResult{Name: "communication", Score: 0.5, Available: false, Reason: "no message history"}
	}

	latencyScore := 0.5
	if stats.AvgResponseHrs > 0 {
		switch {
		case stats.AvgResponseHrs <= 4:
			latencyScore = 1.0
		case stats.AvgResponseHrs <= 24:
			latencyScore = 0.8
		case stats.AvgResponseHrs <= 72:
			latencyScore = 0.5
		default:
			latencyScore = 0.2
		}
	}

	score := clamp(0.6*stats.ResponseRate+0.4*latencyScore, 0, 1)
	return FactorResult{Name: "communication", Score: score, Available: true, Reason: "message history evaluated"}
}

// DocumentFactor scores the count of verified documents on file.
func DocumentFactor(sc *ScreeningContext) FactorResult {
	if len(sc.Documents) == 0 {
		return FactorResult{Name: "documents", Score: 0.4, Available: false, Reason: "no documents on file"}
	}

	verified := 0
	for _, d := range sc.Documents {
		if d.Verified {
			verified++
		}
	}

	var score float64
	switch {
	case verified >= 3:
		score = 1.0
	case verified == 2:
		score = 0.8
	case verified == 1:
		score = 0.6
	default:
		score = 0.3
	}
	return FactorResult{Name: "documents", Score: score, Available: true, Reason: fmt.Sprintf("%d verified document(s)", verified)}
}

var screeningLevelRecommendations = map[RiskLevel]string{
	RiskLow:      "Approve application with standard deposit.",
	RiskMedium:   "Approve with an increased deposit or co-signer.",
	RiskHigh:     "Request additional documentation before approval.",
	RiskCritical: "Decline application or require a qualified guarantor.",
}

var screeningFactorRecommendations = map[string]string{
	"financial":      "Verify income with recent pay stubs and bank statements.",
	"rental_history": "Contact previous landlords for rental references.",
	"employment":     "Confirm employment directly with the employer.",
	"communication":  "Establish a preferred communication channel up front.",
	"documents":      "Collect and verify identity and income documents.",
}

// screeningRecommendations returns the level recommendation plus one canned
// line per weak factor, in factor order.
func screeningRecommendations(level RiskLevel, factors []FactorResult) []string {
	recs := []string{screeningLevelRecommendations[level]}
	for _, f := range factors {
		if f.Score < 0.4 {
			if rec, ok := screeningFactorRecommendations[f.Name]; ok {
				recs = append(recs, rec)
			}
		}
	}
	return recs
}

// FullName joins a tenant's name parts the way documents record them.
func FullName(t *store.Tenant) string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}
