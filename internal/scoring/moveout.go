package scoring

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Brickline-Labs/Foresight/internal/store"
)

// MoveOutContext bundles all inputs needed to estimate move-out probability
// for one tenant.
type MoveOutContext struct {
	Tenant     *store.Tenant
	Rent       *decimal.Decimal
	MarketRent *decimal.Decimal // median of comparable units, nil when unknown
	Payments   []*store.Payment
	Messages   []*store.Message
	Requests   []*store.MaintenanceRequest
	Now        time.Time
}

// MoveOutLikelihood is the ordered categorical bucket for move-out
// probability. Ordering: unlikely < possible < likely < imminent.
type MoveOutLikelihood string

const (
	MoveOutUnlikely MoveOutLikelihood = "unlikely"
	MoveOutPossible MoveOutLikelihood = "possible"
	MoveOutLikely   MoveOutLikelihood = "likely"
	MoveOutImminent MoveOutLikelihood = "imminent"
)

// LikelihoodForProbability maps a 0–1 probability to its bucket. Higher
// probability never yields a lower bucket.
func LikelihoodForProbability(p float64) MoveOutLikelihood {
	switch {
	case p < 0.25:
		return MoveOutUnlikely
	case p < 0.5:
		return MoveOutPossible
	case p < 0.75:
		return MoveOutLikely
	default:
		return MoveOutImminent
	}
}

// MoveOutResult captures the move-out engine output for one tenant.
type MoveOutResult struct {
	Probability     float64           `json:"probability"` // 0–1
	Likelihood      MoveOutLikelihood `json:"likelihood"`
	Factors         []FactorResult    `json:"factors"`
	Recommendations []string          `json:"recommendations"`
}

// MoveOutPredictor is the 6-factor weighted additive move-out engine.
// Factor scores run 0–1 where 1 means "more likely to leave".
type MoveOutPredictor struct {
	weights MoveOutWeightSet
	logger  *slog.Logger
}

// NewMoveOutPredictor creates a predictor with the given weights.
func NewMoveOutPredictor(weights MoveOutWeightSet, logger *slog.Logger) *MoveOutPredictor {
	return &MoveOutPredictor{weights: weights, logger: logger}
}

// Predict computes the move-out probability for one tenant.
func (p *MoveOutPredictor) Predict(mc *MoveOutContext) MoveOutResult {
	factors := []FactorResult{
		LeaseHorizonFactor(mc),
		PaymentTrendFactor(mc),
		RentDeltaFactor(mc),
		ComplaintsFactor(mc),
		SentimentFactor(mc),
		TenureFactor(mc),
	}

	weights := []float64{
		p.weights.LeaseHorizon,
		p.weights.PaymentTrend,
		p.weights.RentDelta,
		p.weights.Complaints,
		p.weights.Sentiment,
		p.weights.Tenure,
	}

	var total float64
	for i := range factors {
		factors[i].Weight = weights[i]
		factors[i].Weighted = factors[i].Score * weights[i]
		total += factors[i].Weighted
	}

	prob := clamp(total, 0, 1)
	likelihood := LikelihoodForProbability(prob)

	result := MoveOutResult{
		Probability:     prob,
		Likelihood:      likelihood,
		Factors:         factors,
		Recommendations: retentionRecommendations(likelihood, factors),
	}

	p.logger.Debug("move-out predicted",
		"tenant_id", mc.Tenant.ID,
		"probability", prob,
		"likelihood", likelihood,
	)
	return result
}

// LeaseHorizonFactor: the closer the lease end, the higher the risk.
func LeaseHorizonFactor(mc *MoveOutContext) FactorResult {
	if mc.Tenant.LeaseEndDate == nil {
		return FactorResult{Name: "lease_horizon", Score: 0.5, Available: false, Reason: "no lease end date"}
	}
	monthsLeft := mc.Tenant.LeaseEndDate.Sub(mc.Now).Hours() / (24 * 30)
	var score float64
	switch {
	case monthsLeft <= 1:
		score = 0.9
	case monthsLeft <= 3:
		score = 0.7
	case monthsLeft <= 6:
		score = 0.5
	default:
		score = 0.2
	}
	return FactorResult{Name: "lease_horizon", Score: score, Available: true, Reason: "lease horizon evaluated"}
}

// PaymentTrendFactor: a worsening late-payment trend signals disengagement.
func PaymentTrendFactor(mc *MoveOutContext) FactorResult {
	stats := ExtractPaymentStats(mc.Payments)
	if !stats.Available {
		return FactorResult{Name: "payment_trend", Score: 0.5, Available: false, Reason: "no payment history"}
	}

	var score float64
	switch {
	case stats.RecentLateRatio > 0.5:
		score = 0.9
	case stats.RecentLateRatio-stats.LateRatio > 0.2:
		score = 0.8
	default:
		score = clamp(0.2+stats.RecentLateRatio, 0.2, 0.7)
	}
	return FactorResult{Name: "payment_trend", Score: score, Available: true, Reason: "payment trend evaluated"}
}

// RentDeltaFactor: rent above market pushes tenants out; below market
// retains them.
func RentDeltaFactor(mc *MoveOutContext) FactorResult {
	if mc.Rent == nil || mc.MarketRent == nil || !mc.MarketRent.IsPositive() {
		return FactorResult{Name: "rent_delta", Score: 0.5, Available: false, Reason: "no market comparable"}
	}
	delta, _ := mc.Rent.Sub(*mc.MarketRent).Div(*mc.MarketRent).Float64()
	var score float64
	switch {
	case delta >= 0.10:
		score = 0.8
	case delta >= 0.05:
		score = 0.6
	case delta >= -0.05:
		score = 0.4
	default:
		score = 0.2
	}
	return FactorResult{Name: "rent_delta", Score: score, Available: true, Reason: "rent vs market evaluated"}
}

// ComplaintsFactor: frequent maintenance requests wear tenants down.
func ComplaintsFactor(mc *MoveOutContext) FactorResult {
	stats := ExtractRequestStats(mc.Requests, mc.Tenant.MoveInDate, mc.Now)
	if !stats.Available {
		return FactorResult{Name: "complaints", Score: 0.2, Available: true, Reason: "no maintenance requests"}
	}
	var score float64
	switch {
	case stats.PerYear >= 6:
		score = 0.9
	case stats.PerYear >= 3:
		score = 0.6
	case stats.PerYear >= 1:
		score = 0.4
	default:
		score = 0.2
	}
	return FactorResult{Name: "complaints", Score: score, Available: true, Reason: "request frequency evaluated"}
}

// SentimentFactor: negative message sentiment precedes non-renewal.
func SentimentFactor(mc *MoveOutContext) FactorResult {
	stats := ExtractMessageStats(mc.Messages, mc.Now)
	if !stats.Available {
		return FactorResult{Name: "sentiment", Score: 0.5, Available: false, Reason: "no message history"}
	}
	var score float64
	switch {
	case stats.Sentiment <= -0.5:
		score = 0.9
	case stats.Sentiment < 0:
		score = 0.6
	case stats.Sentiment > 0.25:
		score = 0.2
	default:
		score = 0.4
	}
	return FactorResult{Name: "sentiment", Score: score, Available: true, Reason: "message sentiment evaluated"}
}

// TenureFactor: long-tenured tenants renew more often.
func TenureFactor(mc *MoveOutContext) FactorResult {
	if mc.Tenant.MoveInDate == nil {
		return FactorResult{Name: "tenure", Score: 0.5, Available: false, Reason: "no move-in date"}
	}
	years := mc.Now.Sub(*mc.Tenant.MoveInDate).Hours() / (24 * 365)
	var score float64
	switch {
	case years < 1:
		score = 0.6
	case years < 2:
		score = 0.5
	case years < 5:
		score = 0.35
	default:
		score = 0.2
	}
	return FactorResult{Name: "tenure", Score: score, Available: true, Reason: "tenure evaluated"}
}

var retentionLevelRecommendations = map[MoveOutLikelihood]string{
	MoveOutUnlikely: "No retention action needed.",
	MoveOutPossible: "Begin renewal outreach 90 days before lease end.",
	MoveOutLikely:   "Offer an early renewal with a modest incentive.",
	MoveOutImminent: "Contact the tenant immediately and prepare the unit for turnover.",
}

var retentionFactorRecommendations = map[string]string{
	"rent_delta":    "Consider a renewal concession; rent is above comparable units.",
	"complaints":    "Resolve outstanding maintenance issues before renewal outreach.",
	"sentiment":     "Schedule a check-in conversation with the tenant.",
	"payment_trend": "Offer a payment plan or adjusted due date.",
}

// retentionRecommendations returns the bucket recommendation plus one
// canned line per high-pressure factor.
func retentionRecommendations(likelihood MoveOutLikelihood, factors []FactorResult) []string {
	recs := []string{retentionLevelRecommendations[likelihood]}
	for _, f := range factors {
		if f.Score >= 0.6 {
			if rec, ok := retentionFactorRecommendations[f.Name]; ok {
				recs = append(recs, rec)
			}
		}
	}
	return recs
}
