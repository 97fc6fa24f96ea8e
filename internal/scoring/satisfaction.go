package scoring

import (
	"time"

	"github.com/Brickline-Labs/Foresight/internal/store"
)

// SatisfactionContext bundles the inputs for the satisfaction engine.
type SatisfactionContext struct {
	Tenant   *store.Tenant
	Messages []*store.Message
	Requests []*store.MaintenanceRequest
	Now      time.Time
}

// SatisfactionResult captures the satisfaction engine output.
type SatisfactionResult struct {
	Score        float64 `json:"score"` // 0–100
	Level        string  `json:"level"` // satisfied, neutral, dissatisfied
	Trend        string  `json:"trend"` // improving, stable, declining
	Sentiment    float64 `json:"sentiment"`
	OpenRequests int     `json:"open_requests"`
}

const (
	satisfactionBase          = 70.0
	sentimentSwing            = 25.0 // max points moved by sentiment balance
	openRequestPenalty        = 6.0
	openRequestPenaltyCeiling = 24.0
	trendThreshold            = 0.15
)

// ScoreSatisfaction estimates tenant satisfaction from message sentiment,
// landlord responsiveness, and open maintenance pressure. Base 70, shifted
// by sentiment, minus latency and open-request penalties, clamped 0–100.
func ScoreSatisfaction(sc *SatisfactionContext) SatisfactionResult {
	msgStats := ExtractMessageStats(sc.Messages, sc.Now)
	reqStats := ExtractRequestStats(sc.Requests, sc.Tenant.MoveInDate, sc.Now)

	score := satisfactionBase
	score += sentimentSwing * msgStats.Sentiment
	score -= responseLatencyPenalty(msgStats)

	penalty := openRequestPenalty * float64(reqStats.OpenCount)
	if penalty > openRequestPenaltyCeiling {
		penalty = openRequestPenaltyCeiling
	}
	score -= penalty

	score = clamp(score, 0, 100)

	return SatisfactionResult{
		Score:        score,
		Level:        satisfactionLevel(score),
		Trend:        satisfactionTrend(msgStats),
		Sentiment:    msgStats.Sentiment,
		OpenRequests: reqStats.OpenCount,
	}
}

func responseLatencyPenalty(stats MessageStats) float64 {
	if !stats.Available || stats.AvgResponseHrs == 0 {
		return 5 // unknown responsiveness is a mild negative
	}
	switch {
	case stats.AvgResponseHrs <= 4:
		return 0
	case stats.AvgResponseHrs <= 24:
		return 5
	case stats.AvgResponseHrs <= 72:
		return 12
	default:
		return 20
	}
}

func satisfactionLevel(score float64) string {
	switch {
	case score >= 70:
		return "satisfied"
	case score >= 40:
		return "neutral"
	default:
		return "dissatisfied"
	}
}

// satisfactionTrend compares trailing-window sentiment against the overall
// balance. Without a recent window the trend reads stable.
func satisfactionTrend(stats MessageStats) string {
	if !stats.Available || !stats.RecentAvailable {
		return "stable"
	}
	diff := stats.RecentSentiment - stats.Sentiment
	switch {
	case diff > trendThreshold:
		return "improving"
	case diff < -trendThreshold:
		return "declining"
	default:
		return "stable"
	}
}
