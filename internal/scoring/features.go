package scoring

import (
	"strings"
	"time"

	"github.com/Brickline-Labs/Foresight/internal/store"
)

// Feature extractors turn raw records into the normalized numeric features
// the engines consume. All extractors are pure: same records in, same
// features out.

const (
	paymentGraceDays    = 3
	recentPaymentWindow = 6
)

// PaymentStats summarizes a tenant's payment history.
type PaymentStats struct {
	Total           int
	OnTimeRatio     float64
	LateRatio       float64
	MissedCount     int
	RecentLateRatio float64 // over the last recentPaymentWindow payments
	Available       bool
}

// ExtractPaymentStats computes ratios over a payment history. Pending
// payments are excluded; a payment counts as on-time when paid within the
// grace period after its due date.
func ExtractPaymentStats(payments []*store.Payment) PaymentStats {
	var stats PaymentStats
	var settled, onTime, late int
	var recentSettled, recentLate int

	recentStart := len(payments) - recentPaymentWindow
	for i, p := range payments {
		if p.Status == store.PaymentPending {
			continue
		}
		settled++
		isLate := false
		switch p.Status {
		case store.PaymentMissed:
			stats.MissedCount++
			isLate = true
		case store.PaymentLate:
			late++
			isLate = true
		case store.PaymentPaid:
			if p.PaidDate != nil && p.PaidDate.After(p.DueDate.AddDate(0, 0, paymentGraceDays)) {
				late++
				isLate = true
			} else {
				onTime++
			}
		}
		if i >= recentStart {
			recentSettled++
			if isLate {
				recentLate++
			}
		}
	}

	stats.Total = settled
	if settled == 0 {
		return stats
	}
	stats.Available = true
	stats.OnTimeRatio = float64(onTime) / float64(settled)
	stats.LateRatio = float64(late+stats.MissedCount) / float64(settled)
	if recentSettled > 0 {
		stats.RecentLateRatio = float64(recentLate) / float64(recentSettled)
	}
	return stats
}

// MessageStats summarizes sentiment and responsiveness over a message history.
type MessageStats struct {
	InboundCount    int
	ResponseRate    float64 // share of inbound messages that received a reply
	AvgResponseHrs  float64
	PositiveHits    int
	NegativeHits    int
	Sentiment       float64 // (pos-neg)/(pos+neg), in [-1, 1]
	RecentSentiment float64 // over messages in the trailing 90 days
	RecentAvailable bool
	Available       bool
}

var positiveWords = []string{
	"thank", "thanks", "great", "appreciate", "happy", "love",
	"wonderful", "excellent", "perfect", "awesome", "helpful",
}

var negativeWords = []string{
	"broken", "complaint", "frustrated", "angry", "terrible", "awful",
	"unacceptable", "disappointed", "worst", "never", "moving out",
	"ignore", "ignored", "still not", "again",
}

// ExtractMessageStats computes responsiveness and keyword sentiment over
// inbound tenant messages. now anchors the trailing-window calculation.
func ExtractMessageStats(messages []*store.Message, now time.Time) MessageStats {
	var stats MessageStats
	var responded int
	var totalResponseHrs float64
	var recentPos, recentNeg int
	recentCutoff := now.AddDate(0, 0, -90)

	for _, m := range messages {
		if m.Direction != "inbound" {
			continue
		}
		stats.InboundCount++
		if m.RespondedAt != nil {
			responded++
			totalResponseHrs += m.RespondedAt.Sub(m.SentAt).Hours()
		}
		pos, neg := sentimentHits(m.Body)
		stats.PositiveHits += pos
		stats.NegativeHits += neg
		if m.SentAt.After(recentCutoff) {
			recentPos += pos
			recentNeg += neg
		}
	}

	if stats.InboundCount == 0 {
		return stats
	}
	stats.Available = true
	stats.ResponseRate = float64(responded) / float64(stats.InboundCount)
	if responded > 0 {
		stats.AvgResponseHrs = totalResponseHrs / float64(responded)
	}
	if total := stats.PositiveHits + stats.NegativeHits; total > 0 {
		stats.Sentiment = float64(stats.PositiveHits-stats.NegativeHits) / float64(total)
	}
	if total := recentPos + recentNeg; total > 0 {
		stats.RecentSentiment = float64(recentPos-recentNeg) / float64(total)
		stats.RecentAvailable = true
	}
	return stats
}

func sentimentHits(body string) (pos, neg int) {
	lower := strings.ToLower(body)
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}
	return pos, neg
}

// RequestStats summarizes a tenant's maintenance request history.
type RequestStats struct {
	Total             int
	OpenCount         int
	PerYear           float64
	AvgResolutionDays float64
	Available         bool
}

// ExtractRequestStats computes request pressure relative to tenancy length.
// tenancyStart may be nil, in which case the rate falls back to a one-year span.
func ExtractRequestStats(requests []*store.MaintenanceRequest, tenancyStart *time.Time, now time.Time) RequestStats {
	var stats RequestStats
	var resolved int
	var totalResolutionDays float64

	for _, r := range requests {
		if r.Status == store.RequestCancelled {
			continue
		}
		stats.Total++
		if r.Status == store.RequestOpen || r.Status == store.RequestInProgress {
			stats.OpenCount++
		}
		if r.ResolvedAt != nil {
			resolved++
			totalResolutionDays += r.ResolvedAt.Sub(r.ReportedAt).Hours() / 24
		}
	}

	if stats.Total == 0 {
		return stats
	}
	stats.Available = true

	years := 1.0
	if tenancyStart != nil {
		years = now.Sub(*tenancyStart).Hours() / (24 * 365)
		if years < 0.25 {
			years = 0.25
		}
	}
	stats.PerYear = float64(stats.Total) / years
	if resolved > 0 {
		stats.AvgResolutionDays = totalResolutionDays / float64(resolved)
	}
	return stats
}
