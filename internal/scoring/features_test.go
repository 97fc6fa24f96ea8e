package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/Brickline-Labs/Foresight/internal/store"
)

func TestExtractPaymentStats(t *testing.T) {
	due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty", func(t *testing.T) {
		stats := ExtractPaymentStats(nil)
		if stats.Available {
			t.Error("expected unavailable with no payments")
		}
	})

	t.Run("pending excluded", func(t *testing.T) {
		stats := ExtractPaymentStats([]*store.Payment{
			{Status: store.PaymentPending, DueDate: due},
			{Status: store.PaymentPaid, DueDate: due, PaidDate: timePtr(due)},
		})
		if stats.Total != 1 {
			t.Errorf("expected 1 settled payment, got %d", stats.Total)
		}
		if stats.OnTimeRatio != 1.0 {
			t.Errorf("expected on-time ratio 1.0, got %f", stats.OnTimeRatio)
		}
	})

	t.Run("grace period", func(t *testing.T) {
		stats := ExtractPaymentStats([]*store.Payment{
			{Status: store.PaymentPaid, DueDate: due, PaidDate: timePtr(due.AddDate(0, 0, 3))},
			{Status: store.PaymentPaid, DueDate: due, PaidDate: timePtr(due.AddDate(0, 0, 4))},
		})
		if stats.OnTimeRatio != 0.5 {
			t.Errorf("day 3 is within grace, day 4 is late: expected 0.5, got %f", stats.OnTimeRatio)
		}
	})

	t.Run("missed counts as late", func(t *testing.T) {
		stats := ExtractPaymentStats([]*store.Payment{
			{Status: store.PaymentMissed, DueDate: due},
			{Status: store.PaymentLate, DueDate: due},
			{Status: store.PaymentPaid, DueDate: due, PaidDate: timePtr(due)},
		})
		if stats.MissedCount != 1 {
			t.Errorf("expected 1 missed, got %d", stats.MissedCount)
		}
		if math.Abs(stats.LateRatio-2.0/3.0) > 0.001 {
			t.Errorf("expected late ratio 2/3, got %f", stats.LateRatio)
		}
	})

	t.Run("recent window", func(t *testing.T) {
		// 12 payments: first 6 on time, last 6 late.
		var payments []*store.Payment
		for i := 0; i < 6; i++ {
			d := due.AddDate(0, i, 0)
			payments = append(payments, &store.Payment{Status: store.PaymentPaid, DueDate: d, PaidDate: timePtr(d)})
		}
		for i := 6; i < 12; i++ {
			payments = append(payments, &store.Payment{Status: store.PaymentLate, DueDate: due.AddDate(0, i, 0)})
		}
		stats := ExtractPaymentStats(payments)
		if stats.RecentLateRatio != 1.0 {
			t.Errorf("expected recent late ratio 1.0, got %f", stats.RecentLateRatio)
		}
		if stats.LateRatio != 0.5 {
			t.Errorf("expected overall late ratio 0.5, got %f", stats.LateRatio)
		}
	})
}

func TestExtractMessageStats(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("outbound ignored", func(t *testing.T) {
		stats := ExtractMessageStats([]*store.Message{
			{Direction: "outbound", Body: "terrible awful broken", SentAt: now},
		}, now)
		if stats.Available {
			t.Error("outbound-only history should be unavailable")
		}
	})

	t.Run("sentiment balance", func(t *testing.T) {
		stats := ExtractMessageStats([]*store.Message{
			{Direction: "inbound", Body: "thanks, this is great", SentAt: now},
			{Direction: "inbound", Body: "the sink is broken", SentAt: now},
		}, now)
		// 2 positive hits, 1 negative hit
		if math.Abs(stats.Sentiment-1.0/3.0) > 0.001 {
			t.Errorf("expected sentiment 1/3, got %f", stats.Sentiment)
		}
	})

	t.Run("response rate and latency", func(t *testing.T) {
		sent := now.AddDate(0, 0, -10)
		stats := ExtractMessageStats([]*store.Message{
			{Direction: "inbound", Body: "hello", SentAt: sent, RespondedAt: timePtr(sent.Add(4 * time.Hour))},
			{Direction: "inbound", Body: "hello again?", SentAt: sent.AddDate(0, 0, 1)},
		}, now)
		if stats.ResponseRate != 0.5 {
			t.Errorf("expected response rate 0.5, got %f", stats.ResponseRate)
		}
		if math.Abs(stats.AvgResponseHrs-4.0) > 0.001 {
			t.Errorf("expected 4h average, got %f", stats.AvgResponseHrs)
		}
	})

	t.Run("recent window sentiment", func(t *testing.T) {
		old := now.AddDate(0, 0, -120)
		recent := now.AddDate(0, 0, -10)
		stats := ExtractMessageStats([]*store.Message{
			{Direction: "inbound", Body: "wonderful, thank you", SentAt: old},
			{Direction: "inbound", Body: "frustrated, this is terrible, still not fixed", SentAt: recent},
		}, now)
		if !stats.RecentAvailable {
			t.Fatal("expected recent window available")
		}
		if stats.RecentSentiment != -1.0 {
			t.Errorf("recent window should be all negative, got %f", stats.RecentSentiment)
		}
		if stats.Sentiment >= 0 {
			t.Errorf("overall sentiment should be negative (2 pos, 3 neg hits), got %f", stats.Sentiment)
		}
	})
}

func TestExtractRequestStats(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	reported := now.AddDate(0, -2, 0)

	t.Run("cancelled excluded", func(t *testing.T) {
		stats := ExtractRequestStats([]*store.MaintenanceRequest{
			{Status: store.RequestCancelled, ReportedAt: reported},
		}, nil, now)
		if stats.Available {
			t.Error("cancelled-only history should be unavailable")
		}
	})

	t.Run("per year with tenancy", func(t *testing.T) {
		start := now.AddDate(-2, 0, 0)
		stats := ExtractRequestStats([]*store.MaintenanceRequest{
			{Status: store.RequestResolved, ReportedAt: reported, ResolvedAt: timePtr(reported.AddDate(0, 0, 5))},
			{Status: store.RequestOpen, ReportedAt: reported},
		}, &start, now)
		if math.Abs(stats.PerYear-1.0) > 0.01 {
			t.Errorf("2 requests over 2 years: expected 1.0/yr, got %f", stats.PerYear)
		}
		if stats.OpenCount != 1 {
			t.Errorf("expected 1 open, got %d", stats.OpenCount)
		}
		if math.Abs(stats.AvgResolutionDays-5.0) > 0.01 {
			t.Errorf("expected 5 day avg resolution, got %f", stats.AvgResolutionDays)
		}
	})

	t.Run("short tenancy floor", func(t *testing.T) {
		start := now.AddDate(0, 0, -7)
		stats := ExtractRequestStats([]*store.MaintenanceRequest{
			{Status: store.RequestOpen, ReportedAt: reported},
		}, &start, now)
		// A week-old tenancy uses the quarter-year floor: 1/0.25 = 4/yr.
		if math.Abs(stats.PerYear-4.0) > 0.01 {
			t.Errorf("expected 4.0/yr with floor, got %f", stats.PerYear)
		}
	})

	t.Run("no tenancy start falls back to one year", func(t *testing.T) {
		stats := ExtractRequestStats([]*store.MaintenanceRequest{
			{Status: store.RequestOpen, ReportedAt: reported},
			{Status: store.RequestOpen, ReportedAt: reported},
			{Status: store.RequestOpen, ReportedAt: reported},
		}, nil, now)
		if math.Abs(stats.PerYear-3.0) > 0.001 {
			t.Errorf("expected 3.0/yr fallback, got %f", stats.PerYear)
		}
	})
}
