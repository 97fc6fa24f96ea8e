package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/Brickline-Labs/Foresight/internal/store"
)

func TestDefaultMoveOutWeightsSumToOne(t *testing.T) {
	w := DefaultMoveOutWeights()
	if err := w.Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		t.Errorf("default weights sum to %f, expected 1.0", w.Sum())
	}
}

func TestLikelihoodForProbability(t *testing.T) {
	tests := []struct {
		p    float64
		want MoveOutLikelihood
	}{
		{0, MoveOutUnlikely},
		{0.249, MoveOutUnlikely},
		{0.25, MoveOutPossible},
		{0.499, MoveOutPossible},
		{0.5, MoveOutLikely},
		{0.749, MoveOutLikely},
		{0.75, MoveOutImminent},
		{1.0, MoveOutImminent},
	}
	for _, tt := range tests {
		if got := LikelihoodForProbability(tt.p); got != tt.want {
			t.Errorf("LikelihoodForProbability(%.3f) = %s, want %s", tt.p, got, tt.want)
		}
	}
}

func TestLeaseHorizonFactor(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		leaseEnd time.Time
		want     float64
	}{
		{"ends in two weeks", now.AddDate(0, 0, 14), 0.9},
		{"ends in two months", now.AddDate(0, 2, 0), 0.7},
		{"ends in five months", now.AddDate(0, 5, 0), 0.5},
		{"ends next year", now.AddDate(1, 0, 0), 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := &MoveOutContext{
				Tenant: &store.Tenant{LeaseEndDate: &tt.leaseEnd},
				Now:    now,
			}
			r := LeaseHorizonFactor(mc)
			if r.Score != tt.want {
				t.Errorf("got %f, want %f", r.Score, tt.want)
			}
		})
	}

	t.Run("no lease end", func(t *testing.T) {
		mc := &MoveOutContext{Tenant: &store.Tenant{}, Now: now}
		r := LeaseHorizonFactor(mc)
		if r.Available {
			t.Error("expected unavailable")
		}
		if r.Score != 0.5 {
			t.Errorf("expected neutral 0.5, got %f", r.Score)
		}
	})
}

func TestRentDeltaFactor(t *testing.T) {
	tests := []struct {
		name   string
		rent   string
		market string
		want   float64
	}{
		{"well above market", "2200", "2000", 0.8},
		{"slightly above market", "2120", "2000", 0.6},
		{"at market", "2000", "2000", 0.4},
		{"below market", "1800", "2000", 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := &MoveOutContext{
				Tenant:     &store.Tenant{},
				Rent:       decPtr(tt.rent),
				MarketRent: decPtr(tt.market),
			}
			r := RentDeltaFactor(mc)
			if r.Score != tt.want {
				t.Errorf("got %f, want %f", r.Score, tt.want)
			}
		})
	}

	t.Run("no comparable", func(t *testing.T) {
		mc := &MoveOutContext{Tenant: &store.Tenant{}, Rent: decPtr("2000")}
		r := RentDeltaFactor(mc)
		if r.Available {
			t.Error("expected unavailable without market rent")
		}
	})
}

func TestComplaintsFactor(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	start := now.AddDate(-1, 0, 0)

	t.Run("no requests reads content", func(t *testing.T) {
		mc := &MoveOutContext{Tenant: &store.Tenant{MoveInDate: &start}, Now: now}
		r := ComplaintsFactor(mc)
		if !r.Available {
			t.Error("no requests is a real signal, expected available")
		}
		if r.Score != 0.2 {
			t.Errorf("expected 0.2, got %f", r.Score)
		}
	})

	t.Run("heavy request load", func(t *testing.T) {
		var reqs []*store.MaintenanceRequest
		for i := 0; i < 7; i++ {
			reqs = append(reqs, &store.MaintenanceRequest{Status: store.RequestResolved, ReportedAt: now.AddDate(0, -i, 0)})
		}
		mc := &MoveOutContext{Tenant: &store.Tenant{MoveInDate: &start}, Requests: reqs, Now: now}
		r := ComplaintsFactor(mc)
		if r.Score != 0.9 {
			t.Errorf("7 requests in a year should score 0.9, got %f", r.Score)
		}
	})
}

func TestTenureFactor(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		moveIn time.Time
		want   float64
	}{
		{"six months", now.AddDate(0, -6, 0), 0.6},
		{"eighteen months", now.AddDate(0, -18, 0), 0.5},
		{"three years", now.AddDate(-3, 0, 0), 0.35},
		{"seven years", now.AddDate(-7, 0, 0), 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := &MoveOutContext{Tenant: &store.Tenant{MoveInDate: &tt.moveIn}, Now: now}
			r := TenureFactor(mc)
			if r.Score != tt.want {
				t.Errorf("got %f, want %f", r.Score, tt.want)
			}
		})
	}
}

func TestPredictHighRiskTenant(t *testing.T) {
	p := NewMoveOutPredictor(DefaultMoveOutWeights(), discardLogger())
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	leaseEnd := now.AddDate(0, 0, 20)
	moveIn := now.AddDate(0, -8, 0)

	var payments []*store.Payment
	for i := 0; i < 6; i++ {
		payments = append(payments, &store.Payment{Status: store.PaymentLate, DueDate: now.AddDate(0, -i-1, 0)})
	}

	mc := &MoveOutContext{
		Tenant:     &store.Tenant{LeaseEndDate: &leaseEnd, MoveInDate: &moveIn},
		Rent:       decPtr("2400"),
		MarketRent: decPtr("2000"),
		Payments:   payments,
		Messages: []*store.Message{
			{Direction: "inbound", Body: "this is unacceptable, I am frustrated and moving out", SentAt: now.AddDate(0, 0, -5)},
		},
		Requests: []*store.MaintenanceRequest{
			{Status: store.RequestOpen, ReportedAt: now.AddDate(0, -1, 0)},
			{Status: store.RequestOpen, ReportedAt: now.AddDate(0, -2, 0)},
			{Status: store.RequestOpen, ReportedAt: now.AddDate(0, -3, 0)},
			{Status: store.RequestOpen, ReportedAt: now.AddDate(0, -4, 0)},
		},
		Now: now,
	}

	result := p.Predict(mc)
	if result.Probability < 0.75 {
		t.Errorf("everything points at leaving, expected imminent band, got %f", result.Probability)
	}
	if result.Likelihood != MoveOutImminent {
		t.Errorf("expected imminent, got %s", result.Likelihood)
	}
	if len(result.Factors) != 6 {
		t.Errorf("expected 6 factors, got %d", len(result.Factors))
	}
	if len(result.Recommendations) < 2 {
		t.Errorf("high-pressure factors should add retention recommendations, got %v", result.Recommendations)
	}
}

func TestPredictStableTenant(t *testing.T) {
	p := NewMoveOutPredictor(DefaultMoveOutWeights(), discardLogger())
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	leaseEnd := now.AddDate(1, 0, 0)
	moveIn := now.AddDate(-6, 0, 0)

	var payments []*store.Payment
	for i := 0; i < 6; i++ {
		d := now.AddDate(0, -i-1, 0)
		payments = append(payments, &store.Payment{Status: store.PaymentPaid, DueDate: d, PaidDate: timePtr(d)})
	}

	mc := &MoveOutContext{
		Tenant:     &store.Tenant{LeaseEndDate: &leaseEnd, MoveInDate: &moveIn},
		Rent:       decPtr("1900"),
		MarketRent: decPtr("2100"),
		Payments:   payments,
		Messages: []*store.Message{
			{Direction: "inbound", Body: "thanks, everything is wonderful", SentAt: now.AddDate(0, 0, -15)},
		},
		Now: now,
	}

	result := p.Predict(mc)
	if result.Probability >= 0.25 {
		t.Errorf("stable tenant should be in unlikely band, got %f", result.Probability)
	}
	if result.Likelihood != MoveOutUnlikely {
		t.Errorf("expected unlikely, got %s", result.Likelihood)
	}
}

func TestPredictProbabilityBounds(t *testing.T) {
	p := NewMoveOutPredictor(DefaultMoveOutWeights(), discardLogger())
	now := time.Now()
	contexts := []*MoveOutContext{
		{Tenant: &store.Tenant{}, Now: now},
		{Tenant: &store.Tenant{LeaseEndDate: timePtr(now.AddDate(0, 0, 5))}, Now: now},
	}
	for i, mc := range contexts {
		r := p.Predict(mc)
		if r.Probability < 0 || r.Probability > 1 {
			t.Errorf("context %d: probability %f out of [0,1]", i, r.Probability)
		}
	}
}
