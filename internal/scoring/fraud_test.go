package scoring

import (
	"testing"

	"github.com/Brickline-Labs/Foresight/internal/store"
)

func TestFraudRiskLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{0, RiskLow},
		{24.9, RiskLow},
		{25, RiskMedium},
		{49.9, RiskMedium},
		{50, RiskHigh},
		{74.9, RiskHigh},
		{75, RiskCritical},
		{100, RiskCritical},
	}
	for _, tt := range tests {
		if got := FraudRiskLevel(tt.score); got != tt.want {
			t.Errorf("FraudRiskLevel(%.1f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestScoreFraudCleanApplication(t *testing.T) {
	fc := &FraudContext{
		Tenant: &store.Tenant{
			FirstName:        "Jordan",
			LastName:         "Lee",
			MonthlyIncome:    decPtr("5850"),
			EmploymentMonths: intPtr(36),
			ReferencesCount:  2,
		},
		Rent: decPtr("1950"),
		Documents: []*store.Document{
			{SubjectName: "Jordan Lee", Verified: true},
			{SubjectName: "jordan lee", Verified: true},
		},
	}

	result := ScoreFraud(fc)
	if result.Score != 0 {
		t.Errorf("clean application should score 0, got %f (flags: %v)", result.Score, result.Flags)
	}
	if result.Level != RiskLow {
		t.Errorf("expected low, got %s", result.Level)
	}
	if len(result.Flags) != 0 {
		t.Errorf("expected no flags, got %v", result.Flags)
	}
	if len(result.Signals) != 8 {
		t.Errorf("expected all 8 signals reported, got %d", len(result.Signals))
	}
}

func TestScoreFraudIncomeBelowRent(t *testing.T) {
	fc := &FraudContext{
		Tenant: &store.Tenant{
			FirstName:        "A",
			LastName:         "B",
			MonthlyIncome:    decPtr("1200"),
			EmploymentMonths: intPtr(36),
			ReferencesCount:  2,
		},
		Rent:      decPtr("1950"),
		Documents: []*store.Document{{SubjectName: "A B", Verified: true}},
	}

	result := ScoreFraud(fc)
	if result.Score != pointsIncomeBelowRent {
		t.Errorf("expected %f, got %f (flags: %v)", pointsIncomeBelowRent, result.Score, result.Flags)
	}
	if result.Level != RiskMedium {
		t.Errorf("expected medium, got %s", result.Level)
	}
}

func TestScoreFraudNameMismatch(t *testing.T) {
	fc := &FraudContext{
		Tenant: &store.Tenant{
			FirstName:        "Jordan",
			LastName:         "Lee",
			MonthlyIncome:    decPtr("5850"),
			EmploymentMonths: intPtr(36),
			ReferencesCount:  2,
		},
		Rent: decPtr("1950"),
		Documents: []*store.Document{
			{SubjectName: "Pat Smith", Verified: true},
		},
	}

	result := ScoreFraud(fc)
	if result.Score != pointsNameMismatch {
		t.Errorf("expected %f, got %f (flags: %v)", pointsNameMismatch, result.Score, result.Flags)
	}
}

func TestScoreFraudEmptySubjectIgnored(t *testing.T) {
	fc := &FraudContext{
		Tenant: &store.Tenant{
			FirstName:        "Jordan",
			LastName:         "Lee",
			MonthlyIncome:    decPtr("5850"),
			EmploymentMonths: intPtr(36),
			ReferencesCount:  2,
		},
		Rent:      decPtr("1950"),
		Documents: []*store.Document{{SubjectName: "", Verified: true}},
	}

	result := ScoreFraud(fc)
	if result.Score != 0 {
		t.Errorf("documents without extracted names should not mismatch, got %f", result.Score)
	}
}

func TestScoreFraudStacksAndClamps(t *testing.T) {
	// Everything wrong at once: below-rent income is also round, no docs,
	// new job, no references.
	fc := &FraudContext{
		Tenant: &store.Tenant{
			FirstName:        "X",
			LastName:         "Y",
			MonthlyIncome:    decPtr("1000"),
			EmploymentMonths: intPtr(1),
		},
		Rent: decPtr("2000"),
	}

	result := ScoreFraud(fc)
	// 30 + 10 + 10 + 10 + 5 = 65
	if result.Score != 65 {
		t.Errorf("expected 65, got %f (flags: %v)", result.Score, result.Flags)
	}
	if result.Level != RiskHigh {
		t.Errorf("expected high, got %s", result.Level)
	}
	if result.Score > 100 {
		t.Errorf("score must clamp to 100, got %f", result.Score)
	}
}

func TestScoreFraudRoundIncome(t *testing.T) {
	fc := &FraudContext{
		Tenant: &store.Tenant{
			FirstName:        "A",
			LastName:         "B",
			MonthlyIncome:    decPtr("6000"),
			EmploymentMonths: intPtr(36),
			ReferencesCount:  1,
		},
		Rent:      decPtr("1950"),
		Documents: []*store.Document{{SubjectName: "A B", Verified: true}},
	}

	result := ScoreFraud(fc)
	if result.Score != pointsRoundIncome {
		t.Errorf("round income should trigger alone, got %f (flags: %v)", result.Score, result.Flags)
	}
}

func TestScoreFraudUnverifiedMajority(t *testing.T) {
	fc := &FraudContext{
		Tenant: &store.Tenant{
			FirstName:        "A",
			LastName:         "B",
			MonthlyIncome:    decPtr("5850"),
			EmploymentMonths: intPtr(36),
			ReferencesCount:  2,
		},
		Rent: decPtr("1950"),
		Documents: []*store.Document{
			{SubjectName: "A B", Verified: false},
			{SubjectName: "A B", Verified: false},
			{SubjectName: "A B", Verified: true},
		},
	}

	result := ScoreFraud(fc)
	if result.Score != pointsUnverifiedDocs {
		t.Errorf("expected %f, got %f (flags: %v)", pointsUnverifiedDocs, result.Score, result.Flags)
	}
}
