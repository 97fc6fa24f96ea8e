package scoring

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Brickline-Labs/Foresight/internal/store"
)

// FraudContext bundles the application data the fraud engine inspects.
type FraudContext struct {
	Tenant    *store.Tenant
	Rent      *decimal.Decimal
	Documents []*store.Document
}

// FraudSignal is one additive heuristic signal.
type FraudSignal struct {
	Name      string  `json:"name"`
	Points    float64 `json:"points"`
	Triggered bool    `json:"triggered"`
	Reason    string  `json:"reason"`
}

// FraudResult captures the fraud engine output for one tenant.
type FraudResult struct {
	Score   float64       `json:"score"` // 0–100
	Level   RiskLevel     `json:"level"`
	Signals []FraudSignal `json:"signals"`
	Flags   []string      `json:"flags"`
}

// Signal point values. The sum of all signals is clamped to 100.
const (
	pointsIncomeBelowRent   = 30.0
	pointsIncomeImplausible = 20.0
	pointsNameMismatch      = 25.0
	pointsUnverifiedDocs    = 15.0
	pointsNoDocuments       = 10.0
	pointsRoundIncome       = 10.0
	pointsNewEmployment     = 10.0
	pointsNoReferences      = 5.0
)

// ScoreFraud evaluates all fraud signals for one application in a single
// pass and returns the clamped additive score.
func ScoreFraud(fc *FraudContext) FraudResult {
	signals := []FraudSignal{
		incomeBelowRentSignal(fc),
		incomeImplausibleSignal(fc),
		nameMismatchSignal(fc),
		unverifiedDocsSignal(fc),
		noDocumentsSignal(fc),
		roundIncomeSignal(fc),
		newEmploymentSignal(fc),
		noReferencesSignal(fc),
	}

	var total float64
	var flags []string
	for _, sig := range signals {
		if sig.Triggered {
			total += sig.Points
			flags = append(flags, sig.Reason)
		}
	}

	score := clamp(total, 0, 100)
	return FraudResult{
		Score:   score,
		Level:   FraudRiskLevel(score),
		Signals: signals,
		Flags:   flags,
	}
}

func incomeBelowRentSignal(fc *FraudContext) FraudSignal {
	sig := FraudSignal{Name: "income_below_rent", Points: pointsIncomeBelowRent}
	if fc.Tenant.MonthlyIncome == nil || fc.Rent == nil || !fc.Rent.IsPositive() {
		return sig
	}
	if fc.Tenant.MonthlyIncome.LessThan(*fc.Rent) {
		sig.Triggered = true
		sig.Reason = "stated income below monthly rent"
	}
	return sig
}

func incomeImplausibleSignal(fc *FraudContext) FraudSignal {
	sig := FraudSignal{Name: "income_implausible", Points: pointsIncomeImplausible}
	if fc.Tenant.MonthlyIncome == nil || fc.Rent == nil || !fc.Rent.IsPositive() {
		return sig
	}
	if fc.Tenant.MonthlyIncome.GreaterThan(fc.Rent.Mul(decimal.NewFromInt(50))) {
		sig.Triggered = true
		sig.Reason = "stated income implausibly high for unit"
	}
	return sig
}

func nameMismatchSignal(fc *FraudContext) FraudSignal {
	sig := FraudSignal{Name: "name_mismatch", Points: pointsNameMismatch}
	name := FullName(fc.Tenant)
	for _, d := range fc.Documents {
		if d.SubjectName == "" {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(d.SubjectName), name) {
			sig.Triggered = true
			sig.Reason = "document name does not match applicant"
			return sig
		}
	}
	return sig
}

func unverifiedDocsSignal(fc *FraudContext) FraudSignal {
	sig := FraudSignal{Name: "unverified_documents", Points: pointsUnverifiedDocs}
	if len(fc.Documents) == 0 {
		return sig
	}
	verified := 0
	for _, d := range fc.Documents {
		if d.Verified {
			verified++
		}
	}
	if float64(verified)/float64(len(fc.Documents)) < 0.5 {
		sig.Triggered = true
		sig.Reason = "majority of documents unverified"
	}
	return sig
}

func noDocumentsSignal(fc *FraudContext) FraudSignal {
	sig := FraudSignal{Name: "no_documents", Points: pointsNoDocuments}
	if len(fc.Documents) == 0 {
		sig.Triggered = true
		sig.Reason = "no supporting documents provided"
	}
	return sig
}

func roundIncomeSignal(fc *FraudContext) FraudSignal {
	sig := FraudSignal{Name: "round_income", Points: pointsRoundIncome}
	if fc.Tenant.MonthlyIncome == nil {
		return sig
	}
	if fc.Tenant.MonthlyIncome.Mod(decimal.NewFromInt(1000)).IsZero() {
		sig.Triggered = true
		sig.Reason = "self-reported round-figure income"
	}
	return sig
}

func newEmploymentSignal(fc *FraudContext) FraudSignal {
	sig := FraudSignal{Name: "new_employment", Points: pointsNewEmployment}
	if fc.Tenant.EmploymentMonths != nil && *fc.Tenant.EmploymentMonths < 3 {
		sig.Triggered = true
		sig.Reason = "employment began within the last 3 months"
	}
	return sig
}

func noReferencesSignal(fc *FraudContext) FraudSignal {
	sig := FraudSignal{Name: "no_references", Points: pointsNoReferences}
	if fc.Tenant.ReferencesCount == 0 {
		sig.Triggered = true
		sig.Reason = "no rental references provided"
	}
	return sig
}
