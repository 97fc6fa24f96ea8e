package scoring

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Brickline-Labs/Foresight/internal/store"
)

// PricingContext bundles the inputs for the rent pricing engine.
type PricingContext struct {
	Unit            *store.Unit
	ComparableRents []decimal.Decimal
	OccupancyRate   *float64 // property-level, nil when unknown
	Inspection      *store.Inspection
}

// PricingAdjustment is one named percentage adjustment applied to the base.
type PricingAdjustment struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
	Reason  string  `json:"reason"`
}

// PricingResult captures the rent pricing engine output.
type PricingResult struct {
	CurrentRent   decimal.Decimal     `json:"current_rent"`
	BaseRent      decimal.Decimal     `json:"base_rent"`
	SuggestedRent decimal.Decimal     `json:"suggested_rent"`
	BandLow       decimal.Decimal     `json:"band_low"`
	BandHigh      decimal.Decimal     `json:"band_high"`
	Confidence    string              `json:"confidence"` // low, medium, high
	Adjustments   []PricingAdjustment `json:"adjustments"`
}

const (
	pricingBandPercent   = 4.0
	amenityPercentEach   = 1.0
	amenityPercentCap    = 5.0
	minComparablesMedium = 2
	minComparablesHigh   = 5
)

// SuggestRent derives a suggested rent from the comparable median, adjusted
// by unit condition, amenities, and occupancy pressure. Money stays in
// decimals end to end.
func SuggestRent(pc *PricingContext) PricingResult {
	base := pc.Unit.Rent
	confidence := "low"
	if len(pc.ComparableRents) >= minComparablesMedium {
		base = MedianDecimal(pc.ComparableRents)
		confidence = "medium"
	}
	if len(pc.ComparableRents) >= minComparablesHigh {
		confidence = "high"
	}

	adjustments := pricingAdjustments(pc)

	var totalPct float64
	for _, a := range adjustments {
		totalPct += a.Percent
	}

	multiplier := decimal.NewFromFloat(1 + totalPct/100)
	suggested := base.Mul(multiplier).Round(2)

	band := suggested.Mul(decimal.NewFromFloat(pricingBandPercent / 100)).Round(2)

	return PricingResult{
		CurrentRent:   pc.Unit.Rent,
		BaseRent:      base,
		SuggestedRent: suggested,
		BandLow:       suggested.Sub(band),
		BandHigh:      suggested.Add(band),
		Confidence:    confidence,
		Adjustments:   adjustments,
	}
}

func pricingAdjustments(pc *PricingContext) []PricingAdjustment {
	var adjustments []PricingAdjustment

	if cond := conditionScore(pc); cond != nil {
		switch {
		case *cond >= 0.8:
			adjustments = append(adjustments, PricingAdjustment{
				Name: "condition", Percent: 3.0, Reason: "unit in excellent condition",
			})
		case *cond <= 0.4:
			adjustments = append(adjustments, PricingAdjustment{
				Name: "condition", Percent: -5.0, Reason: "unit condition below standard",
			})
		}
	}

	if n := len(pc.Unit.Amenities); n > 0 {
		pct := amenityPercentEach * float64(n)
		if pct > amenityPercentCap {
			pct = amenityPercentCap
		}
		adjustments = append(adjustments, PricingAdjustment{
			Name: "amenities", Percent: pct, Reason: "premium amenities",
		})
	}

	if pc.OccupancyRate != nil {
		switch {
		case *pc.OccupancyRate < 0.85:
			adjustments = append(adjustments, PricingAdjustment{
				Name: "occupancy", Percent: -3.0, Reason: "soft occupancy at property",
			})
		case *pc.OccupancyRate > 0.97:
			adjustments = append(adjustments, PricingAdjustment{
				Name: "occupancy", Percent: 2.0, Reason: "property near full occupancy",
			})
		}
	}

	return adjustments
}

// conditionScore prefers the latest inspection over the unit's stored score.
func conditionScore(pc *PricingContext) *float64 {
	if pc.Inspection != nil {
		return &pc.Inspection.ConditionScore
	}
	return pc.Unit.ConditionScore
}

// MedianDecimal returns the median of values without mutating the input.
func MedianDecimal(values []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return sorted[n/2-1].Add(sorted[n/2]).Div(decimal.NewFromInt(2))
}
