package scoring

import (
	"fmt"
	"math"
)

// ScreeningWeightSet defines the 5-factor weight distribution for the tenant
// screening engine. All weights must sum to 1.0 (±0.001 tolerance).
type ScreeningWeightSet struct {
	Financial     float64
	RentalHistory float64
	Employment    float64
	Communication float64
	Documents     float64
}

// DefaultScreeningWeights returns the standard weight distribution.
func DefaultScreeningWeights() ScreeningWeightSet {
	return ScreeningWeightSet{
		Financial:     0.35,
		RentalHistory: 0.25,
		Employment:    0.20,
		Communication: 0.10,
		Documents:     0.10,
	}
}

// Sum returns the total of all weights.
func (w ScreeningWeightSet) Sum() float64 {
	return w.Financial + w.RentalHistory + w.Employment + w.Communication + w.Documents
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w ScreeningWeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("screening weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.Financial, w.RentalHistory, w.Employment, w.Communication, w.Documents} {
		if v < 0 {
			return fmt.Errorf("negative screening weight: %f", v)
		}
	}
	return nil
}

// MoveOutWeightSet defines the 6-factor weight distribution for the
// move-out prediction engine.
type MoveOutWeightSet struct {
	LeaseHorizon float64
	PaymentTrend float64
	RentDelta    float64
	Complaints   float64
	Sentiment    float64
	Tenure       float64
}

// DefaultMoveOutWeights returns the standard weight distribution.
func DefaultMoveOutWeights() MoveOutWeightSet {
	return MoveOutWeightSet{
		LeaseHorizon: 0.25,
		PaymentTrend: 0.20,
		RentDelta:    0.15,
		Complaints:   0.15,
		Sentiment:    0.15,
		Tenure:       0.10,
	}
}

// Sum returns the total of all weights.
func (w MoveOutWeightSet) Sum() float64 {
	return w.LeaseHorizon + w.PaymentTrend + w.RentDelta + w.Complaints + w.Sentiment + w.Tenure
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w MoveOutWeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("move-out weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.LeaseHorizon, w.PaymentTrend, w.RentDelta, w.Complaints, w.Sentiment, w.Tenure} {
		if v < 0 {
			return fmt.Errorf("negative move-out weight: %f", v)
		}
	}
	return nil
}
