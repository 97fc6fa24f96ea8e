package scoring

import (
	"sort"
	"time"

	"github.com/Brickline-Labs/Foresight/internal/store"
)

// ComponentForecast is the failure outlook for one building component.
type ComponentForecast struct {
	Component          string  `json:"component"`
	AgeMonths          int     `json:"age_months"`
	ExpectedLifeMonths int     `json:"expected_life_months"`
	FailureLikelihood  float64 `json:"failure_likelihood"` // 0–1
	RecentRepairs      int     `json:"recent_repairs"`     // last 24 months
	Priority           string  `json:"priority"`           // low, medium, high, critical
	Recommendation     string  `json:"recommendation"`
}

// Expected component lifespans in months.
var componentLifespans = map[string]int{
	"hvac":             180,
	"water_heater":     120,
	"roof":             300,
	"refrigerator":     156,
	"dishwasher":       120,
	"washer":           132,
	"electrical_panel": 360,
}

const (
	repairWindowMonths   = 24
	repairLikelihoodBump = 0.05
	repairLikelihoodCap  = 0.15
	likelihoodCeiling    = 0.95
)

var forecastRecommendations = map[string]string{
	"critical": "Schedule a replacement assessment within 30 days.",
	"high":     "Budget for replacement this year and schedule preventive service.",
	"medium":   "Include in the next routine service cycle.",
	"low":      "No action needed.",
}

// ForecastMaintenance estimates failure likelihood per component from the
// service log and the property's age. A component's clock starts at its
// last service; with no log entry it starts at the property's build year.
// Components without either anchor are skipped. Output sorts by likelihood,
// highest first.
func ForecastMaintenance(property *store.Property, logs []*store.MaintenanceLog, now time.Time) []ComponentForecast {
	lastService := make(map[string]time.Time)
	recentRepairs := make(map[string]int)
	repairCutoff := now.AddDate(0, -repairWindowMonths, 0)

	for _, l := range logs {
		if l.ServicedAt.After(lastService[l.Component]) {
			lastService[l.Component] = l.ServicedAt
		}
		if l.ServicedAt.After(repairCutoff) {
			recentRepairs[l.Component]++
		}
	}

	var buildDate *time.Time
	if property.YearBuilt != nil {
		d := time.Date(*property.YearBuilt, time.January, 1, 0, 0, 0, 0, time.UTC)
		buildDate = &d
	}

	var forecasts []ComponentForecast
	for component, lifespan := range componentLifespans {
		anchor, ok := lastService[component]
		if !ok {
			if buildDate == nil {
				continue
			}
			anchor = *buildDate
		}

		ageMonths := monthsBetween(anchor, now)
		likelihood := clamp(float64(ageMonths)/float64(lifespan), 0, likelihoodCeiling)

		bump := repairLikelihoodBump * float64(recentRepairs[component])
		if bump > repairLikelihoodCap {
			bump = repairLikelihoodCap
		}
		likelihood = clamp(likelihood+bump, 0, likelihoodCeiling)

		priority := forecastPriority(likelihood)
		forecasts = append(forecasts, ComponentForecast{
			Component:          component,
			AgeMonths:          ageMonths,
			ExpectedLifeMonths: lifespan,
			FailureLikelihood:  likelihood,
			RecentRepairs:      recentRepairs[component],
			Priority:           priority,
			Recommendation:     forecastRecommendations[priority],
		})
	}

	sort.Slice(forecasts, func(i, j int) bool {
		if forecasts[i].FailureLikelihood != forecasts[j].FailureLikelihood {
			return forecasts[i].FailureLikelihood > forecasts[j].FailureLikelihood
		}
		return forecasts[i].Component < forecasts[j].Component
	})
	return forecasts
}

// forecastPriority maps likelihood to its bucket. Higher likelihood never
// yields a lower bucket.
func forecastPriority(likelihood float64) string {
	switch {
	case likelihood >= 0.8:
		return "critical"
	case likelihood >= 0.6:
		return "high"
	case likelihood >= 0.4:
		return "medium"
	default:
		return "low"
	}
}

func monthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	months := int(to.Sub(from).Hours() / (24 * 30.44))
	return months
}
