package scoring

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TriagePriority is the ordered priority bucket for a maintenance request.
type TriagePriority string

const (
	PriorityEmergency TriagePriority = "emergency"
	PriorityUrgent    TriagePriority = "urgent"
	PriorityRoutine   TriagePriority = "routine"
	PriorityLow       TriagePriority = "low"
)

// TriageResult captures the maintenance triage output for one request.
type TriageResult struct {
	Category string          `json:"category"`
	Priority TriagePriority  `json:"priority"`
	CostLow  decimal.Decimal `json:"cost_low"`
	CostHigh decimal.Decimal `json:"cost_high"`
	Matched  []string        `json:"matched_keywords"`
}

// emergencyKeywords override everything: any hit makes the request an
// emergency regardless of category.
var emergencyKeywords = []string{
	"flood", "flooding", "burst pipe", "gas leak", "gas smell",
	"no heat", "sparking", "fire", "smoke", "sewage", "carbon monoxide",
}

var urgentKeywords = []string{
	"leak", "no hot water", "not working", "broken", "overflow",
	"won't lock", "wont lock", "no power",
}

var lowKeywords = []string{
	"paint", "scratch", "cosmetic", "squeak", "touch up", "touch-up",
}

var categoryKeywords = map[string][]string{
	"plumbing":   {"leak", "drip", "clog", "toilet", "faucet", "pipe", "drain", "water heater", "sink"},
	"electrical": {"outlet", "breaker", "light", "wiring", "power", "sparking", "switch"},
	"hvac":       {"heat", "heating", "furnace", "thermostat", "air conditioning", "a/c", "cooling", "hvac"},
	"appliance":  {"refrigerator", "fridge", "dishwasher", "oven", "stove", "washer", "dryer", "microwave"},
	"structural": {"roof", "wall", "ceiling", "floor", "window", "door", "crack", "stairs"},
	"pest":       {"mice", "mouse", "rat", "roach", "ant", "bedbug", "termite", "pest"},
}

// categoryOrder fixes the tie-break when several categories match: the
// first listed category with the most keyword hits wins.
var categoryOrder = []string{"plumbing", "electrical", "hvac", "appliance", "structural", "pest"}

type costRange struct {
	low, high int64
}

var categoryCosts = map[string]costRange{
	"plumbing":   {150, 650},
	"electrical": {120, 500},
	"hvac":       {200, 1200},
	"appliance":  {100, 600},
	"structural": {250, 2000},
	"pest":       {150, 400},
	"general":    {75, 300},
}

// Triage classifies a maintenance request from its title and description by
// keyword matching: category with the most hits, priority from the keyword
// tier, cost range from the static table.
func Triage(title, description string) TriageResult {
	text := strings.ToLower(title + " " + description)

	category, matched := matchCategory(text)
	priority := matchPriority(text)

	costs := categoryCosts[category]
	return TriageResult{
		Category: category,
		Priority: priority,
		CostLow:  decimal.NewFromInt(costs.low),
		CostHigh: decimal.NewFromInt(costs.high),
		Matched:  matched,
	}
}

func matchCategory(text string) (string, []string) {
	best := "general"
	bestHits := 0
	var bestMatched []string

	for _, cat := range categoryOrder {
		var matched []string
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(text, kw) {
				matched = append(matched, kw)
			}
		}
		if len(matched) > bestHits {
			best = cat
			bestHits = len(matched)
			bestMatched = matched
		}
	}
	return best, bestMatched
}

func matchPriority(text string) TriagePriority {
	for _, kw := range emergencyKeywords {
		if strings.Contains(text, kw) {
			return PriorityEmergency
		}
	}
	for _, kw := range urgentKeywords {
		if strings.Contains(text, kw) {
			return PriorityUrgent
		}
	}
	for _, kw := range lowKeywords {
		if strings.Contains(text, kw) {
			return PriorityLow
		}
	}
	return PriorityRoutine
}
