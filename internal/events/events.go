package events

import "time"

type TenantScreenedEvent struct {
	TenantID         string   `json:"tenant_id"`
	ReliabilityScore float64  `json:"reliability_score"`
	RiskLevel        string   `json:"risk_level"`
	Recommendations  []string `json:"recommendations,omitempty"`
}

type FraudCheckedEvent struct {
	TenantID string   `json:"tenant_id"`
	Score    float64  `json:"score"`
	Level    string   `json:"level"`
	Flags    []string `json:"flags,omitempty"`
}

type MoveOutRiskEvent struct {
	TenantID    string  `json:"tenant_id"`
	Probability float64 `json:"probability"`
	Likelihood  string  `json:"likelihood"`
}

type MaintenanceTriagedEvent struct {
	RequestID string `json:"request_id"`
	UnitID    string `json:"unit_id"`
	Category  string `json:"category"`
	Priority  string `json:"priority"`
}

type UnitPricedEvent struct {
	UnitID        string `json:"unit_id"`
	CurrentRent   string `json:"current_rent"`
	SuggestedRent string `json:"suggested_rent"`
	Confidence    string `json:"confidence"`
}

type EnergyAnomalyEvent struct {
	PropertyID string    `json:"property_id"`
	MeterType  string    `json:"meter_type"`
	Anomalies  int       `json:"anomalies"`
	Timestamp  time.Time `json:"timestamp"`
}
