package events

const (
	StreamName   = "FORESIGHT_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectTenantScreened(tenantID string) string     { return "prop.tenant." + tenantID + ".screened" }
func SubjectTenantFraudChecked(tenantID string) string { return "prop.tenant." + tenantID + ".fraud_checked" }
func SubjectTenantMoveOutRisk(tenantID string) string  { return "prop.tenant." + tenantID + ".move_out_risk" }
func SubjectTenantSatisfaction(tenantID string) string { return "prop.tenant." + tenantID + ".satisfaction" }

func SubjectUnitPriced(unitID string) string { return "prop.unit." + unitID + ".priced" }

func SubjectMaintenanceTriaged(requestID string) string {
	return "prop.maintenance." + requestID + ".triaged"
}
func SubjectMaintenanceForecast(propertyID string) string {
	return "prop.maintenance." + propertyID + ".forecast"
}

func SubjectEnergyAnomaly(propertyID string) string {
	return "prop.property." + propertyID + ".energy_anomaly"
}
