//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		// Truncate in dependency order
		_, _ = s.pool.Exec(ctx, "TRUNCATE assessments CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE meter_readings CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE inspections CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE documents CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE maintenance_logs CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE maintenance_requests CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE messages CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE payments CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE tenants CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE units CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE properties CASCADE")
		s.Close()
	})

	return s
}

func seedProperty(t *testing.T, s *PostgresStore) *Property {
	t.Helper()
	year := 2012
	p := &Property{
		Name:      "Harbor View",
		Address:   "400 Dock St",
		City:      "Portland",
		State:     "OR",
		Zip:       "97201",
		YearBuilt: &year,
	}
	if err := s.CreateProperty(context.Background(), p); err != nil {
		t.Fatalf("CreateProperty failed: %v", err)
	}
	return p
}

func seedUnit(t *testing.T, s *PostgresStore, propertyID uuid.UUID, number, rent string, bedrooms int, occupied bool) *Unit {
	t.Helper()
	u := &Unit{
		PropertyID: propertyID,
		Number:     number,
		Bedrooms:   bedrooms,
		Bathrooms:  1,
		Rent:       decimal.RequireFromString(rent),
		Occupied:   occupied,
	}
	if err := s.CreateUnit(context.Background(), u); err != nil {
		t.Fatalf("CreateUnit failed: %v", err)
	}
	return u
}

func TestCreateAndGetProperty(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	p := seedProperty(t, s)
	if p.ID == uuid.Nil {
		t.Fatal("expected non-nil property ID after create")
	}
	if p.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	got, err := s.GetProperty(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProperty failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected property, got nil")
	}
	if got.Name != "Harbor View" {
		t.Errorf("expected name 'Harbor View', got '%s'", got.Name)
	}
	if got.YearBuilt == nil || *got.YearBuilt != 2012 {
		t.Errorf("expected year built 2012, got %v", got.YearBuilt)
	}

	missing, err := s.GetProperty(ctx, uuid.New())
	if err != nil {
		t.Fatalf("GetProperty for unknown id failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown property id")
	}
}

func TestCreateAndGetTenant(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	p := seedProperty(t, s)
	u := seedUnit(t, s, p.ID, "101", "1850.00", 2, true)

	income := decimal.RequireFromString("5400.00")
	months := 30
	moveIn := time.Now().AddDate(-2, 0, 0)
	tenant := &Tenant{
		UnitID:           &u.ID,
		FirstName:        "Dana",
		LastName:         "Reyes",
		Email:            "dana@example.com",
		MonthlyIncome:    &income,
		EmploymentType:   "full_time",
		EmploymentMonths: &months,
		MoveInDate:       &moveIn,
		ReferencesCount:  2,
	}
	if err := s.CreateTenant(ctx, tenant); err != nil {
		t.Fatalf("CreateTenant failed: %v", err)
	}
	if tenant.ID == uuid.Nil {
		t.Fatal("expected non-nil tenant ID after create")
	}

	got, err := s.GetTenant(ctx, tenant.ID)
	if err != nil {
		t.Fatalf("GetTenant failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected tenant, got nil")
	}
	if got.LastName != "Reyes" {
		t.Errorf("expected last name 'Reyes', got '%s'", got.LastName)
	}
	if got.MonthlyIncome == nil || !got.MonthlyIncome.Equal(income) {
		t.Errorf("expected income %s, got %v", income, got.MonthlyIncome)
	}
	if got.UnitID == nil || *got.UnitID != u.ID {
		t.Errorf("expected unit %s, got %v", u.ID, got.UnitID)
	}
	if got.ReliabilityScore != nil {
		t.Error("fresh tenant should have no reliability score")
	}

	// Engines write derived scores back through UpdateTenant.
	score := 82.5
	got.ReliabilityScore = &score
	if err := s.UpdateTenant(ctx, got); err != nil {
		t.Fatalf("UpdateTenant failed: %v", err)
	}
	again, err := s.GetTenant(ctx, tenant.ID)
	if err != nil {
		t.Fatalf("GetTenant after update failed: %v", err)
	}
	if again.ReliabilityScore == nil || *again.ReliabilityScore != 82.5 {
		t.Errorf("expected reliability 82.5, got %v", again.ReliabilityScore)
	}
}

func TestListTenantsFilteredByUnit(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	p := seedProperty(t, s)
	a := seedUnit(t, s, p.ID, "101", "1800.00", 2, true)
	b := seedUnit(t, s, p.ID, "102", "1900.00", 2, true)

	for _, tn := range []*Tenant{
		{UnitID: &a.ID, FirstName: "Ana", LastName: "Kim"},
		{UnitID: &a.ID, FirstName: "Ben", LastName: "Kim"},
		{UnitID: &b.ID, FirstName: "Cal", LastName: "Ortiz"},
	} {
		if err := s.CreateTenant(ctx, tn); err != nil {
			t.Fatalf("CreateTenant failed: %v", err)
		}
	}

	result, err := s.ListTenants(ctx, TenantFilter{UnitID: &a.ID})
	if err != nil {
		t.Fatalf("ListTenants failed: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("expected 2 tenants in unit 101, got %d", len(result))
	}

	all, err := s.ListTenants(ctx, TenantFilter{})
	if err != nil {
		t.Fatalf("ListTenants failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 tenants, got %d", len(all))
	}
}

func TestMaintenanceRequestLifecycle(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	p := seedProperty(t, s)
	u := seedUnit(t, s, p.ID, "101", "1800.00", 2, true)

	low := decimal.RequireFromString("150.00")
	high := decimal.RequireFromString("650.00")
	req := &MaintenanceRequest{
		UnitID:            u.ID,
		Title:             "Kitchen sink leaking",
		Category:          "plumbing",
		Priority:          "urgent",
		EstimatedCostLow:  &low,
		EstimatedCostHigh: &high,
		Status:            RequestOpen,
	}
	if err := s.CreateMaintenanceRequest(ctx, req); err != nil {
		t.Fatalf("CreateMaintenanceRequest failed: %v", err)
	}
	if req.ReportedAt.IsZero() {
		t.Fatal("expected ReportedAt to be set")
	}

	now := time.Now()
	req.Status = RequestResolved
	req.ResolvedAt = &now
	if err := s.UpdateMaintenanceRequest(ctx, req); err != nil {
		t.Fatalf("UpdateMaintenanceRequest failed: %v", err)
	}

	got, err := s.GetMaintenanceRequest(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetMaintenanceRequest failed: %v", err)
	}
	if got.Status != RequestResolved {
		t.Errorf("expected resolved, got %s", got.Status)
	}
	if got.ResolvedAt == nil {
		t.Error("expected ResolvedAt to be set")
	}
	if got.EstimatedCostLow == nil || !got.EstimatedCostLow.Equal(low) {
		t.Errorf("expected cost low %s, got %v", low, got.EstimatedCostLow)
	}

	list, err := s.ListMaintenanceRequests(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListMaintenanceRequests failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 request for unit, got %d", len(list))
	}
}

func TestComparableRentsAndOccupancy(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	p := seedProperty(t, s)
	seedUnit(t, s, p.ID, "101", "1700.00", 2, true)
	seedUnit(t, s, p.ID, "102", "1900.00", 2, true)
	seedUnit(t, s, p.ID, "103", "2100.00", 2, false) // vacant, excluded from comps
	seedUnit(t, s, p.ID, "201", "2600.00", 3, true)  // wrong bedroom count

	rents, err := s.GetComparableRents(ctx, "Portland", 2)
	if err != nil {
		t.Fatalf("GetComparableRents failed: %v", err)
	}
	if len(rents) != 2 {
		t.Fatalf("expected 2 comps, got %d", len(rents))
	}
	if !rents[0].Equal(decimal.RequireFromString("1700.00")) {
		t.Errorf("comps should come back ascending, got %s first", rents[0])
	}

	rate, err := s.GetOccupancyRate(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetOccupancyRate failed: %v", err)
	}
	if rate != 0.75 {
		t.Errorf("expected occupancy 0.75, got %f", rate)
	}

	emptyRate, err := s.GetOccupancyRate(ctx, uuid.New())
	if err != nil {
		t.Fatalf("GetOccupancyRate for empty property failed: %v", err)
	}
	if emptyRate != 0 {
		t.Errorf("expected 0 occupancy for property with no units, got %f", emptyRate)
	}
}

func TestAssessmentRoundTrip(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	tenant := &Tenant{FirstName: "Dana", LastName: "Reyes"}
	if err := s.CreateTenant(ctx, tenant); err != nil {
		t.Fatalf("CreateTenant failed: %v", err)
	}

	a := &Assessment{
		TenantID: tenant.ID,
		Kind:     AssessmentScreening,
		Score:    74.2,
		Category: "medium",
		Factors: map[string]interface{}{
			"financial": map[string]interface{}{"score": 0.8, "weight": 0.35},
		},
		Recommendations: []string{"Request an additional reference"},
	}
	if err := s.CreateAssessment(ctx, a); err != nil {
		t.Fatalf("CreateAssessment failed: %v", err)
	}
	b := &Assessment{TenantID: tenant.ID, Kind: AssessmentFraud, Score: 10, Category: "low"}
	if err := s.CreateAssessment(ctx, b); err != nil {
		t.Fatalf("CreateAssessment failed: %v", err)
	}

	all, err := s.GetAssessmentsForTenant(ctx, tenant.ID, "")
	if err != nil {
		t.Fatalf("GetAssessmentsForTenant failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 assessments, got %d", len(all))
	}

	screenings, err := s.GetAssessmentsForTenant(ctx, tenant.ID, AssessmentScreening)
	if err != nil {
		t.Fatalf("GetAssessmentsForTenant failed: %v", err)
	}
	if len(screenings) != 1 {
		t.Fatalf("expected 1 screening assessment, got %d", len(screenings))
	}
	got := screenings[0]
	if got.Score != 74.2 {
		t.Errorf("expected score 74.2, got %f", got.Score)
	}
	if got.Factors == nil {
		t.Fatal("expected factors to survive the round trip")
	}
	if len(got.Recommendations) != 1 {
		t.Errorf("expected 1 recommendation, got %d", len(got.Recommendations))
	}
}

func TestGetStats(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	p := seedProperty(t, s)
	u := seedUnit(t, s, p.ID, "101", "1800.00", 2, true)
	seedUnit(t, s, p.ID, "102", "1800.00", 2, false)

	req := &MaintenanceRequest{UnitID: u.ID, Title: "Door hinge loose", Status: RequestOpen}
	if err := s.CreateMaintenanceRequest(ctx, req); err != nil {
		t.Fatalf("CreateMaintenanceRequest failed: %v", err)
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalProperties != 1 {
		t.Errorf("expected 1 property, got %d", stats.TotalProperties)
	}
	if stats.TotalUnits != 2 || stats.OccupiedUnits != 1 {
		t.Errorf("expected 2 units / 1 occupied, got %d / %d", stats.TotalUnits, stats.OccupiedUnits)
	}
	if stats.OpenRequests != 1 {
		t.Errorf("expected 1 open request, got %d", stats.OpenRequests)
	}
}
