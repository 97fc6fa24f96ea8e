package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentLate    PaymentStatus = "late"
	PaymentMissed  PaymentStatus = "missed"
)

type RequestStatus string

const (
	RequestOpen       RequestStatus = "open"
	RequestInProgress RequestStatus = "in_progress"
	RequestResolved   RequestStatus = "resolved"
	RequestCancelled  RequestStatus = "cancelled"
)

type AssessmentKind string

const (
	AssessmentScreening    AssessmentKind = "screening"
	AssessmentFraud        AssessmentKind = "fraud"
	AssessmentMoveOut      AssessmentKind = "move_out"
	AssessmentSatisfaction AssessmentKind = "satisfaction"
)

type Property struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state,omitempty"`
	Zip       string    `json:"zip,omitempty"`
	YearBuilt *int      `json:"year_built,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Unit struct {
	ID             uuid.UUID       `json:"id"`
	PropertyID     uuid.UUID       `json:"property_id"`
	Number         string          `json:"number"`
	Bedrooms       int             `json:"bedrooms"`
	Bathrooms      float64         `json:"bathrooms"`
	SquareFeet     *int            `json:"square_feet,omitempty"`
	Rent           decimal.Decimal `json:"rent"`
	Amenities      []string        `json:"amenities,omitempty"`
	ConditionScore *float64        `json:"condition_score,omitempty"`
	Occupied       bool            `json:"occupied"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type Tenant struct {
	ID     uuid.UUID  `json:"id"`
	UnitID *uuid.UUID `json:"unit_id,omitempty"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`

	// Application / employment
	MonthlyIncome    *decimal.Decimal `json:"monthly_income,omitempty"`
	EmploymentType   string           `json:"employment_type,omitempty"` // full_time, part_time, self_employed, unemployed, retired
	EmploymentMonths *int             `json:"employment_months,omitempty"`

	// Rental history
	MoveInDate      *time.Time `json:"move_in_date,omitempty"`
	LeaseEndDate    *time.Time `json:"lease_end_date,omitempty"`
	PriorEvictions  int        `json:"prior_evictions"`
	YearsRenting    *float64   `json:"years_renting,omitempty"`
	ReferencesCount int        `json:"references_count"`

	// Derived scores, written back by the engines
	ReliabilityScore   *float64 `json:"reliability_score,omitempty"`
	FraudRiskScore     *float64 `json:"fraud_risk_score,omitempty"`
	MoveOutProbability *float64 `json:"move_out_probability,omitempty"`
	SatisfactionScore  *float64 `json:"satisfaction_score,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Payment struct {
	ID        uuid.UUID       `json:"id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   time.Time       `json:"due_date"`
	PaidDate  *time.Time      `json:"paid_date,omitempty"`
	Status    PaymentStatus   `json:"status"`
	Method    string          `json:"method,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type Message struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Direction   string     `json:"direction"` // inbound (from tenant) or outbound
	Body        string     `json:"body"`
	SentAt      time.Time  `json:"sent_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

type MaintenanceRequest struct {
	ID       uuid.UUID  `json:"id"`
	UnitID   uuid.UUID  `json:"unit_id"`
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Triage outputs
	Category          string           `json:"category,omitempty"`
	Priority          string           `json:"priority,omitempty"`
	EstimatedCostLow  *decimal.Decimal `json:"estimated_cost_low,omitempty"`
	EstimatedCostHigh *decimal.Decimal `json:"estimated_cost_high,omitempty"`

	Status     RequestStatus `json:"status"`
	ReportedAt time.Time     `json:"reported_at"`
	ResolvedAt *time.Time    `json:"resolved_at,omitempty"`
}

type MaintenanceLog struct {
	ID          uuid.UUID        `json:"id"`
	PropertyID  uuid.UUID        `json:"property_id"`
	Component   string           `json:"component"` // hvac, water_heater, roof, ...
	Description string           `json:"description,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	ServicedAt  time.Time        `json:"serviced_at"`
}

type Document struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	DocType     string    `json:"doc_type"` // paystub, id, reference, lease, other
	FileName    string    `json:"file_name,omitempty"`
	SubjectName string    `json:"subject_name,omitempty"` // name extracted from the document
	Verified    bool      `json:"verified"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type Inspection struct {
	ID             uuid.UUID `json:"id"`
	UnitID         uuid.UUID `json:"unit_id"`
	ConditionScore float64   `json:"condition_score"` // 0–1
	Notes          string    `json:"notes,omitempty"`
	InspectedAt    time.Time `json:"inspected_at"`
}

type MeterReading struct {
	ID          uuid.UUID `json:"id"`
	PropertyID  uuid.UUID `json:"property_id"`
	MeterType   string    `json:"meter_type"` // electric, gas, water
	Usage       float64   `json:"usage"`
	ReadingDate time.Time `json:"reading_date"`
}

// Assessment is a persisted engine run: score, category, factor breakdown, and
// the recommendations produced for it.
type Assessment struct {
	ID              uuid.UUID              `json:"id"`
	TenantID        uuid.UUID              `json:"tenant_id"`
	Kind            AssessmentKind         `json:"kind"`
	Score           float64                `json:"score"`
	Category        string                 `json:"category"`
	Factors         map[string]interface{} `json:"factors,omitempty"`
	Recommendations []string               `json:"recommendations,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

type TenantFilter struct {
	UnitID *uuid.UUID
	Limit  int
	Offset int
}

type PortfolioStats struct {
	TotalProperties  int     `json:"total_properties"`
	TotalUnits       int     `json:"total_units"`
	OccupiedUnits    int     `json:"occupied_units"`
	OpenRequests     int     `json:"open_requests"`
	AvgReliability   float64 `json:"avg_reliability"`
	AvgMoveOutRisk   float64 `json:"avg_move_out_risk"`
	AssessmentsTotal int     `json:"assessments_total"`
}

type Store interface {
	CreateProperty(ctx context.Context, p *Property) error
	GetProperty(ctx context.Context, id uuid.UUID) (*Property, error)
	ListProperties(ctx context.Context, limit, offset int) ([]*Property, error)

	CreateUnit(ctx context.Context, u *Unit) error
	GetUnit(ctx context.Context, id uuid.UUID) (*Unit, error)
	ListUnits(ctx context.Context, propertyID uuid.UUID) ([]*Unit, error)
	UpdateUnit(ctx context.Context, u *Unit) error
	GetComparableRents(ctx context.Context, city string, bedrooms int) ([]decimal.Decimal, error)
	GetOccupancyRate(ctx context.Context, propertyID uuid.UUID) (float64, error)

	CreateTenant(ctx context.Context, t *Tenant) error
	GetTenant(ctx context.Context, id uuid.UUID) (*Tenant, error)
	ListTenants(ctx context.Context, filter TenantFilter) ([]*Tenant, error)
	UpdateTenant(ctx context.Context, t *Tenant) error

	CreatePayment(ctx context.Context, p *Payment) error
	GetPaymentsForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Payment, error)

	CreateMessage(ctx context.Context, m *Message) error
	GetMessagesForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Message, error)

	CreateMaintenanceRequest(ctx context.Context, r *MaintenanceRequest) error
	GetMaintenanceRequest(ctx context.Context, id uuid.UUID) (*MaintenanceRequest, error)
	ListMaintenanceRequests(ctx context.Context, unitID uuid.UUID) ([]*MaintenanceRequest, error)
	GetRequestsForTenant(ctx context.Context, tenantID uuid.UUID) ([]*MaintenanceRequest, error)
	UpdateMaintenanceRequest(ctx context.Context, r *MaintenanceRequest) error

	CreateMaintenanceLog(ctx context.Context, l *MaintenanceLog) error
	GetLogsForProperty(ctx context.Context, propertyID uuid.UUID) ([]*MaintenanceLog, error)

	CreateDocument(ctx context.Context, d *Document) error
	GetDocumentsForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Document, error)

	CreateInspection(ctx context.Context, i *Inspection) error
	GetLatestInspection(ctx context.Context, unitID uuid.UUID) (*Inspection, error)

	CreateMeterReading(ctx context.Context, r *MeterReading) error
	GetReadingsForProperty(ctx context.Context, propertyID uuid.UUID, meterType string) ([]*MeterReading, error)

	CreateAssessment(ctx context.Context, a *Assessment) error
	GetAssessmentsForTenant(ctx context.Context, tenantID uuid.UUID, kind AssessmentKind) ([]*Assessment, error)

	GetStats(ctx context.Context) (*PortfolioStats, error)

	Close() error
}
