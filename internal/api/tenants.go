package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Brickline-Labs/Foresight/internal/store"
)

type TenantsHandler struct {
	store store.Store
}

func NewTenantsHandler(s store.Store) *TenantsHandler {
	return &TenantsHandler{store: s}
}

type CreateTenantRequest struct {
	UnitID           string           `json:"unit_id,omitempty"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	Email            string           `json:"email,omitempty"`
	Phone            string           `json:"phone,omitempty"`
	MonthlyIncome    *decimal.Decimal `json:"monthly_income,omitempty"`
	EmploymentType   string           `json:"employment_type,omitempty"`
	EmploymentMonths *int             `json:"employment_months,omitempty"`
	MoveInDate       *time.Time       `json:"move_in_date,omitempty"`
	LeaseEndDate     *time.Time       `json:"lease_end_date,omitempty"`
	PriorEvictions   int              `json:"prior_evictions,omitempty"`
	YearsRenting     *float64         `json:"years_renting,omitempty"`
	ReferencesCount  int              `json:"references_count,omitempty"`
}

func (h *TenantsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "first_name and last_name required"})
		return
	}

	t := &store.Tenant{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		MonthlyIncome:    req.MonthlyIncome,
		EmploymentType:   req.EmploymentType,
		EmploymentMonths: req.EmploymentMonths,
		MoveInDate:       req.MoveInDate,
		LeaseEndDate:     req.LeaseEndDate,
		PriorEvictions:   req.PriorEvictions,
		YearsRenting:     req.YearsRenting,
		ReferencesCount:  req.ReferencesCount,
	}
	if req.UnitID != "" {
		uid, err := uuid.Parse(req.UnitID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid unit_id"})
			return
		}
		t.UnitID = &uid
	}

	if err := h.store.CreateTenant(r.Context(), t); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TenantsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.TenantFilter{}
	if u := r.URL.Query().Get("unit_id"); u != "" {
		uid, err := uuid.Parse(u)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid unit_id"})
			return
		}
		filter.UnitID = &uid
	}

	tenants, err := h.store.ListTenants(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if tenants == nil {
		tenants = []*store.Tenant{}
	}
	writeJSON(w, http.StatusOK, tenants)
}

func (h *TenantsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tenant id"})
		return
	}

	t, err := h.store.GetTenant(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if t == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tenant not found"})
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type CreatePaymentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	DueDate  time.Time       `json:"due_date"`
	PaidDate *time.Time      `json:"paid_date,omitempty"`
	Status   string          `json:"status"`
	Method   string          `json:"method,omitempty"`
}

func (h *TenantsHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tenant id"})
		return
	}

	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if !req.Amount.IsPositive() || req.DueDate.IsZero() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "positive amount and due_date required"})
		return
	}

	status := store.PaymentStatus(req.Status)
	switch status {
	case store.PaymentPending, store.PaymentPaid, store.PaymentLate, store.PaymentMissed:
	case "":
		status = store.PaymentPending
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	p := &store.Payment{
		TenantID: tenantID,
		Amount:   req.Amount,
		DueDate:  req.DueDate,
		PaidDate: req.PaidDate,
		Status:   status,
		Method:   req.Method,
	}
	if err := h.store.CreatePayment(r.Context(), p); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *TenantsHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tenant id"})
		return
	}

	payments, err := h.store.GetPaymentsForTenant(r.Context(), tenantID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if payments == nil {
		payments = []*store.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

type CreateMessageRequest struct {
	Direction   string     `json:"direction"`
	Body        string     `json:"body"`
	SentAt      time.Time  `json:"sent_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

func (h *TenantsHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tenant id"})
		return
	}

	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Direction != "inbound" && req.Direction != "outbound" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "direction must be inbound or outbound"})
		return
	}
	if req.Body == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body required"})
		return
	}
	if req.SentAt.IsZero() {
		req.SentAt = time.Now()
	}

	m := &store.Message{
		TenantID:    tenantID,
		Direction:   req.Direction,
		Body:        req.Body,
		SentAt:      req.SentAt,
		RespondedAt: req.RespondedAt,
	}
	if err := h.store.CreateMessage(r.Context(), m); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

type CreateDocumentRequest struct {
	DocType     string `json:"doc_type"`
	FileName    string `json:"file_name,omitempty"`
	SubjectName string `json:"subject_name,omitempty"`
	Verified    bool   `json:"verified"`
}

func (h *TenantsHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tenant id"})
		return
	}

	var req CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.DocType == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "doc_type required"})
		return
	}

	d := &store.Document{
		TenantID:    tenantID,
		DocType:     req.DocType,
		FileName:    req.FileName,
		SubjectName: req.SubjectName,
		Verified:    req.Verified,
	}
	if err := h.store.CreateDocument(r.Context(), d); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, d)
}
