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

type PropertiesHandler struct {
	store store.Store
}

func NewPropertiesHandler(s store.Store) *PropertiesHandler {
	return &PropertiesHandler{store: s}
}

type CreatePropertyRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
	YearBuilt *int   `json:"year_built,omitempty"`
}

func (h *PropertiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" || req.Address == "" || req.City == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name, address, and city required"})
		return
	}

	p := &store.Property{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Zip:       req.Zip,
		YearBuilt: req.YearBuilt,
	}
	if err := h.store.CreateProperty(r.Context(), p); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PropertiesHandler) List(w http.ResponseWriter, r *http.Request) {
	props, err := h.store.ListProperties(r.Context(), 0, 0)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if props == nil {
		props = []*store.Property{}
	}
	writeJSON(w, http.StatusOK, props)
}

func (h *PropertiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property id"})
		return
	}

	p, err := h.store.GetProperty(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type CreateUnitRequest struct {
	Number         string          `json:"number"`
	Bedrooms       int             `json:"bedrooms"`
	Bathrooms      float64         `json:"bathrooms"`
	SquareFeet     *int            `json:"square_feet,omitempty"`
	Rent           decimal.Decimal `json:"rent"`
	Amenities      []string        `json:"amenities,omitempty"`
	ConditionScore *float64        `json:"condition_score,omitempty"`
	Occupied       bool            `json:"occupied"`
}

func (h *PropertiesHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	propertyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property id"})
		return
	}

	var req CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Number == "" || !req.Rent.IsPositive() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "number and positive rent required"})
		return
	}

	u := &store.Unit{
		PropertyID:     propertyID,
		Number:         req.Number,
		Bedrooms:       req.Bedrooms,
		Bathrooms:      req.Bathrooms,
		SquareFeet:     req.SquareFeet,
		Rent:           req.Rent,
		Amenities:      req.Amenities,
		ConditionScore: req.ConditionScore,
		Occupied:       req.Occupied,
	}
	if err := h.store.CreateUnit(r.Context(), u); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *PropertiesHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	propertyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property id"})
		return
	}

	units, err := h.store.ListUnits(r.Context(), propertyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if units == nil {
		units = []*store.Unit{}
	}
	writeJSON(w, http.StatusOK, units)
}

type CreateLogRequest struct {
	Component   string           `json:"component"`
	Description string           `json:"description,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	ServicedAt  time.Time        `json:"serviced_at"`
}

func (h *PropertiesHandler) CreateLog(w http.ResponseWriter, r *http.Request) {
	propertyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property id"})
		return
	}

	var req CreateLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Component == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "component required"})
		return
	}
	if req.ServicedAt.IsZero() {
		req.ServicedAt = time.Now()
	}

	l := &store.MaintenanceLog{
		PropertyID:  propertyID,
		Component:   req.Component,
		Description: req.Description,
		Cost:        req.Cost,
		ServicedAt:  req.ServicedAt,
	}
	if err := h.store.CreateMaintenanceLog(r.Context(), l); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

type CreateReadingRequest struct {
	MeterType   string    `json:"meter_type"`
	Usage       float64   `json:"usage"`
	ReadingDate time.Time `json:"reading_date"`
}

func (h *PropertiesHandler) CreateReading(w http.ResponseWriter, r *http.Request) {
	propertyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property id"})
		return
	}

	var req CreateReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.MeterType == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "meter_type required"})
		return
	}
	if req.ReadingDate.IsZero() {
		req.ReadingDate = time.Now()
	}

	reading := &store.MeterReading{
		PropertyID:  propertyID,
		MeterType:   req.MeterType,
		Usage:       req.Usage,
		ReadingDate: req.ReadingDate,
	}
	if err := h.store.CreateMeterReading(r.Context(), reading); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, reading)
}

type CreateInspectionRequest struct {
	ConditionScore float64   `json:"condition_score"`
	Notes          string    `json:"notes,omitempty"`
	InspectedAt    time.Time `json:"inspected_at"`
}

func (h *PropertiesHandler) CreateInspection(w http.ResponseWriter, r *http.Request) {
	unitID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid unit id"})
		return
	}

	var req CreateInspectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.ConditionScore < 0 || req.ConditionScore > 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "condition_score must be in [0, 1]"})
		return
	}
	if req.InspectedAt.IsZero() {
		req.InspectedAt = time.Now()
	}

	i := &store.Inspection{
		UnitID:         unitID,
		ConditionScore: req.ConditionScore,
		Notes:          req.Notes,
		InspectedAt:    req.InspectedAt,
	}
	if err := h.store.CreateInspection(r.Context(), i); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, i)
}
