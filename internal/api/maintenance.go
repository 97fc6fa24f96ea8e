package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Brickline-Labs/Foresight/internal/events"
	"github.com/Brickline-Labs/Foresight/internal/metrics"
	"github.com/Brickline-Labs/Foresight/internal/scoring"
	"github.com/Brickline-Labs/Foresight/internal/store"
)

// MaintenanceHandler triages incoming requests and forecasts component
// failures from the property service log.
type MaintenanceHandler struct {
	store  store.Store
	events events.Client
}

func NewMaintenanceHandler(s store.Store, ev events.Client) *MaintenanceHandler {
	return &MaintenanceHandler{store: s, events: ev}
}

type CreateMaintenanceRequest struct {
	UnitID      string `json:"unit_id"`
	TenantID    string `json:"tenant_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Create stores a new maintenance request with its triage classification
// already applied.
func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title required"})
		return
	}
	unitID, err := uuid.Parse(req.UnitID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid unit_id"})
		return
	}

	triage := scoring.Triage(req.Title, req.Description)
	metrics.EngineRuns.WithLabelValues("triage").Inc()

	mr := &store.MaintenanceRequest{
		UnitID:            unitID,
		Title:             req.Title,
		Description:       req.Description,
		Category:          triage.Category,
		Priority:          string(triage.Priority),
		EstimatedCostLow:  &triage.CostLow,
		EstimatedCostHigh: &triage.CostHigh,
		Status:            store.RequestOpen,
		ReportedAt:        time.Now(),
	}
	if req.TenantID != "" {
		tid, err := uuid.Parse(req.TenantID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tenant_id"})
			return
		}
		mr.TenantID = &tid
	}

	if err := h.store.CreateMaintenanceRequest(r.Context(), mr); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectMaintenanceTriaged(mr.ID.String()), events.MaintenanceTriagedEvent{
			RequestID: mr.ID.String(),
			UnitID:    unitID.String(),
			Category:  triage.Category,
			Priority:  string(triage.Priority),
		})
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"request": mr,
		"triage":  triage,
	})
}

func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request id"})
		return
	}

	mr, err := h.store.GetMaintenanceRequest(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if mr == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "request not found"})
		return
	}
	writeJSON(w, http.StatusOK, mr)
}

func (h *MaintenanceHandler) ListForUnit(w http.ResponseWriter, r *http.Request) {
	unitID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid unit id"})
		return
	}

	requests, err := h.store.ListMaintenanceRequests(r.Context(), unitID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if requests == nil {
		requests = []*store.MaintenanceRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *MaintenanceHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request id"})
		return
	}

	ctx := r.Context()
	mr, err := h.store.GetMaintenanceRequest(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if mr == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "request not found"})
		return
	}
	if mr.Status == store.RequestResolved {
		writeJSON(w, http.StatusOK, mr)
		return
	}

	now := time.Now()
	mr.Status = store.RequestResolved
	mr.ResolvedAt = &now

	if err := h.store.UpdateMaintenanceRequest(ctx, mr); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, mr)
}

// Forecast returns the component failure outlook for a property, derived
// from its service log and build year.
func (h *MaintenanceHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	propertyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property id"})
		return
	}

	ctx := r.Context()
	property, err := h.store.GetProperty(ctx, propertyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if property == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found"})
		return
	}

	logs, err := h.store.GetLogsForProperty(ctx, propertyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	forecasts := scoring.ForecastMaintenance(property, logs, time.Now())
	metrics.EngineRuns.WithLabelValues("forecast").Inc()

	if forecasts == nil {
		forecasts = []scoring.ComponentForecast{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"property_id": propertyID,
		"forecasts":   forecasts,
	})
}
