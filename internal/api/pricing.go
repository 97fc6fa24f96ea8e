package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Brickline-Labs/Foresight/internal/events"
	"github.com/Brickline-Labs/Foresight/internal/metrics"
	"github.com/Brickline-Labs/Foresight/internal/scoring"
	"github.com/Brickline-Labs/Foresight/internal/store"
)

// PricingHandler serves rent suggestions and energy anomaly reports.
type PricingHandler struct {
	store  store.Store
	events events.Client
}

func NewPricingHandler(s store.Store, ev events.Client) *PricingHandler {
	return &PricingHandler{store: s, events: ev}
}

func (h *PricingHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	unitID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid unit id"})
		return
	}

	ctx := r.Context()
	unit, err := h.store.GetUnit(ctx, unitID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if unit == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unit not found"})
		return
	}

	property, err := h.store.GetProperty(ctx, unit.PropertyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	pc := &scoring.PricingContext{Unit: unit}

	if property != nil {
		rents, err := h.store.GetComparableRents(ctx, property.City, unit.Bedrooms)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		pc.ComparableRents = rents

		rate, err := h.store.GetOccupancyRate(ctx, unit.PropertyID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		pc.OccupancyRate = &rate
	}

	inspection, err := h.store.GetLatestInspection(ctx, unitID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	pc.Inspection = inspection

	result := scoring.SuggestRent(pc)

	metrics.EngineRuns.WithLabelValues("pricing").Inc()

	if h.events != nil {
		_ = h.events.Publish(events.SubjectUnitPriced(unitID.String()), events.UnitPricedEvent{
			UnitID:        unitID.String(),
			CurrentRent:   result.CurrentRent.String(),
			SuggestedRent: result.SuggestedRent.String(),
			Confidence:    result.Confidence,
		})
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *PricingHandler) EnergyAnomalies(w http.ResponseWriter, r *http.Request) {
	propertyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property id"})
		return
	}

	meterType := r.URL.Query().Get("meter_type")
	if meterType == "" {
		meterType = "electric"
	}
	switch meterType {
	case "electric", "gas", "water":
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "meter_type must be electric, gas, or water"})
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

	readings, err := h.store.GetReadingsForProperty(ctx, propertyID, meterType)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	report := scoring.DetectAnomalies(meterType, readings)
	metrics.EngineRuns.WithLabelValues("energy").Inc()

	if h.events != nil && len(report.Anomalies) > 0 {
		_ = h.events.Publish(events.SubjectEnergyAnomaly(propertyID.String()), events.EnergyAnomalyEvent{
			PropertyID: propertyID.String(),
			MeterType:  meterType,
			Anomalies:  len(report.Anomalies),
			Timestamp:  time.Now(),
		})
	}

	writeJSON(w, http.StatusOK, report)
}
