package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Brickline-Labs/Foresight/internal/events"
	"github.com/Brickline-Labs/Foresight/internal/metrics"
	"github.com/Brickline-Labs/Foresight/internal/scoring"
	"github.com/Brickline-Labs/Foresight/internal/store"
)

// InsightsHandler runs the tenant-level scoring engines and persists their
// assessments.
type InsightsHandler struct {
	store     store.Store
	events    events.Client
	screener  *scoring.Screener
	predictor *scoring.MoveOutPredictor
}

func NewInsightsHandler(s store.Store, ev events.Client, screener *scoring.Screener, predictor *scoring.MoveOutPredictor) *InsightsHandler {
	return &InsightsHandler{store: s, events: ev, screener: screener, predictor: predictor}
}

// loadTenant resolves the tenant and the rent of its unit, when assigned.
func (h *InsightsHandler) loadTenant(ctx context.Context, id uuid.UUID) (*store.Tenant, *decimal.Decimal, *store.Unit, error) {
	t, err := h.store.GetTenant(ctx, id)
	if err != nil || t == nil {
		return t, nil, nil, err
	}
	if t.UnitID == nil {
		return t, nil, nil, nil
	}
	unit, err := h.store.GetUnit(ctx, *t.UnitID)
	if err != nil {
		return t, nil, nil, err
	}
	if unit == nil {
		return t, nil, nil, nil
	}
	return t, &unit.Rent, unit, nil
}

func (h *InsightsHandler) persistAssessment(ctx context.Context, a *store.Assessment) {
	if err := h.store.CreateAssessment(ctx, a); err == nil {
		metrics.AssessmentsPersisted.WithLabelValues(string(a.Kind)).Inc()
	}
}

func (h *InsightsHandler) Screen(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tenant id"})
		return
	}

	ctx := r.Context()
	tenant, rent, _, err := h.loadTenant(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if tenant == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tenant not found"})
		return
	}

	payments, err := h.store.GetPaymentsForTenant(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	messages, err := h.store.GetMessagesForTenant(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	documents, err := h.store.GetDocumentsForTenant(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	result := h.screener.Score(&scoring.ScreeningContext{
		Tenant:    tenant,
		Rent:      rent,
		Payments:  payments,
		Messages:  messages,
		Documents: documents,
		Now:       time.Now(),
	})

	metrics.EngineRuns.WithLabelValues("screening").Inc()
	metrics.EngineScores.WithLabelValues("screening").Observe(result.ReliabilityScore)

	h.persistAssessment(ctx, &store.Assessment{
		TenantID:        id,
		Kind:            store.AssessmentScreening,
		Score:           result.ReliabilityScore,
		Category:        string(result.RiskLevel),
		Factors:         scoring.FactorMap(result.Factors),
		Recommendations: result.Recommendations,
	})

	tenant.ReliabilityScore = &result.ReliabilityScore
	if err := h.store.UpdateTenant(ctx, tenant); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectTenantScreened(id.String()), events.TenantScreenedEvent{
			TenantID:         id.String(),
			ReliabilityScore: result.ReliabilityScore,
			RiskLevel:        string(result.RiskLevel),
			Recommendations:  result.Recommendations,
		})
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *InsightsHandler) FraudCheck(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tenant id"})
		return
	}

	ctx := r.Context()
	tenant, rent, _, err := h.loadTenant(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if tenant == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tenant not found"})
		return
	}

	documents, err := h.store.GetDocumentsForTenant(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	result := scoring.ScoreFraud(&scoring.FraudContext{
		Tenant:    tenant,
		Rent:      rent,
		Documents: documents,
	})

	metrics.EngineRuns.WithLabelValues("fraud").Inc()
	metrics.EngineScores.WithLabelValues("fraud").Observe(result.Score)

	h.persistAssessment(ctx, &store.Assessment{
		TenantID:        id,
		Kind:            store.AssessmentFraud,
		Score:           result.Score,
		Category:        string(result.Level),
		Recommendations: result.Flags,
	})

	tenant.FraudRiskScore = &result.Score
	if err := h.store.UpdateTenant(ctx, tenant); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectTenantFraudChecked(id.String()), events.FraudCheckedEvent{
			TenantID: id.String(),
			Score:    result.Score,
			Level:    string(result.Level),
			Flags:    result.Flags,
		})
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *InsightsHandler) MoveOut(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tenant id"})
		return
	}

	ctx := r.Context()
	tenant, rent, unit, err := h.loadTenant(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if tenant == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tenant not found"})
		return
	}

	marketRent, err := h.marketRent(ctx, unit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	payments, err := h.store.GetPaymentsForTenant(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	messages, err := h.store.GetMessagesForTenant(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	requests, err := h.store.GetRequestsForTenant(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	result := h.predictor.Predict(&scoring.MoveOutContext{
		Tenant:     tenant,
		Rent:       rent,
		MarketRent: marketRent,
		Payments:   payments,
		Messages:   messages,
		Requests:   requests,
		Now:        time.Now(),
	})

	metrics.EngineRuns.WithLabelValues("move_out").Inc()
	metrics.EngineScores.WithLabelValues("move_out").Observe(result.Probability * 100)

	h.persistAssessment(ctx, &store.Assessment{
		TenantID:        id,
		Kind:            store.AssessmentMoveOut,
		Score:           result.Probability,
		Category:        string(result.Likelihood),
		Factors:         scoring.FactorMap(result.Factors),
		Recommendations: result.Recommendations,
	})

	tenant.MoveOutProbability = &result.Probability
	if err := h.store.UpdateTenant(ctx, tenant); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectTenantMoveOutRisk(id.String()), events.MoveOutRiskEvent{
			TenantID:    id.String(),
			Probability: result.Probability,
			Likelihood:  string(result.Likelihood),
		})
	}

	writeJSON(w, http.StatusOK, result)
}

// marketRent estimates the market rate for a unit as the median rent of
// occupied comparables in the same city with the same bedroom count.
func (h *InsightsHandler) marketRent(ctx context.Context, unit *store.Unit) (*decimal.Decimal, error) {
	if unit == nil {
		return nil, nil
	}
	property, err := h.store.GetProperty(ctx, unit.PropertyID)
	if err != nil || property == nil {
		return nil, err
	}
	comps, err := h.store.GetComparableRents(ctx, property.City, unit.Bedrooms)
	if err != nil {
		return nil, err
	}
	if len(comps) == 0 {
		return nil, nil
	}
	median := scoring.MedianDecimal(comps)
	return &median, nil
}

func (h *InsightsHandler) Satisfaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tenant id"})
		return
	}

	ctx := r.Context()
	tenant, err := h.store.GetTenant(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if tenant == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tenant not found"})
		return
	}

	messages, err := h.store.GetMessagesForTenant(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	requests, err := h.store.GetRequestsForTenant(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	result := scoring.ScoreSatisfaction(&scoring.SatisfactionContext{
		Tenant:   tenant,
		Messages: messages,
		Requests: requests,
		Now:      time.Now(),
	})

	metrics.EngineRuns.WithLabelValues("satisfaction").Inc()
	metrics.EngineScores.WithLabelValues("satisfaction").Observe(result.Score)

	h.persistAssessment(ctx, &store.Assessment{
		TenantID: id,
		Kind:     store.AssessmentSatisfaction,
		Score:    result.Score,
		Category: result.Level,
	})

	tenant.SatisfactionScore = &result.Score
	if err := h.store.UpdateTenant(ctx, tenant); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectTenantSatisfaction(id.String()), map[string]interface{}{
			"tenant_id": id.String(),
			"score":     result.Score,
			"level":     result.Level,
			"trend":     result.Trend,
		})
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *InsightsHandler) Assessments(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tenant id"})
		return
	}

	kind := store.AssessmentKind(r.URL.Query().Get("kind"))
	switch kind {
	case "", store.AssessmentScreening, store.AssessmentFraud, store.AssessmentMoveOut, store.AssessmentSatisfaction:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid kind"})
		return
	}

	assessments, err := h.store.GetAssessmentsForTenant(r.Context(), id, kind)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if assessments == nil {
		assessments = []*store.Assessment{}
	}
	writeJSON(w, http.StatusOK, assessments)
}
