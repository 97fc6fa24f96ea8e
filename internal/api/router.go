package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Brickline-Labs/Foresight/internal/config"
	"github.com/Brickline-Labs/Foresight/internal/events"
	"github.com/Brickline-Labs/Foresight/internal/scoring"
	"github.com/Brickline-Labs/Foresight/internal/store"
)

func NewRouter(s store.Store, ev events.Client, screener *scoring.Screener, predictor *scoring.MoveOutPredictor, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.Server.RateLimit))

	properties := NewPropertiesHandler(s)
	tenants := NewTenantsHandler(s)
	insights := NewInsightsHandler(s, ev, screener, predictor)
	maintenance := NewMaintenanceHandler(s, ev)
	pricing := NewPricingHandler(s, ev)
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKeyMiddleware(cfg.Server.APIKey))

		r.Post("/properties", properties.Create)
		r.Get("/properties", properties.List)
		r.Get("/properties/{id}", properties.Get)
		r.Post("/properties/{id}/units", properties.CreateUnit)
		r.Get("/properties/{id}/units", properties.ListUnits)
		r.Post("/properties/{id}/logs", properties.CreateLog)
		r.Post("/properties/{id}/readings", properties.CreateReading)
		r.Get("/properties/{id}/energy/anomalies", pricing.EnergyAnomalies)
		r.Get("/properties/{id}/maintenance/forecast", maintenance.Forecast)

		r.Get("/units/{id}/pricing", pricing.Suggest)
		r.Post("/units/{id}/inspections", properties.CreateInspection)

		r.Post("/tenants", tenants.Create)
		r.Get("/tenants", tenants.List)
		r.Get("/tenants/{id}", tenants.Get)
		r.Post("/tenants/{id}/payments", tenants.CreatePayment)
		r.Get("/tenants/{id}/payments", tenants.ListPayments)
		r.Post("/tenants/{id}/messages", tenants.CreateMessage)
		r.Post("/tenants/{id}/documents", tenants.CreateDocument)

		r.Post("/tenants/{id}/screen", insights.Screen)
		r.Post("/tenants/{id}/fraud-check", insights.FraudCheck)
		r.Get("/tenants/{id}/move-out", insights.MoveOut)
		r.Get("/tenants/{id}/satisfaction", insights.Satisfaction)
		r.Get("/tenants/{id}/assessments", insights.Assessments)

		r.Post("/maintenance", maintenance.Create)
		r.Get("/maintenance/{id}", maintenance.Get)
		r.Get("/units/{id}/maintenance", maintenance.ListForUnit)
		r.Post("/maintenance/{id}/resolve", maintenance.Resolve)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
