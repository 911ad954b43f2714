package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/colin-rod/tripthreads/internal/auth"
	"github.com/colin-rod/tripthreads/internal/service"
)

// NewRouter builds the HTTP router: public health/metrics endpoints plus the
// authenticated settlement API.
func NewRouter(svc *service.SettlementService, jwtManager *auth.JWTManager) *chi.Mux {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(Logging)
	r.Use(Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/healthz", Healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(RequireAuth(jwtManager))

		r.Post("/settlements/compute", h.ComputeSettlements)
		r.Post("/settlements", h.RecordSettlement)
		r.Get("/settlements", h.ListSettlements)
		r.Post("/settlements/{id}/settle", h.SettleSettlement)
		r.Delete("/settlements/{id}", h.DeleteSettlement)
	})

	return r
}
