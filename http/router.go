package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"home-affordability/observability"
)

type RouterDeps struct {
	Affordability *AffordabilityHandler
	Loan          *LoanHandler
	RateLimiter   *RateLimiter
	Metrics       *observability.Metrics
	Logger        *slog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(deps.Logger, deps.Metrics))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, req, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware(deps.RateLimiter))

		r.Route("/affordability", func(r chi.Router) {
			r.Post("/calculate", deps.Affordability.Calculate)
			r.Post("/explore", deps.Affordability.Explore)
			r.Post("/schedule", deps.Affordability.Schedule)
			r.Post("/schedule.csv", deps.Affordability.ScheduleCSV)
			r.Post("/compare-terms", deps.Affordability.CompareTerms)
			r.Get("/history", deps.Affordability.History)
		})

		r.Post("/loan/calculate", deps.Loan.QuotePayment)
	})

	return r
}
