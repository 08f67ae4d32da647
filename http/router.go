package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type RouterConfig struct {
	Loan          *LoanHandler
	Terms         *TermRecommendationHandler
	ReferenceRate *ReferenceRateHandler
	Limiter       *RateLimiter
	CORSOrigin    string
	Log           logrus.FieldLogger
}

// NewRouter mounts the loan API under /api/loan.
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware(cfg.Log))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/loan").Subrouter()
	api.HandleFunc("/calculate", cfg.Loan.CalculateLoan).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/compare", cfg.Loan.ComparePrepayment).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/recommend-term", cfg.Terms.RecommendTerm).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/reference-rate", cfg.ReferenceRate.GetReferenceRate).Methods(http.MethodGet, http.MethodOptions)

	api.Use(mux.CORSMethodMiddleware(api))
	api.Use(CORSMiddleware(cfg.CORSOrigin))
	api.Use(RateLimitMiddleware(cfg.Limiter, cfg.Log))

	return r
}
