package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"loan-schedule/domain"
	"loan-schedule/repository"
	"loan-schedule/service"
)

type fixedQuote struct {
	quote domain.RateQuote
	err   error
}

func (f fixedQuote) Current() (domain.RateQuote, error) {
	return f.quote, f.err
}

func newTestRouter(t *testing.T, capacity int, rates RateQuoter) *mux.Router {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	loanService := service.NewLoanService(repository.NewMemoryCache(), logger, time.Hour)
	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(RouterConfig{
		Loan:          NewLoanHandler(loanService, service.NewPrepaymentService(loanService), logger),
		Terms:         NewTermRecommendationHandler(service.NewTermRecommendationService(loanService, logger), logger),
		ReferenceRate: NewReferenceRateHandler(rates, logger),
		Limiter:       limiter,
		CORSOrigin:    "http://localhost:3000",
		Log:           logger,
	})
}

func TestRouter_CalculateWithCORS(t *testing.T) {

	router := newTestRouter(t, 10, fixedQuote{})

	req := httptest.NewRequest(http.MethodPost, "/api/loan/calculate",
		strings.NewReader(`{"principal":120000,"rateOfInterest":0,"tenureMonths":12}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("unexpected allow-origin %q", got)
	}
}

func TestRouter_Preflight(t *testing.T) {

	router := newTestRouter(t, 1, fixedQuote{})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodOptions, "/api/loan/calculate", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPost) {
			t.Errorf("expected POST in allowed methods, got %q", got)
		}
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {

	router := newTestRouter(t, 10, fixedQuote{})

	req := httptest.NewRequest(http.MethodGet, "/api/loan/calculate", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestRouter_RateLimited(t *testing.T) {

	router := newTestRouter(t, 1, fixedQuote{})
	body := `{"principal":1000,"rateOfInterest":10,"tenureMonths":12}`

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/loan/calculate", strings.NewReader(body)))
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/loan/calculate", strings.NewReader(body)))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Errorf("expected Retry-After header")
	}
}

func TestRouter_RecommendTerm(t *testing.T) {

	router := newTestRouter(t, 10, fixedQuote{})

	req := httptest.NewRequest(http.MethodPost, "/api/loan/recommend-term", strings.NewReader(`{
		"principal": 100000,
		"rateOfInterest": 12,
		"minTenureMonths": 12,
		"maxTenureMonths": 36,
		"maxMonthlyPayment": 5000,
		"preference": "minimize_interest"
	}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"recommendedTenure":23`) {
		t.Errorf("expected tenure 23 in %s", w.Body.String())
	}
}

func TestRouter_RecommendTermNoneAffordable(t *testing.T) {

	router := newTestRouter(t, 10, fixedQuote{})

	req := httptest.NewRequest(http.MethodPost, "/api/loan/recommend-term", strings.NewReader(`{
		"principal": 100000,
		"rateOfInterest": 12,
		"minTenureMonths": 12,
		"maxTenureMonths": 36,
		"maxMonthlyPayment": 100,
		"preference": "balanced"
	}`))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestRouter_ReferenceRate(t *testing.T) {

	quote := domain.RateQuote{Rate: 21.5, KeyRate: 16.5, Margin: 5}
	router := newTestRouter(t, 10, fixedQuote{quote: quote})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/loan/reference-rate", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"rate":21.5`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestRouter_ReferenceRateUnavailable(t *testing.T) {

	router := newTestRouter(t, 10, fixedQuote{err: errors.New("not yet")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/loan/reference-rate", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestRouter_Healthz(t *testing.T) {

	router := newTestRouter(t, 10, fixedQuote{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("unexpected health response %d %q", w.Code, w.Body.String())
	}
}
