package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"

	"loan-schedule/domain"
	"loan-schedule/repository"
	"loan-schedule/service"
)

func newTestLoanHandler() *LoanHandler {
	logger, _ := logtest.NewNullLogger()
	loanService := service.NewLoanService(repository.NewMemoryCache(), logger, time.Hour)
	return NewLoanHandler(loanService, service.NewPrepaymentService(loanService), logger)
}

func TestCalculateLoanHandler_OK(t *testing.T) {

	handler := newTestLoanHandler()

	body := []byte(`{
		"principal": 500000,
		"rateOfInterest": 8.5,
		"tenureMonths": 240,
		"prepaymentAmount": 5000
	}`)

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/loan/calculate",
		bytes.NewBuffer(body),
	)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	resp := w.Result()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result domain.LoanResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.EMI != 4339 || result.ActualTenure != 68 || len(result.Schedule) != 68 {
		t.Errorf("unexpected result: emi %d, tenure %d, %d entries", result.EMI, result.ActualTenure, len(result.Schedule))
	}
}

func TestCalculateLoanHandler_ResponseShape(t *testing.T) {

	handler := newTestLoanHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/loan/calculate",
		strings.NewReader(`{"principal":120000,"rateOfInterest":0,"tenureMonths":12}`))
	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, field := range []string{"emi", "totalInterest", "totalAmount", "actualTenure", "schedule"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("response missing %q", field)
		}
	}
	entry := raw["schedule"].([]any)[0].(map[string]any)
	for _, field := range []string{"month", "principalPaid", "interestPaid", "balance"} {
		if _, ok := entry[field]; !ok {
			t.Errorf("schedule entry missing %q", field)
		}
	}
	if raw["emi"].(float64) != 10000 {
		t.Errorf("expected emi 10000, got %v", raw["emi"])
	}
}

func TestCalculateLoanHandler_MethodNotAllowed(t *testing.T) {

	handler := newTestLoanHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/loan/calculate", nil)
	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestCalculateLoanHandler_BadRequest(t *testing.T) {

	handler := newTestLoanHandler()

	cases := map[string]string{
		"malformed json": `{invalid-json}`,
		"unknown field":  `{"principal": 1000, "rateOfInterest": 10, "tenureMonths": 12, "monto": 5}`,
		"zero principal": `{"principal": 0, "rateOfInterest": 10, "tenureMonths": 12}`,
		"zero tenure":    `{"principal": 1000, "rateOfInterest": 10, "tenureMonths": 0}`,
		"negative extra": `{"principal": 1000, "rateOfInterest": 10, "tenureMonths": 12, "prepaymentAmount": -1}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(
				http.MethodPost,
				"/api/loan/calculate",
				bytes.NewBuffer([]byte(body)),
			)

			w := httptest.NewRecorder()
			handler.CalculateLoan(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestCalculateLoanHandler_UnsupportedMediaType(t *testing.T) {

	handler := newTestLoanHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/loan/calculate", strings.NewReader(`principal=1000`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", w.Code)
	}
}

func TestCalculateLoanHandler_NonConvergent(t *testing.T) {

	handler := newTestLoanHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/loan/calculate",
		strings.NewReader(`{"principal":100000,"rateOfInterest":100,"tenureMonths":600}`))
	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	var body nonConvergentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Converged {
		t.Errorf("expected converged=false")
	}
	if len(body.Schedule) != 1200 {
		t.Errorf("expected partial schedule of 1200 months, got %d", len(body.Schedule))
	}
	if !strings.Contains(body.Error, "does not amortize") {
		t.Errorf("expected non-convergence message, got %q", body.Error)
	}
}

func TestComparePrepaymentHandler_OK(t *testing.T) {

	handler := newTestLoanHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/loan/compare",
		strings.NewReader(`{"principal":500000,"rateOfInterest":8.5,"tenureMonths":240,"prepaymentAmount":5000}`))
	w := httptest.NewRecorder()

	handler.ComparePrepayment(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var comparison domain.PrepaymentComparison
	if err := json.Unmarshal(w.Body.Bytes(), &comparison); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if comparison.Savings.MonthsSaved != 172 {
		t.Errorf("expected 172 months saved, got %d", comparison.Savings.MonthsSaved)
	}
}

func TestComparePrepaymentHandler_InvalidTerms(t *testing.T) {

	handler := newTestLoanHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/loan/compare",
		strings.NewReader(`{"principal":-5,"rateOfInterest":8.5,"tenureMonths":240}`))
	w := httptest.NewRecorder()

	handler.ComparePrepayment(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
