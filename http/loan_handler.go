package http

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"loan-schedule/domain"
	"loan-schedule/service"
)

type LoanHandler struct {
	service    *service.LoanService
	prepayment *service.PrepaymentService
	log        logrus.FieldLogger
}

func NewLoanHandler(
	service *service.LoanService,
	prepayment *service.PrepaymentService,
	log logrus.FieldLogger,
) *LoanHandler {
	return &LoanHandler{service: service, prepayment: prepayment, log: log}
}

// nonConvergentResponse carries the partial schedule next to the reason it
// stopped.
type nonConvergentResponse struct {
	domain.LoanResult
	Error string `json:"error"`
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var terms domain.LoanTerms
	if err := decodeJSON(w, r, &terms); err != nil {
		writeDecodeError(w, err)
		return
	}

	result, err := h.service.CalculateLoan(r.Context(), terms)
	if errors.Is(err, domain.ErrNonConvergent) {
		writeJSON(w, h.log, http.StatusUnprocessableEntity, nonConvergentResponse{
			LoanResult: result,
			Error:      err.Error(),
		})
		return
	}
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}

func (h *LoanHandler) ComparePrepayment(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var terms domain.LoanTerms
	if err := decodeJSON(w, r, &terms); err != nil {
		writeDecodeError(w, err)
		return
	}

	comparison, err := h.prepayment.Compare(r.Context(), terms)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, comparison)
}

func (h *LoanHandler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).Error("loan calculation failed")
		http.Error(w, "internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
