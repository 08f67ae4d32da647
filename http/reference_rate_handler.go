package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"loan-schedule/domain"
)

type RateQuoter interface {
	Current() (domain.RateQuote, error)
}

type ReferenceRateHandler struct {
	rates RateQuoter
	log   logrus.FieldLogger
}

func NewReferenceRateHandler(rates RateQuoter, log logrus.FieldLogger) *ReferenceRateHandler {
	return &ReferenceRateHandler{rates: rates, log: log}
}

func (h *ReferenceRateHandler) GetReferenceRate(w http.ResponseWriter, r *http.Request) {
	quote, err := h.rates.Current()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, h.log, http.StatusOK, quote)
}
