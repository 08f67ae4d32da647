package http

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"loan-schedule/domain"
	"loan-schedule/service"
)

type TermRecommendationHandler struct {
	service *service.TermRecommendationService
	log     logrus.FieldLogger
}

func NewTermRecommendationHandler(service *service.TermRecommendationService, log logrus.FieldLogger) *TermRecommendationHandler {
	return &TermRecommendationHandler{service: service, log: log}
}

func (h *TermRecommendationHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.TermRecommendationInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.log.WithError(err).Debug("rejecting recommendation request")
		writeDecodeError(w, err)
		return
	}

	result, err := h.service.RecommendTerm(r.Context(), input)
	if errors.Is(err, service.ErrNoEligibleTenure) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.log.WithError(err).Error("term recommendation failed")
			http.Error(w, "internal server error", status)
			return
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}
