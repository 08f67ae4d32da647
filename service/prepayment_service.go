package service

import (
	"context"
	"fmt"

	"loan-schedule/domain"
)

type PrepaymentService struct {
	loanService *LoanService
}

func NewPrepaymentService(loanService *LoanService) *PrepaymentService {
	return &PrepaymentService{loanService: loanService}
}

// Compare runs the schedule twice, without and with the monthly prepayment,
// and reports what the prepayment saves.
func (s *PrepaymentService) Compare(
	ctx context.Context,
	terms domain.LoanTerms,
) (domain.PrepaymentComparison, error) {

	baselineTerms := terms
	baselineTerms.MonthlyPrepayment = 0

	baseline, err := s.loanService.CalculateLoan(ctx, baselineTerms)
	if err != nil {
		return domain.PrepaymentComparison{}, fmt.Errorf("baseline schedule: %w", err)
	}

	accelerated, err := s.loanService.CalculateLoan(ctx, terms)
	if err != nil {
		return domain.PrepaymentComparison{}, fmt.Errorf("prepayment schedule: %w", err)
	}

	comparison := domain.PrepaymentComparison{
		Terms:          terms,
		Baseline:       baseline.Summary(),
		WithPrepayment: accelerated.Summary(),
	}
	comparison.Savings.InterestSaved = max(0, baseline.TotalInterest-accelerated.TotalInterest)
	comparison.Savings.MonthsSaved = max(0, baseline.ActualTenure-accelerated.ActualTenure)

	return comparison, nil
}
