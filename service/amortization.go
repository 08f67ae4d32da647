package service

import (
	"fmt"
	"math"

	"loan-schedule/domain"
)

// monthlyRate converts a nominal annual percentage into the periodic rate.
func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 12 / 100
}

// installment returns the unrounded EMI for principal repaid over n months at
// periodic rate r.
//
// The annuity factor 1-(1+r)^-n is evaluated as -expm1(-n*log1p(r)): it stays
// accurate when 1+r rounds to 1 and tends to 1 instead of overflowing for
// large r*n, where the EMI degenerates to interest only.
func installment(principal, r float64, n int) float64 {
	if r == 0 {
		return principal / float64(n)
	}
	factor := -math.Expm1(-float64(n) * math.Log1p(r))
	return principal * r / factor
}

// ComputeSchedule builds the amortization schedule for terms.
//
// The running balance and interest total are carried unrounded; only the
// reported figures are rounded. A schedule that still owes principal after
// twice the nominal tenure is returned as computed, with Converged false and an
// error wrapping domain.ErrNonConvergent.
func ComputeSchedule(terms domain.LoanTerms) (domain.LoanResult, error) {
	if err := terms.Validate(); err != nil {
		return domain.LoanResult{}, err
	}

	r := monthlyRate(terms.AnnualRatePercent)
	emi := installment(terms.Principal, r, terms.TenureMonths)
	tolerance := emi * payoffTolerance
	maxMonths := iterationCapFactor * terms.TenureMonths

	schedule := make([]domain.ScheduleEntry, 0, terms.TenureMonths)
	balance := terms.Principal
	totalInterest := 0.0
	actualTenure := 0

	for month := 1; month <= maxMonths && balance > 0; month++ {
		interest := balance * r
		principalPart := math.Max(emi-interest, 0)
		paid := principalPart + terms.MonthlyPrepayment

		if balance-paid <= tolerance {
			paid = balance
			balance = 0
		} else {
			balance -= paid
		}

		totalInterest += interest
		actualTenure = month

		schedule = append(schedule, domain.ScheduleEntry{
			Month:         month,
			PrincipalPaid: roundAmount(paid),
			InterestPaid:  roundAmount(interest),
			Balance:       roundAmount(balance),
		})
	}

	result := domain.LoanResult{
		EMI:           roundAmount(emi),
		TotalInterest: roundAmount(totalInterest),
		TotalAmount:   roundAmount(terms.Principal + totalInterest),
		ActualTenure:  actualTenure,
		Converged:     balance <= 0,
		Schedule:      schedule,
	}

	if !result.Converged {
		return result, fmt.Errorf("%w: %.2f outstanding after %d months (emi %.2f, first month interest %.2f)",
			domain.ErrNonConvergent, balance, actualTenure, emi, terms.Principal*r)
	}
	return result, nil
}
