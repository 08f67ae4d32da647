package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput is returned when LoanTerms violate an invariant.
	ErrInvalidInput = errors.New("invalid loan terms")
	// ErrNonConvergent is returned when the schedule hits the iteration cap
	// with principal still outstanding.
	ErrNonConvergent = errors.New("loan does not amortize")
)

// LoanTerms describes a fixed-rate loan with an optional recurring
// monthly prepayment.
type LoanTerms struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"rateOfInterest"`
	TenureMonths      int     `json:"tenureMonths"`
	MonthlyPrepayment float64 `json:"prepaymentAmount"`
}

// Validate checks the invariants every computation relies on.
func (t LoanTerms) Validate() error {
	if !finite(t.Principal) || t.Principal <= 0 {
		return fmt.Errorf("%w: principal must be a positive number", ErrInvalidInput)
	}
	if !finite(t.AnnualRatePercent) || t.AnnualRatePercent < 0 {
		return fmt.Errorf("%w: rate of interest must be zero or positive", ErrInvalidInput)
	}
	if t.TenureMonths < 1 {
		return fmt.Errorf("%w: tenure must be at least 1 month", ErrInvalidInput)
	}
	if !finite(t.MonthlyPrepayment) || t.MonthlyPrepayment < 0 {
		return fmt.Errorf("%w: prepayment must be zero or positive", ErrInvalidInput)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ScheduleEntry is one month of an amortization schedule. PrincipalPaid
// includes that month's prepayment.
type ScheduleEntry struct {
	Month         int   `json:"month"`
	PrincipalPaid int64 `json:"principalPaid"`
	InterestPaid  int64 `json:"interestPaid"`
	Balance       int64 `json:"balance"`
}

type LoanResult struct {
	EMI           int64           `json:"emi"`
	TotalInterest int64           `json:"totalInterest"`
	TotalAmount   int64           `json:"totalAmount"`
	ActualTenure  int             `json:"actualTenure"`
	Converged     bool            `json:"converged"`
	Schedule      []ScheduleEntry `json:"schedule"`
}
