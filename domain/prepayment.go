package domain

// ScheduleSummary is a LoanResult without its schedule.
type ScheduleSummary struct {
	EMI           int64 `json:"emi"`
	TotalInterest int64 `json:"totalInterest"`
	TotalAmount   int64 `json:"totalAmount"`
	ActualTenure  int   `json:"actualTenure"`
	Converged     bool  `json:"converged"`
}

func (r LoanResult) Summary() ScheduleSummary {
	return ScheduleSummary{
		EMI:           r.EMI,
		TotalInterest: r.TotalInterest,
		TotalAmount:   r.TotalAmount,
		ActualTenure:  r.ActualTenure,
		Converged:     r.Converged,
	}
}

type PrepaymentSavings struct {
	InterestSaved int64 `json:"interestSaved"`
	MonthsSaved   int   `json:"monthsSaved"`
}

// PrepaymentComparison contrasts a loan paid by EMI alone with the same loan
// paid with a recurring monthly prepayment.
type PrepaymentComparison struct {
	Terms          LoanTerms         `json:"terms"`
	Baseline       ScheduleSummary   `json:"baseline"`
	WithPrepayment ScheduleSummary   `json:"withPrepayment"`
	Savings        PrepaymentSavings `json:"savings"`
}
