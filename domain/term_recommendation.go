package domain

const (
	PreferenceMinimizeInterest = "minimize_interest"
	PreferenceMinimizePayment  = "minimize_payment"
	PreferenceBalanced         = "balanced"
)

type TermRecommendationInput struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"rateOfInterest"`
	MinTenureMonths   int     `json:"minTenureMonths"`
	MaxTenureMonths   int     `json:"maxTenureMonths"`
	MaxMonthlyPayment float64 `json:"maxMonthlyPayment"`
	MonthlyPrepayment float64 `json:"prepaymentAmount"`
	Preference        string  `json:"preference"` // minimize_interest, minimize_payment, balanced
}

type TermRecommendation struct {
	TenureMonths  int     `json:"tenureMonths"`
	EMI           int64   `json:"emi"`
	TotalInterest int64   `json:"totalInterest"`
	ActualTenure  int     `json:"actualTenure"`
	Score         float64 `json:"score"`
	Reason        string  `json:"reason"`
}

type TermRecommendationResult struct {
	RecommendedTenure int                  `json:"recommendedTenure"`
	Recommendations   []TermRecommendation `json:"recommendations"`
}
