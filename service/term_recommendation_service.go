package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"loan-schedule/domain"
)

var ErrNoEligibleTenure = errors.New("no tenure fits the maximum monthly payment")

var preferenceWeights = map[string]struct{ interest, payment, tenure float64 }{
	domain.PreferenceMinimizeInterest: {0.6, 0.2, 0.2},
	domain.PreferenceMinimizePayment:  {0.2, 0.6, 0.2},
	domain.PreferenceBalanced:         {0.4, 0.4, 0.2},
}

type TermRecommendationService struct {
	loanService *LoanService
	log         logrus.FieldLogger
}

func NewTermRecommendationService(loanService *LoanService, log logrus.FieldLogger) *TermRecommendationService {
	return &TermRecommendationService{
		loanService: loanService,
		log:         log,
	}
}

// RecommendTerm sweeps the tenure range, keeps the tenures whose EMI fits the
// payment ceiling and ranks them by preference.
func (s *TermRecommendationService) RecommendTerm(
	ctx context.Context,
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {

	if err := validateRecommendationInput(input); err != nil {
		return domain.TermRecommendationResult{}, err
	}

	recommendations := []domain.TermRecommendation{}

	for tenure := input.MinTenureMonths; tenure <= input.MaxTenureMonths; tenure++ {
		result, err := s.loanService.CalculateLoan(ctx, domain.LoanTerms{
			Principal:         input.Principal,
			AnnualRatePercent: input.AnnualRatePercent,
			TenureMonths:      tenure,
			MonthlyPrepayment: input.MonthlyPrepayment,
		})
		if err != nil {
			s.log.WithError(err).WithField("tenure", tenure).Debug("skipping tenure")
			continue
		}

		if float64(result.EMI) > input.MaxMonthlyPayment {
			continue
		}

		recommendations = append(recommendations, domain.TermRecommendation{
			TenureMonths:  tenure,
			EMI:           result.EMI,
			TotalInterest: result.TotalInterest,
			ActualTenure:  result.ActualTenure,
			Reason:        generateReason(input.Preference),
		})
	}

	if len(recommendations) == 0 {
		return domain.TermRecommendationResult{}, ErrNoEligibleTenure
	}

	scoreRecommendations(recommendations, input.Preference)

	// Tenures were appended in ascending order, so ties keep the shorter one first.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	recommendations[0].Reason = explainRecommendation(recommendations, input.Preference)

	return domain.TermRecommendationResult{
		RecommendedTenure: recommendations[0].TenureMonths,
		Recommendations:   recommendations,
	}, nil
}

func validateRecommendationInput(input domain.TermRecommendationInput) error {
	probe := domain.LoanTerms{
		Principal:         input.Principal,
		AnnualRatePercent: input.AnnualRatePercent,
		TenureMonths:      input.MinTenureMonths,
		MonthlyPrepayment: input.MonthlyPrepayment,
	}
	if err := validateLimits(probe); err != nil {
		return err
	}
	if input.MinTenureMonths > input.MaxTenureMonths {
		return fmt.Errorf("%w: minimum tenure is greater than maximum tenure", domain.ErrInvalidInput)
	}
	if input.MaxTenureMonths > MaxTenureMonths {
		return fmt.Errorf("%w: maximum tenure exceeds the limit of %d months", domain.ErrInvalidInput, MaxTenureMonths)
	}
	if input.MaxTenureMonths-input.MinTenureMonths > MaxTenureRange {
		return fmt.Errorf("%w: tenure range exceeds %d months", domain.ErrInvalidInput, MaxTenureRange)
	}
	if math.IsNaN(input.MaxMonthlyPayment) || input.MaxMonthlyPayment <= 0 {
		return fmt.Errorf("%w: maximum monthly payment must be positive", domain.ErrInvalidInput)
	}
	if _, ok := preferenceWeights[input.Preference]; !ok {
		return fmt.Errorf("%w: unknown preference %q", domain.ErrInvalidInput, input.Preference)
	}
	return nil
}

// scoreRecommendations assigns each candidate a 0-10 score, normalizing
// interest, EMI and tenure against the other candidates.
func scoreRecommendations(recommendations []domain.TermRecommendation, preference string) {
	minI, maxI := math.Inf(1), math.Inf(-1)
	minE, maxE := math.Inf(1), math.Inf(-1)
	minT, maxT := math.Inf(1), math.Inf(-1)
	for _, rec := range recommendations {
		minI, maxI = math.Min(minI, float64(rec.TotalInterest)), math.Max(maxI, float64(rec.TotalInterest))
		minE, maxE = math.Min(minE, float64(rec.EMI)), math.Max(maxE, float64(rec.EMI))
		minT, maxT = math.Min(minT, float64(rec.TenureMonths)), math.Max(maxT, float64(rec.TenureMonths))
	}

	weights := preferenceWeights[preference]
	for i := range recommendations {
		rec := &recommendations[i]
		interestScore := normalizedScore(float64(rec.TotalInterest), minI, maxI)
		paymentScore := normalizedScore(float64(rec.EMI), minE, maxE)
		tenureScore := normalizedScore(float64(rec.TenureMonths), minT, maxT)

		rec.Score = roundTo2Decimals(
			weights.interest*interestScore + weights.payment*paymentScore + weights.tenure*tenureScore,
		)
	}
}

// normalizedScore maps value in [lo, hi] to 10 (at lo) .. 0 (at hi).
func normalizedScore(value, lo, hi float64) float64 {
	if hi <= lo {
		return 10
	}
	return 10 * (hi - value) / (hi - lo)
}

func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

func generateReason(preference string) string {
	switch preference {
	case domain.PreferenceMinimizeInterest:
		return "Tenure optimized to minimize total interest cost"
	case domain.PreferenceMinimizePayment:
		return "Tenure optimized to minimize the monthly installment"
	case domain.PreferenceBalanced:
		return "Balance between monthly installment and total cost"
	}
	return "Recommendation based on the supplied parameters"
}

func explainRecommendation(ranked []domain.TermRecommendation, preference string) string {
	top := ranked[0]

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d months with an EMI of %d and total interest of %d",
		generateReason(preference), top.TenureMonths, top.EMI, top.TotalInterest)
	if top.ActualTenure < top.TenureMonths {
		fmt.Fprintf(&b, ", paid off after %d months with the prepayment", top.ActualTenure)
	}
	b.WriteString(".")

	if len(ranked) > 1 {
		b.WriteString(" Alternatives:")
		for i := 1; i < len(ranked) && i <= maxAlternativeTerm; i++ {
			alt := ranked[i]
			fmt.Fprintf(&b, " %d months (EMI %d, interest %d);", alt.TenureMonths, alt.EMI, alt.TotalInterest)
		}
	}
	return strings.TrimSuffix(b.String(), ";")
}
