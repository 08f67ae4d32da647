package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"loan-schedule/domain"
	"loan-schedule/repository"
)

type LoanService struct {
	cache repository.CacheRepository
	log   logrus.FieldLogger
	ttl   time.Duration
}

// NewLoanService creates a LoanService that memoizes converged schedules in
// cache for ttl.
func NewLoanService(cache repository.CacheRepository, log logrus.FieldLogger, ttl time.Duration) *LoanService {
	if ttl <= 0 {
		ttl = DefaultResultTTL
	}
	return &LoanService{cache: cache, log: log, ttl: ttl}
}

// CalculateLoan returns the EMI and amortization schedule for terms.
//
// Non-convergent schedules come back together with an error wrapping
// domain.ErrNonConvergent and are not cached.
func (s *LoanService) CalculateLoan(
	ctx context.Context,
	terms domain.LoanTerms,
) (domain.LoanResult, error) {

	if err := validateLimits(terms); err != nil {
		return domain.LoanResult{}, err
	}

	key := cacheKey(terms)
	if result, ok := s.cached(ctx, key); ok {
		return result, nil
	}

	result, err := ComputeSchedule(terms)
	if errors.Is(err, domain.ErrNonConvergent) {
		s.log.WithFields(logrus.Fields{
			"principal": terms.Principal,
			"rate":      terms.AnnualRatePercent,
			"tenure":    terms.TenureMonths,
			"months":    result.ActualTenure,
		}).Warn("schedule did not converge")
		return result, err
	}
	if err != nil {
		return domain.LoanResult{}, err
	}

	// Caching is best effort.
	if payload, err := json.Marshal(result); err != nil {
		s.log.WithError(err).Warn("failed to encode loan result for cache")
	} else if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("failed to cache loan result")
	}

	return result, nil
}

func (s *LoanService) cached(ctx context.Context, key string) (domain.LoanResult, bool) {
	payload, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.LoanResult{}, false
	}

	var result domain.LoanResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("discarding unreadable cache entry")
		return domain.LoanResult{}, false
	}

	s.log.WithField("key", key).Debug("loan result served from cache")
	return result, true
}

// validateLimits applies the service-wide upper bounds on top of the
// LoanTerms invariants.
func validateLimits(terms domain.LoanTerms) error {
	if err := terms.Validate(); err != nil {
		return err
	}
	if terms.Principal > MaxPrincipal {
		return fmt.Errorf("%w: principal exceeds the maximum of %.2f", domain.ErrInvalidInput, MaxPrincipal)
	}
	if terms.AnnualRatePercent > MaxInterestRate {
		return fmt.Errorf("%w: rate of interest exceeds the maximum of %.2f%%", domain.ErrInvalidInput, MaxInterestRate)
	}
	if terms.TenureMonths > MaxTenureMonths {
		return fmt.Errorf("%w: tenure exceeds the maximum of %d months", domain.ErrInvalidInput, MaxTenureMonths)
	}
	if terms.MonthlyPrepayment > MaxMonthlyPrepay {
		return fmt.Errorf("%w: prepayment exceeds the maximum of %.2f", domain.ErrInvalidInput, MaxMonthlyPrepay)
	}
	return nil
}

func cacheKey(terms domain.LoanTerms) string {
	return "loan:v1:" +
		strconv.FormatFloat(terms.Principal, 'g', -1, 64) + ":" +
		strconv.FormatFloat(terms.AnnualRatePercent, 'g', -1, 64) + ":" +
		strconv.Itoa(terms.TenureMonths) + ":" +
		strconv.FormatFloat(terms.MonthlyPrepayment, 'g', -1, 64)
}
