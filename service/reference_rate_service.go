package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"loan-schedule/domain"
)

var ErrRateUnavailable = errors.New("reference rate not available yet")

// KeyRateSource supplies the central bank key rate in annual percent.
type KeyRateSource interface {
	KeyRate(ctx context.Context) (float64, error)
}

// ReferenceRateService keeps the latest key rate plus margin, refreshed on a
// cron schedule.
type ReferenceRateService struct {
	source  KeyRateSource
	margin  float64
	timeout time.Duration
	log     logrus.FieldLogger

	mu    sync.RWMutex
	quote *domain.RateQuote

	cron *cron.Cron
	now  func() time.Time
}

func NewReferenceRateService(source KeyRateSource, margin float64, log logrus.FieldLogger) *ReferenceRateService {
	return &ReferenceRateService{
		source:  source,
		margin:  margin,
		timeout: 15 * time.Second,
		log:     log,
		now:     time.Now,
	}
}

// Refresh fetches the key rate and replaces the stored quote. A failed fetch
// keeps the previous quote.
func (s *ReferenceRateService) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	keyRate, err := s.source.KeyRate(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh reference rate: %w", err)
	}

	quote := domain.RateQuote{
		Rate:      keyRate + s.margin,
		KeyRate:   keyRate,
		Margin:    s.margin,
		FetchedAt: s.now(),
	}

	s.mu.Lock()
	s.quote = &quote
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"key_rate": keyRate,
		"margin":   s.margin,
	}).Infof("reference rate updated: %.2f%%", quote.Rate)
	return nil
}

func (s *ReferenceRateService) Current() (domain.RateQuote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.quote == nil {
		return domain.RateQuote{}, ErrRateUnavailable
	}
	return *s.quote, nil
}

// Start refreshes once and then on every tick of spec (standard cron syntax
// or descriptors such as "@every 6h").
func (s *ReferenceRateService) Start(ctx context.Context, spec string) error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(spec, func() { s.refreshLogged(ctx) }); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}

	go s.refreshLogged(ctx)
	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (s *ReferenceRateService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

func (s *ReferenceRateService) refreshLogged(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.log.WithError(err).Warn("reference rate refresh failed")
	}
}
