package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"loan-schedule/config"
	httpLayer "loan-schedule/http"
	"loan-schedule/integrations/cbr"
	"loan-schedule/repository"
	"loan-schedule/service"
)

const shutdownTimeout = 10 * time.Second

// NewLogger returns the JSON process logger. Unknown levels fall back to info.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

// newCache connects to redis when an address is configured and falls back to
// the in-process cache when there is none or it cannot be reached.
func newCache(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (repository.CacheRepository, func()) {
	if cfg.RedisAddr == "" {
		log.Info("no redis address configured, using in-memory cache")
		return repository.NewMemoryCache(), func() {}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cache, err := repository.NewRedisCache(pingCtx, cfg.RedisAddr)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, using in-memory cache")
		return repository.NewMemoryCache(), func() {}
	}

	log.WithField("addr", cfg.RedisAddr).Info("connected to redis")
	return cache, func() {
		if err := cache.Close(); err != nil {
			log.WithError(err).Warn("failed to close redis client")
		}
	}
}

// Run serves the loan API until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	cache, closeCache := newCache(ctx, cfg, log)
	defer closeCache()

	loanService := service.NewLoanService(cache, log, cfg.CacheTTL.Duration)
	prepaymentService := service.NewPrepaymentService(loanService)
	termRecommendationService := service.NewTermRecommendationService(loanService, log)

	rates := service.NewReferenceRateService(cbr.NewClient(cfg.CBRURL, log), cfg.BankMargin, log)
	if err := rates.Start(ctx, cfg.RateRefreshSchedule); err != nil {
		return err
	}
	defer rates.Stop()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow.Duration)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterConfig{
		Loan:          httpLayer.NewLoanHandler(loanService, prepaymentService, log),
		Terms:         httpLayer.NewTermRecommendationHandler(termRecommendationService, log),
		ReferenceRate: httpLayer.NewReferenceRateHandler(rates, log),
		Limiter:       rateLimiter,
		CORSOrigin:    cfg.CORSOrigin,
		Log:           log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		log.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}

	log.Info("Server exited")
	return nil
}
