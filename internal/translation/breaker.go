package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig controls when a provider is temporarily skipped.
type BreakerConfig struct {
	// Consecutive failures before the breaker opens
	MaxFailures uint32
	// How long the breaker stays open before a trial request is let through
	OpenTimeout time.Duration
}

// DefaultBreakerConfig returns default breaker settings
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxFailures: 3,
		OpenTimeout: 30 * time.Second,
	}
}

// BreakerProvider wraps a Provider with a circuit breaker so that a service
// which is down does not cost a full timeout on every lookup.
type BreakerProvider struct {
	provider Provider
	breaker  *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps p. A nil logger uses slog.Default().
func NewBreakerProvider(p Provider, cfg BreakerConfig, logger *slog.Logger) *BreakerProvider {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = DefaultBreakerConfig().MaxFailures
	}
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:    p.Name(),
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			// A cancelled lookup says nothing about the provider.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("translation provider breaker changed state",
				slog.String("provider", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &BreakerProvider{
		provider: p,
		breaker:  gobreaker.NewCircuitBreaker(settings),
	}
}

// Translate implements Provider
func (b *BreakerProvider) Translate(ctx context.Context, text, source, target string) (*Result, error) {
	out, err := b.breaker.Execute(func() (interface{}, error) {
		return b.provider.Translate(ctx, text, source, target)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s skipped: %w", b.provider.Name(), err)
		}
		return nil, err
	}
	return out.(*Result), nil
}

// Name returns the wrapped provider name
func (b *BreakerProvider) Name() string {
	return b.provider.Name()
}

// State returns the current breaker state
func (b *BreakerProvider) State() gobreaker.State {
	return b.breaker.State()
}
