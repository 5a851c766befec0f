// ABOUTME: Retry with exponential backoff for transient local failures
// ABOUTME: Wraps cenkalti/backoff with a retryable-error predicate and logging

package resilience

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Default retry configuration values.
const (
	DefaultMaxTries        = 5
	DefaultInitialInterval = 50 * time.Millisecond
	DefaultMaxInterval     = time.Second
	DefaultMaxElapsedTime  = 5 * time.Second
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// MaxTries bounds the number of attempts, including the first.
	// Zero uses DefaultMaxTries.
	MaxTries uint

	// InitialInterval is the first backoff delay.
	// Zero uses DefaultInitialInterval.
	InitialInterval time.Duration

	// MaxInterval caps a single backoff delay.
	// Zero uses DefaultMaxInterval.
	MaxInterval time.Duration

	// MaxElapsedTime bounds the total time spent retrying.
	// Zero uses DefaultMaxElapsedTime.
	MaxElapsedTime time.Duration

	// Name identifies the operation in logs.
	Name string

	// Logger receives one record per failed attempt. Optional.
	Logger *slog.Logger
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxTries == 0 {
		c.MaxTries = DefaultMaxTries
	}
	if c.InitialInterval == 0 {
		c.InitialInterval = DefaultInitialInterval
	}
	if c.MaxInterval == 0 {
		c.MaxInterval = DefaultMaxInterval
	}
	if c.MaxElapsedTime == 0 {
		c.MaxElapsedTime = DefaultMaxElapsedTime
	}
	return c
}

// Retry runs op until it succeeds, returns an error for which retryable is
// false, or the configured limits are reached. A nil retryable retries every
// error. The last error is returned on failure.
func Retry[T any](ctx context.Context, cfg RetryConfig, retryable func(error) bool, op func() (T, error)) (T, error) {
	cfg = cfg.withDefaults()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialInterval
	b.MaxInterval = cfg.MaxInterval

	attempt := 0
	operation := func() (T, error) {
		attempt++
		v, err := op()
		if err != nil && retryable != nil && !retryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(b),
		backoff.WithMaxTries(cfg.MaxTries),
		backoff.WithMaxElapsedTime(cfg.MaxElapsedTime),
	}
	if cfg.Logger != nil {
		opts = append(opts, backoff.WithNotify(func(err error, next time.Duration) {
			cfg.Logger.Debug("retrying",
				slog.String("operation", cfg.Name),
				slog.Int("attempt", attempt),
				slog.Duration("next", next),
				slog.String("error", err.Error()),
			)
		}))
	}

	return backoff.Retry(ctx, operation, opts...)
}
