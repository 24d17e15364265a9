package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net"
	"time"

	"github.com/piresc/vigilante/internal/pkg/logger"
)

// RetryableFunc represents a function that can be retried
type RetryableFunc func(ctx context.Context) error

// Config holds retry configuration
type Config struct {
	MaxRetries    int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	Multiplier    float64
	Jitter        bool
	RetryableFunc func(error) bool
}

// DefaultConfig returns the retry configuration used for provider calls.
// Delays stay short because every call runs under a request deadline.
func DefaultConfig() Config {
	return Config{
		MaxRetries:    2,
		BaseDelay:     100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		Multiplier:    2.0,
		Jitter:        true,
		RetryableFunc: IsTransient,
	}
}

// Retrier handles retry logic with exponential backoff
type Retrier struct {
	config Config
	logger *logger.ZapLogger
}

// New creates a new retrier with the given configuration
func New(config Config, l *logger.ZapLogger) *Retrier {
	if config.RetryableFunc == nil {
		config.RetryableFunc = IsTransient
	}
	return &Retrier{
		config: config,
		logger: l,
	}
}

// NewWithDefaults creates a new retrier with default configuration
func NewWithDefaults(l *logger.ZapLogger) *Retrier {
	return New(DefaultConfig(), l)
}

// Execute executes the function with retry logic
func (r *Retrier) Execute(ctx context.Context, fn RetryableFunc) error {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				r.logger.Info("Call succeeded after retries", logger.Int("attempt", attempt+1))
			}
			return nil
		}
		lastErr = err

		if !r.config.RetryableFunc(err) {
			return err
		}
		if attempt == r.config.MaxRetries {
			break
		}

		delay := r.calculateDelay(attempt)
		r.logger.Debug("Call failed, retrying",
			logger.Err(err),
			logger.Int("attempt", attempt+1),
			logger.Duration("delay", delay))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	r.logger.Warn("Call failed after all retries",
		logger.Err(lastErr),
		logger.Int("total_attempts", r.config.MaxRetries+1))

	return fmt.Errorf("retry limit exceeded after %d attempts: %w", r.config.MaxRetries+1, lastErr)
}

func (r *Retrier) calculateDelay(attempt int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.Multiplier, float64(attempt))
	if delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}
	if r.config.Jitter {
		delay += delay * 0.1 * rand.Float64()
	}
	return time.Duration(delay)
}

// StatusError is implemented by errors that carry an upstream HTTP status
type StatusError interface {
	error
	Status() int
}

// IsTransient reports whether an error is worth retrying: network errors,
// upstream 5xx and 429. Context cancellation and deadlines never are.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr StatusError
	if errors.As(err, &statusErr) {
		code := statusErr.Status()
		return code >= 500 || code == 429
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
