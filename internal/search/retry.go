package search

import (
	"context"
	"fmt"
	"time"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/utils"
	"go.uber.org/zap"
)

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = time.Second
)

// RetryPolicy wraps a call with bounded retries and exponential backoff.
// Validation happens before the policy is entered, so every error reaching it
// is treated as transient.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Logger     *zap.Logger
}

// NewRetryPolicy creates a policy with the given bounds, falling back to the
// defaults (3 attempts, 1s base delay) for non-positive values.
func NewRetryPolicy(maxRetries int, baseDelay time.Duration, logger *zap.Logger) *RetryPolicy {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if baseDelay <= 0 {
		baseDelay = defaultBaseDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryPolicy{MaxRetries: maxRetries, BaseDelay: baseDelay, Logger: logger}
}

// Do invokes fn up to MaxRetries times. After each failure except the last it
// sleeps BaseDelay*2^attempt, then retries. The final failure is returned with
// the original cause preserved.
func (p *RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < p.MaxRetries; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt == p.MaxRetries-1 {
			break
		}

		delay := p.BaseDelay * (1 << attempt)
		p.Logger.Warn("attempt failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(lastErr),
		)

		if err := utils.WaitFor(ctx, delay); err != nil {
			return err
		}
	}

	return fmt.Errorf("after %d attempts: %w", p.MaxRetries, lastErr)
}
