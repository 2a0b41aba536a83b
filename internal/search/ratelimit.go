package search

import (
	"context"
	"sync"
	"time"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/utils"
	"go.uber.org/zap"
)

// RateLimiter enforces a sliding-window call budget for a single provider.
// Timestamps older than the window are pruned lazily on every check; there is
// no background timer. Instances are independent per provider.
type RateLimiter struct {
	mu         sync.Mutex
	maxCalls   int
	timeWindow time.Duration
	calls      []time.Time
	logger     *zap.Logger

	now func() time.Time
}

// NewRateLimiter creates a limiter allowing maxCalls per timeWindow.
func NewRateLimiter(maxCalls int, timeWindow time.Duration, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{
		maxCalls:   maxCalls,
		timeWindow: timeWindow,
		logger:     logger,
		now:        time.Now,
	}
}

// CanProceed reports whether another call fits in the current window.
func (r *RateLimiter) CanProceed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prune(r.now())
	return len(r.calls) < r.maxCalls
}

// Record registers a call at the current time.
func (r *RateLimiter) Record() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, r.now())
}

// Occupancy returns the number of calls currently inside the window.
func (r *RateLimiter) Occupancy() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prune(r.now())
	return len(r.calls)
}

// Wait blocks until the window has capacity, sleeping for the minimum time
// until the oldest call ages out. The only failure mode is context
// cancellation; otherwise the worst case is a bounded sleep.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		now := r.now()
		r.prune(now)
		if len(r.calls) < r.maxCalls {
			r.mu.Unlock()
			return nil
		}
		wait := r.timeWindow - now.Sub(r.calls[0])
		r.mu.Unlock()

		if wait <= 0 {
			continue
		}

		r.logger.Warn("rate limit reached",
			zap.Duration("wait", wait),
			zap.Int("max_calls", r.maxCalls),
			zap.Duration("time_window", r.timeWindow),
		)

		if err := utils.WaitFor(ctx, wait); err != nil {
			return err
		}
	}
}

// prune drops timestamps older than the window. Caller holds the lock.
// Timestamps are appended in order, so the slice stays sorted and the first
// retained index can be found with a single scan.
func (r *RateLimiter) prune(now time.Time) {
	cutoff := now.Add(-r.timeWindow)
	idx := 0
	for idx < len(r.calls) && !r.calls[idx].After(cutoff) {
		idx++
	}
	if idx > 0 {
		r.calls = append(r.calls[:0], r.calls[idx:]...)
	}
}
