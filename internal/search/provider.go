package search

import (
	"context"
	"time"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/jobs"
	"go.uber.org/zap"
)

// MaxJobsPerSearch caps how many results a single provider call may request.
const MaxJobsPerSearch = 50

// Provider is one external job-search source normalized to the common record
// shape. Implementations validate input before any network call, honor their
// own rate limiter and retry policy, and treat missing credentials as an
// empty result rather than an error.
type Provider interface {
	Name() string
	Search(ctx context.Context, p Params) ([]*jobs.Job, error)
}

// ProviderDeps carries the collaborators shared by provider adapters. The
// cache is shared across providers; limiters and retry policies are built
// per adapter.
type ProviderDeps struct {
	Cache          *Cache
	Logger         *zap.Logger
	HTTPTimeout    time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
}

func capLimit(limit int) int {
	if limit > MaxJobsPerSearch {
		return MaxJobsPerSearch
	}
	return limit
}
