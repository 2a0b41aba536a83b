package search

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/jobs"
	"github.com/Omkolamkar/AiResumeAnalyzer/internal/logger"
	"go.uber.org/zap"
)

const defaultMaxResults = 50

// Aggregator fans a search out to every configured provider, merges what came
// back, deduplicates, sorts by a relevance heuristic and truncates to the
// result budget. One provider failing never aborts the others; only total
// failure surfaces as an error.
type Aggregator struct {
	providers       []Provider
	cache           *Cache
	preferredSource string
	logger          *zap.Logger
}

// NewAggregator builds the aggregator owning the shared cache. The preferred
// source breaks relevance ties in favor of that provider's results.
func NewAggregator(providers []Provider, cache *Cache, preferredSource string, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		providers:       providers,
		cache:           cache,
		preferredSource: preferredSource,
		logger:          logger,
	}
}

// Stats reports cache size and per-provider rate-window occupancy.
type Stats struct {
	CacheSize  int            `json:"cache_size"`
	RateLimits map[string]int `json:"rate_limits"`
}

// SearchAll queries every provider for its fair share of maxResults and
// returns the merged, deduplicated, relevance-ordered list. Providers run
// concurrently; the call waits for every branch before merging.
func (a *Aggregator) SearchAll(ctx context.Context, query, location string, maxResults int) (*jobs.Jobs, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Field: "query", Reason: "is required and cannot be empty"}
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if len(a.providers) == 0 {
		return nil, &AggregateError{Errors: []error{errors.New("no providers configured")}}
	}

	share := maxResults / len(a.providers)
	if share < 1 {
		share = 1
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		merged = &jobs.Jobs{}
		errs   []error
	)

	for _, provider := range a.providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()

			found, err := p.Search(ctx, Params{
				Query:    query,
				Location: location,
				Page:     1,
				Limit:    share,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			merged.Append(found...)
		}(provider)
	}
	wg.Wait()

	if len(errs) > 0 && merged.Len() == 0 {
		return nil, &AggregateError{Errors: errs}
	}

	for _, err := range errs {
		a.logger.Warn("provider failed, continuing with partial results", zap.Error(err))
	}

	merged.Dedup()
	merged.SortByRelevance(query, a.preferredSource)
	merged.Truncate(maxResults)

	a.logger.Info("aggregated search results",
		zap.String(logger.FieldQuery, query),
		zap.Int("providers", len(a.providers)),
		zap.Int("failed", len(errs)),
		zap.Int("count", merged.Len()),
	)

	return merged, nil
}

// Stats returns current cache and rate-limiter occupancy for diagnostics.
func (a *Aggregator) Stats() Stats {
	stats := Stats{RateLimits: make(map[string]int, len(a.providers))}
	if a.cache != nil {
		stats.CacheSize = a.cache.Len()
	}
	for _, provider := range a.providers {
		if limited, ok := provider.(interface{ Occupancy() int }); ok {
			stats.RateLimits[provider.Name()] = limited.Occupancy()
		}
	}
	return stats
}
