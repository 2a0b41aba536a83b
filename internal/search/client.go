package search

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/jobs"
	"github.com/Omkolamkar/AiResumeAnalyzer/internal/logger"
	"go.uber.org/zap"
)

const (
	userAgent       = "ResumeAnalyzer/1.0"
	contentType     = "application/json"
	contentEncoding = "gzip, deflate, br"

	// DefaultHTTPTimeout bounds every provider HTTP call.
	DefaultHTTPTimeout = 30 * time.Second
)

// client carries the plumbing shared by all provider adapters: the HTTP
// client, the per-provider rate limiter, the shared result cache and the
// retry policy.
type client struct {
	name       string
	httpClient *http.Client
	limiter    *RateLimiter
	cache      *Cache
	retry      *RetryPolicy
	logger     *zap.Logger
}

func newClient(name string, deps *ProviderDeps, maxCalls int, window time.Duration) client {
	providerLogger := logger.WithProvider(deps.Logger, name)
	timeout := deps.HTTPTimeout
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return client{
		name:       name,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    NewRateLimiter(maxCalls, window, providerLogger),
		cache:      deps.Cache,
		retry:      NewRetryPolicy(deps.MaxRetries, deps.RetryBaseDelay, providerLogger),
		logger:     providerLogger,
	}
}

// guardedSearch runs fetch behind the cache, the rate limiter and the retry
// policy, and populates the cache with the full normalized record list on
// success. Exhausted retries surface as a ProviderError.
func (c *client) guardedSearch(ctx context.Context, p Params, fetch func(ctx context.Context) ([]*jobs.Job, error)) ([]*jobs.Job, error) {
	key := CacheKey(c.name, p)
	if cached := c.cache.Get(key); cached != nil {
		c.logger.Debug("cache hit", zap.String("key", key[:16]))
		return cached, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{Provider: c.name, Err: err}
	}
	c.limiter.Record()

	var records []*jobs.Job
	err := c.retry.Do(ctx, func(ctx context.Context) error {
		found, err := fetch(ctx)
		if err != nil {
			return err
		}
		records = found
		return nil
	})
	if err != nil {
		return nil, &ProviderError{Provider: c.name, Err: err}
	}

	c.cache.Set(key, records)
	c.logger.Info("retrieved jobs", zap.Int("count", len(records)))

	return records, nil
}

// Occupancy exposes the rate-limiter window occupancy for diagnostics.
func (c *client) Occupancy() int {
	return c.limiter.Occupancy()
}

// httpError reports a non-OK provider response status.
type httpError struct {
	StatusCode int
	Status     string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("bad status: %s", e.Status)
}

// getJSON makes a GET request and decodes the JSON body into target,
// transparently handling gzip-encoded responses.
func (c *client) getJSON(ctx context.Context, rawURL string, q url.Values, headers map[string]string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	c.logger.Debug("make request", zap.String("url", req.URL.Redacted()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return &httpError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if target == nil {
		return nil
	}

	return json.Unmarshal(data, target)
}
