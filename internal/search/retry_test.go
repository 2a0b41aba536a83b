package search

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	t.Parallel()

	policy := NewRetryPolicy(3, time.Millisecond, nil)

	attempts := 0
	err := policy.Do(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryExhaustionPreservesCause(t *testing.T) {
	t.Parallel()

	policy := NewRetryPolicy(3, time.Millisecond, nil)
	cause := errors.New("connection refused")

	attempts := 0
	err := policy.Do(context.Background(), func(context.Context) error {
		attempts++
		return cause
	})
	if err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if attempts != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", attempts)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected original cause to be preserved, got %v", err)
	}
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	policy := NewRetryPolicy(5, time.Hour, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	attempts := 0
	err := policy.Do(ctx, func(context.Context) error {
		attempts++
		return errors.New("transient")
	})
	if err == nil {
		t.Fatalf("expected context error")
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt before the hour-long backoff, got %d", attempts)
	}
}
