package search

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed caller input. It is surfaced immediately
// and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ProviderError reports a single provider's failure after its retries were
// exhausted. The aggregator isolates these per provider.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s search failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AggregateError is returned only when every provider failed. It carries all
// provider error messages.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("all job search providers failed: %s", strings.Join(msgs, "; "))
}
