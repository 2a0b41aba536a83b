package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testDeps(t *testing.T) *ProviderDeps {
	t.Helper()
	return &ProviderDeps{
		Cache:          NewCache(time.Hour),
		MaxRetries:     1,
		RetryBaseDelay: time.Millisecond,
	}
}

func TestAdapterValidation(t *testing.T) {
	t.Parallel()

	adapter := NewAdzuna("id", "key", "", testDeps(t))

	cases := []struct {
		name   string
		params Params
	}{
		{name: "empty query", params: Params{Query: ""}},
		{name: "one char query", params: Params{Query: "a"}},
		{name: "one rune query", params: Params{Query: "日"}},
		{name: "query too long", params: Params{Query: strings.Repeat("x", 101)}},
		{name: "location too long", params: Params{Query: "golang", Location: strings.Repeat("x", 51)}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := adapter.Search(context.Background(), tt.params)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestParamsValidateCountsRunes(t *testing.T) {
	t.Parallel()

	// Two runes satisfy the minimum even though each is multi-byte.
	if err := (Params{Query: "日本"}).Validate(); err != nil {
		t.Fatalf("two-rune query rejected: %v", err)
	}

	// 50 multi-byte runes exceed 50 bytes but not the 50-rune limit.
	if err := (Params{Query: "golang", Location: strings.Repeat("東", 50)}).Validate(); err != nil {
		t.Fatalf("50-rune location rejected: %v", err)
	}

	if err := (Params{Query: "golang", Location: strings.Repeat("東", 51)}).Validate(); err == nil {
		t.Fatal("51-rune location accepted")
	}
}

func TestAdapterMissingCredentials(t *testing.T) {
	t.Parallel()

	adzuna := NewAdzuna("", "", "", testDeps(t))
	records, err := adzuna.Search(context.Background(), Params{Query: "golang"})
	if err != nil {
		t.Fatalf("missing credentials must not be an error, got %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty result, got %d", len(records))
	}

	jsearch := NewJSearch("", testDeps(t))
	records, err = jsearch.Search(context.Background(), Params{Query: "golang"})
	if err != nil {
		t.Fatalf("missing credentials must not be an error, got %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty result, got %d", len(records))
	}
}

func TestAdzunaMapsAndCachesResults(t *testing.T) {
	t.Parallel()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("what"); got != "golang" {
			t.Errorf("unexpected what param: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [
			{"title": "Go Developer", "company": {"display_name": "Acme"}, "location": {"display_name": "Berlin"},
			 "description": "build services", "salary_min": 50000, "salary_max": 70000,
			 "redirect_url": "https://example.com/1", "created": "2024-01-01", "contract_type": "full_time"},
			{"title": 12345},
			{"title": "Backend Engineer"}
		]}`))
	}))
	defer server.Close()

	adapter := NewAdzuna("id", "key", "in", testDeps(t))
	adapter.baseURL = server.URL

	records, err := adapter.Search(context.Background(), Params{Query: "golang", Location: "berlin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The unparsable item is skipped, the sparse one keeps sentinels.
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Title != "Go Developer" || first.Company != "Acme" || first.Location != "Berlin" {
		t.Fatalf("unexpected mapping: %+v", first)
	}
	if first.Source != AdzunaName {
		t.Fatalf("expected source %q, got %q", AdzunaName, first.Source)
	}
	if first.SalaryMin == nil || *first.SalaryMin != 50000 {
		t.Fatalf("expected salary_min 50000, got %v", first.SalaryMin)
	}

	sparse := records[1]
	if sparse.Company != "N/A" || sparse.Location != "N/A" {
		t.Fatalf("expected sentinel defaults for sparse item, got %+v", sparse)
	}

	// A second identical search must hit the cache, not the server.
	if _, err := adapter.Search(context.Background(), Params{Query: "golang", Location: "berlin"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected cached response on second call, server saw %d calls", calls)
	}
}

func TestRemotiveMapsResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "golang" {
			t.Errorf("unexpected search param: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jobs": [
			{"title": "Go Developer", "company_name": "Acme", "candidate_required_location": "",
			 "description": "remote work", "url": "https://example.com/1", "publication_date": "2024-01-01"}
		]}`))
	}))
	defer server.Close()

	adapter := NewRemotive("software-dev", testDeps(t))
	adapter.baseURL = server.URL

	records, err := adapter.Search(context.Background(), Params{Query: "golang"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Location != "Remote" || records[0].JobType != "Remote" {
		t.Fatalf("expected remote defaults, got %+v", records[0])
	}
}

func TestJSearchStatusErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	adapter := NewJSearch("key", testDeps(t))
	adapter.baseURL = server.URL

	_, err := adapter.Search(context.Background(), Params{Query: "golang"})
	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if providerErr.Provider != JSearchName {
		t.Fatalf("unexpected provider: %q", providerErr.Provider)
	}
	if !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("expected descriptive 403 message, got %q", err)
	}
}

func TestAdapterRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	deps := testDeps(t)
	deps.MaxRetries = 3
	adapter := NewAdzuna("id", "key", "", deps)
	adapter.baseURL = server.URL

	records, err := adapter.Search(context.Background(), Params{Query: "golang"})
	if err != nil {
		t.Fatalf("expected retries to recover, got %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty result set, got %d", len(records))
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}
