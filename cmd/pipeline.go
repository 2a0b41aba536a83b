package cmd

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/search"
	"github.com/Omkolamkar/AiResumeAnalyzer/internal/secrets"
)

// credentials holds the resolved provider secrets. Empty values mean the
// provider is not configured; adapters treat that as "return nothing".
type credentials struct {
	AdzunaAppID  string
	AdzunaAppKey string
	JSearchKey   string
	GeminiKey    string
}

func resolveCredentials(config *Config) (*credentials, error) {
	creds := &credentials{}

	var adzuna AdzunaConfig
	if config.Providers.Adzuna != nil {
		adzuna = *config.Providers.Adzuna
	}
	var jsearch JSearchConfig
	if config.Providers.JSearch != nil {
		jsearch = *config.Providers.JSearch
	}
	var gemini GeminiConfig
	if config.AI != nil && config.AI.Gemini != nil {
		gemini = *config.AI.Gemini
	}

	sources := []struct {
		target *string
		source secrets.Source
	}{
		{&creds.AdzunaAppID, secrets.Source{
			Name: "adzuna app id", Value: adzuna.AppID, File: adzuna.AppIDFile, Env: "ADZUNA_APP_ID",
		}},
		{&creds.AdzunaAppKey, secrets.Source{
			Name: "adzuna app key", Value: adzuna.AppKey, File: adzuna.AppKeyFile, Env: "ADZUNA_APP_KEY",
		}},
		{&creds.JSearchKey, secrets.Source{
			Name: "jsearch api key", Value: jsearch.APIKey, File: jsearch.APIKeyFile, Env: "RAPIDAPI_KEY",
		}},
		{&creds.GeminiKey, secrets.Source{
			Name: "gemini api key", Value: gemini.APIKey, File: gemini.APIKeyFile, Env: "GEMINI_API_KEY",
		}},
	}

	for _, s := range sources {
		value, err := secrets.LoadOptional(s.source)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", s.source.Name, err)
		}
		*s.target = value
	}

	return creds, nil
}

func cacheTTL(config *Config) time.Duration {
	if config.Providers.CacheTTLSeconds > 0 {
		return time.Duration(config.Providers.CacheTTLSeconds) * time.Second
	}
	return defaultCacheTTL
}

func httpTimeout(config *Config) time.Duration {
	if config.Providers.HTTPTimeoutSeconds > 0 {
		return time.Duration(config.Providers.HTTPTimeoutSeconds) * time.Second
	}
	return defaultHTTPTimeout
}

func maxRetries(config *Config) int {
	if config.Providers.MaxRetries > 0 {
		return config.Providers.MaxRetries
	}
	return defaultMaxRetries
}

func preferredSource(config *Config) string {
	if config.Search.PreferredSource != "" {
		return config.Search.PreferredSource
	}
	return defaultPreferred
}

// newAggregator assembles the provider fan-out from config and resolved
// credentials. All three adapters are always registered; the ones without
// credentials contribute empty results.
func newAggregator(config *Config, creds *credentials, logger *zap.Logger) *search.Aggregator {
	cache := search.NewCache(cacheTTL(config))

	deps := &search.ProviderDeps{
		Cache:          cache,
		Logger:         logger,
		HTTPTimeout:    httpTimeout(config),
		MaxRetries:     maxRetries(config),
		RetryBaseDelay: defaultRetryBaseDelay,
	}

	country := ""
	if config.Providers.Adzuna != nil {
		country = config.Providers.Adzuna.Country
	}
	category := ""
	if config.Providers.Remotive != nil {
		category = config.Providers.Remotive.Category
	}

	providers := []search.Provider{
		search.NewAdzuna(creds.AdzunaAppID, creds.AdzunaAppKey, country, deps),
		search.NewRemotive(category, deps),
		search.NewJSearch(creds.JSearchKey, deps),
	}

	return search.NewAggregator(providers, cache, preferredSource(config), logger)
}
