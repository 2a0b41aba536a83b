package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/logger"
	"github.com/Omkolamkar/AiResumeAnalyzer/internal/search"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Diagnose the configuration and report which providers are usable",
	Run: func(_ *cobra.Command, _ []string) {
		runCheck()
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck() {
	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}

	creds, err := resolveCredentials(config)
	if err != nil {
		zl.Fatal("resolving credentials", zap.Error(err))
	}

	fmt.Println("Provider credentials:")
	missing := 0
	missing += reportCredential("adzuna app id", creds.AdzunaAppID != "", "ADZUNA_APP_ID or providers.adzuna.app-id")
	missing += reportCredential("adzuna app key", creds.AdzunaAppKey != "", "ADZUNA_APP_KEY or providers.adzuna.app-key")
	missing += reportCredential("jsearch api key", creds.JSearchKey != "", "RAPIDAPI_KEY or providers.jsearch.api-key")
	fmt.Printf("  [ok]      remotive (no credentials required)\n")
	missing += reportCredential("gemini api key", creds.GeminiKey != "", "GEMINI_API_KEY or ai.gemini.api-key (needed by match)")

	fmt.Println("\nEffective settings:")
	fmt.Printf("  cache ttl:        %s\n", cacheTTL(config))
	fmt.Printf("  http timeout:     %s\n", httpTimeout(config))
	fmt.Printf("  max retries:      %d\n", maxRetries(config))
	fmt.Printf("  preferred source: %s\n", preferredSource(config))
	fmt.Printf("  provider cap:     %d results per call\n", search.MaxJobsPerSearch)

	aggregator := newAggregator(config, creds, zl)
	stats := aggregator.Stats()
	fmt.Println("\nRate-limit windows (calls used):")
	for _, name := range []string{search.AdzunaName, search.RemotiveName, search.JSearchName} {
		fmt.Printf("  %-10s %d\n", name, stats.RateLimits[name])
	}

	if missing > 0 {
		fmt.Printf("\n%d credential(s) missing; the affected providers will return no results.\n", missing)
		return
	}
	fmt.Println("\nAll providers are fully configured.")
}

func reportCredential(name string, present bool, hint string) int {
	if present {
		fmt.Printf("  [ok]      %s\n", name)
		return 0
	}
	fmt.Printf("  [missing] %s (set %s)\n", name, hint)
	return 1
}
