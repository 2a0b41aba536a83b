package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/ai"
	"github.com/Omkolamkar/AiResumeAnalyzer/internal/ai/gemini"
	"github.com/Omkolamkar/AiResumeAnalyzer/internal/jobs"
	"github.com/Omkolamkar/AiResumeAnalyzer/internal/logger"
	"github.com/Omkolamkar/AiResumeAnalyzer/internal/matching"
	"github.com/Omkolamkar/AiResumeAnalyzer/internal/profile"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank job search results against a candidate profile extracted from a resume",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("resume", "r", "", "path to a plain-text resume to extract the profile from")
	matchCmd.Flags().StringP("profile", "p", "", "path to a pre-extracted profile JSON file (skips the AI call)")
	matchCmd.Flags().StringP("query", "q", "", "search query (overrides the config file)")
	matchCmd.Flags().StringP("location", "l", "", "location filter")
	matchCmd.Flags().IntP("max-results", "n", 0, "maximum merged results")
	matchCmd.Flags().IntP("top", "k", defaultTopK, "how many ranked matches to show")
	matchCmd.Flags().BoolP("no-prompt", "y", false, "print matches and exit without the action prompt")
}

func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

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

	candidate, err := loadProfile(ctx, cmd, config, creds, zl)
	if err != nil {
		zl.Fatal("building the candidate profile", zap.Error(err))
	}

	zl.Info("candidate profile ready",
		zap.String("experience_level", candidate.ExperienceLevel),
		zap.Int("skills", len(candidate.Skills)),
		zap.Int("target_roles", len(candidate.TargetRoles)),
	)

	query, location, maxResults := matchSearchArgs(cmd, config, candidate)
	if query == "" {
		zl.Fatal("no search query",
			zap.String("hint", "pass --query, set search.query, or provide a resume the profile roles can be derived from"),
		)
	}

	aggregator := newAggregator(config, creds, zl)

	zl.Info("starting the search", zap.String(logger.FieldQuery, query), zap.String("location", location))

	results, err := aggregator.SearchAll(ctx, query, location, maxResults)
	if err != nil {
		zl.Fatal("searching job providers", zap.Error(err))
	}

	if results.Len() == 0 {
		zl.Info("exiting", zap.String("reason", "no jobs found"))
		return
	}

	topK, _ := cmd.Flags().GetInt("top")
	ranked := matching.New(zl).RankJobs(candidate, results, topK)

	zl.Info("ranking finished",
		zap.Int("scored", len(ranked)),
		zap.Int("searched", results.Len()),
	)

	printRanked(ranked)

	if noPrompt, _ := cmd.Flags().GetBool("no-prompt"); noPrompt {
		return
	}

	actionLoop(zl, rankedJobs(ranked), candidate.Summary)
}

// loadProfile builds the candidate profile either from a pre-extracted JSON
// file or by running the resume text through the AI extractor.
func loadProfile(ctx context.Context, cmd *cobra.Command, config *Config, creds *credentials, zl *zap.Logger) (*profile.Profile, error) {
	profileFile, _ := cmd.Flags().GetString("profile")
	resumeFile, _ := cmd.Flags().GetString("resume")

	switch {
	case profileFile != "":
		raw, err := os.ReadFile(profileFile)
		if err != nil {
			return nil, fmt.Errorf("reading profile file: %w", err)
		}

		var data map[string]any
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parsing profile file: %w", err)
		}

		basic, err := profile.FromMap(data)
		if err != nil {
			return nil, err
		}
		return profile.FromBasic(basic), nil

	case resumeFile != "":
		raw, err := os.ReadFile(resumeFile)
		if err != nil {
			return nil, fmt.Errorf("reading resume file: %w", err)
		}

		extractor, err := newExtractor(ctx, config, creds, zl)
		if err != nil {
			return nil, err
		}

		basic, err := extractor.Extract(ctx, string(raw))
		if err != nil {
			return nil, err
		}
		return profile.FromBasic(basic), nil

	default:
		return nil, fmt.Errorf("either --resume or --profile is required")
	}
}

func newExtractor(ctx context.Context, config *Config, creds *credentials, zl *zap.Logger) (ai.Extractor, error) {
	if creds.GeminiKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured (set ai.gemini.api-key or %s)", "GEMINI_API_KEY")
	}

	model := ""
	if config.AI != nil && config.AI.Gemini != nil {
		model = config.AI.Gemini.Model
	}

	generator, err := gemini.NewGenerator(ctx, creds.GeminiKey, model)
	if err != nil {
		return nil, err
	}

	return gemini.NewExtractor(generator, zl.With(
		zap.String(logger.FieldModel, generator.Model()),
	)), nil
}

// matchSearchArgs resolves the search parameters, falling back to the
// profile's first target role when neither flag nor config supplies a query.
func matchSearchArgs(cmd *cobra.Command, config *Config, candidate *profile.Profile) (query, location string, maxResults int) {
	query, location, maxResults = searchArgs(cmd, config)
	if query == "" && len(candidate.TargetRoles) > 0 {
		query = candidate.TargetRoles[0]
	}
	if location == "" && len(candidate.PreferredLocations) > 0 {
		location = candidate.PreferredLocations[0]
	}
	return query, location, maxResults
}

func printRanked(ranked []matching.Ranked) {
	for i, r := range ranked {
		job := r.Job
		salary := ""
		if job.HasSalaryRange() {
			salary = fmt.Sprintf(" %.0f-%.0f", *job.SalaryMin, *job.SalaryMax)
		}
		fmt.Printf("%2d. [%5.1f] %s / %s / %s [%s]%s\n",
			i+1, r.Score, job.Title, job.Company, job.Location, job.Source, salary)

		features := r.Features.Map()
		keys := []string{"skill_matches", "keyword_matches", "title_relevance", "experience_match", "remote_preference"}
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%.2f", key, features[key]))
		}
		fmt.Printf("     %s\n", strings.Join(parts, " "))
	}
}

func rankedJobs(ranked []matching.Ranked) *jobs.Jobs {
	list := &jobs.Jobs{}
	for _, r := range ranked {
		list.Append(r.Job)
	}
	return list
}
