package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/jobs"
	"github.com/Omkolamkar/AiResumeAnalyzer/internal/logger"
)

const (
	PromptExit           = "Exit"
	PromptReportBySource = "Report by source"
	PromptJobsToFile     = "Dump results to file"
	PromptProfileSummary = "Show profile summary"
)

var errExit = errors.New("exit requested")

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search all configured job providers and merge the results",
	Run: func(cmd *cobra.Command, _ []string) {
		runSearch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("query", "q", "", "search query (overrides the config file)")
	searchCmd.Flags().StringP("location", "l", "", "location filter")
	searchCmd.Flags().IntP("max-results", "n", 0, "maximum merged results")
	searchCmd.Flags().BoolP("no-prompt", "y", false, "print results and exit without the action prompt")
}

func runSearch(cmd *cobra.Command) {
	ctx := context.Background()

	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}

	query, location, maxResults := searchArgs(cmd, config)
	if query == "" {
		zl.Fatal("a search query is required",
			zap.String("hint", "pass --query or set search.query in the configuration file"),
		)
	}

	creds, err := resolveCredentials(config)
	if err != nil {
		zl.Fatal("resolving provider credentials", zap.Error(err))
	}

	aggregator := newAggregator(config, creds, zl)

	zl.Info("starting the search", zap.String(logger.FieldQuery, query), zap.String("location", location))

	results, err := aggregator.SearchAll(ctx, query, location, maxResults)
	if err != nil {
		zl.Fatal("searching job providers", zap.Error(err))
	}

	zl.Info("search finished", zap.Int("count", results.Len()))

	if results.Len() == 0 {
		zl.Info("exiting", zap.String("reason", "no jobs found"))
		return
	}

	printJobs(results)

	if noPrompt, _ := cmd.Flags().GetBool("no-prompt"); noPrompt {
		return
	}

	actionLoop(zl, results, nil)
}

func searchArgs(cmd *cobra.Command, config *Config) (query, location string, maxResults int) {
	query, _ = cmd.Flags().GetString("query")
	if query == "" {
		query = config.Search.Query
	}

	location, _ = cmd.Flags().GetString("location")
	if location == "" {
		location = config.Search.Location
	}

	maxResults, _ = cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		maxResults = config.Search.MaxResults
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return query, location, maxResults
}

func printJobs(results *jobs.Jobs) {
	for i, job := range results.Items {
		fmt.Printf("%2d. %s / %s / %s [%s]\n", i+1, job.Title, job.Company, job.Location, job.Source)
	}
}

// actionLoop offers post-search actions until the user exits. The summary
// callback is nil outside the match command.
func actionLoop(zl *zap.Logger, results *jobs.Jobs, summary func() string) {
	items := []string{PromptReportBySource, PromptJobsToFile}
	if summary != nil {
		items = append(items, PromptProfileSummary)
	}
	items = append(items, PromptExit)

	prompt := promptui.Select{
		Label: "Next action?",
		Items: items,
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			zl.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, zl, results, summary); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			zl.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, zl *zap.Logger, results *jobs.Jobs, summary func() string) error {
	switch action {
	case PromptReportBySource:
		pretty, _ := json.MarshalIndent(results.ReportBySource(), "", "  ")
		fmt.Println(string(pretty))
		return nil
	case PromptJobsToFile:
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		zl.Info("dumped results to file", zap.String("filename", filename))
		return nil
	case PromptProfileSummary:
		fmt.Println(summary())
		return nil
	case PromptExit:
		zl.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}
