package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-analyzer"

	defaultCacheTTL       = time.Hour
	defaultHTTPTimeout    = 30 * time.Second
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = time.Second
	defaultMaxResults     = 50
	defaultTopK           = 10
	defaultPreferred      = "jsearch"
)

type Config struct {
	Search    *SearchConfig    `mapstructure:"search"`
	Providers *ProvidersConfig `mapstructure:"providers"`
	AI        *AIConfig        `mapstructure:"ai"`
}

type SearchConfig struct {
	Query           string `mapstructure:"query"`
	Location        string `mapstructure:"location"`
	MaxResults      int    `mapstructure:"max-results"`
	PreferredSource string `mapstructure:"preferred-source"`
}

type ProvidersConfig struct {
	CacheTTLSeconds    int `mapstructure:"cache-ttl"`
	HTTPTimeoutSeconds int `mapstructure:"http-timeout"`
	MaxRetries         int `mapstructure:"max-retries"`

	Adzuna   *AdzunaConfig   `mapstructure:"adzuna"`
	Remotive *RemotiveConfig `mapstructure:"remotive"`
	JSearch  *JSearchConfig  `mapstructure:"jsearch"`
}

type AdzunaConfig struct {
	AppID      string `mapstructure:"app-id"`
	AppIDFile  string `mapstructure:"app-id-file"`
	AppKey     string `mapstructure:"app-key"`
	AppKeyFile string `mapstructure:"app-key-file"`
	Country    string `mapstructure:"country"`
}

type RemotiveConfig struct {
	Category string `mapstructure:"category"`
}

type JSearchConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type AIConfig struct {
	Gemini *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-analyzer searches job boards and ranks postings against a resume-derived candidate profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is "+app+".yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly requested config file must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")
	viper.SetConfigType("yaml")

	// Every setting has a default or an environment fallback, so a missing
	// config file is fine.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}
	if config.Search == nil {
		config.Search = &SearchConfig{}
	}
	if config.Providers == nil {
		config.Providers = &ProvidersConfig{}
	}
	return config, nil
}
