package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spigell/cv-matcher/internal/logger"
	"github.com/spigell/cv-matcher/internal/matching"
	"github.com/spigell/cv-matcher/internal/resume"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "cv-matcher"

	asOfLayout = "2006-01"
)

// Config is the application configuration read from the config file, env and flags.
type Config struct {
	JobsFile string                        `mapstructure:"jobs-file"`
	AsOf     string                        `mapstructure:"as-of"`
	Extract  *ExtractConfig                `mapstructure:"extract"`
	Profile  *matching.CandidateAttributes `mapstructure:"profile"`
	Match    *MatchConfig                  `mapstructure:"match"`
	AI       *AIConfig                     `mapstructure:"ai"`
}

// ExtractConfig tunes the extract command.
type ExtractConfig struct {
	Workers int `mapstructure:"workers"`
}

// MatchConfig holds the filter settings of the match command.
type MatchConfig struct {
	MinScore    int    `mapstructure:"min-score"`
	ExcludeFile string `mapstructure:"exclude-file"`
	Exclude     *struct {
		Employers []string
	}
}

// AIConfig enables the optional AI review of matches.
type AIConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Provider        string        `mapstructure:"provider"`
	MinimumFitScore float64       `mapstructure:"minimum-fit-score"`
	Gemini          *GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig configures the Gemini provider.
type GeminiConfig struct {
	APIKey       string        `mapstructure:"api-key"`
	APIKeyFile   string        `mapstructure:"api-key-file"`
	Model        string        `mapstructure:"model"`
	MaxRetries   int           `mapstructure:"max-retries"`
	MaxLogLength int           `mapstructure:"max-log-length"`
	Prompt       *PromptConfig `mapstructure:"prompt"`
}

// PromptConfig carries user criteria rendered into the AI prompt.
type PromptConfig struct {
	ExtraCriteria     string `mapstructure:"extra-criteria"`
	DealBreakers      string `mapstructure:"deal-breakers"`
	CustomKeywords    string `mapstructure:"custom-keywords"`
	RegionConstraints string `mapstructure:"region-constraints"`
	UserInstructions  string `mapstructure:"user-instructions"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cv-matcher extracts structured data from nursing résumés and ranks job postings against it",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("jobs-file", "CV_MATCHER_JOBS_FILE"); err != nil {
		log.Fatalf("binding CV_MATCHER_JOBS_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cv-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("as-of", "", "reference month (YYYY-MM) used instead of the current date")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("as-of", rootCmd.PersistentFlags().Lookup("as-of"))
}

// initConfig reads the config file. Only an explicitly given file is mandatory.
func initConfig() {
	if versionCmd.CalledAs() != "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

// setup builds the logger and reads the config shared by every command.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	return logger, config
}

func newExtractor(config *Config) (*resume.Extractor, error) {
	asOf := strings.TrimSpace(config.AsOf)
	if asOf == "" {
		return resume.New(), nil
	}

	ref, err := time.Parse(asOfLayout, asOf)
	if err != nil {
		return nil, fmt.Errorf("parsing as-of %q: expected YYYY-MM: %w", asOf, err)
	}

	return resume.New(resume.WithClock(func() time.Time { return ref })), nil
}
