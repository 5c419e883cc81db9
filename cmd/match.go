package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigell/cv-matcher/internal/ai"
	"github.com/spigell/cv-matcher/internal/ai/gemini"
	"github.com/spigell/cv-matcher/internal/filtering"
	"github.com/spigell/cv-matcher/internal/ingestion"
	"github.com/spigell/cv-matcher/internal/jobs"
	"github.com/spigell/cv-matcher/internal/logger"
	"github.com/spigell/cv-matcher/internal/matching"
	"github.com/spigell/cv-matcher/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowResults         = "Show results"
	PromptReportByEmployers   = "Report by employers"
	PromptInspectJob          = "Inspect a job"
	PromptResultsToFile       = "Dump results to file"
	PromptAppendToExcludeFile = "Append all shown jobs to exclude file"
	PromptExit                = "Exit"
	PromptBack                = "back"
)

var errExit = errors.New("exit requested")

var matchCmd = &cobra.Command{
	Use:   "match RESUME",
	Short: "Rank job postings against a résumé",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		match(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().String("jobs", "", "file with job postings (yaml, json or toml)")
	matchCmd.Flags().BoolP("auto-approve", "y", false, "print the ranking without the interactive menu")
	matchCmd.Flags().Int("min-score", 0, "drop jobs scoring below this value")
	matchCmd.Flags().StringP("exclude-file", "e", "", "special file with jobs to exclude. Default is unset.")

	viper.BindPFlag("jobs-file", matchCmd.Flags().Lookup("jobs"))
	viper.BindPFlag("match.min-score", matchCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("match.exclude-file", matchCmd.Flags().Lookup("exclude-file"))
}

func match(cmd *cobra.Command, resumePath string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log, config := setup()

	log.Info("starting the cv-matcher", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if strings.TrimSpace(config.JobsFile) == "" {
		log.Fatal("jobs file is required",
			zap.String("hint", "pass --jobs, set CV_MATCHER_JOBS_FILE or the 'jobs-file' key in the configuration file"),
		)
	}

	extractor, err := newExtractor(config)
	if err != nil {
		log.Fatal("preparing the extractor", zap.Error(err))
	}

	text, err := ingestion.ReadDocument(resumePath)
	if err != nil {
		log.Fatal("reading the resume", append(logger.DocumentFields(resumePath, filepath.Ext(resumePath)), zap.Error(err))...)
	}

	cv := extractor.Extract(text)
	candidate := matching.CandidateFromResume(cv)
	if config.Profile != nil {
		candidate = candidate.Merge(*config.Profile)
	}

	log.Info("candidate attributes",
		zap.Strings("certifications", candidate.Certifications),
		zap.Int("skills", len(candidate.Skills)),
		zap.Int("years_of_experience", candidate.YearsOfExperience),
	)

	postings, err := jobs.LoadFile(config.JobsFile)
	if err != nil {
		log.Fatal("loading job postings", zap.Error(err))
	}

	log.Info("getting job postings", zap.Int("count", postings.Len()))

	matches := jobs.NewMatches(postings, matching.MatchJobs(candidate, postings.Requirements()))

	steps := filtering.Default()
	matcher := prepareAIMatcher(ctx, config.AI, steps, log)

	filtered, _, err := filtering.Run(ctx, filterConfig(config), filtering.Deps{
		Logger:  log,
		Resume:  &cv,
		Matcher: matcher,
	}, steps, matches)
	if err != nil {
		log.Fatal("filtering failed", zap.Error(err))
	}

	for _, status := range filtering.Describe(steps) {
		log.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	if filtered.Len() == 0 {
		log.Info("exiting", zap.String("reason", "no jobs left after filters"))
		return
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := printJSON(filtered); err != nil {
			log.Fatal("writing results", zap.Error(err))
		}
		return
	}

	excludeFile := ""
	if config.Match != nil {
		excludeFile = strings.TrimSpace(config.Match.ExcludeFile)
	}

	for {
		items := []string{PromptShowResults, PromptReportByEmployers, PromptInspectJob, PromptResultsToFile}
		if excludeFile != "" && filtered.Len() != 0 {
			items = append(items, PromptAppendToExcludeFile)
		}

		prompt := promptui.Select{
			Label: "What next?",
			Items: append(items, PromptExit),
		}

		_, action, err := prompt.Run()
		if err != nil {
			log.Fatal("exiting", zap.Error(err))
		}

		log.Info("current list of jobs", zap.Int("count", filtered.Len()))

		if err := handleAction(action, log, excludeFile, filtered); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			log.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, log *zap.Logger, excludeFile string, matches *jobs.Matches) error {
	switch action {
	case PromptShowResults:
		printRanking(matches)
		return nil
	case PromptReportByEmployers:
		pretty, _ := json.MarshalIndent(matches.ReportByEmployer(), "", "  ")
		log.Info(string(pretty), zap.Int("jobs count", matches.Len()))
		return nil
	case PromptInspectJob:
		return inspect(matches)
	case PromptResultsToFile:
		filename, err := matches.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		log.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(log, excludeFile, matches)
	case PromptExit:
		log.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printRanking(matches *jobs.Matches) {
	for i, m := range matches.Items {
		fmt.Printf("%2d. [%3d] %s %s / %s\n", i+1, m.Result.MatchScore, m.Posting.ID, m.Posting.Title, m.Posting.Employer)
		if len(m.Result.MatchedCertifications) > 0 {
			fmt.Printf("      certifications: %s\n", strings.Join(m.Result.MatchedCertifications, ", "))
		}
		if len(m.Result.MatchedSkills) > 0 {
			fmt.Printf("      skills: %s\n", strings.Join(m.Result.MatchedSkills, ", "))
		}
		if m.AI != nil && m.AI.Message != "" {
			fmt.Printf("      ai: %s\n", m.AI.Message)
		}
	}
}

func inspect(matches *jobs.Matches) error {
	for {
		items := make([]string, 0, matches.Len()+1)
		for _, m := range matches.Items {
			items = append(items, fmt.Sprintf("%s %s / %s / %s", m.Posting.ID, m.Posting.Title, m.Posting.Employer, m.Posting.URL))
		}

		jobPrompt := promptui.Select{
			Label: "Choose a job and press ENTER",
			Items: append(items, PromptBack),
		}

		_, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		jobID := strings.Split(selected, " ")[0]
		m := matches.FindByJobID(jobID)
		if m == nil {
			return fmt.Errorf("there is no such job id %s", jobID)
		}

		if err := printJSON(m); err != nil {
			return err
		}
	}
}

func appendToExcludeFile(log *zap.Logger, excludeFile string, matches *jobs.Matches) error {
	excluded, err := jobs.GetExcludedFromFile(excludeFile)
	if errors.Is(err, os.ErrNotExist) {
		excluded, err = &jobs.ExcludedPostings{}, nil
	}
	if err != nil {
		return err
	}

	excluded.Append(matches.ToExcluded())

	if err := excluded.ToFile(excludeFile); err != nil {
		return err
	}

	log.Info("appended to exclude file", zap.String("filename", excludeFile))

	matches.Exclude(jobs.JobIDField, excluded.IDs())
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func filterConfig(config *Config) *filtering.Config {
	cfg := &filtering.Config{}

	if m := config.Match; m != nil {
		cfg.MinScore = m.MinScore
		cfg.ExcludeFile = m.ExcludeFile
		if m.Exclude != nil {
			cfg.Employers = m.Exclude.Employers
		}
	}

	if a := config.AI; a != nil {
		cfg.AI = &filtering.AIConfig{
			Enabled:         a.Enabled,
			Provider:        a.Provider,
			MinimumFitScore: a.MinimumFitScore,
		}
		if a.Gemini != nil {
			model := strings.TrimSpace(a.Gemini.Model)
			if model == "" {
				model = gemini.DefaultModel
			}
			cfg.AI.Gemini = &filtering.GeminiConfig{
				Model:        model,
				MaxRetries:   a.Gemini.MaxRetries,
				MaxLogLength: a.Gemini.MaxLogLength,
			}
		}
	}

	return cfg
}

// prepareAIMatcher builds the AI matcher, disabling the ai_fit step when AI is off or misconfigured.
func prepareAIMatcher(ctx context.Context, config *AIConfig, steps []filtering.Filter, log *zap.Logger) ai.Matcher {
	if config == nil || !config.Enabled {
		filtering.DisableByName(steps, "ai_fit", "ai is disabled in config")
		return nil
	}

	matcher, err := newAIMatcher(ctx, config, log)
	if err != nil {
		log.Warn("skipping AI filter", zap.Error(err))
		filtering.DisableByName(steps, "ai_fit", err.Error())
		return nil
	}

	return matcher
}

func newAIMatcher(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Matcher, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai filter is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	genLogger := log.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	minScore := cfg.MinimumFitScore
	if minScore < 0 {
		minScore = 0
	}

	matcherLogger := log.With(zap.Float64("minimum_fit_score", minScore))

	matcher := gemini.NewMatcher(generator, minScore, cfg.Gemini.MaxLogLength, matcherLogger)
	if p := cfg.Gemini.Prompt; p != nil {
		matcher.SetPromptOverrides(gemini.PromptOverrides{
			ExtraCriteria:     p.ExtraCriteria,
			DealBreakers:      p.DealBreakers,
			CustomKeywords:    p.CustomKeywords,
			RegionConstraints: p.RegionConstraints,
			UserInstructions:  p.UserInstructions,
		})
	}

	return matcher, nil
}
