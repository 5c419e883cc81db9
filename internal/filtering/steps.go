package filtering

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/cv-matcher/internal/ai"
	"github.com/spigell/cv-matcher/internal/jobs"
	"github.com/spigell/cv-matcher/internal/logger"
)

// toggle carries the enabled state shared by every step.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

type minScoreFilter struct {
	toggle
	min int
}

// NewMinScore creates a filter that removes matches scoring below the configured minimum.
func NewMinScore() Filter {
	return &minScoreFilter{}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Validate(cfg *Config) error {
	f.min = 0
	if cfg != nil {
		f.min = cfg.MinScore
	}
	if f.min < 0 || f.min > 100 {
		return fmt.Errorf("minimum score must be between 0 and 100, got %d", f.min)
	}
	return nil
}

func (f *minScoreFilter) Apply(_ context.Context, deps Deps, m *jobs.Matches) (*jobs.Matches, Step, error) {
	initial := m.Len()
	if f.min == 0 {
		return m, Step{Initial: initial, Left: initial}, nil
	}

	excluded := m.Remove(func(match *jobs.Match) bool {
		return match.Result.MatchScore < f.min
	})
	if len(excluded) > 0 {
		deps.Logger.Info("excluding jobs below minimum score",
			zap.Int("min_score", f.min),
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", m.Len()),
		)
	}

	return m, Step{Initial: initial, Dropped: len(excluded), Left: m.Len()}, nil
}

func (f *minScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"min_score": strconv.Itoa(f.min)},
	}
}

type employersFilter struct {
	toggle
	employers []string
}

// NewEmployers creates a filter that removes matches by employers configured in the config.
func NewEmployers() Filter {
	return &employersFilter{}
}

func (f *employersFilter) Name() string { return "employers" }

func (f *employersFilter) Validate(cfg *Config) error {
	f.employers = nil
	if cfg == nil {
		return nil
	}
	for _, employer := range cfg.Employers {
		if employer = strings.TrimSpace(employer); employer != "" {
			f.employers = append(f.employers, employer)
		}
	}
	return nil
}

func (f *employersFilter) Apply(_ context.Context, deps Deps, m *jobs.Matches) (*jobs.Matches, Step, error) {
	initial := m.Len()
	if len(f.employers) == 0 {
		return m, Step{Initial: initial, Left: initial}, nil
	}

	excluded := m.Exclude(jobs.EmployerField, f.employers)
	if len(excluded) > 0 {
		deps.Logger.Info("excluding jobs by employers",
			zap.Strings("excluded_employers", f.employers),
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", m.Len()),
		)
	}

	return m, Step{Initial: initial, Dropped: len(excluded), Left: m.Len()}, nil
}

func (f *employersFilter) Status() Status {
	details := map[string]string{}
	if len(f.employers) > 0 {
		details["employers"] = strings.Join(f.employers, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type excludeFileFilter struct {
	toggle
	path string
}

// NewExcludeFile creates a filter that removes matches listed in the exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, m *jobs.Matches) (*jobs.Matches, Step, error) {
	initial := m.Len()
	if f.path == "" {
		return m, Step{Initial: initial, Left: initial}, nil
	}

	excluded, err := jobs.GetExcludedFromFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		deps.Logger.Debug("exclude file does not exist yet", zap.String("path", f.path))
		return m, Step{Initial: initial, Left: initial}, nil
	}
	if err != nil {
		return m, Step{}, fmt.Errorf("getting excluded jobs from file: %w", err)
	}

	removed := m.Exclude(jobs.JobIDField, excluded.IDs())
	if len(removed) > 0 {
		deps.Logger.Info("excluding jobs based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_jobs", removed),
			zap.Int("jobs_left", m.Len()),
		)
	}

	return m, Step{Initial: initial, Dropped: len(removed), Left: m.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type aiFitFilter struct {
	toggle
	config      *AIConfig
	assessments map[string]*ai.FitAssessment
}

// NewAIFit creates the AI-based filtering step.
func NewAIFit() Filter {
	return &aiFitFilter{}
}

func (f *aiFitFilter) Name() string { return "ai_fit" }

func (f *aiFitFilter) Validate(cfg *Config) error {
	f.config = nil
	if cfg != nil {
		f.config = cfg.AI
	}
	if cfg == nil || cfg.AI == nil {
		return errors.New("ai configuration is required when ai filter is enabled")
	}
	if cfg.AI.Gemini == nil {
		return errors.New("gemini configuration is required when ai filter is enabled")
	}
	if strings.TrimSpace(cfg.AI.Gemini.Model) == "" {
		return errors.New("gemini model is required when ai filter is enabled")
	}
	return nil
}

// Apply asks the matcher about every match. Matches the matcher rejects are dropped;
// failed evaluations keep the match and record the error on it.
func (f *aiFitFilter) Apply(ctx context.Context, deps Deps, m *jobs.Matches) (*jobs.Matches, Step, error) {
	initial := m.Len()
	f.assessments = make(map[string]*ai.FitAssessment)

	if deps.Matcher == nil {
		deps.Logger.Info("ai matcher is not configured; skipping ai_fit filter")
		return m, Step{Initial: initial, Left: initial}, nil
	}
	if deps.Resume == nil {
		return m, Step{}, errors.New("resume is required for AI evaluation")
	}

	rejected := m.Remove(func(match *jobs.Match) bool {
		if ctx.Err() != nil {
			return false
		}

		log := deps.Logger.With(zap.String(logger.FieldJobID, match.Posting.ID))
		assessment, err := deps.Matcher.Evaluate(ctx, deps.Resume, match.Posting)
		if err != nil {
			log.Warn("AI evaluation failed", zap.Error(err))
			match.AI = &jobs.AIAssessment{Error: err.Error()}
			return false
		}

		if !assessment.Fit {
			log.Info("job rejected by AI provider",
				zap.Float64("ai_score", assessment.Score),
				zap.String("reason", assessment.Reason),
			)
			return true
		}

		log.Info("job approved by AI", zap.Float64("ai_score", assessment.Score))
		match.AI = assessment.ToJobs()
		f.assessments[match.Posting.ID] = assessment
		return false
	})

	if err := ctx.Err(); err != nil {
		return m, Step{}, err
	}

	return m, Step{Initial: initial, Dropped: len(rejected), Left: m.Len()}, nil
}

func (f *aiFitFilter) Assessments() map[string]*ai.FitAssessment {
	if f.assessments == nil {
		return map[string]*ai.FitAssessment{}
	}
	return f.assessments
}

func (f *aiFitFilter) Status() Status {
	details := map[string]string{}
	if f.config != nil {
		details["minimum_fit_score"] = fmt.Sprintf("%.2f", f.config.MinimumFitScore)
		if f.config.Gemini != nil {
			details["model"] = f.config.Gemini.Model
			details["max_retries"] = strconv.Itoa(f.config.Gemini.MaxRetries)
			details["max_log_length"] = strconv.Itoa(f.config.Gemini.MaxLogLength)
		}
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
