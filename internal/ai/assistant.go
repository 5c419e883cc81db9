// Package ai defines the optional advisory review of a résumé against a posting.
package ai

import (
	"context"

	"github.com/spigell/cv-matcher/internal/jobs"
	"github.com/spigell/cv-matcher/internal/resume"
)

type FitAssessment struct {
	Fit     bool
	Score   float64
	Reason  string
	Message string
	Raw     string
}

// Matcher reviews one résumé against one posting. It never changes the rule-based match score.
type Matcher interface {
	Evaluate(ctx context.Context, r *resume.StructuredResume, posting *jobs.Posting) (*FitAssessment, error)
}

// ToJobs converts the assessment into the form stored on a match.
func (a *FitAssessment) ToJobs() *jobs.AIAssessment {
	if a == nil {
		return nil
	}
	return &jobs.AIAssessment{
		Fit:     a.Fit,
		Score:   a.Score,
		Reason:  a.Reason,
		Message: a.Message,
	}
}
