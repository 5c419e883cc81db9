package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spigell/cv-matcher/internal/matching"
)

// AIAssessment is the advisory AI review attached to a match.
type AIAssessment struct {
	Fit     bool    `json:"fit"`
	Score   float64 `json:"score"`
	Reason  string  `json:"reason,omitempty"`
	Message string  `json:"message,omitempty"`
	Error   string  `json:"error,omitempty"`
}

type Match struct {
	Posting *Posting             `json:"posting"`
	Result  matching.MatchResult `json:"result"`
	AI      *AIAssessment        `json:"ai,omitempty"`
}

// Matches keeps postings in result order.
type Matches struct {
	Items []*Match
}

// NewMatches pairs each result with its posting. Results without a posting are skipped.
func NewMatches(postings *Postings, results []matching.MatchResult) *Matches {
	matches := &Matches{Items: make([]*Match, 0, len(results))}
	for _, result := range results {
		posting := postings.FindByID(result.JobID)
		if posting == nil {
			continue
		}
		matches.Items = append(matches.Items, &Match{Posting: posting, Result: result})
	}
	return matches
}

func (m *Matches) Len() int {
	return len(m.Items)
}

func (m *Matches) FindByJobID(id string) *Match {
	for _, match := range m.Items {
		if match.Posting.ID == id {
			return match
		}
	}
	return nil
}

// IDs returns job IDs in result order.
func (m *Matches) IDs() []string {
	ids := make([]string, 0, len(m.Items))
	for _, match := range m.Items {
		ids = append(ids, match.Posting.ID)
	}
	return ids
}

// Exclude removes every match whose posting field equals one of targets and
// returns the removed job IDs. Order of the remaining matches is kept.
func (m *Matches) Exclude(field string, targets []string) []string {
	set := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		set[target] = struct{}{}
	}

	return m.Remove(func(match *Match) bool {
		_, ok := set[match.Posting.GetStringField(field)]
		return ok
	})
}

// Remove drops matches for which drop returns true and returns their job IDs.
func (m *Matches) Remove(drop func(*Match) bool) []string {
	var removed []string
	m.Items = slices.DeleteFunc(m.Items, func(match *Match) bool {
		if drop(match) {
			removed = append(removed, match.Posting.ID)
			return true
		}
		return false
	})
	return removed
}

// ReportByEmployer groups a short summary of every match by employer name.
func (m *Matches) ReportByEmployer() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, match := range m.Items {
		p := match.Posting
		key := p.Employer
		if key == "" {
			key = "unknown employer"
		}

		entry := map[string]string{
			"title":                  p.Title,
			"url":                    p.URL,
			"location":               p.Location,
			"salary":                 p.Salary,
			"score":                  strconv.Itoa(match.Result.MatchScore),
			"matched certifications": strings.Join(match.Result.MatchedCertifications, ", "),
			"matched skills":         strings.Join(match.Result.MatchedSkills, ", "),
			"experience match":       strconv.FormatBool(match.Result.ExperienceMatch),
		}

		if ai := match.AI; ai != nil {
			if ai.Error != "" {
				entry["ai_error"] = ai.Error
			} else {
				entry["ai_fit"] = strconv.FormatBool(ai.Fit)
				entry["ai_score"] = strconv.FormatFloat(ai.Score, 'f', -1, 64)
				if ai.Reason != "" {
					entry["ai_reason"] = ai.Reason
				}
				if ai.Message != "" {
					entry["ai_message"] = ai.Message
				}
			}
		}

		report[key] = append(report[key], entry)
	}
	return report
}

func (m *Matches) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("encoding matches: %w", err)
	}
	return file.Name(), nil
}

func (m *Matches) ToExcluded() *ExcludedPostings {
	excluded := &ExcludedPostings{}
	now := time.Now().UTC()
	for _, match := range m.Items {
		excluded.Items = append(excluded.Items, &ExcludedPosting{
			ID:         match.Posting.ID,
			URL:        match.Posting.URL,
			Employer:   match.Posting.Employer,
			ExcludedAt: now,
		})
	}
	return excluded
}
