// Package matching scores candidates against job requirements.
package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/spigell/cv-matcher/internal/resume"
)

// Component weights. They sum to 100.
const (
	ExperienceWeight     = 30
	CertificationsWeight = 40
	SkillsWeight         = 30
)

// JobRequirement is what a posting asks of a candidate.
type JobRequirement struct {
	JobID                  string   `json:"job_id" mapstructure:"-"`
	RequiredCertifications []string `json:"required_certifications,omitempty" mapstructure:"certifications"`
	RequiredSkills         []string `json:"required_skills,omitempty" mapstructure:"skills"`
	MinExperienceYears     int      `json:"min_experience_years,omitempty" mapstructure:"min-experience-years"`
}

// CandidateAttributes is what a candidate brings.
type CandidateAttributes struct {
	Certifications    []string `json:"certifications,omitempty" mapstructure:"certifications"`
	Skills            []string `json:"skills,omitempty" mapstructure:"skills"`
	YearsOfExperience int      `json:"years_of_experience" mapstructure:"years-of-experience"`
}

// MatchResult is the score of one job for a candidate, with the requirements that matched.
type MatchResult struct {
	JobID                 string   `json:"job_id"`
	MatchScore            int      `json:"match_score"`
	MatchedCertifications []string `json:"matched_certifications"`
	MatchedSkills         []string `json:"matched_skills"`
	ExperienceMatch       bool     `json:"experience_match"`
}

// Score computes the match of one candidate against one job.
func Score(candidate CandidateAttributes, job JobRequirement) MatchResult {
	expPoints, expMatch := experienceScore(candidate.YearsOfExperience, job.MinExperienceYears)
	certPoints, certs := listScore(candidate.Certifications, job.RequiredCertifications, CertificationsWeight)
	skillPoints, skills := listScore(candidate.Skills, job.RequiredSkills, SkillsWeight)

	return MatchResult{
		JobID:                 job.JobID,
		MatchScore:            expPoints + certPoints + skillPoints,
		MatchedCertifications: certs,
		MatchedSkills:         skills,
		ExperienceMatch:       expMatch,
	}
}

// MatchJobs scores every job and orders the results by score, highest first.
// Jobs with equal scores keep their input order.
func MatchJobs(candidate CandidateAttributes, jobs []JobRequirement) []MatchResult {
	results := make([]MatchResult, 0, len(jobs))
	for _, job := range jobs {
		results = append(results, Score(candidate, job))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	return results
}

func experienceScore(have, need int) (int, bool) {
	if have >= need {
		return ExperienceWeight, true
	}
	if have > 0 && need > 0 {
		ratio := math.Min(float64(have)/float64(need), 1)
		return int(math.Round(ExperienceWeight * ratio)), false
	}
	return 0, false
}

// listScore counts requirements matched by any candidate value in either
// direction of substring containment.
func listScore(have, required []string, weight int) (int, []string) {
	reqs := normalizeList(required)
	matched := make([]string, 0)
	if len(reqs) == 0 {
		return weight, matched
	}

	values := normalizeList(have)
	for _, req := range reqs {
		for _, v := range values {
			if strings.Contains(req, v) || strings.Contains(v, req) {
				matched = append(matched, req)
				break
			}
		}
	}

	ratio := float64(len(matched)) / float64(len(reqs))
	return int(math.Round(float64(weight) * ratio)), matched
}

// normalizeList lower-cases and trims values, dropping blanks.
func normalizeList(values []string) []string {
	res := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		res = append(res, v)
	}
	return res
}

// CandidateFromResume derives candidate attributes from an extracted résumé.
func CandidateFromResume(r resume.StructuredResume) CandidateAttributes {
	c := CandidateAttributes{
		Certifications: dedupe(r.CertificationTypes()),
		Skills:         dedupe(r.Skills),
	}
	if r.YearsOfExperience != nil {
		c.YearsOfExperience = *r.YearsOfExperience
	}
	return c
}

// Merge combines two attribute sets: lists are joined without case-insensitive
// duplicates and the larger experience wins.
func (c CandidateAttributes) Merge(other CandidateAttributes) CandidateAttributes {
	return CandidateAttributes{
		Certifications:    dedupe(append(append([]string{}, c.Certifications...), other.Certifications...)),
		Skills:            dedupe(append(append([]string{}, c.Skills...), other.Skills...)),
		YearsOfExperience: max(c.YearsOfExperience, other.YearsOfExperience),
	}
}

func dedupe(values []string) []string {
	var res []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		res = append(res, v)
	}
	return res
}
