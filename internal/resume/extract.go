package resume

import "time"

// Extractor turns decoded résumé text into a StructuredResume.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	now func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock sets the clock used for open-ended date ranges and the graduation year bound.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

func New(opts ...Option) *Extractor {
	e := &Extractor{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract normalizes raw and runs every field extractor over it.
func (e *Extractor) Extract(raw string) StructuredResume {
	text := Normalize(raw)
	now := e.now()

	var res StructuredResume
	if text == "" {
		return res
	}

	res.Summary, _ = ExtractSummary(text)
	if year, ok := ExtractGraduationYear(text, now.Year()); ok {
		res.GraduationYear = &year
	}
	res.Certifications = ExtractCertifications(text)
	res.EmployersMentioned = ExtractEmployers(text)
	res.Skills = ExtractSkills(text)
	res.SalaryText, _ = ExtractSalary(text)
	res.Experience = ExtractExperience(text)
	res.Education = ExtractEducation(text)
	if years, ok := YearsOfExperience(res.Experience, now); ok {
		res.YearsOfExperience = &years
	}

	return res
}

var defaultExtractor = New()

// Extract runs the default extractor, which uses the wall clock.
func Extract(raw string) StructuredResume {
	return defaultExtractor.Extract(raw)
}
