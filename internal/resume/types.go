// Package resume turns decoded résumé text into a structured career record.
//
// Every function in this package is pure: no I/O, no shared mutable state and no
// errors for missing data. A field that cannot be found is left empty.
package resume

// PresentSentinel is the end date of an open-ended period.
const PresentSentinel = "Present"

// StructuredResume is the record produced by Extract.
type StructuredResume struct {
	Summary            string            `json:"summary,omitempty"`
	GraduationYear     *int              `json:"graduation_year,omitempty"`
	Certifications     []Certification   `json:"certifications,omitempty"`
	EmployersMentioned []string          `json:"employers_mentioned,omitempty"`
	Skills             []string          `json:"skills,omitempty"`
	SalaryText         string            `json:"salary_text,omitempty"`
	Experience         []ExperienceEntry `json:"experience,omitempty"`
	Education          []EducationEntry  `json:"education,omitempty"`
	YearsOfExperience  *int              `json:"years_of_experience,omitempty"`
}

// Certification is a license, exam or training found in the text.
type Certification struct {
	Type   string `json:"type"`
	Number string `json:"number,omitempty"`
	Score  string `json:"score,omitempty"`
}

// ExperienceEntry is a single employment period.
type ExperienceEntry struct {
	Employer    string `json:"employer,omitempty"`
	Position    string `json:"position,omitempty"`
	Department  string `json:"department,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is a single degree.
type EducationEntry struct {
	Institution         string `json:"institution,omitempty"`
	Degree              string `json:"degree,omitempty"`
	FieldOfStudy        string `json:"field_of_study,omitempty"`
	Year                *int   `json:"year,omitempty"`
	StartDate           string `json:"start_date,omitempty"`
	EndDate             string `json:"end_date,omitempty"`
	Status              string `json:"status,omitempty"`
	InstitutionLocation string `json:"institution_location,omitempty"`
}

// CertificationTypes returns the certification types in discovery order.
func (r *StructuredResume) CertificationTypes() []string {
	types := make([]string, 0, len(r.Certifications))
	for _, c := range r.Certifications {
		types = append(types, c.Type)
	}
	return types
}
