package resume

import (
	"regexp"
	"strings"
	"unicode"
)

// Read-only lexicons. They are built once at package init and never mutated.

// knownHospitals holds canonical spellings of institutions matched by substring.
var knownHospitals = []string{
	"St. Luke's Medical Center",
	"The Medical City",
	"Makati Medical Center",
	"Philippine General Hospital",
	"Asian Hospital and Medical Center",
	"Cardinal Santos Medical Center",
	"Manila Doctors Hospital",
	"Chinese General Hospital",
	"Philippine Heart Center",
	"National Kidney and Transplant Institute",
	"Lung Center of the Philippines",
	"Veterans Memorial Medical Center",
	"East Avenue Medical Center",
	"Jose R. Reyes Memorial Medical Center",
	"Vicente Sotto Memorial Medical Center",
	"Southern Philippines Medical Center",
	"Perpetual Succour Hospital",
	"Chong Hua Hospital",
	"Davao Doctors Hospital",
	"Quirino Memorial Medical Center",
	"Ospital ng Maynila",
	"Capitol Medical Center",
	"University of Santo Tomas Hospital",
	"Hamad Medical Corporation",
	"King Faisal Specialist Hospital",
	"Cleveland Clinic Abu Dhabi",
	"Mayo Clinic",
}

// knownSkills holds clinical skill phrases matched by substring over the whole text.
var knownSkills = []string{
	"Patient Assessment",
	"Medication Administration",
	"IV Therapy",
	"IV Insertion",
	"Wound Care",
	"Vital Signs Monitoring",
	"Infection Control",
	"Patient Education",
	"Health Teaching",
	"Electronic Health Records",
	"Electronic Medical Records",
	"Phlebotomy",
	"Catheterization",
	"Nasogastric Tube Insertion",
	"Blood Transfusion",
	"Cardiac Monitoring",
	"ECG Interpretation",
	"Ventilator Management",
	"Critical Care",
	"Emergency Care",
	"Triage",
	"Pediatric Care",
	"Geriatric Care",
	"Maternal Care",
	"Neonatal Care",
	"Post-operative Care",
	"Pre-operative Care",
	"Sterile Technique",
	"Pain Management",
	"Care Planning",
	"Discharge Planning",
	"First Aid",
	"CPR",
	"Dialysis",
	"Chemotherapy Administration",
	"Tracheostomy Care",
	"Case Management",
	"Time Management",
	"Critical Thinking",
	"Team Collaboration",
}

// customCertifications are certification types recognised inside a certifications section.
var customCertifications = []string{
	"PALS",
	"NRP",
	"TNCC",
	"CCRN",
	"IV Therapy",
	"Wound Care",
	"Chemotherapy",
	"Hemodialysis",
	"Infection Control",
	"Mechanical Ventilation",
	"ECG",
	"Phlebotomy",
	"First Aid",
	"OET",
	"TOEFL",
	"CGFNS",
	"VisaScreen",
	"DHA License",
	"HAAD License",
	"MOH License",
	"Prometric",
}

// positionTitles are nursing titles, most specific first; acronyms match case-sensitively.
var positionTitles = buildLexiconMatchers([]string{
	"Medical-Surgical Nurse",
	"Private Duty Nurse",
	"Registered Nurse",
	"Nurse Supervisor",
	"Nurse Manager",
	"Nurse Educator",
	"Clinical Nurse",
	"Charge Nurse",
	"Staff Nurse",
	"Head Nurse",
	"Ward Nurse",
	"ICU Nurse",
	"OR Nurse",
	"ER Nurse",
	"RN",
})

// departments are hospital units; acronyms match case-sensitively.
var departments = buildLexiconMatchers([]string{
	"Neonatal Intensive Care Unit",
	"Intensive Care Unit",
	"Emergency Department",
	"Emergency Room",
	"Operating Room",
	"Delivery Room",
	"Medical-Surgical Ward",
	"Surgical Ward",
	"Medical Ward",
	"Pediatric Ward",
	"Oncology Ward",
	"Dialysis Unit",
	"Out-Patient Department",
	"NICU",
	"PICU",
	"ICU",
	"OPD",
})

type lexiconMatcher struct {
	name string
	re   *regexp.Regexp
}

func buildLexiconMatchers(names []string) []lexiconMatcher {
	res := make([]lexiconMatcher, 0, len(names))
	for _, name := range names {
		pattern := `\b` + regexp.QuoteMeta(name) + `\b`
		if !isAcronymLed(name) {
			pattern = `(?i)` + pattern
		}
		res = append(res, lexiconMatcher{name: name, re: regexp.MustCompile(pattern)})
	}
	return res
}

// isAcronymLed reports whether the first word of name is an upper-case acronym such as "ICU".
func isAcronymLed(name string) bool {
	first, _, _ := strings.Cut(name, " ")
	if len(first) < 2 {
		return false
	}
	for _, r := range first {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// cityKeywords mark a location line or an institution suffix.
var cityKeywords = []string{
	"City", "Manila", "Quezon", "Makati", "Pasig", "Taguig", "Cebu", "Davao", "Iloilo", "Baguio",
	"Laguna", "Cavite", "Batangas", "Pampanga", "Bulacan", "Rizal", "Metro", "Province", "Region",
	"Philippines", "NCR",
}

var cityKeywordRe = regexp.MustCompile(`\b(?:` + strings.Join(cityKeywords, "|") + `)\b`)

func containsCityKeyword(s string) bool {
	return cityKeywordRe.MatchString(s)
}

// findHospital returns the canonical spelling of the first known hospital in s.
func findHospital(s string) (string, bool) {
	lower := strings.ToLower(s)
	for _, h := range knownHospitals {
		if strings.Contains(lower, strings.ToLower(h)) {
			return h, true
		}
	}
	return "", false
}
