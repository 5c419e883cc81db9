package resume

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SectionName identifies a named résumé section.
type SectionName string

const (
	SectionSummary        SectionName = "SUMMARY"
	SectionEducation      SectionName = "EDUCATION"
	SectionExperience     SectionName = "EXPERIENCE"
	SectionSkills         SectionName = "SKILLS"
	SectionCertifications SectionName = "CERTIFICATIONS"
)

// summaryMaxLen bounds an unterminated summary section.
const summaryMaxLen = 500

const (
	headerMinLen     = 10
	headerUpperRatio = 0.7
)

// sectionSpellings lists header spellings per section, longest first.
var sectionSpellings = map[SectionName][]string{
	SectionSummary: {
		"Professional Summary", "Career Objective", "Summary", "Objective", "About Me", "Profile",
	},
	SectionEducation: {
		"Educational Background", "Educational Attainment", "Academic Background", "Education",
	},
	SectionExperience: {
		"Professional Experience", "Employment History", "Work Experience", "Work History",
		"Relevant Experience", "Experience",
	},
	SectionSkills: {
		"Skills and Competencies", "Core Competencies", "Technical Skills", "Clinical Skills",
		"Key Skills", "Competencies", "Skills",
	},
	SectionCertifications: {
		"Licenses and Certifications", "Trainings and Certifications", "Certifications", "Certificates",
		"Licenses",
	},
}

// subLabels are header-looking lines that belong to the enclosing section.
var subLabels = []string{
	"tertiary:", "secondary:", "primary:", "elementary:", "graduate studies:", "post graduate:",
	"vocational:",
}

var (
	sectionHeaderRe = buildSectionHeaders()
	anyHeaderRe     = buildAnyHeader()
)

func headerPattern(spellings []string) string {
	quoted := make([]string, 0, len(spellings))
	for _, s := range spellings {
		quoted = append(quoted, strings.ReplaceAll(regexp.QuoteMeta(s), " ", `[ ]+`))
	}
	return `(?im)^[ ]*(?:` + strings.Join(quoted, "|") + `)[ ]*:?[ ]*$`
}

func buildSectionHeaders() map[SectionName]*regexp.Regexp {
	res := make(map[SectionName]*regexp.Regexp, len(sectionSpellings))
	for name, spellings := range sectionSpellings {
		res[name] = regexp.MustCompile(headerPattern(spellings))
	}
	return res
}

func buildAnyHeader() *regexp.Regexp {
	var all []string
	for _, name := range []SectionName{SectionSummary, SectionEducation, SectionExperience, SectionSkills, SectionCertifications} {
		all = append(all, sectionSpellings[name]...)
	}
	return regexp.MustCompile(headerPattern(all))
}

// Section returns the body of the named section, or false when its header is absent.
func Section(text string, name SectionName) (string, bool) {
	re, ok := sectionHeaderRe[name]
	if !ok {
		return "", false
	}

	loc := re.FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	rest := strings.TrimPrefix(text[loc[1]:], "\n")
	body := rest
	bounded := false

	offset := 0
	for _, line := range strings.SplitAfter(rest, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && isSectionBoundary(trimmed) {
			body = rest[:offset]
			bounded = true
			break
		}
		offset += len(line)
	}

	if !bounded && name == SectionSummary && len(body) > summaryMaxLen {
		body = truncateRunes(body, summaryMaxLen)
	}

	return strings.TrimSpace(body), true
}

func isSectionBoundary(line string) bool {
	if isSubLabel(line) {
		return false
	}
	return isAllCapsHeader(line) || isKnownHeader(line)
}

func isKnownHeader(line string) bool {
	return anyHeaderRe.MatchString(line)
}

func isSubLabel(line string) bool {
	lower := strings.ToLower(line)
	for _, label := range subLabels {
		if strings.HasPrefix(lower, label) {
			return true
		}
	}
	return false
}

// isAllCapsHeader reports whether a trimmed line looks like an upper-case section header.
func isAllCapsHeader(line string) bool {
	if utf8.RuneCountInString(line) < headerMinLen {
		return false
	}

	first, _ := utf8.DecodeRuneInString(line)
	if unicode.IsDigit(first) || !unicode.IsUpper(first) {
		return false
	}

	letters, upper := 0, 0
	for _, r := range line {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters == 0 {
		return false
	}

	return float64(upper)/float64(letters) > headerUpperRatio
}

// truncateRunes cuts s to at most n bytes without splitting a rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
