package resume

import (
	"regexp"
	"strconv"
	"strings"
)

// summaryMinLen is the length at or below which a summary is treated as noise.
const summaryMinLen = 20

var whitespaceRe = regexp.MustCompile(`\s+`)

// ExtractSummary returns the professional summary joined into a single paragraph.
func ExtractSummary(text string) (string, bool) {
	body, ok := Section(text, SectionSummary)
	if !ok {
		return "", false
	}

	summary := strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.Join(lines(body), " "), " "))
	if len(summary) <= summaryMinLen {
		return "", false
	}

	return summary, true
}

const minGraduationYear = 1980

var (
	educationKeywordRe = regexp.MustCompile(`(?i)graduat|\bBSN\b|bachelor|nursing|degree|university|college`)
	graduateKeywordRe  = regexp.MustCompile(`(?i)graduat`)
	gradYearRe         = regexp.MustCompile(`\b(19[89]\d|20\d{2})\b`)
)

// ExtractGraduationYear returns the first plausible graduation year found near an
// education keyword.
func ExtractGraduationYear(text string, currentYear int) (int, bool) {
	all := lines(text)

	for _, line := range all {
		if !educationKeywordRe.MatchString(line) {
			continue
		}
		if year, ok := yearInRange(line, currentYear); ok {
			return year, true
		}
	}

	for i, line := range all {
		if !graduateKeywordRe.MatchString(line) {
			continue
		}
		for j := max(0, i-1); j < min(len(all), i+3); j++ {
			if year, ok := yearInRange(all[j], currentYear); ok {
				return year, true
			}
		}
	}

	return 0, false
}

func yearInRange(line string, currentYear int) (int, bool) {
	for _, m := range gradYearRe.FindAllString(line, -1) {
		year, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if year >= minGraduationYear && year <= currentYear {
			return year, true
		}
	}
	return 0, false
}
