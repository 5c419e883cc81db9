package resume

import (
	"regexp"
	"strconv"
	"strings"
)

// degreeRule recognises one degree shape. build turns the submatches into the
// degree name and field of study.
type degreeRule struct {
	re    *regexp.Regexp
	build func(m []string) (degree, field string)
}

// fieldPattern captures space-separated words; a lone dash ends the field.
const fieldPattern = `([A-Za-z][A-Za-z&-]*(?:[ ]+[A-Za-z&][A-Za-z&-]*)*)`

var degreeRules = []degreeRule{
	{
		re: regexp.MustCompile(`(?i)\bBachelor of Science in Nursing\b|\bB\.?S\.?N\.?\b`),
		build: func([]string) (string, string) {
			return "Bachelor of Science in Nursing", "Nursing"
		},
	},
	{
		re: regexp.MustCompile(`(?i)\bBachelor of (Science|Arts)(?:[ ]+(?:in|of))?[ ]+` + fieldPattern),
		build: func(m []string) (string, string) {
			return "Bachelor of " + titleWord(m[1]), cleanField(m[2])
		},
	},
	{
		re: regexp.MustCompile(`\bB\.?([SA])\.?[ ]+in[ ]+` + fieldPattern),
		build: func(m []string) (string, string) {
			return "Bachelor of " + scienceOrArts(m[1]), cleanField(m[2])
		},
	},
	{
		re: regexp.MustCompile(`(?i)\bMaster of Business Administration\b|\bMBA\b`),
		build: func([]string) (string, string) {
			return "Master of Business Administration", "Business Administration"
		},
	},
	{
		re: regexp.MustCompile(`\bMSN\b`),
		build: func([]string) (string, string) {
			return "Master of Science in Nursing", "Nursing"
		},
	},
	{
		re: regexp.MustCompile(`(?i)\bMaster of (Science|Arts)(?:[ ]+(?:in|of))?[ ]+` + fieldPattern),
		build: func(m []string) (string, string) {
			return "Master of " + titleWord(m[1]), cleanField(m[2])
		},
	},
	{
		re: regexp.MustCompile(`\bM\.?([SA])\.?[ ]+in[ ]+` + fieldPattern),
		build: func(m []string) (string, string) {
			return "Master of " + scienceOrArts(m[1]), cleanField(m[2])
		},
	},
	{
		re: regexp.MustCompile(`(?i)\b(?:Ph\.?[ ]?D\.?|Doctorate|Doctor of Philosophy)(?:[ ]+(?:in|of)[ ]+` + fieldPattern + `)?`),
		build: func(m []string) (string, string) {
			return "Doctor of Philosophy", cleanField(m[1])
		},
	},
	{
		re: regexp.MustCompile(`(?i)\bAssociate(?:'s)?(?:[ ]+Degree)?[ ]+(?:of|in)[ ]+(Science|Arts)(?:[ ]+in[ ]+` + fieldPattern + `)?`),
		build: func(m []string) (string, string) {
			return "Associate of " + titleWord(m[1]), cleanField(m[2])
		},
	},
	{
		re: regexp.MustCompile(`\b([A-Z][a-z]+(?:[ ]+[A-Z][a-z]+)?)[ ]+Engineering Technology\b`),
		build: func(m []string) (string, string) {
			field := m[1] + " Engineering Technology"
			return field, field
		},
	},
}

var (
	fieldOverrideRe = regexp.MustCompile(
		`(?i)\b(?:Focus on|Majoring in|Major in|Specializing in|Specialization|Concentration|Emphasis)(?:[ ]+(?:in|on))?[ ]*:?[ ]*` + fieldPattern,
	)
	studentStatusRe  = regexp.MustCompile(`(?i)\b[1-5](?:st|nd|rd|th)[ ]+Year[ ]+Student\b`)
	institutionRe    = regexp.MustCompile(`(?i)\b(?:University|College|Institute|School|Academy|Polytechnic)\b`)
	locationLineRe   = regexp.MustCompile(`^[A-Z][A-Za-z.' -]*(?:,[ ]*[A-Z][A-Za-z.' -]*)+$`)
	yearRangeRe      = regexp.MustCompile(`(?i)\b((?:19|20)\d{2})[ ]*(?:-|–|—|to)[ ]*((?:19|20)\d{2}|Present|Current)\b`)
	trailingYearsRe  = regexp.MustCompile(`(?i)[ ,(|-]*\b(?:19|20)\d{2}\b(?:[ ]*(?:-|–|—|to)[ ]*(?:(?:19|20)\d{2}|Present|Current)\b)?[ )]*`)
	fieldTerminators = regexp.MustCompile(`(?i)[ ]+(?:at|from|with)[ ]+.*$`)
)

// ExtractEducation returns one entry per recognised degree line in the education
// section, or in the whole text when there is no such section.
func ExtractEducation(text string) []EducationEntry {
	body, ok := Section(text, SectionEducation)
	if !ok {
		body = text
	}
	all := lines(body)

	var entries []EducationEntry
	for i, line := range all {
		entry, ok := matchDegree(line)
		if !ok {
			continue
		}

		if field, ok := searchForward(all, i, 4, fieldOverride); ok {
			entry.FieldOfStudy = field
		}
		if status, ok := searchForward(all, i, 4, studentStatus); ok {
			entry.Status = status
		}

		instIdx := -1
		for _, j := range []int{i, i + 1, i - 1, i + 2, i + 3} {
			if j < 0 || j >= len(all) {
				continue
			}
			name, loc, ok := institutionOf(all[j], j == i)
			if !ok {
				continue
			}
			entry.Institution = name
			entry.InstitutionLocation = loc
			instIdx = j
			break
		}

		if entry.InstitutionLocation == "" {
			for j := i; j < min(len(all), i+5); j++ {
				if j == instIdx {
					continue
				}
				if loc, ok := locationOf(all[j]); ok {
					entry.InstitutionLocation = loc
					break
				}
			}
		}

		applyYearRange(&entry, all, i)
		entries = append(entries, entry)
	}

	return entries
}

func matchDegree(line string) (EducationEntry, bool) {
	for _, rule := range degreeRules {
		m := rule.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		degree, field := rule.build(m)
		return EducationEntry{Degree: degree, FieldOfStudy: field}, true
	}
	return EducationEntry{}, false
}

// searchForward applies find to lines i..i+n-1 and returns the first hit.
func searchForward(all []string, i, n int, find func(string) (string, bool)) (string, bool) {
	for j := i; j < min(len(all), i+n); j++ {
		if v, ok := find(all[j]); ok {
			return v, true
		}
	}
	return "", false
}

func fieldOverride(line string) (string, bool) {
	m := fieldOverrideRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	field := cleanField(m[1])
	return field, field != ""
}

func studentStatus(line string) (string, bool) {
	m := studentStatusRe.FindString(line)
	return m, m != ""
}

// institutionOf cleans an institution line. Trailing comma-separated parts that
// name a city or region are returned as the location.
func institutionOf(line string, isDegreeLine bool) (string, string, bool) {
	trimmed := strings.TrimSpace(stripBullet(strings.TrimSpace(line)))
	if !institutionRe.MatchString(trimmed) || isAllCapsHeader(trimmed) {
		return "", "", false
	}

	if isDegreeLine {
		// Keep only the part after the degree, e.g. "BSN - Cebu Doctors' University".
		for _, rule := range degreeRules {
			if loc := rule.re.FindStringIndex(trimmed); loc != nil {
				trimmed = strings.TrimLeft(trimmed[loc[1]:], " ,|-–")
				break
			}
		}
		if !institutionRe.MatchString(trimmed) {
			return "", "", false
		}
	}

	trimmed = strings.TrimSpace(trailingYearsRe.ReplaceAllString(trimmed, " "))

	parts := strings.Split(trimmed, ",")
	keep := len(parts)
	for keep > 1 && containsCityKeyword(parts[keep-1]) {
		keep--
	}

	name := strings.Trim(strings.Join(parts[:keep], ","), " -|")
	if name == "" {
		return "", "", false
	}

	var loc []string
	for _, p := range parts[keep:] {
		if p = strings.TrimSpace(p); p != "" {
			loc = append(loc, p)
		}
	}

	return name, strings.Join(loc, ", "), true
}

func locationOf(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if institutionRe.MatchString(trimmed) || !locationLineRe.MatchString(trimmed) || !containsCityKeyword(trimmed) {
		return "", false
	}
	return trimmed, true
}

// applyYearRange looks for a year range in lines i-1..i+5. A closed range also
// sets the graduation year; a degree without a range may still carry a lone year.
func applyYearRange(entry *EducationEntry, all []string, i int) {
	for j := max(0, i-1); j < min(len(all), i+6); j++ {
		m := yearRangeRe.FindStringSubmatch(all[j])
		if m == nil {
			continue
		}

		entry.StartDate = m[1] + "-01-01"
		if IsPresent(m[2]) {
			entry.EndDate = PresentSentinel
			return
		}

		entry.EndDate = m[2] + "-12-31"
		if year, err := strconv.Atoi(m[2]); err == nil {
			entry.Year = &year
		}
		return
	}

	for j := i; j < min(len(all), i+2); j++ {
		if m := yearRe.FindString(all[j]); m != "" {
			if year, err := strconv.Atoi(m); err == nil {
				entry.Year = &year
			}
			return
		}
	}
}

func cleanField(s string) string {
	s = fieldTerminators.ReplaceAllString(s, "")
	return strings.Trim(s, " &-")
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func scienceOrArts(letter string) string {
	if letter == "A" {
		return "Arts"
	}
	return "Science"
}
