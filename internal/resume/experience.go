package resume

import (
	"regexp"
	"strings"
)

var (
	dateRangeRe = regexp.MustCompile(
		`(?i)\b(` + monthPattern + `[ ]*\d{4})[ ]*(?:-|–|—|to)[ ]*(` + monthPattern + `[ ]*\d{4}|Present|Current)\b`,
	)
	pageSeparatorRe   = regexp.MustCompile(`^--[ ]*\d+[ ]+of[ ]+\d+[ ]*--$`)
	departmentLabelRe = regexp.MustCompile(`(?i)\b(?:Department|Unit|Ward)[ ]*:[ ]*(.+)$`)
)

// contextOffsets is the order lines around a date range are searched, nearest first.
var contextOffsets = []int{0, -1, 1, -2, 2, 3}

// ExtractExperience returns one entry per date range found, in document order.
func ExtractExperience(text string) []ExperienceEntry {
	all := lines(text)

	var entries []ExperienceEntry
	for i, line := range all {
		m := dateRangeRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if _, ok := ParseDate(m[1]); !ok {
			continue
		}

		entry := ExperienceEntry{
			StartDate: strings.TrimSpace(m[1]),
			EndDate:   strings.TrimSpace(m[2]),
		}
		if IsPresent(entry.EndDate) {
			entry.EndDate = PresentSentinel
		}

		window := contextWindow(all, i)
		entry.Employer = findInWindow(window, employerOf)
		entry.Position = findInWindow(window, positionOf)
		entry.Department = findInWindow(window, departmentOf)
		entry.Description = collectBullets(all[i+1:])

		entries = append(entries, entry)
	}

	return entries
}

func contextWindow(all []string, i int) []string {
	window := make([]string, 0, len(contextOffsets))
	for _, off := range contextOffsets {
		j := i + off
		if j < 0 || j >= len(all) {
			continue
		}
		window = append(window, all[j])
	}
	return window
}

func findInWindow(window []string, find func(string) (string, bool)) string {
	for _, line := range window {
		if v, ok := find(line); ok {
			return v
		}
	}
	return ""
}

func employerOf(line string) (string, bool) {
	if h, ok := findHospital(line); ok {
		return h, true
	}
	return genericEmployer(line)
}

func positionOf(line string) (string, bool) {
	for _, m := range positionTitles {
		if m.re.MatchString(line) {
			return m.name, true
		}
	}
	return "", false
}

func departmentOf(line string) (string, bool) {
	if m := departmentLabelRe.FindStringSubmatch(line); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			return v, true
		}
	}
	for _, m := range departments {
		if m.re.MatchString(line) {
			return m.name, true
		}
	}
	return "", false
}

// collectBullets gathers bullet lines that follow a date range. It stops at a
// section header, the next date range, or a blank line that is not followed by
// more bullets. Normalization leaves at most one blank line in a row, so a blank
// line is where a paragraph gap ends the entry.
func collectBullets(rest []string) string {
	var bullets []string

	for i, line := range rest {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			if !bulletsContinue(rest[i+1:]) {
				return strings.Join(bullets, "\n")
			}
			continue
		case pageSeparatorRe.MatchString(trimmed):
			continue
		case dateRangeRe.MatchString(trimmed), isSectionBoundary(trimmed):
			return strings.Join(bullets, "\n")
		}

		if isBulletLine(trimmed) {
			if b := strings.TrimSpace(stripBullet(trimmed)); b != "" {
				bullets = append(bullets, b)
			}
		}
	}

	return strings.Join(bullets, "\n")
}

// bulletsContinue reports whether the next non-blank line, skipping page
// separators, is a bullet.
func bulletsContinue(rest []string) bool {
	for _, line := range rest {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || pageSeparatorRe.MatchString(trimmed) {
			continue
		}
		return isBulletLine(trimmed)
	}
	return false
}
