package resume

import (
	"regexp"
	"strings"
)

const (
	employerMinLen = 10
	employerMaxLen = 80
)

// genericHospitalRe matches capitalized word runs ending in a facility suffix,
// e.g. "Ospital ng Lungsod Medical Center".
var genericHospitalRe = regexp.MustCompile(
	`\b[A-Z][A-Za-z.'&-]*(?:[ ]+(?:[A-Z][A-Za-z.'&-]*|of|de|ng|and|the))*[ ]+(?:Hospital|Medical Center|Health Center|Medical Centre)\b`,
)

// ExtractEmployers returns known institutions first, in lexicon order, followed by
// generic facility names in document order. Identity is case-insensitive.
func ExtractEmployers(text string) []string {
	var employers []string
	seen := make(map[string]struct{})

	add := func(name string) {
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		employers = append(employers, name)
	}

	lower := strings.ToLower(text)
	for _, h := range knownHospitals {
		if strings.Contains(lower, strings.ToLower(h)) {
			add(h)
		}
	}

	for _, m := range genericHospitalRe.FindAllString(text, -1) {
		m = stripLeadingTitle(strings.TrimSpace(m))
		if len(m) < employerMinLen || len(m) > employerMaxLen {
			continue
		}
		if capturedByLexicon(m, employers) {
			continue
		}
		add(m)
	}

	return employers
}

// capturedByLexicon reports whether a generic match overlaps an already known name.
func capturedByLexicon(match string, found []string) bool {
	lm := strings.ToLower(match)
	for _, f := range found {
		lf := strings.ToLower(f)
		if strings.Contains(lm, lf) || strings.Contains(lf, lm) {
			return true
		}
	}
	return false
}

// genericEmployer returns the first generic facility name in a single line.
func genericEmployer(line string) (string, bool) {
	m := stripLeadingTitle(genericHospitalRe.FindString(line))
	if len(m) < employerMinLen || len(m) > employerMaxLen {
		return "", false
	}
	return m, true
}

// stripLeadingTitle drops position titles that the capitalized run swallowed,
// as in "Staff Nurse Perpetual Help Hospital".
func stripLeadingTitle(name string) string {
	for _, t := range positionTitles {
		loc := t.re.FindStringIndex(name)
		if loc != nil && loc[0] == 0 {
			return strings.TrimLeft(name[loc[1]:], " ")
		}
	}
	return name
}
