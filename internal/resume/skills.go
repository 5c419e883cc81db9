package resume

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	skillMinLen = 3
	skillMaxLen = 49
)

var (
	bulletRe        = regexp.MustCompile(`^[•\-\*▪●◦·–]+\s*`)
	numberingRe     = regexp.MustCompile(`^\d{1,2}[.)]\s+`)
	categoryLabelRe = regexp.MustCompile(`^[A-Z][A-Za-z /&]{1,30}:\s*`)
	skillSplitRe    = regexp.MustCompile(`[,;]`)
)

var knownSkillMatchers = buildLexiconMatchers(knownSkills)

// ExtractSkills returns lexicon skills found anywhere, then tokens from the skills section.
func ExtractSkills(text string) []string {
	var skills []string
	seen := make(map[string]struct{})

	add := func(skill string) {
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		skills = append(skills, skill)
	}

	for _, m := range knownSkillMatchers {
		if m.re.MatchString(text) {
			add(m.name)
		}
	}

	body, ok := Section(text, SectionSkills)
	if !ok {
		return skills
	}

	for _, line := range lines(body) {
		line = stripBullet(strings.TrimSpace(line))
		line = categoryLabelRe.ReplaceAllString(line, "")

		for _, tok := range skillSplitRe.Split(line, -1) {
			tok = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(tok), "."))
			n := utf8.RuneCountInString(tok)
			if n < skillMinLen || n > skillMaxLen {
				continue
			}
			add(tok)
		}
	}

	return skills
}

// stripBullet removes a leading bullet marker or list number.
func stripBullet(line string) string {
	line = bulletRe.ReplaceAllString(line, "")
	return numberingRe.ReplaceAllString(line, "")
}

func isBulletLine(line string) bool {
	return bulletRe.MatchString(line) || numberingRe.MatchString(line)
}
