package resume

import (
	"regexp"
	"strings"
)

var (
	spaceRunRe      = regexp.MustCompile(` {2,}`)
	trailingSpaceRe = regexp.MustCompile(`(?m) +$`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
)

// Normalize canonicalizes decoded text: unix line endings, no tabs, single spaces,
// no trailing spaces and at most one blank line between paragraphs.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\t", " ")
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = trailingSpaceRe.ReplaceAllString(s, "")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// lines splits normalized text into lines.
func lines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
