package resume

import "regexp"

const amountPattern = `\d{1,3}(?:,\d{3})+(?:\.\d{2})?|\d+(?:\.\d{2})?[kK]?`

// salaryPatterns are tried in order; the first match wins.
var salaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:(?:expected|desired|current|asking)[ ]+)?salary[ ]*:?[ ]*(?:PHP|Php|₱|P)[ ]?(?:` + amountPattern + `)(?:[ ]*(?:-|–|to)[ ]*(?:PHP|₱|P)?[ ]?(?:` + amountPattern + `))?`),
	regexp.MustCompile(`(?:PHP|₱)[ ]?(?:` + amountPattern + `)(?:[ ]*(?:-|–|to)[ ]*(?:PHP|₱)?[ ]?(?:` + amountPattern + `))?`),
	regexp.MustCompile(`(?:USD|\$)[ ]?(?:` + amountPattern + `)(?:[ ]*(?:-|–|to)[ ]*(?:USD|\$)?[ ]?(?:` + amountPattern + `))?`),
}

// ExtractSalary returns the raw text of the first salary expression found.
func ExtractSalary(text string) (string, bool) {
	for _, re := range salaryPatterns {
		if m := re.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}
