package resume

import (
	"regexp"
	"strings"
)

// certDetector finds one certification type. When detail is set its first group is
// stored as the number (or score) and, for repeatable detectors, every distinct
// value produces its own certification. A number already claimed by an earlier
// detector is never reused.
type certDetector struct {
	kind       string
	presence   *regexp.Regexp
	detail     *regexp.Regexp
	isScore    bool
	repeatable bool
}

var certDetectors = []certDetector{
	{
		kind:       "NCLEX",
		presence:   regexp.MustCompile(`(?i)\bNCLEX(?:-RN|-PN)?\b`),
		detail:     regexp.MustCompile(`(?i)\bNCLEX(?:-RN|-PN)?\b[^\d\n]{0,40}(\d{6,})`),
		repeatable: true,
	},
	{
		kind:       "IELTS",
		presence:   regexp.MustCompile(`(?i)\bIELTS\b`),
		detail:     regexp.MustCompile(`(?i)\bIELTS\b[^\n]{0,50}?\b([1-9](?:\.[05])?)\b`),
		isScore:    true,
		repeatable: true,
	},
	{
		kind:       "PRC License",
		presence:   regexp.MustCompile(`(?im)\bPRC\b|Professional Regulation Commission|(?:^|[ \t,(])(?:Nursing|Nurse|RN)[ \t]+License\b`),
		detail:     regexp.MustCompile(`(?i)(?:\bPRC\b|\bLicense\b)[^\d\n]{0,30}(\d{6,8})\b`),
		repeatable: true,
	},
	{
		kind:     "BLS",
		presence: regexp.MustCompile(`(?i)\bBLS\b|Basic Life Support`),
	},
	{
		kind:     "ACLS",
		presence: regexp.MustCompile(`(?i)\bACLS\b|Advanced Cardi(?:ac|ovascular) Life Support`),
	},
	{
		kind:     "OSCE",
		presence: regexp.MustCompile(`(?i)\bOSCE\b|Objective Structured Clinical Exam`),
	},
	{
		kind:     "NLE",
		presence: regexp.MustCompile(`(?i)\bNLE\b|Nurse Licensure Exam`),
	},
}

func (d certDetector) detect(text string, claimed map[string]struct{}) []Certification {
	if !d.presence.MatchString(text) {
		return nil
	}

	if d.detail == nil {
		return []Certification{{Type: d.kind}}
	}

	var certs []Certification
	seen := make(map[string]struct{})
	for _, m := range d.detail.FindAllStringSubmatch(text, -1) {
		value := m[1]
		if _, ok := seen[value]; ok {
			continue
		}
		if _, ok := claimed[value]; ok && !d.isScore {
			continue
		}
		seen[value] = struct{}{}

		cert := Certification{Type: d.kind}
		if d.isScore {
			cert.Score = value
		} else {
			cert.Number = value
		}
		certs = append(certs, cert)
		if !d.repeatable {
			break
		}
	}

	if len(certs) == 0 {
		return []Certification{{Type: d.kind}}
	}
	return certs
}

var customCertMatchers = buildLexiconMatchers(customCertifications)

// ExtractCertifications runs the known detectors over the whole text, then adds custom
// types listed in a certifications section.
func ExtractCertifications(text string) []Certification {
	var certs []Certification
	found := make(map[string]struct{})
	claimed := make(map[string]struct{})

	for _, d := range certDetectors {
		detected := d.detect(text, claimed)
		if len(detected) > 0 {
			found[strings.ToLower(d.kind)] = struct{}{}
		}
		for _, c := range detected {
			if c.Number != "" {
				claimed[c.Number] = struct{}{}
			}
		}
		certs = append(certs, detected...)
	}

	body, ok := Section(text, SectionCertifications)
	if !ok {
		return certs
	}

	for _, line := range lines(body) {
		for _, m := range customCertMatchers {
			key := strings.ToLower(m.name)
			if _, ok := found[key]; ok {
				continue
			}
			if m.re.MatchString(line) {
				found[key] = struct{}{}
				certs = append(certs, Certification{Type: m.name})
			}
		}
	}

	return certs
}
