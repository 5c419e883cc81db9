package resume

import (
	"strings"
	"testing"
)

func TestSection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		text    string
		section SectionName
		want    string
		ok      bool
	}{
		{
			name:    "ends at known header",
			text:    "EDUCATION\n• BSN 2015\n• High School 2011\nSKILLS\nTriage",
			section: SectionEducation,
			want:    "• BSN 2015\n• High School 2011",
			ok:      true,
		},
		{
			name:    "ends at all caps line",
			text:    "Education:\n- item one\nVOLUNTEER ACTIVITIES\nBlood drive",
			section: SectionEducation,
			want:    "- item one",
			ok:      true,
		},
		{
			name:    "sub label does not end section",
			text:    "EDUCATION\nGRADUATE STUDIES:\nMaster of Science in Nursing\n\nSKILLS\nTriage",
			section: SectionEducation,
			want:    "GRADUATE STUDIES:\nMaster of Science in Nursing",
			ok:      true,
		},
		{
			name:    "synonym header",
			text:    "Work History\nStaff Nurse\nJan 2019 - Present",
			section: SectionExperience,
			want:    "Staff Nurse\nJan 2019 - Present",
			ok:      true,
		},
		{
			name:    "runs to end of document",
			text:    "Skills\nTriage, Charting",
			section: SectionSkills,
			want:    "Triage, Charting",
			ok:      true,
		},
		{
			name:    "missing header",
			text:    "Staff Nurse\nJan 2019 - Present",
			section: SectionEducation,
			ok:      false,
		},
		{
			name:    "header must own the line",
			text:    "My education was great",
			section: SectionEducation,
			ok:      false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Section(tc.text, tc.section)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("section = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSectionSummaryCap(t *testing.T) {
	t.Parallel()

	text := "Summary\n" + strings.Repeat("a", 600)
	got, ok := Section(text, SectionSummary)
	if !ok {
		t.Fatalf("expected summary section")
	}
	if len(got) != summaryMaxLen {
		t.Fatalf("expected summary capped at %d, got %d", summaryMaxLen, len(got))
	}
}

func TestIsAllCapsHeader(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"WORK EXPERIENCE":         true,
		"SKILLS":                  false,
		"2019 CONFERENCES":        false,
		"Staff Nurse Position":    false,
		"CPR, BLS AND ACLS Certs": true,
	}

	for line, want := range cases {
		if got := isAllCapsHeader(line); got != want {
			t.Fatalf("isAllCapsHeader(%q) = %v, want %v", line, got, want)
		}
	}
}
