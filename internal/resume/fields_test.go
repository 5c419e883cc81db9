package resume

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestExtractSummary(t *testing.T) {
	t.Parallel()

	got, ok := ExtractSummary("Career Objective:\nTo work as a\ncaring  nurse abroad.\n\nEDUCATION\nBSN")
	if !ok {
		t.Fatalf("expected summary")
	}
	if got != "To work as a caring nurse abroad." {
		t.Fatalf("unexpected summary: %q", got)
	}

	if _, ok := ExtractSummary("Objective\nTo work.\nEDUCATION"); ok {
		t.Fatalf("expected short summary to be discarded")
	}
}

func TestExtractGraduationYear(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want int
		ok   bool
	}{
		{name: "keyword line", text: "Bachelor of Science in Nursing, 2016", want: 2016, ok: true},
		{name: "future year ignored", text: "University of Cebu 2099", ok: false},
		{name: "before range ignored", text: "College 1975", ok: false},
		{name: "window after graduated", text: "Graduated with honors\nCum Laude\n2012", want: 2012, ok: true},
		{name: "no keyword", text: "Worked 2015 to 2018", ok: false},
	}

	for _, tc := range cases {
		got, ok := ExtractGraduationYear(tc.text, 2024)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("%s: got (%d, %v), want (%d, %v)", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestExtractCertifications(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want []Certification
	}{
		{
			name: "nclex with number",
			text: "NCLEX-RN passed. License 1234567",
			want: []Certification{{Type: "NCLEX", Number: "1234567"}},
		},
		{
			name: "nclex-rn license is not a prc license",
			text: "NCLEX-RN License No. 1234567",
			want: []Certification{{Type: "NCLEX", Number: "1234567"}},
		},
		{
			name: "prc license keeps its own number",
			text: "NCLEX-RN 12345678\nRN License No. 0654321",
			want: []Certification{{Type: "NCLEX", Number: "12345678"}, {Type: "PRC License", Number: "0654321"}},
		},
		{
			name: "number claimed by nclex is not reused",
			text: "PRC board passer\nNCLEX License 1234567",
			want: []Certification{{Type: "NCLEX", Number: "1234567"}, {Type: "PRC License"}},
		},
		{
			name: "distinct nclex numbers",
			text: "NCLEX 123456\nNCLEX 654321\nNCLEX 123456",
			want: []Certification{{Type: "NCLEX", Number: "123456"}, {Type: "NCLEX", Number: "654321"}},
		},
		{
			name: "ielts score",
			text: "IELTS score: 6.5",
			want: []Certification{{Type: "IELTS", Score: "6.5"}},
		},
		{
			name: "ielts without score",
			text: "IELTS taken",
			want: []Certification{{Type: "IELTS"}},
		},
		{
			name: "bls once",
			text: "BLS\nBasic Life Support refresher\nBLS",
			want: []Certification{{Type: "BLS"}},
		},
		{
			name: "custom types from section",
			text: "CERTIFICATIONS\nPALS Provider\nTOEFL iBT\nOSCE",
			want: []Certification{{Type: "OSCE"}, {Type: "PALS"}, {Type: "TOEFL"}},
		},
		{
			name: "custom type outside section",
			text: "PALS Provider",
		},
		{
			name: "none",
			text: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tc.want, ExtractCertifications(tc.text)); diff != "" {
				t.Fatalf("unexpected certifications (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractEmployers(t *testing.T) {
	t.Parallel()

	text := "Worked at makati medical center and Saint Jude Hospital.\nVolunteer at Saint Jude Hospital"
	want := []string{"Makati Medical Center", "Saint Jude Hospital"}

	if diff := cmp.Diff(want, ExtractEmployers(text)); diff != "" {
		t.Fatalf("unexpected employers (-want +got):\n%s", diff)
	}

	titled := ExtractEmployers("Staff Nurse Perpetual Help Hospital\nRN St. Jude Medical Center")
	if diff := cmp.Diff([]string{"Perpetual Help Hospital", "St. Jude Medical Center"}, titled); diff != "" {
		t.Fatalf("unexpected employers after title strip (-want +got):\n%s", diff)
	}

	if got := ExtractEmployers("Staff nurse at a local clinic"); got != nil {
		t.Fatalf("expected no employers, got %v", got)
	}
}

func TestExtractSkills(t *testing.T) {
	t.Parallel()

	text := "I love triage work.\n\nSKILLS\n• Charting; Documentation\n1. Customer Service\n- IV\nTechnical Skills: Excel, Word\nTriage"
	want := []string{"Triage", "Charting", "Documentation", "Customer Service", "Excel", "Word"}

	if diff := cmp.Diff(want, ExtractSkills(text)); diff != "" {
		t.Fatalf("unexpected skills (-want +got):\n%s", diff)
	}
}

func TestExtractSalary(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want string
		ok   bool
	}{
		{text: "Expected Salary: PHP 35,000 - 40,000", want: "Expected Salary: PHP 35,000 - 40,000", ok: true},
		{text: "Asking ₱25,000 monthly", want: "₱25,000", ok: true},
		{text: "Rate: $3,500 - $4,000", want: "$3,500 - $4,000", ok: true},
		{text: "Salary: PHP 30k. Also USD 2,000", want: "Salary: PHP 30k", ok: true},
		{text: "USD 2,000 or PHP 90,000", want: "PHP 90,000", ok: true},
		{text: "Negotiable", ok: false},
	}

	for _, tc := range cases {
		got, ok := ExtractSalary(tc.text)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ExtractSalary(%q) = (%q, %v), want (%q, %v)", tc.text, got, ok, tc.want, tc.ok)
		}
	}
}

func TestExtractExperience(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want []ExperienceEntry
	}{
		{
			name: "current with department",
			text: "Charge Nurse, ICU\nFeb 2021 to Current",
			want: []ExperienceEntry{{Position: "Charge Nurse", Department: "ICU", StartDate: "Feb 2021", EndDate: PresentSentinel}},
		},
		{
			name: "page separator is skipped",
			text: "Staff Nurse\nJan 2019 - Dec 2020\n• Task one\n\n-- 1 of 2 --\n\n• Task two",
			want: []ExperienceEntry{{
				Position:    "Staff Nurse",
				StartDate:   "Jan 2019",
				EndDate:     "Dec 2020",
				Description: "Task one\nTask two",
			}},
		},
		{
			name: "blank line before prose ends the description",
			text: "Staff Nurse\nJan 2019 - Dec 2020\n• Task one\n\nVolunteer work at the parish\n• Unrelated",
			want: []ExperienceEntry{{
				Position:    "Staff Nurse",
				StartDate:   "Jan 2019",
				EndDate:     "Dec 2020",
				Description: "Task one",
			}},
		},
		{
			name: "department label and generic employer",
			text: "Registered Nurse - Mercy Hospital\nMar 2015 – Apr 2017\nUnit: Cardiac Care\n1. Rounds",
			want: []ExperienceEntry{{
				Employer:    "Mercy Hospital",
				Position:    "Registered Nurse",
				Department:  "Cardiac Care",
				StartDate:   "Mar 2015",
				EndDate:     "Apr 2017",
				Description: "Rounds",
			}},
		},
		{
			name: "unparseable start is dropped",
			text: "Intern\nMar 1899 - Apr 1900",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tc.want, ExtractExperience(tc.text)); diff != "" {
				t.Fatalf("unexpected experience (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractEducation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want []EducationEntry
	}{
		{
			name: "institution on degree line with status",
			text: "EDUCATION\nBachelor of Science in Biology - University of the East, Manila\n2010 - Present\n3rd Year Student",
			want: []EducationEntry{{
				Institution:         "University of the East",
				Degree:              "Bachelor of Science",
				FieldOfStudy:        "Biology",
				StartDate:           "2010-01-01",
				EndDate:             PresentSentinel,
				Status:              "3rd Year Student",
				InstitutionLocation: "Manila",
			}},
		},
		{
			name: "field override without section",
			text: "Master of Science in Nursing\nMajor in: Medical-Surgical Nursing\nSt. Paul University Manila\n2018-2020",
			want: []EducationEntry{{
				Institution:  "St. Paul University Manila",
				Degree:       "Master of Science",
				FieldOfStudy: "Medical-Surgical Nursing",
				Year:         intPtr(2020),
				StartDate:    "2018-01-01",
				EndDate:      "2020-12-31",
			}},
		},
		{
			name: "location line",
			text: "BS in Nursing\nDavao Doctors College\nDavao City, Davao del Sur",
			want: []EducationEntry{{
				Institution:         "Davao Doctors College",
				Degree:              "Bachelor of Science",
				FieldOfStudy:        "Nursing",
				InstitutionLocation: "Davao City, Davao del Sur",
			}},
		},
		{
			name: "no degree",
			text: "EDUCATION\nHigh school diploma",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tc.want, ExtractEducation(tc.text)); diff != "" {
				t.Fatalf("unexpected education (-want +got):\n%s", diff)
			}
		})
	}
}

func TestYearsOfExperience(t *testing.T) {
	t.Parallel()

	now := time.Date(2021, time.June, 15, 0, 0, 0, 0, time.UTC)

	entries := []ExperienceEntry{
		{StartDate: "Jan 2018", EndDate: "Jan 2020"},
		{StartDate: "Jun 2020", EndDate: PresentSentinel},
	}
	if got, ok := YearsOfExperience(entries, now); !ok || got != 3 {
		t.Fatalf("expected 3 years, got (%d, %v)", got, ok)
	}

	inverted := []ExperienceEntry{{StartDate: "Jan 2020", EndDate: "Jan 2018"}}
	if got, ok := YearsOfExperience(inverted, now); !ok || got != 0 {
		t.Fatalf("expected inverted range to clamp to 0, got (%d, %v)", got, ok)
	}

	overlapping := []ExperienceEntry{
		{StartDate: "Jun 2019", EndDate: "Jun 2021"},
		{StartDate: "Jun 2019", EndDate: "Ongoing"},
	}
	if got, _ := YearsOfExperience(overlapping, now); got != 4 {
		t.Fatalf("expected overlapping periods to be summed to 4, got %d", got)
	}

	if _, ok := YearsOfExperience([]ExperienceEntry{{StartDate: "sometime"}}, now); ok {
		t.Fatalf("expected no years without a parseable start")
	}
}
