package resume

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "line endings", in: "a\r\nb\rc", want: "a\nb\nc"},
		{name: "tabs and spaces", in: "a\t\tb   c", want: "a b c"},
		{name: "trailing spaces", in: "a   \nb ", want: "a\nb"},
		{name: "blank runs", in: "a\n\n\n\nb", want: "a\n\nb"},
		{name: "whitespace only lines", in: "  \n a \n ", want: "a"},
		{name: "blank run with spaces", in: "a\n \n\t\n\nb", want: "a\n\nb"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"a\r\n\r\n\r\n\r\nb",
		"\t\tSUMMARY \t\n\n\n  text\r",
		" \n \n \n x \n \n \n ",
		sampleResume,
	}

	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("normalize is not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}
