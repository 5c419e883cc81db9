package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func writeDocument(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestExtractDocumentsKeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeDocument(t, dir, "first.txt", "Licenses\nNCLEX-RN passed\nBLS\n")
	broken := writeDocument(t, dir, "broken.rtf", "{\\rtf1 nurse}")
	second := writeDocument(t, dir, "second.md", "Staff Nurse at Makati Medical Center\n")

	extractor, err := newExtractor(&Config{AsOf: "2023-06"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	docs, failed := extractDocuments(context.Background(), extractor, []string{first, broken, second}, 2, zap.NewNop())
	if failed != 1 {
		t.Fatalf("expected 1 failure, got %d", failed)
	}

	files := make([]string, 0, len(docs))
	for _, d := range docs {
		files = append(files, d.File)
	}
	if diff := cmp.Diff([]string{first, broken, second}, files); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}

	if docs[1].Resume != nil || docs[1].Error == "" {
		t.Fatalf("expected decode error for %s, got %+v", broken, docs[1])
	}

	if docs[0].Resume == nil {
		t.Fatalf("expected resume for %s", first)
	}
	if diff := cmp.Diff([]string{"NCLEX", "BLS"}, docs[0].Resume.CertificationTypes()); diff != "" {
		t.Fatalf("unexpected certifications (-want +got):\n%s", diff)
	}

	if docs[2].Resume == nil || len(docs[2].Resume.EmployersMentioned) != 1 {
		t.Fatalf("expected employer for %s, got %+v", second, docs[2].Resume)
	}
}

func TestNewExtractorAsOf(t *testing.T) {
	tests := []struct {
		name    string
		asOf    string
		wantErr bool
	}{
		{name: "unset", asOf: ""},
		{name: "month", asOf: "2021-06"},
		{name: "full date", asOf: "2021-06-01", wantErr: true},
		{name: "garbage", asOf: "June", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newExtractor(&Config{AsOf: tt.asOf})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewExtractorUsesReferenceMonth(t *testing.T) {
	extractor, err := newExtractor(&Config{AsOf: "2021-06"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record := extractor.Extract("WORK EXPERIENCE\nStaff Nurse\nJanuary 2018 - January 2020\n\nICU Nurse\nJune 2020 - Present\n")
	if record.YearsOfExperience == nil || *record.YearsOfExperience != 3 {
		t.Fatalf("expected 3 years of experience, got %v", record.YearsOfExperience)
	}
}

func TestFilterConfig(t *testing.T) {
	config := &Config{
		Match: &MatchConfig{
			MinScore:    40,
			ExcludeFile: "excluded.json",
			Exclude: &struct {
				Employers []string
			}{Employers: []string{"Acme Hospital"}},
		},
		AI: &AIConfig{Enabled: true, MinimumFitScore: 0.6, Gemini: &GeminiConfig{MaxRetries: 2}},
	}

	cfg := filterConfig(config)
	if cfg.MinScore != 40 || cfg.ExcludeFile != "excluded.json" {
		t.Fatalf("unexpected match settings: %+v", cfg)
	}
	if diff := cmp.Diff([]string{"Acme Hospital"}, cfg.Employers); diff != "" {
		t.Fatalf("unexpected employers (-want +got):\n%s", diff)
	}
	if cfg.AI == nil || cfg.AI.Gemini == nil || cfg.AI.Gemini.Model == "" || cfg.AI.Gemini.MaxRetries != 2 {
		t.Fatalf("unexpected ai settings: %+v", cfg.AI)
	}

	if empty := filterConfig(&Config{}); empty.AI != nil || empty.MinScore != 0 {
		t.Fatalf("expected zero config, got %+v", empty)
	}
}

func TestVersionString(t *testing.T) {
	got := versionString()
	if !strings.HasPrefix(got, app+" "+version+" (") {
		t.Fatalf("unexpected version string: %q", got)
	}
}
