package classify

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTaxonomyIsValid(t *testing.T) {
	taxonomy := DefaultTaxonomy()
	if err := taxonomy.Validate(); err != nil {
		t.Fatalf("embedded taxonomy invalid: %v", err)
	}
	if taxonomy.Fallback != TypeOther {
		t.Fatalf("expected fallback %q, got %q", TypeOther, taxonomy.Fallback)
	}
}

func TestQuestionType(t *testing.T) {
	taxonomy := DefaultTaxonomy()
	cases := []struct {
		question string
		want     QuestionType
	}{
		{"what percentage of total revenue came from services?", TypePercentage},
		{"what was the increase in net sales?", TypeChange},
		{"what was the operating income in 2019?", TypeFactual},
		{"how much cash was used for buybacks?", TypeQuantity},
		{"why did margins contract?", TypeExplanation},
		{"the company reported record results", TypeOther},
		// Order matters: "change" keywords outrank "factual" phrasing.
		{"what was the change in goodwill?", TypeChange},
	}
	for _, tc := range cases {
		if got := taxonomy.QuestionType(tc.question); got != tc.want {
			t.Errorf("QuestionType(%q) = %q, want %q", tc.question, got, tc.want)
		}
	}
}

func TestLoadTaxonomyOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.yaml")
	content := "version: \"1\"\nname: custom\ntypes:\n  - type: ratio\n    keywords: [\"ratio\"]\nfallback: other\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	taxonomy, err := LoadTaxonomy(path)
	if err != nil {
		t.Fatalf("LoadTaxonomy: %v", err)
	}
	if got := taxonomy.QuestionType("what is the current ratio?"); got != QuestionType("ratio") {
		t.Fatalf("got %q, want ratio", got)
	}
}

func TestLoadTaxonomyRejectsMalformedRubric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.yaml")
	if err := os.WriteFile(path, []byte("types: []\nfallback: other\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTaxonomy(path); err == nil {
		t.Fatal("expected validation error for empty types")
	}
	if _, err := LoadTaxonomy(""); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestQuestionDifficulty(t *testing.T) {
	cases := []struct {
		question string
		want     Difficulty
	}{
		{"what was the operating income in 2019?", DifficultySimple},
		{"what was the total debt outstanding?", DifficultyModerate},
		{"what was the difference between 2018 and 2019 revenue?", DifficultyComplex},
		{"what percentage of sales came from asia?", DifficultyComplex},
		{"how much did inventory change year-over-year?", DifficultyComplex},
	}
	for _, tc := range cases {
		if got := QuestionDifficulty(tc.question); got != tc.want {
			t.Errorf("QuestionDifficulty(%q) = %q, want %q", tc.question, got, tc.want)
		}
	}
}
