package report

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"finqa/internal/classify"
	"finqa/internal/metrics"
	"finqa/internal/qa"
	"finqa/internal/runner"
	"finqa/internal/scoring"
)

func fixtureResult(t *testing.T) *runner.RunResult {
	t.Helper()
	classifier, err := scoring.NewClassifier(scoring.DefaultThresholds())
	if err != nil {
		t.Fatal(err)
	}

	type qaCase struct {
		question   string
		truth      string
		prediction string
		qtype      classify.QuestionType
		difficulty classify.Difficulty
		hit        bool
	}
	cases := []qaCase{
		{
			question:   "what was the percentage change in revenue from 2008 to 2009?",
			truth:      "14.1%",
			prediction: "14.1%",
			qtype:      classify.TypePercentage,
			difficulty: classify.DifficultyComplex,
			hit:        true,
		},
		{
			question:   "what was the total debt in 2010?",
			truth:      "$1,878 million",
			prediction: "$2,000 million",
			qtype:      classify.TypeQuantity,
			difficulty: classify.DifficultySimple,
			hit:        true,
		},
		{
			question:   "who audited the financial statements?",
			truth:      "ernst and young",
			prediction: "deloitte",
			qtype:      classify.TypeFactual,
			difficulty: classify.DifficultySimple,
			hit:        false,
		},
	}

	records := make([]runner.Record, len(cases))
	results := make([]metrics.Result, len(cases))
	for i, c := range cases {
		verdict := classifier.Classify(c.truth, c.prediction)
		res := metrics.Result{
			Question:   c.question,
			Type:       c.qtype,
			Difficulty: c.difficulty,
			Verdict:    verdict,
			Latency:    time.Duration(i+1) * time.Second,
		}
		records[i] = runner.Record{
			Index:        i,
			Question:     c.question,
			GroundTruth:  c.truth,
			RetrievalHit: c.hit,
			Prediction:   qa.Prediction{Answer: c.prediction, Latency: res.Latency},
			Result:       res,
		}
		results[i] = res
	}

	usage := qa.TokenUsage{PromptTokens: 300, CompletionTokens: 90, TotalTokens: 390}
	return &runner.RunResult{
		RunID:      "test-run",
		Model:      "gpt-4o",
		StartedAt:  time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		Duration:   6 * time.Second,
		CorpusSize: 10,
		Evaluated:  len(records),
		Records:    records,
		Report:     metrics.Aggregate(results),
		Usage:      usage,
		Cost:       qa.CostReport{Model: "gpt-4o", PromptCost: 0.00075, CompletionCost: 0.0009, TotalCost: 0.00165},
	}
}

func TestRenderContainsCoreSections(t *testing.T) {
	reporter := &MarkdownReporter{}
	out := reporter.Render(fixtureResult(t))

	for _, want := range []string{
		"# Financial QA Evaluation Report",
		"**Run ID:** test-run",
		"## Summary",
		"## Accuracy by Question Type",
		"## Accuracy by Difficulty",
		"## Error Analysis",
		"## Response Time",
		"## Token Usage and Cost",
		"## Sample Answers",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderSummaryNumbers(t *testing.T) {
	reporter := &MarkdownReporter{}
	out := reporter.Render(fixtureResult(t))

	// One correct of three.
	if !strings.Contains(out, "**Accuracy:** 33.3%") {
		t.Errorf("accuracy line missing or wrong:\n%s", out)
	}
	if !strings.Contains(out, "**Retrieval Hit Rate:** 66.7% (2/3)") {
		t.Errorf("retrieval hit rate missing or wrong")
	}
	if !strings.Contains(out, "**Total Tokens:** 390") {
		t.Errorf("token usage missing")
	}
}

func TestRenderErrorTable(t *testing.T) {
	reporter := &MarkdownReporter{}
	out := reporter.Render(fixtureResult(t))

	// 1878 vs 2000 differ by ~6%, a minor calculation error.
	if !strings.Contains(out, scoring.ErrorKindMinorCalc) {
		t.Errorf("minor calculation error row missing:\n%s", out)
	}
	// Text mismatch gets a readable diff.
	if !strings.Contains(out, "### Text Mismatches") {
		t.Errorf("text mismatch detail missing")
	}
	if !strings.Contains(out, "ernst and young") {
		t.Errorf("mismatch expected value missing")
	}
}

func TestRenderEmptyRun(t *testing.T) {
	empty := &runner.RunResult{
		RunID:   "empty",
		Model:   "gpt-4o",
		Report:  metrics.Aggregate(nil),
		Records: nil,
	}
	reporter := &MarkdownReporter{}
	out := reporter.Render(empty)
	if !strings.Contains(out, "no data") {
		t.Errorf("empty run should render no-data markers:\n%s", out)
	}
	if !strings.Contains(out, "No incorrect answers.") {
		t.Errorf("empty run should have an empty error section")
	}
}

func TestSaveWritesBothFiles(t *testing.T) {
	dir := t.TempDir()
	mdPath, jsonPath, err := Save(fixtureResult(t), dir)
	if err != nil {
		t.Fatal(err)
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(md), "# Financial QA Evaluation Report") {
		t.Error("markdown file missing header")
	}

	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		RunID   string `json:"run_id"`
		Summary struct {
			Accuracy  *float64 `json:"accuracy"`
			Incorrect int      `json:"incorrect"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.RunID != "test-run" {
		t.Errorf("run_id = %q", decoded.RunID)
	}
	if decoded.Summary.Accuracy == nil || decoded.Summary.Incorrect != 2 {
		t.Errorf("summary = %+v", decoded.Summary)
	}
}
