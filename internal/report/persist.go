package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"finqa/internal/runner"
	"finqa/internal/scoring"
)

// summary is the JSON shape of the aggregate numbers. Rates that have no data
// are emitted as null so downstream tooling can distinguish "0%" from "no
// examples".
type summary struct {
	Accuracy       *float64 `json:"accuracy"`
	ExactMatchRate *float64 `json:"exact_match_rate"`
	F1Score        *float64 `json:"f1_score"`
	MAPE           *float64 `json:"mape"`
	MAPEExcluded   int      `json:"mape_excluded"`

	ExactMatches  int `json:"exact_matches"`
	CloseMatches  int `json:"close_matches"`
	Incorrect     int `json:"incorrect"`
	RetrievalHits int `json:"retrieval_hits"`
}

type persisted struct {
	*runner.RunResult
	Summary summary `json:"summary"`
}

func buildSummary(result *runner.RunResult) summary {
	rep := result.Report
	s := summary{
		ExactMatches:  rep.CategoryCount(scoring.CategoryExactMatch),
		CloseMatches:  rep.CategoryCount(scoring.CategoryCloseMatch),
		Incorrect:     rep.CategoryCount(scoring.CategoryIncorrect),
		RetrievalHits: result.RetrievalHits(),
	}
	if v, ok := rep.Accuracy(); ok {
		s.Accuracy = &v
	}
	if v, ok := rep.ExactMatchRate(); ok {
		s.ExactMatchRate = &v
	}
	if v, ok := rep.F1Score(); ok {
		s.F1Score = &v
	}
	if v, excluded, ok := rep.MAPE(); ok {
		s.MAPE = &v
		s.MAPEExcluded = excluded
	}
	return s
}

// Save writes the Markdown report and the raw JSON results under outputDir
// and returns both paths.
func Save(result *runner.RunResult, outputDir string) (markdownPath, jsonPath string, err error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", "", fmt.Errorf("create output directory: %w", err)
	}

	stamp := result.StartedAt.Format("20060102_150405")
	markdownPath = filepath.Join(outputDir, fmt.Sprintf("report_%s.md", stamp))
	jsonPath = filepath.Join(outputDir, fmt.Sprintf("results_%s.json", stamp))

	reporter := &MarkdownReporter{}
	if err := os.WriteFile(markdownPath, []byte(reporter.Render(result)), 0644); err != nil {
		return "", "", fmt.Errorf("write markdown report: %w", err)
	}

	data, err := json.MarshalIndent(persisted{RunResult: result, Summary: buildSummary(result)}, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return "", "", fmt.Errorf("write results json: %w", err)
	}
	return markdownPath, jsonPath, nil
}
