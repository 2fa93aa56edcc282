// Package report renders an evaluation run as a Markdown report and persists
// the raw results as JSON for later inspection.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"finqa/internal/classify"
	"finqa/internal/metrics"
	"finqa/internal/runner"
	"finqa/internal/scoring"
)

// MarkdownReporter renders a RunResult into a human-readable report.
type MarkdownReporter struct {
	// SampleLimit caps the sample-answers section. Zero means the default.
	SampleLimit int
}

const defaultSampleLimit = 5

// Render builds the full Markdown report.
func (mr *MarkdownReporter) Render(result *runner.RunResult) string {
	var report strings.Builder

	report.WriteString(mr.buildHeader(result))
	report.WriteString("\n")
	report.WriteString(mr.buildSummary(result))
	report.WriteString("\n")
	report.WriteString(mr.buildAccuracyByType(result))
	report.WriteString("\n")
	report.WriteString(mr.buildAccuracyByDifficulty(result))
	report.WriteString("\n")
	report.WriteString(mr.buildErrorSection(result))
	report.WriteString("\n")
	report.WriteString(mr.buildLatencySection(result))
	report.WriteString("\n")
	report.WriteString(mr.buildCostSection(result))
	report.WriteString("\n")
	report.WriteString(mr.buildSampleSection(result))
	report.WriteString("\n")
	report.WriteString(mr.buildFooter(result))

	return report.String()
}

func (mr *MarkdownReporter) buildHeader(result *runner.RunResult) string {
	return fmt.Sprintf(`# Financial QA Evaluation Report

**Run ID:** %s
**Model:** %s
**Generated:** %s
**Questions Evaluated:** %d (corpus of %d documents)

---

`, result.RunID,
		result.Model,
		result.StartedAt.Format("2006-01-02 15:04:05"),
		result.Evaluated,
		result.CorpusSize)
}

func (mr *MarkdownReporter) buildSummary(result *runner.RunResult) string {
	var report strings.Builder
	report.WriteString("## Summary\n\n")

	rep := result.Report
	report.WriteString(fmt.Sprintf("- **Accuracy:** %s\n", formatRate(rep.Accuracy())))
	report.WriteString(fmt.Sprintf("- **Exact Match Rate:** %s\n", formatRate(rep.ExactMatchRate())))
	if f1, ok := rep.F1Score(); ok {
		report.WriteString(fmt.Sprintf("- **F1 Score:** %.3f\n", f1))
	} else {
		report.WriteString("- **F1 Score:** no data\n")
	}
	if mape, excluded, ok := rep.MAPE(); ok {
		report.WriteString(fmt.Sprintf("- **MAPE:** %.1f%% (%d zero-truth answers excluded)\n", mape, excluded))
	} else {
		report.WriteString("- **MAPE:** no numeric pairs\n")
	}

	report.WriteString(fmt.Sprintf("- **Exact Matches:** %d\n", rep.CategoryCount(scoring.CategoryExactMatch)))
	report.WriteString(fmt.Sprintf("- **Close Matches:** %d\n", rep.CategoryCount(scoring.CategoryCloseMatch)))
	report.WriteString(fmt.Sprintf("- **Incorrect:** %d\n", rep.CategoryCount(scoring.CategoryIncorrect)))

	if result.Evaluated > 0 {
		hitRate := float64(result.RetrievalHits()) / float64(result.Evaluated) * 100
		report.WriteString(fmt.Sprintf("- **Retrieval Hit Rate:** %.1f%% (%d/%d)\n",
			hitRate, result.RetrievalHits(), result.Evaluated))
	}
	return report.String()
}

func (mr *MarkdownReporter) buildAccuracyByType(result *runner.RunResult) string {
	return buildStratumTable("Accuracy by Question Type", "Type",
		stratumRows(result.Report.AccuracyByType()))
}

func (mr *MarkdownReporter) buildAccuracyByDifficulty(result *runner.RunResult) string {
	byDifficulty := result.Report.AccuracyByDifficulty()
	rows := make([]stratumRow, 0, len(byDifficulty))
	// Fixed order, easiest first.
	for _, d := range []classify.Difficulty{classify.DifficultySimple, classify.DifficultyModerate, classify.DifficultyComplex} {
		if stats, ok := byDifficulty[d]; ok {
			rows = append(rows, stratumRow{name: string(d), stats: stats})
		}
	}
	return buildStratumTable("Accuracy by Difficulty", "Difficulty", rows)
}

func (mr *MarkdownReporter) buildErrorSection(result *runner.RunResult) string {
	var report strings.Builder
	report.WriteString("## Error Analysis\n\n")

	dist := result.Report.ErrorDistribution()
	if len(dist) == 0 {
		report.WriteString("No incorrect answers.\n")
		return report.String()
	}

	kinds := make([]string, 0, len(dist))
	for kind := range dist {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if dist[kinds[i]].Count != dist[kinds[j]].Count {
			return dist[kinds[i]].Count > dist[kinds[j]].Count
		}
		return kinds[i] < kinds[j]
	})

	report.WriteString("| Error Type | Count | Share |\n")
	report.WriteString("| --- | --- | --- |\n")
	for _, kind := range kinds {
		stat := dist[kind]
		report.WriteString(fmt.Sprintf("| %s | %d | %.1f%% |\n", kind, stat.Count, stat.Share))
	}

	if detail := mr.buildMismatchDetail(result); detail != "" {
		report.WriteString("\n### Text Mismatches\n\n")
		report.WriteString(detail)
	}
	return report.String()
}

// buildMismatchDetail diffs ground truth against prediction for the verdicts
// the numeric rules could not explain, so text-answer failures are readable
// at a glance.
func (mr *MarkdownReporter) buildMismatchDetail(result *runner.RunResult) string {
	dmp := diffmatchpatch.New()
	var report strings.Builder
	for _, rec := range result.Records {
		v := rec.Result.Verdict
		if v.Category != scoring.CategoryIncorrect || v.ErrorKind != scoring.ErrorKindUnknown {
			continue
		}
		diffs := dmp.DiffMain(rec.GroundTruth, rec.Prediction.Answer, false)
		dmp.DiffCleanupSemantic(diffs)
		report.WriteString(fmt.Sprintf("- **%s**\n", rec.Question))
		report.WriteString(fmt.Sprintf("  - expected: `%s`\n", rec.GroundTruth))
		report.WriteString(fmt.Sprintf("  - got: `%s`\n", rec.Prediction.Answer))
		report.WriteString(fmt.Sprintf("  - diff: %s\n", renderDiff(diffs)))
	}
	return report.String()
}

func renderDiff(diffs []diffmatchpatch.Diff) string {
	var out strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			out.WriteString("~~" + d.Text + "~~")
		case diffmatchpatch.DiffInsert:
			out.WriteString("**" + d.Text + "**")
		default:
			out.WriteString(d.Text)
		}
	}
	return out.String()
}

func (mr *MarkdownReporter) buildLatencySection(result *runner.RunResult) string {
	var report strings.Builder
	report.WriteString("## Response Time\n\n")

	stats, ok := result.Report.LatencyStats()
	if !ok {
		report.WriteString("No latency data.\n")
		return report.String()
	}
	report.WriteString(fmt.Sprintf("- **Mean:** %s\n", formatDuration(stats.Mean)))
	report.WriteString(fmt.Sprintf("- **Median:** %s\n", formatDuration(stats.Median)))
	report.WriteString(fmt.Sprintf("- **Min:** %s\n", formatDuration(stats.Min)))
	report.WriteString(fmt.Sprintf("- **Max:** %s\n", formatDuration(stats.Max)))
	report.WriteString(fmt.Sprintf("- **P90:** %s\n", formatDuration(stats.P90)))
	report.WriteString(fmt.Sprintf("- **P95:** %s\n", formatDuration(stats.P95)))
	return report.String()
}

func (mr *MarkdownReporter) buildCostSection(result *runner.RunResult) string {
	var report strings.Builder
	report.WriteString("## Token Usage and Cost\n\n")
	report.WriteString(fmt.Sprintf("- **Prompt Tokens:** %d\n", result.Usage.PromptTokens))
	report.WriteString(fmt.Sprintf("- **Completion Tokens:** %d\n", result.Usage.CompletionTokens))
	report.WriteString(fmt.Sprintf("- **Total Tokens:** %d\n", result.Usage.TotalTokens))
	report.WriteString(fmt.Sprintf("- **Estimated Cost:** $%.4f (prompt $%.4f, completion $%.4f)\n",
		result.Cost.TotalCost, result.Cost.PromptCost, result.Cost.CompletionCost))
	return report.String()
}

func (mr *MarkdownReporter) buildSampleSection(result *runner.RunResult) string {
	limit := mr.SampleLimit
	if limit <= 0 {
		limit = defaultSampleLimit
	}

	var report strings.Builder
	report.WriteString("## Sample Answers\n\n")
	for i, rec := range result.Records {
		if i >= limit {
			break
		}
		verdict := rec.Result.Verdict
		status := string(verdict.Category)
		if verdict.ErrorKind != "" {
			status += " (" + verdict.ErrorKind + ")"
		}
		report.WriteString(fmt.Sprintf("**Q%d.** %s\n", i+1, rec.Question))
		report.WriteString(fmt.Sprintf("- expected: %s\n", rec.GroundTruth))
		report.WriteString(fmt.Sprintf("- predicted: %s\n", rec.Prediction.Answer))
		report.WriteString(fmt.Sprintf("- verdict: %s\n\n", status))
	}
	return report.String()
}

func (mr *MarkdownReporter) buildFooter(result *runner.RunResult) string {
	return fmt.Sprintf("---\n\n*Run completed in %s.*\n",
		result.Duration.Round(time.Millisecond))
}

type stratumRow struct {
	name  string
	stats metrics.StratumStats
}

func stratumRows[K ~string](strata map[K]metrics.StratumStats) []stratumRow {
	rows := make([]stratumRow, 0, len(strata))
	for name, stats := range strata {
		rows = append(rows, stratumRow{name: string(name), stats: stats})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })
	return rows
}

func buildStratumTable(title, column string, rows []stratumRow) string {
	var report strings.Builder
	report.WriteString("## " + title + "\n\n")
	if len(rows) == 0 {
		report.WriteString("No data.\n")
		return report.String()
	}
	report.WriteString(fmt.Sprintf("| %s | Accuracy |\n", column))
	report.WriteString("| --- | --- |\n")
	for _, row := range rows {
		report.WriteString(fmt.Sprintf("| %s | %s |\n", row.name, formatRate(row.stats.Accuracy())))
	}
	return report.String()
}

func formatRate(rate float64, ok bool) string {
	if !ok {
		return "no data"
	}
	return fmt.Sprintf("%.1f%%", rate)
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
