package qa

import (
	"regexp"
	"strings"
)

var (
	finalAnswerPattern = regexp.MustCompile(`(?i)final answer:\s*(.+)`)
	stepPattern        = regexp.MustCompile(`^\d+[.)]\s+`)
)

// ExtractFinalAnswer pulls the "Final Answer:" line out of a model response.
// The last occurrence wins: models sometimes restate the marker while
// reasoning before committing to an answer. Returns "" when no marker exists.
func ExtractFinalAnswer(response string) string {
	matches := finalAnswerPattern.FindAllStringSubmatch(response, -1)
	if len(matches) == 0 {
		return ""
	}
	answer := matches[len(matches)-1][1]
	if idx := strings.IndexByte(answer, '\n'); idx >= 0 {
		answer = answer[:idx]
	}
	return strings.TrimSpace(answer)
}

// ExtractReasoningSteps collects numbered or bulleted lines from a response as
// the reasoning trace. Best effort; an empty result is fine.
func ExtractReasoningSteps(response string) []string {
	var steps []string
	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if stepPattern.MatchString(trimmed) || strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			steps = append(steps, trimmed)
		}
	}
	return steps
}
