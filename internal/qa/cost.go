package qa

import "finqa/internal/config"

// CostReport breaks down the estimated spend for accumulated token usage.
type CostReport struct {
	Model          string  `json:"model"`
	PromptCost     float64 `json:"prompt_cost"`
	CompletionCost float64 `json:"completion_cost"`
	TotalCost      float64 `json:"total_cost"`
}

// EstimateCost prices the usage with the per-1K table. An unknown model falls
// back to the default model's rates so the estimate is never silently zero.
func EstimateCost(usage TokenUsage, model string, table map[string]config.ModelCost) CostReport {
	rates, ok := table[model]
	if !ok {
		rates = table[config.DefaultModel]
	}
	report := CostReport{
		Model:          model,
		PromptCost:     float64(usage.PromptTokens) / 1000 * rates.Prompt,
		CompletionCost: float64(usage.CompletionTokens) / 1000 * rates.Completion,
	}
	report.TotalCost = report.PromptCost + report.CompletionCost
	return report
}
